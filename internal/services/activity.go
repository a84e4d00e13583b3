package services

// ActivityPublisher pushes activity events onto the notification feed.
// pkg/rabbitmq provides the broker-backed implementation.
type ActivityPublisher interface {
	PublishActivity(event string, payload map[string]interface{}) error
}
