package rabbitmq

import (
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/streadway/amqp"
)

// ActivityQueue receives every activity event (post.created,
// drawing.created, comment.created) for the notification feed.
const ActivityQueue = "activity_queue"

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects to RabbitMQ, opens a channel and declares the activity
// queue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		ActivityQueue, // name
		true,          // durable
		false,         // delete when unused
		false,         // exclusive
		false,         // no-wait
		nil,           // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s: %w", ActivityQueue, err)
	}

	log.Printf("RabbitMQ client connected and %s declared.", ActivityQueue)

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors closing RabbitMQ client: %v", errs)
	}
	return nil
}

// PublishActivity sends a persistent activity event ("post.created",
// "drawing.created", ...) to the activity queue through the default
// exchange. Routing by queue name ignores the event, so the event name is
// stamped into the payload for consumers.
func (c *Client) PublishActivity(event string, payload map[string]interface{}) error {
	if c.channel == nil {
		return fmt.Errorf("rabbitmq channel is not open")
	}
	payload["event"] = event
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event, err)
	}
	err = c.channel.Publish(
		"",            // exchange: default exchange
		ActivityQueue, // routing key: the declared queue
		false,         // mandatory
		false,         // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event, err)
	}
	return nil
}

// ConsumeActivityEvents delivers activity messages to handler, acking on
// nil and nacking (with requeue) on error. It blocks until the channel
// closes.
func (c *Client) ConsumeActivityEvents(handler func(amqp.Delivery) error) error {
	if c.channel == nil {
		return fmt.Errorf("rabbitmq channel is not open")
	}
	msgs, err := c.channel.Consume(
		ActivityQueue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	for msg := range msgs {
		if err := handler(msg); err != nil {
			log.Printf("Failed to process activity message (tag %d): %v", msg.DeliveryTag, err)
			if nackErr := msg.Nack(false, true); nackErr != nil {
				log.Printf("Failed to nack message: %v", nackErr)
			}
			continue
		}
		if ackErr := msg.Ack(false); ackErr != nil {
			log.Printf("Failed to ack message: %v", ackErr)
		}
	}
	return nil
}
