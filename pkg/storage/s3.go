package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Config holds S3 connection details. Endpoint is only set when talking to
// an S3-compatible store such as MinIO; PublicBaseURL is the prefix under
// which uploaded objects are reachable. Leave PublicBaseURL empty for a
// private bucket and download links are presigned instead.
type Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
}

// Client uploads images to S3 and builds URLs for them.
type Client struct {
	s3            *s3.Client
	presign       *s3.PresignClient
	bucket        string
	publicBaseURL string
}

// NewClient creates an S3-backed storage client.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Client{
		s3:            client,
		presign:       s3.NewPresignClient(client),
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

// presignExpiry bounds how long a download link for a private bucket stays
// valid.
const presignExpiry = 24 * time.Hour

// Upload stores the file under a fresh date-partitioned key and returns a
// URL it can be fetched from.
func (c *Client) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	key := objectKey(filename)
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return c.downloadURL(ctx, key)
}

// downloadURL builds the URL an object is served from. Buckets fronted by
// a CDN or public policy use PublicBaseURL; without one the bucket is
// private and the link is presigned.
func (c *Client) downloadURL(ctx context.Context, key string) (string, error) {
	if c.publicBaseURL != "" {
		return c.publicBaseURL + "/" + key, nil
	}
	return c.PresignGet(ctx, key, presignExpiry)
}

// PresignGet returns a time-limited download URL for a stored object.
func (c *Client) PresignGet(ctx context.Context, key string, expires time.Duration) (string, error) {
	req, err := c.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", key, err)
	}
	return req.URL, nil
}

// objectKey builds a date-partitioned key that never collides, keeping the
// original extension so content sniffing downstream still works.
func objectKey(filename string) string {
	d := time.Now()
	return fmt.Sprintf("images/%d/%02d/%02d/%s%s",
		d.Year(), d.Month(), d.Day(), uuid.New(), path.Ext(filename))
}
