package export

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/df07/go-ppm-raytracer/pkg/core"
	"github.com/df07/go-ppm-raytracer/pkg/ppm"
)

// UploadTimeout bounds a single object upload
const UploadTimeout = 30 * time.Second

// S3Config describes the bucket renders are published to
type S3Config struct {
	Bucket    string
	Prefix    string // Key prefix, e.g. "renders/"
	Region    string
	Endpoint  string // Custom endpoint for S3-compatible stores; empty for AWS
	AccessKey string // Static credentials; empty uses the default chain
	SecretKey string
	ACL       string // Canned ACL such as "public-read"; empty for bucket default
}

// S3Publisher uploads encoded renders to a bucket
type S3Publisher struct {
	client s3iface.S3API
	config S3Config
	logger core.Logger
}

// NewS3Publisher creates a publisher with its own AWS session
func NewS3Publisher(cfg S3Config, logger core.Logger) (*S3Publisher, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	awsConfig := &aws.Config{}
	if cfg.Region != "" {
		awsConfig.Region = aws.String(cfg.Region)
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}
	if cfg.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}
	return NewS3PublisherWithClient(s3.New(sess), cfg, logger), nil
}

// NewS3PublisherWithClient creates a publisher around an existing client
func NewS3PublisherWithClient(client s3iface.S3API, cfg S3Config, logger core.Logger) *S3Publisher {
	return &S3Publisher{client: client, config: cfg, logger: logger}
}

// Key returns the object key used for name
func (p *S3Publisher) Key(name string) string {
	return path.Join(p.config.Prefix, name)
}

// Publish uploads data under the configured prefix and returns the object key
func (p *S3Publisher) Publish(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	key := p.Key(name)
	size := int64(len(data))
	input := &s3.PutObjectInput{
		Bucket:        aws.String(p.config.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	}
	if p.config.ACL != "" {
		input.ACL = aws.String(p.config.ACL)
	}

	if _, err := p.client.PutObjectWithContext(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	if p.logger != nil {
		p.logger.Printf("Uploaded s3://%s/%s (%d bytes)\n", p.config.Bucket, key, size)
	}
	return key, nil
}

// PublishImage encodes img in format and uploads it as name plus the
// format's extension
func (p *S3Publisher) PublishImage(ctx context.Context, img *ppm.Image, name string, format Format) (string, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, format); err != nil {
		return "", err
	}
	return p.Publish(ctx, name+format.Extension(), buf.Bytes(), format.ContentType())
}
