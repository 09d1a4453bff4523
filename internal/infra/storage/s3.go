package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// CardStorage keeps scanned business-card images in S3. The object key is
// the retrievable reference stored on the contact.
type CardStorage struct {
	client *s3.Client
	bucket string
	prefix string
}

type Config struct {
	Bucket string
	Prefix string // e.g. "business_cards/"
	Region string
}

func NewCardStorage(ctx context.Context, cfg Config) (*CardStorage, error) {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &CardStorage{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
	}, nil
}

// Upload stores an image and returns its object key.
func (s *CardStorage) Upload(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	key := s.prefix + name

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload card image: %w", err)
	}

	return key, nil
}

// Download fetches an image back by its object key.
func (s *CardStorage) Download(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("download card image: %w", err)
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}
