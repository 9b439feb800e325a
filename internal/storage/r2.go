package storage

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// R2Config holds the Cloudflare R2 bucket settings.
type R2Config struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	PublicBaseURL string
}

func (c R2Config) Enabled() bool {
	return c.Endpoint != "" && c.AccessKey != "" && c.SecretKey != "" && c.Bucket != ""
}

// R2Client stores product images in an S3-compatible bucket.
type R2Client struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewR2Client(ctx context.Context, cfg R2Config) (*R2Client, error) {
	if !cfg.Enabled() {
		return nil, errors.New("missing R2 configuration")
	}

	awsCfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion("auto"),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AccessKey,
				cfg.SecretKey,
				"",
			),
		),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		baseURL = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}

	return &R2Client{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Upload writes file under key and returns its public URL.
func (r *R2Client) Upload(ctx context.Context, key string, file multipart.File, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
		Body:   file,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := r.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	return fmt.Sprintf("%s/%s", r.baseURL, key), nil
}
