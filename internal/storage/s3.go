package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/xid"
)

// S3 stores files as objects in an S3 bucket and references them by
// absolute URL.
//
// Delete is a no-op: remote-stored images are never removed by the
// application. Cleaning the bucket is a manual administration task, same
// as cleaning the messages collection.
type S3 struct {
	client  *s3.Client
	bucket  string
	prefix  string
	baseURL string
}

var _ FileStore = (*S3)(nil)

// S3Options configures NewS3. BaseURL is optional — when empty, URLs point
// at the bucket's virtual-hosted endpoint.
type S3Options struct {
	Bucket  string
	Region  string
	Prefix  string
	BaseURL string
}

// NewS3 builds a store from the default AWS credential chain (env vars,
// shared config, instance role).
func NewS3(ctx context.Context, opts S3Options) (*S3, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("storage: S3 bucket is required")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(opts.Region))
	if err != nil {
		return nil, fmt.Errorf("storage: loading AWS config: %w", err)
	}

	baseURL := strings.TrimSuffix(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, cfg.Region)
	}

	return &S3{
		client:  s3.NewFromConfig(cfg),
		bucket:  opts.Bucket,
		prefix:  strings.Trim(opts.Prefix, "/"),
		baseURL: baseURL,
	}, nil
}

func (s *S3) Save(ctx context.Context, filename, contentType string, content io.Reader) (string, error) {
	key := xid.New().String() + "-" + filepath.Base(filename)
	if s.prefix != "" {
		key = s.prefix + "/" + key
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        content,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("storage: putting s3://%s/%s: %w", s.bucket, key, err)
	}

	return s.baseURL + "/" + key, nil
}

// Delete never touches the bucket. See the type comment.
func (s *S3) Delete(context.Context, string) error {
	return nil
}
