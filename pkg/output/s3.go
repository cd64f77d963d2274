package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// UploadTimeout bounds a single upload
const UploadTimeout = 30 * time.Second

// ErrMissingBucket is returned when no bucket is configured
var ErrMissingBucket = errors.New("s3 bucket not configured")

// S3Config describes an S3-compatible bucket
type S3Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string
	Region    string
	Bucket    string
}

// S3ConfigFromEnv reads RAYCASTER_S3_* settings through getenv
func S3ConfigFromEnv(getenv func(key string) string) S3Config {
	return S3Config{
		AccessKey: getenv("RAYCASTER_S3_ACCESS_KEY"),
		SecretKey: getenv("RAYCASTER_S3_SECRET_KEY"),
		Endpoint:  getenv("RAYCASTER_S3_ENDPOINT"),
		Region:    getenv("RAYCASTER_S3_REGION"),
		Bucket:    getenv("RAYCASTER_S3_BUCKET"),
	}
}

// putObjectAPI is the part of the S3 client the uploader needs
type putObjectAPI interface {
	PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error)
}

// S3Uploader puts encoded renders into a bucket
type S3Uploader struct {
	client putObjectAPI
	bucket string
}

// NewS3Uploader creates an uploader for the configured bucket
func NewS3Uploader(cfg S3Config) (*S3Uploader, error) {
	if cfg.Bucket == "" {
		return nil, ErrMissingBucket
	}

	s3Config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		s3Config.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(s3Config)
	if err != nil {
		return nil, fmt.Errorf("creating s3 session: %w", err)
	}
	return &S3Uploader{client: s3.New(sess), bucket: cfg.Bucket}, nil
}

// Upload stores data under key with the given content type
func (u *S3Uploader) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	_, err := u.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}
