package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// DefaultS3Key is the object key used when none is configured.
const DefaultS3Key = "edsd/data_store.json"

// objectAPI is the subset of *s3.Client the backend needs.
type objectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Config holds construction parameters for the S3 backend.
type S3Config struct {
	Bucket    string
	Key       string
	Region    string // default us-east-1
	Endpoint  string // optional, e.g. MinIO
	PathStyle bool
}

// S3Backend keeps the snapshot as a single object in an S3-compatible bucket.
type S3Backend struct {
	client objectAPI
	bucket string
	key    string
}

// NewS3Backend builds a client from the default AWS credential chain.
func NewS3Backend(ctx context.Context, cfg S3Config) (*S3Backend, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return newS3Backend(client, cfg.Bucket, cfg.Key), nil
}

func newS3Backend(client objectAPI, bucket, key string) *S3Backend {
	if key == "" {
		key = DefaultS3Key
	}
	return &S3Backend{client: client, bucket: bucket, key: key}
}

func (s *S3Backend) Read(ctx context.Context) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &s.bucket, Key: &s.key})
	if err != nil {
		var nsk *s3types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

func (s *S3Backend) Write(ctx context.Context, blob []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &s.key,
		Body:        bytes.NewReader(blob),
		ContentType: aws.String("application/json"),
	})
	return err
}

func (s *S3Backend) Delete(ctx context.Context) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: &s.bucket, Key: &s.key})
	return err
}

func (s *S3Backend) Describe() string { return "s3://" + s.bucket + "/" + s.key }
