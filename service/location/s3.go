package location

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	awsconfig "github.com/thirukguru/version-sync/service/aws_config"
)

const s3Scheme = "s3://"

// S3API is the subset of the S3 client used by the store.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Options configures the S3 store built by NewS3StoreFactory.
type S3Options struct {
	AWS      awsconfig.Options
	Endpoint string // custom endpoint, e.g. a MinIO server; enables path-style addressing
}

type s3Store struct {
	client S3API
}

// NewS3Store returns a store for s3://bucket/key locations.
func NewS3Store(client S3API) Service {
	return &s3Store{client: client}
}

// NewS3StoreFactory loads AWS configuration lazily, so runs that only touch
// local files never need credentials.
func NewS3StoreFactory(cfgService awsconfig.Service, opts S3Options) StoreFactory {
	return func(ctx context.Context) (Service, error) {
		cfg, err := cfgService.GetAWSCfg(ctx, opts.AWS)
		if err != nil {
			return nil, err
		}
		client := s3.NewFromConfig(cfg, func(o *s3.Options) {
			if opts.Endpoint != "" {
				o.BaseEndpoint = aws.String(opts.Endpoint)
				o.UsePathStyle = true
			}
		})
		return NewS3Store(client), nil
	}
}

// IsS3 reports whether location is an s3:// URL.
func IsS3(location string) bool {
	return strings.HasPrefix(location, s3Scheme)
}

// ParseS3 splits an s3://bucket/key URL.
func ParseS3(location string) (bucket, key string, err error) {
	if !IsS3(location) {
		return "", "", fmt.Errorf("%w: %q is not an s3 URL", ErrInvalidLocation, location)
	}
	rest := strings.TrimPrefix(location, s3Scheme)
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return "", "", fmt.Errorf("%w: %q must look like s3://bucket/key", ErrInvalidLocation, location)
	}
	return bucket, key, nil
}

func (s *s3Store) Read(ctx context.Context, location string) ([]byte, error) {
	bucket, key, err := ParseS3(location)
	if err != nil {
		return nil, err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *s3types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, fmt.Errorf("%s: %w", location, fs.ErrNotExist)
		}
		return nil, err
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

// Write uploads the whole object; S3 replaces objects atomically, so opts.Atomic has no effect.
func (s *s3Store) Write(ctx context.Context, location string, data []byte, _ WriteOptions) error {
	bucket, key, err := ParseS3(location)
	if err != nil {
		return err
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType(key)),
	})
	return err
}

func contentType(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".json":
		return "application/json"
	case ".yaml", ".yml":
		return "application/yaml"
	case ".toml":
		return "application/toml"
	default:
		return "text/plain; charset=utf-8"
	}
}
