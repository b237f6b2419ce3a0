// Package s3 implements the uploader object store on Amazon S3 and S3
// compatible services.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/Shopify/js-uploader/internal/uploader"
)

// PutObjectAPI is the subset of *s3.Client the store uses.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Options configures the bucket and how objects are written.
type Options struct {
	Bucket string
	Region string
	// Endpoint overrides the S3 endpoint, e.g. for MinIO or R2.
	Endpoint string
	// PathStyle addresses buckets as https://host/bucket.
	PathStyle bool
	// ACL is a canned ACL such as "public-read". Empty leaves the bucket default.
	ACL string
	// CacheControl is sent as the Cache-Control header of every object.
	CacheControl string
}

// Store writes artifacts into a single bucket.
type Store struct {
	api  PutObjectAPI
	opts Options
}

var _ uploader.ObjectStore = (*Store)(nil)

// New loads the default AWS configuration chain and returns a Store backed
// by a new S3 client.
func New(ctx context.Context, opts Options) (*Store, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("bucket is required")
	}

	var optFns []func(*config.LoadOptions) error
	if opts.Region != "" {
		optFns = append(optFns, config.WithRegion(opts.Region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.PathStyle
	})

	return NewFromClient(client, opts), nil
}

// NewFromClient returns a Store using api.
func NewFromClient(api PutObjectAPI, opts Options) *Store {
	return &Store{api: api, opts: opts}
}

// Bucket returns the target bucket name.
func (s *Store) Bucket() string {
	return s.opts.Bucket
}

// PutObject uploads in.Body under in.Key. The response is ignored.
func (s *Store) PutObject(ctx context.Context, in uploader.PutObjectInput) error {
	params := &s3.PutObjectInput{
		Bucket:        aws.String(s.opts.Bucket),
		Key:           aws.String(in.Key),
		Body:          bytes.NewReader(in.Body),
		ContentLength: aws.Int64(int64(len(in.Body))),
		ContentType:   aws.String(in.ContentType),
	}
	if s.opts.ACL != "" {
		params.ACL = types.ObjectCannedACL(s.opts.ACL)
	}
	if s.opts.CacheControl != "" {
		params.CacheControl = aws.String(s.opts.CacheControl)
	}

	if _, err := s.api.PutObject(ctx, params); err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			return fmt.Errorf("s3 put %s/%s: %s: %w", s.opts.Bucket, in.Key, apiErr.ErrorCode(), err)
		}
		return fmt.Errorf("s3 put %s/%s: %w", s.opts.Bucket, in.Key, err)
	}
	return nil
}
