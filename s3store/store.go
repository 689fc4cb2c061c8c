// Package s3store implements the gateway's ObjectStore contract on top of
// the AWS SDK, one store per backend account. Each store carries the
// account's own endpoint, region, and static credentials; callers never see
// them.
package s3store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/sagarc03/s3gate"
)

// Client is the subset of the S3 API the store uses.
type Client interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Store is an ObjectStore backed by one S3 account.
type Store struct {
	client Client
}

var _ s3gate.ObjectStore = (*Store)(nil)

// New builds a store for the account using its endpoint, region, and static
// credentials, with path-style addressing for S3-compatible backends.
func New(ctx context.Context, account s3gate.StorageAccount) (*Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(account.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			account.AccessKeyID,
			account.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config for account %s: %w", account.ID, err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(account.Endpoint)
		o.UsePathStyle = true
	})

	slog.Info("created object store", "account", account.ID, "endpoint", account.Endpoint, "region", account.Region)
	return NewWithClient(client), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client Client) *Store {
	return &Store{client: client}
}

// ListObjects aggregates every continuation page into one slice, preserving
// backend-returned order.
func (s *Store) ListObjects(ctx context.Context, bucket, prefix string) ([]s3gate.ObjectInfo, error) {
	var infos []s3gate.ObjectInfo
	var continuationToken *string

	for {
		input := &s3.ListObjectsV2Input{
			Bucket:            aws.String(bucket),
			ContinuationToken: continuationToken,
		}
		if prefix != "" {
			input.Prefix = aws.String(prefix)
		}

		out, err := s.client.ListObjectsV2(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("%w: list %s: %v", s3gate.ErrBackend, bucket, err)
		}

		for _, obj := range out.Contents {
			info := s3gate.ObjectInfo{
				Key:  aws.ToString(obj.Key),
				Size: aws.ToInt64(obj.Size),
			}
			if obj.LastModified != nil {
				info.LastModified = *obj.LastModified
			}
			infos = append(infos, info)
		}

		continuationToken = out.NextContinuationToken
		if continuationToken == nil {
			break
		}
	}

	return infos, nil
}

// GetObject returns the object body. A missing key maps to ErrObjectNotFound;
// every other failure wraps ErrBackend.
func (s *Store) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s/%s", s3gate.ErrObjectNotFound, bucket, key)
		}
		return nil, fmt.Errorf("%w: get %s/%s: %v", s3gate.ErrBackend, bucket, key, err)
	}
	return out.Body, nil
}

// PutObject uploads the content, carrying the caller's declared content type
// when non-empty.
func (s *Store) PutObject(ctx context.Context, bucket, key string, content io.Reader, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   content,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("%w: put %s/%s: %v", s3gate.ErrBackend, bucket, key, err)
	}
	return nil
}

func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}

	// Some S3-compatible backends answer with a bare NotFound code instead
	// of the modeled NoSuchKey error.
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}
