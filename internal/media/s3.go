package media

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// ObjectPutter is the part of *s3.Client the S3 store needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store writes uploads to an S3 bucket under a key prefix. The returned
// path is the same /uploads/<name> path the local store uses; a CDN or proxy
// maps it onto the bucket.
type S3Store struct {
	client ObjectPutter
	bucket string
	prefix string
	logger zerolog.Logger
}

// NewS3Store creates an S3 store.
func NewS3Store(client ObjectPutter, bucket, prefix string, logger zerolog.Logger) *S3Store {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &S3Store{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger.With().Str("component", "media-s3").Logger(),
	}
}

func (s *S3Store) Save(ctx context.Context, name, contentType string, body io.Reader) (string, error) {
	key := s.prefix + name
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		s.logger.Error().Err(err).Str("bucket", s.bucket).Str("key", key).Msg("failed to put object")
		return "", fmt.Errorf("failed to upload to S3 (bucket=%s, key=%s): %w", s.bucket, key, err)
	}

	s.logger.Info().Str("bucket", s.bucket).Str("key", key).Msg("upload stored in S3")
	return PublicPrefix + name, nil
}
