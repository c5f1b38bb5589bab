package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type objectUploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

type objectDeleter interface {
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Options conveys the upload destination.
type S3Options struct {
	Bucket    string
	KeyPrefix string
	// PublicURL, when set, is the base URL objects are served from.
	PublicURL string
}

// S3Service stores uploads in Amazon S3 (or compatible APIs).
type S3Service struct {
	uploader objectUploader
	client   objectDeleter
	opts     S3Options
}

func NewS3Service(client *s3.Client, opts S3Options) (*S3Service, error) {
	return newS3Service(manager.NewUploader(client), client, opts)
}

func newS3Service(uploader objectUploader, client objectDeleter, opts S3Options) (*S3Service, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}
	opts.KeyPrefix = strings.Trim(opts.KeyPrefix, "/")
	opts.PublicURL = strings.TrimRight(opts.PublicURL, "/")
	return &S3Service{uploader: uploader, client: client, opts: opts}, nil
}

func (s *S3Service) Put(ctx context.Context, obj Object) (string, error) {
	if !validKey(obj.Key) {
		return "", ErrInvalidKey
	}
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.opts.Bucket),
		Key:         aws.String(s.fullKey(obj.Key)),
		Body:        obj.Body,
		ContentType: aws.String(obj.ContentType),
		ACL:         types.ObjectCannedACLPrivate,
	}
	if obj.Size > 0 {
		input.ContentLength = aws.Int64(obj.Size)
	}
	if _, err := s.uploader.Upload(ctx, input); err != nil {
		return "", fmt.Errorf("upload %s: %w", obj.Key, err)
	}
	return obj.Key, nil
}

func (s *S3Service) Delete(ctx context.Context, key string) error {
	if !validKey(key) {
		return ErrInvalidKey
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.opts.Bucket),
		Key:    aws.String(s.fullKey(key)),
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *S3Service) URL(key string) string {
	if s.opts.PublicURL != "" {
		return s.opts.PublicURL + "/" + s.fullKey(key)
	}
	return fmt.Sprintf("s3://%s/%s", s.opts.Bucket, s.fullKey(key))
}

func (s *S3Service) fullKey(key string) string {
	if s.opts.KeyPrefix == "" {
		return key
	}
	return s.opts.KeyPrefix + "/" + key
}

var _ Service = (*S3Service)(nil)
