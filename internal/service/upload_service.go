package service

import (
	"context"
	"fmt"
	"io"

	"careerconnect/internal/domain"
	"careerconnect/internal/storage"
)

// DefaultMaxUploadBytes caps a single upload.
const DefaultMaxUploadBytes int64 = 5 << 20

// UploadService validates and stores profile images and documents.
type UploadService interface {
	Upload(ctx context.Context, filename, contentType string, size int64, body io.Reader) (string, error)
}

type uploadService struct {
	store    storage.Service
	maxBytes int64
}

func NewUploadService(store storage.Service, maxBytes int64) UploadService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &uploadService{store: store, maxBytes: maxBytes}
}

// Upload stores the file and returns the URL it can be referenced by.
func (s *uploadService) Upload(ctx context.Context, filename, contentType string, size int64, body io.Reader) (string, error) {
	if body == nil {
		return "", domain.Validation("no file uploaded")
	}
	if !storage.AllowedContentType(contentType) {
		return "", domain.Validation(storage.ErrUnsupportedType.Error())
	}
	if size > s.maxBytes {
		return "", domain.Validation(fmt.Sprintf("file exceeds %d bytes", s.maxBytes))
	}

	key, err := s.store.Put(ctx, storage.Object{
		Key:         storage.NewKey(filename, contentType),
		ContentType: contentType,
		Size:        size,
		Body:        io.LimitReader(body, s.maxBytes),
	})
	if err != nil {
		return "", err
	}
	return s.store.URL(key), nil
}
