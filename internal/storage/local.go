package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalService keeps uploads on local disk under a single directory.
type LocalService struct {
	root      string
	publicURL string
}

func NewLocalService(root, publicURL string) (*LocalService, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &LocalService{
		root:      filepath.Clean(root),
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

func (s *LocalService) Root() string { return s.root }

func (s *LocalService) Put(ctx context.Context, obj Object) (string, error) {
	if !validKey(obj.Key) {
		return "", ErrInvalidKey
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dst := filepath.Join(s.root, obj.Key)
	f, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", obj.Key, err)
	}
	if _, err := io.Copy(f, obj.Body); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return "", fmt.Errorf("write %s: %w", obj.Key, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("close %s: %w", obj.Key, err)
	}
	return obj.Key, nil
}

// Delete removes the object; a missing object is not an error.
func (s *LocalService) Delete(_ context.Context, key string) error {
	if !validKey(key) {
		return ErrInvalidKey
	}
	if err := os.Remove(filepath.Join(s.root, key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

func (s *LocalService) URL(key string) string {
	if s.publicURL == "" {
		return key
	}
	return s.publicURL + "/" + key
}

var _ Service = (*LocalService)(nil)
