package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUnsupportedType = errors.New("only .jpeg, .jpg, .png, and .pdf formats are allowed")
	ErrInvalidKey      = errors.New("invalid object key")
)

var allowedContentTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/jpg":       ".jpg",
	"image/png":       ".png",
	"application/pdf": ".pdf",
}

// Object is an upload handed to a storage backend.
type Object struct {
	Key         string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Service stores user uploads (avatars, logos, resumes).
type Service interface {
	Put(ctx context.Context, obj Object) (string, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// AllowedContentType reports whether uploads of the given media type are accepted.
func AllowedContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	_, ok := allowedContentTypes[strings.ToLower(mediaType)]
	return ok
}

// NewKey builds a collision-free object key that keeps the original extension.
func NewKey(filename, contentType string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || len(ext) > 6 {
		if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
			ext = allowedContentTypes[strings.ToLower(mediaType)]
		}
	}
	return fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), uuid.NewString(), ext)
}

// KeyFromRef extracts the object key from a stored reference, which is
// either a bare key or a URL produced by Service.URL.
func KeyFromRef(ref string) string {
	ref = strings.TrimSpace(ref)
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	if ref == "" {
		return ""
	}
	base := path.Base(ref)
	if base == "." || base == "/" {
		return ""
	}
	return base
}

func validKey(key string) bool {
	return key != "" && key != "." && key != ".." && !strings.ContainsAny(key, `/\`)
}
