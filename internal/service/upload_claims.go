package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"careerconnect/internal/domain"
	"careerconnect/internal/repository"
	"careerconnect/internal/storage"
)

const msgFileNotOwned = "file belongs to another user"

// UploadClaims ties stored uploads to the user who first attached them to a
// profile. References that do not point into the store are ignored.
type UploadClaims struct {
	uploads repository.UploadRepository
	store   storage.Service
}

func NewUploadClaims(uploads repository.UploadRepository, store storage.Service) *UploadClaims {
	return &UploadClaims{uploads: uploads, store: store}
}

// key returns the object key behind ref, or "" when ref is not one of ours.
func (c *UploadClaims) key(ref string) string {
	if c == nil || c.store == nil {
		return ""
	}
	ref = strings.TrimSpace(ref)
	key := storage.KeyFromRef(ref)
	if key == "" || c.store.URL(key) != ref {
		return ""
	}
	return key
}

// Available fails when ref is already claimed by anyone.
func (c *UploadClaims) Available(ctx context.Context, ref string) error {
	key := c.key(ref)
	if key == "" {
		return nil
	}
	_, err := c.uploads.Owner(ctx, key)
	switch {
	case err == nil:
		return domain.Forbidden(msgFileNotOwned)
	case errors.Is(err, repository.ErrNotFound):
		return nil
	default:
		return err
	}
}

// Claim records ownerID as the owner of ref.
func (c *UploadClaims) Claim(ctx context.Context, ownerID, ref string) error {
	key := c.key(ref)
	if key == "" {
		return nil
	}
	if err := c.uploads.Claim(ctx, key, ownerID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.Forbidden(msgFileNotOwned)
		}
		return fmt.Errorf("claim upload: %w", err)
	}
	return nil
}

// Release drops ownerID's claim on ref and reports the key that may now be
// removed from the store. ok is false when ownerID does not own ref.
func (c *UploadClaims) Release(ctx context.Context, ownerID, ref string) (key string, ok bool, err error) {
	key = c.key(ref)
	if key == "" {
		return "", false, nil
	}
	if err := c.uploads.Release(ctx, key, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("release upload: %w", err)
	}
	return key, true, nil
}
