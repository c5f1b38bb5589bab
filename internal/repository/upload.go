package repository

import "context"

// UploadRepository records which user a stored upload belongs to.
type UploadRepository interface {
	Init(ctx context.Context) error
	// Claim makes ownerID the owner of key. Re-claiming an owned key is a
	// no-op; a key owned by another user yields ErrDuplicate.
	Claim(ctx context.Context, key, ownerID string) error
	// Owner returns the owning user id or ErrNotFound.
	Owner(ctx context.Context, key string) (string, error)
	// Release drops the claim. It returns ErrNotFound unless ownerID holds it.
	Release(ctx context.Context, key, ownerID string) error
}
