package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"careerconnect/internal/repository"
)

const createUploadsTable = `
CREATE TABLE IF NOT EXISTS uploads (
	object_key TEXT PRIMARY KEY,
	owner_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	claimed_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_uploads_owner ON uploads(owner_id);
`

type UploadRepository struct {
	db *sql.DB
}

func NewUploadRepository(db *sql.DB) repository.UploadRepository {
	return &UploadRepository{db: db}
}

func (r *UploadRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createUploadsTable); err != nil {
		return fmt.Errorf("create uploads table: %w", err)
	}
	return nil
}

func (r *UploadRepository) Claim(ctx context.Context, key, ownerID string) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO uploads (object_key, owner_id, claimed_at) VALUES (?, ?, ?) ON CONFLICT(object_key) DO NOTHING`,
		key, ownerID, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("claim upload: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 1 {
		return nil
	}

	owner, err := r.Owner(ctx, key)
	if err != nil {
		return err
	}
	if owner != ownerID {
		return fmt.Errorf("upload %s: %w", key, repository.ErrDuplicate)
	}
	return nil
}

func (r *UploadRepository) Owner(ctx context.Context, key string) (string, error) {
	var owner string
	err := r.db.QueryRowContext(ctx, `SELECT owner_id FROM uploads WHERE object_key = ?`, key).Scan(&owner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("upload: %w", repository.ErrNotFound)
		}
		return "", fmt.Errorf("get upload owner: %w", err)
	}
	return owner, nil
}

func (r *UploadRepository) Release(ctx context.Context, key, ownerID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM uploads WHERE object_key = ? AND owner_id = ?`, key, ownerID)
	if err != nil {
		return fmt.Errorf("release upload: %w", err)
	}
	return expectAffected(res, "upload")
}
