package repository

import (
	"context"

	"careerconnect/internal/domain"
)

// JobRepository exposes persistence operations for job postings.
type JobRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, job *domain.Job) error
	Update(ctx context.Context, job *domain.Job) error
	SetClosed(ctx context.Context, id string, closed bool) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*domain.Job, error)
	ListByCompany(ctx context.Context, companyID string) ([]domain.Job, error)
}
