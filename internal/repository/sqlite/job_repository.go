package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"careerconnect/internal/domain"
	"careerconnect/internal/repository"
)

const createJobsTable = `
CREATE TABLE IF NOT EXISTS jobs (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	requirements TEXT NOT NULL,
	location TEXT NOT NULL,
	category TEXT NOT NULL DEFAULT '',
	job_type TEXT NOT NULL,
	experience_level TEXT NOT NULL,
	positions INTEGER NOT NULL DEFAULT 1,
	salary_min INTEGER NULL,
	salary_max INTEGER NULL,
	company_id TEXT NOT NULL,
	is_closed INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY(company_id) REFERENCES users(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_jobs_company_id ON jobs(company_id);
`

const jobColumns = `id, title, description, requirements, location, category, job_type, experience_level,
	positions, salary_min, salary_max, company_id, is_closed, created_at, updated_at`

type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) repository.JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createJobsTable); err != nil {
		return fmt.Errorf("create jobs table: %w", err)
	}
	return nil
}

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
INSERT INTO jobs (`+jobColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.ID,
		job.Title,
		job.Description,
		job.Requirements,
		job.Location,
		job.Category,
		string(job.JobType),
		string(job.ExperienceLevel),
		job.Positions,
		nullInt64(job.SalaryMin),
		nullInt64(job.SalaryMax),
		job.CompanyID,
		job.IsClosed,
		job.CreatedAt,
		job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

func (r *JobRepository) Update(ctx context.Context, job *domain.Job) error {
	job.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE jobs
SET title=?, description=?, requirements=?, location=?, category=?, job_type=?, experience_level=?,
	positions=?, salary_min=?, salary_max=?, is_closed=?, updated_at=?
WHERE id=?`,
		job.Title,
		job.Description,
		job.Requirements,
		job.Location,
		job.Category,
		string(job.JobType),
		string(job.ExperienceLevel),
		job.Positions,
		nullInt64(job.SalaryMin),
		nullInt64(job.SalaryMax),
		job.IsClosed,
		job.UpdatedAt,
		job.ID,
	)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	return expectAffected(res, "job")
}

func (r *JobRepository) SetClosed(ctx context.Context, id string, closed bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE jobs SET is_closed=?, updated_at=? WHERE id=?`, closed, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update job closed: %w", err)
	}
	return expectAffected(res, "job")
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return expectAffected(res, "job")
}

func (r *JobRepository) Get(ctx context.Context, id string) (*domain.Job, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+jobColumns+`
FROM jobs
WHERE id=?`, id)
	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("job: %w", repository.ErrNotFound)
		}
		return nil, err
	}
	return job, nil
}

func (r *JobRepository) ListByCompany(ctx context.Context, companyID string) ([]domain.Job, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+jobColumns+`
FROM jobs
WHERE company_id=?
ORDER BY created_at DESC, id ASC`, companyID)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

func scanJob(row interface {
	Scan(dest ...any) error
}) (*domain.Job, error) {
	var (
		job             domain.Job
		jobType         string
		experienceLevel string
		salaryMin       sql.NullInt64
		salaryMax       sql.NullInt64
	)
	if err := row.Scan(
		&job.ID,
		&job.Title,
		&job.Description,
		&job.Requirements,
		&job.Location,
		&job.Category,
		&jobType,
		&experienceLevel,
		&job.Positions,
		&salaryMin,
		&salaryMax,
		&job.CompanyID,
		&job.IsClosed,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan job: %w", err)
	}
	job.JobType = domain.JobType(jobType)
	job.ExperienceLevel = domain.ExperienceLevel(experienceLevel)
	if salaryMin.Valid {
		v := salaryMin.Int64
		job.SalaryMin = &v
	}
	if salaryMax.Valid {
		v := salaryMax.Int64
		job.SalaryMax = &v
	}
	return &job, nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
