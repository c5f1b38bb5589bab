package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"careerconnect/internal/domain"
	"careerconnect/internal/policy"
	"careerconnect/internal/repository"
)

// JobInput is the editable part of a job posting.
type JobInput struct {
	Title           string
	Description     string
	Requirements    string
	Location        string
	Category        string
	JobType         domain.JobType
	ExperienceLevel domain.ExperienceLevel
	Positions       int
	SalaryMin       *int64
	SalaryMax       *int64
}

// JobService manages postings on behalf of employers.
type JobService interface {
	Create(ctx context.Context, identity *domain.User, in JobInput) (*domain.Job, error)
	Get(ctx context.Context, id string) (*domain.Job, error)
	ListMine(ctx context.Context, identity *domain.User) ([]domain.Job, error)
	Update(ctx context.Context, identity *domain.User, id string, in JobInput) (*domain.Job, error)
	ToggleClose(ctx context.Context, identity *domain.User, id string) (*domain.Job, error)
	Delete(ctx context.Context, identity *domain.User, id string) error
}

type jobService struct {
	jobs repository.JobRepository
	log  logrus.FieldLogger
}

func NewJobService(jobs repository.JobRepository, log logrus.FieldLogger) JobService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &jobService{jobs: jobs, log: log.WithField("component", "jobs")}
}

func (s *jobService) Create(ctx context.Context, identity *domain.User, in JobInput) (*domain.Job, error) {
	if err := policy.Authorize(identity, policy.ActionCreateJob, nil); err != nil {
		return nil, err
	}
	if err := validateJobInput(&in); err != nil {
		return nil, err
	}

	job := &domain.Job{ID: uuid.NewString(), CompanyID: identity.ID}
	applyJobInput(job, in)
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"job_id": job.ID, "company_id": job.CompanyID}).Info("job created")
	return job, nil
}

func (s *jobService) Get(ctx context.Context, id string) (*domain.Job, error) {
	job, err := s.jobs.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NotFound("job not found")
		}
		return nil, err
	}
	return job, nil
}

func (s *jobService) ListMine(ctx context.Context, identity *domain.User) ([]domain.Job, error) {
	if !identity.IsEmployer() {
		return nil, domain.Forbidden("only employers have posted jobs")
	}
	return s.jobs.ListByCompany(ctx, identity.ID)
}

func (s *jobService) Update(ctx context.Context, identity *domain.User, id string, in JobInput) (*domain.Job, error) {
	job, err := s.owned(ctx, identity, id, policy.ActionUpdateJob)
	if err != nil {
		return nil, err
	}
	if err := validateJobInput(&in); err != nil {
		return nil, err
	}

	applyJobInput(job, in)
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *jobService) ToggleClose(ctx context.Context, identity *domain.User, id string) (*domain.Job, error) {
	job, err := s.owned(ctx, identity, id, policy.ActionCloseJob)
	if err != nil {
		return nil, err
	}

	job.IsClosed = !job.IsClosed
	if err := s.jobs.SetClosed(ctx, job.ID, job.IsClosed); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *jobService) Delete(ctx context.Context, identity *domain.User, id string) error {
	job, err := s.owned(ctx, identity, id, policy.ActionDeleteJob)
	if err != nil {
		return err
	}
	if err := s.jobs.Delete(ctx, job.ID); err != nil {
		return err
	}
	s.log.WithField("job_id", job.ID).Info("job deleted")
	return nil
}

func (s *jobService) owned(ctx context.Context, identity *domain.User, id string, action policy.Action) (*domain.Job, error) {
	job, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(identity, action, &policy.Resource{OwnerID: job.CompanyID}); err != nil {
		return nil, err
	}
	return job, nil
}

func validateJobInput(in *JobInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Requirements = strings.TrimSpace(in.Requirements)
	in.Location = strings.TrimSpace(in.Location)
	in.Category = strings.TrimSpace(in.Category)

	if in.Title == "" || in.Description == "" || in.Requirements == "" || in.Location == "" {
		return domain.Validation(msgMissingFields)
	}
	if !in.JobType.Valid() {
		return domain.Validation("invalid job type")
	}
	if !in.ExperienceLevel.Valid() {
		return domain.Validation("invalid experience level")
	}
	if in.Positions == 0 {
		in.Positions = 1
	}
	if in.Positions < 0 {
		return domain.Validation("positions must be positive")
	}
	if (in.SalaryMin != nil && *in.SalaryMin < 0) || (in.SalaryMax != nil && *in.SalaryMax < 0) {
		return domain.Validation("salary must not be negative")
	}
	if in.SalaryMin != nil && in.SalaryMax != nil && *in.SalaryMin > *in.SalaryMax {
		return domain.Validation("minimum salary exceeds maximum salary")
	}
	return nil
}

func applyJobInput(job *domain.Job, in JobInput) {
	job.Title = in.Title
	job.Description = in.Description
	job.Requirements = in.Requirements
	job.Location = in.Location
	job.Category = in.Category
	job.JobType = in.JobType
	job.ExperienceLevel = in.ExperienceLevel
	job.Positions = in.Positions
	job.SalaryMin = in.SalaryMin
	job.SalaryMax = in.SalaryMax
}
