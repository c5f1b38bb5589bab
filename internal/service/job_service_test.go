package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careerconnect/internal/domain"
)

func validJob() JobInput {
	return JobInput{
		Title:           "Backend Engineer",
		Description:     "Build APIs",
		Requirements:    "Go, SQL",
		Location:        "Remote",
		JobType:         domain.JobTypeFullTime,
		ExperienceLevel: domain.ExperienceMid,
	}
}

var (
	employerA = &domain.User{ID: "emp-a", Role: domain.RoleEmployer}
	employerB = &domain.User{ID: "emp-b", Role: domain.RoleEmployer}
	seeker    = &domain.User{ID: "seek", Role: domain.RoleJobSeeker}
)

func TestJobCreate_JobSeekerForbidden(t *testing.T) {
	jobs := newMemJobs()
	svc := NewJobService(jobs, nil)

	_, err := svc.Create(context.Background(), seeker, validJob())
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Zero(t, jobs.count())

	// denial comes before validation
	_, err = svc.Create(context.Background(), seeker, JobInput{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestJobCreate_EmployerOwnsJob(t *testing.T) {
	svc := NewJobService(newMemJobs(), nil)

	job, err := svc.Create(context.Background(), employerA, validJob())
	require.NoError(t, err)
	assert.Equal(t, "emp-a", job.CompanyID)
	assert.Equal(t, 1, job.Positions)
	assert.False(t, job.IsClosed)

	mine, err := svc.ListMine(context.Background(), employerA)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := svc.ListMine(context.Background(), employerB)
	require.NoError(t, err)
	assert.Empty(t, theirs)

	_, err = svc.ListMine(context.Background(), seeker)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestJobCreate_Validation(t *testing.T) {
	svc := NewJobService(newMemJobs(), nil)
	lo, hi := int64(100), int64(50)

	cases := map[string]func(*JobInput){
		"missing title":  func(in *JobInput) { in.Title = "" },
		"bad type":       func(in *JobInput) { in.JobType = "Gig" },
		"bad level":      func(in *JobInput) { in.ExperienceLevel = "Guru" },
		"negative count": func(in *JobInput) { in.Positions = -1 },
		"salary order":   func(in *JobInput) { in.SalaryMin, in.SalaryMax = &lo, &hi },
	}
	for name, mutate := range cases {
		in := validJob()
		mutate(&in)
		_, err := svc.Create(context.Background(), employerA, in)
		assert.ErrorIs(t, err, domain.ErrValidation, name)
	}
}

func TestJobOwnershipRules(t *testing.T) {
	ctx := context.Background()
	svc := NewJobService(newMemJobs(), nil)

	job, err := svc.Create(ctx, employerA, validJob())
	require.NoError(t, err)

	upd := validJob()
	upd.Title = "Staff Engineer"

	_, err = svc.Update(ctx, employerB, job.ID, upd)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = svc.ToggleClose(ctx, seeker, job.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, employerB, job.ID), domain.ErrForbidden)

	updated, err := svc.Update(ctx, employerA, job.ID, upd)
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", updated.Title)
	assert.Equal(t, "emp-a", updated.CompanyID)

	closed, err := svc.ToggleClose(ctx, employerA, job.ID)
	require.NoError(t, err)
	assert.True(t, closed.IsClosed)
	reopened, err := svc.ToggleClose(ctx, employerA, job.ID)
	require.NoError(t, err)
	assert.False(t, reopened.IsClosed)

	require.NoError(t, svc.Delete(ctx, employerA, job.ID))
	_, err = svc.Get(ctx, job.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, employerA, job.ID), domain.ErrNotFound)
}
