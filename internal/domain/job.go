package domain

import "time"

type JobType string

const (
	JobTypeFullTime   JobType = "Full-Time"
	JobTypePartTime   JobType = "Part-Time"
	JobTypeContract   JobType = "Contract"
	JobTypeFreelance  JobType = "Freelance"
	JobTypeInternship JobType = "Internship"
)

func (t JobType) Valid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeFreelance, JobTypeInternship:
		return true
	default:
		return false
	}
}

type ExperienceLevel string

const (
	ExperienceEntry     ExperienceLevel = "Entry Level"
	ExperienceMid       ExperienceLevel = "Mid Level"
	ExperienceSenior    ExperienceLevel = "Senior Level"
	ExperienceDirector  ExperienceLevel = "Director"
	ExperienceExecutive ExperienceLevel = "Executive"
)

func (l ExperienceLevel) Valid() bool {
	switch l {
	case ExperienceEntry, ExperienceMid, ExperienceSenior, ExperienceDirector, ExperienceExecutive:
		return true
	default:
		return false
	}
}

// Job is a posting owned by an employer. CompanyID references User.ID.
type Job struct {
	ID              string
	Title           string
	Description     string
	Requirements    string
	Location        string
	Category        string
	JobType         JobType
	ExperienceLevel ExperienceLevel
	Positions       int
	SalaryMin       *int64
	SalaryMax       *int64
	CompanyID       string
	IsClosed        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
