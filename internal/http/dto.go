package http

import (
	"time"

	"careerconnect/internal/domain"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Avatar   string `json:"avatar"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// profileRequest has no email or role: neither can change after registration.
type profileRequest struct {
	Name               string   `json:"name"`
	Avatar             string   `json:"avatar"`
	Resume             string   `json:"resume"`
	Phone              string   `json:"phone"`
	Location           string   `json:"location"`
	Bio                string   `json:"bio"`
	Skills             []string `json:"skills"`
	CompanyName        string   `json:"companyName"`
	CompanyDescription string   `json:"companyDescription"`
	CompanyLogo        string   `json:"companyLogo"`
}

type jobRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Requirements    string `json:"requirements"`
	Location        string `json:"location"`
	Category        string `json:"category"`
	Type            string `json:"type"`
	ExperienceLevel string `json:"experienceLevel"`
	Positions       int    `json:"positions"`
	SalaryMin       *int64 `json:"salaryMin"`
	SalaryMax       *int64 `json:"salaryMax"`
}

// UserResponse is the public wire shape of a user. It never carries the
// password hash.
type UserResponse struct {
	ID                 string   `json:"_id"`
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	Role               string   `json:"role"`
	Avatar             string   `json:"avatar"`
	Resume             string   `json:"resume"`
	CompanyName        string   `json:"companyName"`
	CompanyDescription string   `json:"companyDescription"`
	CompanyLogo        string   `json:"companyLogo"`
	Phone              string   `json:"phone"`
	Location           string   `json:"location"`
	Bio                string   `json:"bio"`
	Skills             []string `json:"skills"`
	CreatedAt          string   `json:"createdAt"`
	UpdatedAt          string   `json:"updatedAt"`
}

// AuthResponse is a user plus a freshly issued token.
type AuthResponse struct {
	UserResponse
	Token string `json:"token"`
}

type JobResponse struct {
	ID              string `json:"_id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Requirements    string `json:"requirements"`
	Location        string `json:"location"`
	Category        string `json:"category"`
	Type            string `json:"type"`
	ExperienceLevel string `json:"experienceLevel"`
	Positions       int    `json:"positions"`
	SalaryMin       *int64 `json:"salaryMin,omitempty"`
	SalaryMax       *int64 `json:"salaryMax,omitempty"`
	Company         string `json:"company"`
	IsClosed        bool   `json:"isClosed"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

func userToResponse(u *domain.User) UserResponse {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	return UserResponse{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		Role:               string(u.Role),
		Avatar:             u.Avatar,
		Resume:             u.Resume,
		CompanyName:        u.CompanyName,
		CompanyDescription: u.CompanyDescription,
		CompanyLogo:        u.CompanyLogo,
		Phone:              u.Phone,
		Location:           u.Location,
		Bio:                u.Bio,
		Skills:             skills,
		CreatedAt:          formatTime(u.CreatedAt),
		UpdatedAt:          formatTime(u.UpdatedAt),
	}
}

func jobToResponse(j *domain.Job) JobResponse {
	return JobResponse{
		ID:              j.ID,
		Title:           j.Title,
		Description:     j.Description,
		Requirements:    j.Requirements,
		Location:        j.Location,
		Category:        j.Category,
		Type:            string(j.JobType),
		ExperienceLevel: string(j.ExperienceLevel),
		Positions:       j.Positions,
		SalaryMin:       j.SalaryMin,
		SalaryMax:       j.SalaryMax,
		Company:         j.CompanyID,
		IsClosed:        j.IsClosed,
		CreatedAt:       formatTime(j.CreatedAt),
		UpdatedAt:       formatTime(j.UpdatedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
