package domain

import "time"

// Role is the coarse capability class a user registers with.
type Role string

const (
	RoleJobSeeker Role = "jobseeker"
	RoleEmployer  Role = "employer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleJobSeeker, RoleEmployer:
		return true
	default:
		return false
	}
}

// User represents an account holder of the job board.
//
// Email and Role are fixed at registration. PasswordHash never leaves the
// service layer; use Public before handing a user to a caller.
type User struct {
	ID                 string
	Name               string
	Email              string
	PasswordHash       string `json:"-"`
	Role               Role
	Avatar             string
	Resume             string
	CompanyName        string
	CompanyDescription string
	CompanyLogo        string
	Phone              string
	Location           string
	Bio                string
	Skills             []string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsEmployer reports whether the user registered as an employer.
func (u *User) IsEmployer() bool {
	return u != nil && u.Role == RoleEmployer
}

// Public returns a copy of the user with credential material removed.
func (u *User) Public() *User {
	if u == nil {
		return nil
	}
	out := *u
	out.PasswordHash = ""
	if u.Skills != nil {
		out.Skills = append([]string(nil), u.Skills...)
	}
	return &out
}
