// Package policy decides whether an authenticated identity may perform an
// action. Decisions depend only on the identity's role and, where a resource
// is involved, on who owns it.
package policy

import (
	"careerconnect/internal/domain"
)

type Action string

const (
	ActionCreateJob     Action = "job:create"
	ActionUpdateJob     Action = "job:update"
	ActionCloseJob      Action = "job:close"
	ActionDeleteJob     Action = "job:delete"
	ActionDeleteResume  Action = "resume:delete"
	ActionUpdateProfile Action = "profile:update"
)

// Resource describes the target of an action. OwnerID is the User.ID that
// owns it: the posting employer for a job, the account itself for profile data.
type Resource struct {
	OwnerID string
}

// CanPerform reports whether identity may perform action on resource.
// Actions on an existing resource require a non-nil resource.
func CanPerform(identity *domain.User, action Action, resource *Resource) bool {
	if identity == nil || identity.ID == "" || !identity.Role.Valid() {
		return false
	}

	switch action {
	case ActionCreateJob:
		return identity.Role == domain.RoleEmployer
	case ActionUpdateJob, ActionCloseJob, ActionDeleteJob:
		return identity.Role == domain.RoleEmployer && owns(identity, resource)
	case ActionDeleteResume:
		return identity.Role == domain.RoleJobSeeker && owns(identity, resource)
	case ActionUpdateProfile:
		return owns(identity, resource)
	default:
		return false
	}
}

// Authorize is CanPerform returning a forbidden error on denial.
func Authorize(identity *domain.User, action Action, resource *Resource) error {
	if CanPerform(identity, action, resource) {
		return nil
	}
	return domain.Forbidden(denialMessage(action))
}

// Own returns a resource owned by user.
func Own(user *domain.User) *Resource {
	if user == nil {
		return nil
	}
	return &Resource{OwnerID: user.ID}
}

func owns(identity *domain.User, resource *Resource) bool {
	return resource != nil && resource.OwnerID != "" && resource.OwnerID == identity.ID
}

func denialMessage(action Action) string {
	switch action {
	case ActionCreateJob:
		return "only employers can post jobs"
	case ActionUpdateJob, ActionCloseJob, ActionDeleteJob:
		return "not authorized to modify this job"
	case ActionDeleteResume:
		return "only jobseekers can delete resume"
	case ActionUpdateProfile:
		return "not authorized to update this profile"
	default:
		return "forbidden"
	}
}
