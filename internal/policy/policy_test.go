package policy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"careerconnect/internal/domain"
)

func TestCanPerform(t *testing.T) {
	employer := &domain.User{ID: "emp-1", Role: domain.RoleEmployer}
	otherEmployer := &domain.User{ID: "emp-2", Role: domain.RoleEmployer}
	seeker := &domain.User{ID: "seek-1", Role: domain.RoleJobSeeker}
	bogus := &domain.User{ID: "x", Role: domain.Role("admin")}

	ownedByEmployer := &Resource{OwnerID: "emp-1"}

	tests := []struct {
		name     string
		identity *domain.User
		action   Action
		resource *Resource
		want     bool
	}{
		{"employer creates job", employer, ActionCreateJob, nil, true},
		{"jobseeker creates job", seeker, ActionCreateJob, nil, false},
		{"owner updates job", employer, ActionUpdateJob, ownedByEmployer, true},
		{"other employer updates job", otherEmployer, ActionUpdateJob, ownedByEmployer, false},
		{"owner closes job", employer, ActionCloseJob, ownedByEmployer, true},
		{"owner deletes job", employer, ActionDeleteJob, ownedByEmployer, true},
		{"update without resource", employer, ActionUpdateJob, nil, false},
		{"jobseeker deletes job", seeker, ActionDeleteJob, &Resource{OwnerID: "seek-1"}, false},
		{"jobseeker deletes own resume", seeker, ActionDeleteResume, Own(seeker), true},
		{"jobseeker deletes other resume", seeker, ActionDeleteResume, &Resource{OwnerID: "seek-2"}, false},
		{"employer deletes resume", employer, ActionDeleteResume, Own(employer), false},
		{"own profile update", seeker, ActionUpdateProfile, Own(seeker), true},
		{"foreign profile update", employer, ActionUpdateProfile, Own(seeker), false},
		{"nil identity", nil, ActionCreateJob, nil, false},
		{"unknown role", bogus, ActionUpdateProfile, Own(bogus), false},
		{"unknown action", employer, Action("job:publish"), ownedByEmployer, false},
		{"empty owner", employer, ActionUpdateJob, &Resource{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanPerform(tt.identity, tt.action, tt.resource))
		})
	}
}

func TestAuthorizeReturnsForbidden(t *testing.T) {
	seeker := &domain.User{ID: "seek-1", Role: domain.RoleJobSeeker}

	err := Authorize(seeker, ActionCreateJob, nil)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	assert.False(t, errors.Is(err, domain.ErrUnauthenticated))
	assert.Equal(t, "only employers can post jobs", err.Error())

	assert.NoError(t, Authorize(seeker, ActionDeleteResume, Own(seeker)))
}
