package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"careerconnect/internal/domain"
	"careerconnect/internal/policy"
	"careerconnect/internal/repository"
	"careerconnect/internal/storage"
)

// ProfileUpdate lists the fields a user may change on their own profile.
// Empty strings and a nil Skills slice leave the stored value unchanged.
// There is deliberately no Email or Role field.
type ProfileUpdate struct {
	Name               string
	Avatar             string
	Resume             string
	Phone              string
	Location           string
	Bio                string
	Skills             []string
	CompanyName        string
	CompanyDescription string
	CompanyLogo        string
}

type ProfileService interface {
	UpdateProfile(ctx context.Context, identity *domain.User, in ProfileUpdate) (*domain.User, error)
	DeleteResume(ctx context.Context, identity *domain.User) error
	GetPublicProfile(ctx context.Context, id string) (*domain.User, error)
}

type profileService struct {
	users  repository.UserRepository
	claims *UploadClaims
	store  storage.Service
	log    logrus.FieldLogger
}

// NewProfileService builds the profile service. Without claims no stored
// object is ever deleted, since ownership cannot be established.
func NewProfileService(users repository.UserRepository, claims *UploadClaims, store storage.Service, log logrus.FieldLogger) ProfileService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &profileService{
		users:  users,
		claims: claims,
		store:  store,
		log:    log.WithField("component", "profile"),
	}
}

func (s *profileService) UpdateProfile(ctx context.Context, identity *domain.User, in ProfileUpdate) (*domain.User, error) {
	if err := policy.Authorize(identity, policy.ActionUpdateProfile, policy.Own(identity)); err != nil {
		return nil, err
	}

	user, err := s.load(ctx, identity.ID)
	if err != nil {
		return nil, err
	}

	refs := []string{in.Avatar, in.Resume}
	if user.IsEmployer() {
		refs = append(refs, in.CompanyLogo)
	}
	for _, ref := range refs {
		if strings.TrimSpace(ref) == "" {
			continue
		}
		if err := s.claims.Claim(ctx, user.ID, ref); err != nil {
			return nil, err
		}
	}

	setIfPresent(&user.Name, in.Name)
	setIfPresent(&user.Avatar, in.Avatar)
	setIfPresent(&user.Resume, in.Resume)
	setIfPresent(&user.Phone, in.Phone)
	setIfPresent(&user.Location, in.Location)
	setIfPresent(&user.Bio, in.Bio)
	if in.Skills != nil {
		user.Skills = cleanSkills(in.Skills)
	}

	if user.IsEmployer() {
		setIfPresent(&user.CompanyName, in.CompanyName)
		setIfPresent(&user.CompanyDescription, in.CompanyDescription)
		setIfPresent(&user.CompanyLogo, in.CompanyLogo)
	}

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user.Public(), nil
}

func (s *profileService) DeleteResume(ctx context.Context, identity *domain.User) error {
	if err := policy.Authorize(identity, policy.ActionDeleteResume, policy.Own(identity)); err != nil {
		return err
	}

	user, err := s.load(ctx, identity.ID)
	if err != nil {
		return err
	}
	if user.Resume == "" {
		return nil
	}

	// the same object may still back the avatar or logo
	shared := user.Resume == user.Avatar || user.Resume == user.CompanyLogo
	if !shared {
		key, owned, err := s.claims.Release(ctx, user.ID, user.Resume)
		if err != nil {
			return err
		}
		if owned && s.store != nil {
			if err := s.store.Delete(ctx, key); err != nil {
				s.log.WithError(err).WithField("user_id", user.ID).Warn("remove resume object")
			}
		}
	}

	user.Resume = ""
	if err := s.users.UpdateProfile(ctx, user); err != nil {
		return fmt.Errorf("clear resume: %w", err)
	}
	return nil
}

func (s *profileService) GetPublicProfile(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

func (s *profileService) load(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}

func setIfPresent(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func cleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		k := strings.ToLower(skill)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, skill)
	}
	return out
}
