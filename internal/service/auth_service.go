package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"careerconnect/internal/auth"
	"careerconnect/internal/domain"
	"careerconnect/internal/repository"
)

const (
	minPasswordLength = 8
	// bcrypt ignores input beyond 72 bytes
	maxPasswordLength = 72

	msgMissingFields      = "please fill in all fields"
	msgUserExists         = "user already exists"
	msgInvalidCredentials = "invalid email or password"
	msgNotAuthenticated   = "not authorized, no identity"
)

// RegisterInput is the registration payload. Avatar is optional.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
	Avatar   string
}

// AuthResult pairs the public user projection with a freshly issued token.
type AuthResult struct {
	User  *domain.User
	Token string
}

// AuthService describes the registration and login lifecycle.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// Identify resolves a verified token subject to its stored user.
	Identify(ctx context.Context, userID string) (*domain.User, error)
	// CurrentIdentity returns the identity attached to ctx by the access guard.
	CurrentIdentity(ctx context.Context) (*domain.User, error)
}

type authService struct {
	users  repository.UserRepository
	hasher auth.PasswordHasher
	tokens auth.TokenIssuer
	claims *UploadClaims
	log    logrus.FieldLogger

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(users repository.UserRepository, hasher auth.PasswordHasher, tokens auth.TokenIssuer, claims *UploadClaims, log logrus.FieldLogger) AuthService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &authService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		claims: claims,
		log:    log.WithField("component", "auth"),
	}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	role := domain.Role(strings.TrimSpace(string(in.Role)))

	if name == "" || email == "" || in.Password == "" || role == "" {
		return nil, domain.Validation(msgMissingFields)
	}
	if !role.Valid() {
		return nil, domain.Validation("role must be jobseeker or employer")
	}
	if !validEmail(email) {
		return nil, domain.Validation("please enter a valid email address")
	}
	if len(in.Password) < minPasswordLength {
		return nil, domain.Validation(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if len(in.Password) > maxPasswordLength {
		return nil, domain.Validation(fmt.Sprintf("password must be at most %d bytes", maxPasswordLength))
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, domain.Conflict(msgUserExists)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	avatar := strings.TrimSpace(in.Avatar)
	if avatar != "" {
		if err := s.claims.Available(ctx, avatar); err != nil {
			return nil, err
		}
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Avatar:       avatar,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// a concurrent registration won the UNIQUE constraint
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.Conflict(msgUserExists)
		}
		return nil, err
	}

	if avatar != "" {
		// lost a race for the file: the account stands, the avatar stays unowned
		if err := s.claims.Claim(ctx, user.ID, avatar); err != nil {
			s.log.WithError(err).WithField("user_id", user.ID).Warn("claim avatar")
		}
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("user registered")
	return &AuthResult{User: user.Public(), Token: token}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.Unauthenticated(msgInvalidCredentials)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// spend the same bcrypt work as a real mismatch
			s.hasher.Verify(password, s.fallbackHash())
			s.log.Debug("login rejected")
			return nil, domain.Unauthenticated(msgInvalidCredentials)
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.log.Debug("login rejected")
		return nil, domain.Unauthenticated(msgInvalidCredentials)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	s.log.WithField("user_id", user.ID).Info("user logged in")
	return &AuthResult{User: user.Public(), Token: token}, nil
}

func (s *authService) Identify(ctx context.Context, userID string) (*domain.User, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.NotFound("user not found")
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NotFound("user not found")
		}
		return nil, err
	}
	return user.Public(), nil
}

func (s *authService) CurrentIdentity(ctx context.Context) (*domain.User, error) {
	user, ok := auth.IdentityFrom(ctx)
	if !ok {
		return nil, domain.Unauthenticated(msgNotAuthenticated)
	}
	return user, nil
}

// fallbackHash is a valid hash that no submitted password matches.
func (s *authService) fallbackHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash(uuid.NewString())
		if err != nil {
			s.log.WithError(err).Warn("prepare fallback hash")
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email && strings.Contains(email[strings.LastIndex(email, "@")+1:], ".")
}
