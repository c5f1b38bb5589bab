package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"careerconnect/internal/auth"
	"careerconnect/internal/domain"
	"careerconnect/internal/repository"
	"careerconnect/internal/storage"
)

type memUsers struct {
	mu      sync.Mutex
	byID    map[string]domain.User
	creates int
	// beforeCreate runs after the service's uniqueness lookup, letting a test
	// slip in a competing registration.
	beforeCreate func()
	getErr       error
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[string]domain.User{}}
}

func (m *memUsers) Init(context.Context) error { return nil }

func (m *memUsers) Create(_ context.Context, u *domain.User) error {
	if m.beforeCreate != nil {
		hook := m.beforeCreate
		m.beforeCreate = nil
		hook()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if strings.EqualFold(existing.Email, u.Email) {
			return fmt.Errorf("insert user: %w", repository.ErrDuplicate)
		}
	}
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	m.byID[u.ID] = *u
	m.creates++
	return nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, u := range m.byID {
		if strings.EqualFold(u.Email, email) {
			cp := u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("user: %w", repository.ErrNotFound)
}

func (m *memUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("user: %w", repository.ErrNotFound)
	}
	return &u, nil
}

func (m *memUsers) UpdateProfile(_ context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.byID[u.ID]
	if !ok {
		return fmt.Errorf("user: %w", repository.ErrNotFound)
	}
	email, role, hash := stored.Email, stored.Role, stored.PasswordHash
	stored = *u
	stored.Email, stored.Role, stored.PasswordHash = email, role, hash
	m.byID[u.ID] = stored
	return nil
}

func (m *memUsers) put(u domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[u.ID] = u
}

type memJobs struct {
	mu   sync.Mutex
	byID map[string]domain.Job
}

func newMemJobs() *memJobs { return &memJobs{byID: map[string]domain.Job{}} }

func (m *memJobs) Init(context.Context) error { return nil }

func (m *memJobs) Create(_ context.Context, job *domain.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[job.ID] = *job
	return nil
}

func (m *memJobs) Update(_ context.Context, job *domain.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[job.ID]; !ok {
		return repository.ErrNotFound
	}
	m.byID[job.ID] = *job
	return nil
}

func (m *memJobs) SetClosed(_ context.Context, id string, closed bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	job.IsClosed = closed
	m.byID[id] = job
	return nil
}

func (m *memJobs) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memJobs) Get(_ context.Context, id string) (*domain.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("job: %w", repository.ErrNotFound)
	}
	return &job, nil
}

func (m *memJobs) ListByCompany(_ context.Context, companyID string) ([]domain.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Job
	for _, job := range m.byID {
		if job.CompanyID == companyID {
			out = append(out, job)
		}
	}
	return out, nil
}

func (m *memJobs) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

type memStore struct {
	mu      sync.Mutex
	objects map[string]string
	deleted []string
	delErr  error
}

func newMemStore() *memStore { return &memStore{objects: map[string]string{}} }

func (m *memStore) Put(_ context.Context, obj storage.Object) (string, error) {
	b, err := io.ReadAll(obj.Body)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[obj.Key] = string(b)
	return obj.Key, nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, key)
	delete(m.objects, key)
	return m.delErr
}

func (m *memStore) URL(key string) string { return "http://files.test/uploads/" + key }

func newTestLogger() (*logrus.Logger, *test.Hook) {
	return test.NewNullLogger()
}

func newTestIssuer(t *testing.T) *auth.JWTIssuer {
	t.Helper()
	issuer, err := auth.NewJWTIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	return issuer
}

func newTestAuthService(t *testing.T, users repository.UserRepository) (AuthService, *auth.JWTIssuer) {
	t.Helper()
	issuer := newTestIssuer(t)
	log, _ := newTestLogger()
	return NewAuthService(users, auth.NewBcryptHasher(bcrypt.MinCost), issuer, nil, log), issuer
}

type memUploads struct {
	mu     sync.Mutex
	owners map[string]string
}

func newMemUploads() *memUploads { return &memUploads{owners: map[string]string{}} }

func (m *memUploads) Init(context.Context) error { return nil }

func (m *memUploads) Claim(_ context.Context, key, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if owner, ok := m.owners[key]; ok && owner != ownerID {
		return fmt.Errorf("upload %s: %w", key, repository.ErrDuplicate)
	}
	m.owners[key] = ownerID
	return nil
}

func (m *memUploads) Owner(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	owner, ok := m.owners[key]
	if !ok {
		return "", fmt.Errorf("upload: %w", repository.ErrNotFound)
	}
	return owner, nil
}

func (m *memUploads) Release(_ context.Context, key, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.owners[key] != ownerID || ownerID == "" {
		return fmt.Errorf("upload: %w", repository.ErrNotFound)
	}
	delete(m.owners, key)
	return nil
}

func (m *memUploads) owner(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.owners[key]
}

// countingHasher records how often Verify runs.
type countingHasher struct {
	auth.PasswordHasher
	mu       sync.Mutex
	verifies int
	hashes   []string
}

func (h *countingHasher) Verify(password, hash string) bool {
	h.mu.Lock()
	h.verifies++
	h.hashes = append(h.hashes, hash)
	h.mu.Unlock()
	return h.PasswordHasher.Verify(password, hash)
}
