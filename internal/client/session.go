// Package client holds the caller side of the API: a persisted login session
// and a small HTTP client that keeps it in sync with the server.
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNoSession    = errors.New("not logged in")
)

// User mirrors the server's public user shape.
type User struct {
	ID                 string   `json:"_id"`
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	Role               string   `json:"role"`
	Avatar             string   `json:"avatar,omitempty"`
	Resume             string   `json:"resume,omitempty"`
	CompanyName        string   `json:"companyName,omitempty"`
	CompanyDescription string   `json:"companyDescription,omitempty"`
	CompanyLogo        string   `json:"companyLogo,omitempty"`
	Phone              string   `json:"phone,omitempty"`
	Location           string   `json:"location,omitempty"`
	Bio                string   `json:"bio,omitempty"`
	Skills             []string `json:"skills,omitempty"`
}

// State is what a Store persists between runs.
type State struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Store persists session state.
type Store interface {
	Load() (*State, error)
	Save(State) error
	Clear() error
}

// FileStore keeps the session in a JSON file readable only by its owner.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (*State, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	var st State
	if err := json.Unmarshal(b, &st); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &st, nil
}

func (s *FileStore) Save(st State) error {
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Session is the in-memory view of the logged-in user, backed by a Store.
type Session struct {
	mu       sync.RWMutex
	store    Store
	user     *User
	token    string
	onLogout func()
}

type SessionOption func(*Session)

// WithOnLogout registers fn to run after an explicit or implicit logout.
func WithOnLogout(fn func()) SessionOption {
	return func(s *Session) { s.onLogout = fn }
}

func NewSession(store Store, opts ...SessionOption) *Session {
	s := &Session{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load rehydrates the session from the store. Anything incomplete or
// unreadable leaves the session anonymous and wipes the stored copy.
func (s *Session) Load() {
	st, err := s.store.Load()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil || !validState(st) {
		s.user, s.token = nil, ""
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			_ = s.store.Clear()
		}
		return
	}
	s.user = cloneUser(st.User)
	s.token = st.Token
}

func validState(st *State) bool {
	if st == nil || st.User == nil {
		return false
	}
	switch strings.TrimSpace(st.Token) {
	case "", "null", "undefined":
		return false
	}
	return st.User.ID != "" && st.User.Role != ""
}

// Login persists user and token, then makes them current.
func (s *Session) Login(user User, token string) error {
	st := State{Token: token, User: &user}
	if !validState(&st) {
		return fmt.Errorf("incomplete session: token, id and role are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Save(st); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.user = cloneUser(&user)
	s.token = token
	return nil
}

// Logout forgets the session and runs the OnLogout hook.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.user, s.token = nil, ""
	err := s.store.Clear()
	hook := s.onLogout
	s.mu.Unlock()

	if hook != nil {
		hook()
	}
	return err
}

// UpdateUser merges the non-empty fields of patch into the current user.
func (s *Session) UpdateUser(patch User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return ErrNoSession
	}

	merged := cloneUser(s.user)
	mergeUser(merged, &patch)
	if err := s.store.Save(State{Token: s.token, User: merged}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.user = merged
	return nil
}

// ClearResume drops the resume reference, which UpdateUser cannot express.
func (s *Session) ClearResume() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return ErrNoSession
	}

	updated := cloneUser(s.user)
	updated.Resume = ""
	if err := s.store.Save(State{Token: s.token, User: updated}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.user = updated
	return nil
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.token != ""
}

// User returns a copy of the current user.
func (s *Session) User() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return User{}, false
	}
	return *cloneUser(s.user), true
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func cloneUser(u *User) *User {
	out := *u
	if u.Skills != nil {
		out.Skills = append([]string(nil), u.Skills...)
	}
	return &out
}

func mergeUser(dst, src *User) {
	set := func(d *string, v string) {
		if v != "" {
			*d = v
		}
	}
	set(&dst.Name, src.Name)
	set(&dst.Avatar, src.Avatar)
	set(&dst.Resume, src.Resume)
	set(&dst.CompanyName, src.CompanyName)
	set(&dst.CompanyDescription, src.CompanyDescription)
	set(&dst.CompanyLogo, src.CompanyLogo)
	set(&dst.Phone, src.Phone)
	set(&dst.Location, src.Location)
	set(&dst.Bio, src.Bio)
	if src.Skills != nil {
		dst.Skills = append([]string(nil), src.Skills...)
	}
}
