package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// APIError is a non-2xx response carrying the server's message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Avatar   string `json:"avatar,omitempty"`
}

type ProfileUpdate struct {
	Name               string   `json:"name,omitempty"`
	Avatar             string   `json:"avatar,omitempty"`
	Resume             string   `json:"resume,omitempty"`
	Phone              string   `json:"phone,omitempty"`
	Location           string   `json:"location,omitempty"`
	Bio                string   `json:"bio,omitempty"`
	Skills             []string `json:"skills,omitempty"`
	CompanyName        string   `json:"companyName,omitempty"`
	CompanyDescription string   `json:"companyDescription,omitempty"`
	CompanyLogo        string   `json:"companyLogo,omitempty"`
}

type authResponse struct {
	User
	Token string `json:"token"`
}

// API talks to the REST server on behalf of a Session. A 401 from any
// authenticated call ends the session.
type API struct {
	baseURL string
	http    *http.Client
	session *Session
}

func NewAPI(baseURL string, session *Session, httpClient *http.Client) *API {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &API{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		session: session,
	}
}

func (a *API) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	var resp authResponse
	if err := a.do(ctx, http.MethodPost, "/api/auth/register", req, &resp, false); err != nil {
		return nil, err
	}
	if err := a.session.Login(resp.User, resp.Token); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (a *API) Login(ctx context.Context, email, password string) (*User, error) {
	var resp authResponse
	body := map[string]string{"email": email, "password": password}
	if err := a.do(ctx, http.MethodPost, "/api/auth/login", body, &resp, false); err != nil {
		return nil, err
	}
	if err := a.session.Login(resp.User, resp.Token); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (a *API) Me(ctx context.Context) (*User, error) {
	var user User
	if err := a.do(ctx, http.MethodGet, "/api/auth/me", nil, &user, true); err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *API) UpdateProfile(ctx context.Context, in ProfileUpdate) (*User, error) {
	var user User
	if err := a.do(ctx, http.MethodPut, "/api/user/profile", in, &user, true); err != nil {
		return nil, err
	}
	if err := a.session.UpdateUser(user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *API) DeleteResume(ctx context.Context) error {
	if err := a.do(ctx, http.MethodDelete, "/api/user/resume", nil, nil, true); err != nil {
		return err
	}
	return a.session.ClearResume()
}

func (a *API) do(ctx context.Context, method, path string, in, out any, authenticated bool) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		token := a.session.Token()
		if token == "" {
			return ErrNoSession
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var msg struct {
			Message string `json:"message"`
		}
		if json.NewDecoder(resp.Body).Decode(&msg) == nil && msg.Message != "" {
			apiErr.Message = msg.Message
		}
		if authenticated && resp.StatusCode == http.StatusUnauthorized {
			if err := a.session.Logout(); err != nil {
				return errors.Join(apiErr, err)
			}
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
