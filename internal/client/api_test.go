package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validToken = "good-token"

func newTestAPI(t *testing.T, opts ...SessionOption) (*API, *Session) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["password"] != "password123" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid email or password"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"_id": "u-1", "name": "Ann", "email": req["email"], "role": "jobseeker", "token": validToken,
		})
	})
	mux.HandleFunc("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		writeJSON(w, http.StatusCreated, map[string]any{
			"_id": "u-2", "name": req.Name, "email": req.Email, "role": req.Role, "token": validToken,
		})
	})
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+validToken {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "not authorized, token failed"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"_id": "u-1", "name": "Ann", "role": "jobseeker"})
	})
	mux.HandleFunc("PUT /api/user/profile", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+validToken {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "not authorized, token failed"})
			return
		}
		var req ProfileUpdate
		_ = json.NewDecoder(r.Body).Decode(&req)
		writeJSON(w, http.StatusOK, map[string]any{"_id": "u-1", "name": req.Name, "role": "jobseeker", "bio": req.Bio})
	})
	mux.HandleFunc("DELETE /api/user/resume", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+validToken {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "not authorized, token failed"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "resume deleted successfully"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	session, _ := newFileSession(t, opts...)
	return NewAPI(srv.URL+"/", session, srv.Client()), session
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestAPI_LoginStartsSession(t *testing.T) {
	api, session := newTestAPI(t)

	user, err := api.Login(context.Background(), "ann@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
	assert.True(t, session.IsAuthenticated())
	assert.Equal(t, validToken, session.Token())

	me, err := api.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u-1", me.ID)
}

func TestAPI_LoginFailureKeepsSessionAnonymous(t *testing.T) {
	api, session := newTestAPI(t)

	_, err := api.Login(context.Background(), "ann@example.com", "wrong")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "invalid email or password", apiErr.Message)
	assert.False(t, session.IsAuthenticated())
}

func TestAPI_RegisterStartsSession(t *testing.T) {
	api, session := newTestAPI(t)

	user, err := api.Register(context.Background(), RegisterRequest{
		Name: "Acme", Email: "hr@acme.com", Password: "password123", Role: "employer",
	})
	require.NoError(t, err)
	assert.Equal(t, "employer", user.Role)
	u, ok := session.User()
	require.True(t, ok)
	assert.Equal(t, "u-2", u.ID)
}

func TestAPI_UnauthorizedLogsOut(t *testing.T) {
	var loggedOut bool
	api, session := newTestAPI(t, WithOnLogout(func() { loggedOut = true }))
	require.NoError(t, session.Login(User{ID: "u-1", Role: "jobseeker"}, "stale-token"))

	_, err := api.Me(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, session.IsAuthenticated())
	assert.True(t, loggedOut)
}

func TestAPI_ProtectedCallWithoutSession(t *testing.T) {
	api, _ := newTestAPI(t)

	_, err := api.Me(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestAPI_UpdateProfileRefreshesSession(t *testing.T) {
	api, session := newTestAPI(t)
	_, err := api.Login(context.Background(), "ann@example.com", "password123")
	require.NoError(t, err)

	_, err = api.UpdateProfile(context.Background(), ProfileUpdate{Name: "Ann Lee", Bio: "gopher"})
	require.NoError(t, err)

	u, ok := session.User()
	require.True(t, ok)
	assert.Equal(t, "Ann Lee", u.Name)
	assert.Equal(t, "gopher", u.Bio)
	assert.Equal(t, "ann@example.com", u.Email)
}

func TestAPI_DeleteResumeClearsSession(t *testing.T) {
	api, session := newTestAPI(t)
	require.NoError(t, session.Login(User{ID: "u-1", Role: "jobseeker", Resume: "http://files.test/cv.pdf"}, validToken))

	require.NoError(t, api.DeleteResume(context.Background()))

	u, ok := session.User()
	require.True(t, ok)
	assert.Empty(t, u.Resume)
	assert.Equal(t, "u-1", u.ID)
}

func TestAPI_DeleteResumeUnauthorizedLogsOut(t *testing.T) {
	api, session := newTestAPI(t)
	require.NoError(t, session.Login(User{ID: "u-1", Role: "jobseeker", Resume: "cv.pdf"}, "stale-token"))

	err := api.DeleteResume(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, session.IsAuthenticated())
}
