package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/devfolio/backend/config"
	"github.com/pageza/devfolio/backend/internal/testhelpers"
	"github.com/pageza/devfolio/backend/internal/types"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	db := testhelpers.SetupTestDatabase(t)

	cfg := &config.Config{
		ServerHost:      "localhost",
		ServerPort:      "0",
		ShutdownTimeout: time.Second,
		CORSOrigins:     []string{"http://localhost:5173"},
		JWTSecret:       "test-secret",
		TokenTTL:        time.Hour,
		AvatarStorage:   "local",
		MediaRoot:       t.TempDir(),
		MediaURL:        "/media/",
	}

	srv, err := New(context.Background(), cfg, db, nil)
	require.NoError(t, err)
	return srv
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv.Handler(), http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterLoginLogoutFlow(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	w := doJSON(t, h, http.MethodPost, "/api/v1/auth/register", types.RegisterRequest{
		Username:        "Alice",
		Email:           "alice@example.com",
		Password:        "password123",
		PasswordConfirm: "password123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, h, http.MethodPost, "/api/v1/auth/login", types.LoginRequest{Username: "alice", Password: "password123"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login types.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	w = doJSON(t, h, http.MethodGet, "/api/v1/account", nil, login.Token)
	require.Equal(t, http.StatusOK, w.Code)
	var account types.AccountView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &account))
	assert.Equal(t, "Alice", account.Profile.Nickname)

	w = doJSON(t, h, http.MethodPost, "/api/v1/auth/logout", nil, login.Token)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, h, http.MethodGet, "/api/v1/account", nil, login.Token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMessageFlow(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	w := doJSON(t, h, http.MethodPost, "/api/v1/auth/register", types.RegisterRequest{
		Username: "bob", Email: "bob@example.com", Password: "password123", PasswordConfirm: "password123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var reg types.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))

	w = doJSON(t, h, http.MethodGet, "/api/v1/account", nil, reg.Token)
	require.Equal(t, http.StatusOK, w.Code)
	var account types.AccountView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &account))

	w = doJSON(t, h, http.MethodPost, "/api/v1/profiles/"+account.Profile.ID.String()+"/messages", types.MessageRequest{
		Name: "Visitor", Email: "visitor@example.com", Title: "Hi Bob", Body: "Let's talk",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, h, http.MethodGet, "/api/v1/inbox", nil, reg.Token)
	require.Equal(t, http.StatusOK, w.Code)
	var inbox types.InboxView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &inbox))
	require.Len(t, inbox.Messages, 1)
	assert.Equal(t, int64(1), inbox.UnreadCount)

	w = doJSON(t, h, http.MethodGet, "/api/v1/inbox/"+inbox.Messages[0].ID.String(), nil, reg.Token)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, h, http.MethodGet, "/api/v1/inbox", nil, reg.Token)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &inbox))
	assert.Zero(t, inbox.UnreadCount)
}

func TestShutdownWithoutStart(t *testing.T) {
	srv := newTestServer(t)
	assert.NoError(t, srv.Shutdown(context.Background()))
}
