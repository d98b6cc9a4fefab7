package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/devfolio/backend/internal/flash"
	"github.com/pageza/devfolio/backend/internal/service"
	"github.com/pageza/devfolio/backend/internal/types"
)

func TestNoticesFollowTheSession(t *testing.T) {
	a := setupTestAPI(t)
	a.auth.On("Login", mock.Anything, "ghost", "secret123").Return(nil, service.ErrUserNotFound)

	w := a.do(http.MethodPost, "/api/v1/auth/login", types.LoginRequest{Username: "ghost", Password: "secret123"}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	pop := func() []flash.Notice {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/notices", nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		rec := httptest.NewRecorder()
		a.router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Notices []flash.Notice `json:"notices"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		return resp.Notices
	}

	notices := pop()
	require.Len(t, notices, 1)
	assert.Equal(t, flash.Error, notices[0].Level)
	assert.Equal(t, "user not found: ghost", notices[0].Text)

	assert.Empty(t, pop())
}
