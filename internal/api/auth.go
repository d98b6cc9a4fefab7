package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/devfolio/backend/internal/flash"
	"github.com/pageza/devfolio/backend/internal/middleware"
	"github.com/pageza/devfolio/backend/internal/service"
	"github.com/pageza/devfolio/backend/internal/types"
)

const (
	profilesPage    = "/profiles"
	editAccountPage = "/account/edit"
	loginPage       = "/login"
)

type AuthHandler struct {
	authService service.IAuthService
	limiter     *middleware.RateLimiter
}

func NewAuthHandler(authService service.IAuthService, limiter *middleware.RateLimiter) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		limiter:     limiter,
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	auth.Use(middleware.OptionalAuth(h.authService))
	{
		auth.POST("/login", limit(h.limiter), h.Login)
		auth.POST("/logout", h.Logout)
		auth.POST("/register", h.Register)
	}
}

// Login authenticates by username and password. Callers that already hold a
// valid token are sent back to the directory.
func (h *AuthHandler) Login(c *gin.Context) {
	if _, ok := middleware.CurrentUserID(c); ok {
		c.Header("Location", profilesPage)
		c.JSON(http.StatusSeeOther, types.ActionResponse{Message: "already logged in", Redirect: profilesPage})
		return
	}

	var req types.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		action(c, http.StatusBadRequest, flash.Error, "login failed", loginPage)
		return
	}

	user, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		action(c, http.StatusUnauthorized, flash.Error, fmt.Sprintf("user not found: %s", req.Username), loginPage)
		return
	case errors.Is(err, service.ErrInvalidCredentials):
		action(c, http.StatusUnauthorized, flash.Error, "login failed", loginPage)
		return
	case err != nil:
		serviceError(c, err, "failed to log in")
		return
	}

	token, _, err := h.authService.GenerateToken(user)
	if err != nil {
		serviceError(c, err, "failed to generate token")
		return
	}

	c.JSON(http.StatusOK, types.AuthResponse{
		ActionResponse: types.ActionResponse{Message: "logged in", Redirect: safeNext(c.Query("next"))},
		Token:          token,
		UserID:         user.ID,
	})
}

// Logout revokes the presented token, if any.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		action(c, http.StatusOK, flash.Info, "logged out", profilesPage)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		serviceError(c, err, "failed to log out")
		return
	}
	action(c, http.StatusOK, flash.Info, fmt.Sprintf("User %s logged out", claims.Username), profilesPage)
}

// Register creates the account, logs it in and sends the client to the
// profile editor.
func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		action(c, http.StatusBadRequest, flash.Error, "registration failed", "/register")
		return
	}

	user, _, err := h.authService.Register(c.Request.Context(), &req)
	if errors.Is(err, service.ErrUserExists) {
		action(c, http.StatusConflict, flash.Error, "registration failed", "/register")
		return
	}
	if err != nil {
		serviceError(c, err, "failed to register")
		return
	}

	token, _, err := h.authService.GenerateToken(user)
	if err != nil {
		serviceError(c, err, "failed to generate token")
		return
	}

	message := fmt.Sprintf("User %s created successfully", user.Username)
	flash.Add(c, flash.Success, message)
	c.JSON(http.StatusCreated, types.AuthResponse{
		ActionResponse: types.ActionResponse{Message: message, Redirect: editAccountPage},
		Token:          token,
		UserID:         user.ID,
	})
}

// safeNext only follows local absolute paths.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return profilesPage
	}
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" {
		return profilesPage
	}
	return next
}
