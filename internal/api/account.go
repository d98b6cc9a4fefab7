package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/devfolio/backend/internal/flash"
	"github.com/pageza/devfolio/backend/internal/middleware"
	"github.com/pageza/devfolio/backend/internal/service"
	"github.com/pageza/devfolio/backend/internal/types"
)

const accountPage = "/account"

// AccountHandler serves the owner's dashboard, profile editing and the
// technology list.
type AccountHandler struct {
	profileService    service.IProfileService
	technologyService service.ITechnologyService
	authService       service.IAuthService
}

func NewAccountHandler(profileService service.IProfileService, technologyService service.ITechnologyService, authService service.IAuthService) *AccountHandler {
	return &AccountHandler{
		profileService:    profileService,
		technologyService: technologyService,
		authService:       authService,
	}
}

func (h *AccountHandler) RegisterRoutes(router *gin.RouterGroup) {
	account := router.Group("/account")
	account.Use(middleware.AuthMiddleware(h.authService))
	{
		account.GET("", h.GetAccount)
		account.PUT("", h.UpdateAccount)
		account.DELETE("", h.DeleteAccount)

		account.GET("/technologies", h.ListTechnologies)
		account.POST("/technologies", h.CreateTechnology)
		account.PUT("/technologies/:id", h.UpdateTechnology)
		account.DELETE("/technologies/:id", h.DeleteTechnology)
	}
}

func (h *AccountHandler) GetAccount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	view, err := h.profileService.GetAccount(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err, "failed to get account")
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateAccount takes the multipart edit form; the avatar part is optional.
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile", "details": err.Error()})
		return
	}

	avatar, err := c.FormFile("avatar")
	if err != nil && !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid avatar upload"})
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), userID, &req, avatar)
	if errors.Is(err, service.ErrInvalidAvatar) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errors.Is(err, service.ErrUserExists) {
		action(c, http.StatusConflict, flash.Error, fmt.Sprintf("nickname %s is already taken", req.Nickname), editAccountPage)
		return
	}
	if err != nil {
		serviceError(c, err, "failed to update profile")
		return
	}

	flash.Add(c, flash.Success, "Profile updated")
	c.JSON(http.StatusOK, gin.H{
		"message":  "Profile updated",
		"redirect": accountPage,
		"profile":  profile,
	})
}

// DeleteAccount removes the profile and its user, then revokes the token.
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.profileService.DeleteProfile(c.Request.Context(), userID); err != nil {
		serviceError(c, err, "failed to delete account")
		return
	}
	if claims, ok := middleware.CurrentClaims(c); ok {
		if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
			_ = c.Error(err)
		}
	}
	action(c, http.StatusOK, flash.Info, "Account deleted", profilesPage)
}

func (h *AccountHandler) ListTechnologies(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	technologies, err := h.technologyService.List(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err, "failed to list technologies")
		return
	}
	c.JSON(http.StatusOK, gin.H{"technologies": technologies})
}

func (h *AccountHandler) CreateTechnology(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.TechnologyRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid technology", "details": err.Error()})
		return
	}

	technology, err := h.technologyService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		serviceError(c, err, "failed to create technology")
		return
	}
	action(c, http.StatusCreated, flash.Success, fmt.Sprintf("Technology %s added", technology.Name), accountPage)
}

func (h *AccountHandler) UpdateTechnology(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req types.TechnologyRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid technology", "details": err.Error()})
		return
	}

	if _, err := h.technologyService.Update(c.Request.Context(), userID, id, &req); err != nil {
		serviceError(c, err, "failed to update technology")
		return
	}
	action(c, http.StatusOK, flash.Success, "Technology updated", accountPage)
}

func (h *AccountHandler) DeleteTechnology(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.technologyService.Delete(c.Request.Context(), userID, id); err != nil {
		serviceError(c, err, "failed to delete technology")
		return
	}
	action(c, http.StatusOK, flash.Success, "Technology deleted", accountPage)
}
