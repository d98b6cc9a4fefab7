package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/devfolio/backend/internal/flash"
	"github.com/pageza/devfolio/backend/internal/middleware"
	"github.com/pageza/devfolio/backend/internal/pagination"
	"github.com/pageza/devfolio/backend/internal/service"
	"github.com/pageza/devfolio/backend/internal/types"
)

// ProfileHandler serves the public side: the directory, single profiles and
// the send-message form.
type ProfileHandler struct {
	profileService   service.IProfileService
	directoryService service.IDirectoryService
	messageService   service.IMessageService
	authService      service.IAuthService
	limiter          *middleware.RateLimiter
}

func NewProfileHandler(
	profileService service.IProfileService,
	directoryService service.IDirectoryService,
	messageService service.IMessageService,
	authService service.IAuthService,
	limiter *middleware.RateLimiter,
) *ProfileHandler {
	return &ProfileHandler{
		profileService:   profileService,
		directoryService: directoryService,
		messageService:   messageService,
		authService:      authService,
		limiter:          limiter,
	}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profiles := router.Group("/profiles")
	{
		profiles.GET("", h.ListProfiles)
		profiles.GET("/:id", h.GetProfile)
		profiles.POST("/:id/messages", middleware.OptionalAuth(h.authService), limit(h.limiter), h.SendMessage)
	}
}

// ListProfiles searches the directory with ?q= and pages with ?page=.
func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	page := pagination.ParsePage(c.Query("page"))

	result, err := h.directoryService.Search(c.Request.Context(), c.Query("q"), page)
	if err != nil {
		serviceError(c, err, "failed to list profiles")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.profileService.GetProfileDetail(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err, "failed to get profile")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// SendMessage writes to a profile. Logged-in senders are attached to the
// message; everyone else is anonymous.
func (h *ProfileHandler) SendMessage(c *gin.Context) {
	recipientID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req types.MessageRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message", "details": err.Error()})
		return
	}

	var sender *uuid.UUID
	if userID, ok := middleware.CurrentUserID(c); ok {
		sender = &userID
	}

	message, err := h.messageService.Create(c.Request.Context(), recipientID, sender, &req)
	if err != nil {
		serviceError(c, err, "failed to send message")
		return
	}

	action(c, http.StatusCreated, flash.Success,
		fmt.Sprintf(`Your message "%s" was sent`, message.Title),
		fmt.Sprintf("%s/%s", profilesPage, recipientID))
}
