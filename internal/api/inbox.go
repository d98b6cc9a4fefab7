package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/devfolio/backend/internal/middleware"
	"github.com/pageza/devfolio/backend/internal/service"
)

type InboxHandler struct {
	messageService service.IMessageService
	authService    service.IAuthService
}

func NewInboxHandler(messageService service.IMessageService, authService service.IAuthService) *InboxHandler {
	return &InboxHandler{messageService: messageService, authService: authService}
}

func (h *InboxHandler) RegisterRoutes(router *gin.RouterGroup) {
	inbox := router.Group("/inbox")
	inbox.Use(middleware.AuthMiddleware(h.authService))
	{
		inbox.GET("", h.Inbox)
		inbox.GET("/:id", h.ReadMessage)
	}
}

func (h *InboxHandler) Inbox(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	view, err := h.messageService.Inbox(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err, "failed to load inbox")
		return
	}
	c.JSON(http.StatusOK, view)
}

// ReadMessage shows one message and marks it read.
func (h *InboxHandler) ReadMessage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	message, err := h.messageService.Read(c.Request.Context(), userID, id)
	if err != nil {
		serviceError(c, err, "failed to load message")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}
