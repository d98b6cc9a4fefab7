package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/devfolio/backend/internal/flash"
	"github.com/pageza/devfolio/backend/internal/middleware"
	"github.com/pageza/devfolio/backend/internal/service"
	"github.com/pageza/devfolio/backend/internal/types"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	if h.db != nil {
		sqlDB, err := h.db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "database unreachable"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "DevFolio API is running",
		"version": "v1.0.0",
	})
}

// Notices pops the pending flash notices of the caller's session.
func Notices(c *gin.Context) {
	notices, err := flash.Pop(c)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load notices"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notices": notices})
}

// action flashes a notice and answers with the page the client should go to.
func action(c *gin.Context, status int, level flash.Level, message, redirect string) {
	flash.Add(c, level, message)
	c.JSON(status, types.ActionResponse{Message: message, Redirect: redirect})
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return uuid.Nil, false
	}
	return userID, true
}

func idParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return uuid.Nil, false
	}
	return id, true
}

// notFound reports whether err is one of the lookup misses that map to 404.
func notFound(err error) bool {
	return errors.Is(err, service.ErrProfileNotFound) ||
		errors.Is(err, service.ErrTechnologyNotFound) ||
		errors.Is(err, service.ErrMessageNotFound)
}

// serviceError writes the response for an unexpected service failure.
func serviceError(c *gin.Context, err error, message string) {
	if notFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}
