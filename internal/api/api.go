package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pageza/devfolio/backend/internal/flash"
	"github.com/pageza/devfolio/backend/internal/middleware"
	"github.com/pageza/devfolio/backend/internal/service"
)

// Dependencies is everything the HTTP layer needs. Rate limiters may be nil.
type Dependencies struct {
	DB           *gorm.DB
	Auth         service.IAuthService
	Profiles     service.IProfileService
	Directory    service.IDirectoryService
	Technologies service.ITechnologyService
	Messages     service.IMessageService
	Flash        flash.Store
	LoginLimiter *middleware.RateLimiter
	MsgLimiter   *middleware.RateLimiter
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	router.GET("/health", NewHealthHandler(deps.DB).HealthCheck)

	v1 := router.Group("/api/v1")
	v1.Use(flash.Middleware(deps.Flash))
	v1.GET("/health", NewHealthHandler(deps.DB).HealthCheck)
	v1.GET("/notices", Notices)

	NewAuthHandler(deps.Auth, deps.LoginLimiter).RegisterRoutes(v1)
	NewProfileHandler(deps.Profiles, deps.Directory, deps.Messages, deps.Auth, deps.MsgLimiter).RegisterRoutes(v1)
	NewAccountHandler(deps.Profiles, deps.Technologies, deps.Auth).RegisterRoutes(v1)
	NewInboxHandler(deps.Messages, deps.Auth).RegisterRoutes(v1)
}

func limit(l *middleware.RateLimiter) gin.HandlerFunc {
	if l == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return l.RateLimitMiddleware()
}
