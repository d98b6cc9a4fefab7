package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/devfolio/backend/config"
	"github.com/pageza/devfolio/backend/internal/api"
	"github.com/pageza/devfolio/backend/internal/flash"
	"github.com/pageza/devfolio/backend/internal/logging"
	"github.com/pageza/devfolio/backend/internal/middleware"
	"github.com/pageza/devfolio/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	http   *http.Server
	log    *slog.Logger
}

// New wires services and handlers. redisClient may be nil, in which case
// token revocation and flash notices live in memory and rate limiting is off.
func New(ctx context.Context, cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := middleware.RegisterValidators(); err != nil {
		return nil, err
	}

	avatars, err := newAvatarStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var (
		revoker    service.TokenRevoker = service.NewMemoryTokenRevoker()
		flashStore flash.Store          = flash.NewMemoryStore()
	)
	if redisClient != nil {
		revoker = service.NewRedisTokenRevoker(redisClient)
		flashStore = flash.NewRedisStore(redisClient)
	}

	notifier := service.NewEmailService(cfg)
	sync := service.NewProfileSync(service.SyncOptions{})
	authService := service.NewAuthService(db, sync, revoker, cfg.JWTSecret, cfg.TokenTTL).WithNotifier(notifier)

	router := gin.New()
	router.Use(middleware.ErrorHandler(), middleware.RequestLogger(), middleware.CORS(cfg.CORSOrigins))
	router.MaxMultipartMemory = service.MaxAvatarSize
	if cfg.AvatarStorage == "local" {
		router.Static(cfg.MediaURL, cfg.MediaRoot)
	}

	api.RegisterRoutes(router, api.Dependencies{
		DB:           db,
		Auth:         authService,
		Profiles:     service.NewProfileService(db, sync, avatars),
		Directory:    service.NewDirectoryService(db),
		Technologies: service.NewTechnologyService(db),
		Messages:     service.NewMessageService(db, notifier),
		Flash:        flashStore,
		LoginLimiter: middleware.NewLoginRateLimiter(redisClient),
		MsgLimiter:   middleware.NewMessageRateLimiter(redisClient),
	})

	return &Server{
		cfg:    cfg,
		router: router,
		log:    logging.Component("server"),
	}, nil
}

func newAvatarStore(ctx context.Context, cfg *config.Config) (service.AvatarStore, error) {
	if cfg.AvatarStorage == "s3" {
		s3Config, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("avatar storage: %w", err)
		}
		return service.NewS3AvatarStore(s3Config), nil
	}
	return service.NewLocalAvatarStore(cfg.MediaRoot, cfg.MediaURL), nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.log.Info("starting server", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()
	return s.http.Shutdown(ctx)
}
