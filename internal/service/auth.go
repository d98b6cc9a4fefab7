package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pageza/devfolio/backend/internal/logging"
	"github.com/pageza/devfolio/backend/internal/models"
	"github.com/pageza/devfolio/backend/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db        *gorm.DB
	sync      *ProfileSync
	revoker   TokenRevoker
	jwtSecret string
	tokenTTL  time.Duration
	notifier  Notifier
	log       *slog.Logger
}

// Ensure AuthService implements IAuthService
var _ IAuthService = (*AuthService)(nil)

func NewAuthService(db *gorm.DB, sync *ProfileSync, revoker TokenRevoker, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if revoker == nil {
		revoker = NewMemoryTokenRevoker()
	}
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		db:        db,
		sync:      sync,
		revoker:   revoker,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       logging.Component("auth"),
	}
}

// WithNotifier sends a welcome notification after every registration.
func (s *AuthService) WithNotifier(n Notifier) *AuthService {
	s.notifier = n
	return s
}

// Register creates the user and its profile in one transaction. The profile
// nickname keeps the submitted spelling; only the user's username is
// lower-cased afterwards.
func (s *AuthService) Register(ctx context.Context, req *types.RegisterRequest) (*models.User, *models.Profile, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	var (
		user    models.User
		profile *models.Profile
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.User{}).
			Where("LOWER(username) = ? OR (email <> '' AND email = ?)", strings.ToLower(req.Username), req.Email).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrUserExists
		}

		user = models.User{
			Username:     req.Username,
			Email:        req.Email,
			FirstName:    req.FirstName,
			PasswordHash: string(hashedPassword),
		}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		profile, err = s.sync.CreateProfileForUser(tx, &user)
		if err != nil {
			return err
		}

		user.Username = strings.ToLower(user.Username)
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, nil, err
	}

	s.log.Info("user registered", "username", user.Username, "user_id", user.ID)

	if s.notifier != nil {
		if err := s.notifier.NotifyWelcome(ctx, profile); err != nil {
			s.log.Warn("failed to send welcome notification", "user_id", user.ID, "error", err)
		}
	}
	return &user, profile, nil
}

// Login looks the user up by exact username and checks the password.
// ErrUserNotFound and ErrInvalidCredentials are kept apart so the caller can
// tell a missing account from a rejected password.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// GenerateToken issues a signed session token for user.
func (s *AuthService) GenerateToken(user *models.User) (string, *types.TokenClaims, error) {
	now := time.Now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		UserID:   user.ID,
		Username: user.Username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, claims, nil
}

func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == uuid.Nil {
		return nil, ErrInvalidToken
	}

	revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check token revocation: %w", err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	return claims, nil
}

// Logout revokes the token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, claims *types.TokenClaims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}
	until := time.Now().Add(s.tokenTTL)
	if claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Time
	}
	if err := s.revoker.Revoke(ctx, claims.ID, until); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	s.log.Info("user logged out", "username", claims.Username)
	return nil
}
