package service

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/pageza/devfolio/backend/internal/models"
	"github.com/pageza/devfolio/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*models.User, *models.Profile, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
	GenerateToken(user *models.User) (string, *types.TokenClaims, error)
	ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error)
	Logout(ctx context.Context, claims *types.TokenClaims) error
}

// IProfileService defines the interface for profile pages and account editing
type IProfileService interface {
	GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	GetProfileDetail(ctx context.Context, id uuid.UUID) (*types.ProfileDetail, error)
	GetAccount(ctx context.Context, userID uuid.UUID) (*types.AccountView, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest, avatar *multipart.FileHeader) (*models.Profile, error)
	DeleteProfile(ctx context.Context, userID uuid.UUID) error
}

// IDirectoryService defines the interface for the searchable profile list
type IDirectoryService interface {
	Search(ctx context.Context, query string, page int) (*types.DirectoryPage, error)
}

// ITechnologyService defines the interface for managing the caller's technologies
type ITechnologyService interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.Technology, error)
	Create(ctx context.Context, userID uuid.UUID, req *types.TechnologyRequest) (*models.Technology, error)
	Update(ctx context.Context, userID, id uuid.UUID, req *types.TechnologyRequest) (*models.Technology, error)
	Delete(ctx context.Context, userID, id uuid.UUID) (*models.Technology, error)
}

// IMessageService defines the interface for messaging and the inbox
type IMessageService interface {
	Create(ctx context.Context, recipientID uuid.UUID, senderUserID *uuid.UUID, req *types.MessageRequest) (*models.Message, error)
	Inbox(ctx context.Context, userID uuid.UUID) (*types.InboxView, error)
	Read(ctx context.Context, userID, id uuid.UUID) (*models.Message, error)
}

// Notifier delivers out-of-band notifications about account activity
type Notifier interface {
	NotifyNewMessage(ctx context.Context, recipient *models.Profile, message *models.Message) error
	NotifyWelcome(ctx context.Context, profile *models.Profile) error
}
