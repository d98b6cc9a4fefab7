package testhelpers

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/pageza/devfolio/backend/internal/models"
	"github.com/pageza/devfolio/backend/internal/service"
	"github.com/pageza/devfolio/backend/internal/types"
	"github.com/stretchr/testify/mock"
)

var (
	_ service.IAuthService       = (*MockAuthService)(nil)
	_ service.IProfileService    = (*MockProfileService)(nil)
	_ service.IDirectoryService  = (*MockDirectoryService)(nil)
	_ service.ITechnologyService = (*MockTechnologyService)(nil)
	_ service.IMessageService    = (*MockMessageService)(nil)
	_ service.Notifier           = (*MockNotifier)(nil)
)

// MockAuthService is a mock implementation of the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req *types.RegisterRequest) (*models.User, *models.Profile, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.User), args.Get(1).(*models.Profile), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) GenerateToken(user *models.User) (string, *types.TokenClaims, error) {
	args := m.Called(user)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*types.TokenClaims), args.Error(2)
}

func (m *MockAuthService) ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, claims *types.TokenClaims) error {
	args := m.Called(ctx, claims)
	return args.Error(0)
}

// MockProfileService is a mock implementation of the ProfileService interface
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileService) GetProfileDetail(ctx context.Context, id uuid.UUID) (*types.ProfileDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ProfileDetail), args.Error(1)
}

func (m *MockProfileService) GetAccount(ctx context.Context, userID uuid.UUID) (*types.AccountView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.AccountView), args.Error(1)
}

func (m *MockProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest, avatar *multipart.FileHeader) (*models.Profile, error) {
	args := m.Called(ctx, userID, req, avatar)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileService) DeleteProfile(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockDirectoryService struct {
	mock.Mock
}

func (m *MockDirectoryService) Search(ctx context.Context, query string, page int) (*types.DirectoryPage, error) {
	args := m.Called(ctx, query, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.DirectoryPage), args.Error(1)
}

type MockTechnologyService struct {
	mock.Mock
}

func (m *MockTechnologyService) List(ctx context.Context, userID uuid.UUID) ([]models.Technology, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Technology), args.Error(1)
}

func (m *MockTechnologyService) Create(ctx context.Context, userID uuid.UUID, req *types.TechnologyRequest) (*models.Technology, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Technology), args.Error(1)
}

func (m *MockTechnologyService) Update(ctx context.Context, userID, id uuid.UUID, req *types.TechnologyRequest) (*models.Technology, error) {
	args := m.Called(ctx, userID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Technology), args.Error(1)
}

func (m *MockTechnologyService) Delete(ctx context.Context, userID, id uuid.UUID) (*models.Technology, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Technology), args.Error(1)
}

type MockMessageService struct {
	mock.Mock
}

func (m *MockMessageService) Create(ctx context.Context, recipientID uuid.UUID, senderUserID *uuid.UUID, req *types.MessageRequest) (*models.Message, error) {
	args := m.Called(ctx, recipientID, senderUserID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockMessageService) Inbox(ctx context.Context, userID uuid.UUID) (*types.InboxView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.InboxView), args.Error(1)
}

func (m *MockMessageService) Read(ctx context.Context, userID, id uuid.UUID) (*models.Message, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyNewMessage(ctx context.Context, recipient *models.Profile, message *models.Message) error {
	args := m.Called(ctx, recipient, message)
	return args.Error(0)
}

func (m *MockNotifier) NotifyWelcome(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}
