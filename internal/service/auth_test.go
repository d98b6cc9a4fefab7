package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pageza/devfolio/backend/internal/models"
	"github.com/pageza/devfolio/backend/internal/service"
	"github.com/pageza/devfolio/backend/internal/testhelpers"
	"github.com/pageza/devfolio/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func setupAuthTest(t *testing.T) (*gorm.DB, *service.AuthService) {
	db := testhelpers.SetupTestDatabase(t)
	sync := service.NewProfileSync(service.SyncOptions{})
	return db, service.NewAuthService(db, sync, service.NewMemoryTokenRevoker(), testSecret, time.Hour)
}

func registerRequest(username string) *types.RegisterRequest {
	return &types.RegisterRequest{
		Username:        username,
		Email:           username + "@example.com",
		FirstName:       "Test",
		Password:        "password123",
		PasswordConfirm: "password123",
	}
}

func TestRegister_LowercasesUsernameButKeepsNickname(t *testing.T) {
	db, svc := setupAuthTest(t)

	user, profile, err := svc.Register(context.Background(), registerRequest("Alice"))
	require.NoError(t, err)

	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "Alice", profile.Nickname)
	assert.Equal(t, "Test", profile.Name)

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
	assert.Equal(t, "alice", stored.Username)
	assert.NotEqual(t, "password123", stored.PasswordHash)

	var storedProfile models.Profile
	require.NoError(t, db.First(&storedProfile, "user_id = ?", user.ID).Error)
	assert.Equal(t, "Alice", storedProfile.Nickname)
}

func TestRegister_Duplicate(t *testing.T) {
	db, svc := setupAuthTest(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, registerRequest("bob"))
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, registerRequest("BOB"))
	assert.ErrorIs(t, err, service.ErrUserExists)

	other := registerRequest("robert")
	other.Email = "bob@example.com"
	_, _, err = svc.Register(ctx, other)
	assert.ErrorIs(t, err, service.ErrUserExists)

	var users, profiles int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Profile{}).Count(&profiles).Error)
	assert.Equal(t, int64(1), users)
	assert.Equal(t, int64(1), profiles)
}

func TestRegister_SendsWelcome(t *testing.T) {
	_, svc := setupAuthTest(t)
	notifier := new(testhelpers.MockNotifier)
	notifier.On("NotifyWelcome", mock.Anything, mock.AnythingOfType("*models.Profile")).Return(nil)
	svc.WithNotifier(notifier)

	_, _, err := svc.Register(context.Background(), registerRequest("carol"))
	require.NoError(t, err)
	notifier.AssertExpectations(t)
}

func TestLogin(t *testing.T) {
	db, svc := setupAuthTest(t)
	ctx := context.Background()
	user, _ := testhelpers.CreateTestUser(t, db, "dave")

	t.Run("success", func(t *testing.T) {
		got, err := svc.Login(ctx, "dave", testhelpers.TestPassword)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody", testhelpers.TestPassword)
		assert.ErrorIs(t, err, service.ErrUserNotFound)
	})

	t.Run("username is case sensitive", func(t *testing.T) {
		_, err := svc.Login(ctx, "Dave", testhelpers.TestPassword)
		assert.ErrorIs(t, err, service.ErrUserNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "dave", "wrong-password")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestTokenRoundTripAndLogout(t *testing.T) {
	db, svc := setupAuthTest(t)
	ctx := context.Background()
	user, _ := testhelpers.CreateTestUser(t, db, "erin")

	token, claims, err := svc.GenerateToken(user)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)

	validated, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, validated.UserID)
	assert.Equal(t, "erin", validated.Username)

	require.NoError(t, svc.Logout(ctx, validated))

	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, service.ErrTokenRevoked)

	// A fresh login is unaffected by the old revocation
	fresh, _, err := svc.GenerateToken(user)
	require.NoError(t, err)
	_, err = svc.ValidateToken(ctx, fresh)
	assert.NoError(t, err)
}

func TestValidateToken_Rejects(t *testing.T) {
	db, svc := setupAuthTest(t)
	ctx := context.Background()
	user, _ := testhelpers.CreateTestUser(t, db, "frank")

	_, err := svc.ValidateToken(ctx, "invalid.token")
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	other := service.NewAuthService(db, service.NewProfileSync(service.SyncOptions{}), nil, "another-secret", time.Hour)
	foreign, _, err := other.GenerateToken(user)
	require.NoError(t, err)
	_, err = svc.ValidateToken(ctx, foreign)
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &types.TokenClaims{UserID: user.ID})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.ValidateToken(ctx, unsigned)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestLogout_WithoutClaims(t *testing.T) {
	_, svc := setupAuthTest(t)
	assert.NoError(t, svc.Logout(context.Background(), nil))
}

func TestMemoryTokenRevoker(t *testing.T) {
	revoker := service.NewMemoryTokenRevoker()
	ctx := context.Background()

	require.NoError(t, revoker.Revoke(ctx, "live", time.Now().Add(time.Hour)))
	require.NoError(t, revoker.Revoke(ctx, "stale", time.Now().Add(-time.Second)))

	revoked, err := revoker.IsRevoked(ctx, "live")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = revoker.IsRevoked(ctx, "stale")
	require.NoError(t, err)
	assert.False(t, revoked)

	revoked, err = revoker.IsRevoked(ctx, "never")
	require.NoError(t, err)
	assert.False(t, revoked)
}
