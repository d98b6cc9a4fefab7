package service_test

import (
	"testing"

	"github.com/pageza/devfolio/backend/internal/models"
	"github.com/pageza/devfolio/backend/internal/service"
	"github.com/pageza/devfolio/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateProfileForUser(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	sync := service.NewProfileSync(service.SyncOptions{})

	user := &models.User{Username: "Grace", Email: "grace@example.com", FirstName: "Grace", PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)

	profile, err := sync.CreateProfileForUser(db, user)
	require.NoError(t, err)

	assert.Equal(t, user.ID, profile.UserID)
	assert.Equal(t, "Grace", profile.Nickname)
	assert.Equal(t, "grace@example.com", profile.Email)
	assert.Equal(t, "Grace", profile.Name)
	assert.Equal(t, models.DefaultAvatar, profile.AvatarURL)

	var count int64
	require.NoError(t, db.Model(&models.Profile{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateProfileForUser_MirrorOnCreate(t *testing.T) {
	tests := []struct {
		name          string
		mirror        bool
		wantLastName  string
		wantFirstName string
	}{
		{name: "off leaves identity untouched", mirror: false, wantFirstName: "Ada", wantLastName: "Original"},
		{name: "on copies profile back", mirror: true, wantFirstName: "Ada", wantLastName: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testhelpers.SetupTestDatabase(t)
			sync := service.NewProfileSync(service.SyncOptions{MirrorOnCreate: tt.mirror})

			user := &models.User{Username: "ada", Email: "ada@example.com", FirstName: "Ada", LastName: "Original", PasswordHash: "x"}
			require.NoError(t, db.Create(user).Error)

			_, err := sync.CreateProfileForUser(db, user)
			require.NoError(t, err)

			var stored models.User
			require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
			assert.Equal(t, tt.wantFirstName, stored.FirstName)
			assert.Equal(t, tt.wantLastName, stored.LastName)
		})
	}
}

func TestMirrorProfileToUser(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	sync := service.NewProfileSync(service.SyncOptions{})
	user, profile := testhelpers.CreateTestUser(t, db, "linus")

	profile.Name = "Linus"
	profile.Surname = "Torvalds"
	profile.Nickname = "torvalds"
	profile.Email = "linus@kernel.org"
	require.NoError(t, db.Save(profile).Error)
	require.NoError(t, sync.MirrorProfileToUser(db, profile))

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
	assert.Equal(t, "Linus", stored.FirstName)
	assert.Equal(t, "Torvalds", stored.LastName)
	assert.Equal(t, "torvalds", stored.Username)
	assert.Equal(t, "linus@kernel.org", stored.Email)
}

func TestMirrorProfileToUser_MissingUser(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	sync := service.NewProfileSync(service.SyncOptions{})
	_, profile := testhelpers.CreateTestUser(t, db, "ghost")
	require.NoError(t, db.Delete(&models.User{}, "id = ?", profile.UserID).Error)

	err := sync.MirrorProfileToUser(db, profile)
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestDeleteProfileWithUser(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	sync := service.NewProfileSync(service.SyncOptions{})

	user, profile := testhelpers.CreateTestUser(t, db, "leaving")
	_, other := testhelpers.CreateTestUser(t, db, "staying")

	testhelpers.CreateTestTechnology(t, db, profile, "Go", "main language")
	testhelpers.CreateTestProject(t, db, profile, "side project")

	received := &models.Message{RecipientID: profile.ID, Title: "hi", Body: "hello"}
	sent := &models.Message{SenderID: &profile.ID, RecipientID: other.ID, Title: "yo", Body: "there"}
	require.NoError(t, db.Create(received).Error)
	require.NoError(t, db.Create(sent).Error)

	err := db.Transaction(func(tx *gorm.DB) error {
		return sync.DeleteProfileWithUser(tx, profile)
	})
	require.NoError(t, err)

	countOf := func(model interface{}, query string, args ...interface{}) int64 {
		var n int64
		require.NoError(t, db.Model(model).Where(query, args...).Count(&n).Error)
		return n
	}
	assert.Zero(t, countOf(&models.Profile{}, "id = ?", profile.ID))
	assert.Zero(t, countOf(&models.User{}, "id = ?", user.ID))
	assert.Zero(t, countOf(&models.Technology{}, "owner_id = ?", profile.ID))
	assert.Zero(t, countOf(&models.Project{}, "owner_id = ?", profile.ID))
	assert.Zero(t, countOf(&models.Message{}, "id = ?", received.ID))

	var kept models.Message
	require.NoError(t, db.First(&kept, "id = ?", sent.ID).Error)
	assert.Nil(t, kept.SenderID)

	assert.Equal(t, int64(1), countOf(&models.Profile{}, "id = ?", other.ID))
}
