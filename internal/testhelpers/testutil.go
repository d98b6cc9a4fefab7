package testhelpers

import (
	"encoding/json"
	"testing"

	"github.com/pageza/devfolio/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plain-text password of every fixture user.
const TestPassword = "s3cret-pass"

// CreateTestUser inserts a user with its paired profile, bypassing the
// registration flow.
func CreateTestUser(t *testing.T, db *gorm.DB, username string) (*models.User, *models.Profile) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	profile := &models.Profile{
		UserID:   user.ID,
		Nickname: username,
		Email:    user.Email,
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
	return user, profile
}

func CreateTestTechnology(t *testing.T, db *gorm.DB, owner *models.Profile, name, description string) *models.Technology {
	t.Helper()
	technology := &models.Technology{OwnerID: owner.ID, Name: name, Description: description}
	if err := db.Create(technology).Error; err != nil {
		t.Fatalf("failed to create technology: %v", err)
	}
	return technology
}

func CreateTestProject(t *testing.T, db *gorm.DB, owner *models.Profile, title string) *models.Project {
	t.Helper()
	project := &models.Project{OwnerID: owner.ID, Title: title}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	return project
}

// JSONMarshal is a helper function to marshal JSON for testing
func JSONMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal JSON: %v", err)
	}
	return data
}
