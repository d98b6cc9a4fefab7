package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pageza/devfolio/backend/internal/logging"
	"github.com/pageza/devfolio/backend/internal/models"
	"gorm.io/gorm"
)

// SyncOptions tunes the profile/identity synchronizer.
type SyncOptions struct {
	// MirrorOnCreate also copies a freshly created profile back onto its
	// identity. Off by default: identity→profile runs on creation only,
	// profile→identity on every later update.
	MirrorOnCreate bool
}

// ProfileSync keeps a User and its Profile consistent. Every method takes the
// transaction it must run in; callers own the transaction boundary.
type ProfileSync struct {
	opts SyncOptions
	log  *slog.Logger
}

func NewProfileSync(opts SyncOptions) *ProfileSync {
	return &ProfileSync{opts: opts, log: logging.Component("sync")}
}

// CreateProfileForUser creates the profile paired with a newly created user.
func (s *ProfileSync) CreateProfileForUser(tx *gorm.DB, user *models.User) (*models.Profile, error) {
	profile := &models.Profile{
		UserID:   user.ID,
		Nickname: user.Username,
		Email:    user.Email,
		Name:     user.FirstName,
	}
	if err := tx.Create(profile).Error; err != nil {
		return nil, fmt.Errorf("create profile for user %s: %w", user.ID, err)
	}

	if s.opts.MirrorOnCreate {
		if err := s.MirrorProfileToUser(tx, profile); err != nil {
			return nil, err
		}
	}

	s.log.Info("profile created", "nickname", profile.Nickname, "profile_id", profile.ID)
	return profile, nil
}

// MirrorProfileToUser pushes the profile's name, surname, nickname and email
// onto the paired user. A nickname that another user already holds, in any
// case, is ErrUserExists.
func (s *ProfileSync) MirrorProfileToUser(tx *gorm.DB, profile *models.Profile) error {
	var user models.User
	if err := tx.First(&user, "id = ?", profile.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("mirror profile %s: %w", profile.ID, ErrUserNotFound)
		}
		return fmt.Errorf("mirror profile %s: %w", profile.ID, err)
	}

	var taken int64
	if err := tx.Model(&models.User{}).
		Where("LOWER(username) = ? AND id <> ?", strings.ToLower(profile.Nickname), user.ID).
		Count(&taken).Error; err != nil {
		return fmt.Errorf("check username %q: %w", profile.Nickname, err)
	}
	if taken > 0 {
		return fmt.Errorf("username %q: %w", profile.Nickname, ErrUserExists)
	}

	user.FirstName = profile.Name
	user.LastName = profile.Surname
	user.Username = profile.Nickname
	user.Email = profile.Email

	if err := tx.Save(&user).Error; err != nil {
		return fmt.Errorf("save user %s: %w", user.ID, err)
	}
	return nil
}

// DeleteProfileWithUser removes a profile, everything it owns, and then its
// paired user. Messages it sent are kept with an anonymous sender.
func (s *ProfileSync) DeleteProfileWithUser(tx *gorm.DB, profile *models.Profile) error {
	if err := tx.Where("owner_id = ?", profile.ID).Delete(&models.Technology{}).Error; err != nil {
		return fmt.Errorf("delete technologies: %w", err)
	}
	if err := tx.Where("owner_id = ?", profile.ID).Delete(&models.Project{}).Error; err != nil {
		return fmt.Errorf("delete projects: %w", err)
	}
	if err := tx.Where("recipient_id = ?", profile.ID).Delete(&models.Message{}).Error; err != nil {
		return fmt.Errorf("delete received messages: %w", err)
	}
	if err := tx.Model(&models.Message{}).Where("sender_id = ?", profile.ID).Update("sender_id", nil).Error; err != nil {
		return fmt.Errorf("detach sent messages: %w", err)
	}
	if err := tx.Delete(&models.Profile{}, "id = ?", profile.ID).Error; err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if err := tx.Delete(&models.User{}, "id = ?", profile.UserID).Error; err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.log.Info("profile and user deleted", "name", profile.Name, "profile_id", profile.ID)
	return nil
}
