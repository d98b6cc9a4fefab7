package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/pageza/devfolio/backend/internal/logging"
	"github.com/pageza/devfolio/backend/internal/models"
	"github.com/pageza/devfolio/backend/internal/types"
	"gorm.io/gorm"
)

// ProfileService handles profile pages and account editing
type ProfileService struct {
	db      *gorm.DB
	sync    *ProfileSync
	avatars AvatarStore
	log     *slog.Logger
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)

func NewProfileService(db *gorm.DB, sync *ProfileSync, avatars AvatarStore) *ProfileService {
	return &ProfileService{
		db:      db,
		sync:    sync,
		avatars: avatars,
		log:     logging.Component("profile"),
	}
}

// GetProfileByUserID returns the profile paired with a user.
func (s *ProfileService) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	return profileByUserID(s.db.WithContext(ctx), userID)
}

// GetProfileDetail returns the public page of a profile with its projects
// and technologies split into main skills and tags.
func (s *ProfileService) GetProfileDetail(ctx context.Context, id uuid.UUID) (*types.ProfileDetail, error) {
	db := s.db.WithContext(ctx)

	var profile models.Profile
	if err := db.First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	var projects []models.Project
	if err := db.Where("owner_id = ?", profile.ID).Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}

	var technologies []models.Technology
	if err := db.Where("owner_id = ?", profile.ID).Order("created_at ASC").Find(&technologies).Error; err != nil {
		return nil, err
	}
	mainTech, tags := models.PartitionTechnologies(technologies)

	return &types.ProfileDetail{
		Profile:          &profile,
		MainTechnologies: mainTech,
		TagTechnologies:  tags,
		Projects:         projects,
		ProjectCount:     int64(len(projects)),
	}, nil
}

// GetAccount returns the owner's dashboard.
func (s *ProfileService) GetAccount(ctx context.Context, userID uuid.UUID) (*types.AccountView, error) {
	db := s.db.WithContext(ctx)

	profile, err := profileByUserID(db, userID)
	if err != nil {
		return nil, err
	}

	view := &types.AccountView{Profile: profile}
	if err := db.Where("owner_id = ?", profile.ID).Order("created_at ASC").Find(&view.Technologies).Error; err != nil {
		return nil, err
	}
	if err := db.Where("owner_id = ?", profile.ID).Order("created_at DESC").Find(&view.Projects).Error; err != nil {
		return nil, err
	}
	return view, nil
}

// UpdateProfile saves the edit-account form and mirrors the identity fields
// onto the user in the same transaction. avatar may be nil. The avatar is
// stored only once the profile and user rows are written, and removed again
// if the transaction does not commit.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest, avatar *multipart.FileHeader) (*models.Profile, error) {
	db := s.db.WithContext(ctx)

	profile, err := profileByUserID(db, userID)
	if err != nil {
		return nil, err
	}

	var img *Avatar
	if avatar != nil {
		if img, err = ReadAvatar(avatar); err != nil {
			return nil, err
		}
	}

	profile.Nickname = req.Nickname
	profile.Email = req.Email
	profile.Name = req.Name
	profile.Surname = req.Surname
	profile.ShortIntro = req.ShortIntro
	profile.Bio = req.Bio
	profile.Location = req.Location
	profile.SocialLinks = req.SocialLinks()

	var storedKey string
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(profile).Error; err != nil {
			return fmt.Errorf("save profile: %w", err)
		}
		if err := s.sync.MirrorProfileToUser(tx, profile); err != nil {
			return err
		}
		if img == nil {
			return nil
		}

		key := fmt.Sprintf("profiles/%s-%s%s", profile.ID, uuid.NewString()[:8], img.Extension)
		url, err := s.avatars.Save(ctx, key, img.ContentType, img.Data)
		if err != nil {
			return fmt.Errorf("store avatar: %w", err)
		}
		storedKey = key
		profile.AvatarURL = url
		return tx.Model(profile).Update("avatar_url", url).Error
	})
	if err != nil {
		if storedKey != "" {
			if delErr := s.avatars.Delete(ctx, storedKey); delErr != nil {
				s.log.WarnContext(ctx, "failed to remove orphaned avatar", "key", storedKey, "error", delErr)
			}
		}
		return nil, err
	}
	return profile, nil
}

// DeleteProfile removes the caller's profile and, with it, their user.
func (s *ProfileService) DeleteProfile(ctx context.Context, userID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile, err := profileByUserID(tx, userID)
		if err != nil {
			return err
		}
		return s.sync.DeleteProfileWithUser(tx, profile)
	})
}

func profileByUserID(db *gorm.DB, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}
