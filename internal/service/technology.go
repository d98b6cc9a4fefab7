package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pageza/devfolio/backend/internal/models"
	"github.com/pageza/devfolio/backend/internal/types"
	"gorm.io/gorm"
)

// TechnologyService manages the technologies of the calling user's profile.
// Every lookup is scoped to that profile, so a foreign id reads as missing.
type TechnologyService struct {
	db *gorm.DB
}

var _ ITechnologyService = (*TechnologyService)(nil)

func NewTechnologyService(db *gorm.DB) *TechnologyService {
	return &TechnologyService{db: db}
}

// List returns the caller's technologies, oldest first.
func (s *TechnologyService) List(ctx context.Context, userID uuid.UUID) ([]models.Technology, error) {
	db := s.db.WithContext(ctx)

	profile, err := profileByUserID(db, userID)
	if err != nil {
		return nil, err
	}

	technologies := []models.Technology{}
	if err := db.Where("owner_id = ?", profile.ID).Order("created_at ASC").Find(&technologies).Error; err != nil {
		return nil, err
	}
	return technologies, nil
}

func (s *TechnologyService) Create(ctx context.Context, userID uuid.UUID, req *types.TechnologyRequest) (*models.Technology, error) {
	db := s.db.WithContext(ctx)

	profile, err := profileByUserID(db, userID)
	if err != nil {
		return nil, err
	}

	technology := &models.Technology{
		OwnerID:     profile.ID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := db.Create(technology).Error; err != nil {
		return nil, fmt.Errorf("create technology: %w", err)
	}
	return technology, nil
}

func (s *TechnologyService) Update(ctx context.Context, userID, id uuid.UUID, req *types.TechnologyRequest) (*models.Technology, error) {
	db := s.db.WithContext(ctx)

	technology, err := s.owned(db, userID, id)
	if err != nil {
		return nil, err
	}

	technology.Name = req.Name
	technology.Description = req.Description
	if err := db.Save(technology).Error; err != nil {
		return nil, fmt.Errorf("update technology: %w", err)
	}
	return technology, nil
}

func (s *TechnologyService) Delete(ctx context.Context, userID, id uuid.UUID) (*models.Technology, error) {
	db := s.db.WithContext(ctx)

	technology, err := s.owned(db, userID, id)
	if err != nil {
		return nil, err
	}
	if err := db.Delete(technology).Error; err != nil {
		return nil, fmt.Errorf("delete technology: %w", err)
	}
	return technology, nil
}

func (s *TechnologyService) owned(db *gorm.DB, userID, id uuid.UUID) (*models.Technology, error) {
	profile, err := profileByUserID(db, userID)
	if err != nil {
		return nil, err
	}

	var technology models.Technology
	if err := db.Where("id = ? AND owner_id = ?", id, profile.ID).First(&technology).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTechnologyNotFound
		}
		return nil, err
	}
	return &technology, nil
}
