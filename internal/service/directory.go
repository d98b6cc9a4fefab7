package service

import (
	"context"
	"strings"

	"github.com/pageza/devfolio/backend/internal/models"
	"github.com/pageza/devfolio/backend/internal/pagination"
	"github.com/pageza/devfolio/backend/internal/types"
	"gorm.io/gorm"
)

// DirectoryService searches and pages through public profiles
type DirectoryService struct {
	db       *gorm.DB
	pageSize int
}

var _ IDirectoryService = (*DirectoryService)(nil)

func NewDirectoryService(db *gorm.DB) *DirectoryService {
	return &DirectoryService{db: db, pageSize: pagination.DirectoryPageSize}
}

// Search matches query case-insensitively against profile text fields and
// the names of technologies a profile owns. Results are ordered by creation
// time with the id as tiebreak so pages never overlap.
func (s *DirectoryService) Search(ctx context.Context, query string, page int) (*types.DirectoryPage, error) {
	db := s.db.WithContext(ctx)
	query = strings.TrimSpace(query)

	base := db.Model(&models.Profile{})
	if query != "" {
		like := "%" + escapeLike(strings.ToLower(query)) + "%"
		owners := db.Model(&models.Technology{}).
			Select("owner_id").
			Where("LOWER(name) LIKE ? ESCAPE '\\'", like)
		base = base.Where(
			db.Where("LOWER(nickname) LIKE ? ESCAPE '\\'", like).
				Or("LOWER(name) LIKE ? ESCAPE '\\'", like).
				Or("LOWER(surname) LIKE ? ESCAPE '\\'", like).
				Or("LOWER(short_intro) LIKE ? ESCAPE '\\'", like).
				Or("LOWER(bio) LIKE ? ESCAPE '\\'", like).
				Or("id IN (?)", owners),
		)
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, err
	}

	p := pagination.New(total, page, s.pageSize)

	profiles := []models.Profile{}
	if err := base.Order("created_at ASC").Order("id ASC").
		Offset(p.Offset()).Limit(p.Size).
		Find(&profiles).Error; err != nil {
		return nil, err
	}

	return &types.DirectoryPage{
		Profiles: profiles,
		Query:    query,
		Page:     p,
	}, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
