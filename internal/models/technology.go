package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Technology kinds. A technology with a description is a main skill,
// one without is a plain tag.
const (
	TechnologyMain = "main"
	TechnologyTag  = "tag"
)

// Technology is a skill or tag owned by a Profile.
type Technology struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	OwnerID     uuid.UUID `gorm:"type:varchar(36);not null;index" json:"owner_id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (t *Technology) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (t Technology) IsMain() bool {
	return t.Description != ""
}

func (t Technology) Kind() string {
	if t.IsMain() {
		return TechnologyMain
	}
	return TechnologyTag
}

// PartitionTechnologies splits technologies into main skills and tags,
// preserving order within each group.
func PartitionTechnologies(all []Technology) (main, tags []Technology) {
	main = make([]Technology, 0, len(all))
	tags = make([]Technology, 0, len(all))
	for _, t := range all {
		if t.IsMain() {
			main = append(main, t)
		} else {
			tags = append(tags, t)
		}
	}
	return main, tags
}
