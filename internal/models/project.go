package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project is a portfolio entry owned by a Profile.
type Project struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	OwnerID     uuid.UUID `gorm:"type:varchar(36);not null;index" json:"owner_id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	DemoLink    string    `gorm:"size:2000" json:"demo_link"`
	SourceLink  string    `gorm:"size:2000" json:"source_link"`
	CreatedAt   time.Time `json:"created_at"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
