package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultAvatar is the asset assigned to profiles that never uploaded one.
const DefaultAvatar = "profiles/user-default.png"

// Profile is the public record paired one-to-one with a User.
type Profile struct {
	ID          uuid.UUID         `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID      uuid.UUID         `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	User        *User             `gorm:"foreignKey:UserID" json:"-"`
	Nickname    string            `gorm:"size:200" json:"nickname"`
	Email       string            `gorm:"size:500" json:"email"`
	Name        string            `gorm:"size:200" json:"name"`
	Surname     string            `gorm:"size:200" json:"surname"`
	ShortIntro  string            `gorm:"size:200" json:"short_intro"`
	Bio         string            `gorm:"type:text" json:"bio"`
	Location    string            `gorm:"size:200" json:"location"`
	AvatarURL   string            `gorm:"size:255" json:"avatar_url"`
	SocialLinks datatypes.JSONMap `json:"social_links,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.AvatarURL == "" {
		p.AvatarURL = DefaultAvatar
	}
	return nil
}

// FullName joins name and surname, skipping whichever is empty.
func (p *Profile) FullName() string {
	return strings.TrimSpace(p.Name + " " + p.Surname)
}
