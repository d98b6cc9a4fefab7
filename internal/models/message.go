package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is a note addressed to a Profile. SenderID is nil for anonymous
// senders, in which case Name and Email come from the submitted form.
type Message struct {
	ID          uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	SenderID    *uuid.UUID `gorm:"type:varchar(36);index" json:"sender_id,omitempty"`
	RecipientID uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"recipient_id"`
	Name        string     `gorm:"size:200" json:"name"`
	Email       string     `gorm:"size:200" json:"email"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Body        string     `gorm:"type:text;not null" json:"body"`
	IsRead      bool       `gorm:"not null;default:false" json:"is_read"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// All returns every model managed by the application, in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Profile{},
		&Technology{},
		&Project{},
		&Message{},
	}
}
