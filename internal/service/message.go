package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pageza/devfolio/backend/internal/logging"
	"github.com/pageza/devfolio/backend/internal/models"
	"github.com/pageza/devfolio/backend/internal/types"
	"gorm.io/gorm"
)

// MessageService sends messages between profiles and serves the inbox
type MessageService struct {
	db       *gorm.DB
	notifier Notifier
	log      *slog.Logger
}

var _ IMessageService = (*MessageService)(nil)

func NewMessageService(db *gorm.DB, notifier Notifier) *MessageService {
	return &MessageService{db: db, notifier: notifier, log: logging.Component("messages")}
}

// Create stores a message for the recipient profile. senderUserID is nil for
// anonymous visitors; a caller without a profile is also treated as
// anonymous. A known sender's name and email override the form values.
func (s *MessageService) Create(ctx context.Context, recipientID uuid.UUID, senderUserID *uuid.UUID, req *types.MessageRequest) (*models.Message, error) {
	db := s.db.WithContext(ctx)

	var recipient models.Profile
	if err := db.First(&recipient, "id = ?", recipientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	message := &models.Message{
		RecipientID: recipient.ID,
		Name:        req.Name,
		Email:       req.Email,
		Title:       req.Title,
		Body:        req.Body,
	}

	if senderUserID != nil {
		sender, err := profileByUserID(db, *senderUserID)
		switch {
		case err == nil:
			message.SenderID = &sender.ID
			message.Name = sender.FullName()
			message.Email = sender.Email
		case errors.Is(err, ErrProfileNotFound):
			s.log.Warn("authenticated sender has no profile, sending anonymously", "user_id", *senderUserID)
		default:
			return nil, err
		}
	}

	if err := db.Create(message).Error; err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyNewMessage(ctx, &recipient, message); err != nil {
			s.log.Warn("failed to notify recipient", "recipient_id", recipient.ID, "error", err)
		}
	}

	return message, nil
}

// Inbox lists messages addressed to the caller, unread first, newest first
// within each group.
func (s *MessageService) Inbox(ctx context.Context, userID uuid.UUID) (*types.InboxView, error) {
	db := s.db.WithContext(ctx)

	profile, err := profileByUserID(db, userID)
	if err != nil {
		return nil, err
	}

	view := &types.InboxView{Messages: []models.Message{}}
	if err := db.Where("recipient_id = ?", profile.ID).
		Order("is_read ASC").Order("created_at DESC").
		Find(&view.Messages).Error; err != nil {
		return nil, err
	}

	for _, m := range view.Messages {
		if !m.IsRead {
			view.UnreadCount++
		}
	}
	return view, nil
}

// Read returns one of the caller's messages and marks it read. Reading an
// already-read message changes nothing.
func (s *MessageService) Read(ctx context.Context, userID, id uuid.UUID) (*models.Message, error) {
	db := s.db.WithContext(ctx)

	profile, err := profileByUserID(db, userID)
	if err != nil {
		return nil, err
	}

	var message models.Message
	if err := db.Where("id = ? AND recipient_id = ?", id, profile.ID).First(&message).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}

	if !message.IsRead {
		if err := db.Model(&message).Update("is_read", true).Error; err != nil {
			return nil, fmt.Errorf("mark message read: %w", err)
		}
		message.IsRead = true
	}
	return &message, nil
}
