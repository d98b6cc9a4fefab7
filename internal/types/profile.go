package types

import (
	"github.com/google/uuid"
	"github.com/pageza/devfolio/backend/internal/models"
	"github.com/pageza/devfolio/backend/internal/pagination"
)

// ActionResponse is returned by every mutating endpoint. Redirect names the
// page the client should show next.
type ActionResponse struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	ActionResponse
	Token  string    `json:"token"`
	UserID uuid.UUID `json:"user_id"`
}

// ProfileDetail is the public view of a single profile.
type ProfileDetail struct {
	Profile          *models.Profile     `json:"profile"`
	MainTechnologies []models.Technology `json:"main_technologies"`
	TagTechnologies  []models.Technology `json:"tags_technologies"`
	Projects         []models.Project    `json:"projects"`
	ProjectCount     int64               `json:"project_count"`
}

// AccountView is the owner's dashboard.
type AccountView struct {
	Profile      *models.Profile     `json:"profile"`
	Technologies []models.Technology `json:"technologies"`
	Projects     []models.Project    `json:"projects"`
}

// DirectoryPage is one page of the profile directory.
type DirectoryPage struct {
	Profiles []models.Profile `json:"profiles"`
	Query    string           `json:"find_profile"`
	Page     pagination.Page  `json:"page"`
}

// InboxView lists the messages addressed to the caller.
type InboxView struct {
	Messages    []models.Message `json:"messages"`
	UnreadCount int64            `json:"unread_count"`
}
