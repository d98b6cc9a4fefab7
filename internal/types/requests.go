package types

// RegisterRequest is the account creation form.
type RegisterRequest struct {
	Username        string `json:"username" form:"username" binding:"required,max=150,nickname"`
	Email           string `json:"email" form:"email" binding:"required,email"`
	FirstName       string `json:"first_name" form:"first_name" binding:"max=150"`
	Password        string `json:"password" form:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" form:"password_confirm" binding:"required,eqfield=Password"`
}

// LoginRequest is the login form.
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// UpdateProfileRequest is the edit-account form. The avatar arrives as a
// separate multipart file part.
type UpdateProfileRequest struct {
	Nickname       string `form:"nickname" json:"nickname" binding:"required,max=150,nickname"`
	Email          string `form:"email" json:"email" binding:"required,email"`
	Name           string `form:"name" json:"name" binding:"max=200"`
	Surname        string `form:"surname" json:"surname" binding:"max=200"`
	ShortIntro     string `form:"short_intro" json:"short_intro" binding:"max=200"`
	Bio            string `form:"bio" json:"bio"`
	Location       string `form:"location" json:"location" binding:"max=200"`
	SocialGithub   string `form:"social_github" json:"social_github" binding:"omitempty,url"`
	SocialLinkedin string `form:"social_linkedin" json:"social_linkedin" binding:"omitempty,url"`
	SocialWebsite  string `form:"social_website" json:"social_website" binding:"omitempty,url"`
}

// SocialLinks returns the non-empty social links keyed by network.
func (r *UpdateProfileRequest) SocialLinks() map[string]interface{} {
	links := map[string]interface{}{}
	for key, value := range map[string]string{
		"github":   r.SocialGithub,
		"linkedin": r.SocialLinkedin,
		"website":  r.SocialWebsite,
	} {
		if value != "" {
			links[key] = value
		}
	}
	return links
}

// TechnologyRequest creates or updates a technology. An empty description
// makes it a tag.
type TechnologyRequest struct {
	Name        string `json:"name" form:"name" binding:"required,max=200"`
	Description string `json:"description" form:"description"`
}

// MessageRequest is the send-message form. Name and Email are only used for
// anonymous senders.
type MessageRequest struct {
	Name  string `json:"name" form:"name" binding:"max=200"`
	Email string `json:"email" form:"email" binding:"omitempty,email"`
	Title string `json:"title" form:"title" binding:"required,max=200"`
	Body  string `json:"body" form:"body" binding:"required"`
}
