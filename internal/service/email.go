package service

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/gomail.v2"

	"github.com/pageza/devfolio/backend/config"
	"github.com/pageza/devfolio/backend/internal/logging"
	"github.com/pageza/devfolio/backend/internal/models"
)

// EmailService sends notification mail over SMTP. Without an SMTP host it
// only logs what it would have sent.
type EmailService struct {
	dialer   *gomail.Dialer
	from     string
	siteName string
	log      *slog.Logger

	// send is swapped out in tests
	send func(m *gomail.Message) error
}

var _ Notifier = (*EmailService)(nil)

func NewEmailService(cfg *config.Config) *EmailService {
	s := &EmailService{
		from:     cfg.EmailFrom,
		siteName: "DevFolio",
		log:      logging.Component("email"),
	}
	if cfg.SMTPHost != "" {
		s.dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
		s.send = func(m *gomail.Message) error {
			return s.dialer.DialAndSend(m)
		}
	}
	return s
}

// NotifyNewMessage tells a profile owner that someone wrote to them.
func (s *EmailService) NotifyNewMessage(ctx context.Context, recipient *models.Profile, message *models.Message) error {
	if recipient.Email == "" {
		return nil
	}

	sender := message.Name
	if sender == "" {
		sender = "Someone"
	}
	subject := fmt.Sprintf("[%s] New message: %s", s.siteName, message.Title)
	body := fmt.Sprintf(`<p>Hi %s,</p>
<p>%s sent you a message on %s.</p>
<h3>%s</h3>
<p>%s</p>
<p>Open your inbox to reply.</p>`,
		html.EscapeString(greetingName(recipient)),
		html.EscapeString(sender),
		s.siteName,
		html.EscapeString(message.Title),
		html.EscapeString(message.Body),
	)

	return s.SendEmail(ctx, recipient.Email, subject, body)
}

// NotifyWelcome greets a newly registered profile.
func (s *EmailService) NotifyWelcome(ctx context.Context, profile *models.Profile) error {
	if profile.Email == "" {
		return nil
	}
	subject := fmt.Sprintf("Welcome to %s!", s.siteName)
	body := fmt.Sprintf(`<p>Welcome, %s!</p>
<p>Your profile is live. Add your technologies and a short intro so other developers can find you.</p>`,
		html.EscapeString(greetingName(profile)))

	return s.SendEmail(ctx, profile.Email, subject, body)
}

func (s *EmailService) SendEmail(ctx context.Context, to, subject, body string) error {
	if s.send == nil {
		s.log.InfoContext(ctx, "SMTP not configured, logging email", "to", to, "subject", subject)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.from, s.siteName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.send(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// greetingName prefers the full name, title-cased, and falls back to the
// nickname.
func greetingName(p *models.Profile) string {
	if name := p.FullName(); name != "" {
		return cases.Title(language.English).String(name)
	}
	return p.Nickname
}
