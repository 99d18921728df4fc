package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"tailorix_backend/internal/config"
)

// SMTPProvider delivers email over SMTP via gomail.
type SMTPProvider struct {
	cfg      *config.Config
	renderer *TemplateManager
}

func NewSMTPProvider(cfg *config.Config, renderer *TemplateManager) *SMTPProvider {
	return &SMTPProvider{cfg: cfg, renderer: renderer}
}

// NewProvider returns the configured provider: SMTP when email is enabled,
// a no-op otherwise.
func NewProvider(cfg *config.Config) Provider {
	if !cfg.Email.Enabled {
		return NoopProvider{}
	}
	return NewSMTPProvider(cfg, NewTemplateManager())
}

func (p *SMTPProvider) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.cfg.Email.FromEmail, p.cfg.Email.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(
		p.cfg.Email.SMTPHost,
		p.cfg.Email.SMTPPort,
		p.cfg.Email.SMTPUsername,
		p.cfg.Email.SMTPPassword,
	)

	return d.DialAndSend(m)
}

func (p *SMTPProvider) SendTemplate(to, subject, templateName string, data TemplateData) error {
	body, err := p.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render template %s: %w", templateName, err)
	}
	return p.Send(to, subject, body)
}
