package email

// TemplateData carries the values rendered into an email template.
type TemplateData map[string]interface{}

// Provider sends transactional email. Implementations must be safe for
// concurrent use; callers treat delivery as best effort.
type Provider interface {
	// Send delivers a raw HTML email.
	Send(to, subject, htmlBody string) error

	// SendTemplate renders a named template and delivers it.
	SendTemplate(to, subject, templateName string, data TemplateData) error
}

// NoopProvider discards every email. Used when email is disabled in config
// and in tests.
type NoopProvider struct{}

func (NoopProvider) Send(to, subject, htmlBody string) error { return nil }

func (NoopProvider) SendTemplate(to, subject, templateName string, data TemplateData) error {
	return nil
}
