package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"setlist_backend/internal/logger"
)

// SMTPProvider delivers emails through an SMTP relay. Without credentials it
// logs the message instead of sending, which keeps local development working.
type SMTPProvider struct {
	config *Config
	dialer *gomail.Dialer
	tm     *TemplateManager
}

func NewSMTPProvider(config *Config) (*SMTPProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid email config: %w", err)
	}

	tm, err := NewTemplateManager()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}

	p := &SMTPProvider{
		config: config,
		tm:     tm,
	}
	if config.Configured() {
		p.dialer = gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.Username, config.Password)
	} else {
		logger.Warn("SMTP credentials not configured, emails will be logged only")
	}
	return p, nil
}

func (p *SMTPProvider) SendVerification(to, name, token string) error {
	return p.sendTemplate(to, "Verify your email", "verification", TemplateData{
		"Name":      name,
		"VerifyURL": fmt.Sprintf("%s/verify-email?token=%s", p.config.FrontendURL, token),
	})
}

func (p *SMTPProvider) SendWelcome(to, name string) error {
	return p.sendTemplate(to, "Welcome to Setlist Manager", "welcome", TemplateData{
		"Name":   name,
		"AppURL": p.config.FrontendURL,
	})
}

func (p *SMTPProvider) SendPasswordReset(to, name, token string) error {
	return p.sendTemplate(to, "Reset your password", "password_reset", TemplateData{
		"Name":     name,
		"ResetURL": fmt.Sprintf("%s/reset-password?token=%s", p.config.FrontendURL, token),
	})
}

func (p *SMTPProvider) SendPasswordChanged(to, name string) error {
	return p.sendTemplate(to, "Your password was changed", "password_changed", TemplateData{
		"Name": name,
	})
}

func (p *SMTPProvider) sendTemplate(to, subject, templateName string, data TemplateData) error {
	htmlBody, err := p.tm.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}

	if p.dialer == nil {
		logger.Info("email (dev mode, not sent)", "to", to, "subject", subject, "template", templateName)
		return nil
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.config.FromEmail, p.config.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
