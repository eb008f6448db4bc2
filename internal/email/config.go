package email

import "fmt"

type Config struct {
	SMTPHost    string
	SMTPPort    int
	Username    string
	Password    string
	FromEmail   string
	FromName    string
	FrontendURL string
}

func (c *Config) Validate() error {
	if c.FromEmail == "" {
		return fmt.Errorf("from email is required")
	}
	if c.SMTPHost != "" && (c.SMTPPort <= 0 || c.SMTPPort > 65535) {
		return fmt.Errorf("invalid SMTP port: %d", c.SMTPPort)
	}
	return nil
}

// Configured reports whether SMTP credentials are present. When they are not,
// the provider runs in dev mode and only logs what it would send.
func (c *Config) Configured() bool {
	return c.Username != "" && c.Password != ""
}
