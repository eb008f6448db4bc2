package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// TemplateData is the payload passed into an email template.
type TemplateData map[string]any

// TemplateManager parses and renders the HTML bodies of transactional emails.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

func NewTemplateManager() (*TemplateManager, error) {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}

	builtin := map[string]string{
		"verification":     verificationTemplate,
		"welcome":          welcomeTemplate,
		"password_reset":   passwordResetTemplate,
		"password_changed": passwordChangedTemplate,
	}
	for name, body := range builtin {
		if err := tm.AddTemplate(name, body); err != nil {
			return nil, err
		}
	}
	return tm, nil
}

// Render renders a template with the given data.
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// AddTemplate registers or replaces a template.
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}

const verificationTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; background-color: #0f0f23; color: #f1f1f1; padding: 40px 20px;">
  <div style="max-width: 600px; margin: 0 auto; background-color: #1a1a2e; border-radius: 12px;">
    <div style="background: linear-gradient(135deg, #e94560, #0f3460); padding: 30px; text-align: center;">
      <h1 style="margin: 0; color: white;">&#127925; Setlist Manager</h1>
    </div>
    <div style="padding: 40px 30px;">
      <h2 style="color: #e94560;">Hi {{.Name}}!</h2>
      <p style="color: #a0a0a0;">Confirm your email address to activate your account.</p>
      <div style="text-align: center; margin-top: 30px;">
        <a href="{{.VerifyURL}}" style="display: inline-block; background: #e94560; color: white; padding: 14px 32px; text-decoration: none; border-radius: 8px;">Verify email</a>
      </div>
      <p style="color: #666; font-size: 13px; margin-top: 30px;">The link expires in 24 hours. If you did not sign up, ignore this email.</p>
    </div>
  </div>
</body>
</html>`

const welcomeTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; background-color: #0f0f23; color: #f1f1f1; padding: 40px 20px;">
  <div style="max-width: 600px; margin: 0 auto; background-color: #1a1a2e; border-radius: 12px;">
    <div style="background: linear-gradient(135deg, #e94560, #0f3460); padding: 30px; text-align: center;">
      <h1 style="margin: 0; color: white;">&#127925; Setlist Manager</h1>
    </div>
    <div style="padding: 40px 30px;">
      <h2 style="color: #e94560;">Welcome aboard, {{.Name}}!</h2>
      <p style="color: #a0a0a0;">Your account is verified. With Setlist Manager you can:</p>
      <ul style="color: #a0a0a0; line-height: 2;">
        <li>Create and manage your songs with detailed sections</li>
        <li>Organize setlists for gigs and rehearsals</li>
        <li>Share songs and setlists with your friends</li>
      </ul>
      <div style="text-align: center; margin-top: 30px;">
        <a href="{{.AppURL}}" style="display: inline-block; background: #e94560; color: white; padding: 14px 32px; text-decoration: none; border-radius: 8px;">Get started</a>
      </div>
    </div>
  </div>
</body>
</html>`

const passwordResetTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; background-color: #0f0f23; color: #f1f1f1; padding: 40px 20px;">
  <div style="max-width: 600px; margin: 0 auto; background-color: #1a1a2e; border-radius: 12px;">
    <div style="background: linear-gradient(135deg, #e94560, #0f3460); padding: 30px; text-align: center;">
      <h1 style="margin: 0; color: white;">&#127925; Setlist Manager</h1>
    </div>
    <div style="padding: 40px 30px;">
      <h2 style="color: #e94560;">Hi {{.Name}},</h2>
      <p style="color: #a0a0a0;">We received a request to reset your password.</p>
      <div style="text-align: center; margin-top: 30px;">
        <a href="{{.ResetURL}}" style="display: inline-block; background: #e94560; color: white; padding: 14px 32px; text-decoration: none; border-radius: 8px;">Reset password</a>
      </div>
      <p style="color: #666; font-size: 13px; margin-top: 30px;">The link expires in 1 hour. If you did not request this, your password is unchanged.</p>
    </div>
  </div>
</body>
</html>`

const passwordChangedTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; background-color: #0f0f23; color: #f1f1f1; padding: 40px 20px;">
  <div style="max-width: 600px; margin: 0 auto; background-color: #1a1a2e; border-radius: 12px;">
    <div style="background: linear-gradient(135deg, #e94560, #0f3460); padding: 30px; text-align: center;">
      <h1 style="margin: 0; color: white;">&#127925; Setlist Manager</h1>
    </div>
    <div style="padding: 40px 30px;">
      <h2 style="color: #e94560;">Hi {{.Name}},</h2>
      <p style="color: #a0a0a0;">Your password was changed. If this was not you, reset your password immediately and contact support.</p>
    </div>
  </div>
</body>
</html>`
