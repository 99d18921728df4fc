package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// Template names used by the services.
const (
	TemplateWelcome              = "welcome"
	TemplateSubscriptionActive   = "subscription_active"
	TemplateSubscriptionExpiring = "subscription_expiring"
)

var builtinTemplates = map[string]string{
	TemplateWelcome: `
<h2>Welcome to Tailorix, {{.Name}}!</h2>
<p>Your account has been created.</p>
{{if .IsTailor}}<p>Activate a subscription plan to appear in customer searches.</p>{{end}}
<p>— The Tailorix Team</p>`,

	TemplateSubscriptionActive: `
<h2>Subscription activated</h2>
<p>Hi {{.Name}}, your <b>{{.PlanName}}</b> plan is now active until {{.ExpiresAt}}.</p>
<p>Your shop is visible in nearby searches.</p>`,

	TemplateSubscriptionExpiring: `
<h2>Subscription expiring soon</h2>
<p>Hi {{.Name}}, your <b>{{.PlanName}}</b> plan expires on {{.ExpiresAt}}.</p>
<p>Renew now to stay visible to customers.</p>`,
}

// TemplateManager parses and renders email templates.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager returns a manager preloaded with the built-in templates.
func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{templates: make(map[string]*template.Template)}
	for name, body := range builtinTemplates {
		_ = tm.AddTemplate(name, body)
	}
	return tm
}

func (tm *TemplateManager) Render(name string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, ok := tm.templates[name]
	tm.mutex.RUnlock()

	if !ok {
		return "", fmt.Errorf("template not found: %s", name)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func (tm *TemplateManager) AddTemplate(name, body string) error {
	tpl, err := template.New(name).Parse(body)
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}
