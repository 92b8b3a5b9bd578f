package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

// Message is a rendered email.
type Message struct {
	Subject string
	Text    string
	HTML    string
}

var upgradeHTML = template.Must(template.New("upgrade").Parse(`<!doctype html>
<html><body style="font-family:sans-serif">
<h2>{{.TenantName}} is now on Pro</h2>
<p>Your workspace <strong>{{.TenantSlug}}</strong> was upgraded on {{.When}}.</p>
<p>Notes are now unlimited for every member of your team.</p>
</body></html>`))

// UpgradeNotice renders the message sent to the admin who upgraded a tenant.
// Names are HTML-escaped by the template.
func UpgradeNotice(tenantSlug, tenantName string, at time.Time) (Message, error) {
	if tenantName == "" {
		tenantName = tenantSlug
	}
	when := at.UTC().Format("2 Jan 2006 15:04 MST")
	var buf bytes.Buffer
	err := upgradeHTML.Execute(&buf, map[string]string{
		"TenantSlug": tenantSlug,
		"TenantName": tenantName,
		"When":       when,
	})
	if err != nil {
		return Message{}, err
	}
	return Message{
		Subject: fmt.Sprintf("%s upgraded to Pro", tenantName),
		Text:    fmt.Sprintf("Your workspace %s was upgraded to the Pro plan on %s. Notes are now unlimited.", tenantSlug, when),
		HTML:    buf.String(),
	}, nil
}
