// Package smtp receives mail manifests over SMTP and logs them as
// incoming mail items. Couriers email a manifest per physical piece:
// the From header names the sender, the Subject names the recipient,
// and the body carries "Key: Value" lines for the remaining fields.
package smtp

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/jhillyerd/enmime"
	"github.com/mailroomhq/mailroom-backend/internal/models"
)

// Manifest represents a parsed mail manifest message
type Manifest struct {
	SenderName  string
	SenderEmail string
	Recipient   string
	Department  string
	Type        models.MailType
	Priority    models.Priority
	Notes       string
}

// ParseManifest parses a manifest email from an io.Reader. Missing type and
// priority lines fall back to Letter and Normal; everything else is checked
// later by field validation.
func ParseManifest(r io.Reader) (*Manifest, error) {
	env, err := enmime.ReadEnvelope(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest envelope: %w", err)
	}

	m := &Manifest{
		Recipient: strings.TrimSpace(env.GetHeader("Subject")),
		Type:      models.TypeLetter,
		Priority:  models.PriorityNormal,
	}
	m.SenderName, m.SenderEmail = parseFromHeader(env.GetHeader("From"))

	parseManifestBody(m, env.Text)

	return m, nil
}

// parseManifestBody fills manifest fields from "Key: Value" body lines.
// Unknown keys are ignored so couriers can annotate freely.
func parseManifestBody(m *Manifest, body string) {
	for _, line := range strings.Split(body, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)

		switch strings.ToLower(strings.TrimSpace(key)) {
		case "department":
			m.Department = value
		case "type":
			m.Type = models.MailType(value)
		case "priority":
			m.Priority = models.Priority(value)
		case "notes":
			m.Notes = value
		}
	}
}

// Sender returns the display name if present, otherwise the address
func (m *Manifest) Sender() string {
	if m.SenderName != "" {
		return m.SenderName
	}
	return m.SenderEmail
}

// Fields converts the manifest into incoming mail fields
func (m *Manifest) Fields() models.IncomingMailFields {
	return models.IncomingMailFields{
		Sender:     m.Sender(),
		Recipient:  m.Recipient,
		Department: m.Department,
		Type:       m.Type,
		Priority:   m.Priority,
		Notes:      m.Notes,
	}
}

// parseFromHeader extracts name and email from a From header
func parseFromHeader(from string) (name, email string) {
	from = strings.TrimSpace(from)
	if from == "" {
		return "", ""
	}

	// Pattern: "Name" <email@example.com> or Name <email@example.com>
	re := regexp.MustCompile(`^(?:"?([^"<]*)"?\s*)?<?([^<>]+@[^<>]+)>?$`)
	matches := re.FindStringSubmatch(from)

	if len(matches) >= 3 {
		name = strings.TrimSpace(matches[1])
		email = strings.TrimSpace(matches[2])
		// Remove quotes from name
		name = strings.Trim(name, `"`)
	} else {
		// Fallback: treat entire string as email
		email = from
	}

	return name, email
}
