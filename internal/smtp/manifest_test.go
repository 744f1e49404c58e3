package smtp

import (
	"strings"
	"testing"

	"github.com/mailroomhq/mailroom-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func manifestMessage(from, subject, body string) string {
	return "From: " + from + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"\r\n" +
		body
}

// ==================== ParseManifest Tests ====================

func TestParseManifest_FullMessage(t *testing.T) {
	msg := manifestMessage(
		`"ACME Corp" <shipping@acme.example>`,
		"Sarah Johnson",
		"Department: Legal\r\nType: Certified Mail\r\nPriority: High\r\nNotes: signature required\r\n",
	)

	m, err := ParseManifest(strings.NewReader(msg))

	require.NoError(t, err)
	assert.Equal(t, "ACME Corp", m.SenderName)
	assert.Equal(t, "shipping@acme.example", m.SenderEmail)
	assert.Equal(t, "Sarah Johnson", m.Recipient)
	assert.Equal(t, "Legal", m.Department)
	assert.Equal(t, models.TypeCertifiedMail, m.Type)
	assert.Equal(t, models.PriorityHigh, m.Priority)
	assert.Equal(t, "signature required", m.Notes)
}

func TestParseManifest_DefaultsTypeAndPriority(t *testing.T) {
	msg := manifestMessage("courier@dropoff.example", "Mike Chen", "Department: Engineering\r\n")

	m, err := ParseManifest(strings.NewReader(msg))

	require.NoError(t, err)
	assert.Equal(t, models.TypeLetter, m.Type)
	assert.Equal(t, models.PriorityNormal, m.Priority)
}

func TestParseManifest_IgnoresUnknownKeys(t *testing.T) {
	msg := manifestMessage("courier@dropoff.example", "Mike Chen",
		"Department: Engineering\r\nDock: 4\r\nplain line without separator\r\n")

	m, err := ParseManifest(strings.NewReader(msg))

	require.NoError(t, err)
	assert.Equal(t, "Engineering", m.Department)
}

func TestParseManifest_KeysAreCaseInsensitive(t *testing.T) {
	msg := manifestMessage("courier@dropoff.example", "Mike Chen",
		"DEPARTMENT: Engineering\r\npriority: Medium\r\n")

	m, err := ParseManifest(strings.NewReader(msg))

	require.NoError(t, err)
	assert.Equal(t, "Engineering", m.Department)
	assert.Equal(t, models.PriorityMedium, m.Priority)
}

func TestParseManifest_MalformedMessage(t *testing.T) {
	_, err := ParseManifest(strings.NewReader("not an email at all"))

	assert.Error(t, err)
}

// ==================== Sender Tests ====================

func TestSender_PrefersDisplayName(t *testing.T) {
	m := &Manifest{SenderName: "ACME Corp", SenderEmail: "shipping@acme.example"}
	assert.Equal(t, "ACME Corp", m.Sender())
}

func TestSender_FallsBackToEmail(t *testing.T) {
	m := &Manifest{SenderEmail: "shipping@acme.example"}
	assert.Equal(t, "shipping@acme.example", m.Sender())
}

// ==================== Fields Tests ====================

func TestFields_MapsManifestToIncomingFields(t *testing.T) {
	m := &Manifest{
		SenderName: "ACME Corp",
		Recipient:  "Sarah Johnson",
		Department: "Legal",
		Type:       models.TypePackage,
		Priority:   models.PriorityHigh,
		Notes:      "fragile",
	}

	fields := m.Fields()

	assert.Equal(t, "ACME Corp", fields.Sender)
	assert.Equal(t, "Sarah Johnson", fields.Recipient)
	assert.Equal(t, "Legal", fields.Department)
	assert.Equal(t, models.TypePackage, fields.Type)
	assert.Equal(t, models.PriorityHigh, fields.Priority)
	assert.Equal(t, "fragile", fields.Notes)
}

// ==================== parseFromHeader Tests ====================

func TestParseFromHeader(t *testing.T) {
	tests := []struct {
		name      string
		from      string
		wantName  string
		wantEmail string
	}{
		{"quoted name", `"ACME Corp" <shipping@acme.example>`, "ACME Corp", "shipping@acme.example"},
		{"bare name", "ACME Corp <shipping@acme.example>", "ACME Corp", "shipping@acme.example"},
		{"address only", "shipping@acme.example", "", "shipping@acme.example"},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, email := parseFromHeader(tt.from)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantEmail, email)
		})
	}
}
