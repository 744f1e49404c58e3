package smtp

import (
	"context"
	"io"
	"log/slog"

	"github.com/emersion/go-smtp"
)

// Session implements the go-smtp Session interface. Each DATA command
// carries one manifest, which becomes one incoming mail item.
type Session struct {
	backend    *Backend
	from       string
	recipients []string
}

// NewSession creates a new SMTP session
func NewSession(backend *Backend) *Session {
	return &Session{
		backend:    backend,
		recipients: make([]string, 0),
	}
}

// AuthPlain handles PLAIN authentication (not required for receiving)
func (s *Session) AuthPlain(username, password string) error {
	// No authentication required for receiving manifests
	return nil
}

// Mail handles the MAIL FROM command
func (s *Session) Mail(from string, opts *smtp.MailOptions) error {
	s.from = from
	if s.backend.logger != nil {
		s.backend.logger.Debug("MAIL FROM", slog.String("from", from))
	}
	return nil
}

// Rcpt handles the RCPT TO command. The envelope recipient is the intake
// address itself, so any recipient is accepted.
func (s *Session) Rcpt(to string, opts *smtp.RcptOptions) error {
	s.recipients = append(s.recipients, to)
	if s.backend.logger != nil {
		s.backend.logger.Debug("RCPT TO", slog.String("to", to))
	}
	return nil
}

// Data handles the DATA command - receives and logs the manifest
func (s *Session) Data(r io.Reader) error {
	if len(s.recipients) == 0 {
		return &smtp.SMTPError{
			Code:         503,
			EnhancedCode: smtp.EnhancedCode{5, 5, 1},
			Message:      "No recipients specified",
		}
	}

	manifest, err := ParseManifest(r)
	if err != nil {
		if s.backend.logger != nil {
			s.backend.logger.Error("failed to parse manifest", slog.Any("error", err))
		}
		return &smtp.SMTPError{
			Code:         550,
			EnhancedCode: smtp.EnhancedCode{5, 6, 0},
			Message:      "Failed to parse manifest",
		}
	}

	// Fall back to the envelope sender if the From header was empty
	if manifest.SenderEmail == "" && manifest.SenderName == "" {
		manifest.SenderEmail = s.from
	}

	item, err := s.backend.mailService.LogIncoming(context.Background(), manifest.Fields())
	if err != nil {
		if s.backend.logger != nil {
			s.backend.logger.Error("rejected manifest",
				slog.String("from", s.from),
				slog.Any("error", err))
		}
		return &smtp.SMTPError{
			Code:         550,
			EnhancedCode: smtp.EnhancedCode{5, 6, 0},
			Message:      "Invalid manifest: " + err.Error(),
		}
	}

	if s.backend.logger != nil {
		s.backend.logger.Info("manifest accepted",
			slog.String("id", item.ID),
			slog.String("from", s.from),
			slog.String("recipient", item.Recipient))
	}

	return nil
}

// Reset resets the session state
func (s *Session) Reset() {
	s.from = ""
	s.recipients = make([]string, 0)
}

// Logout handles the end of the session
func (s *Session) Logout() error {
	return nil
}
