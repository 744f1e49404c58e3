// Package validator provides input validation and sanitization for
// caller-supplied mail fields before they enter the lifecycle core.
package validator

import (
	"strings"
	"unicode/utf8"

	apperrors "github.com/mailroomhq/mailroom-backend/internal/errors"
	"github.com/mailroomhq/mailroom-backend/internal/models"
)

// Field length limits
const (
	MaxNameLength       = 255
	MaxDepartmentLength = 100
	MaxAddressLength    = 500
	MaxNotesLength      = 2000
)

// Pagination constants
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ValidateIncomingFields checks and sanitizes the fields of a new incoming
// mail item. Fields are trimmed in place.
func ValidateIncomingFields(fields *models.IncomingMailFields) error {
	fields.Sender = SanitizeString(fields.Sender, MaxNameLength)
	fields.Recipient = SanitizeString(fields.Recipient, MaxNameLength)
	fields.Department = SanitizeString(fields.Department, MaxDepartmentLength)
	fields.Notes = SanitizeString(fields.Notes, MaxNotesLength)

	if fields.Sender == "" {
		return apperrors.NewValidationError("sender", "sender is required")
	}
	if fields.Recipient == "" {
		return apperrors.NewValidationError("recipient", "recipient is required")
	}
	if fields.Department == "" {
		return apperrors.NewValidationError("department", "department is required")
	}
	return validateCommonFields(fields.Type, fields.Priority)
}

// ValidateOutgoingFields checks and sanitizes the fields of a new outgoing
// mail item. Fields are trimmed in place.
func ValidateOutgoingFields(fields *models.OutgoingMailFields) error {
	fields.Sender = SanitizeString(fields.Sender, MaxNameLength)
	fields.Recipient = SanitizeString(fields.Recipient, MaxNameLength)
	fields.RecipientAddress = SanitizeString(fields.RecipientAddress, MaxAddressLength)
	fields.Notes = SanitizeString(fields.Notes, MaxNotesLength)

	if fields.Sender == "" {
		return apperrors.NewValidationError("sender", "sender is required")
	}
	if fields.Recipient == "" {
		return apperrors.NewValidationError("recipient", "recipient is required")
	}
	if fields.RecipientAddress == "" {
		return apperrors.NewValidationError("recipient_address", "recipient address is required")
	}
	return validateCommonFields(fields.Type, fields.Priority)
}

// validateCommonFields checks the enum fields shared by both directions
func validateCommonFields(t models.MailType, p models.Priority) error {
	if t == "" {
		return apperrors.NewValidationError("type", "mail type is required")
	}
	if !models.ValidMailType(t) {
		return apperrors.NewValidationError("type", "unknown mail type: "+string(t))
	}
	if p == "" {
		return apperrors.NewValidationError("priority", "priority is required")
	}
	if !models.ValidPriority(p) {
		return apperrors.NewValidationError("priority", "unknown priority: "+string(p))
	}
	return nil
}

// ValidatePagination validates and sanitizes pagination parameters.
// Returns sanitized limit and offset values.
func ValidatePagination(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}

// SanitizeString removes potentially dangerous characters and enforces length limits.
// Removes control characters and trims whitespace.
func SanitizeString(input string, maxLength int) string {
	// Remove control characters (ASCII 0-31 and 127)
	input = strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, input)

	// Trim whitespace
	input = strings.TrimSpace(input)

	// Enforce maximum length if specified
	if maxLength > 0 && utf8.RuneCountInString(input) > maxLength {
		runes := []rune(input)
		input = string(runes[:maxLength])
	}

	return input
}
