package usecase

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/cardlink/synergy-crm/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateCreateContactInput(input CreateContactInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	} else if len(input.Name) > 200 {
		errors = append(errors, ValidationError{"name", "must not exceed 200 characters"})
	}

	// Email is optional for a contact. A scanned card may not have one;
	// dispatch fails such contacts without attempting transport.
	if input.Email != "" {
		if _, err := mail.ParseAddress(input.Email); err != nil {
			errors = append(errors, ValidationError{"email", "is invalid"})
		}
	}

	return errors
}

func ValidateCreateEmailInput(input CreateEmailInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.ContactID) == "" {
		errors = append(errors, ValidationError{"contact_id", "is required"})
	}
	if strings.TrimSpace(input.Subject) == "" {
		errors = append(errors, ValidationError{"subject", "is required"})
	}
	if strings.TrimSpace(input.Body) == "" {
		errors = append(errors, ValidationError{"body", "is required"})
	}

	if input.Status == entity.StatusScheduled && input.ScheduledFor.IsZero() {
		errors = append(errors, ValidationError{"scheduled_for", "is required for scheduled emails"})
	}

	return errors
}

// ValidationErrorsToDomain flattens field errors into one DomainError the
// handlers can surface as-is.
func ValidationErrorsToDomain(errs []ValidationError) *DomainError {
	msg := "validation failed: "
	for _, e := range errs {
		msg += e.Field + " (" + e.Message + "), "
	}
	return &DomainError{Code: CodeValidation, Message: strings.TrimSuffix(msg, ", ")}
}
