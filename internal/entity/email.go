package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status values a follow-up email can carry. Anything else coming
// over the wire is coerced to draft at the boundary.
const (
	StatusDraft     = "draft"
	StatusScheduled = "scheduled"
	StatusSent      = "sent"
	StatusFailed    = "failed"
)

var ErrEmailContactRequired = errors.New("email must reference a contact")

// Entidade: Email (follow-up email record)
type Email struct {
	ID        string `json:"id"`
	ContactID string `json:"contact_id"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`

	Status       string     `json:"status"` // draft, scheduled, sent, failed
	ScheduledFor time.Time  `json:"scheduled_for"`
	SentAt       *time.Time `json:"sent_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Factory
func NewEmail(contactID, subject, body, status string, scheduledFor time.Time) (*Email, error) {
	if contactID == "" {
		return nil, ErrEmailContactRequired
	}

	email := &Email{
		ID:           uuid.New().String(),
		ContactID:    contactID,
		Subject:      subject,
		Body:         body,
		Status:       CoerceStatus(status),
		ScheduledFor: scheduledFor,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	return email, nil
}

func ValidStatus(status string) bool {
	switch status {
	case StatusDraft, StatusScheduled, StatusSent, StatusFailed:
		return true
	}
	return false
}

// CoerceStatus defaults any unrecognized status to draft. Safer than
// trusting the caller: a typo must never leak a fifth status into storage.
func CoerceStatus(status string) string {
	if ValidStatus(status) {
		return status
	}
	return StatusDraft
}

// Due reports eligibility for dispatch: scheduled and past its send time.
func (e *Email) Due(now time.Time) bool {
	return e.Status == StatusScheduled && !e.ScheduledFor.After(now)
}

// Terminal states are never reprocessed by the dispatcher.
func (e *Email) Terminal() bool {
	return e.Status == StatusSent || e.Status == StatusFailed
}
