package entity

import (
	"context"
	"time"
)

// SynergyNote is the append-only note ledger entry for one contact.
// New notes are concatenated after the old ones, never overwriting them.
type SynergyNote struct {
	ContactID string    `json:"contact_id"`
	Notes     string    `json:"notes"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MergeNotes appends newNotes after existing ones with a blank-line
// separator. Either side may be empty.
func MergeNotes(existing, newNotes string) string {
	if existing == "" {
		return newNotes
	}
	if newNotes == "" {
		return existing
	}
	return existing + "\n\n" + newNotes
}

type NoteRepositoryInterface interface {

	// Upsert replaces the ledger row for the note's contact, inserting if absent.
	Upsert(ctx context.Context, note *SynergyNote) error

	// FindByContactID returns nil (not an error) when no ledger entry exists.
	FindByContactID(ctx context.Context, contactID string) (*SynergyNote, error)
}
