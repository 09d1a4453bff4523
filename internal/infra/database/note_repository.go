package database

import (
	"context"
	"database/sql"

	"github.com/cardlink/synergy-crm/internal/entity"
)

type NoteRepository struct {
	DB *sql.DB
}

func NewNoteRepository(db *sql.DB) *NoteRepository {
	return &NoteRepository{DB: db}
}

// Upsert writes the merged ledger text for a contact. The caller has
// already concatenated old and new notes; this just lands the result.
func (r *NoteRepository) Upsert(ctx context.Context, note *entity.SynergyNote) error {
	query := `
		INSERT INTO synergy_notes (contact_id, notes, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (contact_id)
		DO UPDATE SET
			notes = EXCLUDED.notes,
			updated_at = NOW()
		RETURNING updated_at
	`

	return r.DB.QueryRowContext(ctx, query, note.ContactID, note.Notes).Scan(&note.UpdatedAt)
}

// FindByContactID returns (nil, nil) when the contact has no ledger entry yet.
func (r *NoteRepository) FindByContactID(ctx context.Context, contactID string) (*entity.SynergyNote, error) {
	note := &entity.SynergyNote{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT contact_id, notes, updated_at
		FROM synergy_notes
		WHERE contact_id = $1
	`, contactID).Scan(&note.ContactID, &note.Notes, &note.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return note, nil
}
