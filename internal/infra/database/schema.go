package database

import (
	"context"
	"database/sql"
)

// Bootstrap schema. The use-case level cascade is the source of truth
// for contact deletion; ON DELETE CASCADE only backstops it.
const schema = `
CREATE TABLE IF NOT EXISTS contacts (
	id             UUID PRIMARY KEY,
	name           TEXT NOT NULL,
	email          TEXT,
	phone          TEXT,
	company        TEXT,
	website        TEXT,
	position       TEXT,
	notes          TEXT,
	tags           TEXT[],
	card_image_url TEXT,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS follow_up_emails (
	id            UUID PRIMARY KEY,
	contact_id    UUID NOT NULL REFERENCES contacts(id) ON DELETE CASCADE,
	subject       TEXT NOT NULL,
	body          TEXT NOT NULL,
	status        TEXT NOT NULL DEFAULT 'draft'
	              CHECK (status IN ('draft', 'scheduled', 'sent', 'failed')),
	scheduled_for TIMESTAMPTZ,
	sent_at       TIMESTAMPTZ,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_follow_up_emails_due
	ON follow_up_emails (scheduled_for)
	WHERE status = 'scheduled';

CREATE INDEX IF NOT EXISTS idx_follow_up_emails_contact
	ON follow_up_emails (contact_id);

CREATE TABLE IF NOT EXISTS synergy_notes (
	contact_id UUID PRIMARY KEY REFERENCES contacts(id) ON DELETE CASCADE,
	notes      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// Migrate applies the embedded schema. Idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
