package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/cardlink/synergy-crm/internal/entity"
	"github.com/cardlink/synergy-crm/internal/usecase"
)

// ErrContactGone maps the FK violation raised when an email references a
// contact that no longer exists.
var ErrContactGone = errors.New("referenced contact does not exist")

const emailColumns = `id, contact_id, subject, body, status,
	COALESCE(scheduled_for, 'epoch'::timestamptz), sent_at, created_at, updated_at`

type EmailRepository struct {
	DB *sql.DB
}

func NewEmailRepository(db *sql.DB) *EmailRepository {
	return &EmailRepository{DB: db}
}

func (r *EmailRepository) Create(ctx context.Context, e *entity.Email) error {
	query := `
		INSERT INTO follow_up_emails (id, contact_id, subject, body, status, scheduled_for, sent_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.DB.ExecContext(ctx, query,
		e.ID, e.ContactID, e.Subject, e.Body, e.Status,
		nullTime(e.ScheduledFor), e.SentAt, e.CreatedAt, e.UpdatedAt,
	)

	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrContactGone
		}
		return err
	}

	return nil
}

func (r *EmailRepository) Update(ctx context.Context, id string, fields usecase.EmailPatch) error {
	set := "updated_at = NOW()"
	args := []interface{}{}
	idx := 1

	add := func(column string, value interface{}) {
		set += fmt.Sprintf(", %s = $%d", column, idx)
		args = append(args, value)
		idx++
	}

	if fields.Subject != nil {
		add("subject", *fields.Subject)
	}
	if fields.Body != nil {
		add("body", *fields.Body)
	}
	if fields.Status != nil {
		add("status", *fields.Status)
	}
	if fields.ScheduledFor != nil {
		add("scheduled_for", *fields.ScheduledFor)
	}
	if fields.SentAt != nil {
		add("sent_at", *fields.SentAt)
	}

	query := fmt.Sprintf("UPDATE follow_up_emails SET %s WHERE id = $%d", set, idx)
	args = append(args, id)

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *EmailRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM follow_up_emails WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteByContactID removes every email bound to the contact and returns
// the removed rows so a failed cascade can restore them.
func (r *EmailRepository) DeleteByContactID(ctx context.Context, contactID string) ([]*entity.Email, error) {
	rows, err := r.DB.QueryContext(ctx, `
		DELETE FROM follow_up_emails
		WHERE contact_id = $1
		RETURNING `+emailColumns,
		contactID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEmails(rows)
}

// Restore re-inserts emails removed by a cascade whose second half failed.
func (r *EmailRepository) Restore(ctx context.Context, emails []*entity.Email) error {
	for _, e := range emails {
		if err := r.Create(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// FindByID returns (nil, nil) when the email does not exist.
func (r *EmailRepository) FindByID(ctx context.Context, id string) (*entity.Email, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+emailColumns+` FROM follow_up_emails WHERE id = $1`, id)

	email, err := scanEmail(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return email, nil
}

func (r *EmailRepository) ListForContact(ctx context.Context, contactID string) ([]*entity.Email, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+emailColumns+`
		FROM follow_up_emails
		WHERE contact_id = $1
		ORDER BY created_at DESC
	`, contactID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEmails(rows)
}

func (r *EmailRepository) List(ctx context.Context) ([]*entity.Email, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+emailColumns+` FROM follow_up_emails ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEmails(rows)
}

// DueEmail is one eligible record joined with the recipient coordinates
// the dispatcher needs.
type DueEmail struct {
	ID             string
	ContactID      string
	Subject        string
	Body           string
	ContactName    string
	RecipientEmail string
}

// FindDue returns emails eligible for dispatch: scheduled, send time
// arrived. The recipient address comes along so the dispatcher does not
// need a second round trip per record.
func (r *EmailRepository) FindDue(ctx context.Context, now time.Time) ([]DueEmail, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT e.id, e.contact_id, e.subject, e.body, c.name, COALESCE(c.email, '')
		FROM follow_up_emails e
		JOIN contacts c ON c.id = e.contact_id
		WHERE e.status = 'scheduled' AND e.scheduled_for <= $1
	`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var due []DueEmail
	for rows.Next() {
		var d DueEmail
		if err := rows.Scan(&d.ID, &d.ContactID, &d.Subject, &d.Body, &d.ContactName, &d.RecipientEmail); err != nil {
			return nil, err
		}
		due = append(due, d)
	}
	return due, rows.Err()
}

// ClaimForSend is the single concurrency-control point of the dispatcher:
// a compare-and-swap that moves the record out of scheduled. Zero rows
// affected means another scan run got there first.
func (r *EmailRepository) ClaimForSend(ctx context.Context, id string, now time.Time) (bool, error) {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE follow_up_emails
		SET status = 'sent', sent_at = $2, updated_at = $2
		WHERE id = $1 AND status = 'scheduled'
	`, id, now)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// MarkFailed finalizes a record whose delivery could not happen. Used both
// after a failed transport call (downgrading a claimed row) and for
// contacts with no usable address (conditional, pre-transport).
func (r *EmailRepository) MarkFailed(ctx context.Context, id string, now time.Time, onlyIfScheduled bool) (bool, error) {
	query := `
		UPDATE follow_up_emails
		SET status = 'failed', sent_at = $2, updated_at = $2
		WHERE id = $1
	`
	if onlyIfScheduled {
		query += ` AND status = 'scheduled'`
	}

	result, err := r.DB.ExecContext(ctx, query, id, now)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func collectEmails(rows *sql.Rows) ([]*entity.Email, error) {
	var emails []*entity.Email
	for rows.Next() {
		email, err := scanEmail(rows)
		if err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}

func scanEmail(row rowScanner) (*entity.Email, error) {
	e := &entity.Email{}
	err := row.Scan(
		&e.ID, &e.ContactID, &e.Subject, &e.Body, &e.Status,
		&e.ScheduledFor, &e.SentAt, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}
