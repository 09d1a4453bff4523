package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/lib/pq"

	"github.com/cardlink/synergy-crm/internal/entity"
	"github.com/cardlink/synergy-crm/internal/usecase"
)

type ContactRepository struct {
	DB *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{DB: db}
}

func (r *ContactRepository) Create(ctx context.Context, c *entity.Contact) error {
	query := `
		INSERT INTO contacts (id, name, email, phone, company, website, position, notes, tags, card_image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.DB.ExecContext(ctx, query,
		c.ID,
		c.Name,
		nullString(c.Email),
		nullString(c.Phone),
		nullString(c.Company),
		nullString(c.Website),
		nullString(c.Position),
		nullString(c.Notes),
		pq.Array(c.Tags),
		nullString(c.CardImageURL),
		c.CreatedAt,
		c.UpdatedAt,
	)

	if err != nil {
		log.Printf("❌ insert contact failed: %v", err)
		return err
	}

	return nil
}

func (r *ContactRepository) Update(ctx context.Context, id string, fields usecase.ContactPatch) error {
	set := "updated_at = NOW()"
	args := []interface{}{}
	idx := 1

	add := func(column string, value interface{}) {
		set += fmt.Sprintf(", %s = $%d", column, idx)
		args = append(args, value)
		idx++
	}

	if fields.Name != nil {
		add("name", *fields.Name)
	}
	if fields.Email != nil {
		add("email", *fields.Email)
	}
	if fields.Phone != nil {
		add("phone", *fields.Phone)
	}
	if fields.Company != nil {
		add("company", *fields.Company)
	}
	if fields.Website != nil {
		add("website", *fields.Website)
	}
	if fields.Position != nil {
		add("position", *fields.Position)
	}
	if fields.Notes != nil {
		add("notes", *fields.Notes)
	}
	if fields.Tags != nil {
		add("tags", pq.Array(*fields.Tags))
	}

	query := fmt.Sprintf("UPDATE contacts SET %s WHERE id = $%d", set, idx)
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

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// FindByID returns (nil, nil) when the contact does not exist.
func (r *ContactRepository) FindByID(ctx context.Context, id string) (*entity.Contact, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(email,''), COALESCE(phone,''), COALESCE(company,''),
		       COALESCE(website,''), COALESCE(position,''), COALESCE(notes,''),
		       COALESCE(tags, '{}'), COALESCE(card_image_url,''), created_at, updated_at
		FROM contacts
		WHERE id = $1
	`, id)

	contact, err := scanContact(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return contact, nil
}

// List returns all contacts, newest first.
func (r *ContactRepository) List(ctx context.Context) ([]*entity.Contact, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, COALESCE(email,''), COALESCE(phone,''), COALESCE(company,''),
		       COALESCE(website,''), COALESCE(position,''), COALESCE(notes,''),
		       COALESCE(tags, '{}'), COALESCE(card_image_url,''), created_at, updated_at
		FROM contacts
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []*entity.Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}
	return contacts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanContact(row rowScanner) (*entity.Contact, error) {
	c := &entity.Contact{}
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company,
		&c.Website, &c.Position, &c.Notes,
		pq.Array(&c.Tags), &c.CardImageURL, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}
