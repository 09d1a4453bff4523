package database

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/cardlink/synergy-crm/internal/entity"
	"github.com/cardlink/synergy-crm/internal/usecase"
)

var contactColumns = []string{
	"id", "name", "email", "phone", "company",
	"website", "position", "notes", "tags", "card_image_url",
	"created_at", "updated_at",
}

func TestContactCreateBindsAllColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	now := time.Now()
	contact := &entity.Contact{
		ID: "c1", Name: "Jo Lee", Email: "jo@x.com", Company: "Globex",
		Tags: []string{"conference", "vip"}, CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO contacts")).
		WithArgs("c1", "Jo Lee", "jo@x.com", nil, "Globex", nil, nil, nil,
			sqlmock.AnyArg(), nil, now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewContactRepository(db)
	assert.NoError(t, repo.Create(context.Background(), contact))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactFindByIDAbsentIsNilNil(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM contacts")).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	repo := NewContactRepository(db)
	contact, err := repo.FindByID(context.Background(), "ghost")

	assert.NoError(t, err)
	assert.Nil(t, contact)
}

func TestContactFindByIDScansRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM contacts")).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows(contactColumns).
			AddRow("c1", "Jo Lee", "jo@x.com", "", "Globex", "", "CEO", "met at expo",
				"{conference,vip}", "", now, now))

	repo := NewContactRepository(db)
	contact, err := repo.FindByID(context.Background(), "c1")

	assert.NoError(t, err)
	assert.Equal(t, "Jo Lee", contact.Name)
	assert.Equal(t, []string{"conference", "vip"}, contact.Tags)
}

func TestContactUpdateBuildsPartialSet(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	name := "Jo Lee-Park"
	notes := "now at Initech"

	// Only the patched columns appear, in declaration order.
	mock.ExpectExec(regexp.QuoteMeta("UPDATE contacts SET updated_at = NOW(), name = $1, notes = $2 WHERE id = $3")).
		WithArgs(name, notes, "c1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewContactRepository(db)
	err = repo.Update(context.Background(), "c1", usecase.ContactPatch{Name: &name, Notes: &notes})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactUpdateUnknownIDIsNoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	name := "x"
	mock.ExpectExec(regexp.QuoteMeta("UPDATE contacts")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewContactRepository(db)
	err = repo.Update(context.Background(), "ghost", usecase.ContactPatch{Name: &name})

	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestContactListNewestFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WillReturnRows(sqlmock.NewRows(contactColumns).
			AddRow("c2", "Newer", "", "", "", "", "", "", "{}", "", now, now).
			AddRow("c1", "Older", "", "", "", "", "", "", "{}", "", now.Add(-time.Hour), now))

	repo := NewContactRepository(db)
	contacts, err := repo.List(context.Background())

	assert.NoError(t, err)
	assert.Len(t, contacts, 2)
	assert.Equal(t, "c2", contacts[0].ID)
}
