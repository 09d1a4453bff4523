package worker

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/cardlink/synergy-crm/internal/infra/database"
)

func setupTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	return db, mock, func() { db.Close() }
}

type fakeTransport struct {
	calls []string
	err   error
}

func (f *fakeTransport) Send(to, subject, body string) error {
	f.calls = append(f.calls, to)
	return f.err
}

var (
	dueQuery    = regexp.QuoteMeta("SELECT e.id, e.contact_id, e.subject, e.body, c.name, COALESCE(c.email, '')")
	claimUpdate = regexp.QuoteMeta("SET status = 'sent', sent_at = $2")
	failUpdate  = regexp.QuoteMeta("SET status = 'failed', sent_at = $2")
)

func dueRows(rows ...[]driverValue) *sqlmock.Rows {
	r := sqlmock.NewRows([]string{"id", "contact_id", "subject", "body", "name", "email"})
	for _, row := range rows {
		r.AddRow(row...)
	}
	return r
}

type driverValue = driver.Value

func TestDispatcherSendsDueEmail(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(dueQuery).
		WillReturnRows(dueRows([]driverValue{"email-1", "contact-1", "Great meeting you", "Hi Jo...", "Jo Lee", "jo@x.com"}))
	mock.ExpectExec(claimUpdate).
		WithArgs("email-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	transport := &fakeTransport{}
	d := NewDispatcher(database.NewEmailRepository(db), transport, time.Minute)

	d.RunOnce(context.Background())

	assert.Equal(t, []string{"jo@x.com"}, transport.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDispatcherTransportFailureMarksFailed(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(dueQuery).
		WillReturnRows(dueRows([]driverValue{"email-1", "contact-1", "s", "b", "Jo Lee", "jo@x.com"}))
	mock.ExpectExec(claimUpdate).
		WithArgs("email-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// The claimed row is downgraded unconditionally.
	mock.ExpectExec(failUpdate).
		WithArgs("email-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	transport := &fakeTransport{err: errors.New("smtp refused")}
	d := NewDispatcher(database.NewEmailRepository(db), transport, time.Minute)

	d.RunOnce(context.Background())

	assert.Len(t, transport.calls, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDispatcherMissingAddressFailsWithoutTransport(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(dueQuery).
		WillReturnRows(dueRows([]driverValue{"email-1", "contact-1", "s", "b", "Jo Lee", ""}))
	mock.ExpectExec(failUpdate).
		WithArgs("email-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	transport := &fakeTransport{}
	d := NewDispatcher(database.NewEmailRepository(db), transport, time.Minute)

	d.RunOnce(context.Background())

	assert.Empty(t, transport.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDispatcherSecondScanIsIdempotent(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(dueQuery).
		WillReturnRows(dueRows([]driverValue{"email-1", "contact-1", "s", "b", "Jo Lee", "jo@x.com"}))
	mock.ExpectExec(claimUpdate).
		WithArgs("email-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Second pass: the record is sent now, so it is no longer eligible.
	mock.ExpectQuery(dueQuery).WillReturnRows(dueRows())

	transport := &fakeTransport{}
	d := NewDispatcher(database.NewEmailRepository(db), transport, time.Minute)

	ctx := context.Background()
	d.RunOnce(ctx)
	d.RunOnce(ctx)

	assert.Len(t, transport.calls, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDispatcherLostClaimSkipsTransport(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(dueQuery).
		WillReturnRows(dueRows([]driverValue{"email-1", "contact-1", "s", "b", "Jo Lee", "jo@x.com"}))
	// An overlapping pass already moved the record out of scheduled:
	// the conditional update hits zero rows.
	mock.ExpectExec(claimUpdate).
		WithArgs("email-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	transport := &fakeTransport{}
	d := NewDispatcher(database.NewEmailRepository(db), transport, time.Minute)

	d.RunOnce(context.Background())

	assert.Empty(t, transport.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDispatcherOneFailureDoesNotBlockOthers(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(dueQuery).
		WillReturnRows(dueRows(
			[]driverValue{"email-1", "contact-1", "s", "b", "No Address", ""},
			[]driverValue{"email-2", "contact-2", "s", "b", "Jo Lee", "jo@x.com"},
		))
	mock.ExpectExec(failUpdate).
		WithArgs("email-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(claimUpdate).
		WithArgs("email-2", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	transport := &fakeTransport{}
	d := NewDispatcher(database.NewEmailRepository(db), transport, time.Minute)

	d.RunOnce(context.Background())

	// The address-less record failed, the healthy one still went out.
	assert.Equal(t, []string{"jo@x.com"}, transport.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}
