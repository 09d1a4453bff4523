package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCoerceStatusClosure(t *testing.T) {
	// Recognized values pass through untouched.
	for _, s := range []string{StatusDraft, StatusScheduled, StatusSent, StatusFailed} {
		assert.Equal(t, s, CoerceStatus(s))
	}

	// Everything else defaults to draft.
	for _, s := range []string{"", "DRAFT", "pending", "sending", "Sent ", "queued"} {
		assert.Equal(t, StatusDraft, CoerceStatus(s), "input %q", s)
	}
}

func TestNewEmailCoercesStatus(t *testing.T) {
	email, err := NewEmail("contact-1", "s", "b", "whatever", time.Time{})
	assert.NoError(t, err)
	assert.Equal(t, StatusDraft, email.Status)
	assert.NotEmpty(t, email.ID)
}

func TestNewEmailRequiresContact(t *testing.T) {
	_, err := NewEmail("", "s", "b", StatusDraft, time.Time{})
	assert.ErrorIs(t, err, ErrEmailContactRequired)
}

func TestEmailDue(t *testing.T) {
	now := time.Now()

	due := &Email{Status: StatusScheduled, ScheduledFor: now.Add(-time.Minute)}
	assert.True(t, due.Due(now))

	exact := &Email{Status: StatusScheduled, ScheduledFor: now}
	assert.True(t, exact.Due(now))

	future := &Email{Status: StatusScheduled, ScheduledFor: now.Add(time.Minute)}
	assert.False(t, future.Due(now))

	// Only scheduled records are ever eligible.
	for _, s := range []string{StatusDraft, StatusSent, StatusFailed} {
		e := &Email{Status: s, ScheduledFor: now.Add(-time.Hour)}
		assert.False(t, e.Due(now), "status %s", s)
	}
}

func TestMergeNotes(t *testing.T) {
	assert.Equal(t, "A\n\nB", MergeNotes("A", "B"))
	assert.Equal(t, "B", MergeNotes("", "B"))
	assert.Equal(t, "A", MergeNotes("A", ""))
	assert.Equal(t, "", MergeNotes("", ""))
}

func TestNewContactTrimsAndValidatesName(t *testing.T) {
	_, err := NewContact("   ", "", "", "", "", "")
	assert.ErrorIs(t, err, ErrContactNameRequired)

	c, err := NewContact("  Jo Lee  ", "jo@x.com", "", "", "", "")
	assert.NoError(t, err)
	assert.Equal(t, "Jo Lee", c.Name)
	assert.True(t, c.HasEmailAddress())
}
