package worker

import (
	"context"
	"log"
	"time"

	"github.com/cardlink/synergy-crm/internal/infra/database"
	"github.com/cardlink/synergy-crm/internal/infra/http/middleware"
	"github.com/cardlink/synergy-crm/internal/usecase"
)

// Dispatcher performs the scheduled-email scan-and-send pass. One call to
// RunOnce is one bounded batch; Start wraps it in a ticker for in-process
// operation. Overlapping passes are safe: the per-record claim in the
// repository is a conditional update, so a record claimed by one pass can
// never be re-claimed by another.
type Dispatcher struct {
	emails       *database.EmailRepository
	transport    usecase.MailTransport
	tickInterval time.Duration
}

func NewDispatcher(emails *database.EmailRepository, transport usecase.MailTransport, tickInterval time.Duration) *Dispatcher {
	if tickInterval <= 0 {
		tickInterval = time.Minute
	}
	return &Dispatcher{
		emails:       emails,
		transport:    transport,
		tickInterval: tickInterval,
	}
}

func (d *Dispatcher) Start(ctx context.Context) {
	log.Printf("🕒 Email dispatcher started (every %s)", d.tickInterval)

	ticker := time.NewTicker(d.tickInterval)
	defer ticker.Stop()

	d.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Email dispatcher stopped")
			return
		case <-ticker.C:
			d.RunOnce(ctx)
		}
	}
}

// RunOnce processes every currently eligible record independently; one
// record's failure never blocks the rest of the batch.
func (d *Dispatcher) RunOnce(ctx context.Context) {
	now := time.Now()

	due, err := d.emails.FindDue(ctx, now)
	if err != nil {
		log.Printf("❌ failed to scan for due emails: %v", err)
		return
	}

	if len(due) == 0 {
		return
	}
	log.Printf("📬 found %d email(s) to send", len(due))

	sent, failed := 0, 0
	for _, email := range due {
		switch d.dispatchOne(ctx, email, now) {
		case dispatchSent:
			sent++
		case dispatchFailed:
			failed++
		}
	}

	if sent > 0 || failed > 0 {
		log.Printf("✅ dispatch pass done: %d sent, %d failed", sent, failed)
	}
}

type dispatchOutcome int

const (
	dispatchSkipped dispatchOutcome = iota
	dispatchSent
	dispatchFailed
)

func (d *Dispatcher) dispatchOne(ctx context.Context, email database.DueEmail, now time.Time) dispatchOutcome {
	// No usable address: fail the record without touching the transport.
	// Conditional on status so an overlapping pass cannot double-count.
	if email.RecipientEmail == "" {
		log.Printf("⚠️ contact %s has no email address, failing email %s", email.ContactID, email.ID)
		marked, err := d.emails.MarkFailed(ctx, email.ID, now, true)
		if err != nil {
			log.Printf("❌ failed to mark email %s as failed: %v", email.ID, err)
			return dispatchSkipped
		}
		if marked {
			middleware.RecordDispatch("failed")
			return dispatchFailed
		}
		return dispatchSkipped
	}

	// Claim before sending. Zero rows means a concurrent pass owns this
	// record; skipping here is what prevents duplicate sends.
	claimed, err := d.emails.ClaimForSend(ctx, email.ID, now)
	if err != nil {
		log.Printf("❌ failed to claim email %s: %v", email.ID, err)
		return dispatchSkipped
	}
	if !claimed {
		return dispatchSkipped
	}

	if err := d.transport.Send(email.RecipientEmail, email.Subject, email.Body); err != nil {
		log.Printf("❌ transport failed for email %s (%s): %v", email.ID, email.RecipientEmail, err)
		if _, markErr := d.emails.MarkFailed(ctx, email.ID, now, false); markErr != nil {
			log.Printf("❌ failed to downgrade email %s to failed: %v", email.ID, markErr)
		}
		middleware.RecordDispatch("failed")
		return dispatchFailed
	}

	log.Printf("📧 email %s sent to %s", email.ID, email.RecipientEmail)
	middleware.RecordDispatch("sent")
	return dispatchSent
}
