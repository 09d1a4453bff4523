package usecase

import (
	"context"
	"time"

	"github.com/cardlink/synergy-crm/internal/entity"
)

type ContactRepositoryInterface interface {
	Create(ctx context.Context, c *entity.Contact) error
	Update(ctx context.Context, id string, fields ContactPatch) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.Contact, error)
	List(ctx context.Context) ([]*entity.Contact, error)
}

type EmailRepositoryInterface interface {
	Create(ctx context.Context, e *entity.Email) error
	Update(ctx context.Context, id string, fields EmailPatch) error
	Delete(ctx context.Context, id string) error
	DeleteByContactID(ctx context.Context, contactID string) (deleted []*entity.Email, err error)
	FindByID(ctx context.Context, id string) (*entity.Email, error)
	ListForContact(ctx context.Context, contactID string) ([]*entity.Email, error)
	List(ctx context.Context) ([]*entity.Email, error)
	Restore(ctx context.Context, emails []*entity.Email) error
}

// TextGenerator is the external text-generation call (see infra/ai).
type TextGenerator interface {
	GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// MailTransport delivers one message. Success or failure, nothing more:
// no receipt, no bounce handling.
type MailTransport interface {
	Send(to, subject, body string) error
}

// ContactPatch carries partial updates; nil pointer = leave untouched.
type ContactPatch struct {
	Name     *string   `json:"name,omitempty"`
	Email    *string   `json:"email,omitempty"`
	Phone    *string   `json:"phone,omitempty"`
	Company  *string   `json:"company,omitempty"`
	Website  *string   `json:"website,omitempty"`
	Position *string   `json:"position,omitempty"`
	Notes    *string   `json:"notes,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
}

type EmailPatch struct {
	Subject      *string    `json:"subject,omitempty"`
	Body         *string    `json:"body,omitempty"`
	Status       *string    `json:"status,omitempty"`
	ScheduledFor *time.Time `json:"scheduled_for,omitempty"`
	SentAt       *time.Time `json:"sent_at,omitempty"`
}

type CreateContactInput struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	Company  string   `json:"company"`
	Website  string   `json:"website"`
	Position string   `json:"position"`
	Notes    string   `json:"notes"`
	Tags     []string `json:"tags"`

	CardImageURL string `json:"card_image_url,omitempty"`
}

type CreateEmailInput struct {
	ContactID    string    `json:"contact_id"`
	Subject      string    `json:"subject"`
	Body         string    `json:"body"`
	Status       string    `json:"status"`
	ScheduledFor time.Time `json:"scheduled_for"`
}
