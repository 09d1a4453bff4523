package entity

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	// IMPORTANTE: do not import usecase or infra here!
)

// Entidade: Contact
type Contact struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Company  string `json:"company,omitempty"`
	Website  string `json:"website,omitempty"`
	Position string `json:"position,omitempty"`

	Notes string   `json:"notes,omitempty"`
	Tags  []string `json:"tags,omitempty"`

	CardImageURL string `json:"card_image_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var ErrContactNameRequired = errors.New("contact name is required")

// Factory
func NewContact(name, email, phone, company, website, position string) (*Contact, error) {
	contact := &Contact{
		ID:       uuid.New().String(),
		Name:     strings.TrimSpace(name),
		Email:    email,
		Phone:    phone,
		Company:  company,
		Website:  website,
		Position: position,

		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := contact.Validate(); err != nil {
		return nil, err
	}

	return contact, nil
}

func (c *Contact) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrContactNameRequired
	}
	return nil
}

// HasEmailAddress reports whether the contact can actually receive mail.
// The dispatcher fails scheduled emails for contacts without one.
func (c *Contact) HasEmailAddress() bool {
	return strings.TrimSpace(c.Email) != ""
}
