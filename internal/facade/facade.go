// Package facade is the in-process coordinator the interactive application
// talks to. It keeps a mutex-guarded mirror of contacts and emails on top
// of the repositories: reads come from the mirror, mutations go through
// the use cases and are reconciled back into it. Refresh reloads the whole
// mirror and is called at startup and whenever the session changes.
package facade

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/cardlink/synergy-crm/internal/entity"
	"github.com/cardlink/synergy-crm/internal/infra/http/middleware"
	"github.com/cardlink/synergy-crm/internal/usecase"
)

type EmailGenerator interface {
	Execute(ctx context.Context, contactID, newNotes string) (string, error)
}

type DataFacade struct {
	mu       sync.RWMutex
	contacts map[string]*entity.Contact
	emails   map[string]*entity.Email

	contactRepo usecase.ContactRepositoryInterface
	emailRepo   usecase.EmailRepositoryInterface

	createContact *usecase.CreateContactUseCase
	deleteContact *usecase.DeleteContactUseCase
	createEmail   *usecase.CreateEmailUseCase
	sendEmail     *usecase.SendEmailUseCase
	generator     EmailGenerator
}

func NewDataFacade(
	contactRepo usecase.ContactRepositoryInterface,
	emailRepo usecase.EmailRepositoryInterface,
	createContact *usecase.CreateContactUseCase,
	deleteContact *usecase.DeleteContactUseCase,
	createEmail *usecase.CreateEmailUseCase,
	sendEmail *usecase.SendEmailUseCase,
	generator EmailGenerator,
) *DataFacade {
	return &DataFacade{
		contacts:      make(map[string]*entity.Contact),
		emails:        make(map[string]*entity.Email),
		contactRepo:   contactRepo,
		emailRepo:     emailRepo,
		createContact: createContact,
		deleteContact: deleteContact,
		createEmail:   createEmail,
		sendEmail:     sendEmail,
		generator:     generator,
	}
}

// Refresh throws the mirror away and reloads it from the store.
func (f *DataFacade) Refresh(ctx context.Context) error {
	contacts, err := f.contactRepo.List(ctx)
	if err != nil {
		return &usecase.TechnicalError{Code: usecase.CodeDatabase, Message: "failed to load contacts: " + err.Error()}
	}
	emails, err := f.emailRepo.List(ctx)
	if err != nil {
		return &usecase.TechnicalError{Code: usecase.CodeDatabase, Message: "failed to load emails: " + err.Error()}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.contacts = make(map[string]*entity.Contact, len(contacts))
	for _, c := range contacts {
		f.contacts[c.ID] = c
	}
	f.emails = make(map[string]*entity.Email, len(emails))
	for _, e := range emails {
		f.emails[e.ID] = e
	}
	return nil
}

// Contacts returns the mirrored contact list, newest first.
func (f *DataFacade) Contacts() []*entity.Contact {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]*entity.Contact, 0, len(f.contacts))
	for _, c := range f.contacts {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *DataFacade) Emails() []*entity.Email {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]*entity.Email, 0, len(f.emails))
	for _, e := range f.emails {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *DataFacade) GetContactByID(ctx context.Context, id string) (*entity.Contact, error) {
	f.mu.RLock()
	contact, ok := f.contacts[id]
	f.mu.RUnlock()
	if ok {
		return contact, nil
	}

	// Mirror miss: fall through to the store before reporting absence.
	contact, err := f.contactRepo.FindByID(ctx, id)
	if err != nil {
		return nil, &usecase.TechnicalError{Code: usecase.CodeDatabase, Message: err.Error()}
	}
	if contact == nil {
		return nil, &usecase.DomainError{Code: usecase.CodeNotFound, Message: "contact not found"}
	}

	f.mu.Lock()
	f.contacts[contact.ID] = contact
	f.mu.Unlock()
	return contact, nil
}

func (f *DataFacade) EmailsForContact(contactID string) []*entity.Email {
	f.mu.RLock()
	defer f.mu.RUnlock()

	var out []*entity.Email
	for _, e := range f.emails {
		if e.ContactID == contactID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *DataFacade) AddContact(ctx context.Context, input usecase.CreateContactInput) (*entity.Contact, error) {
	contact, err := f.createContact.Execute(ctx, input)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.contacts[contact.ID] = contact
	f.mu.Unlock()
	return contact, nil
}

func (f *DataFacade) UpdateContact(ctx context.Context, id string, patch usecase.ContactPatch) (*entity.Contact, error) {
	if err := f.contactRepo.Update(ctx, id, patch); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			f.mu.Lock()
			delete(f.contacts, id)
			f.mu.Unlock()
			return nil, &usecase.DomainError{Code: usecase.CodeNotFound, Message: "contact not found"}
		}
		return nil, &usecase.TechnicalError{Code: usecase.CodeDatabase, Message: "failed to update contact: " + err.Error()}
	}

	// Reconcile with what the store actually holds rather than patching
	// the mirror by hand.
	contact, err := f.contactRepo.FindByID(ctx, id)
	if err != nil || contact == nil {
		f.mu.Lock()
		delete(f.contacts, id)
		f.mu.Unlock()
		if err != nil {
			return nil, &usecase.TechnicalError{Code: usecase.CodeDatabase, Message: err.Error()}
		}
		return nil, &usecase.DomainError{Code: usecase.CodeNotFound, Message: "contact not found"}
	}

	f.mu.Lock()
	f.contacts[id] = contact
	f.mu.Unlock()
	return contact, nil
}

func (f *DataFacade) DeleteContact(ctx context.Context, id string) error {
	if err := f.deleteContact.Execute(ctx, id); err != nil {
		return err
	}

	f.mu.Lock()
	delete(f.contacts, id)
	for eid, e := range f.emails {
		if e.ContactID == id {
			delete(f.emails, eid)
		}
	}
	f.mu.Unlock()
	return nil
}

// AddEmail creates a record in draft or scheduled state. Any unrecognized
// status is coerced to draft here, at the boundary.
func (f *DataFacade) AddEmail(ctx context.Context, input usecase.CreateEmailInput) (*entity.Email, error) {
	input.Status = entity.CoerceStatus(input.Status)

	email, err := f.createEmail.Execute(ctx, input)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.emails[email.ID] = email
	f.mu.Unlock()
	return email, nil
}

func (f *DataFacade) UpdateEmail(ctx context.Context, id string, patch usecase.EmailPatch) (*entity.Email, error) {
	if patch.Status != nil {
		coerced := entity.CoerceStatus(*patch.Status)
		patch.Status = &coerced
	}

	if err := f.emailRepo.Update(ctx, id, patch); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			f.mu.Lock()
			delete(f.emails, id)
			f.mu.Unlock()
			return nil, &usecase.DomainError{Code: usecase.CodeNotFound, Message: "email not found"}
		}
		return nil, &usecase.TechnicalError{Code: usecase.CodeDatabase, Message: "failed to update email: " + err.Error()}
	}

	email, err := f.emailRepo.FindByID(ctx, id)
	if err != nil || email == nil {
		f.mu.Lock()
		delete(f.emails, id)
		f.mu.Unlock()
		if err != nil {
			return nil, &usecase.TechnicalError{Code: usecase.CodeDatabase, Message: err.Error()}
		}
		return nil, &usecase.DomainError{Code: usecase.CodeNotFound, Message: "email not found"}
	}

	f.mu.Lock()
	f.emails[id] = email
	f.mu.Unlock()
	return email, nil
}

func (f *DataFacade) DeleteEmail(ctx context.Context, id string) error {
	if err := f.emailRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			f.mu.Lock()
			delete(f.emails, id)
			f.mu.Unlock()
			return &usecase.DomainError{Code: usecase.CodeNotFound, Message: "email not found"}
		}
		return &usecase.TechnicalError{Code: usecase.CodeDatabase, Message: "failed to delete email: " + err.Error()}
	}

	f.mu.Lock()
	delete(f.emails, id)
	f.mu.Unlock()
	return nil
}

// GenerateEmail drafts a follow-up body from the contact's accumulated
// notes. The generated text is returned, not persisted; the user decides
// whether to save, send or schedule it.
func (f *DataFacade) GenerateEmail(ctx context.Context, contactID, notes string) (string, error) {
	body, err := f.generator.Execute(ctx, contactID, notes)
	if err != nil {
		if usecase.ErrCode(err) == usecase.CodeGeneration {
			middleware.RecordGenerationError()
		}
		return "", err
	}
	middleware.RecordGeneration()
	return body, nil
}

// SendNow delivers immediately; the record is only created once transport
// succeeded, already in sent state.
func (f *DataFacade) SendNow(ctx context.Context, contactID, subject, body string) (*entity.Email, error) {
	email, err := f.sendEmail.Execute(ctx, contactID, subject, body)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.emails[email.ID] = email
	f.mu.Unlock()
	return email, nil
}

// ScheduleEmail creates a record the dispatcher will pick up once
// scheduledFor arrives.
func (f *DataFacade) ScheduleEmail(ctx context.Context, contactID, subject, body string, scheduledFor time.Time) (*entity.Email, error) {
	return f.AddEmail(ctx, usecase.CreateEmailInput{
		ContactID:    contactID,
		Subject:      subject,
		Body:         body,
		Status:       entity.StatusScheduled,
		ScheduledFor: scheduledFor,
	})
}
