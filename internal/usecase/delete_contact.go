package usecase

import (
	"context"

	"github.com/cardlink/synergy-crm/internal/entity"
)

// DeleteContactUseCase removes a contact together with every follow-up
// email that references it. The cascade must be all-or-nothing: a contact
// must never be deleted while its emails survive, and vice versa.
type DeleteContactUseCase struct {
	Repo      ContactRepositoryInterface
	EmailRepo EmailRepositoryInterface
}

func NewDeleteContactUseCase(repo ContactRepositoryInterface, emailRepo EmailRepositoryInterface) *DeleteContactUseCase {
	return &DeleteContactUseCase{Repo: repo, EmailRepo: emailRepo}
}

func (uc *DeleteContactUseCase) Execute(ctx context.Context, contactID string) error {
	contact, err := uc.Repo.FindByID(ctx, contactID)
	if err != nil {
		return &TechnicalError{Code: CodeDatabase, Message: "failed to load contact: " + err.Error()}
	}
	if contact == nil {
		return &DomainError{Code: CodeNotFound, Message: "contact not found"}
	}

	// Emails first, contact second. If the contact delete fails the
	// compensation restores the emails we already removed.
	var deletedEmails []*entity.Email

	txn := NewTransaction()

	txn.AddOperation("delete_contact_emails", func(ctx context.Context) error {
		deletedEmails, err = uc.EmailRepo.DeleteByContactID(ctx, contactID)
		return err
	})

	txn.AddCompensation("restore_contact_emails", func(ctx context.Context) error {
		return uc.EmailRepo.Restore(ctx, deletedEmails)
	})

	txn.AddOperation("delete_contact", func(ctx context.Context) error {
		return uc.Repo.Delete(ctx, contactID)
	})

	if err := txn.Execute(ctx); err != nil {
		return &TechnicalError{
			Code:    CodeDatabase,
			Message: "failed to delete contact and its emails: " + err.Error(),
		}
	}

	return nil
}
