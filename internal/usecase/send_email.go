package usecase

import (
	"context"
	"time"

	"github.com/cardlink/synergy-crm/internal/entity"
)

// SendEmailUseCase is the "send now" path: transport first, persistence
// second. On transport failure nothing is written, so the record can never
// land in failed through this path; the caller just gets the error.
type SendEmailUseCase struct {
	Repo        EmailRepositoryInterface
	ContactRepo ContactRepositoryInterface
	Transport   MailTransport
}

func NewSendEmailUseCase(
	repo EmailRepositoryInterface,
	contactRepo ContactRepositoryInterface,
	transport MailTransport,
) *SendEmailUseCase {
	return &SendEmailUseCase{Repo: repo, ContactRepo: contactRepo, Transport: transport}
}

func (uc *SendEmailUseCase) Execute(ctx context.Context, contactID, subject, body string) (*entity.Email, error) {
	input := CreateEmailInput{ContactID: contactID, Subject: subject, Body: body}
	if validationErrors := ValidateCreateEmailInput(input); len(validationErrors) > 0 {
		return nil, ValidationErrorsToDomain(validationErrors)
	}

	contact, err := uc.ContactRepo.FindByID(ctx, contactID)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to load contact: " + err.Error()}
	}
	if contact == nil {
		return nil, &DomainError{Code: CodeReference, Message: "contact " + contactID + " does not exist"}
	}
	if !contact.HasEmailAddress() {
		return nil, &DomainError{Code: CodeValidation, Message: "contact has no email address"}
	}

	if err := uc.Transport.Send(contact.Email, subject, body); err != nil {
		return nil, &DomainError{
			Code:    CodeTransport,
			Message: "failed to send email: " + err.Error(),
		}
	}

	email, err := entity.NewEmail(contactID, subject, body, entity.StatusSent, time.Now())
	if err != nil {
		return nil, &DomainError{Code: CodeValidation, Message: err.Error()}
	}
	now := time.Now()
	email.SentAt = &now

	if err := uc.Repo.Create(ctx, email); err != nil {
		// Delivery happened; surface the bookkeeping failure honestly.
		return nil, &TechnicalError{
			Code:    CodeDatabase,
			Message: "email was sent but could not be recorded: " + err.Error(),
		}
	}

	return email, nil
}
