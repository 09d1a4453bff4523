package usecase

import (
	"context"

	"github.com/cardlink/synergy-crm/internal/entity"
)

type CreateEmailUseCase struct {
	Repo        EmailRepositoryInterface
	ContactRepo ContactRepositoryInterface
}

func NewCreateEmailUseCase(repo EmailRepositoryInterface, contactRepo ContactRepositoryInterface) *CreateEmailUseCase {
	return &CreateEmailUseCase{Repo: repo, ContactRepo: contactRepo}
}

func (uc *CreateEmailUseCase) Execute(ctx context.Context, input CreateEmailInput) (*entity.Email, error) {
	validationErrors := ValidateCreateEmailInput(input)
	if len(validationErrors) > 0 {
		return nil, ValidationErrorsToDomain(validationErrors)
	}

	// Fail fast before any write: the referenced contact must be alive.
	// The FK constraint backs this up, but we want a clean error, not a
	// pq 23503 bubbling to the user.
	contact, err := uc.ContactRepo.FindByID(ctx, input.ContactID)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to load contact: " + err.Error()}
	}
	if contact == nil {
		return nil, &DomainError{
			Code:    CodeReference,
			Message: "contact " + input.ContactID + " does not exist",
		}
	}

	email, err := entity.NewEmail(input.ContactID, input.Subject, input.Body, input.Status, input.ScheduledFor)
	if err != nil {
		return nil, &DomainError{Code: CodeValidation, Message: err.Error()}
	}

	if err := uc.Repo.Create(ctx, email); err != nil {
		return nil, &TechnicalError{
			Code:    CodeDatabase,
			Message: "failed to persist email: " + err.Error(),
		}
	}

	return email, nil
}
