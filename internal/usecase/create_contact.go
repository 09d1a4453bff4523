package usecase

import (
	"context"

	"github.com/cardlink/synergy-crm/internal/entity"
)

type CreateContactUseCase struct {
	Repo ContactRepositoryInterface
}

func NewCreateContactUseCase(repo ContactRepositoryInterface) *CreateContactUseCase {
	return &CreateContactUseCase{Repo: repo}
}

func (uc *CreateContactUseCase) Execute(ctx context.Context, input CreateContactInput) (*entity.Contact, error) {
	validationErrors := ValidateCreateContactInput(input)
	if len(validationErrors) > 0 {
		return nil, ValidationErrorsToDomain(validationErrors)
	}

	contact, err := entity.NewContact(
		input.Name, input.Email, input.Phone,
		input.Company, input.Website, input.Position,
	)
	if err != nil {
		return nil, &DomainError{Code: CodeValidation, Message: err.Error()}
	}

	contact.Notes = input.Notes
	contact.Tags = input.Tags
	contact.CardImageURL = input.CardImageURL

	if err := uc.Repo.Create(ctx, contact); err != nil {
		return nil, &TechnicalError{
			Code:    CodeDatabase,
			Message: "failed to persist contact: " + err.Error(),
		}
	}

	return contact, nil
}
