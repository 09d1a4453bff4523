package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/cardlink/synergy-crm/internal/entity"
	"github.com/cardlink/synergy-crm/internal/usecase"
)

func TestCreateEmailSuccess(t *testing.T) {
	ctx := context.Background()

	contactRepo := new(MockContactRepository)
	emailRepo := new(MockEmailRepository)

	contactRepo.On("FindByID", ctx, "contact-1").Return(testContact(), nil)
	emailRepo.On("Create", ctx, mock.MatchedBy(func(e *entity.Email) bool {
		return e.ContactID == "contact-1" && e.Status == entity.StatusScheduled && e.ID != ""
	})).Return(nil)

	uc := usecase.NewCreateEmailUseCase(emailRepo, contactRepo)

	email, err := uc.Execute(ctx, usecase.CreateEmailInput{
		ContactID:    "contact-1",
		Subject:      "Following up",
		Body:         "Hi Jane...",
		Status:       entity.StatusScheduled,
		ScheduledFor: time.Now().Add(time.Hour),
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, email.ID)
	assert.False(t, email.CreatedAt.IsZero())
}

func TestCreateEmailDanglingContactFailsWithReferenceError(t *testing.T) {
	ctx := context.Background()

	contactRepo := new(MockContactRepository)
	emailRepo := new(MockEmailRepository)

	contactRepo.On("FindByID", ctx, "ghost").Return(nil, nil)

	uc := usecase.NewCreateEmailUseCase(emailRepo, contactRepo)

	_, err := uc.Execute(ctx, usecase.CreateEmailInput{
		ContactID: "ghost",
		Subject:   "s",
		Body:      "b",
		Status:    entity.StatusDraft,
	})

	assert.Error(t, err)
	assert.Equal(t, usecase.CodeReference, usecase.ErrCode(err))
	// Fail fast: nothing may be written.
	emailRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateEmailUnknownStatusCoercedToDraft(t *testing.T) {
	ctx := context.Background()

	contactRepo := new(MockContactRepository)
	emailRepo := new(MockEmailRepository)

	contactRepo.On("FindByID", ctx, "contact-1").Return(testContact(), nil)
	emailRepo.On("Create", ctx, mock.MatchedBy(func(e *entity.Email) bool {
		return e.Status == entity.StatusDraft
	})).Return(nil)

	uc := usecase.NewCreateEmailUseCase(emailRepo, contactRepo)

	email, err := uc.Execute(ctx, usecase.CreateEmailInput{
		ContactID: "contact-1",
		Subject:   "s",
		Body:      "b",
		Status:    "pending-ish",
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.StatusDraft, email.Status)
}

func TestCreateEmailScheduledRequiresDate(t *testing.T) {
	ctx := context.Background()

	contactRepo := new(MockContactRepository)
	emailRepo := new(MockEmailRepository)

	uc := usecase.NewCreateEmailUseCase(emailRepo, contactRepo)

	_, err := uc.Execute(ctx, usecase.CreateEmailInput{
		ContactID: "contact-1",
		Subject:   "s",
		Body:      "b",
		Status:    entity.StatusScheduled,
	})

	assert.Error(t, err)
	assert.Equal(t, usecase.CodeValidation, usecase.ErrCode(err))
	contactRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}
