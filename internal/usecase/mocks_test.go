package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/cardlink/synergy-crm/internal/entity"
	"github.com/cardlink/synergy-crm/internal/usecase"
)

// MockContactRepository
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Create(ctx context.Context, c *entity.Contact) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContactRepository) Update(ctx context.Context, id string, fields usecase.ContactPatch) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockContactRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockContactRepository) FindByID(ctx context.Context, id string) (*entity.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *MockContactRepository) List(ctx context.Context) ([]*entity.Contact, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Contact), args.Error(1)
}

// MockEmailRepository
type MockEmailRepository struct {
	mock.Mock
}

func (m *MockEmailRepository) Create(ctx context.Context, e *entity.Email) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEmailRepository) Update(ctx context.Context, id string, fields usecase.EmailPatch) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockEmailRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEmailRepository) DeleteByContactID(ctx context.Context, contactID string) ([]*entity.Email, error) {
	args := m.Called(ctx, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Email), args.Error(1)
}

func (m *MockEmailRepository) FindByID(ctx context.Context, id string) (*entity.Email, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Email), args.Error(1)
}

func (m *MockEmailRepository) ListForContact(ctx context.Context, contactID string) ([]*entity.Email, error) {
	args := m.Called(ctx, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Email), args.Error(1)
}

func (m *MockEmailRepository) List(ctx context.Context) ([]*entity.Email, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Email), args.Error(1)
}

func (m *MockEmailRepository) Restore(ctx context.Context, emails []*entity.Email) error {
	args := m.Called(ctx, emails)
	return args.Error(0)
}

// MockNoteRepository
type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) Upsert(ctx context.Context, note *entity.SynergyNote) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepository) FindByContactID(ctx context.Context, contactID string) (*entity.SynergyNote, error) {
	args := m.Called(ctx, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SynergyNote), args.Error(1)
}

// MockTextGenerator
type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt)
	return args.String(0), args.Error(1)
}

// MockMailTransport
type MockMailTransport struct {
	mock.Mock
}

func (m *MockMailTransport) Send(to, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}
