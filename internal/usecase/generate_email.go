package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/cardlink/synergy-crm/internal/entity"
)

const generateSystemPrompt = "You are an expert at writing personalized, professional follow-up emails " +
	"based on networking contacts and conversation notes. Write in a friendly, professional tone. " +
	"Focus on building genuine connections. Do not add any explanations - just write the email text."

// GenerateEmailUseCase drafts a follow-up email for a contact out of the
// accumulated synergy notes, then persists the merged notes back to the
// ledger. Notes are only written after a successful generation so a failed
// attempt never pollutes the ledger.
type GenerateEmailUseCase struct {
	ContactRepo ContactRepositoryInterface
	NoteRepo    entity.NoteRepositoryInterface
	Generator   TextGenerator
	SenderName  string
}

func NewGenerateEmailUseCase(
	contactRepo ContactRepositoryInterface,
	noteRepo entity.NoteRepositoryInterface,
	generator TextGenerator,
	senderName string,
) *GenerateEmailUseCase {
	return &GenerateEmailUseCase{
		ContactRepo: contactRepo,
		NoteRepo:    noteRepo,
		Generator:   generator,
		SenderName:  senderName,
	}
}

func (uc *GenerateEmailUseCase) Execute(ctx context.Context, contactID, newNotes string) (string, error) {
	contact, err := uc.ContactRepo.FindByID(ctx, contactID)
	if err != nil {
		return "", &TechnicalError{Code: CodeDatabase, Message: "failed to load contact: " + err.Error()}
	}
	if contact == nil {
		return "", &DomainError{Code: CodeNotFound, Message: "contact not found"}
	}

	// A missing ledger entry is not an error, just an empty history.
	existing, err := uc.NoteRepo.FindByContactID(ctx, contactID)
	if err != nil {
		log.Printf("⚠️ could not load existing notes for contact %s: %v", contactID, err)
	}

	existingNotes := ""
	if existing != nil {
		existingNotes = existing.Notes
	}
	allNotes := entity.MergeNotes(existingNotes, newNotes)

	body, err := uc.Generator.GenerateText(ctx, generateSystemPrompt, buildUserPrompt(contact, allNotes, uc.SenderName))
	if err != nil {
		return "", &DomainError{
			Code:    CodeGeneration,
			Message: "email generation failed: " + err.Error(),
		}
	}

	// Best effort: the user still gets the generated text even if note
	// bookkeeping degrades.
	if newNotes != "" {
		note := &entity.SynergyNote{
			ContactID: contactID,
			Notes:     allNotes,
			UpdatedAt: time.Now(),
		}
		if err := uc.NoteRepo.Upsert(ctx, note); err != nil {
			log.Printf("⚠️ failed to persist notes for contact %s: %v", contactID, err)
		}
	}

	return body, nil
}

func buildUserPrompt(contact *entity.Contact, allNotes, senderName string) string {
	company := contact.Company
	if company == "" {
		company = "their company"
	}
	position := contact.Position
	if position == "" {
		position = "professional"
	}
	if senderName == "" {
		senderName = "the sender"
	}

	return fmt.Sprintf(`Write a follow-up email to %s who works at %s as a %s.
I want to follow up based on these notes from our conversation: "%s"

My name is %s.

Write a complete, personalized email that references our conversation, reinforces connections we discovered, and suggests a next step.`,
		contact.Name, company, position, allNotes, senderName)
}
