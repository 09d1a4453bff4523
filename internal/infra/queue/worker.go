package queue

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/cardlink/synergy-crm/internal/entity"
	"github.com/cardlink/synergy-crm/internal/extraction"
	"github.com/cardlink/synergy-crm/internal/infra/http/middleware"
	"github.com/cardlink/synergy-crm/internal/usecase"
)

// CardExtractor is the vision half of the text-generation service.
type CardExtractor interface {
	ExtractBusinessCard(ctx context.Context, imageBase64 string) (string, error)
}

// ImageStore fetches the uploaded card image back from object storage.
type ImageStore interface {
	Download(ctx context.Context, key string) ([]byte, error)
}

// ContactCreator saves the contact extracted from a card.
type ContactCreator interface {
	Execute(ctx context.Context, input usecase.CreateContactInput) (*entity.Contact, error)
}

// ScanWorker consumes scan jobs: download image, run the vision call,
// parse the blob, create the contact.
type ScanWorker struct {
	Channel   *amqp.Channel
	Extractor CardExtractor
	Images    ImageStore
	Contacts  ContactCreator
}

func NewScanWorker(ch *amqp.Channel, extractor CardExtractor, images ImageStore, contacts ContactCreator) *ScanWorker {
	return &ScanWorker{
		Channel:   ch,
		Extractor: extractor,
		Images:    images,
		Contacts:  contacts,
	}
}

func (w *ScanWorker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual is safer)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("❌ failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload ScanPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [SCAN] invalid JSON: %s", err)
				// Malformed message. Reject without requeue so it cannot jam the queue.
				d.Nack(false, false)
				continue
			}

			log.Printf("📇 [SCAN] processing card scan %s (key=%s)", payload.ScanID, payload.ImageKey)

			if err := w.processScan(context.Background(), payload); err != nil {
				log.Printf("❌ [SCAN] scan %s failed: %s", payload.ScanID, err)
				middleware.RecordCardScan("failed")
				d.Nack(false, false)
			} else {
				log.Printf("✅ [SCAN] scan %s done, contact created", payload.ScanID)
				middleware.RecordCardScan("ok")
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Scan worker waiting on queue '%s'", queueName)
	<-forever
}

func (w *ScanWorker) processScan(ctx context.Context, payload ScanPayload) error {
	image, err := w.Images.Download(ctx, payload.ImageKey)
	if err != nil {
		return err
	}

	blob, err := w.Extractor.ExtractBusinessCard(ctx, base64.StdEncoding.EncodeToString(image))
	if err != nil {
		return err
	}

	fields := extraction.Parse(blob)

	// An all-nil extraction is still stored; the user fixes it in the
	// contact review form. Only the name needs a placeholder because a
	// contact cannot exist without one.
	name := extraction.Deref(fields.FullName)
	if name == "" {
		name = "Unknown contact"
	}

	_, err = w.Contacts.Execute(ctx, usecase.CreateContactInput{
		Name:         name,
		Email:        extraction.Deref(fields.Email),
		Phone:        extraction.Deref(fields.Phone),
		Company:      extraction.Deref(fields.Company),
		Website:      extraction.Deref(fields.Website),
		Position:     extraction.Deref(fields.Position),
		CardImageURL: payload.ImageKey,
	})
	return err
}
