package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ScanPayload is one business-card scan job: the image is already in
// object storage, the worker does the vision call and contact creation.
type ScanPayload struct {
	ScanID   string `json:"scan_id"`
	ImageKey string `json:"image_key"`
}

type ScanProducerInterface interface {
	PublishScan(ctx context.Context, payload ScanPayload) error
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishScan(ctx context.Context, payload ScanPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal scan payload: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // survives a broker restart
		},
	)

	if err != nil {
		return fmt.Errorf("failed to publish scan job: %v", err)
	}

	return nil
}
