package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

const (
	exchangeName = "festival.events"
	routingKey   = "booking.submitted"
)

// Publisher pushes booking events to RabbitMQ. A nil *Publisher is valid and
// publishes nothing, so the broker stays optional in development.
type Publisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewPublisher connects to the broker and declares the events exchange.
// Returns nil when amqpURL is empty.
func NewPublisher(amqpURL string) (*Publisher, error) {
	if amqpURL == "" {
		log.Warn().Msg("AMQP URL not configured, running without event publishing")
		return nil, nil
	}

	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := ch.ExchangeDeclare(exchangeName, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	log.Info().Msg("Connected to RabbitMQ")
	return &Publisher{conn: conn, ch: ch}, nil
}

// PublishBookingSubmitted publishes a submission event. Publishing failures
// are logged, never surfaced: the booking is already stored.
func (p *Publisher) PublishBookingSubmitted(ctx context.Context, event BookingSubmittedEvent) {
	if p == nil {
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode booking event")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.ch.PublishWithContext(ctx, exchangeName, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", event.BookingID).Msg("Failed to publish booking event")
	}
}

// Close releases the channel and connection.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.ch != nil {
		p.ch.Close()
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing RabbitMQ connection")
		} else {
			log.Info().Msg("RabbitMQ connection closed")
		}
	}
}
