package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/ameliakool/SCMS/internal/models"
	"github.com/ameliakool/SCMS/pkg/config"
)

// Booking event routing keys.
const (
	BookingCreated = "booking.created"
	BookingUpdated = "booking.updated"
	BookingDeleted = "booking.deleted"
)

// Envelope wraps an event payload with its type and emission time.
type Envelope struct {
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// Publisher emits booking mutation events to a topic exchange. A nil
// Publisher is valid and publishes nothing, so callers wire it
// unconditionally.
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	logger   *zap.Logger
}

// NewPublisher dials the broker and declares the exchange.
func NewPublisher(cfg config.EventsConfig, logger *zap.Logger) (*Publisher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	conn, err := amqp.DialConfig(cfg.URL, amqp.Config{Dial: amqp.DefaultDial(cfg.DialTimeout)})
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open amqp channel: %w", err)
	}

	if err := ch.ExchangeDeclare(cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", cfg.Exchange, err)
	}

	return &Publisher{conn: conn, ch: ch, exchange: cfg.Exchange, logger: logger}, nil
}

// PublishBooking emits one booking event. Failures are logged and
// swallowed; event delivery never fails a command.
func (p *Publisher) PublishBooking(ctx context.Context, eventType string, booking *models.Booking) {
	if p == nil {
		return
	}

	payload, err := json.Marshal(booking)
	if err != nil {
		p.logger.Error("marshal booking event", zap.Error(err))
		return
	}
	body, err := json.Marshal(Envelope{Type: eventType, OccurredAt: time.Now().UTC(), Payload: payload})
	if err != nil {
		p.logger.Error("marshal event envelope", zap.Error(err))
		return
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, eventType, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		p.logger.Warn("publish booking event failed",
			zap.String("type", eventType),
			zap.String("booking_id", booking.ID),
			zap.Error(err))
	}
}

// Close releases the channel and connection.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	_ = p.ch.Close()
	_ = p.conn.Close()
}
