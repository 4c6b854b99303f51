package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/yeremiapane/rental-backoffice/services"
	"github.com/yeremiapane/rental-backoffice/utils"
)

const (
	ExchangeName  = "backoffice"
	ExchangeType  = "topic"
	QueueCleaning = "backoffice.cleaning"
)

// channel is the subset of *amqp.Channel the producer publishes through.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type Producer struct {
	conn    *amqp.Connection
	channel channel
	now     func() time.Time
}

// NewProducer dials the broker and declares the topic exchange plus the
// cleaning queue bound to "cleaning.*".
func NewProducer(rabbitMQURL string) (*Producer, error) {
	conn, err := amqp.Dial(rabbitMQURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		ExchangeName, // name
		ExchangeType, // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = ch.QueueDeclare(
		QueueCleaning, // name
		true,          // durable
		false,         // delete when unused
		false,         // exclusive
		false,         // no-wait
		nil,           // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare cleaning queue: %w", err)
	}

	if err := ch.QueueBind(QueueCleaning, "cleaning.*", ExchangeName, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind cleaning queue: %w", err)
	}

	utils.InfoLogger.Println("RabbitMQ producer connected, exchange and queue declared")
	return &Producer{conn: conn, channel: ch, now: time.Now}, nil
}

// RoutingKey maps a hub event to its broker routing key. Board snapshots are
// not forwarded and map to "".
func RoutingKey(event string) string {
	switch event {
	case services.EventCleanerAssigned:
		return "cleaning.assigned"
	case services.EventStaffNotif:
		return "cleaning.notification"
	default:
		return ""
	}
}

// Publish satisfies services.EventPublisher.
func (p *Producer) Publish(ctx context.Context, event string, payload interface{}) error {
	key := RoutingKey(event)
	if key == "" {
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", event, err)
	}

	err = p.channel.PublishWithContext(
		ctx,
		ExchangeName,
		key,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         event,
			Timestamp:    p.now(),
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		utils.ErrorLogger.WithError(err).Errorf("Failed to publish %s to RabbitMQ", key)
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			utils.ErrorLogger.Printf("Error closing RabbitMQ channel: %v", err)
		}
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
