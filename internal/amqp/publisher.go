// Package amqp forwards budget alert events to a RabbitMQ exchange.
package amqp

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dafibh/pennywise/pennywise-backend/internal/event"
	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

const publishTimeout = 5 * time.Second

// channel is the subset of *amqp091.Channel used for publishing
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Publisher implements event.Publisher for alert events.
// Other events are ignored. An amqp091 channel is not safe for concurrent
// publishing, so sends are serialized.
type Publisher struct {
	conn       *amqp091.Connection
	channel    channel
	exchange   string
	routingKey string
	mu         sync.Mutex
}

var _ event.Publisher = (*Publisher)(nil)

// NewPublisher dials url and declares a durable topic exchange
func NewPublisher(url, exchange, routingKey string) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	p, err := newPublisher(ch, exchange, routingKey)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	p.conn = conn

	log.Info().Str("exchange", exchange).Str("routing_key", routingKey).Msg("Initialized AMQP publisher")
	return p, nil
}

func newPublisher(ch channel, exchange, routingKey string) (*Publisher, error) {
	err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Publisher{channel: ch, exchange: exchange, routingKey: routingKey}, nil
}

// Publish sends alert events as persistent JSON messages. Failures are logged, not returned.
func (p *Publisher) Publish(e event.Event) {
	if e.Entity != event.EntityAlert {
		return
	}
	if err := p.publish(context.Background(), e); err != nil {
		log.Error().Err(err).Str("event_type", e.Type).Msg("Failed to publish event to AMQP")
	}
}

func (p *Publisher) publish(ctx context.Context, e event.Event) error {
	body, err := e.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx,
		p.exchange,
		p.routingKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    e.Timestamp,
			Type:         e.Type,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	log.Debug().Str("event_type", e.Type).Str("exchange", p.exchange).Msg("Published event to AMQP")
	return nil
}

// Close closes the channel and the connection
func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
