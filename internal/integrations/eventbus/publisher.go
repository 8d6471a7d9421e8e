package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher публикует события бронирования в topic exchange RabbitMQ.
// Сообщения персистентные, routing key равен типу события.
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       Channel
	exchange string
	log      Logger
}

// NewPublisher подключается к брокеру и объявляет exchange
func NewPublisher(url, exchange string, log Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	p, err := NewPublisherWithChannel(ch, exchange, log)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn

	return p, nil
}

// NewPublisherWithChannel создает издателя поверх готового канала
func NewPublisherWithChannel(ch Channel, exchange string, log Logger) (*Publisher, error) {
	if err := ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	); err != nil {
		return nil, fmt.Errorf("%w: declare exchange %s: %v", ErrConnect, exchange, err)
	}

	return &Publisher{ch: ch, exchange: exchange, log: log}, nil
}

// Publish отправляет событие
func (p *Publisher) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal event: %v", ErrPublish, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Type:         event.Type,
		Timestamp:    event.OccurredAt,
		Body:         body,
	}

	// amqp.Channel не безопасен для конкурентной публикации
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.PublishWithContext(ctx, p.exchange, event.Type, false, false, msg); err != nil {
		p.log.Error("eventbus: publish %s for booking id=%d failed: %v", event.Type, event.Booking.BookingID, err)
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	p.log.Info("eventbus: published %s for booking id=%d", event.Type, event.Booking.BookingID)
	return nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.ch.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Noop издатель для окружений без брокера
type Noop struct{}

// Publish ничего не делает
func (Noop) Publish(context.Context, Event) error { return nil }

// Close ничего не делает
func (Noop) Close() error { return nil }
