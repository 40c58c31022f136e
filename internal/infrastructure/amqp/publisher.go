package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/Tienda-Funkos-api/internal/application/ports"
)

var _ ports.EventPublisher = (*Publisher)(nil)

const publishTimeout = 3 * time.Second

// Dial abre la conexión con el broker.
func Dial(url string) (*amqp.Connection, error) {
	conn, err := amqp.DialConfig(url, amqp.Config{Dial: amqp.DefaultDial(10 * time.Second)})
	if err != nil {
		return nil, fmt.Errorf("conectar a RabbitMQ: %w", err)
	}
	return conn, nil
}

// Publisher publica los eventos del carrito en un exchange topic durable.
type Publisher struct {
	mu       sync.Mutex
	ch       *amqp.Channel
	exchange string
}

// NewPublisher abre un canal y declara el exchange para que publicar nunca falle por infraestructura faltante.
func NewPublisher(conn *amqp.Connection, exchange string) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("abrir canal: %w", err)
	}
	if err := declareExchange(ch, exchange); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declarar exchange %s: %w", exchange, err)
	}
	return &Publisher{ch: ch, exchange: exchange}, nil
}

func declareExchange(ch *amqp.Channel, name string) error {
	return ch.ExchangeDeclare(
		name,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
}

// Close cierra el canal.
func (p *Publisher) Close() error {
	return p.ch.Close()
}

func (p *Publisher) PublishCartUpdated(ctx context.Context, ev ports.CartUpdated) error {
	if ev.EventType == "" {
		ev.EventType = "CartUpdated"
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal CartUpdated: %w", err)
	}
	return p.publishJSON(ctx, ports.CartUpdatedRoutingKey, body)
}

func (p *Publisher) PublishCartCheckedOut(ctx context.Context, ev ports.CartCheckedOut) error {
	if ev.EventType == "" {
		ev.EventType = "CartCheckedOut"
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal CartCheckedOut: %w", err)
	}
	return p.publishJSON(ctx, ports.CartCheckedOutRoutingKey, body)
}

func (p *Publisher) publishJSON(ctx context.Context, routingKey string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.PublishWithContext(
		pubCtx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}
