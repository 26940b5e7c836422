package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher publica eventos de inventario en un exchange topic.
type Publisher struct {
	mu       sync.Mutex
	ch       *amqp.Channel
	exchange string
}

// NewPublisher crea el publicador sobre un canal ya abierto por SetupConn.
func NewPublisher(ch *amqp.Channel, exchange string) *Publisher {
	return &Publisher{ch: ch, exchange: exchange}
}

var _ inventory.EventPublisher = (*Publisher)(nil)

// RoutingKey devuelve stock.recorded.<id_warehouse>.
func RoutingKey(ev inventory.StockRecordedEvent) string {
	return fmt.Sprintf("stock.recorded.%d", ev.WarehouseID)
}

// PublishStockRecorded publica el evento como JSON persistente.
func (p *Publisher) PublishStockRecorded(ctx context.Context, ev inventory.StockRecordedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("serializar evento: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.ch.PublishWithContext(ctx,
		p.exchange,     // exchange
		RoutingKey(ev), // routing key
		false,          // mandatory
		false,          // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    ev.OperationID,
			Timestamp:    ev.CreatedAt,
			Type:         "stock.recorded",
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publicar en %s: %w", p.exchange, err)
	}
	return nil
}
