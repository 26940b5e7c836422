package rabbitmq

import (
	"fmt"
	"time"

	"github.com/jhoicas/warehouse-api/pkg/logger"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeType = "topic"

	dialAttempts = 5
	dialBackoff  = 2 * time.Second
)

// SetupConn abre la conexión (con reintentos mientras el broker arranca) y declara el exchange topic.
func SetupConn(url, exchange string, log *logger.Logger) (*amqp.Connection, *amqp.Channel, error) {
	var conn *amqp.Connection
	var err error

	for i := 0; i < dialAttempts; i++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		log.Warn().Err(err).Int("attempt", i+1).Msg("no se pudo conectar a RabbitMQ")
		time.Sleep(dialBackoff)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("conectar a RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("abrir canal: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange,     // name
		ExchangeType, // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("declarar exchange %s: %w", exchange, err)
	}

	return conn, ch, nil
}
