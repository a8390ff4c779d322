package kafka

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"

	"pocketCalc/internal/ports"
)

var _ ports.IProducer = (*Producer)(nil)

// writer — часть kafka.Writer, которой пользуется продюсер.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer публикует события нажатий в топик.
type Producer struct {
	w writer
}

// NewProducer создаёт продюсера по конфигу. Подключение к брокеру — при первой записи; после использования вызови Close().
// Балансировка по хэшу ключа: события одной сессии попадают в одну партицию и не перемешиваются.
func NewProducer(cfg *Config) *Producer {
	if cfg == nil {
		cfg = &Config{}
	}
	return &Producer{w: &kafka.Writer{
		Addr:         kafka.TCP(cfg.brokersSlice()...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: cfg.BatchTimeout,
		WriteTimeout: cfg.WriteTimeout,
		RequiredAcks: kafka.RequireOne,
	}}
}

// Send пишет values одной пачкой, у всех сообщений ключ key.
func (p *Producer) Send(ctx context.Context, key []byte, values ...[]byte) error {
	if len(values) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, len(values))
	for i, v := range values {
		msgs[i] = kafka.Message{Key: key, Value: v}
	}
	if err := p.w.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("kafka write %d messages: %w", len(msgs), err)
	}
	return nil
}

// Close закрывает продюсера.
func (p *Producer) Close() error {
	return p.w.Close()
}
