package ports

//go:generate mockgen -source=broker.go -destination=../mocks/broker_mock.go -package=mocks

import "context"

// IProducer — отправка сообщений в брокер (Kafka). Топик задаёт реализация (конфиг).
// Все values уходят одной пачкой с общим ключом: порядок внутри пачки сохраняется.
type IProducer interface {
	Send(ctx context.Context, key []byte, values ...[]byte) error
}
