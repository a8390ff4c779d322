package kafka

import (
	"strings"
	"time"
)

// Config — настройки Kafka. Переменные: CALCULATOR_KAFKA_ENABLED, _BROKERS, _TOPIC, _GROUP_ID, _BATCH_TIMEOUT, _WRITE_TIMEOUT.
// Enabled=false отключает и публикацию нажатий, и консьюмера аналитики.
type Config struct {
	Enabled      bool          `envconfig:"ENABLED" default:"true"`
	Brokers      string        `envconfig:"BROKERS" default:"localhost:9092"` // через запятую, если несколько
	Topic        string        `envconfig:"TOPIC" default:"pocketcalc.keys"`
	GroupID      string        `envconfig:"GROUP_ID" default:"pocketcalc-analytics"`
	BatchTimeout time.Duration `envconfig:"BATCH_TIMEOUT" default:"10ms"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"5s"`
}

// brokersSlice возвращает список брокеров из строки (через запятую).
func (c *Config) brokersSlice() []string {
	if c == nil || c.Brokers == "" {
		return []string{"localhost:9092"}
	}
	parts := strings.Split(c.Brokers, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
