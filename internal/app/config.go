package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"pocketCalc/internal/api/http"
	"pocketCalc/internal/infrastructure/click"
	"pocketCalc/internal/infrastructure/kafka"
	"pocketCalc/internal/infrastructure/mongo"
	"pocketCalc/internal/infrastructure/pg"
	"pocketCalc/internal/infrastructure/redis"
	"pocketCalc/internal/pkg/logger"
)

const AppName = "CALCULATOR"

// Хранилища сессий (CALCULATOR_STORAGE).
const (
	StoragePostgres = "pg"
	StorageMongo    = "mongo"
)

// GrpcConfig — настройки gRPC-сервера. Переменные: CALCULATOR_GRPC_HOST, CALCULATOR_GRPC_PORT.
type GrpcConfig struct {
	Host string `envconfig:"HOST" default:"0.0.0.0"`
	Port string `envconfig:"PORT" default:"9090"`
}

// Addr возвращает адрес "host:port".
func (c GrpcConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// Config — конфиг приложения. Заполняется через envconfig с префиксом CALCULATOR.
type Config struct {
	Server     http.ServerConfig `envconfig:"SERVER"`
	Grpc       GrpcConfig        `envconfig:"GRPC"`
	Log        logger.Config     `envconfig:"LOG"`
	Storage    string            `envconfig:"STORAGE" default:"pg"`
	DB         pg.Config         `envconfig:"DB"`
	Mongo      mongo.Config      `envconfig:"MONGO"`
	Redis      redis.Config      `envconfig:"REDIS"`
	Kafka      kafka.Config      `envconfig:"KAFKA"`
	ClickHouse click.Config      `envconfig:"CLICKHOUSE"`
}

// Validate проверяет значения, которые envconfig проверить не может.
func (c Config) Validate() error {
	switch c.Storage {
	case StoragePostgres, StorageMongo:
		return nil
	default:
		return fmt.Errorf("config: unknown storage %q (want %s or %s)", c.Storage, StoragePostgres, StorageMongo)
	}
}

// LoadCfg загружает конфиг: подтягивает .env (godotenv), затем заполняет структуру из окружения (envconfig).
// Путь к .env — CALCULATOR_ENV_FILE, по умолчанию .env в рабочей директории.
func LoadCfg() (Config, error) {
	envFile := os.Getenv(AppName + "_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		slog.Debug("config: .env не найден, используем окружение", "file", envFile, "error", err)
	}

	var cfg Config
	if err := envconfig.Process(AppName, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
