package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	apigrpc "pocketCalc/internal/api/grpc"
	apihttp "pocketCalc/internal/api/http"
	"pocketCalc/internal/api/http/controllers/sessions"
	"pocketCalc/internal/api/http/controllers/system"
	"pocketCalc/internal/infrastructure/click"
	"pocketCalc/internal/infrastructure/kafka"
	"pocketCalc/internal/infrastructure/mongo"
	"pocketCalc/internal/infrastructure/pg"
	"pocketCalc/internal/infrastructure/redis"
	"pocketCalc/internal/pkg/logger"
	"pocketCalc/internal/ports"
	calcUsecase "pocketCalc/internal/usecase/calculator"
)

// App — приложение, хранит конфиг и функции закрытия подключений.
type App struct {
	cfg     Config
	log     *slog.Logger
	closers []func()
}

// New создаёт приложение с конфигом (подключения открываются в Run).
func New(cfg Config) *App {
	log := logger.New(cfg.Log)
	slog.SetDefault(log)
	return &App{cfg: cfg, log: log}
}

// Run подключает хранилище, кэш, Kafka и ClickHouse, запускает gRPC и HTTP (блокирующий вызов до SIGINT/SIGTERM).
func (a *App) Run() error {
	defer a.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := a.sessionRepo(ctx)
	if err != nil {
		return err
	}

	rdb, err := redis.New(&a.cfg.Redis)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	a.onClose(func() { _ = rdb.Close() })
	cache := redis.NewCache(rdb, a.cfg.Redis.TTL, a.log)

	var (
		producer  ports.IProducer
		analytics ports.IKeyAnalytics
	)
	if a.cfg.Kafka.Enabled {
		ch, err := click.New(&a.cfg.ClickHouse)
		if err != nil {
			return fmt.Errorf("clickhouse: %w", err)
		}
		a.onClose(func() { _ = ch.Close() })
		writer := click.NewKeyEventWriter(ch)
		if err := writer.EnsureTable(ctx); err != nil {
			return fmt.Errorf("clickhouse table: %w", err)
		}
		analytics = writer

		p := kafka.NewProducer(&a.cfg.Kafka)
		a.onClose(func() { _ = p.Close() })
		producer = p
	}

	uc := calcUsecase.New(repo, cache, producer, analytics, a.log)

	if a.cfg.Kafka.Enabled {
		consumer := kafka.NewConsumer(&a.cfg.Kafka, uc, a.log)
		a.onClose(func() { _ = consumer.Close() })
		go func() {
			if err := consumer.Run(ctx); err != nil && ctx.Err() == nil {
				a.log.Error("kafka consumer failed", "error", err)
			}
		}()
	}

	grpcSrv := apigrpc.NewServer(a.cfg.Grpc.Addr(), uc, a.log)
	go func() {
		if err := grpcSrv.Start(); err != nil {
			a.log.Error("grpc server failed", "error", err)
		}
	}()

	srv := apihttp.NewServer(a.cfg.Server, a.log)
	srv.AddController(
		system.New(map[string]system.Pinger{"sessions": repo, "redis": rdb}, a.log),
		sessions.New(uc, a.log))

	a.log.Info("application started",
		"http", a.cfg.Server.Host+":"+a.cfg.Server.Port,
		"grpc", a.cfg.Grpc.Addr(),
		"storage", a.cfg.Storage,
		"kafka", a.cfg.Kafka.Enabled)

	if err := srv.Start(ctx); err != nil {
		return err
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return grpcSrv.Stop(shutdownCtx)
}

// sessionRepo подключает хранилище сессий по CALCULATOR_STORAGE.
func (a *App) sessionRepo(ctx context.Context) (ports.ISessionRepository, error) {
	switch a.cfg.Storage {
	case StorageMongo:
		client, err := mongo.New(ctx, &a.cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("mongo: %w", err)
		}
		a.onClose(func() { _ = client.Close(context.Background()) })
		return mongo.NewSessionRepo(client, a.log), nil
	default:
		db, err := pg.New(&a.cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("db: %w", err)
		}
		a.onClose(func() { _ = db.Close() })
		if err := pg.Migrate(ctx, db); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		return pg.NewSessionRepo(db, a.log), nil
	}
}

func (a *App) onClose(f func()) {
	a.closers = append(a.closers, f)
}

// close закрывает подключения в обратном порядке.
func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
