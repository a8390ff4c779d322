package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"pocketCalc/internal/domain"
	"pocketCalc/internal/ports"
)

var _ ports.ISessionCache = (*Cache)(nil)

const keyPrefix = "session:"

// cacheKey — ключ сессии в Redis, например "session:3f2a…".
func cacheKey(id string) string {
	return keyPrefix + id
}

// Cache реализует ports.ISessionCache через Redis. Значение — сессия в JSON.
type Cache struct {
	cli *Client
	ttl time.Duration
	log *slog.Logger
}

// NewCache возвращает кэш сессий с временем жизни ttl.
func NewCache(cli *Client, ttl time.Duration, log *slog.Logger) *Cache {
	return &Cache{cli: cli, ttl: ttl, log: log}
}

// Get возвращает сессию по id. Если ключа нет — found == false.
func (c *Cache) Get(ctx context.Context, id string) (*domain.Session, bool, error) {
	raw, err := c.cli.Get(ctx, cacheKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) { // ключа нет
			return nil, false, nil
		}
		c.log.Debug("cache get failed", "id", id, "error", err)
		return nil, false, err
	}
	var s domain.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		c.log.Debug("cache decode failed", "id", id, "error", err)
		return nil, false, fmt.Errorf("cache decode session: %w", err)
	}
	return &s, true, nil
}

// Set кладёт сессию в кэш, перезаписывая прежнюю копию и продлевая TTL.
func (c *Cache) Set(ctx context.Context, s domain.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("cache encode session: %w", err)
	}
	if err := c.cli.Set(ctx, cacheKey(s.ID), raw, c.ttl).Err(); err != nil {
		c.log.Debug("cache set failed", "id", s.ID, "error", err)
		return err
	}
	return nil
}

// Delete выкидывает сессию из кэша. Отсутствие ключа — не ошибка.
func (c *Cache) Delete(ctx context.Context, id string) error {
	if err := c.cli.Del(ctx, cacheKey(id)).Err(); err != nil {
		c.log.Debug("cache delete failed", "id", id, "error", err)
		return err
	}
	return nil
}
