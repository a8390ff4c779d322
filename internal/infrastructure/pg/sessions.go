package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"pocketCalc/internal/domain"
	"pocketCalc/internal/ports"
)

var _ ports.ISessionRepository = (*SessionRepo)(nil)

// SessionRepo реализует ports.ISessionRepository для PostgreSQL. Состояние калькулятора лежит в JSONB.
type SessionRepo struct {
	db  *DB
	log *slog.Logger
}

// NewSessionRepo возвращает репозиторий сессий.
func NewSessionRepo(db *DB, log *slog.Logger) *SessionRepo {
	return &SessionRepo{db: db, log: log}
}

// Create сохраняет новую сессию.
func (r *SessionRepo) Create(ctx context.Context, s domain.Session) error {
	state, err := json.Marshal(s.State)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, state, version, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		s.ID, string(state), s.Version, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		r.log.Debug("Create failed", "id", s.ID, "error", err)
		return err
	}
	return nil
}

// Get читает сессию по id.
func (r *SessionRepo) Get(ctx context.Context, id string) (*domain.Session, error) {
	var (
		s     domain.Session
		state []byte
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, state, version, created_at, updated_at FROM sessions WHERE id = $1`, id).
		Scan(&s.ID, &state, &s.Version, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		r.log.Debug("Get failed", "id", id, "error", err)
		return nil, err
	}
	if err := json.Unmarshal(state, &s.State); err != nil {
		return nil, fmt.Errorf("unmarshal state: %w", err)
	}
	return &s, nil
}

// Update перезаписывает сессию, если в БД лежит предыдущая версия (s.Version-1).
func (r *SessionRepo) Update(ctx context.Context, s domain.Session) error {
	state, err := json.Marshal(s.State)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET state = $2, version = $3, updated_at = $4
		 WHERE id = $1 AND version = $5`,
		s.ID, string(state), s.Version, s.UpdatedAt, s.Version-1)
	if err != nil {
		r.log.Debug("Update failed", "id", s.ID, "error", err)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return r.missOrConflict(ctx, s.ID)
	}
	return nil
}

// missOrConflict различает «сессии нет» и «версия уже другая».
func (r *SessionRepo) missOrConflict(ctx context.Context, id string) error {
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM sessions WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domain.ErrSessionNotFound
	}
	return domain.ErrSessionConflict
}

// Delete удаляет сессию.
func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		r.log.Debug("Delete failed", "id", id, "error", err)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// Ping проверяет доступность БД (readiness).
func (r *SessionRepo) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
