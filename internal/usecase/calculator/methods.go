package calculator

import (
	"context"
	"encoding/json"
	"errors"

	"pocketCalc/internal/domain"
)

// CreateSession — новая сессия в начальном состоянии: сохраняет в БД и в кэш.
func (u *UseCase) CreateSession(ctx context.Context) (*domain.Session, error) {
	now := u.now()
	s := domain.Session{
		ID:        u.newID(),
		State:     domain.NewState(),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	u.log.Info("session created", "id", s.ID)
	u.remember(ctx, s)
	return &s, nil
}

// Session — проверяет кэш; при промахе читает из БД и кладёт в кэш.
func (u *UseCase) Session(ctx context.Context, id string) (*domain.Session, error) {
	if u.cache != nil {
		cached, found, err := u.cache.Get(ctx, id)
		if err == nil && found {
			return cached, nil
		}
		if err != nil {
			u.log.Warn("cache get", "id", id, "error", err)
		}
	}

	s, err := u.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	u.remember(ctx, *s)
	return s, nil
}

// Press прогоняет клавиши через редьюсер строго по порядку и сохраняет сессию.
// На каждую клавишу публикуется KeyEvent; ошибка брокера только логируется.
func (u *UseCase) Press(ctx context.Context, id string, keys ...domain.Key) (*domain.Session, error) {
	unlock := u.locks.lock(id)
	defer unlock()

	s, err := u.Session(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return s, nil
	}

	now := u.now()
	events := make([]domain.KeyEvent, 0, len(keys))
	for _, k := range keys {
		s.State = s.State.Press(k)
		events = append(events, domain.KeyEvent{
			SessionID: id,
			Key:       k,
			Display:   s.State.Display,
			Pending:   s.State.Pending,
			At:        now,
		})
	}
	s.Version++
	s.UpdatedAt = now

	if err := u.repo.Update(ctx, *s); err != nil {
		if errors.Is(err, domain.ErrSessionConflict) || errors.Is(err, domain.ErrSessionNotFound) {
			// в кэше устаревшая версия или уже удалённая сессия
			u.forget(ctx, id)
		}
		return nil, err
	}
	u.log.Debug("keys pressed", "id", id, "keys", len(keys), "display", s.State.Display)
	u.remember(ctx, *s)
	u.publish(ctx, events)

	return s, nil
}

// DeleteSession удаляет сессию из БД и из кэша. Берёт мьютекс сессии: идущий Press
// не вернёт удалённую сессию в кэш.
func (u *UseCase) DeleteSession(ctx context.Context, id string) error {
	unlock := u.locks.lock(id)
	defer unlock()

	if err := u.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			u.forget(ctx, id)
		}
		return err
	}
	u.forget(ctx, id)
	u.log.Info("session deleted", "id", id)
	return nil
}

// Evaluate — разовая операция над двумя числами (gRPC Calculate). Деление на ноль даёт 0.
func (u *UseCase) Evaluate(ctx context.Context, number1, number2 float64, operation string) (float64, error) {
	op, err := domain.ParseOperator(operation)
	if err != nil {
		return 0, err
	}
	return domain.Apply(number1, number2, op), nil
}

// HandleKeyEvent вызывается консьюмером при получении сообщения из топика нажатий (часть ICalculatorUseCase).
func (u *UseCase) HandleKeyEvent(ctx context.Context, ev domain.KeyEvent) error {
	if u.analytics == nil {
		return nil
	}
	if err := u.analytics.WriteKeyEvent(ctx, ev); err != nil {
		u.log.Warn("analytics write", "error", err)
		return err
	}
	u.log.Debug("key event stored to click", "session", ev.SessionID, "key", ev.Key, "display", ev.Display)
	return nil
}

func (u *UseCase) remember(ctx context.Context, s domain.Session) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Set(ctx, s); err != nil {
		u.log.Warn("cache set", "id", s.ID, "error", err)
	}
}

func (u *UseCase) forget(ctx context.Context, id string) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Delete(ctx, id); err != nil {
		u.log.Warn("cache delete", "id", id, "error", err)
	}
}

// publish отправляет события нажатий одной пачкой с ключом = id сессии (одна партиция, порядок сохраняется).
func (u *UseCase) publish(ctx context.Context, events []domain.KeyEvent) {
	if u.broker == nil || len(events) == 0 {
		return
	}
	values := make([][]byte, 0, len(events))
	for _, ev := range events {
		value, err := json.Marshal(ev)
		if err != nil {
			u.log.Warn("key event marshal", "id", ev.SessionID, "error", err)
			continue
		}
		values = append(values, value)
	}
	id := events[0].SessionID
	if err := u.broker.Send(ctx, []byte(id), values...); err != nil {
		u.log.Warn("broker send", "id", id, "events", len(values), "error", err)
	}
}
