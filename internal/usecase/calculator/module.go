package calculator

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"pocketCalc/internal/ports"
)

// UseCase — бизнес-логика калькулятора: сессии клавиатуры поверх редьюсера domain.State.
type UseCase struct {
	repo      ports.ISessionRepository
	cache     ports.ISessionCache
	broker    ports.IProducer
	analytics ports.IKeyAnalytics
	log       *slog.Logger

	locks sessionLocks
	now   func() time.Time
	newID func() string
}

// New создаёт юзкейс калькулятора. cache, broker и analytics могут быть nil
// (кэш и события тогда просто не используются).
func New(repo ports.ISessionRepository, cache ports.ISessionCache, broker ports.IProducer, analytics ports.IKeyAnalytics, log *slog.Logger) *UseCase {
	if log == nil {
		log = slog.Default()
	}
	return &UseCase{
		repo:      repo,
		cache:     cache,
		broker:    broker,
		analytics: analytics,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

// sessionLocks — мьютекс на каждую сессию: нажатия одной сессии идут строго по одному.
type sessionLocks struct {
	mu sync.Mutex
	m  map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// lock захватывает мьютекс сессии id и возвращает функцию освобождения.
func (l *sessionLocks) lock(id string) (unlock func()) {
	l.mu.Lock()
	if l.m == nil {
		l.m = make(map[string]*sessionLock)
	}
	sl, ok := l.m[id]
	if !ok {
		sl = &sessionLock{}
		l.m[id] = sl
	}
	sl.refs++
	l.mu.Unlock()

	sl.mu.Lock()
	return func() {
		sl.mu.Unlock()
		l.mu.Lock()
		sl.refs--
		if sl.refs == 0 {
			delete(l.m, id)
		}
		l.mu.Unlock()
	}
}
