package ports

//go:generate mockgen -source=repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"pocketCalc/internal/domain"
)

// ISessionRepository — контракт хранения сессий калькулятора.
// Update сохраняет сессию, только если в хранилище лежит версия session.Version-1,
// иначе domain.ErrSessionConflict. Get/Update/Delete отсутствующей сессии — domain.ErrSessionNotFound.
type ISessionRepository interface {
	Create(ctx context.Context, session domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Update(ctx context.Context, session domain.Session) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
