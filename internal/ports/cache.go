package ports

//go:generate mockgen -source=cache.go -destination=../mocks/cache_mock.go -package=mocks

import (
	"context"

	"pocketCalc/internal/domain"
)

// ISessionCache — горячая копия сессий. Промах — found == false без ошибки.
type ISessionCache interface {
	Get(ctx context.Context, id string) (session *domain.Session, found bool, err error)
	Set(ctx context.Context, session domain.Session) error
	Delete(ctx context.Context, id string) error
}
