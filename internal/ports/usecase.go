package ports

//go:generate mockgen -source=usecase.go -destination=../mocks/usecase_mock.go -package=mocks

import (
	"context"

	"pocketCalc/internal/domain"
)

// ICalculatorUseCase — контракт бизнес-логики калькулятора (сессии клавиатуры, разовый расчёт, события из Kafka).
type ICalculatorUseCase interface {
	CreateSession(ctx context.Context) (*domain.Session, error)
	Session(ctx context.Context, id string) (*domain.Session, error)
	Press(ctx context.Context, id string, keys ...domain.Key) (*domain.Session, error)
	DeleteSession(ctx context.Context, id string) error
	Evaluate(ctx context.Context, number1, number2 float64, operation string) (float64, error)
	HandleKeyEvent(ctx context.Context, ev domain.KeyEvent) error
}
