package ports

//go:generate mockgen -source=analytics.go -destination=../mocks/analytics_mock.go -package=mocks

import (
	"context"

	"pocketCalc/internal/domain"
)

// IKeyAnalytics — запись нажатий клавиш в хранилище для аналитики (например, ClickHouse).
type IKeyAnalytics interface {
	WriteKeyEvent(ctx context.Context, ev domain.KeyEvent) error
}
