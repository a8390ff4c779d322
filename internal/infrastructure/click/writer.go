package click

import (
	"context"
	"fmt"

	"pocketCalc/internal/domain"
	"pocketCalc/internal/ports"
)

const keyEventsTable = "default.key_events"

var _ ports.IKeyAnalytics = (*KeyEventWriter)(nil)

// KeyEventWriter пишет нажатия клавиш в ClickHouse (GROUP BY key, по времени, по сессии).
type KeyEventWriter struct {
	db *Client
}

// NewKeyEventWriter создаёт писатель нажатий для аналитики.
func NewKeyEventWriter(db *Client) *KeyEventWriter {
	return &KeyEventWriter{db: db}
}

// EnsureTable создаёт таблицу нажатий, если её ещё нет. Вызови один раз при старте приложения.
func (w *KeyEventWriter) EnsureTable(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			session_id String,
			key LowCardinality(String),
			display String,
			pending_operator LowCardinality(String),
			at DateTime64(3)
		) ENGINE = MergeTree()
		ORDER BY (at, key)
		PARTITION BY toYYYYMM(at)`,
		keyEventsTable,
	)
	_, err := w.db.DB().ExecContext(ctx, query)
	return err
}

// WriteKeyEvent реализует ports.IKeyAnalytics: пишет одно нажатие в ClickHouse.
func (w *KeyEventWriter) WriteKeyEvent(ctx context.Context, ev domain.KeyEvent) error {
	query := fmt.Sprintf(
		"INSERT INTO %s (session_id, key, display, pending_operator, at) VALUES (?, ?, ?, ?, ?)",
		keyEventsTable,
	)
	_, err := w.db.DB().ExecContext(ctx, query,
		ev.SessionID, string(ev.Key), ev.Display, string(ev.Pending), ev.At)
	if err != nil {
		return fmt.Errorf("insert key event: %w", err)
	}
	return nil
}

// CountByKey — сколько раз в сессии нажимали каждую клавишу.
func (w *KeyEventWriter) CountByKey(ctx context.Context, sessionID string) (map[domain.Key]uint64, error) {
	query := fmt.Sprintf("SELECT key, count() FROM %s WHERE session_id = ? GROUP BY key", keyEventsTable)
	rows, err := w.db.DB().QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("count key events: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.Key]uint64)
	for rows.Next() {
		var (
			key string
			n   uint64
		)
		if err := rows.Scan(&key, &n); err != nil {
			return nil, err
		}
		counts[domain.Key(key)] = n
	}
	return counts, rows.Err()
}
