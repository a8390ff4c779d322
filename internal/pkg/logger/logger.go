package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Config — настройки логгера. Переменные: CALCULATOR_LOG_LEVEL, CALCULATOR_LOG_FILE, CALCULATOR_LOG_PRETTY.
type Config struct {
	Level  string `envconfig:"LEVEL" default:"info"`
	File   string `envconfig:"FILE" default:"app.log"`
	Pretty bool   `envconfig:"PRETTY" default:"false"`
}

// logWriter открывает файл логов и возвращает writer в файл + stderr.
// Пустое имя или ошибка открытия — только stderr.
func logWriter(name string) io.Writer {
	if name == "" {
		return os.Stderr
	}
	f, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return os.Stderr
	}
	return io.MultiWriter(f, os.Stderr)
}

// New возвращает логгер по конфигу. Pretty — цветной вывод tint в stderr (для локальной разработки),
// иначе текстовый slog в файл и в консоль.
func New(cfg Config) *slog.Logger {
	level := ParseLevel(cfg.Level)
	if cfg.Pretty {
		return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}))
	}
	return newText(logWriter(cfg.File), level)
}

func newText(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// ParseLevel переводит строку (debug, info, warn, error) в slog.Level. Неизвестное — info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
