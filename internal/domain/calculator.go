package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnknownOperation возвращается, когда оператор не поддерживается.
	ErrUnknownOperation = errors.New("unknown operation")
	// ErrUnknownKey возвращается, когда клавиша не распознана.
	ErrUnknownKey = errors.New("unknown key")
	// ErrSessionNotFound — сессии с таким id нет.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionConflict — сессию успели изменить параллельно (версия не совпала).
	ErrSessionConflict = errors.New("session version conflict")
)

// Operator — бинарный оператор калькулятора. Пустая строка — оператора нет.
type Operator string

// Константы арифметических операций.
const (
	OpNone Operator = ""
	OpAdd  Operator = "+"
	OpSub  Operator = "-"
	OpMul  Operator = "*"
	OpDiv  Operator = "/"
)

// ParseOperator разбирает символ оператора, включая «типографские» варианты с кнопок.
func ParseOperator(s string) (Operator, error) {
	switch s {
	case "+":
		return OpAdd, nil
	case "-", "−":
		return OpSub, nil
	case "*", "×", "x":
		return OpMul, nil
	case "/", "÷":
		return OpDiv, nil
	}
	return OpNone, fmt.Errorf("%w: %q", ErrUnknownOperation, s)
}

// Session — одна сессия клавиатуры: состояние калькулятора одного экрана.
// Version растёт на каждом сохранении (оптимистичная блокировка).
type Session struct {
	ID        string    `json:"id"`
	State     State     `json:"state"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// KeyEvent — событие нажатия клавиши, уходит в брокер и дальше в аналитику.
type KeyEvent struct {
	SessionID string    `json:"session_id"`
	Key       Key       `json:"key"`
	Display   string    `json:"display"`
	Pending   Operator  `json:"pending_operator,omitempty"`
	At        time.Time `json:"at"`
}
