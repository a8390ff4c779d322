package domain

import (
	"fmt"
	"strings"
)

// Key — кнопка калькулятора.
type Key string

// Служебные клавиши. Цифры — "0".."9", операторы — строки Operator.
const (
	KeyDecimal Key = "."
	KeyEquals  Key = "="
	KeyClear   Key = "AC"
	KeySign    Key = "+/-"
	KeyPercent Key = "%"
)

// IsDigit — клавиша одной цифры.
func (k Key) IsDigit() bool {
	return len(k) == 1 && k[0] >= '0' && k[0] <= '9'
}

// Operator возвращает оператор клавиши, если это клавиша оператора.
func (k Key) Operator() (Operator, bool) {
	switch op := Operator(k); op {
	case OpAdd, OpSub, OpMul, OpDiv:
		return op, true
	}
	return OpNone, false
}

// ParseKey приводит подпись кнопки к Key. Понимает варианты с экранной клавиатуры
// (×, ÷, −, ±, C) и "enter" для равно.
func ParseKey(s string) (Key, error) {
	s = strings.TrimSpace(s)
	if k := Key(s); k.IsDigit() {
		return k, nil
	}
	switch strings.ToLower(s) {
	case ".", ",":
		return KeyDecimal, nil
	case "=", "enter":
		return KeyEquals, nil
	case "ac", "c":
		return KeyClear, nil
	case "+/-", "±", "neg":
		return KeySign, nil
	case "%":
		return KeyPercent, nil
	}
	if op, err := ParseOperator(s); err == nil {
		return Key(op), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKey, s)
}

// ParseKeys разбирает последовательность подписей; первая ошибка прерывает разбор.
func ParseKeys(labels []string) ([]Key, error) {
	keys := make([]Key, 0, len(labels))
	for _, l := range labels {
		k, err := ParseKey(l)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}
