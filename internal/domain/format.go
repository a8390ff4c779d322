package domain

import (
	"math"
	"strconv"
)

// ParseOrZero разбирает текст дисплея как число. Ошибка разбора или
// бесконечность/NaN дают 0: калькулятор не сообщает об ошибках.
func ParseOrZero(text string) float64 {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}

// FormatResult — формат результата операции: целое без дробной части ("6", не "6.0"),
// остальное через FormatNative.
func FormatResult(v float64) string {
	v = finite(v)
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return FormatNative(v)
}

// FormatNative — стандартное представление float64 без управления точностью:
// кратчайшая десятичная запись без экспоненты, поэтому 0.1+0.2 показывается как 0.30000000000000004.
// Целое всегда с дробной частью: 1 → "1.0", в отличие от FormatResult.
func FormatNative(v float64) string {
	v = finite(v)
	text := strconv.FormatFloat(v, 'f', -1, 64)
	if v == math.Trunc(v) {
		text += ".0"
	}
	return text
}

// finite сводит переполнение и -0 к 0, чтобы дисплей всегда разбирался как конечное число.
func finite(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) || v == 0 {
		return 0
	}
	return v
}
