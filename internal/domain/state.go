package domain

import "strings"

// State — состояние калькулятора одного экрана.
//
// Accumulator — левый операнд цепочки; nil означает «операнда ещё нет».
// Записанный 0 трактуется так же, как nil (см. hasOperand).
// AwaitingOperand — следующая цифра начинает новое число, а не дописывается.
type State struct {
	Display         string   `json:"display"`
	Accumulator     *float64 `json:"accumulator,omitempty"`
	Pending         Operator `json:"pending_operator,omitempty"`
	AwaitingOperand bool     `json:"awaiting_operand"`
}

// NewState возвращает начальное (сброшенное) состояние.
func NewState() State {
	return State{Display: "0"}
}

func operand(v float64) *float64 {
	return &v
}

// hasOperand: нулевой аккумулятор неотличим от отсутствующего.
func (s State) hasOperand() bool {
	return s.Accumulator != nil && *s.Accumulator != 0
}

// InputDigit дописывает цифру d ('0'..'9'). Любой другой байт игнорируется.
func (s State) InputDigit(d byte) State {
	if d < '0' || d > '9' {
		return s
	}
	switch {
	case s.AwaitingOperand:
		s.Display = string(d)
		s.AwaitingOperand = false
	case s.Display == "0":
		s.Display = string(d)
	default:
		s.Display += string(d)
	}
	return s
}

// InputDecimal ставит десятичную точку, если её ещё нет.
func (s State) InputDecimal() State {
	if s.AwaitingOperand {
		s.Display = "0."
		s.AwaitingOperand = false
		return s
	}
	if !strings.Contains(s.Display, ".") {
		s.Display += "."
	}
	return s
}

// InputOperator фиксирует оператор. Если уже есть операнд и отложенный оператор,
// сначала досчитывает цепочку слева направо: 2 + 3 × 4 = 20.
func (s State) InputOperator(op Operator) State {
	if op == OpNone {
		return s
	}
	v := ParseOrZero(s.Display)
	switch {
	case !s.hasOperand():
		s.Accumulator = operand(v)
	case s.Pending != OpNone:
		result := Apply(*s.Accumulator, v, s.Pending)
		s.Display = FormatResult(result)
		s.Accumulator = operand(result)
	}
	s.Pending = op
	s.AwaitingOperand = true
	return s
}

// Equals досчитывает отложенную операцию и сбрасывает цепочку.
// Без операнда или без оператора ничего не делает.
func (s State) Equals() State {
	if !s.hasOperand() || s.Pending == OpNone {
		return s
	}
	result := Apply(*s.Accumulator, ParseOrZero(s.Display), s.Pending)
	s.Display = FormatResult(result)
	s.Accumulator = nil
	s.Pending = OpNone
	s.AwaitingOperand = true
	return s
}

// Clear возвращает начальное состояние.
func (s State) Clear() State {
	return NewState()
}

// ToggleSign меняет знак числа на дисплее. "0" не меняется.
func (s State) ToggleSign() State {
	if s.Display == "0" {
		return s
	}
	if strings.HasPrefix(s.Display, "-") {
		s.Display = s.Display[1:]
	} else {
		s.Display = "-" + s.Display
	}
	return s
}

// Percent делит число на дисплее на 100. Формат — FormatNative, без обрезки целых:
// "100" даёт "1.0", тогда как оператор или равно с тем же значением покажут "1".
func (s State) Percent() State {
	s.Display = FormatNative(ParseOrZero(s.Display) / 100)
	return s
}

// Press применяет одну клавишу.
func (s State) Press(k Key) State {
	switch {
	case k.IsDigit():
		return s.InputDigit(k[0])
	case k == KeyDecimal:
		return s.InputDecimal()
	case k == KeyEquals:
		return s.Equals()
	case k == KeyClear:
		return s.Clear()
	case k == KeySign:
		return s.ToggleSign()
	case k == KeyPercent:
		return s.Percent()
	}
	if op, ok := k.Operator(); ok {
		return s.InputOperator(op)
	}
	return s
}

// Apply — одна бинарная операция. Деление на ноль даёт 0, а не ошибку.
func Apply(a, b float64, op Operator) float64 {
	switch op {
	case OpAdd:
		return a + b
	case OpSub:
		return a - b
	case OpMul:
		return a * b
	case OpDiv:
		if b == 0 {
			return 0
		}
		return a / b
	}
	return b
}
