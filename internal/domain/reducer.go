package domain

// Calculator — изменяемая обёртка над State для использования внутри процесса
// (терминальная клавиатура, тесты). Каждый метод возвращает новый дисплей.
// Не потокобезопасен: вызовы строго по одному.
type Calculator struct {
	state State
}

// NewCalculator создаёт калькулятор в начальном состоянии.
func NewCalculator() *Calculator {
	return &Calculator{state: NewState()}
}

// Display — текущий текст дисплея.
func (c *Calculator) Display() string { return c.state.Display }

// State — копия текущего состояния.
func (c *Calculator) State() State { return c.state }

func (c *Calculator) InputDigit(d byte) string { return c.set(c.state.InputDigit(d)) }

func (c *Calculator) InputDecimal() string { return c.set(c.state.InputDecimal()) }

func (c *Calculator) InputOperator(op Operator) string { return c.set(c.state.InputOperator(op)) }

func (c *Calculator) Equals() string { return c.set(c.state.Equals()) }

func (c *Calculator) Clear() string { return c.set(c.state.Clear()) }

func (c *Calculator) ToggleSign() string { return c.set(c.state.ToggleSign()) }

func (c *Calculator) Percent() string { return c.set(c.state.Percent()) }

// Press применяет клавишу.
func (c *Calculator) Press(k Key) string { return c.set(c.state.Press(k)) }

func (c *Calculator) set(s State) string {
	c.state = s
	return s.Display
}
