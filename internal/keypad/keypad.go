// Package keypad — клавиатура калькулятора в терминале: байт = клавиша, дисплей перерисовывается на месте.
package keypad

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/gosuri/uilive"

	"pocketCalc/internal/domain"
)

// Управляющие байты терминала в raw-режиме.
const (
	keyQuit      = 'q'
	keyCtrlC     = 0x03
	keyCtrlD     = 0x04
	keyEnter     = '\r'
	keyNewline   = '\n'
	keyBackspace = 0x7f
	keyCtrlH     = 0x08
)

// KeyOf переводит нажатый байт в клавишу калькулятора. ok == false — байт не клавиша (игнорируется).
func KeyOf(b byte) (k domain.Key, ok bool) {
	switch {
	case b >= '0' && b <= '9':
		return domain.Key(string(b)), true
	case b == '.' || b == ',':
		return domain.KeyDecimal, true
	case b == '+':
		return domain.Key(domain.OpAdd), true
	case b == '-':
		return domain.Key(domain.OpSub), true
	case b == '*' || b == 'x':
		return domain.Key(domain.OpMul), true
	case b == '/':
		return domain.Key(domain.OpDiv), true
	case b == '=' || b == keyEnter || b == keyNewline:
		return domain.KeyEquals, true
	case b == '%':
		return domain.KeyPercent, true
	case b == 'c' || b == 'C':
		return domain.KeyClear, true
	case b == 'n' || b == 'N':
		return domain.KeySign, true
	}
	return "", false
}

func quits(b byte) bool {
	return b == keyQuit || b == keyCtrlC || b == keyCtrlD
}

// Run читает байты из in, применяет их к калькулятору и перерисовывает дисплей в out.
// Выход по q, Ctrl-C, Ctrl-D или концу ввода; возвращает итоговое состояние.
func Run(in io.Reader, out io.Writer) (domain.State, error) {
	calc := domain.NewCalculator()
	lw := uilive.New()
	lw.Out = out

	if err := render(lw, calc.State()); err != nil {
		return calc.State(), err
	}

	r := bufio.NewReader(in)
	for {
		b, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return calc.State(), nil
			}
			return calc.State(), err
		}
		if quits(b) {
			return calc.State(), nil
		}
		if b == keyBackspace || b == keyCtrlH {
			continue
		}
		k, ok := KeyOf(b)
		if !ok {
			continue
		}
		calc.Press(k)
		if err := render(lw, calc.State()); err != nil {
			return calc.State(), err
		}
	}
}

// render — одна строка: дисплей справа и ожидающий оператор.
func render(lw *uilive.Writer, s domain.State) error {
	pending := " "
	if s.Pending != domain.OpNone {
		pending = string(s.Pending)
	}
	fmt.Fprintf(lw, "[%s] %20s\n", pending, s.Display)
	return lw.Flush()
}
