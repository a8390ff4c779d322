package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculator_Operations(t *testing.T) {
	c := NewCalculator()
	assert.Equal(t, "0", c.Display())

	assert.Equal(t, "1", c.InputDigit('1'))
	assert.Equal(t, "1.", c.InputDecimal())
	assert.Equal(t, "1.5", c.InputDigit('5'))
	assert.Equal(t, "-1.5", c.ToggleSign())
	assert.Equal(t, "1.5", c.ToggleSign())
	assert.Equal(t, "1.5", c.InputOperator(OpMul))
	assert.Equal(t, "4", c.InputDigit('4'))
	assert.Equal(t, "6", c.Equals())
	assert.Equal(t, "0.06", c.Percent())
	assert.Equal(t, "0", c.Clear())
	assert.Equal(t, NewState(), c.State())
}

func TestCalculator_Press(t *testing.T) {
	c := NewCalculator()
	for _, k := range []Key{"2", Key(OpAdd), "3", Key(OpMul), "4", KeyEquals} {
		c.Press(k)
	}
	assert.Equal(t, "20", c.Display())
}
