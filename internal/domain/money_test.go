package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney_RejectsNegativeAmounts(t *testing.T) {
	_, err := NewMoney(decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = ParseMoney("-0.01")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = NewMoneyFromInt(-50000)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestNewMoney_AcceptsZero(t *testing.T) {
	m, err := NewMoneyFromInt(0)
	require.NoError(t, err)
	assert.True(t, m.IsZero())
	assert.True(t, m.Equal(ZeroMoney()))
}

func TestParseMoney_InvalidInput(t *testing.T) {
	_, err := ParseMoney("not-a-number")
	assert.Error(t, err)
}

func TestMoney_ArithmeticIsExact(t *testing.T) {
	// 0.1 + 0.2 is the classic float64 trap; decimals must stay exact.
	a, err := ParseMoney("0.1")
	require.NoError(t, err)
	b, err := ParseMoney("0.2")
	require.NoError(t, err)

	sum := a.Add(b)
	expected, err := ParseMoney("0.3")
	require.NoError(t, err)
	assert.True(t, sum.Equal(expected), "got %s", sum)
}

func TestMoney_SubAndMulInt(t *testing.T) {
	total, _ := NewMoneyFromInt(200_000)
	copay, _ := NewMoneyFromInt(50_000)

	coverage := total.Sub(copay)
	want, _ := NewMoneyFromInt(150_000)
	assert.True(t, coverage.Equal(want))

	unit, _ := ParseMoney("12500.50")
	line := unit.MulInt(4)
	wantLine, _ := ParseMoney("50002.00")
	assert.True(t, line.Equal(wantLine))
}

func TestMoney_SubMayGoNegative(t *testing.T) {
	small, _ := NewMoneyFromInt(10)
	big, _ := NewMoneyFromInt(20)
	assert.True(t, small.Sub(big).IsNegative())
}

func TestMoney_Ordering(t *testing.T) {
	low, _ := NewMoneyFromInt(50_000)
	high, _ := NewMoneyFromInt(1_000_000)

	assert.True(t, low.LessThan(high))
	assert.True(t, high.GreaterThanOrEqual(low))
	assert.True(t, high.GreaterThanOrEqual(high))
	assert.Equal(t, -1, low.Cmp(high))
	assert.Equal(t, 0, low.Cmp(low))

	assert.True(t, MinMoney(low, high).Equal(low))
	assert.True(t, MinMoney(high, low).Equal(low))
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m, _ := ParseMoney("50000.25")
	data, err := m.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"50000.25"`, string(data))

	var back Money
	require.NoError(t, back.UnmarshalJSON(data))
	assert.True(t, back.Equal(m))

	var rejected Money
	assert.ErrorIs(t, rejected.UnmarshalJSON([]byte(`"-1"`)), ErrInvalidAmount)
}
