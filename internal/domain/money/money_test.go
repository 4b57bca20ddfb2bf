package money_test

import (
	"testing"

	"bank-core/internal/domain/money"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, n interface{}) money.Money {
	t.Helper()
	m, err := money.FromNumber(n)
	require.NoError(t, err)
	return m
}

func TestAddExactness(t *testing.T) {
	tests := []struct {
		name    string
		a, b    interface{}
		display string
	}{
		{"sub-cent sum", "0.1", "0.01", "0.11"},
		{"carry across decimal point", "0.9", "0.1", "1.00"},
		{"carry with trailing zero", "9.99", "0.01", "10.00"},
		{"very small values", "0.000001", "0.000002", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustMoney(t, tt.a)
			b := mustMoney(t, tt.b)
			assert.Equal(t, tt.display, a.Add(b).Display())
		})
	}
}

func TestAddPreservesPrecision(t *testing.T) {
	a := mustMoney(t, "0.1")
	b := mustMoney(t, "0.001")
	sum := a.Add(b)
	assert.Equal(t, "0.10", sum.Display())
	assert.True(t, sum.GTE(mustMoney(t, "0.1")))
	assert.False(t, sum.GTE(mustMoney(t, "0.102")))
}

func TestSubtractBorrow(t *testing.T) {
	a := mustMoney(t, "10.0")
	b := mustMoney(t, "0.01")
	require.True(t, a.GTE(b))
	assert.Equal(t, "9.99", a.Sub(b).Display())
}

func TestDisplayTruncatesNeverRounds(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"0.0099", "0.00"},
		{"10.001", "10.00"},
		{"123.456", "123.45"},
	}
	for _, tt := range tests {
		m := mustMoney(t, tt.in)
		assert.Equal(t, tt.want, m.Display())
	}
}

func TestDisplayPadsShortFractions(t *testing.T) {
	m := mustMoney(t, 100)
	assert.Equal(t, "100.00", m.Display())
}

func TestCompare(t *testing.T) {
	a := mustMoney(t, "10.5")
	b := mustMoney(t, "10.50")
	c := mustMoney(t, "10.500")
	assert.Equal(t, 0, a.Cmp(b))
	assert.Equal(t, 0, a.Cmp(c))
	assert.True(t, a.GTE(b))

	d := mustMoney(t, "10.51")
	assert.Equal(t, -1, a.Cmp(d))
	assert.Equal(t, 1, d.Cmp(a))
}

func TestFromNumberRejectsNegative(t *testing.T) {
	_, err := money.FromNumber("-1")
	assert.Error(t, err)

	_, err = money.FromNumber(-5)
	assert.Error(t, err)
}

func TestFromNumberAcceptsIntAndDecimal(t *testing.T) {
	fromInt := mustMoney(t, 100)
	fromString := mustMoney(t, "100")
	assert.Equal(t, fromInt.Display(), fromString.Display())
}

func TestDisplayIdempotence(t *testing.T) {
	// P3: display(fromNumber(display(m))) == display(m)
	values := []interface{}{"0.01", "20.57978", "100", "0.00"}
	for _, v := range values {
		m := mustMoney(t, v)
		roundTripped := mustMoney(t, m.Display())
		assert.Equal(t, m.Display(), roundTripped.Display())
	}
}

func TestZeroIsZero(t *testing.T) {
	assert.True(t, money.Zero.IsZero())
	assert.Equal(t, "0.00", money.Zero.Display())
}

func TestJSONRoundTrip(t *testing.T) {
	m := mustMoney(t, "20.57978")
	b, err := m.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "20.57", string(b))

	var decoded money.Money
	require.NoError(t, decoded.UnmarshalJSON([]byte(`"10.123"`)))
	assert.Equal(t, "10.12", decoded.Display())
}

func TestScenarioSubCentDeposits(t *testing.T) {
	balance := money.Zero
	balance = balance.Add(mustMoney(t, "0.01"))
	assert.Equal(t, "0.01", balance.Display())
	balance = balance.Add(mustMoney(t, "0.01"))
	assert.Equal(t, "0.02", balance.Display())
}

func TestScenarioTruncationRetainsInternalPrecision(t *testing.T) {
	balance := money.Zero
	balance = balance.Add(mustMoney(t, "10.123"))
	assert.Equal(t, "10.12", balance.Display())

	balance = balance.Add(mustMoney(t, "10.45678"))
	assert.Equal(t, "20.57", balance.Display())

	balance = balance.Add(mustMoney(t, "10.001"))
	assert.Equal(t, "30.58", balance.Display())

	balance = balance.Add(mustMoney(t, "10.009"))
	assert.Equal(t, "40.58", balance.Display())
}
