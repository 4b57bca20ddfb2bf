// Package money implements the core's exact non-negative decimal value
// type. Arithmetic never rounds; only Display (and MarshalJSON, which
// calls it) ever discards precision, and it only ever truncates toward
// zero.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a non-negative decimal amount. The zero value is zero.
type Money struct {
	d decimal.Decimal
}

// Zero is the additive identity.
var Zero = Money{}

// FromNumber converts n into a Money, preserving its full precision.
// n must be an integer or decimal type and must not be negative.
// Accepted kinds: int, int64, float64, string, json.Number,
// decimal.Decimal.
func FromNumber(n interface{}) (Money, error) {
	d, err := toDecimal(n)
	if err != nil {
		return Money{}, err
	}
	if d.IsNegative() {
		return Money{}, fmt.Errorf("money: negative amount %s", d.String())
	}
	return Money{d: d}, nil
}

func toDecimal(n interface{}) (decimal.Decimal, error) {
	switch v := n.(type) {
	case Money:
		return v.d, nil
	case decimal.Decimal:
		return v, nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		return decimal.NewFromString(v)
	case fmt.Stringer:
		return decimal.NewFromString(v.String())
	default:
		return decimal.Decimal{}, fmt.Errorf("money: unsupported amount type %T", n)
	}
}

// MustFromNumber panics if FromNumber fails. Intended for constants and
// tests, never for caller-supplied input.
func MustFromNumber(n interface{}) Money {
	m, err := FromNumber(n)
	if err != nil {
		panic(err)
	}
	return m
}

// Add returns a+b with the combined precision of both operands.
func (m Money) Add(o Money) Money {
	return Money{d: m.d.Add(o.d)}
}

// Sub returns a-b. The caller must have already checked a.GTE(b);
// Sub does not itself guard against producing a negative Money.
func (m Money) Sub(o Money) Money {
	return Money{d: m.d.Sub(o.d)}
}

// Cmp reports whether m is less than, equal to, or greater than o,
// following the usual -1/0/1 convention.
func (m Money) Cmp(o Money) int {
	return m.d.Cmp(o.d)
}

// GTE reports whether m >= o.
func (m Money) GTE(o Money) bool {
	return m.d.Cmp(o.d) >= 0
}

// IsZero reports whether m is exactly zero.
func (m Money) IsZero() bool {
	return m.d.IsZero()
}

// Display truncates m to two fractional digits — never rounding — and
// formats it as "whole.dd". This is the only externally visible view
// of a Money value; internal arithmetic never truncates.
func (m Money) Display() string {
	return m.d.Truncate(2).StringFixed(2)
}

// MarshalJSON encodes the displayed (truncated) value as a bare JSON
// number, matching how decimal libraries in the wild represent money
// so API consumers can parse it with any numeric type.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Display()), nil
}

// UnmarshalJSON accepts either a JSON number or string and stores its
// exact value, preserving whatever precision the caller sent.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := FromNumber(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Money) String() string {
	return m.Display()
}
