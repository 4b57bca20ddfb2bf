package handlers

import (
	"strconv"

	"bank-core/internal/domain/money"
)

// displayAmount renders a request's raw amount field (already validated
// by the bank façade) in the same truncated two-decimal form a balance
// is displayed in, for event payloads. An unparseable value — which
// should not occur after a successful operation — renders as "0.00".
func displayAmount(raw interface{}) string {
	m, err := money.FromNumber(raw)
	if err != nil {
		return "0.00"
	}
	return m.Display()
}

// parseDisplayAmount parses a truncated decimal display string back into
// a float64, solely for histogram bucketing — never for balance math.
func parseDisplayAmount(display string) (float64, error) {
	return strconv.ParseFloat(display, 64)
}
