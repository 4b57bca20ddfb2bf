// Package validation holds the argument checks shared by every banking
// operation, applied before any lookup or state mutation.
package validation

import (
	"errors"

	"bank-core/internal/domain/money"
)

// ErrWrongArguments is the single sentinel for every kind of malformed
// input: it carries no further detail because the external API exposes
// it as one opaque kind (spec §6: "wrong_arguments").
var ErrWrongArguments = errors.New("validation: wrong arguments")

// Username checks that username is a non-empty string.
func Username(username string) error {
	if username == "" {
		return ErrWrongArguments
	}
	return nil
}

// Currency checks that currency is a non-empty string. Case is
// significant: "USD" and "usd" are distinct currencies.
func Currency(currency string) error {
	if currency == "" {
		return ErrWrongArguments
	}
	return nil
}

// Amount parses raw into a Money, rejecting anything that is not a
// strictly positive number (integer or finite decimal).
func Amount(raw interface{}) (money.Money, error) {
	if raw == nil {
		return money.Money{}, ErrWrongArguments
	}
	m, err := money.FromNumber(raw)
	if err != nil {
		return money.Money{}, ErrWrongArguments
	}
	if m.IsZero() {
		return money.Money{}, ErrWrongArguments
	}
	return m, nil
}

// DistinctUsers checks that from and to are not byte-equal, as send
// requires.
func DistinctUsers(from, to string) error {
	if from == to {
		return ErrWrongArguments
	}
	return nil
}
