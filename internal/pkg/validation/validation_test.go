package validation_test

import (
	"testing"

	"bank-core/internal/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsernameRejectsEmpty(t *testing.T) {
	assert.ErrorIs(t, validation.Username(""), validation.ErrWrongArguments)
	assert.NoError(t, validation.Username("alice"))
}

func TestCurrencyIsCaseSensitiveAndRejectsEmpty(t *testing.T) {
	assert.ErrorIs(t, validation.Currency(""), validation.ErrWrongArguments)
	assert.NoError(t, validation.Currency("USD"))
	assert.NoError(t, validation.Currency("usd"))
}

func TestAmountRejectsNilZeroAndNegative(t *testing.T) {
	_, err := validation.Amount(nil)
	assert.ErrorIs(t, err, validation.ErrWrongArguments)

	_, err = validation.Amount(0)
	assert.ErrorIs(t, err, validation.ErrWrongArguments)

	_, err = validation.Amount(-10.5)
	assert.ErrorIs(t, err, validation.ErrWrongArguments)
}

func TestAmountAcceptsPositiveNumber(t *testing.T) {
	m, err := validation.Amount(10.5)
	require.NoError(t, err)
	assert.Equal(t, "10.50", m.Display())
}

func TestDistinctUsersRejectsSelfTransfer(t *testing.T) {
	assert.ErrorIs(t, validation.DistinctUsers("alice", "alice"), validation.ErrWrongArguments)
	assert.NoError(t, validation.DistinctUsers("alice", "bob"))
}
