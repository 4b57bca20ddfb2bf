package bank_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"bank-core/internal/domain/bank"
	"bank-core/internal/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	b := bank.New(bank.DefaultCapacity)
	require.NoError(t, b.CreateUser("alice"))

	err := b.CreateUser("alice")
	assert.ErrorIs(t, err, bank.ErrUserAlreadyExists)
}

func TestCreateUserRejectsEmptyUsername(t *testing.T) {
	b := bank.New(bank.DefaultCapacity)
	err := b.CreateUser("")
	assert.ErrorIs(t, err, validation.ErrWrongArguments)
}

func TestUnknownUserOperationsFail(t *testing.T) {
	ctx := context.Background()
	b := bank.New(bank.DefaultCapacity)

	_, err := b.GetBalance(ctx, "ghost", "USD")
	assert.ErrorIs(t, err, bank.ErrUserDoesNotExist)

	_, err = b.Deposit(ctx, "ghost", "10", "USD")
	assert.ErrorIs(t, err, bank.ErrUserDoesNotExist)

	_, err = b.Withdraw(ctx, "ghost", "10", "USD")
	assert.ErrorIs(t, err, bank.ErrUserDoesNotExist)
}

// Scenario 1: sub-cent deposit visible eventually.
func TestScenarioSubCentDeposit(t *testing.T) {
	ctx := context.Background()
	b := bank.New(bank.DefaultCapacity)
	require.NoError(t, b.CreateUser("u"))

	balance, err := b.Deposit(ctx, "u", "0.01", "USD")
	require.NoError(t, err)
	assert.Equal(t, "0.01", balance)

	balance, err = b.Deposit(ctx, "u", "0.01", "USD")
	require.NoError(t, err)
	assert.Equal(t, "0.02", balance)

	balance, err = b.GetBalance(ctx, "u", "USD")
	require.NoError(t, err)
	assert.Equal(t, "0.02", balance)
}

// Scenario 2: truncation on display, precision retained internally.
func TestScenarioTruncationRetainsPrecision(t *testing.T) {
	ctx := context.Background()
	b := bank.New(bank.DefaultCapacity)
	require.NoError(t, b.CreateUser("u"))

	balance, err := b.Deposit(ctx, "u", "10.123", "USD")
	require.NoError(t, err)
	assert.Equal(t, "10.12", balance)

	balance, err = b.Deposit(ctx, "u", "10.45678", "USD")
	require.NoError(t, err)
	assert.Equal(t, "20.57", balance)

	balance, err = b.Deposit(ctx, "u", "10.001", "USD")
	require.NoError(t, err)
	assert.Equal(t, "30.58", balance)

	balance, err = b.Deposit(ctx, "u", "10.009", "USD")
	require.NoError(t, err)
	assert.Equal(t, "40.58", balance)
}

// Scenario 3: exact full withdrawal.
func TestScenarioExactFullWithdrawal(t *testing.T) {
	ctx := context.Background()
	b := bank.New(bank.DefaultCapacity)
	require.NoError(t, b.CreateUser("u"))

	_, err := b.Deposit(ctx, "u", 100, "USD")
	require.NoError(t, err)

	balance, err := b.Withdraw(ctx, "u", 100, "USD")
	require.NoError(t, err)
	assert.Equal(t, "0.00", balance)

	balance, err = b.GetBalance(ctx, "u", "USD")
	require.NoError(t, err)
	assert.Equal(t, "0.00", balance)
}

// Scenario 4: insufficient funds leaves state unchanged.
func TestScenarioInsufficientFundsLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	b := bank.New(bank.DefaultCapacity)
	require.NoError(t, b.CreateUser("u"))

	_, err := b.Deposit(ctx, "u", 100, "USD")
	require.NoError(t, err)

	_, err = b.Withdraw(ctx, "u", "100.01", "USD")
	assert.ErrorIs(t, err, bank.ErrNotEnoughMoney)

	balance, err := b.GetBalance(ctx, "u", "USD")
	require.NoError(t, err)
	assert.Equal(t, "100.00", balance)
}

// Scenario 5: rate limit under 20-way parallel getBalance.
func TestScenarioParallelGetBalanceRateLimit(t *testing.T) {
	ctx := context.Background()
	b := bank.New(bank.DefaultCapacity)
	require.NoError(t, b.CreateUser("u"))
	_, err := b.Deposit(ctx, "u", 100, "USD")
	require.NoError(t, err)

	var wg sync.WaitGroup
	n := 20
	var ok, refused int64
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			balance, err := b.GetBalance(ctx, "u", "USD")
			if err != nil {
				assert.ErrorIs(t, err, bank.ErrTooManyRequestsToUser)
				atomic.AddInt64(&refused, 1)
				return
			}
			assert.Equal(t, "100.00", balance)
			atomic.AddInt64(&ok, 1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(n), ok+refused)
	assert.NotZero(t, refused)
	assert.LessOrEqual(t, ok, int64(bank.DefaultCapacity))
}

// Scenario 6: transfer with compensation semantics (happy path, no
// compensation triggered).
func TestScenarioTransfer(t *testing.T) {
	ctx := context.Background()
	b := bank.New(bank.DefaultCapacity)
	require.NoError(t, b.CreateUser("a"))
	require.NoError(t, b.CreateUser("b"))
	_, err := b.Deposit(ctx, "a", 100, "USD")
	require.NoError(t, err)

	fromBalance, toBalance, err := b.Send(ctx, "a", "b", 25, "USD")
	require.NoError(t, err)
	assert.Equal(t, "75.00", fromBalance)
	assert.Equal(t, "25.00", toBalance)

	balance, err := b.GetBalance(ctx, "a", "USD")
	require.NoError(t, err)
	assert.Equal(t, "75.00", balance)

	balance, err = b.GetBalance(ctx, "b", "USD")
	require.NoError(t, err)
	assert.Equal(t, "25.00", balance)
}

// Scenario 7: same-user transfer rejected without side effect.
func TestScenarioSameUserTransferRejected(t *testing.T) {
	ctx := context.Background()
	b := bank.New(bank.DefaultCapacity)
	require.NoError(t, b.CreateUser("u"))
	_, err := b.Deposit(ctx, "u", 100, "USD")
	require.NoError(t, err)

	_, _, err = b.Send(ctx, "u", "u", 10, "USD")
	assert.ErrorIs(t, err, validation.ErrWrongArguments)

	balance, err := b.GetBalance(ctx, "u", "USD")
	require.NoError(t, err)
	assert.Equal(t, "100.00", balance)
}

func TestSendRejectsUnknownSenderAndReceiver(t *testing.T) {
	ctx := context.Background()
	b := bank.New(bank.DefaultCapacity)
	require.NoError(t, b.CreateUser("a"))

	_, _, err := b.Send(ctx, "a", "ghost", 10, "USD")
	assert.ErrorIs(t, err, bank.ErrReceiverDoesNotExist)

	_, _, err = b.Send(ctx, "ghost", "a", 10, "USD")
	assert.ErrorIs(t, err, bank.ErrSenderDoesNotExist)
}

func TestSendInsufficientFunds(t *testing.T) {
	ctx := context.Background()
	b := bank.New(bank.DefaultCapacity)
	require.NoError(t, b.CreateUser("a"))
	require.NoError(t, b.CreateUser("b"))

	_, _, err := b.Send(ctx, "a", "b", 10, "USD")
	assert.ErrorIs(t, err, bank.ErrNotEnoughMoney)
}

// P7: currency isolation is case-sensitive.
func TestCurrencyIsolationIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	b := bank.New(bank.DefaultCapacity)
	require.NoError(t, b.CreateUser("u"))

	_, err := b.Deposit(ctx, "u", 10, "USD")
	require.NoError(t, err)

	balance, err := b.GetBalance(ctx, "u", "usd")
	require.NoError(t, err)
	assert.Equal(t, "0.00", balance)
}

// P6: unique creation under concurrency.
func TestConcurrentCreateUserExactlyOneSucceeds(t *testing.T) {
	b := bank.New(bank.DefaultCapacity)
	n := 30
	var wg sync.WaitGroup
	var successes int64
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if err := b.CreateUser("contested"); err == nil {
				atomic.AddInt64(&successes, 1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(1), successes)
}

func TestDepositRejectsNonPositiveAmount(t *testing.T) {
	ctx := context.Background()
	b := bank.New(bank.DefaultCapacity)
	require.NoError(t, b.CreateUser("u"))

	_, err := b.Deposit(ctx, "u", 0, "USD")
	assert.ErrorIs(t, err, validation.ErrWrongArguments)

	_, err = b.Deposit(ctx, "u", -5, "USD")
	assert.ErrorIs(t, err, validation.ErrWrongArguments)
}
