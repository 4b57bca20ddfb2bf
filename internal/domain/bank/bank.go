// Package bank is the five-operation façade described by the external
// interface: create_user, deposit, withdraw, get_balance and send. It
// wires validation, the registry lookup, and per-user gatekeeper
// admission around the account store, and is the only place domain
// errors are produced — everything above it just forwards or translates
// these sentinels.
package bank

import (
	"context"
	"errors"

	"bank-core/internal/domain/account"
	"bank-core/internal/domain/gatekeeper"
	"bank-core/internal/domain/money"
	"bank-core/internal/domain/registry"
	metrics "bank-core/internal/pkg/telemetry"
	"bank-core/internal/pkg/validation"
)

// Domain error sentinels. Every error that can cross the façade
// boundary is one of these, validation.ErrWrongArguments, or the
// caller's ctx.Err() when ctx ends before an admitted operation returns.
var (
	ErrUserAlreadyExists         = registry.ErrUserAlreadyExists
	ErrUserDoesNotExist          = registry.ErrUserDoesNotExist
	ErrNotEnoughMoney            = account.ErrNotEnoughMoney
	ErrTooManyRequestsToUser     = errors.New("bank: too many requests in flight for this user")
	ErrSenderDoesNotExist        = errors.New("bank: sender does not exist")
	ErrReceiverDoesNotExist      = errors.New("bank: receiver does not exist")
	ErrTooManyRequestsToSender   = errors.New("bank: too many requests in flight for the sender")
	ErrTooManyRequestsToReceiver = errors.New("bank: too many requests in flight for the receiver")
)

// DefaultCapacity is N from spec.md §4.3: the number of operations a
// single user's Gatekeeper admits concurrently.
const DefaultCapacity = 10

// Bank is the process-wide entry point for the five operations. The
// zero value is not usable; build one with New.
type Bank struct {
	registry *registry.Registry
}

// New returns a Bank whose users are each admitted up to capacity
// concurrent in-flight operations.
func New(capacity int) *Bank {
	return &Bank{registry: registry.New(capacity)}
}

// CreateUser registers username with a fresh, empty account. Rejects
// malformed usernames as validation.ErrWrongArguments and duplicates as
// ErrUserAlreadyExists; creation is not gated by any Gatekeeper, since
// it is not on the hot path (spec.md §4.4).
func (b *Bank) CreateUser(username string) error {
	if err := validation.Username(username); err != nil {
		return err
	}
	return b.registry.CreateUser(username)
}

// GetBalance returns currency's truncated two-decimal display for
// username. An unseen currency reads as "0.00", not an error.
func (b *Bank) GetBalance(ctx context.Context, username, currency string) (string, error) {
	if err := validation.Username(username); err != nil {
		return "", err
	}
	if err := validation.Currency(currency); err != nil {
		return "", err
	}

	entry, err := b.resolve(username)
	if err != nil {
		return "", err
	}

	balance, err := b.execute(ctx, username, entry.Gatekeeper, func() (money.Money, error) {
		return entry.Store.Balance(currency), nil
	})
	if err != nil {
		return "", translateGatekeeperErr(err, ErrTooManyRequestsToUser)
	}
	return balance.Display(), nil
}

// Deposit adds amount to username's currency balance and returns the
// new truncated display.
func (b *Bank) Deposit(ctx context.Context, username string, amountRaw interface{}, currency string) (string, error) {
	if err := validation.Username(username); err != nil {
		return "", err
	}
	if err := validation.Currency(currency); err != nil {
		return "", err
	}
	amount, err := validation.Amount(amountRaw)
	if err != nil {
		return "", err
	}

	entry, err := b.resolve(username)
	if err != nil {
		return "", err
	}

	balance, err := b.execute(ctx, username, entry.Gatekeeper, func() (money.Money, error) {
		return entry.Store.Deposit(currency, amount), nil
	})
	if err != nil {
		return "", translateGatekeeperErr(err, ErrTooManyRequestsToUser)
	}
	return balance.Display(), nil
}

// Withdraw subtracts amount from username's currency balance and
// returns the new truncated display. Refuses with ErrNotEnoughMoney,
// leaving the balance untouched, when amount exceeds it.
func (b *Bank) Withdraw(ctx context.Context, username string, amountRaw interface{}, currency string) (string, error) {
	if err := validation.Username(username); err != nil {
		return "", err
	}
	if err := validation.Currency(currency); err != nil {
		return "", err
	}
	amount, err := validation.Amount(amountRaw)
	if err != nil {
		return "", err
	}

	entry, err := b.resolve(username)
	if err != nil {
		return "", err
	}

	balance, err := b.execute(ctx, username, entry.Gatekeeper, func() (money.Money, error) {
		return entry.Store.Withdraw(currency, amount)
	})
	if err != nil {
		if errors.Is(err, account.ErrNotEnoughMoney) {
			return "", ErrNotEnoughMoney
		}
		return "", translateGatekeeperErr(err, ErrTooManyRequestsToUser)
	}
	return balance.Display(), nil
}

// Send transfers amount of currency from one user to another. from and
// to must be distinct, existing users; the receiver is resolved before
// the sender's withdraw leg is attempted. On a failure of the deposit
// leg after a successful withdraw, the withdrawn amount is compensated
// back to the sender before the error is returned — see DESIGN.md for
// the open-question resolution this implements.
func (b *Bank) Send(ctx context.Context, from, to string, amountRaw interface{}, currency string) (fromBalance, toBalance string, err error) {
	if err := validation.Username(from); err != nil {
		return "", "", err
	}
	if err := validation.Username(to); err != nil {
		return "", "", err
	}
	if err := validation.Currency(currency); err != nil {
		return "", "", err
	}
	if err := validation.DistinctUsers(from, to); err != nil {
		return "", "", err
	}
	amount, err := validation.Amount(amountRaw)
	if err != nil {
		return "", "", err
	}

	receiver, err := b.resolve(to)
	if err != nil {
		return "", "", ErrReceiverDoesNotExist
	}

	sender, err := b.resolve(from)
	if err != nil {
		return "", "", ErrSenderDoesNotExist
	}

	senderBalance, err := b.execute(ctx, from, sender.Gatekeeper, func() (money.Money, error) {
		return sender.Store.Withdraw(currency, amount)
	})
	if err != nil {
		if errors.Is(err, account.ErrNotEnoughMoney) {
			return "", "", ErrNotEnoughMoney
		}
		return "", "", translateGatekeeperErr(err, ErrTooManyRequestsToSender)
	}

	receiverBalance, err := b.execute(ctx, to, receiver.Gatekeeper, func() (money.Money, error) {
		return receiver.Store.Deposit(currency, amount), nil
	})
	if err != nil {
		b.compensate(from, sender, currency, amount)
		if errors.Is(err, registry.ErrUserDoesNotExist) {
			return "", "", ErrReceiverDoesNotExist
		}
		return "", "", translateGatekeeperErr(err, ErrTooManyRequestsToReceiver)
	}

	return senderBalance.Display(), receiverBalance.Display(), nil
}

// compensate re-credits amount to the sender after a failed deposit
// leg. It is attempted once, through the sender's own Gatekeeper, and
// its outcome is neither surfaced to the caller nor retried: the
// receiver-leg error that triggered it is what the caller sees
// regardless of whether this succeeds.
func (b *Bank) compensate(username string, sender *registry.Entry, currency string, amount money.Money) {
	_, _ = b.execute(context.Background(), username, sender.Gatekeeper, func() (money.Money, error) {
		return sender.Store.Deposit(currency, amount), nil
	})
}

// execute runs op through g's admission gate, sampling the user's
// in-flight ratio immediately after every call, whether admitted or
// refused, so saturation pressure shows up before it turns into
// refusals.
func (b *Bank) execute(ctx context.Context, username string, g *gatekeeper.Gatekeeper, op func() (money.Money, error)) (money.Money, error) {
	val, err := gatekeeper.Execute(ctx, g, op)
	metrics.RecordGatekeeperInFlight(username, g.InFlight(), g.Capacity())
	return val, err
}

func (b *Bank) resolve(username string) (*registry.Entry, error) {
	entry, err := b.registry.Resolve(username)
	if err != nil {
		return nil, ErrUserDoesNotExist
	}
	return entry, nil
}

func translateGatekeeperErr(err error, tooMany error) error {
	if errors.Is(err, gatekeeper.ErrTooManyRequests) {
		return tooMany
	}
	return err
}
