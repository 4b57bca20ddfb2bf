// Package account holds the per-user ledger: a set of per-currency
// balances guarded by a single mutex, atomically mutated by deposit and
// withdraw.
package account

import (
	"errors"
	"sync"
	"time"

	"bank-core/internal/domain/money"
)

// ErrNotEnoughMoney is returned by Withdraw when the requested amount
// exceeds the current balance for that currency.
var ErrNotEnoughMoney = errors.New("account: not enough money")

// Store is one user's balances, one per currency. The zero value is not
// usable; build one with New.
type Store struct {
	mu        sync.Mutex
	balances  map[string]money.Money
	createdAt time.Time
}

// New returns an empty Store with no balances recorded for any currency.
func New() *Store {
	return &Store{
		balances:  make(map[string]money.Money),
		createdAt: time.Now(),
	}
}

func (s *Store) withLock(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// Balance returns the current balance for currency. An unseen currency
// reads as money.Zero, not an error — balances only exist once touched.
func (s *Store) Balance(currency string) money.Money {
	var balance money.Money
	s.withLock(func() {
		balance = s.balances[currency]
	})
	return balance
}

// Deposit adds amount to the balance for currency and returns the new
// balance. amount must already be validated non-negative by the caller.
func (s *Store) Deposit(currency string, amount money.Money) money.Money {
	var balance money.Money
	s.withLock(func() {
		balance = s.balances[currency].Add(amount)
		s.balances[currency] = balance
	})
	return balance
}

// Withdraw subtracts amount from the balance for currency and returns
// the new balance. It refuses — leaving the balance untouched — when
// amount exceeds the current balance.
func (s *Store) Withdraw(currency string, amount money.Money) (money.Money, error) {
	var balance money.Money
	var err error
	s.withLock(func() {
		current := s.balances[currency]
		if !current.GTE(amount) {
			err = ErrNotEnoughMoney
			return
		}
		balance = current.Sub(amount)
		s.balances[currency] = balance
	})
	if err != nil {
		return money.Money{}, err
	}
	return balance, nil
}

// CreatedAt reports when this Store was created.
func (s *Store) CreatedAt() time.Time {
	return s.createdAt
}
