package generator

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"time"
)

type OperationType string

const (
	OpDeposit  OperationType = "deposit"
	OpWithdraw OperationType = "withdraw"
	OpTransfer OperationType = "transfer"
	OpBalance  OperationType = "balance"
)

type Scenario struct {
	Name             string                    `json:"name"`
	Description      string                    `json:"description"`
	Accounts         int                       `json:"accounts"`
	TargetOperations int64                     `json:"target_operations"`
	Operations       []Operation               `json:"operations"`
	Distribution     map[OperationType]float64 `json:"distribution"`
	Currency         string                    `json:"currency"`
	InitialBalance   float64                   `json:"initial_balance"`
	MinAmount        float64                   `json:"min_amount"`
	MaxAmount        float64                   `json:"max_amount"`
	ThinkTime        time.Duration             `json:"think_time"`
}

type Operation struct {
	Type     OperationType `json:"type"`
	Username string        `json:"username,omitempty"`
	From     string        `json:"from,omitempty"`
	To       string        `json:"to,omitempty"`
	Currency string        `json:"currency,omitempty"`
	Amount   float64       `json:"amount,omitempty"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	if err := json.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}

	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

func (s *Scenario) Validate() error {
	if s.Accounts <= 0 {
		return fmt.Errorf("accounts must be positive")
	}

	total := 0.0
	for _, weight := range s.Distribution {
		total += weight
	}

	if total < 0.99 || total > 1.01 {
		return fmt.Errorf("distribution weights must sum to 1.0")
	}

	return nil
}

func (s *Scenario) GenerateOperation(accountIDs []string) Operation {
	r := rand.Float64()
	cumulative := 0.0

	for opType, weight := range s.Distribution {
		cumulative += weight
		if r <= cumulative {
			return s.createOperation(opType, accountIDs)
		}
	}

	return s.createOperation(OpBalance, accountIDs)
}

func (s *Scenario) createOperation(opType OperationType, accountIDs []string) Operation {
	op := Operation{Type: opType, Currency: s.currency()}

	switch opType {
	case OpDeposit, OpWithdraw:
		op.Username = accountIDs[rand.Intn(len(accountIDs))]
		op.Amount = s.generateValidAmount()
	case OpTransfer:
		fromIdx := rand.Intn(len(accountIDs))
		toIdx := rand.Intn(len(accountIDs))
		for toIdx == fromIdx && len(accountIDs) > 1 {
			toIdx = rand.Intn(len(accountIDs))
		}
		op.From = accountIDs[fromIdx]
		op.To = accountIDs[toIdx]
		op.Amount = s.generateValidAmount()
	case OpBalance:
		op.Username = accountIDs[rand.Intn(len(accountIDs))]
	}

	return op
}

func (s *Scenario) currency() string {
	if s.Currency == "" {
		return "USD"
	}
	return s.Currency
}

// generateValidAmount picks a random amount, in whole cents, between
// MinAmount and MaxAmount, and returns it as a decimal dollar value. The
// API truncates to two decimals on display; it never rounds, so cent
// granularity here avoids masking that behavior with finer-grained floats.
func (s *Scenario) generateValidAmount() float64 {
	minCents := int(s.MinAmount * 100)
	maxCents := int(s.MaxAmount * 100)

	if minCents < 1 {
		minCents = 1
	}

	cents := minCents + rand.Intn(maxCents-minCents+1)

	return float64(cents) / 100
}

func DefaultScenario() *Scenario {
	return &Scenario{
		Name:        "Default Banking Load Test",
		Description: "Balanced mix of banking operations with realistic amounts",
		Accounts:    1000,
		Distribution: map[OperationType]float64{
			OpDeposit:  0.25,
			OpWithdraw: 0.25,
			OpTransfer: 0.35,
			OpBalance:  0.15,
		},
		InitialBalance: 1000.00,   // 1000.00 in dollars (100000 cents)
		MinAmount:      1.00,      // 1.00 in dollars (100 cents)
		MaxAmount:      10.00,     // 10.00 in dollars (1000 cents)
		ThinkTime:      10 * time.Millisecond,
	}
}

func HighConcurrencyScenario() *Scenario {
	return &Scenario{
		Name:        "High Concurrency Transfer Test",
		Description: "Heavy transfer load to test deadlock prevention",
		Accounts:    100,
		Distribution: map[OperationType]float64{
			OpDeposit:  0.10,
			OpWithdraw: 0.10,
			OpTransfer: 0.70,
			OpBalance:  0.10,
		},
		InitialBalance: 50000.00,
		MinAmount:      100.00,
		MaxAmount:      5000.00,
		ThinkTime:      1 * time.Millisecond,
	}
}

func ReadHeavyScenario() *Scenario {
	return &Scenario{
		Name:        "Read Heavy Load Test",
		Description: "Mostly balance checks with occasional writes",
		Accounts:    5000,
		Distribution: map[OperationType]float64{
			OpDeposit:  0.05,
			OpWithdraw: 0.05,
			OpTransfer: 0.10,
			OpBalance:  0.80,
		},
		InitialBalance: 1000.00,
		MinAmount:      50.00,
		MaxAmount:      500.00,
		ThinkTime:      5 * time.Millisecond,
	}
}