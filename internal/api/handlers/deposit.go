package handlers

import (
	"net/http"
	"time"

	"bank-core/internal/infrastructure/events"
	"bank-core/internal/infrastructure/messaging"
	"bank-core/internal/pkg/logging"
	metrics "bank-core/internal/pkg/telemetry"

	"github.com/gin-gonic/gin"
)

// MakeDepositHandler returns the POST /users/:username/deposit handler.
func MakeDepositHandler(container HandlerDependencies) gin.HandlerFunc {
	b := container.GetBank()
	publisher := container.GetEventPublisher()

	return func(c *gin.Context) {
		username := c.Param("username")

		var req struct {
			Currency string      `json:"currency"`
			Amount   interface{} `json:"amount"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			writeValidationError(c)
			return
		}

		balance, err := b.Deposit(c.Request.Context(), username, req.Amount, req.Currency)
		if err != nil {
			metrics.RecordBankingOperation("deposit", "error")
			writeBankError(c, err)
			return
		}

		metrics.RecordBankingOperation("deposit", "success")
		if f, parseErr := parseDisplayAmount(balance); parseErr == nil {
			metrics.RecordAccountBalance(f)
		}

		now := time.Now()
		amountDisplay := displayAmount(req.Amount)

		events.GetBroker().Publish(events.BankEvent{
			Kind:      events.KindDeposited,
			Username:  username,
			Currency:  req.Currency,
			Amount:    amountDisplay,
			Balance:   balance,
			Timestamp: now,
		})

		if err := publisher.PublishDeposited(messaging.DepositedEvent{
			Username:     username,
			Currency:     req.Currency,
			Amount:       amountDisplay,
			BalanceAfter: balance,
			Timestamp:    now,
		}); err != nil {
			logging.Warn("failed to publish deposited event", map[string]interface{}{
				"username": username,
				"error":    err.Error(),
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"username": username,
			"currency": req.Currency,
			"balance":  balance,
		})
	}
}
