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

// MakeTransferHandler returns the POST /transfers handler for send.
func MakeTransferHandler(container HandlerDependencies) gin.HandlerFunc {
	b := container.GetBank()
	publisher := container.GetEventPublisher()

	return func(c *gin.Context) {
		var req struct {
			From     string      `json:"from"`
			To       string      `json:"to"`
			Currency string      `json:"currency"`
			Amount   interface{} `json:"amount"`
		}

		if err := c.ShouldBindJSON(&req); err != nil {
			writeValidationError(c)
			return
		}

		fromBalance, toBalance, err := b.Send(c.Request.Context(), req.From, req.To, req.Amount, req.Currency)
		if err != nil {
			metrics.RecordBankingOperation("send", "error")
			writeBankError(c, err)
			return
		}

		metrics.RecordBankingOperation("send", "success")
		amountDisplay := displayAmount(req.Amount)
		if f, parseErr := parseDisplayAmount(amountDisplay); parseErr == nil {
			metrics.RecordTransferAmount(f)
		}
		if f, parseErr := parseDisplayAmount(fromBalance); parseErr == nil {
			metrics.RecordAccountBalance(f)
		}
		if f, parseErr := parseDisplayAmount(toBalance); parseErr == nil {
			metrics.RecordAccountBalance(f)
		}

		now := time.Now()

		events.GetBroker().Publish(events.BankEvent{
			Kind:         events.KindTransferCompleted,
			Username:     req.From,
			Counterparty: req.To,
			Currency:     req.Currency,
			Amount:       amountDisplay,
			Balance:      fromBalance,
			Timestamp:    now,
		})

		if err := publisher.PublishTransferCompleted(messaging.TransferCompletedEvent{
			From:             req.From,
			To:               req.To,
			Currency:         req.Currency,
			Amount:           amountDisplay,
			FromBalanceAfter: fromBalance,
			ToBalanceAfter:   toBalance,
			Timestamp:        now,
		}); err != nil {
			logging.Warn("failed to publish transfer completed event", map[string]interface{}{
				"from":  req.From,
				"to":    req.To,
				"error": err.Error(),
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"from":         req.From,
			"to":           req.To,
			"currency":     req.Currency,
			"from_balance": fromBalance,
			"to_balance":   toBalance,
		})
	}
}
