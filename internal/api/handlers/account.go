package handlers

import (
	"errors"
	"net/http"
	"time"

	"bank-core/internal/api/middleware"
	"bank-core/internal/domain/bank"
	"bank-core/internal/infrastructure/events"
	"bank-core/internal/infrastructure/messaging"
	apierrors "bank-core/internal/pkg/errors"
	"bank-core/internal/pkg/logging"
	"bank-core/internal/pkg/validation"

	"github.com/gin-gonic/gin"
)

// MakeCreateUserHandler returns the POST /users handler.
func MakeCreateUserHandler(container HandlerDependencies) gin.HandlerFunc {
	b := container.GetBank()
	publisher := container.GetEventPublisher()

	return func(c *gin.Context) {
		var req struct {
			Username string `json:"username"`
		}

		if err := c.ShouldBindJSON(&req); err != nil {
			writeValidationError(c)
			return
		}

		if err := b.CreateUser(req.Username); err != nil {
			writeBankError(c, err)
			return
		}

		now := time.Now()

		events.GetBroker().Publish(events.BankEvent{
			Kind:      events.KindUserCreated,
			Username:  req.Username,
			Timestamp: now,
		})

		if err := publisher.PublishUserCreated(messaging.UserCreatedEvent{
			Username:  req.Username,
			Timestamp: now,
		}); err != nil {
			logging.Warn("failed to publish user created event", map[string]interface{}{
				"username": req.Username,
				"error":    err.Error(),
			})
		}

		c.JSON(http.StatusCreated, gin.H{"username": req.Username})
	}
}

// MakeGetBalanceHandler returns the GET /users/:username/balance handler.
func MakeGetBalanceHandler(container HandlerDependencies) gin.HandlerFunc {
	b := container.GetBank()

	return func(c *gin.Context) {
		username := c.Param("username")
		currency := c.Query("currency")

		balance, err := b.GetBalance(c.Request.Context(), username, currency)
		if err != nil {
			writeBankError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"username": username,
			"currency": currency,
			"balance":  balance,
		})
	}
}

// writeValidationError writes the standard wrong_arguments envelope for
// requests that fail to even bind to JSON.
func writeValidationError(c *gin.Context) {
	apiErr := apierrors.NewWrongArgumentsError()
	if reqCtx, ok := middleware.GetRequestContext(c); ok {
		reqCtx.Logger.Warn("malformed request body", map[string]interface{}{"path": c.Request.URL.Path})
	}
	c.JSON(apiErr.Status, apiErr)
}

// writeBankError translates a bank façade error into its HTTP envelope.
func writeBankError(c *gin.Context, err error) {
	apiErr := translateBankError(err)
	if reqCtx, ok := middleware.GetRequestContext(c); ok {
		reqCtx.Logger.Warn("operation rejected", map[string]interface{}{
			"code": apiErr.Code,
			"path": c.Request.URL.Path,
		})
	}
	c.JSON(apiErr.Status, apiErr)
}

func translateBankError(err error) apierrors.APIError {
	switch {
	case errors.Is(err, validation.ErrWrongArguments):
		return apierrors.NewWrongArgumentsError()
	case errors.Is(err, bank.ErrUserAlreadyExists):
		return apierrors.NewUserAlreadyExistsError()
	case errors.Is(err, bank.ErrUserDoesNotExist):
		return apierrors.NewUserDoesNotExistError()
	case errors.Is(err, bank.ErrTooManyRequestsToUser):
		return apierrors.NewTooManyRequestsToUserError()
	case errors.Is(err, bank.ErrNotEnoughMoney):
		return apierrors.NewNotEnoughMoneyError()
	case errors.Is(err, bank.ErrSenderDoesNotExist):
		return apierrors.NewSenderDoesNotExistError()
	case errors.Is(err, bank.ErrReceiverDoesNotExist):
		return apierrors.NewReceiverDoesNotExistError()
	case errors.Is(err, bank.ErrTooManyRequestsToSender):
		return apierrors.NewTooManyRequestsToSenderError()
	case errors.Is(err, bank.ErrTooManyRequestsToReceiver):
		return apierrors.NewTooManyRequestsToReceiverError()
	default:
		return apierrors.NewInternalError("unexpected error")
	}
}
