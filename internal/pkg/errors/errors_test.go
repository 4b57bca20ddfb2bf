package errors_test

import (
	"net/http"
	"testing"

	apierrors "bank-core/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
)

func TestErrorConstructorsCarryExpectedCodeAndStatus(t *testing.T) {
	cases := []struct {
		name    string
		build   func() apierrors.APIError
		code    string
		status  int
	}{
		{"wrong arguments", apierrors.NewWrongArgumentsError, apierrors.CodeWrongArguments, http.StatusBadRequest},
		{"user already exists", apierrors.NewUserAlreadyExistsError, apierrors.CodeUserAlreadyExists, http.StatusConflict},
		{"user does not exist", apierrors.NewUserDoesNotExistError, apierrors.CodeUserDoesNotExist, http.StatusNotFound},
		{"too many requests to user", apierrors.NewTooManyRequestsToUserError, apierrors.CodeTooManyRequestsToUser, http.StatusTooManyRequests},
		{"not enough money", apierrors.NewNotEnoughMoneyError, apierrors.CodeNotEnoughMoney, http.StatusBadRequest},
		{"sender does not exist", apierrors.NewSenderDoesNotExistError, apierrors.CodeSenderDoesNotExist, http.StatusNotFound},
		{"receiver does not exist", apierrors.NewReceiverDoesNotExistError, apierrors.CodeReceiverDoesNotExist, http.StatusNotFound},
		{"too many requests to sender", apierrors.NewTooManyRequestsToSenderError, apierrors.CodeTooManyRequestsToSender, http.StatusTooManyRequests},
		{"too many requests to receiver", apierrors.NewTooManyRequestsToReceiverError, apierrors.CodeTooManyRequestsToReceiver, http.StatusTooManyRequests},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.build()
			assert.Equal(t, tc.code, err.Code)
			assert.Equal(t, tc.status, err.Status)
			assert.NotEmpty(t, err.Error())
		})
	}
}

func TestNewInternalErrorCarriesCustomMessage(t *testing.T) {
	err := apierrors.NewInternalError("unexpected error")
	assert.Equal(t, apierrors.CodeInternal, err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.Equal(t, "unexpected error", err.Error())
}
