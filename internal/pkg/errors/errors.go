// Package errors translates the domain's sentinel errors into the HTTP
// envelope returned at the API boundary. Every domain error is mapped
// exactly once, here, and nowhere else.
package errors

import "net/http"

// APIError is the HTTP-facing error envelope. Code carries the spec's
// literal machine-readable error kind so API consumers can switch on it
// without parsing Message.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e APIError) Error() string {
	return e.Message
}

// Error kind codes, one per spec.md §7 taxonomy entry plus the
// composite translations send produces.
const (
	CodeWrongArguments            = "wrong_arguments"
	CodeUserAlreadyExists         = "user_already_exists"
	CodeUserDoesNotExist          = "user_does_not_exist"
	CodeTooManyRequestsToUser     = "too_many_requests_to_user"
	CodeNotEnoughMoney            = "not_enough_money"
	CodeSenderDoesNotExist        = "sender_does_not_exist"
	CodeReceiverDoesNotExist      = "receiver_does_not_exist"
	CodeTooManyRequestsToSender   = "too_many_requests_to_sender"
	CodeTooManyRequestsToReceiver = "too_many_requests_to_receiver"
	CodeInternal                  = "internal_error"
)

func NewWrongArgumentsError() APIError {
	return APIError{Code: CodeWrongArguments, Message: "request arguments failed validation", Status: http.StatusBadRequest}
}

func NewUserAlreadyExistsError() APIError {
	return APIError{Code: CodeUserAlreadyExists, Message: "user already exists", Status: http.StatusConflict}
}

func NewUserDoesNotExistError() APIError {
	return APIError{Code: CodeUserDoesNotExist, Message: "user does not exist", Status: http.StatusNotFound}
}

func NewTooManyRequestsToUserError() APIError {
	return APIError{Code: CodeTooManyRequestsToUser, Message: "too many requests in flight for this user", Status: http.StatusTooManyRequests}
}

func NewNotEnoughMoneyError() APIError {
	return APIError{Code: CodeNotEnoughMoney, Message: "not enough money for this operation", Status: http.StatusBadRequest}
}

func NewSenderDoesNotExistError() APIError {
	return APIError{Code: CodeSenderDoesNotExist, Message: "sender does not exist", Status: http.StatusNotFound}
}

func NewReceiverDoesNotExistError() APIError {
	return APIError{Code: CodeReceiverDoesNotExist, Message: "receiver does not exist", Status: http.StatusNotFound}
}

func NewTooManyRequestsToSenderError() APIError {
	return APIError{Code: CodeTooManyRequestsToSender, Message: "too many requests in flight for the sender", Status: http.StatusTooManyRequests}
}

func NewTooManyRequestsToReceiverError() APIError {
	return APIError{Code: CodeTooManyRequestsToReceiver, Message: "too many requests in flight for the receiver", Status: http.StatusTooManyRequests}
}

func NewInternalError(message string) APIError {
	return APIError{Code: CodeInternal, Message: message, Status: http.StatusInternalServerError}
}
