package handlers

import (
	"bank-core/internal/domain/bank"
	"bank-core/internal/infrastructure/messaging"
)

// HandlerDependencies is the interface handlers depend on, breaking the
// circular dependency between handlers and the components package.
type HandlerDependencies interface {
	GetBank() *bank.Bank
	GetEventPublisher() messaging.EventPublisher
}
