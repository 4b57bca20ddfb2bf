package messaging

import "sync"

// EventCapture is an in-memory event publisher for testing. It captures
// all published events and allows verification in tests.
type EventCapture struct {
	userCreated       []UserCreatedEvent
	deposited         []DepositedEvent
	withdrawn         []WithdrawnEvent
	transferCompleted []TransferCompletedEvent
	operationFailed   []OperationFailedEvent
	mu                sync.RWMutex
}

// NewEventCapture creates a new event capture publisher
func NewEventCapture() *EventCapture {
	return &EventCapture{
		userCreated:       make([]UserCreatedEvent, 0),
		deposited:         make([]DepositedEvent, 0),
		withdrawn:         make([]WithdrawnEvent, 0),
		transferCompleted: make([]TransferCompletedEvent, 0),
		operationFailed:   make([]OperationFailedEvent, 0),
	}
}

func (e *EventCapture) PublishUserCreated(event UserCreatedEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.userCreated = append(e.userCreated, event)
	return nil
}

func (e *EventCapture) PublishDeposited(event DepositedEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.deposited = append(e.deposited, event)
	return nil
}

func (e *EventCapture) PublishWithdrawn(event WithdrawnEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.withdrawn = append(e.withdrawn, event)
	return nil
}

func (e *EventCapture) PublishTransferCompleted(event TransferCompletedEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.transferCompleted = append(e.transferCompleted, event)
	return nil
}

func (e *EventCapture) PublishOperationFailed(event OperationFailedEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.operationFailed = append(e.operationFailed, event)
	return nil
}

// Close is a no-op for event capture
func (e *EventCapture) Close() error {
	return nil
}

// IsHealthy always returns true for event capture
func (e *EventCapture) IsHealthy() bool {
	return true
}

// GetUserCreatedEvents returns all captured user created events
func (e *EventCapture) GetUserCreatedEvents() []UserCreatedEvent {
	e.mu.RLock()
	defer e.mu.RUnlock()
	events := make([]UserCreatedEvent, len(e.userCreated))
	copy(events, e.userCreated)
	return events
}

// GetDepositedEvents returns all captured deposit events
func (e *EventCapture) GetDepositedEvents() []DepositedEvent {
	e.mu.RLock()
	defer e.mu.RUnlock()
	events := make([]DepositedEvent, len(e.deposited))
	copy(events, e.deposited)
	return events
}

// GetWithdrawnEvents returns all captured withdrawal events
func (e *EventCapture) GetWithdrawnEvents() []WithdrawnEvent {
	e.mu.RLock()
	defer e.mu.RUnlock()
	events := make([]WithdrawnEvent, len(e.withdrawn))
	copy(events, e.withdrawn)
	return events
}

// GetTransferCompletedEvents returns all captured transfer completed events
func (e *EventCapture) GetTransferCompletedEvents() []TransferCompletedEvent {
	e.mu.RLock()
	defer e.mu.RUnlock()
	events := make([]TransferCompletedEvent, len(e.transferCompleted))
	copy(events, e.transferCompleted)
	return events
}

// GetOperationFailedEvents returns all captured failed-operation events
func (e *EventCapture) GetOperationFailedEvents() []OperationFailedEvent {
	e.mu.RLock()
	defer e.mu.RUnlock()
	events := make([]OperationFailedEvent, len(e.operationFailed))
	copy(events, e.operationFailed)
	return events
}

// Reset clears all captured events (useful between tests)
func (e *EventCapture) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.userCreated = make([]UserCreatedEvent, 0)
	e.deposited = make([]DepositedEvent, 0)
	e.withdrawn = make([]WithdrawnEvent, 0)
	e.transferCompleted = make([]TransferCompletedEvent, 0)
	e.operationFailed = make([]OperationFailedEvent, 0)
}

// GetEventCount returns the total number of events captured
func (e *EventCapture) GetEventCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.userCreated) + len(e.deposited) + len(e.withdrawn) +
		len(e.transferCompleted) + len(e.operationFailed)
}
