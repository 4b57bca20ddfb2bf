package messaging

import (
	"fmt"

	"bank-core/internal/infrastructure/messaging/kafka"
)

// EventPublisher defines the interface for publishing banking notification
// events. None of these calls are on the critical path of an operation's
// correctness — a publish failure is logged, never returned to the caller
// that already committed the balance change.
type EventPublisher interface {
	PublishUserCreated(event UserCreatedEvent) error
	PublishDeposited(event DepositedEvent) error
	PublishWithdrawn(event WithdrawnEvent) error
	PublishTransferCompleted(event TransferCompletedEvent) error
	PublishOperationFailed(event OperationFailedEvent) error
	Close() error
	IsHealthy() bool
}

// KafkaEventPublisher implements EventPublisher using Kafka
type KafkaEventPublisher struct {
	producer *kafka.Producer
}

// NewKafkaEventPublisher creates a new Kafka event publisher
func NewKafkaEventPublisher(config *kafka.Config) (*KafkaEventPublisher, error) {
	producer, err := kafka.NewProducer(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return &KafkaEventPublisher{
		producer: producer,
	}, nil
}

// PublishUserCreated publishes a user created event
func (p *KafkaEventPublisher) PublishUserCreated(event UserCreatedEvent) error {
	return p.producer.PublishEvent(kafka.TopicUserCreated, event.Username, event)
}

// PublishDeposited publishes a deposit completed event
func (p *KafkaEventPublisher) PublishDeposited(event DepositedEvent) error {
	return p.producer.PublishEvent(kafka.TopicTransactionDeposit, event.Username, event)
}

// PublishWithdrawn publishes a withdrawal completed event
func (p *KafkaEventPublisher) PublishWithdrawn(event WithdrawnEvent) error {
	return p.producer.PublishEvent(kafka.TopicTransactionWithdrawal, event.Username, event)
}

// PublishTransferCompleted publishes a transfer completed event
func (p *KafkaEventPublisher) PublishTransferCompleted(event TransferCompletedEvent) error {
	key := fmt.Sprintf("%s-%s", event.From, event.To)
	return p.producer.PublishEvent(kafka.TopicTransactionTransfer, key, event)
}

// PublishOperationFailed publishes a failed-operation audit event
func (p *KafkaEventPublisher) PublishOperationFailed(event OperationFailedEvent) error {
	key := event.Operation
	if event.Username != "" {
		key = event.Username
	}
	return p.producer.PublishEvent(kafka.TopicOperationFailed, key, event)
}

// Close closes the Kafka producer
func (p *KafkaEventPublisher) Close() error {
	return p.producer.Close()
}

// IsHealthy checks if the publisher is healthy
func (p *KafkaEventPublisher) IsHealthy() bool {
	return p.producer.IsHealthy()
}

// NoOpEventPublisher is a no-op implementation, used when Kafka is disabled or unreachable and in tests
type NoOpEventPublisher struct{}

// NewNoOpEventPublisher creates a no-op event publisher
func NewNoOpEventPublisher() *NoOpEventPublisher {
	return &NoOpEventPublisher{}
}

func (p *NoOpEventPublisher) PublishUserCreated(event UserCreatedEvent) error           { return nil }
func (p *NoOpEventPublisher) PublishDeposited(event DepositedEvent) error               { return nil }
func (p *NoOpEventPublisher) PublishWithdrawn(event WithdrawnEvent) error               { return nil }
func (p *NoOpEventPublisher) PublishTransferCompleted(event TransferCompletedEvent) error {
	return nil
}
func (p *NoOpEventPublisher) PublishOperationFailed(event OperationFailedEvent) error { return nil }
func (p *NoOpEventPublisher) Close() error                                           { return nil }
func (p *NoOpEventPublisher) IsHealthy() bool                                        { return true }
