package messaging_test

import (
	"sync"
	"testing"

	"bank-core/internal/infrastructure/messaging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventCaptureRecordsEachEventKind(t *testing.T) {
	c := messaging.NewEventCapture()

	require.NoError(t, c.PublishUserCreated(messaging.UserCreatedEvent{Username: "alice"}))
	require.NoError(t, c.PublishDeposited(messaging.DepositedEvent{Username: "alice", Currency: "USD", Amount: "10.00"}))
	require.NoError(t, c.PublishWithdrawn(messaging.WithdrawnEvent{Username: "alice", Currency: "USD", Amount: "5.00"}))
	require.NoError(t, c.PublishTransferCompleted(messaging.TransferCompletedEvent{From: "alice", To: "bob", Currency: "USD", Amount: "1.00"}))
	require.NoError(t, c.PublishOperationFailed(messaging.OperationFailedEvent{Operation: "withdraw", Username: "alice", Reason: "not_enough_money"}))

	assert.Len(t, c.GetUserCreatedEvents(), 1)
	assert.Len(t, c.GetDepositedEvents(), 1)
	assert.Len(t, c.GetWithdrawnEvents(), 1)
	assert.Len(t, c.GetTransferCompletedEvents(), 1)
	assert.Len(t, c.GetOperationFailedEvents(), 1)
	assert.Equal(t, 5, c.GetEventCount())
}

func TestEventCaptureResetClearsAllSlices(t *testing.T) {
	c := messaging.NewEventCapture()
	require.NoError(t, c.PublishUserCreated(messaging.UserCreatedEvent{Username: "alice"}))

	c.Reset()

	assert.Equal(t, 0, c.GetEventCount())
	assert.Empty(t, c.GetUserCreatedEvents())
}

func TestEventCaptureIsSafeForConcurrentPublish(t *testing.T) {
	c := messaging.NewEventCapture()
	n := 100
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_ = c.PublishDeposited(messaging.DepositedEvent{Username: "alice", Currency: "USD", Amount: "1.00"})
		}()
	}
	wg.Wait()

	assert.Equal(t, n, c.GetEventCount())
}

func TestNoOpEventPublisherNeverFails(t *testing.T) {
	p := messaging.NewNoOpEventPublisher()

	assert.NoError(t, p.PublishUserCreated(messaging.UserCreatedEvent{Username: "alice"}))
	assert.NoError(t, p.PublishDeposited(messaging.DepositedEvent{}))
	assert.NoError(t, p.PublishWithdrawn(messaging.WithdrawnEvent{}))
	assert.NoError(t, p.PublishTransferCompleted(messaging.TransferCompletedEvent{}))
	assert.NoError(t, p.PublishOperationFailed(messaging.OperationFailedEvent{}))
	assert.True(t, p.IsHealthy())
	assert.NoError(t, p.Close())
}
