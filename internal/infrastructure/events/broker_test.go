package events_test

import (
	"sync"
	"testing"
	"time"

	"bank-core/internal/infrastructure/events"

	"github.com/stretchr/testify/assert"
)

func TestEventBrokerSingleton(t *testing.T) {
	broker1 := events.GetBroker()
	broker2 := events.GetBroker()

	assert.Same(t, broker1, broker2, "event broker should be singleton")
}

func TestConcurrentEventBrokerAccess(t *testing.T) {
	const numGoroutines = 100
	var wg sync.WaitGroup

	brokerInstances := make([]*events.Broker, numGoroutines)

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		i := i
		go func() {
			defer wg.Done()
			brokerInstances[i] = events.GetBroker()
		}()
	}
	wg.Wait()

	first := brokerInstances[0]
	for i := 1; i < numGoroutines; i++ {
		assert.Same(t, first, brokerInstances[i])
	}
}

func TestPublishReachesSubscriber(t *testing.T) {
	b := events.NewBroker()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	go b.Publish(events.BankEvent{
		Kind:     events.KindDeposited,
		Username: "alice",
		Currency: "USD",
		Amount:   "10.00",
		Balance:  "10.00",
	})

	select {
	case got := <-ch:
		assert.Equal(t, events.KindDeposited, got.Kind)
		assert.Equal(t, "alice", got.Username)
	case <-time.After(time.Second):
		t.Fatal("subscriber never received the published event")
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	b := events.NewBroker()
	ch := b.Subscribe()
	b.Unsubscribe(ch)

	select {
	case _, open := <-ch:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("unsubscribed channel was never closed")
	}
}
