// Package events implements the live transaction feed: a singleton
// pub/sub Broker that every completed banking operation publishes a
// BankEvent to, and that SSE clients subscribe to.
package events

import (
	"sync"
	"time"
)

// BankEvent is one completed operation, broadcast to every subscriber.
// It is purely observational — nothing downstream of the Broker is
// allowed to become a second source of truth for balances.
type BankEvent struct {
	Kind         string    `json:"kind"`
	RequestID    string    `json:"request_id,omitempty"`
	Username     string    `json:"username"`
	Counterparty string    `json:"counterparty,omitempty"`
	Currency     string    `json:"currency,omitempty"`
	Amount       string    `json:"amount,omitempty"`
	Balance      string    `json:"balance,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// Event kinds published by the bank façade.
const (
	KindUserCreated       = "user_created"
	KindDeposited         = "deposited"
	KindWithdrawn         = "withdrawn"
	KindTransferCompleted = "transfer_completed"
)

// Broker manages client subscriptions and broadcasts BankEvents.
type Broker struct {
	clients       map[chan BankEvent]bool
	newClients    chan chan BankEvent
	closedClients chan chan BankEvent
	events        chan BankEvent
}

var (
	// BrokerInstance is the global event broker (singleton).
	BrokerInstance *Broker
	brokerOnce     sync.Once
)

// GetBroker returns the singleton event broker instance.
// Uses sync.Once to ensure it's only initialized once.
func GetBroker() *Broker {
	brokerOnce.Do(func() {
		BrokerInstance = NewBroker()
	})
	return BrokerInstance
}

// NewBroker creates and starts a new Broker.
// This is public for testing purposes but production code should use GetBroker().
func NewBroker() *Broker {
	b := &Broker{
		clients:       make(map[chan BankEvent]bool),
		newClients:    make(chan chan BankEvent),
		closedClients: make(chan chan BankEvent),
		events:        make(chan BankEvent),
	}

	go b.start()
	return b
}

func (b *Broker) start() {
	for {
		select {
		case client := <-b.newClients:
			b.clients[client] = true
		case client := <-b.closedClients:
			delete(b.clients, client)
			close(client)
		case event := <-b.events:
			for client := range b.clients {
				client <- event
			}
		}
	}
}

// Subscribe registers a new listener and returns its channel.
func (b *Broker) Subscribe() chan BankEvent {
	ch := make(chan BankEvent)
	b.newClients <- ch
	return ch
}

// Unsubscribe removes a listener.
func (b *Broker) Unsubscribe(ch chan BankEvent) {
	b.closedClients <- ch
}

// Publish sends the given event to all connected clients.
func (b *Broker) Publish(event BankEvent) {
	b.events <- event
}
