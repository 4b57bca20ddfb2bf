package gatekeeper_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"bank-core/internal/domain/gatekeeper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteRunsOp(t *testing.T) {
	g := gatekeeper.New(10)
	got, err := gatekeeper.Execute(context.Background(), g, func() (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestExecutePropagatesOpError(t *testing.T) {
	g := gatekeeper.New(10)
	boom := assert.AnError
	_, err := gatekeeper.Execute(context.Background(), g, func() (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestExecuteRefusesAtCapacity(t *testing.T) {
	g := gatekeeper.New(2)
	release := make(chan struct{})
	started := make(chan struct{}, 2)

	var wg sync.WaitGroup
	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func() {
			defer wg.Done()
			_, _ = gatekeeper.Execute(context.Background(), g, func() (int, error) {
				started <- struct{}{}
				<-release
				return 0, nil
			})
		}()
	}

	<-started
	<-started

	_, err := gatekeeper.Execute(context.Background(), g, func() (int, error) {
		return 1, nil
	})
	assert.ErrorIs(t, err, gatekeeper.ErrTooManyRequests)

	close(release)
	wg.Wait()
}

func TestAdmissionNeverExceedsCapacityUnderConcurrency(t *testing.T) {
	capacity := 10
	g := gatekeeper.New(capacity)

	var current int64
	var maxObserved int64
	var admitted int64
	var refused int64

	var wg sync.WaitGroup
	n := 200
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := gatekeeper.Execute(context.Background(), g, func() (int, error) {
				c := atomic.AddInt64(&current, 1)
				for {
					m := atomic.LoadInt64(&maxObserved)
					if c <= m || atomic.CompareAndSwapInt64(&maxObserved, m, c) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt64(&current, -1)
				return 0, nil
			})
			if err != nil {
				atomic.AddInt64(&refused, 1)
			} else {
				atomic.AddInt64(&admitted, 1)
			}
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt64(&maxObserved), int64(capacity))
	assert.Equal(t, int64(n), admitted+refused)
}

func TestExecuteReturnsOnContextCancelButOpStillRuns(t *testing.T) {
	g := gatekeeper.New(10)
	ctx, cancel := context.WithCancel(context.Background())

	opFinished := make(chan struct{})
	opStarted := make(chan struct{})
	execErr := make(chan error, 1)

	go func() {
		_, err := gatekeeper.Execute(ctx, g, func() (int, error) {
			close(opStarted)
			time.Sleep(50 * time.Millisecond)
			close(opFinished)
			return 1, nil
		})
		execErr <- err
	}()

	<-opStarted
	cancel()

	select {
	case err := <-execErr:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Execute did not return after cancellation")
	}

	select {
	case <-opFinished:
		t.Fatal("op finished before Execute returned on cancellation")
	default:
	}

	select {
	case <-opFinished:
	case <-time.After(time.Second):
		t.Fatal("op never finished despite caller cancellation")
	}
}

func TestReleasedSlotIsReusable(t *testing.T) {
	g := gatekeeper.New(1)
	_, err := gatekeeper.Execute(context.Background(), g, func() (int, error) {
		return 1, nil
	})
	require.NoError(t, err)

	_, err = gatekeeper.Execute(context.Background(), g, func() (int, error) {
		return 2, nil
	})
	require.NoError(t, err)
}

func TestInFlightReflectsCapacity(t *testing.T) {
	g := gatekeeper.New(5)
	assert.Equal(t, 5, g.Capacity())
	assert.Equal(t, 0, g.InFlight())
}
