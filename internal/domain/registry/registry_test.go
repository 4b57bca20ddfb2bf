package registry_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"bank-core/internal/domain/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserThenResolve(t *testing.T) {
	r := registry.New(10)
	require.NoError(t, r.CreateUser("alice"))

	entry, err := r.Resolve("alice")
	require.NoError(t, err)
	require.NotNil(t, entry.Store)
	require.NotNil(t, entry.Gatekeeper)
}

func TestResolveUnknownUser(t *testing.T) {
	r := registry.New(10)
	_, err := r.Resolve("ghost")
	assert.ErrorIs(t, err, registry.ErrUserDoesNotExist)
}

func TestCreateUserRejectsDuplicate(t *testing.T) {
	r := registry.New(10)
	require.NoError(t, r.CreateUser("alice"))
	err := r.CreateUser("alice")
	assert.ErrorIs(t, err, registry.ErrUserAlreadyExists)
}

func TestConcurrentCreateUserExactlyOneWins(t *testing.T) {
	r := registry.New(10)
	n := 50
	var wg sync.WaitGroup
	var successes int64
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if err := r.CreateUser("contested"); err == nil {
				atomic.AddInt64(&successes, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), successes)
	assert.True(t, r.Exists("contested"))
}

func TestConcurrentCreateUserDistinctUsernamesAllSucceed(t *testing.T) {
	r := registry.New(10)
	n := 50
	var wg sync.WaitGroup
	errs := make([]error, n)
	wg.Add(n)
	for i := 0; i < n; i++ {
		i := i
		go func() {
			defer wg.Done()
			errs[i] = r.CreateUser(userName(i))
		}()
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		assert.NoError(t, errs[i])
		assert.True(t, r.Exists(userName(i)))
	}
}

func userName(i int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz"
	return "user-" + string(alphabet[i%len(alphabet)]) + string(rune('0'+i/len(alphabet)))
}

func TestEachUserGetsIndependentHandles(t *testing.T) {
	r := registry.New(10)
	require.NoError(t, r.CreateUser("alice"))
	require.NoError(t, r.CreateUser("bob"))

	alice, err := r.Resolve("alice")
	require.NoError(t, err)
	bob, err := r.Resolve("bob")
	require.NoError(t, err)

	assert.NotSame(t, alice.Store, bob.Store)
	assert.NotSame(t, alice.Gatekeeper, bob.Gatekeeper)
}
