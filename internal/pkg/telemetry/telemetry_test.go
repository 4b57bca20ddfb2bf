package telemetry_test

import (
	"testing"
	"time"

	metrics "bank-core/internal/pkg/telemetry"

	"github.com/stretchr/testify/assert"
)

func TestRecordAndList(t *testing.T) {
	before := len(metrics.List())

	metrics.Record("/deposit", 200, 5*time.Millisecond)

	after := metrics.List()
	assert.Equal(t, before+1, len(after))
	assert.Equal(t, "/deposit", after[len(after)-1].Endpoint)
}

func TestRecordGatekeeperInFlightZeroCapacityIsNoOp(t *testing.T) {
	assert.NotPanics(t, func() {
		metrics.RecordGatekeeperInFlight("alice", 0, 0)
	})
}
