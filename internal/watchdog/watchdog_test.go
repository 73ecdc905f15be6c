package watchdog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfirsov/kernel/contracts"
)

func TestWatchdog_HealthCheckPassingTargetStaysHealthy(t *testing.T) {
	w := NewWatchdog(3, nil)
	w.Register(contracts.WatchdogTarget{Name: "db", Check: func() (bool, error) { return true, nil }})

	results := w.HealthCheck()
	require.Len(t, results, 1)
	assert.True(t, results[0].Passed)
	assert.False(t, w.IsSafeMode())
}

func TestWatchdog_RestartsOnFailureBelowThreshold(t *testing.T) {
	w := NewWatchdog(3, nil)
	restarts := 0
	w.Register(contracts.WatchdogTarget{
		Name:    "worker",
		Check:   func() (bool, error) { return false, errors.New("down") },
		Restart: func() { restarts++ },
	})

	w.HealthCheck()
	assert.Equal(t, 1, restarts)
	assert.False(t, w.IsSafeMode())
}

func TestWatchdog_ActivatesSafeModeAfterMaxFailures(t *testing.T) {
	w := NewWatchdog(2, nil)
	w.Register(contracts.WatchdogTarget{
		Name:  "worker",
		Check: func() (bool, error) { return false, nil },
	})

	w.HealthCheck()
	w.HealthCheck()
	w.HealthCheck()
	assert.True(t, w.IsSafeMode())
}

func TestWatchdog_DeactivateSafeModeClearsFlag(t *testing.T) {
	w := NewWatchdog(1, nil)
	w.Register(contracts.WatchdogTarget{Name: "worker", Check: func() (bool, error) { return false, nil }})
	w.HealthCheck()
	w.HealthCheck()
	require.True(t, w.IsSafeMode())

	w.DeactivateSafeMode()
	assert.False(t, w.IsSafeMode())
}

func TestWatchdog_RestorePointsRingBoundedToTen(t *testing.T) {
	w := NewWatchdog(3, nil)
	for i := 0; i < 15; i++ {
		w.CreateRestorePoint("checkpoint", map[string]any{"i": i})
	}
	points := w.RestorePoints()
	assert.Len(t, points, 10)
}

func TestWatchdog_SuccessfulCheckResetsFailCount(t *testing.T) {
	w := NewWatchdog(2, nil).(*watchdog)
	healthy := true
	w.Register(contracts.WatchdogTarget{Name: "flaky", Check: func() (bool, error) {
		if healthy {
			return true, nil
		}
		return false, nil
	}})

	healthy = false
	w.HealthCheck()
	healthy = true
	w.HealthCheck()
	healthy = false
	w.HealthCheck()
	w.HealthCheck()

	assert.False(t, w.IsSafeMode())
}
