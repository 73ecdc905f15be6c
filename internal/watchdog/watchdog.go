// Package watchdog runs periodic health probes over registered
// targets, calls a failing target's restart once per failed check, and
// latches safe mode after repeated failures.
package watchdog

import (
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/vfirsov/kernel/contracts"
)

const (
	defaultMaxFailures = 3
	defaultRingSize    = 10
)

type trackedTarget struct {
	target    contracts.WatchdogTarget
	failCount int
}

// watchdog implements contracts.Watchdog. Grounded on NGOClaw's
// AgentLoopConfig failure-counting + backoff restart shape, and on
// SWARM's robfig/cron-scheduled periodic-loop pattern for Start/Stop.
type watchdog struct {
	mu           sync.Mutex
	targets      []*trackedTarget
	maxFailures  int
	restorePts   []contracts.RestorePoint
	safeMode     bool
	cronSched    *cron.Cron
	entryID      cron.EntryID
	store        restoreStore
	newBackoffFn func() backoff.BackOff
}

// restoreStore lets the in-memory ring optionally fan out to a durable
// backend (see restore_store.go); nil means in-memory only.
type restoreStore interface {
	Save(rp contracts.RestorePoint)
}

// NewWatchdog creates a Watchdog. maxFailures <= 0 uses the default of
// 3. store is an optional durable backend (e.g. *BoltRestoreStore)
// mirrored on every CreateRestorePoint call; pass nil for in-memory
// only.
func NewWatchdog(maxFailures int, store restoreStore) contracts.Watchdog {
	if maxFailures <= 0 {
		maxFailures = defaultMaxFailures
	}
	return &watchdog{
		maxFailures: maxFailures,
		store:       store,
		cronSched:   cron.New(cron.WithSeconds()),
		newBackoffFn: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			b.MaxElapsedTime = 5 * time.Second
			return b
		},
	}
}

func (w *watchdog) Register(target contracts.WatchdogTarget) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.targets = append(w.targets, &trackedTarget{target: target})
}

func (w *watchdog) HealthCheck() []contracts.SelfCheckResult {
	w.mu.Lock()
	targets := make([]*trackedTarget, len(w.targets))
	copy(targets, w.targets)
	w.mu.Unlock()

	results := make([]contracts.SelfCheckResult, 0, len(targets))
	for _, tt := range targets {
		ok, err := tt.target.Check()
		if ok && err == nil {
			w.mu.Lock()
			tt.failCount = 0
			w.mu.Unlock()
			results = append(results, contracts.SelfCheckResult{Name: tt.target.Name, Passed: true})
			continue
		}

		detail := "health check failed"
		if err != nil {
			detail = err.Error()
		}
		results = append(results, contracts.SelfCheckResult{Name: tt.target.Name, Passed: false, Detail: detail})
		w.onFailure(tt)
	}
	return results
}

func (w *watchdog) onFailure(tt *trackedTarget) {
	w.mu.Lock()
	tt.failCount++
	failCount := tt.failCount
	w.mu.Unlock()

	if failCount > w.maxFailures {
		w.mu.Lock()
		w.safeMode = true
		w.mu.Unlock()
		return
	}

	if tt.target.Restart != nil {
		w.restartWithBackoff(tt.target.Restart)
	}
}

func (w *watchdog) restartWithBackoff(restart func()) {
	b := w.newBackoffFn()
	_ = backoff.Retry(func() error {
		restart()
		return nil
	}, b)
}

func (w *watchdog) CreateRestorePoint(reason string, data map[string]any) contracts.RestorePoint {
	rp := contracts.RestorePoint{
		ID:        uuid.NewString(),
		Timestamp: contracts.Timestamp(time.Now().UnixMilli()),
		Reason:    reason,
		Data:      data,
	}

	w.mu.Lock()
	w.restorePts = append(w.restorePts, rp)
	if len(w.restorePts) > defaultRingSize {
		w.restorePts = w.restorePts[len(w.restorePts)-defaultRingSize:]
	}
	store := w.store
	w.mu.Unlock()

	if store != nil {
		store.Save(rp)
	}
	return rp
}

func (w *watchdog) RestorePoints() []contracts.RestorePoint {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]contracts.RestorePoint, len(w.restorePts))
	copy(out, w.restorePts)
	return out
}

func (w *watchdog) Start(intervalMs int) {
	if intervalMs <= 0 {
		intervalMs = 30_000
	}
	spec := fmt.Sprintf("@every %dms", intervalMs)
	id, err := w.cronSched.AddFunc(spec, func() { w.HealthCheck() })
	if err != nil {
		return
	}
	w.entryID = id
	w.cronSched.Start()
}

func (w *watchdog) Stop() {
	w.cronSched.Remove(w.entryID)
	ctx := w.cronSched.Stop()
	<-ctx.Done()
}

func (w *watchdog) IsSafeMode() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.safeMode
}

func (w *watchdog) DeactivateSafeMode() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.safeMode = false
}
