// Package health derives a healthy/warning/critical band from context
// token pressure, staleness, and memory pressure signals, and combines
// it with Watchdog self-checks into one dashboard report.
package health

import (
	"fmt"
	"time"

	"github.com/vfirsov/kernel/contracts"
)

const (
	defaultMaxTokens       = contracts.TokenCount(100_000)
	defaultStaleThreshold  = 5 * time.Minute
	warnTokenPercent       = 70.0
	criticalTokenPercent   = 90.0
	memoryPressureFraction = 0.85
)

// monitor implements contracts.ContextHealthMonitor. Grounded on
// NGOClaw's AgentLoopConfig ContextWarnRatio/ContextHardRatio fields,
// which match spec.md's 70%/90% bands near-exactly.
type monitor struct {
	maxTokens      contracts.TokenCount
	staleThreshold time.Duration
	now            func() time.Time
}

// NewContextHealthMonitor creates a ContextHealthMonitor. maxTokens <=
// 0 defaults to 100,000; staleThreshold <= 0 defaults to 5 minutes.
func NewContextHealthMonitor(maxTokens contracts.TokenCount, staleThreshold time.Duration) contracts.ContextHealthMonitor {
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	if staleThreshold <= 0 {
		staleThreshold = defaultStaleThreshold
	}
	return &monitor{maxTokens: maxTokens, staleThreshold: staleThreshold, now: time.Now}
}

func (m *monitor) Assess(metrics contracts.ContextMetrics) contracts.ContextHealthReport {
	pct := 100 * float64(metrics.CurrentTokens) / float64(m.maxTokens)

	stale := 0
	now := m.now()
	for _, ts := range metrics.ContextVersions {
		updated := time.UnixMilli(int64(ts))
		if now.Sub(updated) > m.staleThreshold {
			stale++
		}
	}

	memoryPressure := metrics.MemoryLimitBytes > 0 &&
		float64(metrics.MemoryUsedBytes) > memoryPressureFraction*float64(metrics.MemoryLimitBytes)

	band := contracts.HealthHealthy
	var recs []string
	switch {
	case pct > criticalTokenPercent:
		band = contracts.HealthCritical
		recs = append(recs, "compress context: token usage above 90%")
	case pct > warnTokenPercent:
		band = contracts.HealthWarning
		recs = append(recs, "consider compressing context: token usage above 70%")
	}

	if memoryPressure {
		band = contracts.HealthCritical
		recs = append(recs, "memory pressure above 85% of limit")
	}

	if stale > 0 {
		if band == contracts.HealthHealthy {
			band = contracts.HealthWarning
		}
		recs = append(recs, fmt.Sprintf("%d stale context entries detected", stale))
	}

	return contracts.ContextHealthReport{
		Band:              band,
		TokenUsagePercent: pct,
		StaleContextCount: stale,
		MemoryPressure:    memoryPressure,
		Recommendations:   recs,
	}
}
