package health

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vfirsov/kernel/contracts"
)

type fakeWatchdog struct {
	checks   []contracts.SelfCheckResult
	safeMode bool
}

func (f *fakeWatchdog) Register(contracts.WatchdogTarget)                              {}
func (f *fakeWatchdog) HealthCheck() []contracts.SelfCheckResult                        { return f.checks }
func (f *fakeWatchdog) CreateRestorePoint(string, map[string]any) contracts.RestorePoint { return contracts.RestorePoint{} }
func (f *fakeWatchdog) RestorePoints() []contracts.RestorePoint                         { return nil }
func (f *fakeWatchdog) Start(int)                                                      {}
func (f *fakeWatchdog) Stop()                                                          {}
func (f *fakeWatchdog) IsSafeMode() bool                                               { return f.safeMode }
func (f *fakeWatchdog) DeactivateSafeMode()                                            { f.safeMode = false }

func TestDashboard_OverallHealthyWhenAllChecksPass(t *testing.T) {
	wd := &fakeWatchdog{checks: []contracts.SelfCheckResult{{Name: "db", Passed: true}}}
	mon := NewContextHealthMonitor(1000, 0)
	d := NewHealthDashboard(wd, mon)

	report := d.GetFullReport(contracts.ContextMetrics{CurrentTokens: 10})
	assert.Equal(t, contracts.HealthHealthy, report.OverallHealth)
	assert.False(t, report.SafeMode)
}

func TestDashboard_FailingSelfCheckForcesCritical(t *testing.T) {
	wd := &fakeWatchdog{checks: []contracts.SelfCheckResult{{Name: "db", Passed: false, Detail: "timeout"}}}
	mon := NewContextHealthMonitor(1000, 0)
	d := NewHealthDashboard(wd, mon)

	report := d.GetFullReport(contracts.ContextMetrics{CurrentTokens: 10})
	assert.Equal(t, contracts.HealthCritical, report.OverallHealth)
}

func TestDashboard_SafeModeReflectsWatchdog(t *testing.T) {
	wd := &fakeWatchdog{safeMode: true}
	mon := NewContextHealthMonitor(1000, 0)
	d := NewHealthDashboard(wd, mon)

	report := d.GetFullReport(contracts.ContextMetrics{})
	assert.True(t, report.SafeMode)
}
