package health

import "github.com/vfirsov/kernel/contracts"

// dashboard implements contracts.HealthDashboard by combining a
// Watchdog's self-checks with the Context Health Monitor's band.
type dashboard struct {
	watchdog contracts.Watchdog
	ctxMon   contracts.ContextHealthMonitor
}

// NewHealthDashboard creates a HealthDashboard.
func NewHealthDashboard(w contracts.Watchdog, m contracts.ContextHealthMonitor) contracts.HealthDashboard {
	return &dashboard{watchdog: w, ctxMon: m}
}

func (d *dashboard) GetFullReport(metrics contracts.ContextMetrics) contracts.FullHealthReport {
	selfChecks := d.watchdog.HealthCheck()
	ctxReport := d.ctxMon.Assess(metrics)

	overall := ctxReport.Band
	for _, sc := range selfChecks {
		if !sc.Passed {
			overall = contracts.HealthCritical
			break
		}
	}

	return contracts.FullHealthReport{
		OverallHealth: overall,
		SelfChecks:    selfChecks,
		Context:       ctxReport,
		SafeMode:      d.watchdog.IsSafeMode(),
	}
}
