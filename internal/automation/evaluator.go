// Package automation decides whether the climate unit should be running and
// talks to the AC settings endpoints.
package automation

import "cooling_dashboard/internal/models"

// IsRunning is the running indicator. A manual switch-on always wins; otherwise
// the unit runs only when automation is enabled and currentTemp is strictly
// above threshold.
func IsRunning(currentTemp float64, manualOn, autoEnabled bool, threshold float64) bool {
	if manualOn {
		return true
	}
	return autoEnabled && currentTemp > threshold
}

// Evaluate applies IsRunning to the latest sample and the unit settings.
// Without a sample only the manual switch can turn the indicator on.
func Evaluate(latest *models.TelemetrySample, s models.AutomationSettings) bool {
	if latest == nil {
		return s.IsOn
	}
	return IsRunning(latest.InsideTemp, s.IsOn, s.AutomationEnabled, s.ThresholdTemp)
}
