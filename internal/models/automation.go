package models

import (
	"strings"
	"time"
)

// ClimateMode is the operating mode of the climate unit.
type ClimateMode string

const (
	ClimateCool ClimateMode = "cool"
	ClimateHeat ClimateMode = "heat"
	ClimateFan  ClimateMode = "fan"
)

// ParseClimateMode normalizes s and reports whether it names a known climate mode.
func ParseClimateMode(s string) (ClimateMode, bool) {
	m := ClimateMode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case ClimateCool, ClimateHeat, ClimateFan:
		return m, true
	}
	return "", false
}

// AutomationSettings is the climate unit configuration. It is persisted
// independently from ActuatorDesiredState.
type AutomationSettings struct {
	IsOn              bool        `json:"is_on"`
	TargetTemp        float64     `json:"target_temp"`
	Mode              ClimateMode `json:"mode"`
	AutomationEnabled bool        `json:"automation_enabled"`
	ThresholdTemp     float64     `json:"threshold_temp"`
	UpdatedAt         time.Time   `json:"last_updated,omitempty"`
}

const (
	DefaultTargetTemp    = 22.0
	DefaultThresholdTemp = 25.0
)

// DefaultAutomationSettings mirrors a freshly installed unit.
func DefaultAutomationSettings() AutomationSettings {
	return AutomationSettings{
		Mode:          ClimateCool,
		TargetTemp:    DefaultTargetTemp,
		ThresholdTemp: DefaultThresholdTemp,
	}
}

// ManualSettings is the body of POST /api/ac/manual.
type ManualSettings struct {
	IsOn       bool        `json:"is_on"`
	TargetTemp float64     `json:"target_temp"`
	Mode       ClimateMode `json:"mode"`
}

// AutomationRule is the body of POST /api/ac/automation.
type AutomationRule struct {
	AutomationEnabled bool    `json:"automation_enabled"`
	ThresholdTemp     float64 `json:"threshold_temp"`
}
