// Package mode is the state machine that decides which controls are writable.
package mode

import (
	"errors"
	"fmt"

	"cooling_dashboard/internal/models"
)

// ErrUnknownMode is returned when entering a mode that does not exist.
var ErrUnknownMode = errors.New("unknown mode: must be manual, auto or ai")

// Control identifies one writable input on the panel.
type Control string

const (
	ControlAC        Control = "ac"
	ControlFan       Control = "fan"
	ControlThreshold Control = "threshold"
	ControlAdvisory  Control = "advisory"
)

// Enabled is the writable set of the four controls.
type Enabled struct {
	AC        bool `json:"ac"`
	Fan       bool `json:"fan"`
	Threshold bool `json:"threshold"`
	Advisory  bool `json:"advisory"`
}

// Allows reports whether c is writable in this set.
func (e Enabled) Allows(c Control) bool {
	switch c {
	case ControlAC:
		return e.AC
	case ControlFan:
		return e.Fan
	case ControlThreshold:
		return e.Threshold
	case ControlAdvisory:
		return e.Advisory
	}
	return false
}

var table = map[models.Mode]Enabled{
	models.ModeManual: {AC: true, Fan: true, Threshold: true, Advisory: true},
	models.ModeAuto:   {AC: false, Fan: false, Threshold: true, Advisory: true},
	models.ModeAI:     {AC: false, Fan: false, Threshold: false, Advisory: true},
}

// EnabledFor returns the writable set for m. Unknown modes enable nothing.
func EnabledFor(m models.Mode) Enabled {
	return table[m]
}

// Controller holds the single active mode. The enabled set is a pure function
// of that mode, so the path taken to reach it never matters.
type Controller struct {
	current models.Mode
}

// NewController starts in initial, or manual when initial is empty or unknown.
func NewController(initial models.Mode) *Controller {
	m, ok := models.ParseMode(string(initial))
	if !ok {
		m = models.ModeManual
	}
	return &Controller{current: m}
}

// Enter switches to m and returns the new writable set.
func (c *Controller) Enter(m models.Mode) (Enabled, error) {
	parsed, ok := models.ParseMode(string(m))
	if !ok {
		return c.Enabled(), fmt.Errorf("%w: %q", ErrUnknownMode, m)
	}
	c.current = parsed
	return EnabledFor(parsed), nil
}

// Mode returns the active mode.
func (c *Controller) Mode() models.Mode { return c.current }

// Enabled returns the writable set of the active mode.
func (c *Controller) Enabled() Enabled { return EnabledFor(c.current) }

// CanWrite reports whether control is writable in the active mode.
func (c *Controller) CanWrite(control Control) bool {
	return c.Enabled().Allows(control)
}
