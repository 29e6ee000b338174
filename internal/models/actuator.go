package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Mode is the control mode requested from the actuator.
type Mode string

const (
	ModeManual Mode = "manual"
	ModeAuto   Mode = "auto"
	ModeAI     Mode = "ai"
)

// Modes lists every valid mode in display order.
var Modes = []Mode{ModeManual, ModeAuto, ModeAI}

// ParseMode normalizes s and reports whether it names a known mode.
func ParseMode(s string) (Mode, bool) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case ModeManual, ModeAuto, ModeAI:
		return m, true
	}
	return "", false
}

// Switch is an on/off flag. The device contract stores it as 0/1; booleans are
// accepted on input as well.
type Switch bool

// MarshalJSON encodes the flag as 0 or 1.
func (s Switch) MarshalJSON() ([]byte, error) {
	if s {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

// UnmarshalJSON accepts true/false, 0/1 and null.
func (s *Switch) UnmarshalJSON(b []byte) error {
	switch strings.TrimSpace(string(b)) {
	case "true", "1", "1.0":
		*s = true
		return nil
	case "false", "0", "0.0", "null":
		*s = false
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("switch: unsupported value %s", b)
	}
	*s = n != 0
	return nil
}

// ActuatorDesiredState is the desired configuration of the remote actuator.
// ModeRequest decides which of the other fields are meaningful.
type ActuatorDesiredState struct {
	ModeRequest   Mode    `json:"mode_request"`
	AC            Switch  `json:"ac"`
	Fan           Switch  `json:"fan"`
	TempThreshold float64 `json:"temp_threshold"`
	AdvisoryText  string  `json:"end_user_ai_instruction"`
	Source        string  `json:"source"`
}

// Defaults used for the first actuator row and for absent fields.
const (
	DefaultTempThreshold = 25.0
	DefaultSource        = "web_client"
)

// DefaultActuatorState is the state a fresh device starts from.
func DefaultActuatorState() ActuatorDesiredState {
	return ActuatorDesiredState{
		ModeRequest:   ModeManual,
		TempThreshold: DefaultTempThreshold,
		Source:        DefaultSource,
	}
}

// ActuatorRecord is the persisted actuator row on the backend.
type ActuatorRecord struct {
	ActuatorDesiredState
	UpdatedAt time.Time `json:"last_updated"`
}
