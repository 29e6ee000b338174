package models

import "time"

// Command types recorded in the backend command log.
const (
	CommandActuator   = "ACTUATOR"
	CommandManual     = "AC_MANUAL"
	CommandAutomation = "AC_AUTOMATION"
)

// CommandEntry is one change applied to the device configuration.
type CommandEntry struct {
	CommandID   string    `json:"command_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Metadata    any       `json:"metadata,omitempty"`
}
