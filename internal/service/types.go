package service

import (
	"errors"
	"time"
)

// ErrValidation marks input rejected before anything is persisted.
var ErrValidation = errors.New("validation failed")

// LogFilter selects command log entries by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "ACTUATOR", "AC_MANUAL", "AC_AUTOMATION"
}
