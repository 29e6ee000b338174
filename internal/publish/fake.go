package publish

import (
	"sync"

	"cooling_dashboard/internal/models"
)

// Command is one recorded PublishCommand call.
type Command struct {
	Type    string
	Details map[string]any
}

// Fake records published messages for test assertions.
type Fake struct {
	mu        sync.Mutex
	telemetry []models.DeviceTelemetry
	commands  []Command
	closed    bool

	// Err, if set, is returned by both publish methods.
	Err error
}

func NewFake() *Fake { return &Fake{} }

func (f *Fake) PublishTelemetry(t models.DeviceTelemetry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.telemetry = append(f.telemetry, t)
	return nil
}

func (f *Fake) PublishCommand(typ string, details map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.commands = append(f.commands, Command{Type: typ, Details: details})
	return nil
}

func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// Telemetry returns a copy of the recorded telemetry.
func (f *Fake) Telemetry() []models.DeviceTelemetry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.DeviceTelemetry(nil), f.telemetry...)
}

// Commands returns a copy of the recorded commands.
func (f *Fake) Commands() []Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Command(nil), f.commands...)
}

// Closed reports whether Close was called.
func (f *Fake) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}
