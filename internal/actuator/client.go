package actuator

import (
	"context"
	"encoding/json"

	"cooling_dashboard/internal/models"
	"cooling_dashboard/internal/remote"
)

// DefaultPath is the actuator-state resource on the backend.
const DefaultPath = "/api/actuator/state"

// Client reads and writes the remote actuator-state resource.
type Client struct {
	api  *remote.Client
	path string
}

// NewClient binds api to the resource at path (DefaultPath when empty).
func NewClient(api *remote.Client, path string) *Client {
	if path == "" {
		path = DefaultPath
	}
	return &Client{api: api, path: path}
}

// Fetch reads the authoritative state.
func (c *Client) Fetch(ctx context.Context) (models.ActuatorDesiredState, error) {
	var st models.ActuatorDesiredState
	if err := c.api.GetJSON(ctx, c.path, &st); err != nil {
		return models.ActuatorDesiredState{}, err
	}
	return st, nil
}

// commitResponse is the optional wrapper around the new state.
type commitResponse struct {
	APIState json.RawMessage `json:"api_state"`
}

// Push writes st and returns the state the server now holds: the embedded
// api_state when present, otherwise the whole body.
func (c *Client) Push(ctx context.Context, st models.ActuatorDesiredState) (models.ActuatorDesiredState, error) {
	body, err := c.api.PostRaw(ctx, c.path, st)
	if err != nil {
		return models.ActuatorDesiredState{}, err
	}
	op := "POST " + c.path

	var wrapped commitResponse
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return models.ActuatorDesiredState{}, &remote.DecodeError{Op: op, Err: err}
	}
	raw := body
	if len(wrapped.APIState) > 0 && string(wrapped.APIState) != "null" {
		raw = wrapped.APIState
	}

	var out models.ActuatorDesiredState
	if err := json.Unmarshal(raw, &out); err != nil {
		return models.ActuatorDesiredState{}, &remote.DecodeError{Op: op, Err: err}
	}
	return out, nil
}
