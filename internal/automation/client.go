package automation

import (
	"context"
	"encoding/json"

	"cooling_dashboard/internal/models"
	"cooling_dashboard/internal/remote"
)

// Backend paths of the AC settings resource.
const (
	PathSettings   = "/api/ac/settings"
	PathManual     = "/api/ac/manual"
	PathAutomation = "/api/ac/automation"
)

// Client reads and updates the AC settings on the backend.
type Client struct {
	api *remote.Client
}

// NewClient wraps api.
func NewClient(api *remote.Client) *Client {
	return &Client{api: api}
}

// Settings fetches the current settings.
func (c *Client) Settings(ctx context.Context) (models.AutomationSettings, error) {
	var s models.AutomationSettings
	if err := c.api.GetJSON(ctx, PathSettings, &s); err != nil {
		return models.AutomationSettings{}, err
	}
	return s, nil
}

// SetManual switches the unit on or off with a target temperature and mode.
func (c *Client) SetManual(ctx context.Context, in models.ManualSettings) (models.AutomationSettings, error) {
	return c.post(ctx, PathManual, in)
}

// SetAutomation updates the automation rule.
func (c *Client) SetAutomation(ctx context.Context, in models.AutomationRule) (models.AutomationSettings, error) {
	return c.post(ctx, PathAutomation, in)
}

type settingsResponse struct {
	Settings json.RawMessage `json:"settings"`
}

// post accepts either {"settings": {...}} or the bare settings object.
func (c *Client) post(ctx context.Context, path string, in any) (models.AutomationSettings, error) {
	body, err := c.api.PostRaw(ctx, path, in)
	if err != nil {
		return models.AutomationSettings{}, err
	}
	var wrapped settingsResponse
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return models.AutomationSettings{}, &remote.DecodeError{Op: "POST " + path, Err: err}
	}
	raw := body
	if len(wrapped.Settings) > 0 && string(wrapped.Settings) != "null" {
		raw = wrapped.Settings
	}
	var s models.AutomationSettings
	if err := json.Unmarshal(raw, &s); err != nil {
		return models.AutomationSettings{}, &remote.DecodeError{Op: "POST " + path, Err: err}
	}
	return s, nil
}
