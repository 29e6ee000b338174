package dashboard

import (
	"cooling_dashboard/internal/mode"
	"cooling_dashboard/internal/models"
)

// Controls are the values currently shown in the panel inputs. They are the
// source of truth when a commit payload is composed.
type Controls struct {
	Mode      models.Mode `json:"mode"`
	AC        bool        `json:"ac"`
	Fan       bool        `json:"fan"`
	Threshold float64     `json:"threshold"`
	Advisory  string      `json:"advisory"`
}

// ControlsFrom populates the inputs from an actuator state.
func ControlsFrom(st models.ActuatorDesiredState) Controls {
	return Controls{
		Mode:      st.ModeRequest,
		AC:        bool(st.AC),
		Fan:       bool(st.Fan),
		Threshold: st.TempThreshold,
		Advisory:  st.AdvisoryText,
	}
}

// State composes the full payload sent on commit.
func (c Controls) State(source string) models.ActuatorDesiredState {
	return models.ActuatorDesiredState{
		ModeRequest:   c.Mode,
		AC:            models.Switch(c.AC),
		Fan:           models.Switch(c.Fan),
		TempThreshold: c.Threshold,
		AdvisoryText:  c.Advisory,
		Source:        source,
	}
}

// Patch is a partial update. Nil fields keep the current control value.
type Patch struct {
	Mode      *models.Mode `json:"mode_request,omitempty"`
	AC        *bool        `json:"ac,omitempty"`
	Fan       *bool        `json:"fan,omitempty"`
	Threshold *float64     `json:"temp_threshold,omitempty"`
	Advisory  *string      `json:"end_user_ai_instruction,omitempty"`
}

// touches lists the gated controls the patch writes.
func (p Patch) touches() []mode.Control {
	var out []mode.Control
	if p.AC != nil {
		out = append(out, mode.ControlAC)
	}
	if p.Fan != nil {
		out = append(out, mode.ControlFan)
	}
	if p.Threshold != nil {
		out = append(out, mode.ControlThreshold)
	}
	if p.Advisory != nil {
		out = append(out, mode.ControlAdvisory)
	}
	return out
}

// apply writes the non-nil fields of p over c.
func (c Controls) apply(p Patch) Controls {
	if p.Mode != nil {
		c.Mode = *p.Mode
	}
	if p.AC != nil {
		c.AC = *p.AC
	}
	if p.Fan != nil {
		c.Fan = *p.Fan
	}
	if p.Threshold != nil {
		c.Threshold = *p.Threshold
	}
	if p.Advisory != nil {
		c.Advisory = *p.Advisory
	}
	return c
}
