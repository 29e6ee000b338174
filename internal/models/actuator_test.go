package models

import (
	"encoding/json"
	"testing"
)

func TestSwitch_AcceptsBoolAndNumbers(t *testing.T) {
	cases := []struct {
		in   string
		want Switch
	}{
		{`true`, true},
		{`false`, false},
		{`1`, true},
		{`0`, false},
		{`null`, false},
		{`2`, true},
	}
	for _, tc := range cases {
		var s Switch
		if err := json.Unmarshal([]byte(tc.in), &s); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.in, err)
		}
		if s != tc.want {
			t.Errorf("unmarshal %s: got %v want %v", tc.in, s, tc.want)
		}
	}

	var s Switch
	if err := json.Unmarshal([]byte(`"on"`), &s); err == nil {
		t.Fatalf("expected error for string value")
	}
}

func TestActuatorDesiredState_WireNames(t *testing.T) {
	st := ActuatorDesiredState{
		ModeRequest:   ModeAuto,
		AC:            true,
		TempThreshold: 26.5,
		AdvisoryText:  "keep it cool",
		Source:        "web_client",
	}
	b, err := json.Marshal(st)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"mode_request":"auto","ac":1,"fan":0,"temp_threshold":26.5,"end_user_ai_instruction":"keep it cool","source":"web_client"}`
	if string(b) != want {
		t.Fatalf("got %s\nwant %s", b, want)
	}
}

func TestParseMode(t *testing.T) {
	if m, ok := ParseMode(" AI "); !ok || m != ModeAI {
		t.Fatalf("ParseMode(AI) = %q, %v", m, ok)
	}
	if _, ok := ParseMode("eco"); ok {
		t.Fatalf("expected eco to be rejected")
	}
}
