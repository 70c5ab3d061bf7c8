package core

import "testing"

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionKick) {
		t.Error("zero frame should have no actions")
	}
	if !f.Empty() {
		t.Error("zero frame should be empty")
	}

	f.Set(ActionKick)
	f.Set(ActionLeft)
	if !f.Has(ActionKick) || !f.Has(ActionLeft) {
		t.Error("Set actions should be reported by Has")
	}

	clone := f.Clone()
	f.Clear()
	if !f.Empty() {
		t.Error("Clear should remove all actions")
	}
	if !clone.Has(ActionKick) {
		t.Error("Clone must not share storage with the original")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionNone, "None"},
		{ActionLeft, "Left"},
		{ActionKick, "Kick"},
		{ActionSpawn, "Spawn"},
		{ActionPause, "Pause"},
		{Action(99), "Unknown"},
	}

	for _, tc := range tests {
		if got := tc.action.String(); got != tc.expected {
			t.Errorf("Action(%d).String() = %q, expected %q", tc.action, got, tc.expected)
		}
	}
}

func TestBodyColor(t *testing.T) {
	if BodyColor(0) != ColorDefault {
		t.Errorf("BodyColor(0) = %v, expected default", BodyColor(0))
	}
	if BodyColor(1) != BodyColor(1+len(bodyPalette)) {
		t.Error("BodyColor should cycle through the palette")
	}
	if BodyColor(1) == BodyColor(2) {
		t.Error("adjacent ids should get different colors")
	}
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		in       string
		expected Action
		ok       bool
	}{
		{"kick", ActionKick, true},
		{"Spawn", ActionSpawn, true},
		{"PAUSE", ActionPause, true},
		{"none", ActionNone, false},
		{"jump", ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseAction(tt.in)
			if got != tt.expected || ok != tt.ok {
				t.Errorf("ParseAction(%q) = %v, %v, expected %v, %v", tt.in, got, ok, tt.expected, tt.ok)
			}
		})
	}
}
