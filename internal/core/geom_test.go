package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"last inside cell", 29, 24, true},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}

	cx, cy := r.Center()
	if cx != 15 || cy != 17 {
		t.Errorf("Center() = (%d, %d), expected (15, 17)", cx, cy)
	}
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		in       string
		expected Action
		ok       bool
	}{
		{"up", ActionUp, true},
		{" Left ", ActionLeft, true},
		{"start", ActionStart, true},
		{"end", ActionEndGame, true},
		{"reset_high", ActionResetHighScore, true},
		{"none", ActionNone, false},
		{"jump", ActionNone, false},
	}

	for _, tc := range tests {
		got, ok := ParseAction(tc.in)
		if got != tc.expected || ok != tc.ok {
			t.Errorf("ParseAction(%q) = (%v, %v), expected (%v, %v)", tc.in, got, ok, tc.expected, tc.ok)
		}
	}
}

func TestActionIsDirection(t *testing.T) {
	for _, a := range []Action{ActionUp, ActionDown, ActionLeft, ActionRight} {
		if !a.IsDirection() {
			t.Errorf("%v should be a direction", a)
		}
	}
	for _, a := range []Action{ActionNone, ActionStart, ActionEndGame, ActionQuit} {
		if a.IsDirection() {
			t.Errorf("%v should not be a direction", a)
		}
	}
}
