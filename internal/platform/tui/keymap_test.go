package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
		quit     bool
	}{
		{"w", runeKey('w'), core.ActionUp, false},
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"s", runeKey('s'), core.ActionDown, false},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{"a", runeKey('a'), core.ActionLeft, false},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"d", runeKey('d'), core.ActionRight, false},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionStart, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionStart, false},
		{"x", runeKey('x'), core.ActionEndGame, false},
		{"ctrl+r", tea.KeyMsg{Type: tea.KeyCtrlR}, core.ActionResetHighScore, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, quit := km.MapKey(tc.msg)
			if action != tc.expected || quit != tc.quit {
				t.Errorf("MapKey(%q) = (%v, %v), expected (%v, %v)", tc.msg.String(), action, quit, tc.expected, tc.quit)
			}
		})
	}
}

func TestHelpBindingsEnabled(t *testing.T) {
	keys := DefaultKeyMap()
	for _, b := range keys.ShortHelp() {
		if !b.Enabled() || b.Help().Key == "" {
			t.Errorf("binding %v should be enabled with help text", b.Keys())
		}
	}
	if len(keys.FullHelp()) != 2 {
		t.Errorf("FullHelp() should have two columns")
	}
}
