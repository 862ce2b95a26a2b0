package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/astro-dash/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"enter confirms", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"space confirms", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionConfirm, false},
		{"p pauses", runeKey("p"), core.ActionPause, false},
		{"esc pauses", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause, false},
		{"r restarts", runeKey("r"), core.ActionRestart, false},
		{"q quits", runeKey("q"), core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"x does nothing", runeKey("x"), core.ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, quit := km.MapKey(tc.msg)
			if action != tc.action || quit != tc.quit {
				t.Errorf("MapKey() = (%v, %v), expected (%v, %v)", action, quit, tc.action, tc.quit)
			}
		})
	}
}

func TestMapSteer(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg tea.KeyMsg
		dir core.Direction
		ok  bool
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, core.DirLeft, true},
		{runeKey("a"), core.DirLeft, true},
		{tea.KeyMsg{Type: tea.KeyRight}, core.DirRight, true},
		{runeKey("d"), core.DirRight, true},
		{tea.KeyMsg{Type: tea.KeyDown}, core.DirNone, true},
		{runeKey("p"), core.DirNone, false},
	}

	for _, tc := range tests {
		dir, ok := km.MapSteer(tc.msg)
		if dir != tc.dir || ok != tc.ok {
			t.Errorf("MapSteer(%q) = (%v, %v), expected (%v, %v)", tc.msg.String(), dir, ok, tc.dir, tc.ok)
		}
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()
	hold := &Hold{}
	now := time.Unix(100, 0)

	if km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyLeft}, &frame, hold, now) {
		t.Fatal("steering is not a quit request")
	}
	if hold.Direction(now) != core.DirLeft {
		t.Error("left should be held")
	}
	if frame.Has(core.ActionConfirm) {
		t.Error("steering should not set actions")
	}

	km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyEnter}, &frame, hold, now)
	if !frame.Has(core.ActionConfirm) {
		t.Error("enter should set confirm")
	}

	km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyDown}, &frame, hold, now)
	if hold.Direction(now) != core.DirNone {
		t.Error("down should release the hold")
	}

	if !km.MapKeyToFrame(runeKey("q"), &frame, hold, now) {
		t.Error("q should request quit")
	}
}

func TestHoldWindows(t *testing.T) {
	var h Hold
	t0 := time.Unix(0, 0)

	h.Press(core.DirRight, t0)
	if got := h.Direction(t0.Add(HoldFirst - time.Millisecond)); got != core.DirRight {
		t.Errorf("first press should hold for %v, got %v", HoldFirst, got)
	}
	if got := h.Direction(t0.Add(HoldFirst)); got != core.DirNone {
		t.Errorf("hold should end at %v, got %v", HoldFirst, got)
	}

	// An auto-repeat inside the window shortens the next window
	t1 := t0.Add(400 * time.Millisecond)
	h.Release()
	h.Press(core.DirRight, t0)
	h.Press(core.DirRight, t1)
	if got := h.Direction(t1.Add(HoldRepeat - time.Millisecond)); got != core.DirRight {
		t.Errorf("repeat should hold, got %v", got)
	}
	if got := h.Direction(t1.Add(HoldRepeat)); got != core.DirNone {
		t.Errorf("repeat window should end at %v, got %v", HoldRepeat, got)
	}

	// The other direction takes over at once with a full window
	h.Press(core.DirLeft, t1)
	if got := h.Direction(t1.Add(HoldRepeat)); got != core.DirLeft {
		t.Errorf("switching direction should start a first-press window, got %v", got)
	}

	h.Release()
	if got := h.Direction(t1); got != core.DirNone {
		t.Errorf("released hold = %v", got)
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg      tea.KeyMsg
		expected MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{runeKey("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey("q"), MenuActionQuit},
		{runeKey("z"), MenuActionNone},
	}

	for _, tc := range tests {
		if got := km.MapKeyToMenuAction(tc.msg); got != tc.expected {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tc.msg.String(), got, tc.expected)
		}
	}
}
