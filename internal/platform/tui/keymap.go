package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/astro-dash/internal/core"
)

// Terminals only report key presses, never releases. A steering key counts
// as held until its window runs out; auto-repeat keeps extending it.
const (
	HoldFirst  = 550 * time.Millisecond // Covers the typical auto-repeat delay
	HoldRepeat = 120 * time.Millisecond // Covers the gap between repeats
)

// KeyMapper translates Bubble Tea key messages to game input.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a discrete action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "enter", " ":
		return core.ActionConfirm, false
	case "p", "esc":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	case "b":
		return core.ActionBack, false
	}
	return core.ActionNone, false
}

// MapSteer translates a key message to a steering direction.
// ok is false for keys that do not steer; "down" and "s" steer to a stop.
func (km *KeyMapper) MapSteer(msg tea.KeyMsg) (dir core.Direction, ok bool) {
	switch msg.String() {
	case "left", "a", "h":
		return core.DirLeft, true
	case "right", "d", "l":
		return core.DirRight, true
	case "down", "s", "j":
		return core.DirNone, true
	}
	return core.DirNone, false
}

// MapKeyToFrame updates an input frame and the steering hold from a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame, hold *Hold, now time.Time) bool {
	if dir, ok := km.MapSteer(msg); ok {
		if dir == core.DirNone {
			hold.Release()
		} else {
			hold.Press(dir, now)
		}
		return false
	}

	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// Hold turns a stream of key presses into a held direction.
type Hold struct {
	dir       core.Direction
	until     time.Time
	repeating bool
}

// Press records a press of dir at now. Pressing the other direction switches
// at once.
func (h *Hold) Press(dir core.Direction, now time.Time) {
	h.repeating = dir == h.dir && now.Before(h.until)
	h.dir = dir

	window := HoldFirst
	if h.repeating {
		window = HoldRepeat
	}
	h.until = now.Add(window)
}

// Release drops the held direction.
func (h *Hold) Release() {
	h.dir = core.DirNone
	h.until = time.Time{}
	h.repeating = false
}

// Direction returns the direction held at now.
func (h *Hold) Direction(now time.Time) core.Direction {
	if h.dir == core.DirNone || !now.Before(h.until) {
		return core.DirNone
	}
	return h.dir
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
