package input

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultHold is how long a key counts as down after its last press event.
// Terminals only report presses (and auto-repeats), never releases.
const DefaultHold = 150 * time.Millisecond

// maxQueued bounds the presses an action control can have outstanding.
const maxQueued = 16

// Keyboard synthesizes level state from Bubble Tea key and mouse messages.
// Call Sample once per tick before reading IsDown so every control is judged
// against the same instant.
//
// Continuous controls are down for the hold window after their last press.
// Action controls replay each press as one down sample followed by one up
// sample, so presses closer together than a tick still fire separately.
type Keyboard struct {
	bindings map[string]Control
	hold     time.Duration
	action   [numControls]bool

	lastPress [numControls]time.Time
	now       time.Time

	queued     [numControls]int
	actionDown [numControls]bool

	captured   bool
	px, py     float64
	hasPointer bool
}

// NewKeyboard creates a keyboard source with the default bindings.
func NewKeyboard(hold time.Duration) *Keyboard {
	if hold <= 0 {
		hold = DefaultHold
	}
	k := &Keyboard{
		bindings: DefaultBindings(),
		hold:     hold,
		captured: true,
	}
	for _, c := range ActionControls() {
		k.action[c] = true
	}
	return k
}

// HandleKey records a press. It reports the bound control, if any.
func (k *Keyboard) HandleKey(msg tea.KeyMsg, at time.Time) (Control, bool) {
	c, ok := k.bindings[normalizeKey(msg.String())]
	if !ok {
		return 0, false
	}
	if k.action[c] {
		if k.queued[c] < maxQueued {
			k.queued[c]++
		}
		return c, true
	}
	k.lastPress[c] = at
	return c, true
}

// HandleMouse records pointer motion while the cursor is captured.
func (k *Keyboard) HandleMouse(msg tea.MouseMsg) {
	if !k.captured {
		return
	}
	k.px, k.py = float64(msg.X), float64(msg.Y)
	k.hasPointer = true
}

// Sample fixes the instant used by IsDown for this tick and releases at
// most one queued press per action control.
func (k *Keyboard) Sample(now time.Time) {
	k.now = now
	for c := range k.actionDown {
		switch {
		case k.actionDown[c]:
			k.actionDown[c] = false
		case k.queued[c] > 0:
			k.queued[c]--
			k.actionDown[c] = true
		}
	}
}

// IsDown implements Source.
func (k *Keyboard) IsDown(c Control) bool {
	if c < 0 || c >= numControls {
		return false
	}
	if k.action[c] {
		return k.actionDown[c]
	}
	last := k.lastPress[c]
	if last.IsZero() {
		return false
	}
	return k.now.Sub(last) <= k.hold && !k.now.Before(last)
}

// Pointer implements Source.
func (k *Keyboard) Pointer() (x, y float64, ok bool) {
	if !k.captured || !k.hasPointer {
		return 0, 0, false
	}
	return k.px, k.py, true
}

// SetCursorCaptured implements Source. Releasing the cursor drops the last
// pointer sample so the next capture starts from a fresh baseline.
func (k *Keyboard) SetCursorCaptured(captured bool) {
	if k.captured == captured {
		return
	}
	k.captured = captured
	k.hasPointer = false
}

// Captured reports whether pointer motion is being consumed.
func (k *Keyboard) Captured() bool {
	return k.captured
}
