package input

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestEdgeFiresOncePerPress(t *testing.T) {
	src := NewStatic()
	d := NewEdgeDetector(ControlCycleTarget)

	// up, down, down, down, up, down
	levels := []bool{false, true, true, true, false, true}
	want := []bool{false, true, false, false, false, true}

	for i, down := range levels {
		if down {
			src.Press(ControlCycleTarget)
		} else {
			src.Release(ControlCycleTarget)
		}
		if got := d.Step(src).Has(ControlCycleTarget); got != want[i] {
			t.Errorf("tick %d: fired=%v, want %v", i, got, want[i])
		}
	}
}

func TestEdgeIgnoresUnmonitored(t *testing.T) {
	src := NewStatic()
	src.Press(ControlForward, ControlPause)
	d := NewEdgeDetector(ControlPause)

	e := d.Step(src)
	if e.Has(ControlForward) {
		t.Error("unmonitored control fired")
	}
	if !e.Has(ControlPause) || !e.Any() {
		t.Error("monitored control did not fire")
	}
}

func TestEdgeIndependentPerControl(t *testing.T) {
	src := NewStatic()
	d := NewEdgeDetector(ActionControls()...)

	src.Press(ControlModeOrbit)
	d.Step(src)

	// Orbit still held, Follow newly pressed.
	src.Press(ControlModeFollow)
	e := d.Step(src)
	if e.Has(ControlModeOrbit) {
		t.Error("held control fired again")
	}
	if !e.Has(ControlModeFollow) {
		t.Error("new press did not fire")
	}
}

func TestEdgeReset(t *testing.T) {
	src := NewStatic()
	src.Press(ControlTour)
	d := NewEdgeDetector(ControlTour)
	d.Step(src)
	d.Reset()
	if !d.Step(src).Has(ControlTour) {
		t.Error("held control should fire after Reset")
	}
}

func TestKeyboardHoldWindow(t *testing.T) {
	kb := NewKeyboard(100 * time.Millisecond)
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	if c, ok := kb.HandleKey(runeKey('w'), t0); !ok || c != ControlForward {
		t.Fatalf("HandleKey(w) = %v,%v", c, ok)
	}

	tests := []struct {
		at   time.Duration
		want bool
	}{
		{0, true},
		{50 * time.Millisecond, true},
		{100 * time.Millisecond, true},
		{101 * time.Millisecond, false},
	}
	for _, tt := range tests {
		kb.Sample(t0.Add(tt.at))
		if got := kb.IsDown(ControlForward); got != tt.want {
			t.Errorf("IsDown at +%v = %v, want %v", tt.at, got, tt.want)
		}
	}

	if kb.IsDown(ControlBack) {
		t.Error("unpressed control reported down")
	}
}

func TestKeyboardReplaysActionPresses(t *testing.T) {
	kb := NewKeyboard(DefaultHold)
	d := NewEdgeDetector(ActionControls()...)
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tab := tea.KeyMsg{Type: tea.KeyTab}

	// Two presses before the first tick, a third well inside the hold window.
	kb.HandleKey(tab, t0)
	kb.HandleKey(tab, t0.Add(10*time.Millisecond))
	fired := 0
	for i := 1; i <= 8; i++ {
		if i == 3 {
			kb.HandleKey(tab, t0.Add(70*time.Millisecond))
		}
		kb.Sample(t0.Add(time.Duration(i) * 33 * time.Millisecond))
		if d.Step(kb).Has(ControlCycleTarget) {
			fired++
		}
	}
	if fired != 3 {
		t.Errorf("fired %d times for 3 presses", fired)
	}
	if kb.IsDown(ControlCycleTarget) {
		t.Error("action control still down after the queue drained")
	}
}

func TestKeyboardActionQueueIsBounded(t *testing.T) {
	kb := NewKeyboard(DefaultHold)
	now := time.Now()
	for i := 0; i < maxQueued+10; i++ {
		kb.HandleKey(runeKey('p'), now)
	}
	downs := 0
	for i := 0; i < 4*maxQueued; i++ {
		kb.Sample(now)
		if kb.IsDown(ControlPause) {
			downs++
		}
	}
	if downs != maxQueued {
		t.Errorf("downs = %d, want %d", downs, maxQueued)
	}
}

func TestKeyboardBindings(t *testing.T) {
	kb := NewKeyboard(0)
	now := time.Now()

	tests := []struct {
		msg  tea.KeyMsg
		want Control
	}{
		{runeKey('W'), ControlForward},
		{runeKey('2'), ControlModeOrbit},
		{runeKey(']'), ControlTimeFaster},
		{tea.KeyMsg{Type: tea.KeyTab}, ControlCycleTarget},
		{tea.KeyMsg{Type: tea.KeyLeft}, ControlLookLeft},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, ControlUp},
	}
	for _, tt := range tests {
		c, ok := kb.HandleKey(tt.msg, now)
		if !ok || c != tt.want {
			t.Errorf("HandleKey(%q) = %v,%v, want %v", tt.msg.String(), c, ok, tt.want)
		}
	}

	if _, ok := kb.HandleKey(runeKey('#'), now); ok {
		t.Error("unbound key reported a control")
	}
}

func TestKeyboardPointerCapture(t *testing.T) {
	kb := NewKeyboard(0)

	if _, _, ok := kb.Pointer(); ok {
		t.Error("pointer available before any motion")
	}

	kb.HandleMouse(tea.MouseMsg{X: 10, Y: 4, Action: tea.MouseActionMotion})
	x, y, ok := kb.Pointer()
	if !ok || x != 10 || y != 4 {
		t.Errorf("Pointer = %v,%v,%v", x, y, ok)
	}

	kb.SetCursorCaptured(false)
	if _, _, ok := kb.Pointer(); ok {
		t.Error("pointer available while released")
	}
	kb.HandleMouse(tea.MouseMsg{X: 20, Y: 8, Action: tea.MouseActionMotion})

	kb.SetCursorCaptured(true)
	if _, _, ok := kb.Pointer(); ok {
		t.Error("stale pointer sample survived recapture")
	}
}

func TestControlString(t *testing.T) {
	if got := ControlCycleTarget.String(); got != "cycle-target" {
		t.Errorf("String = %q", got)
	}
	if got := Control(-1).String(); got != "unknown" {
		t.Errorf("String = %q", got)
	}
}
