// Package input turns terminal key and mouse events into level-sampled
// control state, and level state into edge-triggered actions.
package input

import "strings"

// Control is a logical input the simulation reacts to.
type Control int

const (
	ControlForward Control = iota
	ControlBack
	ControlLeft
	ControlRight
	ControlUp
	ControlDown
	ControlLookLeft
	ControlLookRight
	ControlLookUp
	ControlLookDown
	ControlModeFree
	ControlModeOrbit
	ControlModeFollow
	ControlCycleTarget
	ControlDistanceIn
	ControlDistanceOut
	ControlTimeFaster
	ControlTimeSlower
	ControlResetTime
	ControlPause
	ControlTour
	ControlToggleLabels
	ControlToggleGuides

	numControls
)

var controlNames = [numControls]string{
	ControlForward:      "forward",
	ControlBack:         "back",
	ControlLeft:         "left",
	ControlRight:        "right",
	ControlUp:           "up",
	ControlDown:         "down",
	ControlLookLeft:     "look-left",
	ControlLookRight:    "look-right",
	ControlLookUp:       "look-up",
	ControlLookDown:     "look-down",
	ControlModeFree:     "mode-free",
	ControlModeOrbit:    "mode-orbit",
	ControlModeFollow:   "mode-follow",
	ControlCycleTarget:  "cycle-target",
	ControlDistanceIn:   "distance-in",
	ControlDistanceOut:  "distance-out",
	ControlTimeFaster:   "time-faster",
	ControlTimeSlower:   "time-slower",
	ControlResetTime:    "reset-time",
	ControlPause:        "pause",
	ControlTour:         "tour",
	ControlToggleLabels: "toggle-labels",
	ControlToggleGuides: "toggle-guides",
}

func (c Control) String() string {
	if c < 0 || c >= numControls {
		return "unknown"
	}
	return controlNames[c]
}

// Source is a level-sampled view of the player's controls for one tick.
type Source interface {
	// IsDown reports whether c is held during the current tick.
	IsDown(c Control) bool
	// Pointer returns the absolute pointer position. ok is false when no
	// sample is available, e.g. before the first motion or while released.
	Pointer() (x, y float64, ok bool)
	// SetCursorCaptured grabs or releases the pointer.
	SetCursorCaptured(captured bool)
}

// DefaultBindings maps Bubble Tea key strings to controls.
func DefaultBindings() map[string]Control {
	return map[string]Control{
		"w":     ControlForward,
		"s":     ControlBack,
		"a":     ControlLeft,
		"d":     ControlRight,
		" ":     ControlUp,
		"space": ControlUp,
		"z":     ControlDown,
		"left":  ControlLookLeft,
		"right": ControlLookRight,
		"up":    ControlLookUp,
		"down":  ControlLookDown,
		"1":     ControlModeFree,
		"2":     ControlModeOrbit,
		"3":     ControlModeFollow,
		"tab":   ControlCycleTarget,
		"=":     ControlDistanceIn,
		"+":     ControlDistanceIn,
		"-":     ControlDistanceOut,
		"_":     ControlDistanceOut,
		"]":     ControlTimeFaster,
		"[":     ControlTimeSlower,
		"0":     ControlResetTime,
		"p":     ControlPause,
		"t":     ControlTour,
		"l":     ControlToggleLabels,
		"o":     ControlToggleGuides,
	}
}

// normalizeKey folds shifted letters onto their lowercase binding.
func normalizeKey(k string) string {
	if len(k) == 1 && k[0] >= 'A' && k[0] <= 'Z' {
		return strings.ToLower(k)
	}
	return k
}
