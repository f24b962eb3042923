package input

// Edges is the set of controls that went from up to down this tick.
type Edges [numControls]bool

// Has reports whether c fired.
func (e Edges) Has(c Control) bool {
	if c < 0 || c >= numControls {
		return false
	}
	return e[c]
}

// Any reports whether any control fired.
func (e Edges) Any() bool {
	for _, fired := range e {
		if fired {
			return true
		}
	}
	return false
}

// EdgeDetector fires once per press: only on the tick a monitored control
// changes from up to down, never while held or on release.
type EdgeDetector struct {
	monitored [numControls]bool
	prev      [numControls]bool
}

// NewEdgeDetector monitors the given controls.
func NewEdgeDetector(controls ...Control) *EdgeDetector {
	d := &EdgeDetector{}
	for _, c := range controls {
		if c >= 0 && c < numControls {
			d.monitored[c] = true
		}
	}
	return d
}

// ActionControls are the controls that trigger discrete actions.
func ActionControls() []Control {
	return []Control{
		ControlModeFree,
		ControlModeOrbit,
		ControlModeFollow,
		ControlCycleTarget,
		ControlTimeFaster,
		ControlTimeSlower,
		ControlResetTime,
		ControlPause,
		ControlTour,
		ControlToggleLabels,
		ControlToggleGuides,
	}
}

// Step compares src against the previous tick and returns the rising edges.
func (d *EdgeDetector) Step(src Source) Edges {
	var edges Edges
	for c := Control(0); c < numControls; c++ {
		if !d.monitored[c] {
			continue
		}
		down := src.IsDown(c)
		edges[c] = down && !d.prev[c]
		d.prev[c] = down
	}
	return edges
}

// Reset forgets previous state, so a control already held counts as a
// fresh press on the next Step.
func (d *EdgeDetector) Reset() {
	d.prev = [numControls]bool{}
}
