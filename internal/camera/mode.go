package camera

// Mode is one of Free, Orbit or Follow. Tracking modes carry their target,
// so a tracking mode without a target cannot be represented.
type Mode interface {
	String() string
	isMode()
}

// Free is unanchored first-person flight.
type Free struct{}

// Orbit circles Target at the tracking distance.
type Orbit struct{ Target int }

// Follow trails behind Target.
type Follow struct{ Target int }

func (Free) isMode()   {}
func (Orbit) isMode()  {}
func (Follow) isMode() {}

func (Free) String() string   { return "Free" }
func (Orbit) String() string  { return "Orbit" }
func (Follow) String() string { return "Follow" }

// TargetOf returns the tracked body index for tracking modes.
func TargetOf(m Mode) (int, bool) {
	switch m := m.(type) {
	case Orbit:
		return m.Target, true
	case Follow:
		return m.Target, true
	default:
		return 0, false
	}
}

// Tracking reports whether m is anchored to a target.
func Tracking(m Mode) bool {
	_, ok := TargetOf(m)
	return ok
}

// ModeKind names a mode without its payload, for requesting transitions.
type ModeKind int

const (
	KindFree ModeKind = iota
	KindOrbit
	KindFollow
)

func (k ModeKind) String() string {
	switch k {
	case KindFree:
		return "Free"
	case KindOrbit:
		return "Orbit"
	case KindFollow:
		return "Follow"
	default:
		return "unknown"
	}
}

// KindOf returns the kind of m.
func KindOf(m Mode) ModeKind {
	switch m.(type) {
	case Orbit:
		return KindOrbit
	case Follow:
		return KindFollow
	default:
		return KindFree
	}
}
