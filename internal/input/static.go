package input

// Static is a Source whose state is set directly. It drives headless runs
// and tests.
type Static struct {
	Down       map[Control]bool
	X, Y       float64
	HasPointer bool
	Released   bool
}

// NewStatic returns a Static with nothing held.
func NewStatic() *Static {
	return &Static{Down: make(map[Control]bool)}
}

// Press marks controls as held.
func (s *Static) Press(cs ...Control) {
	for _, c := range cs {
		s.Down[c] = true
	}
}

// Release marks controls as up.
func (s *Static) Release(cs ...Control) {
	for _, c := range cs {
		delete(s.Down, c)
	}
}

// MoveTo sets an absolute pointer sample.
func (s *Static) MoveTo(x, y float64) {
	s.X, s.Y = x, y
	s.HasPointer = true
}

// IsDown implements Source.
func (s *Static) IsDown(c Control) bool { return s.Down[c] }

// Pointer implements Source.
func (s *Static) Pointer() (float64, float64, bool) {
	if s.Released || !s.HasPointer {
		return 0, 0, false
	}
	return s.X, s.Y, true
}

// SetCursorCaptured implements Source.
func (s *Static) SetCursorCaptured(captured bool) {
	if s.Released == !captured {
		return
	}
	s.Released = !captured
	s.HasPointer = false
}
