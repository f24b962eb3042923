// Package trail keeps fixed-capacity histories of recent world positions,
// used to draw fading motion trails.
package trail

import "github.com/litescript/ls-orrery/internal/vmath"

// Default capacities per entity kind.
const (
	BodyCapacity      = 80
	SatelliteCapacity = 40
	TransientCapacity = 30
)

// Buffer is a ring of the N most recent positions. Index 0 is the newest.
// Slots that have never been written since the last Reset are absent.
type Buffer struct {
	points []vmath.Vec3
	head   int // slot holding the newest entry
	n      int // number of valid entries
}

// New creates an empty buffer holding at most capacity positions.
func New(capacity int) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer{points: make([]vmath.Vec3, capacity)}
}

// Record prepends p as the newest entry, discarding the oldest when full.
func (b *Buffer) Record(p vmath.Vec3) {
	b.head = (b.head + 1) % len(b.points)
	b.points[b.head] = p
	if b.n < len(b.points) {
		b.n++
	}
}

// At returns the entry of age i (0 = newest). ok is false for empty slots.
func (b *Buffer) At(i int) (p vmath.Vec3, ok bool) {
	if i < 0 || i >= b.n {
		return vmath.Vec3{}, false
	}
	idx := (b.head - i + len(b.points)) % len(b.points)
	return b.points[idx], true
}

// Len is the number of valid entries.
func (b *Buffer) Len() int { return b.n }

// Cap is the fixed capacity.
func (b *Buffer) Cap() int { return len(b.points) }

// Reset marks every slot empty.
func (b *Buffer) Reset() {
	b.n = 0
	b.head = 0
	clear(b.points)
}

// Points returns the valid entries, newest first.
func (b *Buffer) Points() []vmath.Vec3 {
	out := make([]vmath.Vec3, b.n)
	for i := range out {
		out[i], _ = b.At(i)
	}
	return out
}

// Fade returns the render opacity for the entry of age i: 1 for the newest,
// falling linearly toward 0 at the capacity.
func (b *Buffer) Fade(i int) float64 {
	return 1 - float64(i)/float64(len(b.points))
}

// Set is the collection of trails owned by one simulation: one per orbiting
// body (the central body's slot is unused), one per satellite and one for
// the transient object.
type Set struct {
	Bodies     []*Buffer
	Satellites []*Buffer
	Transient  *Buffer
}

// NewSet allocates trails for the given entity counts.
func NewSet(bodies, satellites int) *Set {
	s := &Set{
		Bodies:     make([]*Buffer, bodies),
		Satellites: make([]*Buffer, satellites),
		Transient:  New(TransientCapacity),
	}
	for i := range s.Bodies {
		s.Bodies[i] = New(BodyCapacity)
	}
	for i := range s.Satellites {
		s.Satellites[i] = New(SatelliteCapacity)
	}
	return s
}

// ResetAll empties every trail.
func (s *Set) ResetAll() {
	for _, b := range s.Bodies {
		b.Reset()
	}
	for _, b := range s.Satellites {
		b.Reset()
	}
	s.Transient.Reset()
}
