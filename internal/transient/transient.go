// Package transient runs the lifecycle of the rare traveling object that
// occasionally crosses the system: dormant, then active, then dormant again.
package transient

import (
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/trail"
	"github.com/litescript/ls-orrery/internal/vmath"
)

// Phase is the lifecycle state.
type Phase int

const (
	Dormant Phase = iota
	Active
)

func (p Phase) String() string {
	switch p {
	case Dormant:
		return "dormant"
	case Active:
		return "active"
	default:
		return "unknown"
	}
}

// Event reports a lifecycle transition that happened during a Step.
type Event int

const (
	EventNone Event = iota
	EventSpawned
	EventDespawned
)

// Config holds the lifecycle constants.
type Config struct {
	SpawnInterval  float64 // real seconds of dormancy before a spawn
	SpawnRadius    float64 // horizontal distance of the spawn circle
	VerticalJitter float64 // spawn height is uniform in ±VerticalJitter
	Speed          float64 // units per simulated second
	OuterBound     float64 // despawn beyond this distance from the origin
	PassThreshold  float64 // despawn once dot(position, unit velocity) exceeds this
	Size           float64
	Color          colorful.Color
}

// DefaultConfig returns the stock comet settings.
func DefaultConfig() Config {
	return Config{
		SpawnInterval:  30,
		SpawnRadius:    90,
		VerticalJitter: 6,
		Speed:          14,
		OuterBound:     140,
		PassThreshold:  70,
		Size:           0.3,
		Color:          colorful.Color{R: 0.75, G: 0.95, B: 1},
	}
}

// Object is the traveling entity while Active.
type Object struct {
	Position vmath.Vec3
	Velocity vmath.Vec3
	Size     float64
	Color    colorful.Color
}

// Lifecycle owns the transient object, its spawn timer and its trail.
type Lifecycle struct {
	cfg   Config
	rng   *rand.Rand
	phase Phase
	obj   Object // meaningful only while Active
	timer float64
	trail *trail.Buffer
}

// New creates a dormant lifecycle recording into buf.
func New(cfg Config, seed uint64, buf *trail.Buffer) *Lifecycle {
	if buf == nil {
		buf = trail.New(trail.TransientCapacity)
	}
	return &Lifecycle{
		cfg:   cfg,
		rng:   rand.New(rand.NewPCG(seed, seed^0xC0FFEE)),
		trail: buf,
	}
}

// Phase returns the current state.
func (l *Lifecycle) Phase() Phase { return l.phase }

// Current returns the object and true while Active.
func (l *Lifecycle) Current() (Object, bool) {
	if l.phase != Active {
		return Object{}, false
	}
	return l.obj, true
}

// Timer returns the real seconds accumulated toward the next spawn.
func (l *Lifecycle) Timer() float64 { return l.timer }

// Trail returns the object's trail buffer.
func (l *Lifecycle) Trail() *trail.Buffer { return l.trail }

// Step advances the lifecycle. realDt drives the spawn timer; simDt drives
// travel, so time scaling and pause affect motion but not spawn cadence.
func (l *Lifecycle) Step(realDt, simDt float64) Event {
	if l.phase == Dormant {
		l.timer += realDt
		if l.timer > l.cfg.SpawnInterval {
			l.Spawn()
			return EventSpawned
		}
		return EventNone
	}

	l.obj.Position = l.obj.Position.Add(l.obj.Velocity.Scale(simDt))
	if simDt > 0 {
		l.trail.Record(l.obj.Position)
	}

	if l.shouldDespawn() {
		l.despawn()
		return EventDespawned
	}
	return EventNone
}

// Spawn activates a new object immediately. It reports false when one is
// already active.
func (l *Lifecycle) Spawn() bool {
	if l.phase == Active {
		return false
	}
	theta := l.rng.Float64() * 2 * math.Pi
	y := (l.rng.Float64()*2 - 1) * l.cfg.VerticalJitter
	pos := vmath.V(l.cfg.SpawnRadius*math.Cos(theta), y, l.cfg.SpawnRadius*math.Sin(theta))

	l.obj = Object{
		Position: pos,
		Velocity: pos.Scale(-1).Normalized().Scale(l.cfg.Speed),
		Size:     l.cfg.Size,
		Color:    l.cfg.Color,
	}
	l.phase = Active
	l.timer = 0
	return true
}

// shouldDespawn applies both exit tests. The pass test compares a projected
// length against a fixed scalar, exactly as configured.
func (l *Lifecycle) shouldDespawn() bool {
	if l.obj.Position.Norm() > l.cfg.OuterBound {
		return true
	}
	dir := l.obj.Velocity.Normalized()
	return l.obj.Position.Dot(dir) > l.cfg.PassThreshold
}

// despawn returns to Dormant and clears the trail in one transition.
func (l *Lifecycle) despawn() {
	l.phase = Dormant
	l.obj = Object{}
	l.trail.Reset()
}

// Reset forces the lifecycle back to a fresh Dormant state.
func (l *Lifecycle) Reset() {
	l.despawn()
	l.timer = 0
}
