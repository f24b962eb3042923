// Package sim owns one running orrery: clock, orbital system, trails,
// transient object, camera and event log. Each tick runs an Input phase
// then an Update phase; Render submits the frame to a backend.
package sim

import (
	"fmt"
	"math"
	"time"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/camera"
	"github.com/litescript/ls-orrery/internal/input"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/mesh"
	"github.com/litescript/ls-orrery/internal/observability"
	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/state"
	"github.com/litescript/ls-orrery/internal/trail"
	"github.com/litescript/ls-orrery/internal/transient"
	"github.com/litescript/ls-orrery/internal/vmath"
)

// GridConfig shapes the warped reference grid under the system.
type GridConfig struct {
	Extent  float64
	Step    float64
	Falloff float64
	Depth   float64
	Height  float64 // vertical offset of the flat part
}

// Config holds everything needed to build a Context.
type Config struct {
	Seed      uint64
	Bodies    []orbit.Body
	Belt      orbit.BeltConfig
	Camera    camera.Config
	Transient transient.Config
	Events    state.Config
	Grid      GridConfig

	StartPosition vmath.Vec3

	// Sphere tessellation for bodies; satellites use half.
	SphereSlices int
	SphereStacks int

	StarRadius float64
}

// DefaultConfig returns the built-in system viewed from above the belt.
func DefaultConfig() Config {
	return Config{
		Seed:          42,
		Bodies:        orbit.DefaultBodies(),
		Belt:          orbit.DefaultBelt(),
		Camera:        camera.DefaultConfig(),
		Transient:     transient.DefaultConfig(),
		Events:        state.DefaultConfig(),
		Grid:          GridConfig{Extent: 60, Step: 4, Falloff: 14, Depth: 4, Height: -3},
		StartPosition: vmath.V(0, 14, 48),
		SphereSlices:  20,
		SphereStacks:  12,
		StarRadius:    300,
	}
}

// Status is a read-only summary for the HUD.
type Status struct {
	Mode      string
	Target    string // empty without a selection
	Distance  float64
	SimTime   float64
	TimeScale float64
	Paused    bool
	Touring   bool
	Transient transient.Phase
	Notice    string
}

// Context is the single owner of all mutable simulation state.
type Context struct {
	cfg Config

	System    *orbit.System
	Clock     Clock
	Trails    *trail.Set
	Transient *transient.Lifecycle
	Camera    *camera.Controller
	Tour      camera.Tour
	Meshes    *mesh.Cache
	Events    *state.Manager

	touring   bool
	edges     *input.EdgeDetector
	positions orbit.Positions

	brightStars []vmath.Vec3
	faintStars  []vmath.Vec3

	log     *logging.Logger
	metrics *observability.Collector
}

// New builds a Context. log may be nil; metrics may be nil to disable them.
func New(cfg Config, log *logging.Logger, metrics *observability.Collector) *Context {
	if log == nil {
		log = logging.Discard()
	}
	sys := orbit.NewSystem(cfg.Bodies, cfg.Belt, cfg.Seed)
	trails := trail.NewSet(len(sys.Bodies), len(sys.Satellites))

	yaw, pitch := aimAt(cfg.StartPosition, vmath.Zero)
	c := &Context{
		cfg:       cfg,
		System:    sys,
		Clock:     NewClock(),
		Trails:    trails,
		Transient: transient.New(cfg.Transient, cfg.Seed+1, trails.Transient),
		Camera:    camera.New(cfg.Camera, cfg.StartPosition, yaw, pitch),
		Meshes:    mesh.NewCache(),
		Events:    state.NewManager(cfg.Events),
		edges:     input.NewEdgeDetector(input.ActionControls()...),
		positions: sys.Positions(0),
		log:       log,
		metrics:   metrics,
	}
	c.brightStars, c.faintStars = astro.DefaultStarCatalog().Backdrop(cfg.StarRadius)

	log.Info("system ready: %d bodies, %d satellites, %d debris (seed %d)",
		len(sys.Bodies), len(sys.Satellites), len(sys.Debris), cfg.Seed)
	return c
}

// aimAt returns the yaw and pitch facing from eye toward target.
func aimAt(eye, target vmath.Vec3) (yaw, pitch float64) {
	dir := target.Sub(eye).Normalized()
	if dir == vmath.Zero {
		return 0, 0
	}
	return math.Atan2(dir.Z, dir.X), math.Asin(vmath.Clamp(dir.Y, -1, 1))
}

// Positions returns the positions computed by the last tick.
func (c *Context) Positions() orbit.Positions { return c.positions }

// Touring reports whether the tour drives the camera.
func (c *Context) Touring() bool { return c.touring }

// Status summarizes the context for display.
func (c *Context) Status() Status {
	s := Status{
		Mode:      c.Camera.Mode().String(),
		Distance:  c.Camera.Distance(),
		SimTime:   c.Clock.Time,
		TimeScale: c.Clock.Scale,
		Paused:    c.Clock.Paused,
		Touring:   c.touring,
		Transient: c.Transient.Phase(),
	}
	if i, ok := c.Camera.Selection(); ok && i < len(c.System.Bodies) {
		s.Target = c.System.Bodies[i].Name
	}
	if e, ok := c.Events.Latest(); ok {
		s.Notice = e.Message
	}
	return s
}

// Tick runs one Input phase and one Update phase. realDt is wall-clock
// seconds since the previous tick.
func (c *Context) Tick(src input.Source, realDt float64) {
	if realDt < 0 || math.IsNaN(realDt) {
		realDt = 0
	}
	c.handleInput(src)
	c.update(src, realDt)

	active := c.Transient.Phase() == transient.Active
	c.metrics.ObserveTick(observability.TickSample{
		SimTime:          c.Clock.Time,
		TimeScale:        c.Clock.Scale,
		Paused:           c.Clock.Paused,
		TrackingDistance: c.Camera.Distance(),
		TransientActive:  active,
		Interval:         time.Duration(realDt * float64(time.Second)),
	})
}

func (c *Context) handleInput(src input.Source) {
	e := c.edges.Step(src)
	if !e.Any() {
		return
	}

	if e.Has(input.ControlModeFree) {
		c.setMode(camera.KindFree)
	}
	if e.Has(input.ControlModeOrbit) {
		c.setMode(camera.KindOrbit)
	}
	if e.Has(input.ControlModeFollow) {
		c.setMode(camera.KindFollow)
	}
	if e.Has(input.ControlCycleTarget) && len(c.System.Bodies) > 0 {
		i := c.Camera.CycleTarget(len(c.System.Bodies))
		c.notice(state.EventTargetChanged, "Target: %s", c.System.Bodies[i].Name)
	}
	if e.Has(input.ControlTimeFaster) {
		c.notice(state.EventTimeScale, "Time scale %.2fx", c.Clock.Faster())
	}
	if e.Has(input.ControlTimeSlower) {
		c.notice(state.EventTimeScale, "Time scale %.2fx", c.Clock.Slower())
	}
	if e.Has(input.ControlResetTime) {
		c.Reset()
	}
	if e.Has(input.ControlPause) {
		c.Clock.Paused = !c.Clock.Paused
		if c.Clock.Paused {
			c.notice(state.EventPause, "Paused")
		} else {
			c.notice(state.EventPause, "Resumed")
		}
	}
	if e.Has(input.ControlTour) {
		c.SetTouring(!c.touring)
	}
	if e.Has(input.ControlToggleLabels) {
		c.notice(state.EventToggle, "Labels toggle has no effect")
	}
	if e.Has(input.ControlToggleGuides) {
		c.notice(state.EventToggle, "Orbit guides toggle has no effect")
	}
}

func (c *Context) setMode(k camera.ModeKind) {
	ok := c.Camera.SetMode(k)
	c.metrics.ModeChange(k.String(), ok)
	if !ok {
		c.notice(state.EventModeRejected, "%s needs a target: press tab to select one", k)
		return
	}
	if k != camera.KindFree && c.touring {
		c.touring = false
		c.Camera.Activate()
	}
	c.notice(state.EventModeChanged, "Mode: %s", c.Camera.Mode())
}

// SetTouring starts or stops the tour. Starting it puts the camera in Free.
func (c *Context) SetTouring(on bool) {
	if on == c.touring {
		return
	}
	c.touring = on
	if on {
		c.Camera.SetMode(camera.KindFree)
		c.Tour.Restart()
		c.notice(state.EventTour, "Tour on")
		return
	}
	c.Camera.Activate()
	c.notice(state.EventTour, "Tour off")
}

// Reset rewinds simulated time to zero and clears every trail and the
// transient object. Camera and time scale are kept.
func (c *Context) Reset() {
	c.Clock.Reset()
	c.Trails.ResetAll()
	c.Transient.Reset()
	c.positions = c.System.Positions(0)
	c.notice(state.EventTimeReset, "Simulation reset")
}

func (c *Context) notice(typ state.EventType, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	c.Events.Add(typ, c.Clock.Time, msg)
	c.metrics.Notice(string(typ))
	c.log.Info("%s: %s", typ, msg)
}

func (c *Context) update(src input.Source, realDt float64) {
	simDt := c.Clock.Advance(realDt)
	c.System.RotateDebris(simDt)
	c.positions = c.System.Positions(c.Clock.Time)

	// A stopped clock would fill the trails with duplicates.
	if simDt > 0 {
		for i := 1; i < len(c.positions.Bodies); i++ {
			c.Trails.Bodies[i].Record(c.positions.Bodies[i])
		}
		for j, p := range c.positions.Satellites {
			c.Trails.Satellites[j].Record(p)
		}
	}

	switch c.Transient.Step(realDt, simDt) {
	case transient.EventSpawned:
		obj, _ := c.Transient.Current()
		c.metrics.IncSpawns()
		c.notice(state.EventSpawn, "Transient inbound from %.0f°", azimuthDeg(obj.Position))
	case transient.EventDespawned:
		c.notice(state.EventDespawn, "Transient left the system")
	}

	if c.touring {
		pos, yaw, pitch := c.Tour.Advance(realDt)
		c.Camera.SetPose(pos, yaw, pitch)
		return
	}
	c.Camera.Update(realDt, src, c.bodyPosition)
}

func (c *Context) bodyPosition(i int) vmath.Vec3 {
	if i >= 0 && i < len(c.positions.Bodies) {
		return c.positions.Bodies[i]
	}
	return c.System.BodyPosition(i, c.Clock.Time)
}

func azimuthDeg(p vmath.Vec3) float64 {
	deg := math.Atan2(p.Z, p.X) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}
