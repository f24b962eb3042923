// Package camera implements the observer: free flight, orbiting a selected
// body, or following behind it, steered by keys and pointer motion.
package camera

import (
	"math"

	"github.com/litescript/ls-orrery/internal/input"
	"github.com/litescript/ls-orrery/internal/vmath"
)

// Config holds the controller constants.
type Config struct {
	MoveSpeed       float64 // free-flight units per second
	LookSpeed       float64 // arrow-key radians per second
	Sensitivity     float64 // radians per pointer cell
	FreePitchLimit  float64
	TrackPitchLimit float64
	DistanceRate    float64 // tracking-distance units per second
	MinDistance     float64
	StartDistance   float64
	FollowLift      float64 // follow height as a fraction of distance
}

// DefaultConfig returns the stock controller settings.
func DefaultConfig() Config {
	return Config{
		MoveSpeed:       10,
		LookSpeed:       1.5,
		Sensitivity:     0.03,
		FreePitchLimit:  0.8,
		TrackPitchLimit: 1.5,
		DistanceRate:    8,
		MinDistance:     0.5,
		StartDistance:   12,
		FollowLift:      0.3,
	}
}

// TargetFunc resolves a body index to its current world position.
type TargetFunc func(i int) vmath.Vec3

// Controller is the camera state machine.
type Controller struct {
	cfg Config

	position vmath.Vec3
	look     vmath.Vec3 // point the camera faces
	yaw      float64
	pitch    float64
	mode     Mode
	distance float64

	selected     int
	hasSelection bool

	lastX, lastY float64
	haveBaseline bool
}

// New creates a Free-mode camera at position facing along yaw/pitch.
func New(cfg Config, position vmath.Vec3, yaw, pitch float64) *Controller {
	c := &Controller{
		cfg:      cfg,
		position: position,
		yaw:      yaw,
		mode:     Free{},
		distance: math.Max(cfg.StartDistance, cfg.MinDistance),
	}
	c.pitch = c.clampPitch(pitch)
	c.look = position.Add(Direction(c.yaw, c.pitch))
	return c
}

// Direction is the unit look vector for yaw and pitch. Yaw 0 faces +X and
// increases toward +Z.
func Direction(yaw, pitch float64) vmath.Vec3 {
	sy, cy := math.Sincos(yaw)
	sp, cp := math.Sincos(pitch)
	return vmath.V(cp*cy, sp, cp*sy)
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode { return c.mode }

// Position returns the eye position.
func (c *Controller) Position() vmath.Vec3 { return c.position }

// LookAt returns the point the camera faces.
func (c *Controller) LookAt() vmath.Vec3 { return c.look }

// Yaw returns the yaw angle in radians.
func (c *Controller) Yaw() float64 { return c.yaw }

// Pitch returns the pitch angle in radians.
func (c *Controller) Pitch() float64 { return c.pitch }

// Distance returns the tracking distance.
func (c *Controller) Distance() float64 { return c.distance }

// Selection returns the selected body index, if one has been cycled to.
func (c *Controller) Selection() (int, bool) { return c.selected, c.hasSelection }

// View returns the view matrix for the current pose.
func (c *Controller) View() vmath.Mat4 {
	return vmath.LookAt(c.position, c.look, vmath.UnitY)
}

// PitchLimit is the pitch clamp for the active mode.
func (c *Controller) PitchLimit() float64 {
	if Tracking(c.mode) {
		return c.cfg.TrackPitchLimit
	}
	return c.cfg.FreePitchLimit
}

func (c *Controller) clampPitch(p float64) float64 {
	lim := c.PitchLimit()
	return vmath.Clamp(p, -lim, lim)
}

// CycleTarget advances the selection through n bodies, wrapping. The first
// call selects index 0. A tracking mode follows the new selection.
func (c *Controller) CycleTarget(n int) int {
	if n <= 0 {
		return c.selected
	}
	if c.hasSelection {
		c.selected = (c.selected + 1) % n
	} else {
		c.selected = 0
		c.hasSelection = true
	}
	switch c.mode.(type) {
	case Orbit:
		c.mode = Orbit{Target: c.selected}
	case Follow:
		c.mode = Follow{Target: c.selected}
	}
	return c.selected
}

// SetMode requests a transition. Free always succeeds; Orbit and Follow
// need a selection and are rejected (false, mode unchanged) without one.
func (c *Controller) SetMode(k ModeKind) bool {
	switch k {
	case KindFree:
		if Tracking(c.mode) {
			// Keep looking where the tracking view was looking.
			dir := c.look.Sub(c.position).Normalized()
			if dir != vmath.Zero {
				c.yaw = math.Atan2(dir.Z, dir.X)
				c.pitch = math.Asin(vmath.Clamp(dir.Y, -1, 1))
			}
		}
		c.mode = Free{}
	case KindOrbit:
		if !c.hasSelection {
			return false
		}
		c.mode = Orbit{Target: c.selected}
	case KindFollow:
		if !c.hasSelection {
			return false
		}
		c.mode = Follow{Target: c.selected}
	default:
		return false
	}
	c.pitch = c.clampPitch(c.pitch)
	return true
}

// AdjustDistance changes the tracking distance, never below the minimum.
func (c *Controller) AdjustDistance(delta float64) {
	c.distance = math.Max(c.distance+delta, c.cfg.MinDistance)
}

// Activate forgets the pointer baseline: the next pointer sample is taken
// as the new reference and causes no rotation.
func (c *Controller) Activate() {
	c.haveBaseline = false
}

// Pointer feeds one absolute pointer sample.
func (c *Controller) Pointer(x, y float64, ok bool) {
	if !ok {
		c.haveBaseline = false
		return
	}
	if !c.haveBaseline {
		c.lastX, c.lastY = x, y
		c.haveBaseline = true
		return
	}
	dx, dy := x-c.lastX, y-c.lastY
	c.lastX, c.lastY = x, y
	c.Rotate(dx*c.cfg.Sensitivity, -dy*c.cfg.Sensitivity)
}

// Rotate adds to yaw and pitch, clamping pitch for the active mode.
func (c *Controller) Rotate(dYaw, dPitch float64) {
	c.yaw += dYaw
	c.pitch = c.clampPitch(c.pitch + dPitch)
}

// SetPose places the camera directly, used by the tour. Pitch is clamped.
func (c *Controller) SetPose(position vmath.Vec3, yaw, pitch float64) {
	c.position = position
	c.yaw = yaw
	c.pitch = c.clampPitch(pitch)
	c.look = position.Add(Direction(c.yaw, c.pitch))
}

func axis(src input.Source, pos, neg input.Control) float64 {
	var v float64
	if src.IsDown(pos) {
		v++
	}
	if src.IsDown(neg) {
		v--
	}
	return v
}

// Update applies one tick of manual input and recomputes the pose. target
// resolves the tracked body's position for tracking modes.
func (c *Controller) Update(dt float64, src input.Source, target TargetFunc) {
	x, y, ok := src.Pointer()
	c.Pointer(x, y, ok)

	lookYaw := axis(src, input.ControlLookRight, input.ControlLookLeft)
	lookPitch := axis(src, input.ControlLookUp, input.ControlLookDown)
	if lookYaw != 0 || lookPitch != 0 {
		c.Rotate(lookYaw*c.cfg.LookSpeed*dt, lookPitch*c.cfg.LookSpeed*dt)
	}

	if d := axis(src, input.ControlDistanceOut, input.ControlDistanceIn); d != 0 {
		c.AdjustDistance(d * c.cfg.DistanceRate * dt)
	}

	if _, free := c.mode.(Free); free {
		c.fly(dt, src)
		return
	}
	c.Track(target)
}

// fly moves in the horizontal plane along yaw; pitch never tilts movement.
func (c *Controller) fly(dt float64, src input.Source) {
	sy, cy := math.Sincos(c.yaw)
	forward := vmath.V(cy, 0, sy)
	right := vmath.V(-sy, 0, cy)

	step := c.cfg.MoveSpeed * dt
	move := forward.Scale(axis(src, input.ControlForward, input.ControlBack)).
		Add(right.Scale(axis(src, input.ControlRight, input.ControlLeft))).
		Add(vmath.UnitY.Scale(axis(src, input.ControlUp, input.ControlDown)))

	c.position = c.position.Add(move.Scale(step))
	c.look = c.position.Add(Direction(c.yaw, c.pitch))
}

// Track recomputes the pose around the tracked body. It is a no-op in Free.
func (c *Controller) Track(target TargetFunc) {
	idx, ok := TargetOf(c.mode)
	if !ok || target == nil {
		return
	}
	t := target(idx)
	d := c.distance

	switch c.mode.(type) {
	case Orbit:
		sy, cy := math.Sincos(c.yaw)
		sp, cp := math.Sincos(c.pitch)
		horizontal := d * cp
		c.position = t.Add(vmath.V(horizontal*cy, d*sp, horizontal*sy))
	case Follow:
		offset := Direction(c.yaw, c.pitch).Scale(-d).Add(vmath.UnitY.Scale(c.cfg.FollowLift * d))
		c.position = t.Add(offset)
	}
	c.look = t
}
