package orbit

import (
	"math"

	"github.com/litescript/ls-orrery/internal/vmath"
)

// circular returns the offset of a circular orbit in the horizontal plane.
func circular(radius, speed, t float64) vmath.Vec3 {
	s, c := math.Sincos(t * speed)
	return vmath.Vec3{X: radius * c, Y: 0, Z: radius * s}
}

// BodyPosition returns the world position of body i at simulated time t.
// The central body (index 0) is always at the origin.
func (s *System) BodyPosition(i int, t float64) vmath.Vec3 {
	if i <= 0 || i >= len(s.Bodies) {
		return vmath.Zero
	}
	b := s.Bodies[i]
	return circular(b.OrbitRadius, b.AngularSpeed, t)
}

// SatellitePosition returns the world position of satellite j at t: its own
// orbital offset added to its parent's position. Satellites never compound.
func (s *System) SatellitePosition(j int, t float64) vmath.Vec3 {
	sat := s.Satellites[j]
	return s.BodyPosition(sat.Parent, t).Add(circular(sat.OrbitRadius, sat.AngularSpeed, t))
}

// Positions is every moving entity's position for one instant.
type Positions struct {
	Time       float64
	Bodies     []vmath.Vec3
	Satellites []vmath.Vec3
}

// Positions evaluates the whole system at t.
func (s *System) Positions(t float64) Positions {
	p := Positions{
		Time:       t,
		Bodies:     make([]vmath.Vec3, len(s.Bodies)),
		Satellites: make([]vmath.Vec3, len(s.Satellites)),
	}
	for i := range s.Bodies {
		p.Bodies[i] = s.BodyPosition(i, t)
	}
	for j := range s.Satellites {
		p.Satellites[j] = s.SatellitePosition(j, t)
	}
	return p
}

// RotateDebris advances every debris fragment's self-rotation by dt.
// Angles are kept in [0, 2π).
func (s *System) RotateDebris(dt float64) {
	for i := range s.Debris {
		d := &s.Debris[i]
		d.Angle = math.Mod(d.Angle+d.Speed*dt, 2*math.Pi)
		if d.Angle < 0 {
			d.Angle += 2 * math.Pi
		}
	}
}

// SatellitesOf returns the indexes of satellites orbiting body i.
func (s *System) SatellitesOf(i int) []int {
	var out []int
	for j, sat := range s.Satellites {
		if sat.Parent == i {
			out = append(out, j)
		}
	}
	return out
}
