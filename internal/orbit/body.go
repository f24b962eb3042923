// Package orbit holds the orrery's immutable system configuration and the
// pure mapping from simulated time to world positions.
package orbit

import (
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/vmath"
)

// Body is a simulated mass. Index 0 of a body list is the central body.
type Body struct {
	Name           string
	Radius         float64
	Color          colorful.Color
	OrbitRadius    float64 // 0 for the central body
	AngularSpeed   float64 // radians per simulated second
	HasRing        bool
	SatelliteCount int
}

// Satellite orbits exactly one parent body.
type Satellite struct {
	Parent       int // index into the body list
	Radius       float64
	Color        colorful.Color
	OrbitRadius  float64
	AngularSpeed float64
}

// Debris is a static fragment of the belt. Only Angle changes after creation.
type Debris struct {
	Position vmath.Vec3
	Size     float64
	Axis     vmath.Vec3 // unit rotation axis
	Speed    float64    // radians per simulated second
	Angle    float64
}

// BeltConfig describes the debris annulus.
type BeltConfig struct {
	Count       int
	InnerRadius float64
	OuterRadius float64
	Thickness   float64 // total vertical spread
}

// DefaultBelt sits between the fourth body and the first giant.
func DefaultBelt() BeltConfig {
	return BeltConfig{
		Count:       220,
		InnerRadius: 18,
		OuterRadius: 21,
		Thickness:   1.2,
	}
}

func hex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return c
}

// DefaultBodies returns the built-in eight-body system.
func DefaultBodies() []Body {
	return []Body{
		{Name: "Sol", Radius: 2.2, Color: hex("#FFD23F")},
		{Name: "Ember", Radius: 0.35, Color: hex("#E07A5F"), OrbitRadius: 5, AngularSpeed: 1.2},
		{Name: "Verdant", Radius: 0.55, Color: hex("#81B29A"), OrbitRadius: 8, AngularSpeed: 0.8, SatelliteCount: 1},
		{Name: "Azure", Radius: 0.6, Color: hex("#3D85C6"), OrbitRadius: 11.5, AngularSpeed: 0.6, SatelliteCount: 2},
		{Name: "Rust", Radius: 0.45, Color: hex("#B5523B"), OrbitRadius: 15, AngularSpeed: 0.45, SatelliteCount: 2},
		{Name: "Titan", Radius: 1.4, Color: hex("#D9A066"), OrbitRadius: 25, AngularSpeed: 0.25, HasRing: true, SatelliteCount: 4},
		{Name: "Halo", Radius: 1.1, Color: hex("#E9D8A6"), OrbitRadius: 32, AngularSpeed: 0.18, HasRing: true, SatelliteCount: 3},
		{Name: "Frost", Radius: 0.9, Color: hex("#9AD1D4"), OrbitRadius: 39, AngularSpeed: 0.12, SatelliteCount: 1},
	}
}

// System is the immutable configuration of one orrery plus the debris
// rotation angles, which are the only mutable part.
type System struct {
	Bodies     []Body
	Satellites []Satellite
	Debris     []Debris
}

// NewSystem generates satellites and debris for bodies from seed. The same
// seed always yields the same system.
func NewSystem(bodies []Body, belt BeltConfig, seed uint64) *System {
	rng := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))

	sys := &System{Bodies: bodies}
	for i, b := range bodies {
		for k := 0; k < b.SatelliteCount; k++ {
			sys.Satellites = append(sys.Satellites, newSatellite(rng, i, b, k))
		}
	}
	sys.Debris = newBelt(rng, belt)
	return sys
}

func newSatellite(rng *rand.Rand, parent int, b Body, k int) Satellite {
	// Spread successive moons outward so they don't share an orbit.
	orbitR := b.Radius*2 + 0.6*float64(k) + rng.Float64()*0.5
	speed := 0.8 + rng.Float64()*1.6
	if rng.IntN(4) == 0 {
		speed = -speed
	}
	grey := 0.55 + rng.Float64()*0.35
	return Satellite{
		Parent:       parent,
		Radius:       0.08 + rng.Float64()*0.14,
		Color:        colorful.Color{R: grey, G: grey, B: grey*0.95 + 0.05},
		OrbitRadius:  orbitR,
		AngularSpeed: speed,
	}
}

func newBelt(rng *rand.Rand, cfg BeltConfig) []Debris {
	if cfg.Count <= 0 {
		return nil
	}
	debris := make([]Debris, cfg.Count)
	for i := range debris {
		theta := rng.Float64() * 2 * math.Pi
		r := cfg.InnerRadius + rng.Float64()*(cfg.OuterRadius-cfg.InnerRadius)
		y := (rng.Float64() - 0.5) * cfg.Thickness
		axis := vmath.V(rng.Float64()-0.5, rng.Float64()-0.5, rng.Float64()-0.5).Normalized()
		if axis == vmath.Zero {
			axis = vmath.UnitY
		}
		debris[i] = Debris{
			Position: vmath.V(r*math.Cos(theta), y, r*math.Sin(theta)),
			Size:     0.05 + rng.Float64()*0.15,
			Axis:     axis,
			Speed:    0.5 + rng.Float64()*2.5,
			Angle:    rng.Float64() * 2 * math.Pi,
		}
	}
	return debris
}
