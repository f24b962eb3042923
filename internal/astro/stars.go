// Package astro holds the bright-star catalog drawn as the sky backdrop.
package astro

import (
	"math"

	"github.com/litescript/ls-orrery/internal/vmath"
)

// Star represents a cataloged star with position and brightness.
type Star struct {
	Name   string  // Common name (e.g., "Sirius", "Vega")
	RAdeg  float64 // Right Ascension in degrees (J2000)
	DecDeg float64 // Declination in degrees (J2000)
	Mag    float64 // Apparent visual magnitude (lower = brighter)
}

// BrightMag separates bright backdrop stars from faint ones.
const BrightMag = 1.0

// StarCatalog holds a collection of stars for rendering.
type StarCatalog struct {
	Stars []Star
}

// DefaultStarCatalog returns the brightest stars (mag < 2.1).
func DefaultStarCatalog() StarCatalog {
	return StarCatalog{Stars: defaultStars}
}

// Direction maps a star onto the unit sky sphere in scene coordinates:
// the celestial pole is +Y and RA 0 lies along +X.
func Direction(s Star) vmath.Vec3 {
	ra := s.RAdeg * math.Pi / 180
	dec := s.DecDeg * math.Pi / 180
	cd := math.Cos(dec)
	return vmath.Vec3{
		X: cd * math.Cos(ra),
		Y: math.Sin(dec),
		Z: -cd * math.Sin(ra),
	}
}

// Backdrop places every star on a sphere of the given radius and splits
// them by brightness.
func (c StarCatalog) Backdrop(radius float64) (bright, faint []vmath.Vec3) {
	for _, s := range c.Stars {
		p := Direction(s).Scale(radius)
		if s.Mag <= BrightMag {
			bright = append(bright, p)
		} else {
			faint = append(faint, p)
		}
	}
	return bright, faint
}

var defaultStars = []Star{
	{"Sirius", 101.287, -16.716, -1.46},
	{"Canopus", 95.988, -52.696, -0.74},
	{"Arcturus", 213.915, 19.182, -0.05},
	{"Vega", 279.235, 38.784, 0.03},
	{"Capella", 79.172, 45.998, 0.08},
	{"Rigel", 78.634, -8.202, 0.13},
	{"Procyon", 114.826, 5.225, 0.34},
	{"Achernar", 24.429, -57.237, 0.46},
	{"Betelgeuse", 88.793, 7.407, 0.50},
	{"Hadar", 210.956, -60.373, 0.61},
	{"Altair", 297.696, 8.868, 0.76},
	{"Acrux", 186.650, -63.099, 0.76},
	{"Aldebaran", 68.980, 16.509, 0.85},
	{"Antares", 247.352, -26.432, 0.96},
	{"Spica", 201.298, -11.161, 0.97},
	{"Pollux", 116.329, 28.026, 1.14},
	{"Fomalhaut", 344.413, -29.622, 1.16},
	{"Deneb", 310.358, 45.280, 1.25},
	{"Mimosa", 191.930, -59.689, 1.25},
	{"Regulus", 152.093, 11.967, 1.35},
	{"Adhara", 104.656, -28.972, 1.50},
	{"Castor", 113.650, 31.889, 1.58},
	{"Gacrux", 187.791, -57.113, 1.63},
	{"Shaula", 263.402, -37.104, 1.63},
	{"Bellatrix", 81.283, 6.350, 1.64},
	{"Elnath", 81.573, 28.608, 1.65},
	{"Miaplacidus", 138.300, -69.717, 1.68},
	{"Alnilam", 84.053, -1.202, 1.69},
	{"Alnair", 332.058, -46.961, 1.74},
	{"Alnitak", 85.190, -1.943, 1.77},
	{"Alioth", 193.507, 55.960, 1.77},
	{"Dubhe", 165.932, 61.751, 1.79},
	{"Mirfak", 51.081, 49.861, 1.79},
	{"Wezen", 107.098, -26.393, 1.84},
	{"Kaus Australis", 276.043, -34.384, 1.85},
	{"Alkaid", 206.885, 49.313, 1.86},
	{"Menkalinan", 89.882, 44.948, 1.90},
	{"Alhena", 99.428, 16.399, 1.93},
	{"Peacock", 306.412, -56.735, 1.94},
	{"Polaris", 37.954, 89.264, 2.02},
}
