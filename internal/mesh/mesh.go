// Package mesh synthesizes the orrery's procedural geometry: UV spheres,
// flat ring annuli and the warped reference grid.
//
// Every generator is a pure function of its parameters. Cache memoizes them
// by parameter tuple for callers that regenerate the same shapes each frame.
package mesh

import (
	"math"

	"github.com/litescript/ls-orrery/internal/vmath"
)

// Vertex is a position with its surface normal.
type Vertex struct {
	Position vmath.Vec3
	Normal   vmath.Vec3
}

// Strip is a triangle strip: vertices k, k+1, k+2 form triangle k.
type Strip []Vertex

// Segment is one line segment.
type Segment struct {
	A, B vmath.Vec3
}

// Minimum tessellation.
const (
	MinSlices   = 3
	MinStacks   = 2
	MinSegments = 3
)

// Sphere tessellates a UV sphere centred on the origin as one strip per
// latitude band, south to north. Normals are the unit position.
func Sphere(radius float64, slices, stacks int) []Strip {
	slices = max(slices, MinSlices)
	stacks = max(stacks, MinStacks)

	strips := make([]Strip, stacks)
	for i := 0; i < stacks; i++ {
		lat0 := math.Pi*float64(i)/float64(stacks) - math.Pi/2
		lat1 := math.Pi*float64(i+1)/float64(stacks) - math.Pi/2

		strip := make(Strip, 0, 2*(slices+1))
		for j := 0; j <= slices; j++ {
			lon := 2 * math.Pi * float64(j) / float64(slices)
			strip = append(strip, sphereVertex(radius, lat1, lon), sphereVertex(radius, lat0, lon))
		}
		strips[i] = strip
	}
	return strips
}

func sphereVertex(radius, lat, lon float64) Vertex {
	sinLat, cosLat := math.Sincos(lat)
	sinLon, cosLon := math.Sincos(lon)
	n := vmath.V(cosLat*cosLon, sinLat, cosLat*sinLon)
	return Vertex{Position: n.Scale(radius), Normal: n}
}

// Ring tessellates a flat annulus in the horizontal plane with an upward
// normal, alternating outer and inner edge vertices.
func Ring(innerRadius, outerRadius float64, segments int) Strip {
	segments = max(segments, MinSegments)

	strip := make(Strip, 0, 2*(segments+1))
	for j := 0; j <= segments; j++ {
		s, c := math.Sincos(2 * math.Pi * float64(j) / float64(segments))
		strip = append(strip,
			Vertex{Position: vmath.V(outerRadius*c, 0, outerRadius*s), Normal: vmath.UnitY},
			Vertex{Position: vmath.V(innerRadius*c, 0, innerRadius*s), Normal: vmath.UnitY},
		)
	}
	return strip
}

// WarpHeight is the grid's vertical displacement at horizontal (x, z):
// zero outside falloffRadius, sinking linearly to -warpDepth at the centre.
func WarpHeight(x, z, falloffRadius, warpDepth float64) float64 {
	d := math.Hypot(x, z)
	if falloffRadius <= 0 || d >= falloffRadius {
		return 0
	}
	return -warpDepth * (1 - d/falloffRadius)
}

// WarpedGrid builds a square grid of line segments spanning [-extent, extent]
// on both horizontal axes at the given spacing, with the funnel applied at
// every grid point. A non-positive step or extent yields no geometry.
func WarpedGrid(extent, step, falloffRadius, warpDepth float64) []Segment {
	if step <= 0 || extent <= 0 {
		return nil
	}
	n := int(math.Floor(2*extent/step+1e-9)) + 1

	pts := make([]vmath.Vec3, n*n)
	coord := func(i int) float64 { return -extent + float64(i)*step }
	for i := 0; i < n; i++ {
		for k := 0; k < n; k++ {
			x, z := coord(i), coord(k)
			pts[i*n+k] = vmath.V(x, WarpHeight(x, z, falloffRadius, warpDepth), z)
		}
	}

	segs := make([]Segment, 0, 2*n*(n-1))
	for i := 0; i < n; i++ {
		for k := 0; k+1 < n; k++ {
			segs = append(segs,
				Segment{A: pts[i*n+k], B: pts[i*n+k+1]},   // along Z
				Segment{A: pts[k*n+i], B: pts[(k+1)*n+i]}, // along X
			)
		}
	}
	return segs
}

type sphereKey struct {
	radius         float64
	slices, stacks int
}

type ringKey struct {
	inner, outer float64
	segments     int
}

type gridKey struct {
	extent, step, falloff, depth float64
}

// Cache memoizes generator output by parameter tuple. Returned geometry is
// shared and must not be modified. Not safe for concurrent use.
type Cache struct {
	spheres map[sphereKey][]Strip
	rings   map[ringKey]Strip
	grids   map[gridKey][]Segment
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		spheres: make(map[sphereKey][]Strip),
		rings:   make(map[ringKey]Strip),
		grids:   make(map[gridKey][]Segment),
	}
}

// Sphere returns the memoized Sphere.
func (c *Cache) Sphere(radius float64, slices, stacks int) []Strip {
	k := sphereKey{radius, slices, stacks}
	if s, ok := c.spheres[k]; ok {
		return s
	}
	s := Sphere(radius, slices, stacks)
	c.spheres[k] = s
	return s
}

// Ring returns the memoized Ring.
func (c *Cache) Ring(innerRadius, outerRadius float64, segments int) Strip {
	k := ringKey{innerRadius, outerRadius, segments}
	if s, ok := c.rings[k]; ok {
		return s
	}
	s := Ring(innerRadius, outerRadius, segments)
	c.rings[k] = s
	return s
}

// WarpedGrid returns the memoized WarpedGrid.
func (c *Cache) WarpedGrid(extent, step, falloffRadius, warpDepth float64) []Segment {
	k := gridKey{extent, step, falloffRadius, warpDepth}
	if g, ok := c.grids[k]; ok {
		return g
	}
	g := WarpedGrid(extent, step, falloffRadius, warpDepth)
	c.grids[k] = g
	return g
}

// Len reports how many shapes are memoized.
func (c *Cache) Len() int {
	return len(c.spheres) + len(c.rings) + len(c.grids)
}
