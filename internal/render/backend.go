// Package render defines the drawing contract the simulation renders
// through, and Canvas, a software rasterizer that fulfils it on a terminal
// character grid.
package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/mesh"
	"github.com/litescript/ls-orrery/internal/vmath"
)

// BlendFactor weights a source or destination color when blending.
type BlendFactor int

const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
)

// Backend is the set of primitive drawing and transform operations the
// render pass needs. Angles are radians.
//
// SetColor selects flat unlit shading for everything drawn after it;
// SetMaterial selects lit shading for triangle strips. The most recent of
// the two wins.
type Backend interface {
	Clear()
	SetProjection(m vmath.Mat4)
	SetView(m vmath.Mat4)
	PushTransform()
	PopTransform()
	Translate(v vmath.Vec3)
	Rotate(angle float64, axis vmath.Vec3)
	SetColor(c colorful.Color, alpha float64)
	SetMaterial(c colorful.Color, alpha float64)
	DrawPoints(points []vmath.Vec3)
	DrawLineStrip(points []vmath.Vec3)
	DrawLineLoop(points []vmath.Vec3)
	DrawLineSegments(segments []mesh.Segment)
	DrawTriangleStrip(strip mesh.Strip)
	EnableBlend(src, dst BlendFactor)
	DisableBlend()
	Present()
}

// Frustum describes a symmetric perspective projection.
type Frustum struct {
	FovY   float64 // radians
	Aspect float64 // width / height in world units
	Near   float64
	Far    float64
}

// DefaultFrustum is a 60° view for the given aspect ratio.
func DefaultFrustum(aspect float64) Frustum {
	if aspect <= 0 || math.IsNaN(aspect) {
		aspect = 1
	}
	return Frustum{FovY: math.Pi / 3, Aspect: aspect, Near: 0.1, Far: 500}
}

// Matrix returns the projection matrix.
func (f Frustum) Matrix() vmath.Mat4 {
	return vmath.Perspective(f.FovY, f.Aspect, f.Near, f.Far)
}

// blendWeight returns the weight a factor applies given the source alpha.
func blendWeight(f BlendFactor, srcAlpha float64) float64 {
	switch f {
	case BlendZero:
		return 0
	case BlendOne:
		return 1
	case BlendSrcAlpha:
		return srcAlpha
	case BlendOneMinusSrcAlpha:
		return 1 - srcAlpha
	default:
		return 1
	}
}

// Blend combines src over dst with the given factors.
func Blend(src, dst colorful.Color, srcAlpha float64, sf, df BlendFactor) colorful.Color {
	ws := blendWeight(sf, srcAlpha)
	wd := blendWeight(df, srcAlpha)
	return colorful.Color{
		R: src.R*ws + dst.R*wd,
		G: src.G*ws + dst.G*wd,
		B: src.B*ws + dst.B*wd,
	}.Clamped()
}
