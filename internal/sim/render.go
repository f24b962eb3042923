package sim

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/mesh"
	"github.com/litescript/ls-orrery/internal/render"
	"github.com/litescript/ls-orrery/internal/trail"
	"github.com/litescript/ls-orrery/internal/vmath"
)

var (
	starBright = colorful.Color{R: 0.95, G: 0.95, B: 1}
	starFaint  = colorful.Color{R: 0.55, G: 0.55, B: 0.62}
	gridColor  = colorful.Color{R: 0.16, G: 0.24, B: 0.42}
	debrisGrey = colorful.Color{R: 0.5, G: 0.47, B: 0.43}
)

// trailAlpha is the opacity of the newest trail segment.
const trailAlpha = 0.7

// debrisShape is a unit three-axis cross, scaled per fragment.
var debrisShape = []mesh.Segment{
	{A: vmath.V(-1, 0, 0), B: vmath.V(1, 0, 0)},
	{A: vmath.V(0, -0.6, 0), B: vmath.V(0, 0.6, 0)},
	{A: vmath.V(0, 0, -0.8), B: vmath.V(0, 0, 0.8)},
}

// Render runs the Render phase against b. aspect is the viewport's
// width/height ratio.
func (c *Context) Render(b render.Backend, aspect float64) {
	b.Clear()
	b.SetProjection(render.DefaultFrustum(aspect).Matrix())
	b.SetView(c.Camera.View())

	c.drawStars(b)
	c.drawGrid(b)
	c.drawBodies(b)
	c.drawSatellites(b)
	c.drawDebris(b)
	c.drawTrails(b)
	c.drawTransient(b)

	b.Present()
}

// drawStars keeps the sky sphere centred on the eye so stars never move
// with translation.
func (c *Context) drawStars(b render.Backend) {
	b.PushTransform()
	b.Translate(c.Camera.Position())
	b.SetColor(starBright, 1)
	b.DrawPoints(c.brightStars)
	b.SetColor(starFaint, 0.5)
	b.DrawPoints(c.faintStars)
	b.PopTransform()
}

func (c *Context) drawGrid(b render.Backend) {
	g := c.cfg.Grid
	b.PushTransform()
	b.Translate(vmath.V(0, g.Height, 0))
	b.SetColor(gridColor, 1)
	b.DrawLineSegments(c.Meshes.WarpedGrid(g.Extent, g.Step, g.Falloff, g.Depth))
	b.PopTransform()
}

func (c *Context) drawSphere(b render.Backend, radius float64, slices, stacks int) {
	for _, strip := range c.Meshes.Sphere(radius, slices, stacks) {
		b.DrawTriangleStrip(strip)
	}
	// Bodies smaller than a cell would vanish between cell centres.
	b.DrawPoints([]vmath.Vec3{vmath.Zero})
}

func (c *Context) drawBodies(b render.Backend) {
	for i, body := range c.System.Bodies {
		b.PushTransform()
		b.Translate(c.positions.Bodies[i])
		if i == 0 {
			b.SetColor(body.Color, 1)
		} else {
			b.SetMaterial(body.Color, 1)
		}
		c.drawSphere(b, body.Radius, c.cfg.SphereSlices, c.cfg.SphereStacks)

		if body.HasRing {
			b.Rotate(0.4, vmath.UnitX)
			b.SetColor(body.Color.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, 0.3), 1)
			b.DrawTriangleStrip(c.Meshes.Ring(body.Radius*1.5, body.Radius*2.3, 48))
		}
		b.PopTransform()
	}
}

func (c *Context) drawSatellites(b render.Backend) {
	slices, stacks := max(c.cfg.SphereSlices/2, mesh.MinSlices), max(c.cfg.SphereStacks/2, mesh.MinStacks)
	for j, sat := range c.System.Satellites {
		b.PushTransform()
		b.Translate(c.positions.Satellites[j])
		b.SetMaterial(sat.Color, 1)
		c.drawSphere(b, sat.Radius, slices, stacks)
		b.PopTransform()
	}
}

func (c *Context) drawDebris(b render.Backend) {
	b.SetColor(debrisGrey, 1)
	for _, d := range c.System.Debris {
		shape := make([]mesh.Segment, len(debrisShape))
		for k, s := range debrisShape {
			shape[k] = mesh.Segment{A: s.A.Scale(d.Size), B: s.B.Scale(d.Size)}
		}
		b.PushTransform()
		b.Translate(d.Position)
		b.Rotate(d.Angle, d.Axis)
		b.DrawLineSegments(shape)
		b.PopTransform()
	}
}

// drawTrail draws buf newest first, fading each segment by its age.
func drawTrail(b render.Backend, buf *trail.Buffer, col colorful.Color) {
	pts := buf.Points()
	for i := 1; i < len(pts); i++ {
		b.SetColor(col, trailAlpha*buf.Fade(i))
		b.DrawLineStrip(pts[i-1 : i+1])
	}
}

func (c *Context) drawTrails(b render.Backend) {
	b.EnableBlend(render.BlendSrcAlpha, render.BlendOneMinusSrcAlpha)
	for i := 1; i < len(c.System.Bodies); i++ {
		drawTrail(b, c.Trails.Bodies[i], c.System.Bodies[i].Color)
	}
	for j, sat := range c.System.Satellites {
		drawTrail(b, c.Trails.Satellites[j], sat.Color)
	}
	if obj, ok := c.Transient.Current(); ok {
		drawTrail(b, c.Trails.Transient, obj.Color)
	}
	b.DisableBlend()
}

func (c *Context) drawTransient(b render.Backend) {
	obj, ok := c.Transient.Current()
	if !ok {
		return
	}
	b.PushTransform()
	b.Translate(obj.Position)
	b.SetColor(obj.Color, 1)
	c.drawSphere(b, obj.Size, 10, 8)
	b.PopTransform()
}
