package render

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/mesh"
	"github.com/litescript/ls-orrery/internal/vmath"
)

// CellAspect is the height of a terminal cell relative to its width.
const CellAspect = 2.0

// shadeRamp orders glyphs from dark to bright. Index 0 is never drawn.
const shadeRamp = " .:-=+*#%@"

type cell struct {
	glyph rune
	color colorful.Color
	depth float64
}

// clipVertex is a homogeneous clip-space position.
type clipVertex struct {
	x, y, z, w float64
}

func (a clipVertex) lerp(b clipVertex, t float64) clipVertex {
	return clipVertex{
		x: a.x + (b.x-a.x)*t,
		y: a.y + (b.y-a.y)*t,
		z: a.z + (b.z-a.z)*t,
		w: a.w + (b.w-a.w)*t,
	}
}

// nearDist is the signed distance to the near plane in clip space.
func (a clipVertex) nearDist() float64 { return a.z + a.w }

// Canvas rasterizes Backend calls onto a character grid with a depth
// buffer. Present renders the grid to a styled string returned by Frame.
type Canvas struct {
	// LightPosition is the world-space point light used by lit strips.
	LightPosition vmath.Vec3
	// Ambient is the intensity of a lit surface facing away from the light.
	Ambient float64
	// Background is the clear color.
	Background colorful.Color

	width, height int
	cells         []cell
	frame         string

	projection vmath.Mat4
	view       vmath.Mat4
	model      vmath.Mat4
	stack      []vmath.Mat4

	color colorful.Color
	alpha float64
	lit   bool

	blend    bool
	src, dst BlendFactor
}

// NewCanvas creates a cleared canvas of the given size in cells.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{
		Ambient:    0.15,
		projection: vmath.Identity(),
		view:       vmath.Identity(),
		model:      vmath.Identity(),
		color:      colorful.Color{R: 1, G: 1, B: 1},
		alpha:      1,
	}
	c.Resize(width, height)
	return c
}

// Resize reallocates the grid and clears it.
func (c *Canvas) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	c.width, c.height = width, height
	c.cells = make([]cell, width*height)
	c.Clear()
}

// Size returns the grid size in cells.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// Aspect returns the visible width/height ratio, correcting for tall cells.
func (c *Canvas) Aspect() float64 {
	return float64(c.width) / (float64(c.height) * CellAspect)
}

// Cell returns the glyph and color at (x, y).
func (c *Canvas) Cell(x, y int) (rune, colorful.Color, bool) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return 0, colorful.Color{}, false
	}
	cl := c.cells[y*c.width+x]
	return cl.glyph, cl.color, true
}

// Frame returns the grid as of the last Present.
func (c *Canvas) Frame() string {
	return c.frame
}

// Text returns the current glyph grid without styling.
func (c *Canvas) Text() string {
	var b strings.Builder
	for y := 0; y < c.height; y++ {
		for _, cl := range c.cells[y*c.width : (y+1)*c.width] {
			b.WriteRune(cl.glyph)
		}
		if y < c.height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = cell{glyph: ' ', color: c.Background, depth: math.Inf(1)}
	}
}

func (c *Canvas) SetProjection(m vmath.Mat4) { c.projection = m }
func (c *Canvas) SetView(m vmath.Mat4)       { c.view = m }

func (c *Canvas) PushTransform() {
	c.stack = append(c.stack, c.model)
}

// PopTransform restores the last pushed transform. Popping an empty stack
// is ignored.
func (c *Canvas) PopTransform() {
	if len(c.stack) == 0 {
		return
	}
	c.model = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *Canvas) Translate(v vmath.Vec3) {
	c.model = c.model.Mul(vmath.Translation(v))
}

func (c *Canvas) Rotate(angle float64, axis vmath.Vec3) {
	c.model = c.model.Mul(vmath.Rotation(angle, axis))
}

func (c *Canvas) SetColor(col colorful.Color, alpha float64) {
	c.color, c.alpha, c.lit = col, vmath.Clamp(alpha, 0, 1), false
}

func (c *Canvas) SetMaterial(col colorful.Color, alpha float64) {
	c.color, c.alpha, c.lit = col, vmath.Clamp(alpha, 0, 1), true
}

func (c *Canvas) EnableBlend(src, dst BlendFactor) {
	c.blend, c.src, c.dst = true, src, dst
}

func (c *Canvas) DisableBlend() {
	c.blend = false
}

func (c *Canvas) mvp() vmath.Mat4 {
	return c.projection.Mul(c.view).Mul(c.model)
}

func toClip(m vmath.Mat4, p vmath.Vec3) clipVertex {
	v, w := m.MulPoint(p)
	return clipVertex{x: v.X, y: v.Y, z: v.Z, w: w}
}

// screen maps a clip-space vertex in front of the near plane to fractional
// cell coordinates and NDC depth.
func (c *Canvas) screen(v clipVertex) (sx, sy, depth float64) {
	sx = (v.x/v.w + 1) / 2 * float64(c.width)
	sy = (1 - v.y/v.w) / 2 * float64(c.height)
	return sx, sy, v.z / v.w
}

func visible(v clipVertex) bool {
	return v.w > 0 && v.nearDist() >= 0
}

// plot writes one fragment subject to the depth test and blend state.
// Blended fragments do not write depth.
func (c *Canvas) plot(x, y int, depth float64, glyph rune, col colorful.Color) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height || depth > 1 {
		return
	}
	cl := &c.cells[y*c.width+x]
	if depth > cl.depth {
		return
	}
	if c.blend {
		cl.color = Blend(col, cl.color, c.alpha, c.src, c.dst)
		if cl.glyph == ' ' || c.alpha >= 0.5 {
			cl.glyph = glyph
		}
		return
	}
	cl.glyph, cl.color, cl.depth = glyph, col, depth
}

func (c *Canvas) pointGlyph() rune {
	if c.alpha >= 0.75 {
		return '•'
	}
	return '·'
}

func (c *Canvas) DrawPoints(points []vmath.Vec3) {
	m := c.mvp()
	glyph := c.pointGlyph()
	for _, p := range points {
		v := toClip(m, p)
		if !visible(v) {
			continue
		}
		sx, sy, z := c.screen(v)
		c.plot(int(math.Floor(sx)), int(math.Floor(sy)), z, glyph, c.color)
	}
}

func (c *Canvas) DrawLineStrip(points []vmath.Vec3) {
	m := c.mvp()
	for i := 1; i < len(points); i++ {
		c.line(toClip(m, points[i-1]), toClip(m, points[i]))
	}
}

func (c *Canvas) DrawLineLoop(points []vmath.Vec3) {
	c.DrawLineStrip(points)
	if len(points) > 2 {
		m := c.mvp()
		c.line(toClip(m, points[len(points)-1]), toClip(m, points[0]))
	}
}

func (c *Canvas) DrawLineSegments(segments []mesh.Segment) {
	m := c.mvp()
	for _, s := range segments {
		c.line(toClip(m, s.A), toClip(m, s.B))
	}
}

// lineGlyph picks a stroke glyph for a screen-space direction.
func lineGlyph(dx, dy float64) rune {
	adx, ady := math.Abs(dx), math.Abs(dy)*CellAspect
	switch {
	case ady < adx*0.5:
		return '-'
	case adx < ady*0.5:
		return '|'
	case (dx > 0) == (dy > 0):
		return '\\'
	default:
		return '/'
	}
}

func (c *Canvas) line(a, b clipVertex) {
	da, db := a.nearDist(), b.nearDist()
	if da < 0 && db < 0 {
		return
	}
	if da < 0 {
		a = a.lerp(b, da/(da-db))
	} else if db < 0 {
		b = b.lerp(a, db/(db-da))
	}
	if a.w <= 0 || b.w <= 0 {
		return
	}

	x0, y0, z0 := c.screen(a)
	x1, y1, z1 := c.screen(b)
	t0, t1, ok := clipRect(x0, y0, x1, y1, float64(c.width), float64(c.height))
	if !ok {
		return
	}

	dx, dy, dz := x1-x0, y1-y0, z1-z0
	glyph := lineGlyph(dx, dy)
	span := math.Max(math.Abs(dx), math.Abs(dy)) * (t1 - t0)
	steps := int(math.Ceil(span))
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := t0 + (t1-t0)*float64(i)/float64(steps)
		c.plot(int(math.Floor(x0+dx*t)), int(math.Floor(y0+dy*t)), z0+dz*t, glyph, c.color)
	}
}

// clipRect clips the segment to [0,w)x[0,h) (Liang-Barsky), returning the
// parameter range that stays inside.
func clipRect(x0, y0, x1, y1, w, h float64) (t0, t1 float64, ok bool) {
	t0, t1 = 0, 1
	dx, dy := x1-x0, y1-y0
	edges := [4][2]float64{
		{-dx, x0},
		{dx, w - x0},
		{-dy, y0},
		{dy, h - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			t0 = math.Max(t0, r)
		} else {
			t1 = math.Min(t1, r)
		}
		if t0 > t1 {
			return 0, 0, false
		}
	}
	return t0, t1, true
}

// shadedVertex carries what the fragment stage interpolates.
type shadedVertex struct {
	sx, sy, depth float64
	world         vmath.Vec3
	normal        vmath.Vec3 // world space
	viewNormal    vmath.Vec3
}

func (c *Canvas) DrawTriangleStrip(strip mesh.Strip) {
	if len(strip) < 3 {
		return
	}
	mvp := c.mvp()
	mv := c.view.Mul(c.model)

	verts := make([]shadedVertex, len(strip))
	ok := make([]bool, len(strip))
	for i, v := range strip {
		cv := toClip(mvp, v.Position)
		if !visible(cv) {
			continue
		}
		sx, sy, z := c.screen(cv)
		world, _ := c.model.MulPoint(v.Position)
		verts[i] = shadedVertex{
			sx: sx, sy: sy, depth: z,
			world:      world,
			normal:     c.model.MulDir(v.Normal).Normalized(),
			viewNormal: mv.MulDir(v.Normal).Normalized(),
		}
		ok[i] = true
	}

	for i := 2; i < len(strip); i++ {
		if ok[i-2] && ok[i-1] && ok[i] {
			c.triangle(verts[i-2], verts[i-1], verts[i])
		}
	}
}

func edge(ax, ay, bx, by, px, py float64) float64 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

func (c *Canvas) triangle(a, b, v shadedVertex) {
	area := edge(a.sx, a.sy, b.sx, b.sy, v.sx, v.sy)
	if area == 0 {
		return
	}

	minX := int(math.Max(0, math.Floor(math.Min(a.sx, math.Min(b.sx, v.sx)))))
	maxX := int(math.Min(float64(c.width-1), math.Ceil(math.Max(a.sx, math.Max(b.sx, v.sx)))))
	minY := int(math.Max(0, math.Floor(math.Min(a.sy, math.Min(b.sy, v.sy)))))
	maxY := int(math.Min(float64(c.height-1), math.Ceil(math.Max(a.sy, math.Max(b.sy, v.sy)))))

	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5
			w0 := edge(b.sx, b.sy, v.sx, v.sy, px, py) / area
			w1 := edge(v.sx, v.sy, a.sx, a.sy, px, py) / area
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			depth := a.depth*w0 + b.depth*w1 + v.depth*w2
			intensity := c.shade(
				a.world.Scale(w0).Add(b.world.Scale(w1)).Add(v.world.Scale(w2)),
				a.normal.Scale(w0).Add(b.normal.Scale(w1)).Add(v.normal.Scale(w2)).Normalized(),
				a.viewNormal.Scale(w0).Add(b.viewNormal.Scale(w1)).Add(v.viewNormal.Scale(w2)).Normalized(),
			)
			col := c.color
			if c.lit {
				col = colorful.Color{R: col.R * intensity, G: col.G * intensity, B: col.B * intensity}
			}
			c.plot(x, y, depth, rampGlyph(intensity), col)
		}
	}
}

// shade returns a fragment intensity in [0, 1]. Lit fragments use a point
// light; unlit ones darken toward the silhouette.
func (c *Canvas) shade(world, normal, viewNormal vmath.Vec3) float64 {
	if c.lit {
		l := c.LightPosition.Sub(world).Normalized()
		diffuse := math.Max(0, normal.Dot(l))
		return vmath.Clamp(c.Ambient+(1-c.Ambient)*diffuse, 0, 1)
	}
	return vmath.Clamp(0.35+0.65*math.Abs(viewNormal.Z), 0, 1)
}

func rampGlyph(intensity float64) rune {
	ramp := []rune(shadeRamp)
	i := 1 + int(math.Round(intensity*float64(len(ramp)-2)))
	if i >= len(ramp) {
		i = len(ramp) - 1
	}
	return ramp[i]
}

// Present renders the grid, grouping runs of equal color into one style.
func (c *Canvas) Present() {
	var b strings.Builder
	for y := 0; y < c.height; y++ {
		row := c.cells[y*c.width : (y+1)*c.width]
		for x := 0; x < len(row); {
			if row[x].glyph == ' ' {
				b.WriteByte(' ')
				x++
				continue
			}
			hex := row[x].color.Clamped().Hex()
			var run strings.Builder
			end := x
			for end < len(row) && row[end].glyph != ' ' && row[end].color.Clamped().Hex() == hex {
				run.WriteRune(row[end].glyph)
				end++
			}
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
			b.WriteString(style.Render(run.String()))
			x = end
		}
		if y < c.height-1 {
			b.WriteByte('\n')
		}
	}
	c.frame = b.String()
}
