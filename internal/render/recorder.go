package render

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/mesh"
	"github.com/litescript/ls-orrery/internal/vmath"
)

// Call is one recorded Backend operation.
type Call struct {
	Op       string
	Points   int // points, segments or vertices submitted
	Color    colorful.Color
	Alpha    float64
	Blending bool
	Depth    int // transform stack depth at the time of the call
}

// Recorder is a Backend that records calls instead of drawing. It checks
// transform stack balance, which a real backend would silently tolerate.
type Recorder struct {
	Calls      []Call
	Projection vmath.Mat4
	View       vmath.Mat4
	Presented  int
	Underflow  bool // PopTransform with an empty stack

	depth    int
	color    colorful.Color
	alpha    float64
	blending bool
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{Projection: vmath.Identity(), View: vmath.Identity(), alpha: 1}
}

func (r *Recorder) add(op string, n int) {
	r.Calls = append(r.Calls, Call{
		Op: op, Points: n,
		Color: r.color, Alpha: r.alpha,
		Blending: r.blending, Depth: r.depth,
	})
}

// Count returns how many calls used op.
func (r *Recorder) Count(op string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// StackDepth returns the current transform stack depth.
func (r *Recorder) StackDepth() int { return r.depth }

func (r *Recorder) Clear() { r.Calls = r.Calls[:0]; r.add("Clear", 0) }
func (r *Recorder) SetProjection(m vmath.Mat4) { r.Projection = m; r.add("SetProjection", 0) }
func (r *Recorder) SetView(m vmath.Mat4) { r.View = m; r.add("SetView", 0) }
func (r *Recorder) PushTransform() { r.depth++; r.add("PushTransform", 0) }
func (r *Recorder) Translate(v vmath.Vec3) { r.add("Translate", 0) }
func (r *Recorder) Rotate(a float64, v vmath.Vec3) { r.add("Rotate", 0) }

func (r *Recorder) PopTransform() {
	if r.depth == 0 {
		r.Underflow = true
	} else {
		r.depth--
	}
	r.add("PopTransform", 0)
}

func (r *Recorder) SetColor(c colorful.Color, alpha float64) {
	r.color, r.alpha = c, alpha
	r.add("SetColor", 0)
}

func (r *Recorder) SetMaterial(c colorful.Color, alpha float64) {
	r.color, r.alpha = c, alpha
	r.add("SetMaterial", 0)
}

func (r *Recorder) DrawPoints(p []vmath.Vec3) { r.add("DrawPoints", len(p)) }
func (r *Recorder) DrawLineStrip(p []vmath.Vec3) { r.add("DrawLineStrip", len(p)) }
func (r *Recorder) DrawLineLoop(p []vmath.Vec3) { r.add("DrawLineLoop", len(p)) }
func (r *Recorder) DrawLineSegments(s []mesh.Segment) { r.add("DrawLineSegments", len(s)) }
func (r *Recorder) DrawTriangleStrip(s mesh.Strip) { r.add("DrawTriangleStrip", len(s)) }
func (r *Recorder) EnableBlend(src, dst BlendFactor) { r.blending = true; r.add("EnableBlend", 0) }
func (r *Recorder) DisableBlend() { r.blending = false; r.add("DisableBlend", 0) }
func (r *Recorder) Present() { r.Presented++; r.add("Present", 0) }
