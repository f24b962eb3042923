package camera

import (
	"math"

	"github.com/litescript/ls-orrery/internal/vmath"
)

// Tour is the auto-pilot: a slow, breathing circuit around the system that
// always faces the origin.
type Tour struct {
	elapsed float64
}

// Elapsed returns the tour clock in seconds.
func (t *Tour) Elapsed() float64 { return t.elapsed }

// Restart rewinds the tour clock.
func (t *Tour) Restart() { t.elapsed = 0 }

// Advance moves the tour clock forward and returns the new pose.
func (t *Tour) Advance(dt float64) (position vmath.Vec3, yaw, pitch float64) {
	t.elapsed += dt
	return TourPose(t.elapsed)
}

// TourPose is the tour's pose at tour time tau.
func TourPose(tau float64) (position vmath.Vec3, yaw, pitch float64) {
	r := 34 + 10*math.Sin(0.11*tau)
	theta := 0.12 * tau
	h := 9 + 6*math.Sin(0.07*tau)

	position = vmath.V(r*math.Cos(theta), h, r*math.Sin(theta))
	dir := position.Scale(-1).Normalized()
	yaw = math.Atan2(dir.Z, dir.X)
	pitch = math.Asin(dir.Y)
	return position, yaw, pitch
}
