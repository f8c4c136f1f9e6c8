package render

import (
	"math"

	"github.com/drewwalton19216801/cube3d/pkg/math3d"
)

// AmbientFloor is the minimum lighting intensity. No surface ever goes
// fully black, regardless of orientation relative to the light.
const AmbientFloor = 0.1

// Light is a Lambertian diffuse light source: either a fixed direction
// or a world-space point. A point light affects only the per-sample
// direction; there is no distance falloff.
type Light struct {
	dir   math3d.Vec3 // unit direction toward the light (directional)
	pos   math3d.Vec3 // world position (point)
	point bool
}

// Directional creates a light with a fixed direction toward the light.
// The direction is normalized; a zero direction yields a light that
// contributes only the ambient floor.
func Directional(dir math3d.Vec3) Light {
	return Light{dir: dir.Normalize()}
}

// PointLight creates a light at a world-space position. The per-sample
// direction is recomputed as (pos - surface point), normalized.
func PointLight(pos math3d.Vec3) Light {
	return Light{pos: pos, point: true}
}

// Intensity returns the diffuse intensity for a surface with the given
// unit normal at the given world position, clamped below by
// AmbientFloor. If the light coincides with the sample point the
// direction degenerates to zero and the floor applies.
func (l Light) Intensity(normal, at math3d.Vec3) float64 {
	dir := l.dir
	if l.point {
		dir = l.pos.Sub(at).Normalize()
	}
	return math.Max(normal.Dot(dir), AmbientFloor)
}
