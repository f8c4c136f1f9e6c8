package render

import (
	"github.com/drewwalton19216801/cube3d/pkg/math3d"
)

// Vertex is a pipeline vertex: transformed world-space position and
// normal alongside the projected screen position and texture
// coordinates.
type Vertex struct {
	World  math3d.Vec3 // transformed position before projection
	Screen math3d.Vec2 // projected position in pixels
	Normal math3d.Vec3 // smooth unit normal
	UV     math3d.Vec2 // texture coordinates
}

// edgeCoeff holds the coefficients of one edge function
// w(p) = A*p.x + B*p.y + C, set up so that A is the per-column step
// and B the per-row step when walking the bounding box.
type edgeCoeff struct {
	A, B, C float64
}

func makeEdge(a, b math3d.Vec2) edgeCoeff {
	return edgeCoeff{
		A: b.Y - a.Y,
		B: a.X - b.X,
		C: a.Y*b.X - a.X*b.Y,
	}
}

func (e edgeCoeff) at(x, y float64) float64 {
	return e.A*x + e.B*y + e.C
}

// covers reports whether an edge value admits the pixel under the
// top-left fill rule. Interior points (w > 0) always pass; points
// exactly on the edge pass only when the edge is a left edge (A > 0:
// it descends in y-down screen space) or a horizontal top edge
// (A == 0 and B > 0). Two triangles sharing an edge therefore paint
// each boundary pixel exactly once.
func (e edgeCoeff) covers(w float64) bool {
	if w > 0 {
		return true
	}
	return w == 0 && (e.A > 0 || (e.A == 0 && e.B > 0))
}

// DrawTriangle rasterizes a filled triangle into fb, resolving
// visibility with db and recording per-pixel lighting intensity in sb
// (sb may be nil). Coverage is winding-agnostic: both face
// orientations rasterize, and front/back resolution is left entirely
// to the depth test. Returns the number of pixels shaded and false if
// the triangle was degenerate (zero signed area).
func DrawTriangle(fb *Framebuffer, db *DepthBuffer, sb *ShadeBuffer, light Light, surf Surface, v0, v1, v2 *Vertex) (int, bool) {
	// Normalize winding so the signed area, measured with the same
	// edge-function convention as the coverage test, is positive.
	// Swapping two vertices flips the sign of every edge function, so
	// the inside test below is uniform regardless of the input
	// orientation.
	area := makeEdge(v0.Screen, v1.Screen).at(v2.Screen.X, v2.Screen.Y)
	if area < 0 {
		v1, v2 = v2, v1
		area = -area
	}
	if area == 0 {
		return 0, false
	}

	// Each weight comes from the edge opposite its vertex.
	e0 := makeEdge(v1.Screen, v2.Screen)
	e1 := makeEdge(v2.Screen, v0.Screen)
	e2 := makeEdge(v0.Screen, v1.Screen)

	// Clip the bounding box to the framebuffer.
	minX := max(int(min3(v0.Screen.X, v1.Screen.X, v2.Screen.X)), 0)
	minY := max(int(min3(v0.Screen.Y, v1.Screen.Y, v2.Screen.Y)), 0)
	maxX := min(int(max3(v0.Screen.X, v1.Screen.X, v2.Screen.X))+1, fb.Width-1)
	maxY := min(int(max3(v0.Screen.Y, v1.Screen.Y, v2.Screen.Y))+1, fb.Height-1)
	if minX > maxX || minY > maxY {
		return 0, true
	}

	// Evaluate the edge functions once at the first pixel center, then
	// step incrementally: +A per column, +B per row.
	px := float64(minX) + 0.5
	py := float64(minY) + 0.5
	w0Row := e0.at(px, py)
	w1Row := e1.at(px, py)
	w2Row := e2.at(px, py)

	invArea := 1 / area
	shaded := 0

	for y := minY; y <= maxY; y++ {
		w0, w1, w2 := w0Row, w1Row, w2Row
		for x := minX; x <= maxX; x++ {
			if e0.covers(w0) && e1.covers(w1) && e2.covers(w2) {
				b0 := w0 * invArea
				b1 := w1 * invArea
				b2 := w2 * invArea

				z := b0*v0.World.Z + b1*v1.World.Z + b2*v2.World.Z
				if db.Test(x, y, z) {
					world := math3d.V3(
						b0*v0.World.X+b1*v1.World.X+b2*v2.World.X,
						b0*v0.World.Y+b1*v1.World.Y+b2*v2.World.Y,
						z,
					)
					normal := v0.Normal.Scale(b0).
						Add(v1.Normal.Scale(b1)).
						Add(v2.Normal.Scale(b2)).
						Normalize()
					u := b0*v0.UV.X + b1*v1.UV.X + b2*v2.UV.X
					v := b0*v0.UV.Y + b1*v1.UV.Y + b2*v2.UV.Y

					intensity := light.Intensity(normal, world)
					fb.SetPixel(x, y, ApplyLighting(surf.ShadeAt(u, v), intensity))
					if sb != nil {
						sb.Set(x, y, intensity)
					}
					shaded++
				}
			}
			w0 += e0.A
			w1 += e1.A
			w2 += e2.A
		}
		w0Row += e0.B
		w1Row += e1.B
		w2Row += e2.B
	}
	return shaded, true
}

func min3(a, b, c float64) float64 {
	return min(a, min(b, c))
}

func max3(a, b, c float64) float64 {
	return max(a, max(b, c))
}
