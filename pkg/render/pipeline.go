package render

import (
	"sort"

	"github.com/drewwalton19216801/cube3d/pkg/math3d"
)

// MeshSource is what the renderer needs from a mesh: indexed vertices,
// faces of three or four vertices with a Surface each, and a unique
// edge list for wireframe rendering.
type MeshSource interface {
	VertexCount() int
	// GetVertex returns the model-space position and texture
	// coordinates of vertex i.
	GetVertex(i int) (math3d.Vec3, math3d.Vec2)

	FaceCount() int
	// GetFace returns the vertex indices of face i and how many of
	// them are used (3 or 4).
	GetFace(i int) ([4]int, int)
	GetSurface(i int) Surface

	EdgeCount() int
	GetEdge(i int) [2]int
}

// ProjectionMode selects how transformed points map to the screen.
type ProjectionMode int

const (
	// Orthographic drops z and scales x/y uniformly.
	Orthographic ProjectionMode = iota
	// Perspective divides x/y by distance from the viewer.
	Perspective
)

// RenderMode selects filled or wireframe output.
type RenderMode int

const (
	ModeSolid RenderMode = iota
	ModeWireframe
)

// DefaultViewerDistance is the viewer distance used by perspective
// projection when FrameParams leaves it zero, in model units.
const DefaultViewerDistance = 3.0

// FrameParams describes one frame of the vertex pipeline: the model
// rotation, screen-space translation, zoom, light, and presentation
// mode. The zero value renders an unrotated solid orthographic frame
// lit by whatever Light's zero value is; set Light explicitly.
type FrameParams struct {
	AngleX      float64     // rotation about the x axis, radians
	AngleY      float64     // rotation about the y axis, radians
	Translation math3d.Vec2 // screen-space offset in pixels
	Zoom        float64     // scale multiplier; 0 means 1
	Light       Light
	Mode        RenderMode
	Projection  ProjectionMode
	Distance    float64 // perspective viewer distance; 0 means DefaultViewerDistance
	WireColor   Color   // wireframe color; zero value means white
}

// baseScale returns the model-to-pixel scale for a viewport, before
// zoom: a quarter of the smaller dimension, so a unit-radius model
// fills half the screen.
func baseScale(width, height int) float64 {
	return float64(min(width, height)) / 4
}

func (p FrameParams) zoom() float64 {
	if p.Zoom == 0 {
		return 1
	}
	return p.Zoom
}

func (p FrameParams) distance() float64 {
	if p.Distance == 0 {
		return DefaultViewerDistance
	}
	return p.Distance
}

// TransformVertices runs the vertex stage for one frame: rotate each
// mesh vertex, translate it in transformed space, accumulate smooth
// per-vertex normals from the rotated face normals, and project to
// screen coordinates. The arena and normals slices are reused across
// frames; both must have length mesh.VertexCount().
func TransformVertices(mesh MeshSource, arena []Vertex, normals []math3d.Vec3, p FrameParams, width, height int) {
	rot := math3d.RotationY(p.AngleY).Mul(math3d.RotationX(p.AngleX))
	scale := baseScale(width, height) * p.zoom()
	cx := float64(width) / 2
	cy := float64(height) / 2

	// Screen-space translation expressed in transformed model units,
	// so it composes with projection like any other offset.
	offset := math3d.V3(p.Translation.X/scale, p.Translation.Y/scale, 0)

	for i := range arena {
		pos, uv := mesh.GetVertex(i)
		arena[i].World = rot.MulVec(pos).Add(offset)
		arena[i].UV = uv
		normals[i] = math3d.Zero3()
	}

	// Smooth shading: every face adds its normal to each of its
	// vertices; a quad contributes to all four slots. Normalizing the
	// accumulated sum averages the adjacent face orientations.
	for f := range mesh.FaceCount() {
		idx, n := mesh.GetFace(f)
		fn := math3d.FaceNormal(arena[idx[0]].World, arena[idx[1]].World, arena[idx[2]].World)
		for k := range n {
			normals[idx[k]] = normals[idx[k]].Add(fn)
		}
	}

	for i := range arena {
		arena[i].Normal = normals[i].Normalize()

		w := arena[i].World
		switch p.Projection {
		case Perspective:
			d := p.distance()
			factor := d / (w.Z + d)
			arena[i].Screen = math3d.V2(w.X*factor*scale+cx, w.Y*factor*scale+cy)
		default:
			arena[i].Screen = math3d.V2(w.X*scale+cx, w.Y*scale+cy)
		}
	}
}

// SortFacesBackToFront fills order with face indices sorted by
// descending average transformed z, so iterating it draws the farthest
// faces first. The depth buffer still resolves per-pixel visibility;
// the ordering keeps overdraw predictable. The order slice is reused
// and must have length mesh.FaceCount().
func SortFacesBackToFront(mesh MeshSource, arena []Vertex, order []int) {
	depths := make([]float64, len(order))
	for f := range order {
		order[f] = f
		idx, n := mesh.GetFace(f)
		sum := 0.0
		for k := range n {
			sum += arena[idx[k]].World.Z
		}
		depths[f] = sum / float64(n)
	}
	sort.Slice(order, func(a, b int) bool {
		return depths[order[a]] > depths[order[b]]
	})
}
