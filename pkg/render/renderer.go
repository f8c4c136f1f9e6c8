package render

import (
	"errors"
	"math"

	"github.com/drewwalton19216801/cube3d/pkg/math3d"
)

// MinViewport is the smallest width and height the renderer accepts.
const MinViewport = 10

// ErrViewportTooSmall is returned by RenderFrame when the framebuffer
// is smaller than MinViewport in either dimension.
var ErrViewportTooSmall = errors.New("render: viewport too small")

// RenderStats counts what one frame did.
type RenderStats struct {
	FacesDrawn          int
	TrianglesDrawn      int
	DegenerateTriangles int
	PixelsShaded        int
	EdgesDrawn          int
}

// Renderer owns the per-frame buffers and vertex arena for drawing a
// mesh. The mesh topology is immutable; the arena of transformed
// vertices is overwritten each frame, so a Renderer must not be shared
// across goroutines.
type Renderer struct {
	fb    *Framebuffer
	db    *DepthBuffer
	sb    *ShadeBuffer
	mesh  MeshSource
	arena []Vertex
	norms []math3d.Vec3
	order []int

	Background Color
	Stats      RenderStats
}

// NewRenderer creates a renderer for the given mesh and viewport size.
func NewRenderer(mesh MeshSource, width, height int) *Renderer {
	r := &Renderer{
		mesh:       mesh,
		arena:      make([]Vertex, mesh.VertexCount()),
		norms:      make([]math3d.Vec3, mesh.VertexCount()),
		order:      make([]int, mesh.FaceCount()),
		Background: ColorBlack,
	}
	r.Resize(width, height)
	return r
}

// Resize replaces the frame, depth, and shade buffers with new ones of
// the given size. Sizes below MinViewport are allowed here; RenderFrame
// rejects them.
func (r *Renderer) Resize(width, height int) {
	r.fb = NewFramebuffer(width, height)
	r.db = NewDepthBuffer(width, height)
	r.sb = NewShadeBuffer(width, height)
}

// Framebuffer returns the current frame's pixel buffer.
func (r *Renderer) Framebuffer() *Framebuffer { return r.fb }

// ShadeBuffer returns the current frame's intensity buffer.
func (r *Renderer) ShadeBuffer() *ShadeBuffer { return r.sb }

// DepthBuffer returns the current frame's depth buffer.
func (r *Renderer) DepthBuffer() *DepthBuffer { return r.db }

// RenderFrame clears the buffers and draws one frame of the mesh with
// the given parameters. If the viewport is smaller than MinViewport in
// either dimension it returns ErrViewportTooSmall without touching any
// buffer.
func (r *Renderer) RenderFrame(p FrameParams) error {
	if r.fb.Width < MinViewport || r.fb.Height < MinViewport {
		return ErrViewportTooSmall
	}

	r.fb.Clear(r.Background)
	r.db.Clear()
	r.sb.Clear()
	r.Stats = RenderStats{}

	TransformVertices(r.mesh, r.arena, r.norms, p, r.fb.Width, r.fb.Height)

	if p.Mode == ModeWireframe {
		r.drawWireframe(p)
		return nil
	}

	SortFacesBackToFront(r.mesh, r.arena, r.order)
	for _, f := range r.order {
		idx, n := r.mesh.GetFace(f)
		surf := r.mesh.GetSurface(f)
		r.Stats.FacesDrawn++

		// A quad splits along its 0-2 diagonal. Shared-edge pixels are
		// covered exactly once thanks to the rasterizer's fill rule.
		r.drawTriangle(p.Light, surf, &r.arena[idx[0]], &r.arena[idx[1]], &r.arena[idx[2]])
		if n == 4 {
			r.drawTriangle(p.Light, surf, &r.arena[idx[0]], &r.arena[idx[2]], &r.arena[idx[3]])
		}
	}
	return nil
}

func (r *Renderer) drawTriangle(light Light, surf Surface, v0, v1, v2 *Vertex) {
	shaded, ok := DrawTriangle(r.fb, r.db, r.sb, light, surf, v0, v1, v2)
	if !ok {
		r.Stats.DegenerateTriangles++
		return
	}
	r.Stats.TrianglesDrawn++
	r.Stats.PixelsShaded += shaded
}

// drawWireframe draws every unique mesh edge as a line. Edges skip the
// depth test: the whole frame is lines, so occlusion carries no
// information worth the cost.
func (r *Renderer) drawWireframe(p FrameParams) {
	c := p.WireColor
	if c == (Color{}) {
		c = ColorWhite
	}
	for i := range r.mesh.EdgeCount() {
		e := r.mesh.GetEdge(i)
		a := r.arena[e[0]].Screen
		b := r.arena[e[1]].Screen
		r.fb.DrawLine(
			int(math.Floor(a.X)), int(math.Floor(a.Y)),
			int(math.Floor(b.X)), int(math.Floor(b.Y)), c)
		r.Stats.EdgesDrawn++
	}
}
