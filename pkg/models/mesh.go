// Package models provides mesh construction and loading for cube3d.
package models

import (
	"sort"

	"github.com/drewwalton19216801/cube3d/pkg/math3d"
	"github.com/drewwalton19216801/cube3d/pkg/render"
)

// Mesh is an indexed mesh of triangle and quad faces. Topology is
// built once and stays immutable during rendering; the renderer keeps
// its own per-frame transformed copy of the vertices.
type Mesh struct {
	Name     string
	Vertices []MeshVertex
	Faces    []Face
	Edges    [][2]int

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// MeshVertex holds the model-space vertex attributes.
type MeshVertex struct {
	Position math3d.Vec3
	UV       math3d.Vec2
}

// Face is a triangle or quad with its surface appearance.
type Face struct {
	V       [4]int // Indices into Mesh.Vertices; V[3] unused when N == 3
	N       int    // 3 or 4
	Surface render.Surface
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]MeshVertex, 0),
		Faces:    make([]Face, 0),
	}
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(pos math3d.Vec3, uv math3d.Vec2) int {
	m.Vertices = append(m.Vertices, MeshVertex{Position: pos, UV: uv})
	return len(m.Vertices) - 1
}

// AddTriangle appends a triangle face.
func (m *Mesh) AddTriangle(a, b, c int, surf render.Surface) {
	m.Faces = append(m.Faces, Face{V: [4]int{a, b, c, 0}, N: 3, Surface: surf})
}

// AddQuad appends a quad face. The renderer splits it along the a-c
// diagonal.
func (m *Mesh) AddQuad(a, b, c, d int, surf render.Surface) {
	m.Faces = append(m.Faces, Face{V: [4]int{a, b, c, d}, N: 4, Surface: surf})
}

// BuildEdges derives the unique undirected edge list from the faces,
// replacing any existing edges. Each shared edge appears once.
func (m *Mesh) BuildEdges() {
	seen := make(map[[2]int]struct{})
	m.Edges = m.Edges[:0]
	for _, f := range m.Faces {
		for k := range f.N {
			a, b := f.V[k], f.V[(k+1)%f.N]
			if a > b {
				a, b = b, a
			}
			key := [2]int{a, b}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			m.Edges = append(m.Edges, key)
		}
	}
	sort.Slice(m.Edges, func(i, j int) bool {
		if m.Edges[i][0] != m.Edges[j][0] {
			return m.Edges[i][0] < m.Edges[j][0]
		}
		return m.Edges[i][1] < m.Edges[j][1]
	})
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles after quad splitting.
func (m *Mesh) TriangleCount() int {
	n := 0
	for _, f := range m.Faces {
		n += f.N - 2
	}
	return n
}

// SetSurface replaces the surface of face i.
func (m *Mesh) SetSurface(i int, surf render.Surface) {
	m.Faces[i].Surface = surf
}

// Clone creates a deep copy of the mesh. Surfaces are shared.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]MeshVertex, len(m.Vertices)),
		Faces:     make([]Face, len(m.Faces)),
		Edges:     make([][2]int, len(m.Edges)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	copy(clone.Edges, m.Edges)
	return clone
}

// VertexCount returns the number of vertices.
// Implements render.MeshSource.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// GetVertex returns the position and UV for vertex i.
// Implements render.MeshSource.
func (m *Mesh) GetVertex(i int) (math3d.Vec3, math3d.Vec2) {
	v := m.Vertices[i]
	return v.Position, v.UV
}

// FaceCount returns the number of faces.
// Implements render.MeshSource.
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// GetFace returns the vertex indices and vertex count for face i.
// Implements render.MeshSource.
func (m *Mesh) GetFace(i int) ([4]int, int) {
	return m.Faces[i].V, m.Faces[i].N
}

// GetSurface returns the surface for face i, defaulting to flat white.
// Implements render.MeshSource.
func (m *Mesh) GetSurface(i int) render.Surface {
	if m.Faces[i].Surface == nil {
		return render.FlatColor{C: render.ColorWhite}
	}
	return m.Faces[i].Surface
}

// EdgeCount returns the number of unique edges.
// Implements render.MeshSource.
func (m *Mesh) EdgeCount() int {
	return len(m.Edges)
}

// GetEdge returns edge i as a pair of vertex indices.
// Implements render.MeshSource.
func (m *Mesh) GetEdge(i int) [2]int {
	return m.Edges[i]
}
