package models

import (
	"github.com/drewwalton19216801/cube3d/pkg/math3d"
	"github.com/drewwalton19216801/cube3d/pkg/render"
)

// cubeCorners lists the unit cube's eight corners. Index order is the
// contract the face and edge tables below are written against.
var cubeCorners = [8]math3d.Vec3{
	{X: -1, Y: -1, Z: -1}, // 0
	{X: 1, Y: -1, Z: -1},  // 1
	{X: 1, Y: 1, Z: -1},   // 2
	{X: -1, Y: 1, Z: -1},  // 3
	{X: -1, Y: -1, Z: 1},  // 4
	{X: 1, Y: -1, Z: 1},   // 5
	{X: 1, Y: 1, Z: 1},    // 6
	{X: -1, Y: 1, Z: 1},   // 7
}

// cubeFaces lists the six quads, wound consistently so every face
// normal points into the cube. Coverage is winding-agnostic, so only
// the lighting cares; the default light sits where these normals face.
var cubeFaces = [6][4]int{
	{0, 1, 2, 3}, // front
	{5, 4, 7, 6}, // back
	{4, 0, 3, 7}, // left
	{1, 5, 6, 2}, // right
	{4, 5, 1, 0}, // top
	{3, 2, 6, 7}, // bottom
}

// cubeFaceColors pairs with cubeFaces by index.
var cubeFaceColors = [6]render.Color{
	render.ColorRed,
	render.ColorGreen,
	render.ColorBlue,
	render.ColorYellow,
	render.ColorMagenta,
	render.ColorCyan,
}

// cubeEdges lists the twelve unique edges for wireframe rendering.
var cubeEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0}, // front face
	{4, 5}, {5, 6}, {6, 7}, {7, 4}, // back face
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // connecting edges
}

// Cube builds a cube of the given edge length centered on the origin,
// with one flat color per face. UVs come from the corner's x/y
// position so textured surfaces have something sensible to sample.
func Cube(size float64) *Mesh {
	m := NewMesh("cube")
	half := size / 2

	for _, c := range cubeCorners {
		m.AddVertex(c.Scale(half), math3d.V2((c.X+1)/2, (c.Y+1)/2))
	}
	for i, f := range cubeFaces {
		m.AddQuad(f[0], f[1], f[2], f[3], render.FlatColor{C: cubeFaceColors[i]})
	}
	m.Edges = make([][2]int, len(cubeEdges))
	copy(m.Edges, cubeEdges[:])

	m.CalculateBounds()
	return m
}

// TexturedCube builds a cube whose faces blend the given texture over
// the standard face colors.
func TexturedCube(size float64, tex *render.Texture) *Mesh {
	m := Cube(size)
	for i := range m.Faces {
		m.SetSurface(i, render.TexturedSurface{Base: cubeFaceColors[i], Tex: tex})
	}
	return m
}
