package render

import (
	"math"
	"testing"

	"github.com/drewwalton19216801/cube3d/pkg/math3d"
)

// flatVertex builds a screen-space vertex with the given depth,
// a toward-viewer normal, and zero UVs.
func flatVertex(x, y, z float64) Vertex {
	return Vertex{
		World:  math3d.V3(x, y, z),
		Screen: math3d.V2(x, y),
		Normal: math3d.V3(0, 0, -1),
	}
}

// towardViewer lights straight down the -z axis so flatVertex
// triangles shade at full intensity.
func towardViewer() Light {
	return Directional(math3d.V3(0, 0, -1))
}

func countColor(fb *Framebuffer, c Color) int {
	n := 0
	for _, p := range fb.Pixels {
		if p == c {
			n++
		}
	}
	return n
}

func TestEdgeFunctionSign(t *testing.T) {
	a := math3d.V2(0, 0)
	b := math3d.V2(4, 0)
	e := makeEdge(a, b)

	// In y-down screen space, points below a left-to-right edge are on
	// its positive side.
	if e.at(2, 2) <= 0 {
		t.Errorf("point below edge: w = %v, want > 0", e.at(2, 2))
	}
	if e.at(2, -2) >= 0 {
		t.Errorf("point above edge: w = %v, want < 0", e.at(2, -2))
	}
	if e.at(2, 0) != 0 {
		t.Errorf("point on edge: w = %v, want 0", e.at(2, 0))
	}
}

func TestEdgeFunctionsSumToArea(t *testing.T) {
	// The three edge values of any point partition the doubled signed
	// area, so the barycentric weights always sum to 1.
	v0 := math3d.V2(3, 1)
	v1 := math3d.V2(11, 4)
	v2 := math3d.V2(5, 9)

	area := makeEdge(v0, v1).at(v2.X, v2.Y)
	e0 := makeEdge(v1, v2)
	e1 := makeEdge(v2, v0)
	e2 := makeEdge(v0, v1)

	points := []math3d.Vec2{
		{X: 5, Y: 4}, {X: 3, Y: 1}, {X: 8, Y: 5}, {X: 0, Y: 0}, {X: -4, Y: 17},
	}
	for _, p := range points {
		sum := (e0.at(p.X, p.Y) + e1.at(p.X, p.Y) + e2.at(p.X, p.Y)) / area
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("weights at %v sum to %v, want 1", p, sum)
		}
	}

	// Strictly inside, every edge value shares the area's sign; outside,
	// at least one opposes it.
	sameSign := func(w float64) bool { return w*area > 0 }
	inside := math3d.V2(6, 4)
	if !sameSign(e0.at(inside.X, inside.Y)) ||
		!sameSign(e1.at(inside.X, inside.Y)) ||
		!sameSign(e2.at(inside.X, inside.Y)) {
		t.Errorf("interior point %v fails the shared-sign test", inside)
	}
	outside := math3d.V2(20, 20)
	if sameSign(e0.at(outside.X, outside.Y)) &&
		sameSign(e1.at(outside.X, outside.Y)) &&
		sameSign(e2.at(outside.X, outside.Y)) {
		t.Errorf("exterior point %v passes the shared-sign test", outside)
	}
}

func TestDrawTriangleCoverage(t *testing.T) {
	fb := NewFramebuffer(20, 20)
	db := NewDepthBuffer(20, 20)

	v0 := flatVertex(2, 2, 0)
	v1 := flatVertex(18, 2, 0)
	v2 := flatVertex(2, 18, 0)

	shaded, ok := DrawTriangle(fb, db, nil, towardViewer(), FlatColor{C: ColorWhite}, &v0, &v1, &v2)
	if !ok {
		t.Fatal("triangle reported degenerate")
	}
	if shaded == 0 {
		t.Fatal("no pixels shaded")
	}

	// Roughly half of the 16x16 box.
	if shaded < 100 || shaded > 156 {
		t.Errorf("shaded %d pixels, want about 128", shaded)
	}

	if got := fb.GetPixel(5, 5); got != ColorWhite {
		t.Errorf("interior pixel = %v, want white", got)
	}
	if got := fb.GetPixel(17, 17); got != (Color{}) {
		t.Errorf("exterior pixel = %v, want untouched", got)
	}
}

func TestDrawTriangleWindingAgnostic(t *testing.T) {
	// The same triangle with opposite windings must cover identical
	// pixels: there is no back-face culling.
	verts := []Vertex{
		flatVertex(3, 3, 0),
		flatVertex(16, 5, 0),
		flatVertex(7, 15, 0),
	}

	fbCW := NewFramebuffer(20, 20)
	dbCW := NewDepthBuffer(20, 20)
	nCW, ok := DrawTriangle(fbCW, dbCW, nil, towardViewer(), FlatColor{C: ColorWhite}, &verts[0], &verts[1], &verts[2])
	if !ok {
		t.Fatal("cw triangle degenerate")
	}

	fbCCW := NewFramebuffer(20, 20)
	dbCCW := NewDepthBuffer(20, 20)
	nCCW, ok := DrawTriangle(fbCCW, dbCCW, nil, towardViewer(), FlatColor{C: ColorWhite}, &verts[0], &verts[2], &verts[1])
	if !ok {
		t.Fatal("ccw triangle degenerate")
	}

	if nCW != nCCW {
		t.Fatalf("cw shaded %d pixels, ccw shaded %d", nCW, nCCW)
	}
	for i := range fbCW.Pixels {
		if fbCW.Pixels[i] != fbCCW.Pixels[i] {
			t.Fatalf("pixel %d differs between windings", i)
		}
	}
}

func TestSharedEdgePixelsPaintedOnce(t *testing.T) {
	// A quad split along its diagonal: the fill rule must hand every
	// pixel of the shared edge to exactly one triangle, so the total
	// coverage equals the full rectangle.
	fb := NewFramebuffer(20, 20)
	db := NewDepthBuffer(20, 20)

	a := flatVertex(2, 2, 0)
	b := flatVertex(12, 2, 0)
	c := flatVertex(12, 12, 0)
	d := flatVertex(2, 12, 0)

	light := towardViewer()
	n1, _ := DrawTriangle(fb, db, nil, light, FlatColor{C: ColorRed}, &a, &b, &c)
	n2, _ := DrawTriangle(fb, db, nil, light, FlatColor{C: ColorBlue}, &a, &c, &d)

	// Pixel centers inside [2,12)x[2,12): a 10x10 block.
	if n1+n2 != 100 {
		t.Errorf("quad covered %d pixels, want exactly 100", n1+n2)
	}
}

func TestDepthTestIdempotent(t *testing.T) {
	fb := NewFramebuffer(20, 20)
	db := NewDepthBuffer(20, 20)

	v0 := flatVertex(2, 2, 1)
	v1 := flatVertex(18, 2, 1)
	v2 := flatVertex(2, 18, 1)

	light := towardViewer()
	first, _ := DrawTriangle(fb, db, nil, light, FlatColor{C: ColorWhite}, &v0, &v1, &v2)
	if first == 0 {
		t.Fatal("first pass shaded nothing")
	}

	// Strict z comparison: redrawing identical geometry changes nothing.
	second, _ := DrawTriangle(fb, db, nil, light, FlatColor{C: ColorRed}, &v0, &v1, &v2)
	if second != 0 {
		t.Errorf("second identical pass shaded %d pixels, want 0", second)
	}
	if got := countColor(fb, ColorRed); got != 0 {
		t.Errorf("%d red pixels leaked through the depth test", got)
	}
}

func TestDepthTestNearerWins(t *testing.T) {
	// Draw order must not matter: the smaller z wins either way.
	draw := func(farFirst bool) Color {
		fb := NewFramebuffer(20, 20)
		db := NewDepthBuffer(20, 20)
		light := towardViewer()

		near := []Vertex{flatVertex(0, 0, 1), flatVertex(19, 0, 1), flatVertex(0, 19, 1)}
		far := []Vertex{flatVertex(0, 0, 5), flatVertex(19, 0, 5), flatVertex(0, 19, 5)}

		if farFirst {
			DrawTriangle(fb, db, nil, light, FlatColor{C: ColorRed}, &far[0], &far[1], &far[2])
			DrawTriangle(fb, db, nil, light, FlatColor{C: ColorWhite}, &near[0], &near[1], &near[2])
		} else {
			DrawTriangle(fb, db, nil, light, FlatColor{C: ColorWhite}, &near[0], &near[1], &near[2])
			DrawTriangle(fb, db, nil, light, FlatColor{C: ColorRed}, &far[0], &far[1], &far[2])
		}
		return fb.GetPixel(5, 5)
	}

	if got := draw(true); got != ColorWhite {
		t.Errorf("far drawn first: pixel = %v, want white", got)
	}
	if got := draw(false); got != ColorWhite {
		t.Errorf("near drawn first: pixel = %v, want white", got)
	}
}

func TestDegenerateTriangleSkipped(t *testing.T) {
	fb := NewFramebuffer(20, 20)
	db := NewDepthBuffer(20, 20)

	// Collinear vertices: zero area.
	v0 := flatVertex(2, 2, 0)
	v1 := flatVertex(10, 10, 0)
	v2 := flatVertex(18, 18, 0)

	shaded, ok := DrawTriangle(fb, db, nil, towardViewer(), FlatColor{C: ColorWhite}, &v0, &v1, &v2)
	if ok {
		t.Error("degenerate triangle not reported")
	}
	if shaded != 0 {
		t.Errorf("degenerate triangle shaded %d pixels", shaded)
	}
}

func TestLightingIntensityRange(t *testing.T) {
	fb := NewFramebuffer(20, 20)
	db := NewDepthBuffer(20, 20)
	sb := NewShadeBuffer(20, 20)

	v0 := flatVertex(2, 2, 0)
	v1 := flatVertex(18, 2, 0)
	v2 := flatVertex(2, 18, 0)

	// Normal points straight at the light: full intensity, full color.
	DrawTriangle(fb, db, sb, towardViewer(), FlatColor{C: RGB(200, 100, 50)}, &v0, &v1, &v2)
	if got := sb.At(5, 5); got != 1.0 {
		t.Errorf("facing intensity = %v, want 1.0", got)
	}
	if got := fb.GetPixel(5, 5); got != RGB(200, 100, 50) {
		t.Errorf("facing color = %v, want unattenuated", got)
	}

	// Normal points away: the ambient floor keeps the face visible.
	fb.Clear(Color{})
	db.Clear()
	away := Directional(math3d.V3(0, 0, 1))
	DrawTriangle(fb, db, sb, away, FlatColor{C: RGB(200, 100, 50)}, &v0, &v1, &v2)
	if got := sb.At(5, 5); got != AmbientFloor {
		t.Errorf("away intensity = %v, want %v", got, AmbientFloor)
	}
	if got := fb.GetPixel(5, 5); got != RGB(20, 10, 5) {
		t.Errorf("ambient color = %v, want RGB(20, 10, 5)", got)
	}
}

func TestIntensityPerpendicularNormal(t *testing.T) {
	// A normal at right angles to the light gets exactly the ambient
	// floor, never less.
	l := Directional(math3d.V3(0, 0, -1))
	if got := l.Intensity(math3d.V3(1, 0, 0), math3d.Zero3()); got != AmbientFloor {
		t.Errorf("perpendicular intensity = %v, want %v", got, AmbientFloor)
	}
	if got := l.Intensity(math3d.V3(0, 0, -1), math3d.Zero3()); got != 1.0 {
		t.Errorf("facing intensity = %v, want 1.0", got)
	}
}

func TestPointLightAtSurface(t *testing.T) {
	// A point light sitting exactly on the sample point has no
	// direction; the intensity degrades to the ambient floor.
	l := PointLight(math3d.V3(1, 2, 3))
	got := l.Intensity(math3d.V3(0, 0, -1), math3d.V3(1, 2, 3))
	if got != AmbientFloor {
		t.Errorf("intensity = %v, want %v", got, AmbientFloor)
	}
}

func TestApplyLighting(t *testing.T) {
	tests := []struct {
		name      string
		in        Color
		intensity float64
		want      Color
	}{
		{"full", RGB(100, 150, 200), 1.0, RGB(100, 150, 200)},
		{"half", RGB(100, 150, 200), 0.5, RGB(50, 75, 100)},
		{"floor", RGB(200, 100, 50), 0.1, RGB(20, 10, 5)},
		{"clamped", RGB(200, 200, 200), 2.0, RGB(255, 255, 255)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ApplyLighting(tc.in, tc.intensity); got != tc.want {
				t.Errorf("ApplyLighting(%v, %v) = %v, want %v", tc.in, tc.intensity, got, tc.want)
			}
		})
	}
}

func TestTexturedSurfaceSampling(t *testing.T) {
	tex := NewTexture(2, 2)
	tex.SetPixel(0, 0, RGB(255, 0, 0))
	tex.SetPixel(1, 0, RGB(0, 255, 0))
	tex.SetPixel(0, 1, RGB(0, 0, 255))
	tex.SetPixel(1, 1, RGB(255, 255, 255))

	s := TexturedSurface{Base: ColorBlack, Tex: tex}

	// v=1 is the top row of the image.
	if got := s.ShadeAt(0, 1); got != RGB(255, 0, 0) {
		t.Errorf("ShadeAt(0,1) = %v, want top-left red", got)
	}
	if got := s.ShadeAt(0, 0); got != RGB(0, 0, 255) {
		t.Errorf("ShadeAt(0,0) = %v, want bottom-left blue", got)
	}
}

func BenchmarkDrawTriangle(b *testing.B) {
	fb := NewFramebuffer(200, 200)
	db := NewDepthBuffer(200, 200)
	light := towardViewer()
	surf := FlatColor{C: ColorWhite}

	v0 := flatVertex(10, 10, 0)
	v1 := flatVertex(190, 20, 0)
	v2 := flatVertex(50, 190, 0)

	for b.Loop() {
		db.Clear()
		DrawTriangle(fb, db, nil, light, surf, &v0, &v1, &v2)
	}
}
