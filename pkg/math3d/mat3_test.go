package math3d

import (
	"math"
	"testing"
)

const eps = 1e-9

func vecNear(a, b Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol &&
		math.Abs(a.Y-b.Y) <= tol &&
		math.Abs(a.Z-b.Z) <= tol
}

func TestIdentity3(t *testing.T) {
	v := V3(1, 2, 3)
	if got := Identity3().MulVec(v); got != v {
		t.Errorf("Identity3().MulVec(%v) = %v", v, got)
	}
}

func TestRotationQuarterTurns(t *testing.T) {
	tests := []struct {
		name string
		m    Mat3
		in   Vec3
		want Vec3
	}{
		{"X by pi/2 sends Y to Z", RotationX(math.Pi / 2), V3(0, 1, 0), V3(0, 0, 1)},
		{"Y by pi/2 sends Z to X", RotationY(math.Pi / 2), V3(0, 0, 1), V3(1, 0, 0)},
		{"Z by pi/2 sends X to Y", RotationZ(math.Pi / 2), V3(1, 0, 0), V3(0, 1, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.m.MulVec(tc.in)
			if !vecNear(got, tc.want, eps) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRotationFullTurnClosure(t *testing.T) {
	// Rotating by 2*pi about any single axis must return every point to
	// itself within floating-point tolerance.
	points := []Vec3{
		V3(1, 0, 0), V3(0, 1, 0), V3(0, 0, 1),
		V3(-0.5, -0.5, -0.5), V3(0.5, 0.5, 0.5), V3(0.3, -0.7, 0.2),
	}
	rotations := map[string]Mat3{
		"x": RotationX(2 * math.Pi),
		"y": RotationY(2 * math.Pi),
		"z": RotationZ(2 * math.Pi),
	}

	for name, m := range rotations {
		t.Run(name, func(t *testing.T) {
			for _, p := range points {
				if got := m.MulVec(p); !vecNear(got, p, 1e-12) {
					t.Errorf("2*pi rotation moved %v to %v", p, got)
				}
			}
		})
	}
}

func TestMulCompositionOrder(t *testing.T) {
	// Y∘X as one combined matrix must equal applying X then Y in
	// sequence, and must differ from X∘Y for generic angles.
	ax, ay := 0.4, 1.1
	combined := RotationY(ay).Mul(RotationX(ax))
	v := V3(0.2, -0.9, 0.5)

	sequential := RotationY(ay).MulVec(RotationX(ax).MulVec(v))
	if got := combined.MulVec(v); !vecNear(got, sequential, eps) {
		t.Errorf("combined %v != sequential %v", got, sequential)
	}

	swapped := RotationX(ax).Mul(RotationY(ay))
	if vecNear(combined.MulVec(v), swapped.MulVec(v), eps) {
		t.Error("X∘Y should differ from Y∘X for generic angles")
	}
}

func TestRotationPreservesLength(t *testing.T) {
	m := RotationY(0.7).Mul(RotationX(2.3))
	v := V3(3, -4, 12)
	if got := m.MulVec(v).Len(); math.Abs(got-v.Len()) > eps {
		t.Errorf("rotation changed length: %v -> %v", v.Len(), got)
	}
}

func TestTranspose(t *testing.T) {
	m := RotationY(0.9).Mul(RotationX(0.3))
	// For a pure rotation, M^T * M = I.
	id := m.Transpose().Mul(m)
	for _, p := range []Vec3{V3(1, 0, 0), V3(0, 1, 0), V3(0, 0, 1)} {
		if got := id.MulVec(p); !vecNear(got, p, eps) {
			t.Errorf("M^T*M moved %v to %v", p, got)
		}
	}
}

func TestUnitChecked(t *testing.T) {
	if _, err := Zero3().UnitChecked(); err == nil {
		t.Error("UnitChecked on zero vector should fail")
	}
	u, err := V3(0, 3, 4).UnitChecked()
	if err != nil {
		t.Fatalf("UnitChecked: %v", err)
	}
	if !vecNear(u, V3(0, 0.6, 0.8), eps) {
		t.Errorf("UnitChecked = %v", u)
	}
}

func TestFaceNormal(t *testing.T) {
	// CCW triangle in the XY plane has a +Z normal.
	n := FaceNormal(V3(0, 0, 0), V3(1, 0, 0), V3(0, 1, 0))
	if !vecNear(n, V3(0, 0, 1), eps) {
		t.Errorf("FaceNormal = %v, want +Z", n)
	}

	// Collinear vertices yield the zero vector, not NaN.
	n = FaceNormal(V3(0, 0, 0), V3(1, 1, 1), V3(2, 2, 2))
	if n != Zero3() {
		t.Errorf("degenerate FaceNormal = %v, want zero", n)
	}
}

func BenchmarkMat3Mul(b *testing.B) {
	x := RotationX(0.3)
	y := RotationY(0.7)
	for b.Loop() {
		_ = y.Mul(x)
	}
}

func BenchmarkMat3MulVec(b *testing.B) {
	m := RotationY(0.7).Mul(RotationX(0.3))
	v := V3(1, 2, 3)
	for b.Loop() {
		_ = m.MulVec(v)
	}
}
