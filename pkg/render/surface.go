package render

// Surface produces an unlit color for an interpolated (u, v) sample.
// It unifies flat-colored and textured faces under one capability; the
// rasterizer applies lighting to whatever a Surface returns.
type Surface interface {
	ShadeAt(u, v float64) Color
}

// FlatColor is a Surface with a single base color, ignoring UVs.
type FlatColor struct {
	C Color
}

// ShadeAt returns the base color.
func (f FlatColor) ShadeAt(u, v float64) Color {
	return f.C
}

// TexturedSurface samples a texture and alpha-blends the texel over a
// base color, using the texel's alpha as the blend factor.
type TexturedSurface struct {
	Base Color
	Tex  *Texture
}

// ShadeAt returns the texel at (u, v) blended over the base color.
func (s TexturedSurface) ShadeAt(u, v float64) Color {
	if s.Tex == nil {
		return s.Base
	}
	return BlendOver(s.Tex.Sample(u, v), s.Base)
}
