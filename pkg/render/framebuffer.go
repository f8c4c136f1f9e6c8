package render

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
)

// Framebuffer is a 2D RGBA pixel buffer with the origin at the top
// left; y grows downward.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []Color // Row-major pixel data
}

// NewFramebuffer creates a framebuffer with the given dimensions. All
// pixels start transparent black.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
}

// Clear fills the entire framebuffer with a single color.
func (fb *Framebuffer) Clear(c Color) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// SetPixel sets the pixel at (x, y). Out-of-bounds writes are dropped.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the pixel at (x, y), or transparent black out of
// bounds.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return Color{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's
// algorithm. Both endpoints are plotted; out-of-bounds segments clip
// per pixel.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// ToImage converts the framebuffer to an image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := range fb.Height {
		for x := range fb.Width {
			img.SetRGBA(x, y, fb.Pixels[y*fb.Width+x])
		}
	}
	return img
}

// SavePNG writes the framebuffer to a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, fb.ToImage()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// DepthBuffer stores the nearest depth seen per pixel. Smaller values
// are closer to the viewer; empty pixels hold +Inf.
type DepthBuffer struct {
	Width  int
	Height int
	Depths []float64
}

// NewDepthBuffer creates a cleared depth buffer.
func NewDepthBuffer(width, height int) *DepthBuffer {
	db := &DepthBuffer{
		Width:  width,
		Height: height,
		Depths: make([]float64, width*height),
	}
	db.Clear()
	return db
}

// Clear resets every depth to +Inf.
func (db *DepthBuffer) Clear() {
	if len(db.Depths) == 0 {
		return
	}
	db.Depths[0] = math.Inf(1)
	// Fill by copy doubling
	for filled := 1; filled < len(db.Depths); filled *= 2 {
		copy(db.Depths[filled:], db.Depths[:filled])
	}
}

// Test reports whether z is strictly nearer than the stored depth at
// (x, y) and records it if so. Out-of-bounds tests fail.
func (db *DepthBuffer) Test(x, y int, z float64) bool {
	if x < 0 || x >= db.Width || y < 0 || y >= db.Height {
		return false
	}
	i := y*db.Width + x
	if z < db.Depths[i] {
		db.Depths[i] = z
		return true
	}
	return false
}

// At returns the stored depth at (x, y), or +Inf out of bounds.
func (db *DepthBuffer) At(x, y int) float64 {
	if x < 0 || x >= db.Width || y < 0 || y >= db.Height {
		return math.Inf(1)
	}
	return db.Depths[y*db.Width+x]
}

// ShadeBuffer records the lighting intensity last written to each
// pixel, parallel to a Framebuffer. Text-mode presentation maps these
// scalars onto a glyph ramp instead of quantizing colors.
type ShadeBuffer struct {
	Width  int
	Height int
	Shades []float64
}

// NewShadeBuffer creates a shade buffer cleared to zero.
func NewShadeBuffer(width, height int) *ShadeBuffer {
	return &ShadeBuffer{
		Width:  width,
		Height: height,
		Shades: make([]float64, width*height),
	}
}

// Clear resets every intensity to zero (no coverage).
func (sb *ShadeBuffer) Clear() {
	for i := range sb.Shades {
		sb.Shades[i] = 0
	}
}

// Set records the intensity at (x, y). Out-of-bounds writes are
// dropped.
func (sb *ShadeBuffer) Set(x, y int, intensity float64) {
	if x < 0 || x >= sb.Width || y < 0 || y >= sb.Height {
		return
	}
	sb.Shades[y*sb.Width+x] = intensity
}

// At returns the intensity at (x, y), or zero out of bounds.
func (sb *ShadeBuffer) At(x, y int) float64 {
	if x < 0 || x >= sb.Width || y < 0 || y >= sb.Height {
		return 0
	}
	return sb.Shades[y*sb.Width+x]
}
