package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw converts the framebuffer to terminal cells and draws them on the
// screen. Each terminal row shows two framebuffer rows using ▀ (upper
// half block) with fg=top pixel and bg=bottom pixel, so the framebuffer
// height should be 2x the terminal height.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < fb.Width; col++ {
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(fb.GetPixel(col, topY)),
					Bg: rgbaToColor(fb.GetPixel(col, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// shadeRamp orders glyphs from empty to densest. GlyphFor indexes into
// it by intensity.
const shadeRamp = " .:-=+*#%@"

// GlyphFor maps a lighting intensity in [0, 1] to a character of the
// shade ramp. Zero (no coverage) maps to space; full intensity maps to
// the densest glyph. Any positive intensity gets at least the lightest
// visible glyph, so ambient-lit pixels never vanish. Out-of-range
// intensities clamp.
func GlyphFor(intensity float64) string {
	runes := []rune(shadeRamp)
	i := int(intensity * float64(len(runes)-1))
	if i < 1 && intensity > 0 {
		i = 1
	}
	if i < 0 {
		i = 0
	}
	if i > len(runes)-1 {
		i = len(runes) - 1
	}
	return string(runes[i])
}

// GlyphView presents a rendered frame as text: per cell it averages the
// shade buffer's two pixel rows into a glyph and takes the foreground
// hue from the framebuffer. It expects the same 2x-height buffers as
// the half-block presenter, so the two modes swap freely.
type GlyphView struct {
	Frame  *Framebuffer
	Shades *ShadeBuffer
}

// Draw draws glyph cells onto the screen.
func (g GlyphView) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < g.Shades.Width; col++ {
			shade := (g.Shades.At(col, topY) + g.Shades.At(col, botY)) / 2
			cell := &uv.Cell{
				Content: GlyphFor(shade),
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(g.Frame.GetPixel(col, topY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// Drawable is anything that can paint itself onto a terminal screen
// region, such as a Framebuffer or a GlyphView.
type Drawable interface {
	Draw(scr uv.Screen, area uv.Rectangle)
}

// TerminalRenderer presents framebuffers on a terminal. Because each
// cell shows two pixel rows, the framebuffer it expects is twice the
// terminal height.
type TerminalRenderer struct {
	term   *uv.Terminal
	width  int
	height int
}

// NewTerminalRenderer creates a renderer for a terminal of the given
// size in cells.
func NewTerminalRenderer(term *uv.Terminal, width, height int) *TerminalRenderer {
	return &TerminalRenderer{term: term, width: width, height: height}
}

// FramebufferSize returns the pixel dimensions matching the terminal:
// one column per cell, two rows per cell.
func (tr *TerminalRenderer) FramebufferSize() (int, int) {
	return tr.width, tr.height * 2
}

// Render paints a drawable onto the terminal's cell buffer.
func (tr *TerminalRenderer) Render(d Drawable) {
	d.Draw(tr.term, uv.Rect(0, 0, tr.width, tr.height))
}

// Flush pushes the cell buffer to the terminal.
func (tr *TerminalRenderer) Flush() error {
	return tr.term.Display()
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}
