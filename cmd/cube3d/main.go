// cube3d - a spinning shaded cube for your terminal
//
// Renders a rotating 3D cube (or any GLB model) with per-pixel
// Lambertian lighting, entirely in software.
//
// Controls:
//
//	Mouse drag   - Rotate (left button) / translate (right button)
//	Scroll       - Zoom in/out
//	Arrow keys   - Move the light
//	P            - Pause/resume the spin
//	W            - Toggle wireframe mode
//	G            - Toggle glyph (ASCII) rendering
//	O            - Toggle orthographic/perspective projection
//	D            - Toggle debug overlay
//	R            - Reset view
//	+/-          - Adjust zoom
//	Q/Esc        - Quit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"fortio.org/log"
	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/drewwalton19216801/cube3d/pkg/math3d"
	"github.com/drewwalton19216801/cube3d/pkg/models"
	"github.com/drewwalton19216801/cube3d/pkg/render"
)

var (
	targetFPS   = flag.Int("fps", 60, "Target FPS")
	bgColor     = flag.String("bg", "20,20,30", "Background color (R,G,B)")
	texturePath = flag.String("texture", "", "Path to texture image (PNG/JPG) to wrap the cube in")
	checker     = flag.Bool("checker", false, "Wrap the cube in a procedural checker texture")
	persp       = flag.Bool("perspective", false, "Start with perspective projection")
	debugFlag   = flag.Bool("debug", false, "Start with the debug overlay enabled")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "cube3d - spinning shaded cube in your terminal\n\n")
		fmt.Fprintf(os.Stderr, "Usage: cube3d [options] [model.glb]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Mouse drag  - Rotate (left) / translate (right)\n")
		fmt.Fprintf(os.Stderr, "  Scroll      - Zoom in/out\n")
		fmt.Fprintf(os.Stderr, "  Arrow keys  - Move the light\n")
		fmt.Fprintf(os.Stderr, "  P           - Pause\n")
		fmt.Fprintf(os.Stderr, "  W           - Wireframe\n")
		fmt.Fprintf(os.Stderr, "  G           - Glyph (ASCII) mode\n")
		fmt.Fprintf(os.Stderr, "  O           - Orthographic/perspective\n")
		fmt.Fprintf(os.Stderr, "  D           - Debug overlay\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset view\n")
		fmt.Fprintf(os.Stderr, "  Q/Esc       - Quit\n")
	}
	log.SetDefaultsForClientTools()
	flag.Parse()

	if err := run(flag.Arg(0)); err != nil {
		log.Fatalf("cube3d: %v", err)
	}
}

// spinAxis tracks one rotation axis: a steady auto-spin rate plus a
// spring-damped impulse velocity from mouse drags.
type spinAxis struct {
	Angle    float64
	AutoRate float64 // radians per frame while not paused
	velocity float64
	accel    float64
	spring   harmonica.Spring
}

func newSpinAxis(fps int, autoRate float64) spinAxis {
	return spinAxis{
		AutoRate: autoRate,
		// Critically damped: drag impulses decay without oscillating.
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update advances the angle one frame and decays the impulse velocity
// toward zero. Angles stay wrapped to [0, 2pi).
func (a *spinAxis) Update(paused bool) {
	if !paused {
		a.Angle += a.AutoRate
	}
	a.Angle += a.velocity
	a.velocity, a.accel = a.spring.Update(a.velocity, a.accel, 0)
	a.Angle = math.Mod(a.Angle, 2*math.Pi)
	if a.Angle < 0 {
		a.Angle += 2 * math.Pi
	}
}

// viewState holds the interactive state of the demo.
type viewState struct {
	spinX, spinY spinAxis
	translation  math3d.Vec2
	zoom         float64
	lightPos     math3d.Vec3
	paused       bool
	wireframe    bool
	glyphs       bool
	debug        bool
	projection   render.ProjectionMode
	fps          int
}

func newViewState(fps int) *viewState {
	v := &viewState{fps: fps}
	v.reset()
	return v
}

func (v *viewState) reset() {
	v.spinX = newSpinAxis(v.fps, 0.01)
	v.spinY = newSpinAxis(v.fps, 0.02)
	v.translation = math3d.Vec2{}
	v.zoom = 1.0
	v.lightPos = math3d.V3(-1, -1, 3)
	v.wireframe = false
}

func (v *viewState) frameParams() render.FrameParams {
	p := render.FrameParams{
		AngleX:      v.spinX.Angle,
		AngleY:      v.spinY.Angle,
		Translation: v.translation,
		Zoom:        v.zoom,
		Light:       render.PointLight(v.lightPos),
		Projection:  v.projection,
		WireColor:   render.RGB(0, 255, 128),
	}
	if v.wireframe {
		p.Mode = render.ModeWireframe
	}
	return p
}

func loadMesh(modelPath string) (*models.Mesh, error) {
	if modelPath != "" {
		mesh, err := models.LoadGLB(modelPath)
		if err != nil {
			return nil, fmt.Errorf("load model: %w", err)
		}
		// Normalize to roughly the cube's footprint so the projection
		// scale fits any model.
		size := mesh.Size()
		maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
		center := mesh.Center()
		if maxDim > 0 {
			s := 2.0 / maxDim
			for i := range mesh.Vertices {
				p := mesh.Vertices[i].Position
				mesh.Vertices[i].Position = p.Sub(center).Scale(s)
			}
			mesh.CalculateBounds()
		}
		log.Infof("loaded %s: %d vertices, %d triangles",
			filepath.Base(modelPath), mesh.VertexCount(), mesh.TriangleCount())
		return mesh, nil
	}

	var tex *render.Texture
	if *texturePath != "" {
		var err error
		tex, err = render.LoadTexture(*texturePath)
		if err != nil {
			log.Warnf("could not load texture: %v", err)
		}
	}
	if tex == nil && *checker {
		tex = render.NewCheckerTexture(64, 64, 8, render.RGB(230, 230, 230), render.RGB(90, 90, 90))
	}
	if tex != nil {
		return models.TexturedCube(2.0, tex), nil
	}
	return models.Cube(2.0), nil
}

func run(modelPath string) error {
	var bgR, bgG, bgB uint8 = 20, 20, 30
	fmt.Sscanf(*bgColor, "%d,%d,%d", &bgR, &bgG, &bgB)
	bg := render.RGB(bgR, bgG, bgB)

	mesh, err := loadMesh(modelPath)
	if err != nil {
		return err
	}

	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1003h")
	fmt.Fprint(os.Stdout, "\x1b[?1006h")

	termRenderer := render.NewTerminalRenderer(term, width, height)
	fbWidth, fbHeight := termRenderer.FramebufferSize()
	renderer := render.NewRenderer(mesh, fbWidth, fbHeight)
	renderer.Background = bg

	view := newViewState(*targetFPS)
	view.debug = *debugFlag
	if *persp {
		view.projection = render.Perspective
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Mouse state
	var rotateDrag, translateDrag bool
	var lastMouseX, lastMouseY int

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				termRenderer = render.NewTerminalRenderer(term, width, height)
				fbWidth, fbHeight = termRenderer.FramebufferSize()
				renderer.Resize(fbWidth, fbHeight)

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("q"), ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("p"):
					view.paused = !view.paused
					rotateDrag, translateDrag = false, false
				case ev.MatchString("w"):
					if !view.paused {
						view.wireframe = !view.wireframe
					}
				case ev.MatchString("g"):
					view.glyphs = !view.glyphs
				case ev.MatchString("o"):
					if view.projection == render.Orthographic {
						view.projection = render.Perspective
					} else {
						view.projection = render.Orthographic
					}
				case ev.MatchString("d"):
					view.debug = !view.debug
				case ev.MatchString("r"):
					if !view.paused {
						view.reset()
					}
				case ev.MatchString("+", "="):
					view.zoom = math.Min(10, view.zoom*1.1)
				case ev.MatchString("-", "_"):
					view.zoom = math.Max(0.1, view.zoom/1.1)
				case ev.MatchString("left"):
					view.lightPos.X -= 0.25
				case ev.MatchString("right"):
					view.lightPos.X += 0.25
				case ev.MatchString("up"):
					view.lightPos.Y -= 0.25
				case ev.MatchString("down"):
					view.lightPos.Y += 0.25
				}

			case uv.MouseClickEvent:
				if view.paused {
					break
				}
				lastMouseX, lastMouseY = ev.X, ev.Y
				switch ev.Button {
				case uv.MouseLeft:
					rotateDrag = true
				case uv.MouseRight:
					translateDrag = true
				}

			case uv.MouseReleaseEvent:
				rotateDrag, translateDrag = false, false

			case uv.MouseMotionEvent:
				if view.paused {
					break
				}
				dx := float64(ev.X - lastMouseX)
				dy := float64(ev.Y - lastMouseY)
				switch {
				case rotateDrag:
					// Cells are twice as tall as pixels, scale dy to match.
					view.spinX.velocity += dy * 0.02
					view.spinY.velocity += dx * 0.01
					lastMouseX, lastMouseY = ev.X, ev.Y
				case translateDrag:
					view.translation = view.translation.Add(math3d.V2(dx, dy*2))
					lastMouseX, lastMouseY = ev.X, ev.Y
				}

			case uv.MouseWheelEvent:
				if view.paused {
					break
				}
				switch ev.Button {
				case uv.MouseWheelUp:
					view.zoom = math.Min(10, view.zoom*1.05)
				case uv.MouseWheelDown:
					view.zoom = math.Max(0.1, view.zoom/1.05)
				}
			}
		}
	}()

	targetDuration := time.Second / time.Duration(*targetFPS)
	fpsFrames, fpsValue := 0, 0.0
	fpsTime := time.Now()

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		frameStart := time.Now()

		view.spinX.Update(view.paused || rotateDrag)
		view.spinY.Update(view.paused || rotateDrag)

		err := renderer.RenderFrame(view.frameParams())
		switch {
		case errors.Is(err, render.ErrViewportTooSmall):
			drawTooSmall(width, height)
			time.Sleep(targetDuration)
			continue
		case err != nil:
			cleanup()
			return fmt.Errorf("render: %w", err)
		}

		if view.glyphs {
			termRenderer.Render(render.GlyphView{
				Frame:  renderer.Framebuffer(),
				Shades: renderer.ShadeBuffer(),
			})
		} else {
			termRenderer.Render(renderer.Framebuffer())
		}
		if err := termRenderer.Flush(); err != nil {
			cleanup()
			return fmt.Errorf("flush: %w", err)
		}

		fpsFrames++
		if elapsed := time.Since(fpsTime); elapsed >= time.Second {
			fpsValue = float64(fpsFrames) / elapsed.Seconds()
			fpsFrames = 0
			fpsTime = time.Now()
		}

		if view.debug {
			drawDebugOverlay(width, height, view, renderer.Stats, fpsValue)
		}

		if elapsed := time.Since(frameStart); elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

// drawTooSmall prints a plain message when the terminal is below the
// minimum renderable size.
func drawTooSmall(width, height int) {
	msg := "terminal too small"
	row := max(height/2, 1)
	col := max((width-len(msg))/2, 1)
	fmt.Printf("\x1b[2J\x1b[%d;%dH%s", row, col, msg)
}

// drawDebugOverlay paints the debug HUD directly with ANSI escapes on
// top of the rendered frame.
func drawDebugOverlay(width, height int, v *viewState, stats render.RenderStats, fps float64) {
	const (
		reset   = "\x1b[0m"
		bgBlack = "\x1b[40m"
		fgGreen = "\x1b[92m"
		fgCyan  = "\x1b[96m"
	)
	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	proj := "ortho"
	if v.projection == render.Perspective {
		proj = "persp"
	}
	top := fmt.Sprintf("%s%s%s %.0f FPS  ax=%.2f ay=%.2f zoom=%.2f light=(%.1f,%.1f,%.1f) %s %s",
		bgBlack, fgGreen, moveTo(1, 1), fps, v.spinX.Angle, v.spinY.Angle, v.zoom,
		v.lightPos.X, v.lightPos.Y, v.lightPos.Z, proj, reset)
	fmt.Print(top)

	bottom := fmt.Sprintf("%s%s%s faces=%d tris=%d degen=%d px=%d %s",
		bgBlack, fgCyan, moveTo(height, 1),
		stats.FacesDrawn, stats.TrianglesDrawn, stats.DegenerateTriangles, stats.PixelsShaded, reset)
	fmt.Print(bottom)
}
