package springball

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// hudRefresh is how often the debug overlay text is rebuilt, in seconds.
const hudRefresh = 0.5

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title      string
	Width      int
	Height     int
	Background Color
	Debug      bool
}

// Game hosts widgets in an Ebitengine game loop. It owns the shared Input and
// lays widgets out: fixed widgets anchor to the screen corner, inline widgets
// stack top to bottom, centered horizontally.
//
// For full control, embed the widgets in your own ebiten.Game instead: call
// Input.Update, then Widget.Update for each widget, then Widget.Draw.
type Game struct {
	// ScreenshotDir is where Screenshot writes PNGs. Empty means
	// DefaultScreenshotDir.
	ScreenshotDir string

	input      *Input
	widgets    []*Widget
	background Color
	width      int
	height     int
	runner     *TestRunner
	onUpdate   []func() error
	shots      []string

	hud      string
	hudTimer float64
}

// NewGame creates a host with no widgets and registers the shared style.
func NewGame(cfg RunConfig) (*Game, error) {
	if _, err := RegisterStyle(); err != nil {
		return nil, err
	}
	SetDebugMode(cfg.Debug)
	return &Game{
		input:      NewInput(),
		background: cfg.Background,
		width:      cfg.Width,
		height:     cfg.Height,
	}, nil
}

// Input returns the shared input dispatcher.
func (g *Game) Input() *Input { return g.input }

// Widgets returns the hosted widgets. The returned slice MUST NOT be mutated.
func (g *Game) Widgets() []*Widget { return g.widgets }

// Add attaches w and starts hosting it.
func (g *Game) Add(w *Widget) error {
	if err := w.Attach(g.input); err != nil {
		return err
	}
	g.widgets = append(g.widgets, w)
	g.arrange()
	return nil
}

// Remove disposes w and stops hosting it. Reports whether w was hosted.
func (g *Game) Remove(w *Widget) bool {
	for i, c := range g.widgets {
		if c == w {
			w.Dispose()
			g.widgets = append(g.widgets[:i], g.widgets[i+1:]...)
			return true
		}
	}
	return false
}

// Replace swaps old for next in the same slot, keeping a dragged container
// where the user left it. old is disposed.
func (g *Game) Replace(old, next *Widget) error {
	for i, c := range g.widgets {
		if c != old {
			continue
		}
		if err := next.Attach(g.input); err != nil {
			return err
		}
		if old.Pinned() {
			next.Pin(old.Origin())
		}
		old.Dispose()
		g.widgets[i] = next
		g.arrange()
		return nil
	}
	return g.Add(next)
}

// SetTestRunner attaches a scripted input runner, stepped before input each
// frame.
func (g *Game) SetTestRunner(r *TestRunner) {
	g.runner = r
}

// OnUpdate registers fn to run at the end of every Update. A non-nil error
// stops the game loop.
func (g *Game) OnUpdate(fn func() error) {
	g.onUpdate = append(g.onUpdate, fn)
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	return g.update(float32(1.0 / float64(ebiten.TPS())))
}

func (g *Game) update(dt float32) error {
	if g.runner != nil {
		g.runner.Step(g)
	}
	g.arrange()
	g.input.Update()
	for _, w := range g.widgets {
		w.Update(dt)
	}
	for _, fn := range g.onUpdate {
		if err := fn(); err != nil {
			return err
		}
	}
	if debugEnabled {
		g.updateHUD(float64(dt))
	}
	return nil
}

// updateHUD rebuilds the debug overlay text every hudRefresh seconds.
func (g *Game) updateHUD(dt float64) {
	g.hudTimer += dt
	if g.hud != "" && g.hudTimer < hudRefresh {
		return
	}
	g.hudTimer = 0
	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %.1f\nTPS: %.1f\n", ebiten.ActualFPS(), ebiten.ActualTPS())
	for _, w := range g.widgets {
		st := w.Engine().State()
		fmt.Fprintf(&b, "%s: (%.1f, %.1f) v=(%.2f, %.2f)", w.Name,
			st.Position.X, st.Position.Y, st.Velocity.X, st.Velocity.Y)
		switch {
		case st.Dragging:
			b.WriteString(" dragging")
		case st.Animating:
			b.WriteString(" animating")
		}
		b.WriteByte('\n')
	}
	g.hud = b.String()
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.background.A > 0 {
		screen.Fill(g.background.toRGBA())
	}
	for _, w := range g.widgets {
		w.Draw(screen)
	}
	if debugEnabled && g.hud != "" {
		ebitenutil.DebugPrint(screen, g.hud)
	}
	g.flushScreenshots(screen)
}

// Layout implements ebiten.Game. A configured size wins; otherwise the
// outside size is used.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.width <= 0 || g.height <= 0 {
		g.width, g.height = outsideWidth, outsideHeight
	}
	return g.width, g.height
}

// arrange positions every widget for the current screen size.
func (g *Game) arrange() {
	sw, sh := float64(g.width), float64(g.height)
	y := 0.0
	for _, w := range g.widgets {
		o := w.Options()
		if o.Placement == PlacementInline {
			w.SetOrigin(Vec2{X: (sw - o.Width) / 2, Y: y})
			y += o.Height
			continue
		}
		w.SetScreenSize(sw, sh)
	}
}

// Run opens a window and hosts widgets until the window closes.
func Run(cfg RunConfig, widgets ...*Widget) error {
	g, err := NewGame(cfg)
	if err != nil {
		return err
	}
	for _, w := range widgets {
		if err := g.Add(w); err != nil {
			return err
		}
	}
	return RunGame(cfg, g)
}

// RunGame opens a window for an already-populated Game.
func RunGame(cfg RunConfig, g *Game) error {
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}
