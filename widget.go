package springball

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/tanema/gween/ease"
)

// Fixed placement margins, as fractions of the screen size.
const (
	fixedMarginRight  = 0.07
	fixedMarginBottom = 0.03
)

// Grab highlight timing, in seconds.
const (
	grabFadeIn  = 0.12
	grabFadeOut = 0.2
)

var (
	// ErrAttached is returned when attaching a widget twice.
	ErrAttached = errors.New("springball: widget already attached")
	// ErrDisposed is returned when using a disposed widget.
	ErrDisposed = errors.New("springball: widget disposed")
)

// containerDrag tracks a base drag that moves the whole widget.
type containerDrag struct {
	active  bool
	pointer int
	start   Vec2 // screen point at press
	origin  Vec2 // container origin at press
}

// Widget is one ball-on-a-spring: the core engine plus its container,
// renderer and input wiring. Create with NewWidget, register input with
// Attach, and call Update and Draw every frame. Dispose when done.
type Widget struct {
	Name string

	res      Resolved
	engine   *Engine
	renderer *Renderer
	frames   *FrameScheduler
	style    *Style
	grab     Fade

	origin  Vec2
	pinned  bool // origin set by a container drag; ignores placement
	screenW float64
	screenH float64
	drag    containerDrag

	handles  []CallbackHandle
	attached bool
	disposed bool
}

// NewWidget validates opts and builds a widget at rest. If opts.Image is set
// the file is loaded now.
func NewWidget(name string, opts Options) (*Widget, error) {
	res, err := opts.Resolve()
	if err != nil {
		return nil, err
	}
	w := &Widget{
		Name:     name,
		res:      res,
		renderer: newRenderer(res),
		frames:   NewFrameScheduler(),
	}
	w.engine, err = NewEngine(res.Params, res.Geometry, res.Rest, w.renderer, w.frames)
	if err != nil {
		return nil, err
	}
	if res.Options.Image != "" {
		img, _, err := ebitenutil.NewImageFromFile(res.Options.Image)
		if err != nil {
			return nil, fmt.Errorf("springball: load image %s: %w", res.Options.Image, err)
		}
		w.renderer.image = img
	}
	return w, nil
}

// Engine returns the core engine.
func (w *Widget) Engine() *Engine { return w.engine }

// Renderer returns the widget's render sink.
func (w *Widget) Renderer() *Renderer { return w.renderer }

// Options returns the options with defaults applied.
func (w *Widget) Options() Options { return w.res.Options }

// Origin returns the container's top-left in screen coordinates.
func (w *Widget) Origin() Vec2 { return w.origin }

// Bounds returns the container rectangle in screen coordinates.
func (w *Widget) Bounds() Rect {
	return Rect{X: w.origin.X, Y: w.origin.Y, Width: w.res.Options.Width, Height: w.res.Options.Height}
}

// GrabHighlight returns the current grab shadow strength in [0, 1].
func (w *Widget) GrabHighlight() float64 { return w.grab.Value }

// Attached reports whether the widget is receiving input.
func (w *Widget) Attached() bool { return w.attached }

// SetImage replaces the ball content with img; nil restores the label.
func (w *Widget) SetImage(img *ebiten.Image) {
	w.renderer.image = img
}

// Attach registers the widget's pointer callbacks on in and ensures the
// shared style exists.
func (w *Widget) Attach(in *Input) error {
	if w.disposed {
		return ErrDisposed
	}
	if w.attached {
		return ErrAttached
	}
	style, err := RegisterStyle()
	if err != nil {
		return err
	}
	w.style = style
	w.handles = append(w.handles[:0],
		in.OnPointerDown(w.onPointerDown),
		in.OnPointerMove(w.onPointerMove),
		in.OnPointerUp(w.onPointerUp),
	)
	w.attached = true
	debugf("widget %q attached", w.Name)
	return nil
}

// Dispose removes all callbacks and cancels any pending animation step.
// Further input is ignored.
func (w *Widget) Dispose() {
	if w.disposed {
		return
	}
	for _, h := range w.handles {
		h.Remove()
	}
	w.handles = w.handles[:0]
	w.engine.Dispose()
	w.frames.CancelAll()
	w.drag = containerDrag{}
	w.attached = false
	w.disposed = true
	debugf("widget %q disposed", w.Name)
}

// IsDisposed reports whether Dispose has been called.
func (w *Widget) IsDisposed() bool { return w.disposed }

// Update runs the widget's pending frame callbacks and advances the grab fade.
func (w *Widget) Update(dt float32) {
	if w.disposed {
		if debugEnabled {
			debugCheckDisposed(w, "Update")
		}
		return
	}
	w.frames.Tick()
	w.grab.Update(dt)
}

// Draw renders the widget at its origin.
func (w *Widget) Draw(screen *ebiten.Image) {
	if w.disposed {
		return
	}
	w.renderer.Draw(screen, w.origin, w.style, w.grab.Value)
}

// SetScreenSize recomputes the origin for fixed placement. Pinned or inline
// widgets keep their origin.
func (w *Widget) SetScreenSize(width, height float64) {
	w.screenW, w.screenH = width, height
	if w.pinned || w.res.Options.Placement != PlacementFixedBottomRight {
		return
	}
	o := w.res.Options
	w.origin = Vec2{
		X: width - width*fixedMarginRight - o.Width,
		Y: height - height*fixedMarginBottom - o.Height,
	}
}

// SetOrigin places the container explicitly. Hosts use it for inline flow.
// Pinned widgets keep the position the user dragged them to.
func (w *Widget) SetOrigin(p Vec2) {
	if w.pinned {
		return
	}
	w.origin = p
}

// Pin fixes the container at p regardless of placement.
func (w *Widget) Pin(p Vec2) {
	w.origin = p
	w.pinned = true
}

// Pinned reports whether a container drag fixed the origin.
func (w *Widget) Pinned() bool { return w.pinned }

func (w *Widget) toLocal(ev PointerEvent) Vec2 {
	return ev.Point().Sub(w.origin)
}

func (w *Widget) onPointerDown(ev PointerEvent) {
	local := w.toLocal(ev)
	if w.renderer.BallHit().Contains(local.X, local.Y) {
		if w.engine.BeginDrag(ev.PointerID, local, ev.Contacts) {
			w.grab.To(1, grabFadeIn, ease.OutQuad)
		}
		return
	}
	if w.drag.active || !w.res.Options.ContainerDraggable() || ev.Contacts > 1 {
		return
	}
	if !ev.IsTouch() && ev.Button != MouseButtonLeft {
		return
	}
	if w.renderer.BaseHit().Contains(local.X, local.Y) {
		w.drag = containerDrag{active: true, pointer: ev.PointerID, start: ev.Point(), origin: w.origin}
	}
}

func (w *Widget) onPointerMove(ev PointerEvent) {
	if !ev.Pressed {
		return
	}
	if w.engine.DragTo(ev.PointerID, w.toLocal(ev), ev.Contacts) {
		return
	}
	if w.drag.active && ev.PointerID == w.drag.pointer && ev.Contacts <= 1 {
		w.Pin(w.drag.origin.Add(ev.Point().Sub(w.drag.start)))
	}
}

func (w *Widget) onPointerUp(ev PointerEvent) {
	if w.engine.EndDrag(ev.PointerID) {
		w.grab.To(0, grabFadeOut, ease.OutQuad)
		return
	}
	if w.drag.active && ev.PointerID == w.drag.pointer {
		w.drag.active = false
	}
}
