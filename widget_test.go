package springball

import (
	"errors"
	"testing"
)

const testDT = float32(1.0 / 60)

// newTestWidget builds and attaches a widget laid out on a 640x480 screen.
func newTestWidget(t *testing.T, opts Options) (*Widget, *Input) {
	t.Helper()
	w, err := NewWidget("test", opts)
	if err != nil {
		t.Fatalf("NewWidget: %v", err)
	}
	in := NewInput()
	if err := w.Attach(in); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	w.SetScreenSize(640, 480)
	return w, in
}

// frame runs one frame of input and widget update. It only polls input when
// a synthetic event is queued.
func frame(in *Input, w *Widget) {
	if in.Pending() > 0 {
		in.Update()
	}
	w.Update(testDT)
}

func drain(in *Input, w *Widget) {
	for in.Pending() > 0 {
		frame(in, w)
	}
}

// ballCenter returns the ball's hit-circle center in screen coordinates.
func ballCenter(w *Widget) Vec2 {
	h := w.Renderer().BallHit()
	return w.Origin().Add(Vec2{h.CenterX, h.CenterY})
}

func TestWidgetFixedPlacement(t *testing.T) {
	w, _ := newTestWidget(t, Options{})
	o := w.Origin()
	if !nearlyEqual(o.X, 640-640*0.07-100, 1e-9) || !nearlyEqual(o.Y, 480-480*0.03-180, 1e-9) {
		t.Errorf("Origin = %v", o)
	}
	b := w.Bounds()
	if b.Width != 100 || b.Height != 180 || b.X != o.X {
		t.Errorf("Bounds = %+v", b)
	}
}

func TestWidgetDragAndRelease(t *testing.T) {
	w, in := newTestWidget(t, Options{})
	c := ballCenter(w)

	in.InjectPress(c.X, c.Y)
	frame(in, w)
	if !w.Engine().State().Dragging {
		t.Fatal("press on the ball did not start a drag")
	}
	if w.GrabHighlight() <= 0 {
		t.Error("grab highlight did not start fading in")
	}

	in.InjectMove(c.X, c.Y+30)
	frame(in, w)
	pos := w.Engine().State().Position
	if !nearlyEqual(pos.X, 50, 1e-9) || !nearlyEqual(pos.Y, 160, 1e-9) {
		t.Fatalf("Position = %v, want (50, 160)", pos)
	}
	if w.Renderer().Ball() != pos {
		t.Error("renderer did not receive the dragged position")
	}

	in.InjectRelease(c.X, c.Y+30)
	in.Update()
	st := w.Engine().State()
	if !st.Animating || !nearlyEqual(st.Velocity.Y, 5.1, 1e-6) {
		t.Fatalf("after release: %+v", st)
	}

	for i := 0; i < 5000 && w.Engine().State().Animating; i++ {
		w.Update(testDT)
	}
	if st := w.Engine().State(); st.Animating || st.Position != testRest.Rest {
		t.Errorf("did not settle at rest: %+v", st)
	}
	if w.GrabHighlight() != 0 {
		t.Errorf("grab highlight = %v after settling, want 0", w.GrabHighlight())
	}
}

func TestWidgetPressOutsideBallIgnored(t *testing.T) {
	w, in := newTestWidget(t, Options{})
	in.InjectPress(1, 1)
	in.InjectMove(20, 20)
	drain(in, w)
	if w.Engine().State().Dragging || w.Pinned() {
		t.Error("press outside the widget had an effect")
	}
}

func TestWidgetMultiTouch(t *testing.T) {
	w, in := newTestWidget(t, Options{})
	c := ballCenter(w)

	in.InjectTouch(1, c.X, c.Y, true)
	in.InjectTouch(2, 5, 5, true)
	in.InjectTouch(1, c.X, c.Y+20, true)
	drain(in, w)
	if got := w.Engine().State().Position; got != testRest.Rest {
		t.Errorf("second contact did not freeze the drag: Position = %v", got)
	}

	in.InjectTouch(2, 5, 5, false)
	in.InjectTouch(1, c.X, c.Y+25, true)
	drain(in, w)
	if got := w.Engine().State().Position; !nearlyEqual(got.Y, testRest.Rest.Y+25, 1e-9) {
		t.Errorf("drag did not resume with one contact: Position = %v", got)
	}
}

func TestWidgetContainerDrag(t *testing.T) {
	w, in := newTestWidget(t, Options{})
	start := w.Origin()
	grip := start.Add(Vec2{50, 171}) // on the base, below the ball

	in.InjectPress(grip.X, grip.Y)
	in.InjectMove(grip.X-100, grip.Y-50)
	in.InjectRelease(grip.X-100, grip.Y-50)
	drain(in, w)

	if w.Engine().State().Dragging {
		t.Error("base press grabbed the ball")
	}
	if !w.Pinned() {
		t.Fatal("container drag did not pin the widget")
	}
	want := start.Add(Vec2{-100, -50})
	if got := w.Origin(); !nearlyEqual(got.X, want.X, 1e-9) || !nearlyEqual(got.Y, want.Y, 1e-9) {
		t.Errorf("Origin = %v, want %v", got, want)
	}

	w.SetScreenSize(800, 600)
	if got := w.Origin(); !nearlyEqual(got.X, want.X, 1e-9) {
		t.Errorf("pinned widget moved on resize to %v", got)
	}
}

func TestWidgetInlineNotContainerDraggable(t *testing.T) {
	w, in := newTestWidget(t, Options{Placement: PlacementInline})
	w.SetOrigin(Vec2{10, 10})
	grip := w.Origin().Add(Vec2{50, 171})

	in.InjectPress(grip.X, grip.Y)
	in.InjectMove(grip.X+40, grip.Y)
	in.InjectRelease(grip.X+40, grip.Y)
	drain(in, w)

	if w.Pinned() || w.Origin() != (Vec2{10, 10}) {
		t.Errorf("inline widget moved: origin %v pinned %v", w.Origin(), w.Pinned())
	}
}

func TestWidgetAttachErrors(t *testing.T) {
	w, in := newTestWidget(t, Options{})
	if err := w.Attach(in); !errors.Is(err, ErrAttached) {
		t.Errorf("second Attach = %v, want ErrAttached", err)
	}
	w.Dispose()
	if err := w.Attach(in); !errors.Is(err, ErrDisposed) {
		t.Errorf("Attach after Dispose = %v, want ErrDisposed", err)
	}
}

func TestWidgetDispose(t *testing.T) {
	w, in := newTestWidget(t, Options{})
	if in.HandlerCount() != 3 {
		t.Fatalf("HandlerCount() = %d after Attach, want 3", in.HandlerCount())
	}
	c := ballCenter(w)
	in.InjectDrag(c.X, c.Y, c.X+40, c.Y+40, 3)
	drain(in, w)
	if !w.Engine().State().Animating {
		t.Fatal("expected a spring-back in flight")
	}

	w.Dispose()
	if !w.IsDisposed() || w.Attached() {
		t.Error("widget state not updated by Dispose")
	}
	if in.HandlerCount() != 0 {
		t.Errorf("HandlerCount() = %d after Dispose, want 0", in.HandlerCount())
	}
	if n := w.Engine().Frames().Pending(); n != 0 {
		t.Errorf("%d frames pending after Dispose", n)
	}
	before := w.Engine().State()
	w.Update(testDT)
	if w.Engine().State() != before {
		t.Error("disposed widget kept animating")
	}
	w.Dispose() // idempotent
}

func TestNewWidgetInvalidOptions(t *testing.T) {
	if _, err := NewWidget("bad", Options{Stiffness: -1}); !errors.Is(err, ErrInvalidStiffness) {
		t.Errorf("err = %v, want ErrInvalidStiffness", err)
	}
	if _, err := NewWidget("bad", Options{Image: "does-not-exist.png"}); err == nil {
		t.Error("expected error for a missing image")
	}
}
