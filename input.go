package springball

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// --- Constants ---

const (
	maxPointers = 10 // pointer 0 = mouse, 1-9 = touch
)

// --- Hit shapes ---

// HitShape is a hit-testable region in widget-local coordinates.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// --- Events ---

// PointerEvent is a normalized mouse or touch event in screen coordinates.
// Mouse is pointer 0; touches occupy pointers 1-9.
type PointerEvent struct {
	Type      EventType
	PointerID int
	X, Y      float64
	Button    MouseButton
	Pressed   bool // for EventPointerMove: whether the pointer is held down
	Contacts  int  // pointers held down this frame, this one included
}

// Point returns the event position as a Vec2.
func (e PointerEvent) Point() Vec2 {
	return Vec2{e.X, e.Y}
}

// IsTouch reports whether the event came from a touch contact.
func (e PointerEvent) IsTouch() bool {
	return e.PointerID > 0
}

// --- Per-pointer state ---

type pointerState struct {
	down   bool
	lastX  float64
	lastY  float64
	button MouseButton // button captured at press time
}

// --- Handler registry ---

type pointerHandler struct {
	id uint32
	fn func(PointerEvent)
}

type handlerRegistry struct {
	pointerDown []pointerHandler
	pointerUp   []pointerHandler
	pointerMove []pointerHandler
	nextID      uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPointerDown:
		h.reg.pointerDown = removePointerHandler(h.reg.pointerDown, h.id)
	case EventPointerUp:
		h.reg.pointerUp = removePointerHandler(h.reg.pointerUp, h.id)
	case EventPointerMove:
		h.reg.pointerMove = removePointerHandler(h.reg.pointerMove, h.id)
	}
}

func removePointerHandler(s []pointerHandler, id uint32) []pointerHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = pointerHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func (r *handlerRegistry) add(event EventType, fn func(PointerEvent)) CallbackHandle {
	r.nextID++
	h := pointerHandler{id: r.nextID, fn: fn}
	switch event {
	case EventPointerDown:
		r.pointerDown = append(r.pointerDown, h)
	case EventPointerUp:
		r.pointerUp = append(r.pointerUp, h)
	case EventPointerMove:
		r.pointerMove = append(r.pointerMove, h)
	}
	return CallbackHandle{id: h.id, reg: r, event: event}
}

// --- Input ---

// Input polls Ebitengine mouse and touch state once per frame and dispatches
// normalized pointer events to registered callbacks.
type Input struct {
	handlers     handlerRegistry
	pointers     [maxPointers]pointerState
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID
	injectQueue  []syntheticPointerEvent
}

// NewInput creates an input dispatcher with no callbacks.
func NewInput() *Input {
	return &Input{}
}

// OnPointerDown registers a callback for pointer down events.
func (in *Input) OnPointerDown(fn func(PointerEvent)) CallbackHandle {
	return in.handlers.add(EventPointerDown, fn)
}

// OnPointerUp registers a callback for pointer up events.
func (in *Input) OnPointerUp(fn func(PointerEvent)) CallbackHandle {
	return in.handlers.add(EventPointerUp, fn)
}

// OnPointerMove registers a callback for pointer move events.
func (in *Input) OnPointerMove(fn func(PointerEvent)) CallbackHandle {
	return in.handlers.add(EventPointerMove, fn)
}

// HandlerCount returns the number of registered callbacks across all events.
func (in *Input) HandlerCount() int {
	r := &in.handlers
	return len(r.pointerDown) + len(r.pointerUp) + len(r.pointerMove)
}

// Update processes one frame of input. When synthetic events are queued, one
// is consumed and real input is skipped for the frame.
func (in *Input) Update() {
	if in.processInjectedInput() {
		return
	}
	touchIDs := ebiten.AppendTouchIDs(in.prevTouchIDs[:0])
	in.prevTouchIDs = touchIDs

	contacts := len(touchIDs)
	mousePressed, button := readMouseButtons()
	if mousePressed {
		contacts++
	}

	mx, my := ebiten.CursorPosition()
	in.processPointer(0, float64(mx), float64(my), mousePressed, button, contacts)
	in.processTouchPointers(touchIDs, contacts)
}

// readMouseButtons reports whether any mouse button is held and which one,
// preferring left, then right, then middle.
func readMouseButtons() (bool, MouseButton) {
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		return true, MouseButtonLeft
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		return true, MouseButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		return true, MouseButtonMiddle
	}
	return false, MouseButtonLeft
}

// processTouchPointers handles touch input (pointers 1-9).
func (in *Input) processTouchPointers(touchIDs []ebiten.TouchID, contacts int) {
	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := in.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true

		tx, ty := ebiten.TouchPosition(tid)
		in.processPointer(slot, float64(tx), float64(ty), true, MouseButtonLeft, contacts)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && !activeSlots[i] {
			ps := &in.pointers[i]
			if ps.down {
				in.processPointer(i, ps.lastX, ps.lastY, false, MouseButtonLeft, contacts)
			}
			in.touchUsed[i] = false
			in.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (in *Input) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && in.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !in.touchUsed[i] {
			in.touchUsed[i] = true
			in.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// downCount returns how many pointers are currently held.
func (in *Input) downCount() int {
	n := 0
	for i := range in.pointers {
		if in.pointers[i].down {
			n++
		}
	}
	return n
}

// processPointer runs the press/move/release state machine for one pointer.
func (in *Input) processPointer(pointerID int, x, y float64, pressed bool, button MouseButton, contacts int) {
	ps := &in.pointers[pointerID]

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.lastX = x
		ps.lastY = y
		in.fire(in.handlers.pointerDown, PointerEvent{
			Type: EventPointerDown, PointerID: pointerID, X: x, Y: y,
			Button: button, Pressed: true, Contacts: contacts,
		})
	case !pressed && ps.down:
		ps.down = false
		in.fire(in.handlers.pointerUp, PointerEvent{
			Type: EventPointerUp, PointerID: pointerID, X: x, Y: y,
			Button: ps.button, Contacts: contacts,
		})
		ps.lastX = x
		ps.lastY = y
	case x != ps.lastX || y != ps.lastY:
		ps.lastX = x
		ps.lastY = y
		in.fire(in.handlers.pointerMove, PointerEvent{
			Type: EventPointerMove, PointerID: pointerID, X: x, Y: y,
			Button: ps.button, Pressed: pressed, Contacts: contacts,
		})
	}
}

func (in *Input) fire(handlers []pointerHandler, ev PointerEvent) {
	for _, h := range handlers {
		if h.fn != nil {
			h.fn(ev)
		}
	}
}
