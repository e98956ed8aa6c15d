package springball

// syntheticPointerEvent represents a single injected pointer event in screen
// coordinates, fed through the same state machine as real input.
type syntheticPointerEvent struct {
	pointerID int
	x, y      float64
	pressed   bool
	button    MouseButton
}

// InjectPress queues a mouse press (left button) at the given screen
// coordinates. The event is consumed on the next Update.
func (in *Input) InjectPress(x, y float64) {
	in.injectQueue = append(in.injectQueue, syntheticPointerEvent{
		x: x, y: y, pressed: true, button: MouseButtonLeft,
	})
}

// InjectMove queues a mouse move with the button held down. Use this between
// InjectPress and InjectRelease to simulate a drag.
func (in *Input) InjectMove(x, y float64) {
	in.injectQueue = append(in.injectQueue, syntheticPointerEvent{
		x: x, y: y, pressed: true, button: MouseButtonLeft,
	})
}

// InjectRelease queues a mouse release at the given screen coordinates.
func (in *Input) InjectRelease(x, y float64) {
	in.injectQueue = append(in.injectQueue, syntheticPointerEvent{
		x: x, y: y, pressed: false, button: MouseButtonLeft,
	})
}

// InjectTouch queues a touch event for slot 1-9. pressed=true begins or moves
// the contact; pressed=false lifts it. Out-of-range slots are ignored.
func (in *Input) InjectTouch(slot int, x, y float64, pressed bool) {
	if slot < 1 || slot >= maxPointers {
		return
	}
	in.injectQueue = append(in.injectQueue, syntheticPointerEvent{
		pointerID: slot, x: x, y: y, pressed: pressed, button: MouseButtonLeft,
	})
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (in *Input) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	in.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		in.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	in.InjectRelease(toX, toY)
}

// Pending returns the number of queued synthetic events.
func (in *Input) Pending() int {
	return len(in.injectQueue)
}

// processInjectedInput pops one queued event and feeds it through
// processPointer. Returns true if an event was consumed (real input should be
// skipped this frame).
func (in *Input) processInjectedInput() bool {
	if len(in.injectQueue) == 0 {
		return false
	}
	evt := in.injectQueue[0]
	copy(in.injectQueue, in.injectQueue[1:])
	in.injectQueue = in.injectQueue[:len(in.injectQueue)-1]

	// Contacts as they will stand after this event is applied.
	contacts := in.downCount()
	ps := &in.pointers[evt.pointerID]
	switch {
	case evt.pressed && !ps.down:
		contacts++
	case !evt.pressed && ps.down:
		contacts--
	}
	in.processPointer(evt.pointerID, evt.x, evt.y, evt.pressed, evt.button, contacts)
	return true
}
