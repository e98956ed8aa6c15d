package springball

// noPointer marks a DragController that is not tracking anything.
const noPointer = -1

// DragController turns pointer input into committed ball positions and
// launches the spring-back on release. Only one pointer is tracked at a time.
type DragController struct {
	params  PhysicsParams
	rest    RestState
	offset  Vec2
	pointer int
}

// NewDragController creates an idle controller.
func NewDragController(params PhysicsParams, rest RestState) *DragController {
	return &DragController{params: params, rest: rest, pointer: noPointer}
}

// Pointer returns the tracked pointer ID, or -1 when idle.
func (d *DragController) Pointer() int {
	return d.pointer
}

// Begin captures pointerID. offset keeps the grab point fixed relative to the
// ball anchor. Any in-flight spring-back is cancelled. A second pointer while
// a drag is active, or a press with more than one contact down, is ignored.
func (d *DragController) Begin(st *SimulationState, pointerID int, pointer, anchor Vec2, contacts int) bool {
	if st.Dragging || contacts > 1 {
		return false
	}
	d.pointer = pointerID
	d.offset = pointer.Sub(anchor)
	st.Dragging = true
	st.Animating = false
	return true
}

// Move commits the clamped position under pointer. It reports false (and
// leaves st untouched) unless the tracked pointer moved with a single contact.
func (d *DragController) Move(st *SimulationState, pointerID int, pointer Vec2, contacts int) bool {
	if !st.Dragging || pointerID != d.pointer || contacts > 1 {
		return false
	}
	next := pointer.Sub(d.offset)
	next, _ = clampToRadius(next, d.rest.Base, d.params.Radius, d.params.SpringLength)
	st.Position = next
	return true
}

// End releases the tracked pointer and converts the displacement from rest
// into the launch velocity. The caller schedules the first simulation step.
func (d *DragController) End(st *SimulationState, pointerID int) bool {
	if !st.Dragging || pointerID != d.pointer {
		return false
	}
	d.pointer = noPointer
	st.Dragging = false
	st.Velocity = st.Position.Sub(d.rest.Rest).Scale(d.params.ReleaseVelocityScale)
	st.Animating = true
	return true
}

// Abort drops the drag without launching the spring-back.
func (d *DragController) Abort(st *SimulationState) {
	d.pointer = noPointer
	st.Dragging = false
}
