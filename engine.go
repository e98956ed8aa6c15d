package springball

// RenderSink receives every position change. Implementations decide how to
// draw; the engine never touches presentation objects.
type RenderSink interface {
	SetBallPosition(p Vec2)
	SetSpringPath(path []Vec2)
}

type discardSink struct{}

func (discardSink) SetBallPosition(Vec2) {}
func (discardSink) SetSpringPath([]Vec2) {}

// Engine owns the simulation state and coordinates the drag controller, the
// spring simulator and the frame scheduler. All methods must be called from
// the goroutine that ticks the scheduler.
type Engine struct {
	params PhysicsParams
	geom   SpringGeometry
	rest   RestState

	state  SimulationState
	drag   *DragController
	sim    *SpringSimulator
	sink   RenderSink
	frames *FrameScheduler
	step   FrameHandle

	pathBuf  []Vec2
	steps    int
	disposed bool

	// OnSettle, if set, fires when a spring-back converges.
	OnSettle func(steps int)
}

// NewEngine validates the configuration, places the ball at rest and renders
// the rest pose once. A nil sink discards output; a nil scheduler gets a
// private one (tick it via Frames).
func NewEngine(params PhysicsParams, geom SpringGeometry, rest RestState, sink RenderSink, frames *FrameScheduler) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := geom.Validate(); err != nil {
		return nil, err
	}
	if err := rest.Validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		sink = discardSink{}
	}
	if frames == nil {
		frames = NewFrameScheduler()
	}
	e := &Engine{
		params:  params,
		geom:    geom,
		rest:    rest,
		drag:    NewDragController(params, rest),
		sim:     NewSpringSimulator(params, rest),
		sink:    sink,
		frames:  frames,
		pathBuf: make([]Vec2, 0, 2*geom.Turns+3),
	}
	e.state.Position = rest.Rest
	e.render()
	return e, nil
}

// State returns a snapshot of the simulation state.
func (e *Engine) State() SimulationState { return e.state }

// Rest returns the fixed anchors.
func (e *Engine) Rest() RestState { return e.rest }

// Params returns the physics configuration.
func (e *Engine) Params() PhysicsParams { return e.params }

// Geometry returns the spring geometry.
func (e *Engine) Geometry() SpringGeometry { return e.geom }

// Frames returns the scheduler the engine queues its steps on.
func (e *Engine) Frames() *FrameScheduler { return e.frames }

// Path returns the most recently rendered polyline. The returned slice MUST
// NOT be mutated and is overwritten on the next render.
func (e *Engine) Path() []Vec2 { return e.pathBuf }

// BeginDrag grabs the ball with pointerID and cancels any pending step.
func (e *Engine) BeginDrag(pointerID int, pointer Vec2, contacts int) bool {
	if e.disposed {
		return false
	}
	if !e.drag.Begin(&e.state, pointerID, pointer, e.state.Position, contacts) {
		return false
	}
	e.step.Cancel()
	e.step = FrameHandle{}
	debugf("drag begin pointer=%d at (%.1f, %.1f)", pointerID, pointer.X, pointer.Y)
	return true
}

// DragTo moves the grabbed ball and renders it.
func (e *Engine) DragTo(pointerID int, pointer Vec2, contacts int) bool {
	if e.disposed || !e.drag.Move(&e.state, pointerID, pointer, contacts) {
		return false
	}
	e.render()
	return true
}

// EndDrag releases the ball and schedules the first spring-back step.
func (e *Engine) EndDrag(pointerID int) bool {
	if e.disposed || !e.drag.End(&e.state, pointerID) {
		return false
	}
	e.steps = 0
	debugf("release velocity (%.2f, %.2f)", e.state.Velocity.X, e.state.Velocity.Y)
	e.schedule()
	return true
}

func (e *Engine) schedule() {
	e.step = e.frames.RequestFrame(e.stepOnce)
}

// stepOnce is the frame callback. It re-checks Animating because a drag may
// have started between scheduling and firing.
func (e *Engine) stepOnce() {
	e.step = FrameHandle{}
	if e.disposed || !e.state.Animating {
		return
	}
	e.steps++
	converged := e.sim.Step(&e.state)
	e.render()
	if converged {
		debugf("settled after %d steps", e.steps)
		if e.OnSettle != nil {
			e.OnSettle(e.steps)
		}
		return
	}
	e.schedule()
}

// Settle runs pending spring-back steps synchronously, at most maxSteps, and
// returns how many ran. If the ball is still moving afterwards, exactly one
// step stays scheduled. Useful for headless rendering and tests.
func (e *Engine) Settle(maxSteps int) int {
	if !e.state.Animating {
		return 0
	}
	n := 0
	for e.state.Animating && n < maxSteps {
		e.step.Cancel()
		e.stepOnce()
		n++
	}
	return n
}

// Reset snaps the ball to rest, dropping any drag or animation.
func (e *Engine) Reset() {
	e.step.Cancel()
	e.step = FrameHandle{}
	e.drag.Abort(&e.state)
	e.state.Animating = false
	e.state.Position = e.rest.Rest
	e.state.Velocity = Vec2{}
	e.render()
}

// Dispose cancels the pending step and stops reacting to input.
func (e *Engine) Dispose() {
	if e.disposed {
		return
	}
	e.step.Cancel()
	e.step = FrameHandle{}
	e.drag.Abort(&e.state)
	e.state.Animating = false
	e.disposed = true
}

func (e *Engine) render() {
	e.sink.SetBallPosition(e.state.Position)
	e.pathBuf = AppendSpringPath(e.pathBuf[:0], e.state.Position, e.rest.Base, e.geom)
	e.sink.SetSpringPath(e.pathBuf)
}
