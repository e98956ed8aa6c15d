package springball

import "math"

// SpringSimulator advances the ball toward rest one frame at a time. It is a
// heuristic: restoring force and velocity damping are folded into a single
// step rather than integrating a damped oscillator.
type SpringSimulator struct {
	params PhysicsParams
	rest   RestState
}

// NewSpringSimulator creates a simulator for the given physics and anchors.
func NewSpringSimulator(params PhysicsParams, rest RestState) *SpringSimulator {
	return &SpringSimulator{params: params, rest: rest}
}

// Step applies one frame to st and reports whether the ball converged. On
// convergence the position snaps exactly to rest, velocity is zeroed and
// Animating is cleared. Hitting the radius wall discards all velocity.
func (s *SpringSimulator) Step(st *SimulationState) bool {
	p := s.params
	disp := st.Position.Sub(s.rest.Rest)
	st.Velocity = st.Velocity.Add(disp.Scale(-p.Stiffness)).Scale(p.Damping)
	pos := st.Position.Add(st.Velocity)

	pos, clamped := clampToRadius(pos, s.rest.Base, p.Radius, p.SpringLength)
	if clamped {
		st.Velocity = Vec2{}
	}
	st.Position = pos

	if !s.Converged(*st) {
		return false
	}
	st.Position = s.rest.Rest
	st.Velocity = Vec2{}
	st.Animating = false
	return true
}

// Converged reports whether both velocity and displacement are below their
// thresholds on each axis.
func (s *SpringSimulator) Converged(st SimulationState) bool {
	p := s.params
	return math.Abs(st.Velocity.X) < p.ConvergenceVelocityEpsilon &&
		math.Abs(st.Velocity.Y) < p.ConvergenceVelocityEpsilon &&
		math.Abs(st.Position.X-s.rest.Rest.X) < p.ConvergencePositionEpsilon &&
		math.Abs(st.Position.Y-s.rest.Rest.Y) < p.ConvergencePositionEpsilon
}
