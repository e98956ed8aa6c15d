package springball

import (
	"errors"
	"fmt"
	"math"
)

// Physics defaults. Stiffness and damping are the values the widget ships
// with; the three tuning constants are fixed.
const (
	DefaultStiffness = 0.96
	DefaultDamping   = 0.966
	DefaultRadius    = 300.0
	DefaultTurns     = 7

	// ReleaseVelocityScale converts release displacement into launch speed.
	ReleaseVelocityScale = 0.17
	// ConvergenceVelocityEpsilon bounds |velocity| per axis at convergence.
	ConvergenceVelocityEpsilon = 0.35
	// ConvergencePositionEpsilon bounds |position - rest| per axis at convergence.
	ConvergencePositionEpsilon = 0.7
)

// Construction-time contract violations. Returned wrapped; match with errors.Is.
var (
	ErrInvalidStiffness    = errors.New("stiffness must be in (0, 1)")
	ErrInvalidDamping      = errors.New("damping must be in (0, 1)")
	ErrInvalidRadius       = errors.New("radius must be positive")
	ErrInvalidSpringLength = errors.New("spring length must be positive")
	ErrInvalidTurns        = errors.New("turns must be at least 1")
	ErrInvalidAmplitude    = errors.New("amplitude must be finite and non-negative")
	ErrInvalidEpsilon      = errors.New("convergence thresholds must be positive")
	ErrInvalidRestState    = errors.New("rest and base must be finite")
	ErrInvalidSize         = errors.New("widget and base dimensions must be positive")
	ErrInvalidPlacement    = errors.New("unknown placement")
)

// PhysicsParams is the immutable spring configuration.
type PhysicsParams struct {
	Stiffness    float64 // (0, 1): scales the restoring force applied to velocity
	Damping      float64 // (0, 1): per-frame velocity multiplier, closer to 1 is bouncier
	Radius       float64 // maximum distance from the ball's body-center to the base
	SpringLength float64 // ball size; half of it offsets the anchor to the body-center

	ReleaseVelocityScale       float64
	ConvergenceVelocityEpsilon float64
	ConvergencePositionEpsilon float64
}

// DefaultPhysicsParams returns the shipped physics for a ball of the given
// spring length.
func DefaultPhysicsParams(springLength float64) PhysicsParams {
	return PhysicsParams{
		Stiffness:                  DefaultStiffness,
		Damping:                    DefaultDamping,
		Radius:                     DefaultRadius,
		SpringLength:               springLength,
		ReleaseVelocityScale:       ReleaseVelocityScale,
		ConvergenceVelocityEpsilon: ConvergenceVelocityEpsilon,
		ConvergencePositionEpsilon: ConvergencePositionEpsilon,
	}
}

// Validate rejects parameters that would make the simulation undefined or
// non-terminating.
func (p PhysicsParams) Validate() error {
	if !(p.Stiffness > 0 && p.Stiffness < 1) {
		return fmt.Errorf("springball: stiffness %v: %w", p.Stiffness, ErrInvalidStiffness)
	}
	if !(p.Damping > 0 && p.Damping < 1) {
		return fmt.Errorf("springball: damping %v: %w", p.Damping, ErrInvalidDamping)
	}
	if !(p.Radius > 0) || math.IsInf(p.Radius, 0) {
		return fmt.Errorf("springball: radius %v: %w", p.Radius, ErrInvalidRadius)
	}
	if !(p.SpringLength > 0) || math.IsInf(p.SpringLength, 0) {
		return fmt.Errorf("springball: spring length %v: %w", p.SpringLength, ErrInvalidSpringLength)
	}
	if !(p.ConvergenceVelocityEpsilon > 0) || !(p.ConvergencePositionEpsilon > 0) {
		return fmt.Errorf("springball: epsilons %v/%v: %w",
			p.ConvergenceVelocityEpsilon, p.ConvergencePositionEpsilon, ErrInvalidEpsilon)
	}
	if !(p.ReleaseVelocityScale >= 0) || math.IsInf(p.ReleaseVelocityScale, 0) {
		return fmt.Errorf("springball: release velocity scale %v: %w", p.ReleaseVelocityScale, ErrInvalidEpsilon)
	}
	return nil
}

// SpringGeometry controls the drawn zig-zag.
type SpringGeometry struct {
	Turns     int     // number of full zig-zags; 2*Turns+1 interior vertices
	Amplitude float64 // perpendicular offset of each vertex
}

// Validate rejects geometry that cannot produce a path.
func (g SpringGeometry) Validate() error {
	if g.Turns < 1 {
		return fmt.Errorf("springball: turns %d: %w", g.Turns, ErrInvalidTurns)
	}
	if !(g.Amplitude >= 0) || math.IsInf(g.Amplitude, 0) {
		return fmt.Errorf("springball: amplitude %v: %w", g.Amplitude, ErrInvalidAmplitude)
	}
	return nil
}

// RestState is computed once per widget and never mutated afterwards.
type RestState struct {
	Rest Vec2 // the ball's neutral anchor
	Base Vec2 // the spring's fixed anchor on the base
}

// Validate rejects non-finite anchors.
func (r RestState) Validate() error {
	if !r.Rest.finite() || !r.Base.finite() {
		return fmt.Errorf("springball: rest %v base %v: %w", r.Rest, r.Base, ErrInvalidRestState)
	}
	return nil
}

// SimulationState is the mutable core state. Dragging and Animating are never
// both true.
type SimulationState struct {
	Position  Vec2
	Velocity  Vec2
	Dragging  bool
	Animating bool
}

// bodyCenter returns the point the radial clamp measures from: the anchor
// shifted by half the spring length on both axes.
func bodyCenter(anchor Vec2, springLength float64) Vec2 {
	return anchor.Offset(springLength / 2)
}

// clampToRadius keeps the body-center of anchor within radius of base and
// returns the adjusted anchor. A zero distance never rescales.
func clampToRadius(anchor, base Vec2, radius, springLength float64) (Vec2, bool) {
	half := springLength / 2
	delta := anchor.Offset(half).Sub(base)
	dist := delta.Len()
	if dist == 0 || dist <= radius {
		return anchor, false
	}
	delta = delta.Scale(radius / dist)
	return base.Add(delta).Offset(-half), true
}
