package springball

import (
	"math"
	"math/rand"
	"testing"
)

func simParams(k, d float64) PhysicsParams {
	p := DefaultPhysicsParams(50)
	p.Stiffness = k
	p.Damping = d
	return p
}

// runToRest steps st until convergence and fails if it takes more than max.
func runToRest(t *testing.T, sim *SpringSimulator, st *SimulationState, max int) int {
	t.Helper()
	for i := 1; i <= max; i++ {
		if sim.Step(st) {
			return i
		}
	}
	t.Fatalf("no convergence after %d steps: %+v", max, *st)
	return 0
}

func TestSimulatorConverges(t *testing.T) {
	tests := []struct {
		name string
		k, d float64
	}{
		{"shipped", 0.96, 0.966},
		{"soft bouncy", 0.2, 0.95},
		{"soft overdamped", 0.1, 0.5},
		{"medium", 0.5, 0.9},
		{"stiff heavy damping", 0.9, 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := NewSpringSimulator(simParams(tt.k, tt.d), testRest)
			st := &SimulationState{
				Position:  testRest.Rest.Add(Vec2{80, -120}),
				Velocity:  Vec2{80, -120}.Scale(ReleaseVelocityScale),
				Animating: true,
			}
			runToRest(t, sim, st, 5000)
			if st.Position != testRest.Rest {
				t.Errorf("Position = %v, want exactly %v", st.Position, testRest.Rest)
			}
			if st.Velocity != (Vec2{}) {
				t.Errorf("Velocity = %v, want zero", st.Velocity)
			}
			if st.Animating {
				t.Error("Animating still set after convergence")
			}
		})
	}
}

func TestSimulatorRestIsFixedPoint(t *testing.T) {
	sim := NewSpringSimulator(DefaultPhysicsParams(50), testRest)
	st := &SimulationState{Position: testRest.Rest, Animating: true}
	if !sim.Step(st) {
		t.Fatal("step from rest with zero velocity should converge immediately")
	}
	if st.Position != testRest.Rest || st.Velocity != (Vec2{}) {
		t.Errorf("state moved: %+v", *st)
	}
}

func TestSimulatorSingleStep(t *testing.T) {
	sim := NewSpringSimulator(DefaultPhysicsParams(50), testRest)
	st := &SimulationState{Position: testRest.Rest.Add(Vec2{0, 30}), Animating: true}
	sim.Step(st)

	// v = (0 - 0.96*30) * 0.966
	wantVY := -0.96 * 30 * 0.966
	if !nearlyEqual(st.Velocity.Y, wantVY, 1e-9) {
		t.Errorf("Velocity.Y = %v, want %v", st.Velocity.Y, wantVY)
	}
	if !nearlyEqual(st.Position.Y, 160+wantVY, 1e-9) {
		t.Errorf("Position.Y = %v, want %v", st.Position.Y, 160+wantVY)
	}
}

func TestSimulatorClampResetsVelocity(t *testing.T) {
	p := DefaultPhysicsParams(50)
	p.Radius = 40
	sim := NewSpringSimulator(p, testRest)
	st := &SimulationState{
		Position:  testRest.Rest.Add(Vec2{10, 0}),
		Velocity:  Vec2{50, 0},
		Animating: true,
	}
	sim.Step(st)
	if st.Velocity != (Vec2{}) {
		t.Errorf("Velocity = %v, want zero after hitting the radius", st.Velocity)
	}
	dist := bodyCenter(st.Position, 50).Sub(testRest.Base).Len()
	if !nearlyEqual(dist, 40, 1e-9) {
		t.Errorf("body-center distance = %v, want 40", dist)
	}
}

func TestSimulatorPropertyRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		k := 0.05 + rng.Float64()*0.9
		d := 0.3 + rng.Float64()*0.68
		p := simParams(k, d)
		p.Radius = 40 + rng.Float64()*300
		sim := NewSpringSimulator(p, testRest)

		angle := rng.Float64() * 2 * math.Pi
		reach := rng.Float64() * p.Radius * 2
		target := Vec2{math.Cos(angle) * reach, math.Sin(angle) * reach}
		pos, _ := clampToRadius(testRest.Rest.Add(target), testRest.Base, p.Radius, p.SpringLength)
		st := &SimulationState{
			Position:  pos,
			Velocity:  pos.Sub(testRest.Rest).Scale(ReleaseVelocityScale),
			Animating: true,
		}

		converged := false
		for n := 0; n < 20000; n++ {
			converged = sim.Step(st)
			dist := bodyCenter(st.Position, p.SpringLength).Sub(testRest.Base).Len()
			if dist > p.Radius+1e-9 {
				t.Fatalf("case %d (k=%.3f d=%.3f): body-center %v outside radius %v", i, k, d, dist, p.Radius)
			}
			if converged {
				break
			}
		}
		if !converged {
			t.Fatalf("case %d (k=%.3f d=%.3f): did not converge", i, k, d)
		}
		if st.Position != testRest.Rest {
			t.Fatalf("case %d: Position = %v, want rest", i, st.Position)
		}
	}
}

func TestSimulatorConverged(t *testing.T) {
	sim := NewSpringSimulator(DefaultPhysicsParams(50), testRest)
	tests := []struct {
		name string
		st   SimulationState
		want bool
	}{
		{"at rest", SimulationState{Position: testRest.Rest}, true},
		{"inside both thresholds", SimulationState{Position: testRest.Rest.Add(Vec2{0.69, -0.69}), Velocity: Vec2{0.34, -0.34}}, true},
		{"position on threshold", SimulationState{Position: testRest.Rest.Add(Vec2{0.7, 0})}, false},
		{"velocity on threshold", SimulationState{Position: testRest.Rest, Velocity: Vec2{0, 0.35}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sim.Converged(tt.st); got != tt.want {
				t.Errorf("Converged() = %v, want %v", got, tt.want)
			}
		})
	}
}
