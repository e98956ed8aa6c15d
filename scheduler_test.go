package springball

import "testing"

func TestFrameSchedulerTick(t *testing.T) {
	s := NewFrameScheduler()
	calls := 0
	s.RequestFrame(func() { calls++ })
	if s.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1", s.Pending())
	}
	if ran := s.Tick(); ran != 1 || calls != 1 {
		t.Fatalf("Tick ran %d (calls %d), want 1", ran, calls)
	}
	if ran := s.Tick(); ran != 0 || calls != 1 {
		t.Errorf("second Tick ran %d, want 0", ran)
	}
}

func TestFrameSchedulerCancel(t *testing.T) {
	s := NewFrameScheduler()
	fired := false
	h := s.RequestFrame(func() { fired = true })
	if !h.Pending() {
		t.Error("handle should be pending")
	}
	if !h.Cancel() {
		t.Error("Cancel should report true for a pending callback")
	}
	if h.Cancel() {
		t.Error("second Cancel should report false")
	}
	if h.Pending() {
		t.Error("cancelled handle still pending")
	}
	s.Tick()
	if fired {
		t.Error("cancelled callback fired")
	}
}

func TestFrameSchedulerZeroHandle(t *testing.T) {
	var h FrameHandle
	if h.Cancel() || h.Pending() {
		t.Error("zero handle should be inert")
	}
}

func TestFrameSchedulerRequestDuringTick(t *testing.T) {
	s := NewFrameScheduler()
	var order []int
	s.RequestFrame(func() {
		order = append(order, 1)
		s.RequestFrame(func() { order = append(order, 2) })
	})
	s.Tick()
	if len(order) != 1 {
		t.Fatalf("callback requested during Tick ran in the same Tick: %v", order)
	}
	s.Tick()
	if len(order) != 2 || order[1] != 2 {
		t.Errorf("order = %v, want [1 2]", order)
	}
}

func TestFrameSchedulerCancelDuringTick(t *testing.T) {
	s := NewFrameScheduler()
	var second FrameHandle
	fired := false
	s.RequestFrame(func() { second.Cancel() })
	second = s.RequestFrame(func() { fired = true })
	if ran := s.Tick(); ran != 1 {
		t.Errorf("Tick ran %d, want 1", ran)
	}
	if fired {
		t.Error("callback cancelled earlier in the same Tick still fired")
	}
}

func TestFrameSchedulerCancelAll(t *testing.T) {
	s := NewFrameScheduler()
	calls := 0
	for i := 0; i < 3; i++ {
		s.RequestFrame(func() { calls++ })
	}
	s.CancelAll()
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d after CancelAll", s.Pending())
	}
	s.Tick()
	if calls != 0 {
		t.Errorf("%d callbacks fired after CancelAll", calls)
	}
}
