package springball

// frameRequest is a queued one-shot callback. A nil fn marks a cancelled or
// already-run slot.
type frameRequest struct {
	id uint32
	fn func()
}

// FrameScheduler queues callbacks for the next frame, standing in for a
// display-synchronized animation callback. Callbacks requested while Tick is
// running fire on the following Tick, so a self-rescheduling step runs once
// per frame without recursion. Single-threaded, like the rest of the package.
type FrameScheduler struct {
	queue   []frameRequest
	running []frameRequest
	nextID  uint32
}

// FrameHandle identifies a requested callback. The zero value is inert.
type FrameHandle struct {
	id uint32
	s  *FrameScheduler
}

// NewFrameScheduler creates an empty scheduler.
func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{}
}

// RequestFrame queues fn for the next Tick.
func (s *FrameScheduler) RequestFrame(fn func()) FrameHandle {
	s.nextID++
	if s.nextID == 0 {
		s.nextID = 1
	}
	s.queue = append(s.queue, frameRequest{id: s.nextID, fn: fn})
	return FrameHandle{id: s.nextID, s: s}
}

// Cancel removes the callback if it has not fired yet and reports whether it
// was still pending.
func (h FrameHandle) Cancel() bool {
	if h.s == nil || h.id == 0 {
		return false
	}
	if cancelRequest(h.s.queue, h.id) {
		return true
	}
	return cancelRequest(h.s.running, h.id)
}

// Pending reports whether the callback is still waiting to fire.
func (h FrameHandle) Pending() bool {
	if h.s == nil || h.id == 0 {
		return false
	}
	return findRequest(h.s.queue, h.id) >= 0 || findRequest(h.s.running, h.id) >= 0
}

func findRequest(reqs []frameRequest, id uint32) int {
	for i := range reqs {
		if reqs[i].id == id && reqs[i].fn != nil {
			return i
		}
	}
	return -1
}

func cancelRequest(reqs []frameRequest, id uint32) bool {
	i := findRequest(reqs, id)
	if i < 0 {
		return false
	}
	reqs[i].fn = nil
	return true
}

// Tick runs every callback queued before this call and returns how many ran.
func (s *FrameScheduler) Tick() int {
	if len(s.queue) == 0 {
		return 0
	}
	s.running, s.queue = s.queue, s.running[:0]
	ran := 0
	for i := range s.running {
		fn := s.running[i].fn
		if fn == nil {
			continue
		}
		s.running[i].fn = nil
		fn()
		ran++
	}
	s.running = s.running[:0]
	return ran
}

// Pending returns the number of callbacks waiting for the next Tick.
func (s *FrameScheduler) Pending() int {
	n := 0
	for i := range s.queue {
		if s.queue[i].fn != nil {
			n++
		}
	}
	return n
}

// CancelAll drops every queued callback.
func (s *FrameScheduler) CancelAll() {
	for i := range s.queue {
		s.queue[i].fn = nil
	}
	for i := range s.running {
		s.running[i].fn = nil
	}
	s.queue = s.queue[:0]
}
