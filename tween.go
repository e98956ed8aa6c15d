package springball

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Fade eases a single value toward a target. Widgets use it for the grab
// highlight. Call Update(dt) each frame.
type Fade struct {
	Value float64
	Done  bool
	tween *gween.Tween
}

// To starts easing from the current value to target over duration seconds.
// A non-positive duration jumps straight to target.
func (f *Fade) To(target float64, duration float32, fn ease.TweenFunc) {
	if duration <= 0 {
		f.Value = target
		f.tween = nil
		f.Done = true
		return
	}
	f.tween = gween.New(float32(f.Value), float32(target), duration, fn)
	f.Done = false
}

// Update advances the tween by dt seconds.
func (f *Fade) Update(dt float32) {
	if f.tween == nil {
		return
	}
	val, finished := f.tween.Update(dt)
	f.Value = float64(val)
	if finished {
		f.tween = nil
		f.Done = true
	}
}
