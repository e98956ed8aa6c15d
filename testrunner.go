package springball

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// scriptStep represents a single action in an input script.
type scriptStep struct {
	Action  string  `yaml:"action"`
	Pointer int     `yaml:"pointer,omitempty"`
	X       float64 `yaml:"x,omitempty"`
	Y       float64 `yaml:"y,omitempty"`
	FromX   float64 `yaml:"fromX,omitempty"`
	FromY   float64 `yaml:"fromY,omitempty"`
	ToX     float64 `yaml:"toX,omitempty"`
	ToY     float64 `yaml:"toY,omitempty"`
	Frames  int     `yaml:"frames,omitempty"`
	Label   string  `yaml:"label,omitempty"`
}

// inputScript is the top-level structure for an input script.
type inputScript struct {
	Steps []scriptStep `yaml:"steps"`
}

// ScriptTarget is what a TestRunner drives. Game implements it.
type ScriptTarget interface {
	Input() *Input
	Screenshot(label string)
}

// TestRunner sequences injected input and screenshots across frames for
// scripted demos and automated checks. Scripts are YAML (JSON parses too):
//
//	steps:
//	  - {action: drag, fromX: 560, fromY: 380, toX: 420, toY: 300, frames: 20}
//	  - {action: wait, frames: 120}
//	  - {action: touch, pointer: 1, x: 560, y: 380}
//	  - {action: lift, pointer: 1, x: 560, y: 380}
//	  - {action: screenshot, label: released}
type TestRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

var scriptActions = map[string]bool{
	"press": true, "move": true, "release": true, "click": true,
	"drag": true, "touch": true, "lift": true, "wait": true,
	"screenshot": true,
}

// LoadTestScript parses an input script and returns a TestRunner ready to be
// stepped once per frame.
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script inputScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	for i, st := range script.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse input script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// Done reports whether all steps in the script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Step advances the runner by one frame, queueing input on the target.
func (r *TestRunner) Step(target ScriptTarget) {
	in := target.Input()
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if in.Pending() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "press":
		in.InjectPress(st.X, st.Y)
	case "move":
		in.InjectMove(st.X, st.Y)
	case "release":
		in.InjectRelease(st.X, st.Y)
	case "click":
		in.InjectPress(st.X, st.Y)
		in.InjectRelease(st.X, st.Y)
	case "drag":
		in.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "touch":
		in.InjectTouch(st.Pointer, st.X, st.Y, true)
	case "lift":
		in.InjectTouch(st.Pointer, st.X, st.Y, false)
	case "screenshot":
		target.Screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && in.Pending() == 0 {
		r.done = true
	}
}
