package springball

import "testing"

// scriptRecorder is a ScriptTarget that records screenshot requests.
type scriptRecorder struct {
	in    *Input
	shots []string
}

func (r *scriptRecorder) Input() *Input           { return r.in }
func (r *scriptRecorder) Screenshot(label string) { r.shots = append(r.shots, label) }

func TestLoadTestScript(t *testing.T) {
	data := []byte(`
steps:
  - {action: screenshot, label: initial}
  - {action: click, x: 100, y: 200}
  - {action: wait, frames: 3}
  - {action: drag, fromX: 1, fromY: 2, toX: 3, toY: 4, frames: 6}
`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "screenshot" || runner.steps[0].Label != "initial" {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].Action != "click" || runner.steps[1].X != 100 || runner.steps[1].Y != 200 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].Action != "wait" || runner.steps[2].Frames != 3 {
		t.Error("step 2 mismatch")
	}
	if s := runner.steps[3]; s.FromX != 1 || s.FromY != 2 || s.ToX != 3 || s.ToY != 4 || s.Frames != 6 {
		t.Errorf("step 3 mismatch: %+v", s)
	}
}

func TestLoadTestScript_JSON(t *testing.T) {
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "press", "x": 1, "y": 2}]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 1 || runner.steps[0].Action != "press" {
		t.Errorf("steps = %+v", runner.steps)
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	if _, err := LoadTestScript([]byte(`not a script`)); err == nil {
		t.Error("expected error for a scalar document")
	}
}

func TestLoadTestScript_Empty(t *testing.T) {
	if _, err := LoadTestScript([]byte(`steps: []`)); err == nil {
		t.Error("expected error for empty steps")
	}
}

func TestLoadTestScript_UnknownAction(t *testing.T) {
	if _, err := LoadTestScript([]byte(`steps: [{action: teleport}]`)); err == nil {
		t.Error("expected error for unknown action")
	}
}

func TestRunnerStep_Click(t *testing.T) {
	runner, err := LoadTestScript([]byte(`steps: [{action: click, x: 50, y: 50}]`))
	if err != nil {
		t.Fatal(err)
	}
	in, log := newLoggedInput()
	target := &scriptRecorder{in: in}

	// Frame 1: runner queues press+release, input consumes the press.
	runner.Step(target)
	in.Update()
	// Frame 2: runner waits for the queue to drain, input consumes the release.
	runner.Step(target)
	in.Update()

	if len(log.events) != 2 || log.events[0].Type != EventPointerDown || log.events[1].Type != EventPointerUp {
		t.Fatalf("events = %+v, want down then up", log.events)
	}
	runner.Step(target)
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	runner, err := LoadTestScript([]byte(`
steps:
  - {action: wait, frames: 3}
  - {action: screenshot, label: after-wait}
`))
	if err != nil {
		t.Fatal(err)
	}
	target := &scriptRecorder{in: NewInput()}

	for i := 0; i < 3; i++ {
		runner.Step(target)
	}
	if len(target.shots) != 0 {
		t.Fatalf("screenshot taken during wait: %v", target.shots)
	}
	runner.Step(target)
	if len(target.shots) != 1 || target.shots[0] != "after-wait" {
		t.Errorf("shots = %v, want [after-wait]", target.shots)
	}
	if !runner.Done() {
		t.Error("runner should be done after the last step")
	}
}

func TestRunnerStep_Touch(t *testing.T) {
	runner, err := LoadTestScript([]byte(`
steps:
  - {action: touch, pointer: 2, x: 5, y: 6}
  - {action: lift, pointer: 2, x: 5, y: 6}
`))
	if err != nil {
		t.Fatal(err)
	}
	in, log := newLoggedInput()
	target := &scriptRecorder{in: in}
	for i := 0; i < 4 && !runner.Done(); i++ {
		runner.Step(target)
		if in.Pending() > 0 {
			in.Update()
		}
	}
	if len(log.events) != 2 {
		t.Fatalf("events = %+v, want touch down and up", log.events)
	}
	if log.events[0].PointerID != 2 || log.events[1].Type != EventPointerUp {
		t.Errorf("events = %+v", log.events)
	}
}
