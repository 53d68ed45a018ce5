package handoff

import (
	"strings"
	"testing"
)

func TestLoadScript(t *testing.T) {
	data := []byte(`
steps:
  - action: screenshot
    label: initial
  - action: pan
    fromX: 100
    fromY: 100
    toX: 100
    toY: 400
    frames: 5
  - action: wait
    frames: 3
  - action: screenshot
    label: after-pull
`)

	runner, err := LoadScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "screenshot" || runner.steps[0].Label != "initial" {
		t.Error("step 0 mismatch")
	}
	if s := runner.steps[1]; s.Action != "pan" || s.FromY != 100 || s.ToY != 400 || s.Frames != 5 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].Action != "wait" || runner.steps[2].Frames != 3 {
		t.Error("step 2 mismatch")
	}
}

func TestLoadScript_JSON(t *testing.T) {
	runner, err := LoadScript([]byte(`{"steps": [{"action": "cancel", "toY": 50, "frames": 2}]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if runner.steps[0].Action != "cancel" || runner.steps[0].ToY != 50 {
		t.Error("step 0 mismatch")
	}
}

func TestLoadScript_Errors(t *testing.T) {
	tests := []struct {
		name, doc, want string
	}{
		{"invalid", "steps: [", "parse gesture script"},
		{"empty", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "click"}]}`, "unknown action"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScript([]byte(tt.doc))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestRunnerStep_Pan(t *testing.T) {
	runner, err := LoadScript([]byte(`{"steps": [{"action": "pan", "toY": 30, "frames": 3}]}`))
	if err != nil {
		t.Fatal(err)
	}
	var rec recordingTarget

	// Frame 1 queues the pan and delivers its first sample.
	runner.Step(&rec, nil)
	if len(rec.events) != 1 || rec.events[0].Phase != PanBegan {
		t.Fatalf("after frame 1: %+v", rec.events)
	}
	if runner.Done() {
		t.Error("runner should not be done with samples pending")
	}

	runner.Step(&rec, nil)
	runner.Step(&rec, nil)
	if len(rec.events) != 3 || rec.events[2].Phase != PanEnded || rec.events[2].Translation.Y != 30 {
		t.Fatalf("samples = %+v", rec.events)
	}
	if !runner.Done() {
		t.Error("runner should be done after the last sample")
	}
	runner.Step(&rec, nil)
	if len(rec.events) != 3 {
		t.Error("a done runner delivers nothing")
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	runner, err := LoadScript([]byte(`{"steps": [{"action": "wait", "frames": 3}, {"action": "cancel", "toY": 10, "frames": 2}]}`))
	if err != nil {
		t.Fatal(err)
	}
	var rec recordingTarget
	for i := 0; i < 3; i++ {
		runner.Step(&rec, nil)
	}
	if len(rec.events) != 0 {
		t.Fatalf("wait frames should not deliver samples, got %d", len(rec.events))
	}
	runner.Step(&rec, nil)
	runner.Step(&rec, nil)
	if len(rec.events) != 2 || rec.events[1].Phase != PanCancelled {
		t.Errorf("samples = %+v", rec.events)
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestRunnerStep_Screenshot(t *testing.T) {
	runner, err := LoadScript([]byte(`{"steps": [{"action": "screenshot", "label": "a"}, {"action": "screenshot", "label": "b"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	var shots ScreenshotRecorder
	var rec recordingTarget
	runner.Step(&rec, &shots)
	runner.Step(&rec, nil)
	if shots.Pending() != 1 || shots.queue[0] != "a" {
		t.Errorf("queued = %v, want [a]", shots.queue)
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}
