package handoff

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// scriptStep represents a single action in a gesture script.
type scriptStep struct {
	Action string  `yaml:"action"`
	Label  string  `yaml:"label,omitempty"`
	FromX  float64 `yaml:"fromX,omitempty"`
	FromY  float64 `yaml:"fromY,omitempty"`
	ToX    float64 `yaml:"toX,omitempty"`
	ToY    float64 `yaml:"toY,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
}

// gestureScript is the top-level structure of a gesture script.
type gestureScript struct {
	Steps []scriptStep `yaml:"steps"`
}

// ScriptRunner sequences synthetic pans, waits and screenshots across frames
// for automated runs of interactive transitions. Scripts are YAML; JSON
// documents parse as well.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool

	// Gestures receives the synthetic pans.
	Gestures GestureQueue
}

// LoadScript parses a gesture script.
func LoadScript(data []byte) (*ScriptRunner, error) {
	var script gestureScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse gesture script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse gesture script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "pan", "cancel", "wait", "screenshot":
		default:
			return nil, fmt.Errorf("parse gesture script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// Done reports whether all steps have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the runner by one frame: it delivers at most one pending
// pan sample to target and otherwise executes the next step. Screenshot
// steps are queued on rec, which may be nil.
func (r *ScriptRunner) Step(target GestureTarget, rec *ScreenshotRecorder) {
	if r.done {
		return
	}
	// Pending samples drain before the script advances.
	if r.Gestures.Step(target) {
		r.checkDone()
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		r.checkDone()
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	from, to := Point{st.FromX, st.FromY}, Point{st.ToX, st.ToY}
	switch st.Action {
	case "screenshot":
		if rec != nil {
			rec.Screenshot(st.Label)
		}
	case "pan":
		r.Gestures.InjectPan(from, to, st.Frames)
		r.Gestures.Step(target)
	case "cancel":
		r.Gestures.InjectCancelledPan(from, to, st.Frames)
		r.Gestures.Step(target)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}
	r.checkDone()
}

func (r *ScriptRunner) checkDone() {
	if r.cursor >= len(r.steps) && r.waitCount == 0 && r.Gestures.Len() == 0 {
		r.done = true
	}
}
