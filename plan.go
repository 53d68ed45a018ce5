package handoff

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Plan is a deterministic description of a session: every participant with
// its resolved references and the current frame and opacity of its
// snapshot, plus the timing groups.
type Plan struct {
	State        string            `yaml:"state"`
	Container    [2]float64        `yaml:"container,flow"`
	Participants []PlanParticipant `yaml:"participants"`
	Groups       []PlanGroup       `yaml:"groups"`
}

// PlanParticipant describes one participant.
type PlanParticipant struct {
	Handle        int        `yaml:"handle"`
	Side          string     `yaml:"side"`
	View          string     `yaml:"view"`
	Style         string     `yaml:"style"`
	Priority      int        `yaml:"priority"`
	Delay         float64    `yaml:"delay"`
	Duration      float64    `yaml:"duration"`
	HideSubviews  bool       `yaml:"hideSubviews,omitempty"`
	Mask          *int       `yaml:"mask,omitempty"`
	Parent        *int       `yaml:"parent,omitempty"`
	ExtractedFrom *int       `yaml:"extractedFrom,omitempty"`
	Partner       *int       `yaml:"partner,omitempty"`
	Frame         [4]float64 `yaml:"frame,flow"`
	Alpha         float64    `yaml:"alpha"`
	MaskFrame     []float64  `yaml:"maskFrame,flow,omitempty"`
}

// PlanGroup describes one timing group.
type PlanGroup struct {
	Delay    float64 `yaml:"delay"`
	Duration float64 `yaml:"duration"`
	Handles  []int   `yaml:"handles,flow"`
}

// Plan captures the session's current state.
func (s *Session) Plan() *Plan {
	pl := &Plan{
		State:     s.state.String(),
		Container: [2]float64{s.container.Frame.Width, s.container.Frame.Height},
	}
	for _, p := range s.parts {
		tv := p.View
		f := p.Snapshot.Frame
		pp := PlanParticipant{
			Handle:        int(p.Handle),
			Side:          p.Side.String(),
			View:          tv.View.Name,
			Style:         tv.Style.String(),
			Priority:      tv.Priority,
			Delay:         tv.Config.Delay(),
			Duration:      tv.Config.Duration(),
			HideSubviews:  tv.Config.HideSubviews,
			Mask:          handleRef(p.Mask),
			Parent:        handleRef(p.Parent),
			ExtractedFrom: handleRef(p.ExtractedFrom),
			Partner:       handleRef(p.Partner),
			Frame:         [4]float64{f.X, f.Y, f.Width, f.Height},
			Alpha:         p.Snapshot.Alpha,
		}
		if m := p.Snapshot.Mask(); m != nil {
			pp.MaskFrame = []float64{m.Frame.X, m.Frame.Y, m.Frame.Width, m.Frame.Height}
		}
		pl.Participants = append(pl.Participants, pp)
	}
	for _, g := range s.Groups() {
		pg := PlanGroup{Delay: g.Delay, Duration: g.Duration}
		for _, h := range g.Handles {
			pg.Handles = append(pg.Handles, int(h))
		}
		pl.Groups = append(pl.Groups, pg)
	}
	return pl
}

// WritePlan writes the session's plan to w as YAML.
func (s *Session) WritePlan(w io.Writer) error {
	data, err := yaml.Marshal(s.Plan())
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func handleRef(h Handle) *int {
	if h == NoHandle {
		return nil
	}
	i := int(h)
	return &i
}
