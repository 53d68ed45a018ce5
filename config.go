package handoff

import (
	"errors"
	"fmt"
	"os"

	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

// Config holds the tunable parameters of the transitions built by a
// Delegate. It can be loaded from YAML; fields missing from the document
// keep their defaults.
type Config struct {
	Presentation     TimingConfig      `yaml:"presentation"`
	Dismissal        TimingConfig      `yaml:"dismissal"`
	InteractiveStart bool              `yaml:"interactiveStart"`
	ParentOffset     string            `yaml:"parentOffset"`
	Interaction      InteractionConfig `yaml:"interaction"`
}

// TimingConfig is the duration and curve of one transition direction.
type TimingConfig struct {
	Duration float64 `yaml:"duration"`
	Curve    string  `yaml:"curve"`
}

// InteractionConfig tunes the dismiss gesture interpreters.
type InteractionConfig struct {
	// Style is "scaleCenter" or "dragAndScale".
	Style string `yaml:"style"`
	// MaxVerticalTranslation caps the translation that drives progress.
	MaxVerticalTranslation float64 `yaml:"maxVerticalTranslation"`
	// FinishVelocity finishes a dismissal regardless of distance.
	FinishVelocity float64 `yaml:"finishVelocity"`
	// PullFinishVelocity is FinishVelocity for pull-to-dismiss.
	PullFinishVelocity float64 `yaml:"pullFinishVelocity"`
	// FinishFraction of the interaction distance commits the dismissal.
	FinishFraction float64 `yaml:"finishFraction"`
	// RubberBand damps progress past the start of the interaction.
	RubberBand float64 `yaml:"rubberBand"`
	// SpringDamping is the damping ratio of the settle animation.
	SpringDamping float64 `yaml:"springDamping"`
	// SettleDuration is the settle animation duration in seconds.
	SettleDuration float64 `yaml:"settleDuration"`
}

// Interaction styles.
const (
	InteractionScaleCenter  = "scaleCenter"
	InteractionDragAndScale = "dragAndScale"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Presentation: TimingConfig{Duration: 0.35, Curve: "easeInOut"},
		Dismissal:    TimingConfig{Duration: 0.35, Curve: "easeInOut"},
		ParentOffset: ParentOffsetPreserve.String(),
		Interaction: InteractionConfig{
			Style:                  InteractionScaleCenter,
			MaxVerticalTranslation: 80,
			FinishVelocity:         300,
			PullFinishVelocity:     800,
			FinishFraction:         0.5,
			RubberBand:             20,
			SpringDamping:          0.8,
			SettleDuration:         0.5,
		},
	}
}

// LoadConfig reads and validates a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes and validates a YAML configuration document.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, newError("ParseConfig", KindConfig, fmt.Errorf("%w: %v", ErrInvalidConfig, err))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks every field.
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return newError("Config.Validate", KindConfig,
			fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)))
	}
	timings := []struct {
		name string
		t    TimingConfig
	}{{"presentation", c.Presentation}, {"dismissal", c.Dismissal}}
	for _, tc := range timings {
		if tc.t.Duration < 0 {
			return invalid("%s duration %g is negative", tc.name, tc.t.Duration)
		}
		if _, err := Curve(tc.t.Curve); err != nil {
			return invalid("%s: %v", tc.name, err)
		}
	}
	if _, err := parseParentOffset(c.ParentOffset); err != nil {
		return invalid("%v", err)
	}
	in := c.Interaction
	switch in.Style {
	case InteractionScaleCenter, InteractionDragAndScale:
	default:
		return invalid("unknown interaction style %q", in.Style)
	}
	if in.MaxVerticalTranslation < 0 || in.FinishVelocity < 0 || in.PullFinishVelocity < 0 || in.RubberBand < 0 {
		return invalid("interaction thresholds must not be negative")
	}
	if in.FinishFraction <= 0 || in.FinishFraction > 1 {
		return invalid("finishFraction %g outside (0,1]", in.FinishFraction)
	}
	if in.SpringDamping <= 0 || in.SettleDuration < 0 {
		return invalid("invalid settle spring (damping %g, duration %g)", in.SpringDamping, in.SettleDuration)
	}
	return nil
}

// ParentOffsetMode returns the parsed parent offset mode.
func (c *Config) ParentOffsetMode() ParentOffsetMode {
	m, _ := parseParentOffset(c.ParentOffset)
	return m
}

// Easing returns the curve of t, falling back to linear for unknown names.
func (t TimingConfig) Easing() ease.TweenFunc {
	fn, err := Curve(t.Curve)
	if err != nil {
		return ease.Linear
	}
	return fn
}

func parseParentOffset(s string) (ParentOffsetMode, error) {
	switch s {
	case "", "preserve":
		return ParentOffsetPreserve, nil
	case "ignore":
		return ParentOffsetIgnore, nil
	}
	return ParentOffsetPreserve, fmt.Errorf("unknown parent offset mode %q", s)
}
