// Package scene loads YAML scene descriptions: the matrix geometry, the
// capture timing and the ordered effect stack. A parsed scene validates its
// parameters and builds the runtime effect manager.
package scene

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied to fields left out of the scene file.
const (
	DefaultWidth     = 16
	DefaultHeight    = 16
	DefaultFrameRate = 30
	DefaultDuration  = 5 * time.Second
	DefaultSeed      = 1337

	maxFrameRate = 240
)

// Scene is a parsed scene file with defaults applied.
type Scene struct {
	Name           string         `yaml:"name"`
	Matrix         Geometry       `yaml:"matrix"`
	FrameRate      int            `yaml:"frame_rate"`
	Duration       Duration       `yaml:"duration"`
	ClearEachFrame *bool          `yaml:"clear_each_frame"`
	Seed           uint16         `yaml:"seed"`
	Effects        []EffectConfig `yaml:"effects"`
}

// Geometry is the matrix extent in pixels.
type Geometry struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Rect is an effect destination rectangle in matrix coordinates.
type Rect struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// EffectConfig is one entry of the effect stack. Only the fields relevant to
// the configured type are read; the rest keep their zero values.
type EffectConfig struct {
	Type  string  `yaml:"type"`
	Color string  `yaml:"color"`
	Rect  *Rect   `yaml:"rect"`
	Seed  *uint16 `yaml:"seed"`

	// Wave and scroll parameters.
	Speed   float64 `yaml:"speed"`
	Scale   float64 `yaml:"scale"`
	Len     int     `yaml:"len"`
	Wide    int     `yaml:"wide"`
	Pos     int     `yaml:"pos"`
	Reverse bool    `yaml:"reverse"`

	// Noise and drop parameters.
	Level   *int `yaml:"level"`
	Percent *int `yaml:"percent"`

	// Particle parameters.
	Count       int   `yaml:"count"`
	RestartFill *int  `yaml:"restart_fill"`
	Smooth      *bool `yaml:"smooth"`

	// Trail parameters.
	FadeAlpha *int `yaml:"fade_alpha"`
}

// Duration wraps time.Duration with YAML decoding of strings like "10s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("duration must be a string like \"5s\": %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Load reads and parses a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene file %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a scene from YAML, applies defaults and validates it.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scene) applyDefaults() {
	if s.Matrix.Width == 0 {
		s.Matrix.Width = DefaultWidth
	}
	if s.Matrix.Height == 0 {
		s.Matrix.Height = DefaultHeight
	}
	if s.FrameRate == 0 {
		s.FrameRate = DefaultFrameRate
	}
	if s.Duration == 0 {
		s.Duration = Duration(DefaultDuration)
	}
	if s.Seed == 0 {
		s.Seed = DefaultSeed
	}
}

// Validate checks the scene parameters after defaults were applied.
func (s *Scene) Validate() error {
	if s.Matrix.Width < 1 || s.Matrix.Height < 1 {
		return fmt.Errorf("invalid matrix size %dx%d", s.Matrix.Width, s.Matrix.Height)
	}
	if s.FrameRate < 1 || s.FrameRate > maxFrameRate {
		return fmt.Errorf("frame rate %d out of range 1..%d", s.FrameRate, maxFrameRate)
	}
	if s.Duration < 0 {
		return fmt.Errorf("negative duration %s", s.Duration.Std())
	}
	for i := range s.Effects {
		if err := s.validateEffect(&s.Effects[i]); err != nil {
			return fmt.Errorf("effect %d (%s): %w", i, s.Effects[i].Type, err)
		}
	}
	return nil
}

func (s *Scene) validateEffect(cfg *EffectConfig) error {
	if _, ok := effectTypes[cfg.Type]; !ok {
		return fmt.Errorf("unknown effect type %q", cfg.Type)
	}
	if cfg.Color != "" {
		if _, err := ParseColor(cfg.Color); err != nil {
			return err
		}
	}
	if cfg.Rect != nil {
		r := cfg.Rect
		if r.W < 1 || r.H < 1 {
			return fmt.Errorf("invalid rect size %dx%d", r.W, r.H)
		}
		if r.X < 0 || r.Y < 0 || r.X+r.W > s.Matrix.Width || r.Y+r.H > s.Matrix.Height {
			return fmt.Errorf("rect %d,%d %dx%d outside %dx%d matrix",
				r.X, r.Y, r.W, r.H, s.Matrix.Width, s.Matrix.Height)
		}
	}
	for _, b := range []struct {
		name string
		val  *int
	}{
		{"level", cfg.Level},
		{"percent", cfg.Percent},
		{"fade_alpha", cfg.FadeAlpha},
	} {
		if b.val != nil && (*b.val < 0 || *b.val > 255) {
			return fmt.Errorf("%s %d out of range 0..255", b.name, *b.val)
		}
	}
	if cfg.RestartFill != nil && (*cfg.RestartFill < 1 || *cfg.RestartFill > 100) {
		return fmt.Errorf("restart_fill %d out of range 1..100", *cfg.RestartFill)
	}
	if cfg.Count < 0 {
		return fmt.Errorf("negative count %d", cfg.Count)
	}
	return nil
}
