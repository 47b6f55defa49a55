package scene

import (
	"fmt"
	"image"

	"github.com/alphamatrix/ledgrid/internal/effects"
	"github.com/alphamatrix/ledgrid/pkg/ledcolor"
	"github.com/alphamatrix/ledgrid/pkg/ledmath"
)

// effectTypes is the catalog of effect names accepted in scene files. The
// map doubles as the validation set, the builders run after validation.
var effectTypes = map[string]struct{}{
	"fill":                 {},
	"palette":              {},
	"rainbow_wave":         {},
	"white_noise":          {},
	"color_rand_drop":      {},
	"gradient":             {},
	"sinus_wave":           {},
	"exploded_sinus_noise": {},
	"gradient_waves":       {},
	"plasma":               {},
	"snowfall":             {},
	"bouncing_pixel":       {},
	"fade_trail":           {},
}

// Build instantiates the configured effect stack on a new manager. Each
// randomized effect gets its own generator seeded from the scene seed plus
// its stack position, so identical effects in one scene do not run in
// lockstep.
func (s *Scene) Build() (*effects.Manager, error) {
	mgr := effects.NewManager()
	if s.ClearEachFrame != nil {
		mgr.ClearEachFrame = *s.ClearEachFrame
	}
	for i := range s.Effects {
		e, err := s.buildEffect(&s.Effects[i], i)
		if err != nil {
			return nil, fmt.Errorf("effect %d (%s): %w", i, s.Effects[i].Type, err)
		}
		mgr.Add(e)
	}
	return mgr, nil
}

func (s *Scene) buildEffect(cfg *EffectConfig, index int) (effects.Effect, error) {
	seed := s.Seed + uint16(index)
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}
	rect := s.effectRect(cfg)
	color, err := s.effectColor(cfg)
	if err != nil {
		return nil, err
	}

	switch cfg.Type {
	case "fill":
		e := effects.NewFill(color)
		e.Rect = rect
		return e, nil

	case "palette":
		e := effects.NewPalette()
		if cfg.Wide > 0 {
			e.Wide = cfg.Wide
		}
		e.Rect = rect
		return e, nil

	case "rainbow_wave":
		e := effects.NewRainbowWave()
		if cfg.Len > 0 {
			e.Len = cfg.Len
		}
		if cfg.Speed > 0 {
			e.Speed = int(cfg.Speed)
		}
		e.Pos = uint8(cfg.Pos)
		e.Reverse = cfg.Reverse
		e.Rect = rect
		return e, nil

	case "white_noise":
		e := effects.NewWhiteNoise(seed)
		if cfg.Level != nil {
			e.Level = uint8(*cfg.Level)
		}
		e.Rect = rect
		return e, nil

	case "color_rand_drop":
		e := effects.NewColorRandDrop(seed)
		if cfg.Level != nil {
			e.Level = uint8(*cfg.Level)
		}
		if cfg.Percent != nil {
			e.Percent = uint8(*cfg.Percent)
		}
		e.Rect = rect
		return e, nil

	case "gradient":
		e := effects.NewGradient()
		e.Rect = rect
		return e, nil

	case "sinus_wave":
		e := effects.NewSinusWave()
		if color != (ledcolor.RGBA{}) {
			e.Color = color
		}
		if cfg.Len > 0 {
			e.Len = cfg.Len
		}
		if cfg.Speed > 0 {
			e.Speed = int(cfg.Speed)
		}
		e.Pos = uint8(cfg.Pos)
		e.Reverse = cfg.Reverse
		e.Rect = rect
		return e, nil

	case "exploded_sinus_noise":
		e := effects.NewExplodedSinusNoise()
		if cfg.Speed > 0 {
			e.Speed = int(cfg.Speed)
		}
		e.Pos = uint8(cfg.Pos)
		e.Rect = rect
		return e, nil

	case "gradient_waves":
		e := effects.NewGradientWaves()
		if cfg.Speed > 0 {
			e.Speed = cfg.Speed
		}
		if cfg.Scale > 0 {
			e.Scale = cfg.Scale
		}
		e.Rect = rect
		return e, nil

	case "plasma":
		e := effects.NewPlasma()
		if cfg.Speed > 0 {
			e.Speed = cfg.Speed
		}
		if cfg.Scale > 0 {
			e.Scale = cfg.Scale
		}
		e.Rect = rect
		return e, nil

	case "snowfall":
		// Stateful effects size their state from the rect, so an absent
		// rect resolves to the full matrix here rather than at render
		// time.
		e := effects.NewSnowfall(seed, s.resolveRect(rect))
		if color != (ledcolor.RGBA{}) {
			e.Color = color
		}
		if cfg.Count > 0 {
			e.Count = cfg.Count
		}
		if cfg.RestartFill != nil {
			e.RestartFillPercent = uint8(*cfg.RestartFill)
		}
		if cfg.Smooth != nil {
			e.Smooth = *cfg.Smooth
		}
		if cfg.Speed > 0 {
			e.Speed = ledmath.FP16FromFloat(cfg.Speed)
		}
		return e, nil

	case "bouncing_pixel":
		e := effects.NewBouncingPixel(seed, s.resolveRect(rect))
		if color != (ledcolor.RGBA{}) {
			e.Color = color
		}
		if cfg.Smooth != nil {
			e.Smooth = *cfg.Smooth
		}
		if cfg.Speed > 0 {
			e.Speed = ledmath.FP16FromFloat(cfg.Speed)
		}
		return e, nil

	case "fade_trail":
		e := effects.NewFadeTrail()
		if cfg.FadeAlpha != nil {
			e.FadeAlpha = uint8(*cfg.FadeAlpha)
		}
		return e, nil
	}

	return nil, fmt.Errorf("unknown effect type %q", cfg.Type)
}

func (s *Scene) effectColor(cfg *EffectConfig) (ledcolor.RGBA, error) {
	if cfg.Color == "" {
		return ledcolor.RGBA{}, nil
	}
	return ParseColor(cfg.Color)
}

func (s *Scene) effectRect(cfg *EffectConfig) image.Rectangle {
	if cfg.Rect == nil {
		return image.Rectangle{}
	}
	r := cfg.Rect
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// resolveRect replaces the whole-matrix zero rect with the explicit matrix
// bounds.
func (s *Scene) resolveRect(r image.Rectangle) image.Rectangle {
	if r == (image.Rectangle{}) {
		return image.Rect(0, 0, s.Matrix.Width, s.Matrix.Height)
	}
	return r
}
