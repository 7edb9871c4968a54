package config

import "time"

// Appearance controls how a progress engine paints. It is read-only after
// construction; every engine instance carries its own copy.
type Appearance struct {
	BarWidth       int
	Indent         int
	FilledChar     string
	EmptyChar      string
	SpinnerFrames  []string
	RenderInterval time.Duration
	EstimateBuffer float64
}

func DefaultAppearance() Appearance {
	return Appearance{
		BarWidth:       24,
		Indent:         2,
		FilledChar:     "█",
		EmptyChar:      "░",
		SpinnerFrames:  []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		RenderInterval: 80 * time.Millisecond,
		EstimateBuffer: 0.15,
	}
}

// Normalized returns a copy with unusable values replaced by defaults, so
// the engine never divides by a zero width or ticks at interval zero.
func Normalized(a Appearance) Appearance {
	defaults := DefaultAppearance()
	if a.BarWidth <= 0 {
		a.BarWidth = defaults.BarWidth
	}
	if a.Indent < 0 {
		a.Indent = defaults.Indent
	}
	if a.FilledChar == "" {
		a.FilledChar = defaults.FilledChar
	}
	if a.EmptyChar == "" {
		a.EmptyChar = defaults.EmptyChar
	}
	if len(a.SpinnerFrames) == 0 {
		a.SpinnerFrames = defaults.SpinnerFrames
	}
	if a.RenderInterval <= 0 {
		a.RenderInterval = defaults.RenderInterval
	}
	if a.EstimateBuffer < 0 {
		a.EstimateBuffer = defaults.EstimateBuffer
	}
	return a
}
