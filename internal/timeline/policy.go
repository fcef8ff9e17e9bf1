package timeline

import (
	"subreel/internal/config"
	"subreel/internal/transcript"
)

// Mode selects the highlight timing rule set.
type Mode string

const (
	// ModeA highlights exactly the token's own [start, end) window.
	ModeA Mode = "A"
	// ModeB additionally shifts token windows by TokenLead, skips ahead
	// over punctuation after PunctSkip, and scales visual intensity.
	// Offset shifts the cue clock under both modes.
	ModeB Mode = "B"
)

// Policy decides which tokens count as active at a given time. Switching
// policy never mutates segment or token data, only this decision function.
type Policy struct {
	Mode        Mode
	Offset      float64
	TokenLead   float64
	PunctSkip   float64
	Intensity   float64
	ColorScheme string
}

// BaselinePolicy is Mode A with no adjustments.
func BaselinePolicy() Policy {
	return Policy{Mode: ModeA, Intensity: 1, ColorScheme: config.ColorSchemeOriginal}
}

// TunedPolicy is Mode B with its default adjustments.
func TunedPolicy() Policy {
	cfg := config.Default()
	return Policy{
		Mode:        ModeB,
		Offset:      cfg.Highlight.Offset,
		TokenLead:   cfg.Highlight.TokenLead,
		PunctSkip:   cfg.Highlight.PunctSkip,
		Intensity:   cfg.Highlight.Intensity,
		ColorScheme: cfg.Highlight.ColorScheme,
	}
}

// PolicyFromConfig builds the active policy from validated config settings.
func PolicyFromConfig(cfg config.Highlight) Policy {
	if cfg.Mode == config.HighlightModeB {
		return Policy{
			Mode:        ModeB,
			Offset:      cfg.Offset,
			TokenLead:   cfg.TokenLead,
			PunctSkip:   cfg.PunctSkip,
			Intensity:   cfg.Intensity,
			ColorScheme: cfg.ColorScheme,
		}
	}
	return Policy{Mode: ModeA, Offset: cfg.Offset, Intensity: 1, ColorScheme: cfg.ColorScheme}
}

// Window returns a token's highlight window in segment-relative cue time.
// Under Mode B the start moves by TokenLead; negative values move the
// highlight earlier. Offset is not part of the window: Locate applies it to
// the cue clock, shifting segment matching and token windows together.
func (p Policy) Window(tok transcript.Token) (float64, float64) {
	if p.Mode != ModeB {
		return tok.Start, tok.End
	}
	return tok.Start + p.TokenLead, tok.End
}

func (p Policy) contains(tok transcript.Token, local float64) bool {
	start, end := p.Window(tok)
	return local >= start && local < end
}
