package render

import (
	"image/color"
	"math"
	"strings"

	"subreel/internal/config"
	"subreel/internal/transcript"
)

// posColors maps part-of-speech tags to token chip colors. Unknown tags use
// the OTHER entry.
var posColors = map[string]color.RGBA{
	transcript.POSNoun:     {R: 59, G: 130, B: 246},
	transcript.POSProperN:  {R: 99, G: 102, B: 241},
	transcript.POSPronoun:  {R: 14, G: 165, B: 233},
	transcript.POSParticle: {R: 16, G: 185, B: 129},
	transcript.POSVerb:     {R: 244, G: 63, B: 94},
	transcript.POSAdj:      {R: 249, G: 115, B: 22},
	transcript.POSAdv:      {R: 245, G: 158, B: 11},
	transcript.POSExpr:     {R: 139, G: 92, B: 246},
	transcript.POSNum:      {R: 6, G: 182, B: 212},
	transcript.POSAux:      {R: 236, G: 72, B: 153},
	transcript.POSCounter:  {R: 20, G: 184, B: 166},
	transcript.POSPunct:    {R: 113, G: 113, B: 122},
	transcript.POSSymbol:   {R: 120, G: 113, B: 108},
	transcript.POSOther:    {R: 107, G: 114, B: 128},
}

// The enhanced scheme drops the dedicated expression and punctuation colors,
// folding both into OTHER.
var enhancedFoldedTags = map[string]bool{
	transcript.POSExpr:  true,
	transcript.POSPunct: true,
}

const inactiveTokenAlpha = 0.4

// TokenChipColor returns the chip fill for a token under the given scheme.
// Active chips render at full strength (scaled by intensity under the
// enhanced scheme); inactive chips are muted.
func TokenChipColor(pos, scheme string, intensity float64, active bool) color.RGBA {
	tag := strings.ToUpper(strings.TrimSpace(pos))
	if scheme == config.ColorSchemeEnhanced && enhancedFoldedTags[tag] {
		tag = transcript.POSOther
	}
	c, ok := posColors[tag]
	if !ok {
		c = posColors[transcript.POSOther]
	}

	alpha := inactiveTokenAlpha
	if active {
		alpha = 1.0
		if scheme == config.ColorSchemeEnhanced && intensity > 0 {
			alpha = math.Min(1, intensity)
		}
	}
	c.A = uint8(math.Round(alpha * 255))
	return c
}
