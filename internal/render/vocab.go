package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"subreel/internal/transcript"
)

// vocabSourcePOS selects which token classes feed the vocabulary panel when
// no explicit vocabulary list is present. Punctuation never qualifies.
var vocabSourcePOS = map[string]bool{
	transcript.POSNoun:    true,
	transcript.POSProperN: true,
	transcript.POSVerb:    true,
	transcript.POSAdv:     true,
}

// Vocabulary derives the vocab panel entries for a segment, in priority
// order: the explicit vocabulary list, then content tokens, then a naive
// split of the translation text. Entries are deduplicated by surface and
// capped at max; the second return value is the overflow count.
func Vocabulary(seg *transcript.Segment, max int) ([]transcript.VocabEntry, int) {
	if seg == nil || max <= 0 {
		return nil, 0
	}

	entries := seg.Vocabulary
	if len(entries) == 0 {
		entries = vocabFromTokens(seg.Tokens)
	}
	if len(entries) == 0 {
		entries = vocabFromTranslation(seg.TranslationText)
	}

	if len(entries) <= max {
		return entries, 0
	}
	return entries[:max], len(entries) - max
}

func vocabFromTokens(tokens []transcript.Token) []transcript.VocabEntry {
	var entries []transcript.VocabEntry
	seen := make(map[string]bool)
	for _, tok := range tokens {
		if !vocabSourcePOS[tok.POS] || tok.Surface == "" || seen[tok.Surface] {
			continue
		}
		seen[tok.Surface] = true
		entries = append(entries, transcript.VocabEntry{
			Surface:     tok.Surface,
			Reading:     tok.Reading,
			Romaji:      tok.Romaji,
			POS:         tok.POS,
			Translation: tok.Translation,
		})
	}
	return entries
}

func vocabFromTranslation(text string) []transcript.VocabEntry {
	var entries []transcript.VocabEntry
	seen := make(map[string]bool)
	for _, word := range strings.Fields(text) {
		word = strings.Trim(word, ".,!?;:\"'()")
		if word == "" || seen[word] {
			continue
		}
		seen[word] = true
		entries = append(entries, transcript.VocabEntry{Surface: word})
	}
	return entries
}

const (
	vocabTopMargin = 16
	vocabCellGap   = 8
	vocabCellPad   = 6
)

// drawVocabPanel renders the vocabulary card grid across the top of the
// frame. Returns without drawing when the segment yields no entries.
func (r *Renderer) drawVocabPanel(_ context.Context, surface *Surface, seg *transcript.Segment) {
	entries, overflow := Vocabulary(seg, r.style.VocabMaxItems)
	if len(entries) == 0 {
		return
	}

	cols := r.style.VocabColumns
	if cols <= 0 {
		cols = 1
	}
	rows := (len(entries) + cols - 1) / cols

	lineH := r.style.VocabFontSize * r.style.LineHeight
	cellH := int(math.Round(3*lineH)) + 2*vocabCellPad
	panelX := outerMargin
	panelW := r.width - 2*outerMargin
	cellW := (panelW - (cols+1)*vocabCellGap) / cols
	panelH := rows*(cellH+vocabCellGap) + vocabCellGap
	if overflow > 0 {
		panelH += int(math.Round(lineH))
	}

	panel := image.Rect(panelX, vocabTopMargin, panelX+panelW, vocabTopMargin+panelH)
	surface.fillRect(panel, color.RGBA{A: uint8(math.Round(0.65 * 255))})

	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	muted := color.RGBA{R: 0xc8, G: 0xc8, B: 0xc8, A: 0xff}

	for i, entry := range entries {
		row := i / cols
		col := i % cols
		x := panelX + vocabCellGap + col*(cellW+vocabCellGap)
		y := panel.Min.Y + vocabCellGap + row*(cellH+vocabCellGap)

		cell := image.Rect(x, y, x+cellW, y+cellH)
		surface.fillRect(cell, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x1e})

		textX := float64(x + vocabCellPad)
		baseline := float64(y+vocabCellPad) + r.style.VocabFontSize
		r.drawText(surface, r.vocabFace, textX, baseline, white, entry.Surface)
		if reading := entry.Reading; reading != "" {
			r.drawText(surface, r.vocabFace, textX, baseline+lineH, muted, reading)
		}
		if entry.Translation != "" {
			r.drawText(surface, r.vocabFace, textX, baseline+2*lineH, muted, entry.Translation)
		}
	}

	if overflow > 0 {
		label := fmt.Sprintf("+%d more", overflow)
		w := r.vocabMeasure.Width(label)
		r.drawText(surface, r.vocabFace, float64(panel.Max.X-vocabCellGap)-w, float64(panel.Max.Y)-vocabCellGap, muted, label)
	}
}
