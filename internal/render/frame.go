package render

import (
	"context"
	"image"
	"image/color"
	"math"

	"subreel/internal/layout"
	"subreel/internal/timeline"
	"subreel/internal/transcript"
)

// Frame is everything needed to composite one instant in time. The renderer
// mutates the surface and nothing else.
type Frame struct {
	Clock      float64
	Total      float64
	Segments   []transcript.Segment
	Location   timeline.Location
	Policy     timeline.Policy
	Background Background
}

const (
	outerMargin = 8
	panelPadX   = 12
	panelPadY   = 10
	chipPadX    = 4
	chipPadY    = 3
	chipGap     = 4
	blockGap    = 10
)

// RenderFrame composites the background, the subtitle scroll stack, and the
// vocabulary panel for one clock position.
func (r *Renderer) RenderFrame(ctx context.Context, surface *Surface, frame Frame) {
	bg := frame.Background
	if bg == nil {
		bg = Solid{}
	}
	bg.Draw(ctx, surface, frame.Clock, frame.Total)

	if frame.Location.Index < 0 || frame.Location.Segment == nil {
		return
	}

	if r.style.VocabEnabled {
		r.drawVocabPanel(ctx, surface, frame.Location.Segment)
	}
	r.drawSubtitleStack(surface, frame)
}

// segmentLayout is the measured geometry for one visible segment block.
type segmentLayout struct {
	seg          *transcript.Segment
	active       bool
	chipRows     [][]int
	plainLines   []string
	transLines   []string
	hasReading   bool
	height       float64
	primaryLineH float64
	transLineH   float64
	readingH     float64
}

func (r *Renderer) contentWidth() float64 {
	return float64(r.width - 2*outerMargin - 2*panelPadX)
}

func (r *Renderer) layoutSegment(seg *transcript.Segment, active bool) segmentLayout {
	sl := segmentLayout{
		seg:          seg,
		active:       active,
		primaryLineH: r.style.FontSize * r.style.LineHeight,
		transLineH:   r.style.TranslationFontSize * r.style.LineHeight,
	}
	contentW := r.contentWidth()

	if active && len(seg.Tokens) > 0 {
		sl.chipRows = r.wrapChips(seg.Tokens, contentW)
		if r.style.ShowReading {
			for _, tok := range seg.Tokens {
				if tok.Reading != "" && !tok.IsPunct() {
					sl.hasReading = true
					break
				}
			}
		}
		if sl.hasReading {
			sl.readingH = r.style.FontSize * 0.7 * r.style.LineHeight
		}
		sl.height += float64(len(sl.chipRows)) * (sl.primaryLineH + sl.readingH + 2*chipPadY)
	} else {
		sl.plainLines = layout.Wrap(seg.PrimaryText, contentW, r.primaryMeasure)
		sl.height += float64(len(sl.plainLines)) * sl.primaryLineH
	}

	if r.style.ShowTranslation {
		sl.transLines = layout.Wrap(seg.TranslationText, contentW, r.translationMeasure)
		sl.height += float64(len(sl.transLines)) * sl.transLineH
	}
	return sl
}

// wrapChips distributes token chips over rows so each row of chip boxes fits
// the content width. A chip wider than the whole row still gets a row to
// itself.
func (r *Renderer) wrapChips(tokens []transcript.Token, contentW float64) [][]int {
	var rows [][]int
	var row []int
	used := 0.0
	for i, tok := range tokens {
		w := r.chipWidth(tok)
		add := w
		if len(row) > 0 {
			add += chipGap
		}
		if len(row) > 0 && used+add > contentW {
			rows = append(rows, row)
			row = nil
			used = 0
			add = w
		}
		row = append(row, i)
		used += add
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}

func (r *Renderer) chipWidth(tok transcript.Token) float64 {
	return r.primaryMeasure.Width(tok.Surface) + 2*chipPadX
}

// anchorTop is the viewport line the active segment block hangs from. It is
// derived from style metrics alone, so the active text holds its position
// while neighboring segments wrap to different heights as the window scrolls.
func (r *Renderer) anchorTop() float64 {
	nominal := r.style.FontSize * r.style.LineHeight
	if r.style.ShowTranslation {
		nominal += r.style.TranslationFontSize * r.style.LineHeight
	}
	below := r.style.VisibleLines - 1
	if below < 1 {
		below = 1
	}
	return float64(r.height-r.style.BottomMargin) - panelPadY - float64(below)*nominal - float64(below-1)*blockGap
}

// stackGeometry measures the visible window and places each block: the active
// segment at the fixed anchor, look-back above it, look-ahead below.
func (r *Renderer) stackGeometry(frame Frame) ([]segmentLayout, []float64) {
	lo, hi := timeline.Window(frame.Location.Index, r.style.VisibleLines, len(frame.Segments))
	if lo >= hi {
		return nil, nil
	}

	layouts := make([]segmentLayout, 0, hi-lo)
	for i := lo; i < hi; i++ {
		layouts = append(layouts, r.layoutSegment(&frame.Segments[i], i == frame.Location.Index))
	}

	active := frame.Location.Index - lo
	tops := make([]float64, len(layouts))
	tops[active] = r.anchorTop()
	for i := active - 1; i >= 0; i-- {
		tops[i] = tops[i+1] - blockGap - layouts[i].height
	}
	for i := active + 1; i < len(layouts); i++ {
		tops[i] = tops[i-1] + layouts[i-1].height + blockGap
	}
	return layouts, tops
}

func (r *Renderer) drawSubtitleStack(surface *Surface, frame Frame) {
	layouts, tops := r.stackGeometry(frame)
	if len(layouts) == 0 {
		return
	}

	last := len(layouts) - 1
	panelTop := tops[0] - panelPadY
	panelBottom := tops[last] + layouts[last].height + panelPadY
	if panelTop < 0 {
		panelTop = 0
	}
	if panelBottom > float64(r.height) {
		panelBottom = float64(r.height)
	}

	panel := image.Rect(outerMargin, int(math.Round(panelTop)), r.width-outerMargin, int(math.Round(panelBottom)))
	surface.fillRect(panel, color.RGBA{A: uint8(math.Round(r.style.Opacity * 255))})

	for i, sl := range layouts {
		fade := 1.0
		if !sl.active {
			fade = 0.55
		}
		r.drawSegmentBlock(surface, frame, sl, tops[i], fade)
	}
}

func (r *Renderer) drawSegmentBlock(surface *Surface, frame Frame, sl segmentLayout, top, fade float64) {
	white := scaleAlpha(color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, fade)
	muted := scaleAlpha(color.RGBA{R: 0xc8, G: 0xc8, B: 0xc8, A: 0xff}, fade)
	centerX := float64(r.width) / 2

	y := top
	if len(sl.chipRows) > 0 {
		active := make(map[int]bool, len(frame.Location.ActiveTokens))
		for _, idx := range frame.Location.ActiveTokens {
			active[idx] = true
		}
		for _, row := range sl.chipRows {
			rowW := 0.0
			for ri, idx := range row {
				if ri > 0 {
					rowW += chipGap
				}
				rowW += r.chipWidth(sl.seg.Tokens[idx])
			}
			x := centerX - rowW/2
			chipTop := y + sl.readingH
			for _, idx := range row {
				tok := sl.seg.Tokens[idx]
				w := r.chipWidth(tok)
				chip := image.Rect(
					int(math.Round(x)),
					int(math.Round(chipTop)),
					int(math.Round(x+w)),
					int(math.Round(chipTop+sl.primaryLineH+2*chipPadY)),
				)
				fill := TokenChipColor(tok.POS, frame.Policy.ColorScheme, frame.Policy.Intensity, active[idx])
				surface.fillRect(chip, scaleAlpha(fill, fade))

				if sl.hasReading && tok.Reading != "" && !tok.IsPunct() {
					readingW := r.primaryMeasure.Width(tok.Reading) * 0.7
					r.drawText(surface, r.readingFace, x+(w-readingW)/2, y+sl.readingH-2, muted, tok.Reading)
				}
				r.drawText(surface, r.primaryFace, x+chipPadX, chipTop+chipPadY+r.style.FontSize*0.85, white, tok.Surface)
				x += w + chipGap
			}
			y += sl.primaryLineH + sl.readingH + 2*chipPadY
		}
	} else {
		for _, line := range sl.plainLines {
			w := r.primaryMeasure.Width(line)
			r.drawText(surface, r.primaryFace, centerX-w/2, y+r.style.FontSize, white, line)
			y += sl.primaryLineH
		}
	}

	for _, line := range sl.transLines {
		w := r.translationMeasure.Width(line)
		r.drawText(surface, r.translationFace, centerX-w/2, y+r.style.TranslationFontSize, muted, line)
		y += sl.transLineH
	}
}
