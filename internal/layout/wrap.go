package layout

import "strings"

// Wrap breaks text into lines that fit maxWidth pixels. Text containing
// inter-word whitespace wraps word by word and never splits a word; text
// without it (CJK) wraps character by character. A line is never left empty:
// a single unit wider than the budget stays on its own line.
func Wrap(text string, maxWidth float64, m Measurer) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if strings.ContainsAny(text, " \t") {
		return wrapUnits(strings.Fields(text), " ", maxWidth, m)
	}
	units := make([]string, 0, len(text))
	for _, r := range text {
		units = append(units, string(r))
	}
	return wrapUnits(units, "", maxWidth, m)
}

func wrapUnits(units []string, sep string, maxWidth float64, m Measurer) []string {
	var lines []string
	var current string
	for _, unit := range units {
		if current == "" {
			current = unit
			continue
		}
		candidate := current + sep + unit
		if m.Width(candidate) > maxWidth {
			lines = append(lines, current)
			current = unit
			continue
		}
		current = candidate
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// Block is the computed geometry for one wrapped text block.
type Block struct {
	Lines      []string
	FontSize   float64
	LineHeight float64
	Padding    float64
}

// LayoutBlock wraps text and records the sizing inputs needed for panel
// backgrounds. Recompute whenever text, font size, or panel width changes.
func LayoutBlock(text string, maxWidth, fontSize, lineHeight, padding float64, m Measurer) Block {
	return Block{
		Lines:      Wrap(text, maxWidth, m),
		FontSize:   fontSize,
		LineHeight: lineHeight,
		Padding:    padding,
	}
}

// Height is the vertical extent of the block: line count times the line
// advance, plus padding on both sides. Empty blocks have zero height.
func (b Block) Height() float64 {
	if len(b.Lines) == 0 {
		return 0
	}
	return float64(len(b.Lines))*b.FontSize*b.LineHeight + 2*b.Padding
}

// LineAdvance is the vertical distance between consecutive baselines.
func (b Block) LineAdvance() float64 {
	return b.FontSize * b.LineHeight
}
