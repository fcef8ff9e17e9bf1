package layout

import (
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/text/width"

	"subreel/internal/services"
)

// Measurer reports the rendered pixel width of a string. The wrapping
// algorithm only depends on this, so tests can substitute fixed-advance
// measurers.
type Measurer interface {
	Width(text string) float64
}

// FaceMeasurer measures with a real font face.
type FaceMeasurer struct {
	face font.Face
}

func NewFaceMeasurer(face font.Face) *FaceMeasurer {
	return &FaceMeasurer{face: face}
}

func (m *FaceMeasurer) Width(text string) float64 {
	return float64(font.MeasureString(m.face, text)) / 64
}

// RuneMeasurer approximates widths from East Asian width classes when no font
// file is configured. Wide and fullwidth runes take a full em; everything
// else takes just over half.
type RuneMeasurer struct {
	fontSize float64
}

func NewRuneMeasurer(fontSize float64) *RuneMeasurer {
	return &RuneMeasurer{fontSize: fontSize}
}

func (m *RuneMeasurer) Width(text string) float64 {
	var total float64
	for _, r := range text {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			total += m.fontSize
		default:
			total += m.fontSize * 0.55
		}
	}
	return total
}

// LoadFace parses an OpenType/TrueType font file and builds a face at the
// given point size.
func LoadFace(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrPrecondition, "layout", "load face", "read font file", err)
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, services.Wrap(services.ErrPrecondition, "layout", "load face", "parse font file", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, services.Wrap(services.ErrPrecondition, "layout", "load face", "build font face", err)
	}
	return face, nil
}
