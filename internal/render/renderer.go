package render

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"subreel/internal/config"
	"subreel/internal/layout"
)

// Style is the panel configuration a renderer is built with. Values come from
// validated config; the renderer itself never reads config.
type Style struct {
	FontSize            float64
	TranslationFontSize float64
	LineHeight          float64
	Opacity             float64
	BottomMargin        int
	VisibleLines        int
	ShowReading         bool
	ShowTranslation     bool

	VocabEnabled  bool
	VocabFontSize float64
	VocabMaxItems int
	VocabColumns  int
}

// Renderer composites subtitle frames onto a Surface. It is stateless across
// frames: identical inputs produce bit-identical pixels, which lets preview
// and capture share one renderer without coordination.
type Renderer struct {
	width  int
	height int
	style  Style

	primaryFace     font.Face
	readingFace     font.Face
	translationFace font.Face
	vocabFace       font.Face

	primaryMeasure     layout.Measurer
	translationMeasure layout.Measurer
	vocabMeasure       layout.Measurer
}

// New builds a renderer for the configured surface size. When a font file is
// configured, text is measured and drawn with real faces; otherwise a
// fixed-advance fallback keeps layout deterministic.
func New(cfg *config.Config) (*Renderer, error) {
	width, height := cfg.SurfaceSize()
	style := Style{
		FontSize:            float64(cfg.Subtitle.FontSize),
		TranslationFontSize: float64(cfg.Subtitle.TranslationFontSize),
		LineHeight:          cfg.Subtitle.LineHeight,
		Opacity:             cfg.Subtitle.Opacity,
		BottomMargin:        cfg.Subtitle.BottomMargin,
		VisibleLines:        cfg.Subtitle.VisibleLines,
		ShowReading:         cfg.Subtitle.ShowReading,
		ShowTranslation:     cfg.Subtitle.ShowTranslation,
		VocabEnabled:        cfg.Vocab.Enabled,
		VocabFontSize:       float64(cfg.Vocab.FontSize),
		VocabMaxItems:       cfg.Vocab.MaxItems,
		VocabColumns:        cfg.Vocab.Columns,
	}

	r := &Renderer{width: width, height: height, style: style}

	if cfg.Paths.FontFile != "" {
		readingSize := style.FontSize * 0.7
		sizes := []struct {
			face *font.Face
			size float64
		}{
			{&r.primaryFace, style.FontSize},
			{&r.readingFace, readingSize},
			{&r.translationFace, style.TranslationFontSize},
			{&r.vocabFace, style.VocabFontSize},
		}
		for _, s := range sizes {
			face, err := layout.LoadFace(cfg.Paths.FontFile, s.size)
			if err != nil {
				return nil, err
			}
			*s.face = face
		}
		r.primaryMeasure = layout.NewFaceMeasurer(r.primaryFace)
		r.translationMeasure = layout.NewFaceMeasurer(r.translationFace)
		r.vocabMeasure = layout.NewFaceMeasurer(r.vocabFace)
	} else {
		r.primaryFace = basicfont.Face7x13
		r.readingFace = basicfont.Face7x13
		r.translationFace = basicfont.Face7x13
		r.vocabFace = basicfont.Face7x13
		r.primaryMeasure = layout.NewRuneMeasurer(style.FontSize)
		r.translationMeasure = layout.NewRuneMeasurer(style.TranslationFontSize)
		r.vocabMeasure = layout.NewRuneMeasurer(style.VocabFontSize)
	}

	return r, nil
}

func (r *Renderer) Size() (int, int) { return r.width, r.height }

// NewSurface allocates a surface matching the renderer's dimensions.
func (r *Renderer) NewSurface() *Surface {
	return NewSurface(r.width, r.height)
}

// drawText renders a string with its baseline at (x, y) and returns the
// advance width in pixels.
func (r *Renderer) drawText(surface *Surface, face font.Face, x, y float64, c color.RGBA, text string) float64 {
	d := font.Drawer{
		Dst:  surface.RGBA,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)},
	}
	advance := d.MeasureString(text)
	d.DrawString(text)
	return float64(advance) / 64
}

func scaleAlpha(c color.RGBA, factor float64) color.RGBA {
	if factor >= 1 {
		return c
	}
	if factor < 0 {
		factor = 0
	}
	c.A = uint8(float64(c.A) * factor)
	return c
}
