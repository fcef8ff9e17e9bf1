package render

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// Surface is the mutable pixel target shared by preview and capture. Exactly
// one driver owns it at a time; the capture state machine enforces that.
type Surface struct {
	RGBA *image.RGBA
}

func NewSurface(width, height int) *Surface {
	return &Surface{RGBA: image.NewRGBA(image.Rect(0, 0, width, height))}
}

func (s *Surface) Size() (int, int) {
	b := s.RGBA.Bounds()
	return b.Dx(), b.Dy()
}

// Fill paints the whole surface with an opaque color.
func (s *Surface) Fill(c color.RGBA) {
	draw.Draw(s.RGBA, s.RGBA.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// fillRect composites a translucent rectangle over the surface.
func (s *Surface) fillRect(rect image.Rectangle, c color.RGBA) {
	draw.Draw(s.RGBA, rect.Intersect(s.RGBA.Bounds()), image.NewUniform(c), image.Point{}, draw.Over)
}

// drawScaled draws src resampled into dst's target rectangle.
func (s *Surface) drawScaled(src image.Image, target image.Rectangle) {
	xdraw.ApproxBiLinear.Scale(s.RGBA, target, src, src.Bounds(), xdraw.Over, nil)
}
