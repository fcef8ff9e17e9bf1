package render

import (
	"context"
	"image"
	"image/color"
	"log/slog"
	"math"

	"subreel/internal/logging"
	"subreel/internal/media"
)

// fallbackFill is the solid background used when no source is attached or a
// video frame is not ready.
var fallbackFill = color.RGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xff}

// Ken Burns motion envelope over the session: zoom runs 1.05 to 1.20,
// horizontal pan sweeps -7.5% to +7.5% of width, and the vertical pan follows
// one sine cycle at 5% of height.
const (
	kenBurnsZoomStart = 1.05
	kenBurnsZoomRange = 0.15
	kenBurnsPanXSpan  = 0.15
	kenBurnsPanYSpan  = 0.05
)

// Background paints the bottom layer of a frame for a given clock position.
// Implementations degrade to a solid fill instead of failing; a frame is
// always produced.
type Background interface {
	Draw(ctx context.Context, surface *Surface, clock, total float64)
}

// Solid fills with a single color.
type Solid struct {
	Color color.RGBA
}

func (s Solid) Draw(_ context.Context, surface *Surface, _, _ float64) {
	c := s.Color
	if c.A == 0 {
		c = fallbackFill
	}
	surface.Fill(c)
}

// KenBurns animates a still image with a continuous pan and zoom so
// successive frames of a single photo read as motion.
type KenBurns struct {
	img image.Image
}

func NewKenBurns(img image.Image) *KenBurns {
	return &KenBurns{img: img}
}

func (k *KenBurns) Draw(_ context.Context, surface *Surface, clock, total float64) {
	surface.Fill(fallbackFill)
	if k.img == nil {
		return
	}

	width, height := surface.Size()
	bounds := k.img.Bounds()
	imgW, imgH := float64(bounds.Dx()), float64(bounds.Dy())
	if imgW <= 0 || imgH <= 0 {
		return
	}

	progress := 0.0
	if total > 0 {
		progress = clock / total
	}
	progress = math.Min(1, math.Max(0, progress))

	zoom := kenBurnsZoomStart + kenBurnsZoomRange*progress
	scale := math.Max(float64(width)/imgW, float64(height)/imgH) * zoom
	dw := imgW * scale
	dh := imgH * scale

	dx := (float64(width)-dw)/2 + (progress-0.5)*kenBurnsPanXSpan*float64(width)
	dy := (float64(height)-dh)/2 + math.Sin(progress*2*math.Pi)*kenBurnsPanYSpan*float64(height)

	target := image.Rect(
		int(math.Round(dx)),
		int(math.Round(dy)),
		int(math.Round(dx+dw)),
		int(math.Round(dy+dh)),
	)
	surface.drawScaled(k.img, target)
}

// VideoBackground draws the current frame of a video source, cover-fitted to
// the surface. Extraction failures fall back to the solid fill and are logged
// once per failure, never propagated.
type VideoBackground struct {
	source *media.VideoSource
	logger *slog.Logger
}

func NewVideoBackground(source *media.VideoSource, logger *slog.Logger) *VideoBackground {
	return &VideoBackground{source: source, logger: logging.WithComponent(logger, "render")}
}

func (v *VideoBackground) Draw(ctx context.Context, surface *Surface, clock, _ float64) {
	frame, err := v.source.FrameAt(ctx, clock)
	if err != nil {
		v.logger.Warn("video frame unavailable, using solid fill", logging.Args(
			logging.Float64(logging.FieldClock, clock),
			logging.Error(err),
		)...)
		surface.Fill(fallbackFill)
		return
	}

	width, height := surface.Size()
	bounds := frame.Bounds()
	imgW, imgH := float64(bounds.Dx()), float64(bounds.Dy())
	scale := math.Max(float64(width)/imgW, float64(height)/imgH)
	dw := imgW * scale
	dh := imgH * scale
	dx := (float64(width) - dw) / 2
	dy := (float64(height) - dh) / 2

	surface.Fill(fallbackFill)
	surface.drawScaled(frame, image.Rect(
		int(math.Round(dx)),
		int(math.Round(dy)),
		int(math.Round(dx+dw)),
		int(math.Round(dy+dh)),
	))
}
