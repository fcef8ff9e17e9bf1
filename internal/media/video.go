package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"os/exec"
	"strings"

	"subreel/internal/media/ffprobe"
	"subreel/internal/services"
)

// VideoSource extracts frames from a video file through ffmpeg so the
// compositor can use live video as a background.
type VideoSource struct {
	path     string
	binary   string
	width    int
	height   int
	duration float64
	hasAudio bool
}

// OpenVideo probes the file and prepares a frame extractor. ffmpegBinary and
// ffprobeBinary default to the bare command names when empty.
func OpenVideo(ctx context.Context, ffmpegBinary, ffprobeBinary, path string) (*VideoSource, error) {
	result, err := ffprobe.Inspect(ctx, ffprobeBinary, path)
	if err != nil {
		return nil, services.WrapMedia(services.MediaFailureNetwork, "media", "open video", "probe video file", err)
	}
	if !result.HasVideo() {
		return nil, services.WrapMedia(services.MediaFailureFormat, "media", "open video", "no video stream in container", nil)
	}
	width, height := result.Dimensions()
	if width <= 0 || height <= 0 {
		return nil, services.WrapMedia(services.MediaFailureFormat, "media", "open video", "video stream reports no dimensions", nil)
	}

	binary := strings.TrimSpace(ffmpegBinary)
	if binary == "" {
		binary = "ffmpeg"
	}
	return &VideoSource{
		path:     path,
		binary:   binary,
		width:    width,
		height:   height,
		duration: result.DurationSeconds(),
		hasAudio: result.HasAudio(),
	}, nil
}

func (v *VideoSource) Path() string      { return v.path }
func (v *VideoSource) Bounds() (int, int) { return v.width, v.height }
func (v *VideoSource) Duration() float64 { return v.duration }
func (v *VideoSource) HasAudio() bool    { return v.hasAudio }

// FrameAt decodes the frame nearest to t seconds as RGBA pixels. Returns a
// decode-classified media error when extraction fails; callers fall back to a
// solid fill rather than aborting the render.
func (v *VideoSource) FrameAt(ctx context.Context, t float64) (*image.RGBA, error) {
	if t < 0 {
		t = 0
	}
	frameBytes := v.width * v.height * 4

	cmd := exec.CommandContext(ctx, v.binary,
		"-hide_banner", "-loglevel", "error",
		"-ss", fmt.Sprintf("%.3f", t),
		"-i", v.path,
		"-frames:v", "1",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-",
	)
	var stdout bytes.Buffer
	stdout.Grow(frameBytes)
	cmd.Stdout = &stdout
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, ClassifyToolFailure(ctx, "extract frame", fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String())))
	}
	if stdout.Len() < frameBytes {
		return nil, services.WrapMedia(services.MediaFailureDecode, "media", "extract frame", "short frame read", io.ErrUnexpectedEOF)
	}

	img := image.NewRGBA(image.Rect(0, 0, v.width, v.height))
	copy(img.Pix, stdout.Bytes()[:frameBytes])
	return img, nil
}
