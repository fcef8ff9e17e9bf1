package encoder

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"subreel/internal/logging"
	"subreel/internal/services"
)

// Support lists the encoders the local ffmpeg build offers.
type Support struct {
	VP9  bool
	VP8  bool
	H264 bool
}

// Probe asks ffmpeg for its encoder list. Fails before any session state is
// created when the binary is missing.
func Probe(ctx context.Context, binary string) (Support, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	cmd := exec.CommandContext(ctx, binary, "-hide_banner", "-encoders")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return Support{}, services.Wrap(services.ErrEncodingUnavailable, "encoder", "probe", "ffmpeg not usable", err)
	}
	return parseEncoders(string(output)), nil
}

func parseEncoders(output string) Support {
	var support Support
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || !strings.Contains(fields[0], "V") {
			continue
		}
		switch fields[1] {
		case "libvpx-vp9":
			support.VP9 = true
		case "libvpx":
			support.VP8 = true
		case "libx264":
			support.H264 = true
		}
	}
	return support
}

// chooseCodecs resolves the video and audio encoder for a container, probing
// the preference order vp9 then vp8 for webm.
func chooseCodecs(container string, support Support) (string, string, error) {
	switch container {
	case "webm":
		if support.VP9 {
			return "libvpx-vp9", "libopus", nil
		}
		if support.VP8 {
			return "libvpx", "libopus", nil
		}
		return "", "", services.Wrap(services.ErrEncodingUnavailable, "encoder", "choose codec", "no webm encoder available", nil)
	case "mp4":
		if support.H264 {
			return "libx264", "aac", nil
		}
		return "", "", services.Wrap(services.ErrEncodingUnavailable, "encoder", "choose codec", "no mp4 encoder available", nil)
	}
	return "", "", services.Wrap(services.ErrEncodingUnavailable, "encoder", "choose codec", fmt.Sprintf("unsupported container %q", container), nil)
}

// Options configures one encode session.
type Options struct {
	Binary      string
	Width       int
	Height      int
	FrameRate   int
	BitrateKbps int
	Container   string
	AudioPath   string
	OutputPath  string
}

func buildArgs(opts Options, videoCodec, audioCodec string) []string {
	args := []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"-r", strconv.Itoa(opts.FrameRate),
		"-i", "-",
	}
	if opts.AudioPath != "" {
		args = append(args, "-i", opts.AudioPath)
	}
	args = append(args,
		"-c:v", videoCodec,
		"-b:v", fmt.Sprintf("%dk", opts.BitrateKbps),
		"-pix_fmt", "yuv420p",
	)
	// No -shortest: the session drives frames for the full timeline and may
	// outlast the audio track, so output length follows the frame stream.
	if opts.AudioPath != "" {
		args = append(args, "-c:a", audioCodec)
	} else {
		args = append(args, "-an")
	}
	return append(args, opts.OutputPath)
}

// Sink feeds raw RGBA frames into an ffmpeg process that encodes them, mixing
// in the optional audio input. Frames must arrive in clock order; the sink
// never reorders.
type Sink struct {
	cmd        *exec.Cmd
	stdin      io.WriteCloser
	stderr     bytes.Buffer
	frameBytes int
	frames     int
	logger     *slog.Logger

	finalizeOnce sync.Once
	finalizeErr  error
}

// Start probes encoder availability, spawns ffmpeg, and returns a sink ready
// for frames. Nothing is written to disk when availability fails.
func Start(ctx context.Context, opts Options, logger *slog.Logger) (*Sink, error) {
	support, err := Probe(ctx, opts.Binary)
	if err != nil {
		return nil, err
	}
	videoCodec, audioCodec, err := chooseCodecs(opts.Container, support)
	if err != nil {
		return nil, err
	}

	binary := strings.TrimSpace(opts.Binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	cmd := exec.CommandContext(ctx, binary, buildArgs(opts, videoCodec, audioCodec)...)

	sink := &Sink{
		cmd:        cmd,
		frameBytes: opts.Width * opts.Height * 4,
		logger:     logging.WithComponent(logger, "encoder"),
	}
	cmd.Stderr = &sink.stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "encoder", "start", "open ffmpeg stdin", err)
	}
	sink.stdin = stdin

	if err := cmd.Start(); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "encoder", "start", "spawn ffmpeg", err)
	}

	sink.logger.Info("encode sink opened", logging.Args(
		logging.String("video_codec", videoCodec),
		logging.String("container", opts.Container),
		logging.Int("frame_rate", opts.FrameRate),
		logging.String(logging.FieldPath, opts.OutputPath),
	)...)
	return sink, nil
}

// WriteFrame pushes one surface snapshot into the encoder.
func (s *Sink) WriteFrame(img *image.RGBA) error {
	if len(img.Pix) != s.frameBytes {
		return services.Wrap(services.ErrExternalTool, "encoder", "write frame",
			fmt.Sprintf("frame size mismatch: got %d bytes, want %d", len(img.Pix), s.frameBytes), nil)
	}
	if _, err := s.stdin.Write(img.Pix); err != nil {
		return services.Wrap(services.ErrExternalTool, "encoder", "write frame", "pipe to ffmpeg", err)
	}
	s.frames++
	return nil
}

// Frames returns the number of frames accepted so far.
func (s *Sink) Frames() int { return s.frames }

// Finalize closes the frame stream and waits for ffmpeg to flush the
// container. Safe to call more than once; every call reports the first
// outcome. A finalized file is playable even when the session stopped early.
func (s *Sink) Finalize() error {
	s.finalizeOnce.Do(func() {
		if err := s.stdin.Close(); err != nil {
			s.finalizeErr = services.Wrap(services.ErrExternalTool, "encoder", "finalize", "close ffmpeg stdin", err)
			return
		}
		if err := s.cmd.Wait(); err != nil {
			detail := strings.TrimSpace(s.stderr.String())
			s.finalizeErr = services.Wrap(services.ErrExternalTool, "encoder", "finalize", detail, err)
			return
		}
		s.logger.Info("encode sink finalized", logging.Args(logging.Int(logging.FieldFrame, s.frames))...)
	})
	return s.finalizeErr
}
