package capture

import (
	"context"
	"image"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"subreel/internal/config"
	"subreel/internal/encoder"
	"subreel/internal/logging"
	"subreel/internal/render"
	"subreel/internal/services"
	"subreel/internal/timeline"
	"subreel/internal/transcript"
)

// State is the capture lifecycle: Idle -> Recording -> Finalizing -> Idle.
type State int

const (
	StateIdle State = iota
	StateRecording
	StateFinalizing
)

func (s State) String() string {
	switch s {
	case StateRecording:
		return "recording"
	case StateFinalizing:
		return "finalizing"
	default:
		return "idle"
	}
}

// Params assembles everything a recording session needs up front. All I/O
// that can fail (transcript parsing, media probing) happens before the
// session exists.
type Params struct {
	Config     *config.Config
	Logger     *slog.Logger
	Renderer   *render.Renderer
	Transcript *transcript.Transcript
	Policy     timeline.Policy
	Background render.Background

	// AudioPath is empty for audio-less sessions. AudioDuration is the
	// probed natural duration and extends the timeline when it outlasts
	// the transcript.
	AudioPath     string
	AudioDuration float64

	OutputPath string
}

// Result summarizes a finished capture run.
type Result struct {
	ID         uuid.UUID
	OutputPath string
	Frames     int
	Duration   float64
}

// frameSink is the encoding boundary Run writes through. The production
// implementation is encoder.Sink.
type frameSink interface {
	WriteFrame(img *image.RGBA) error
	Frames() int
	Finalize() error
}

// Session drives the compositor at a fixed cadence and feeds frames into the
// encode sink. One session owns the surface at a time; preview drivers must
// check Recording before drawing.
type Session struct {
	id     uuid.UUID
	params Params
	logger *slog.Logger
	total  float64
	rate   int

	// newSink is replaced in tests to observe frames without ffmpeg.
	newSink func(ctx context.Context) (frameSink, error)

	mu      sync.Mutex
	state   State
	lock    *flock.Flock
	sink    frameSink
	surface *render.Surface
	clock   *timeline.FrameClock

	stopOnce   sync.Once
	stopResult Result
	stopErr    error
}

// NewSession validates preconditions and prepares an idle session. A missing
// or empty transcript refuses the session outright; no partial state is
// created.
func NewSession(params Params) (*Session, error) {
	if params.Transcript == nil || len(params.Transcript.Segments) == 0 {
		return nil, services.Wrap(services.ErrPrecondition, "capture", "new session", "no transcript loaded", nil)
	}
	if params.Renderer == nil {
		return nil, services.Wrap(services.ErrPrecondition, "capture", "new session", "no renderer", nil)
	}

	total := params.Transcript.TotalDuration()
	if params.AudioDuration > total {
		total = params.AudioDuration
	}
	if total <= 0 {
		return nil, services.Wrap(services.ErrPrecondition, "capture", "new session", "transcript has zero duration", nil)
	}

	rate := params.Config.Output.FrameRate
	if rate <= 0 {
		rate = 30
	}

	id := uuid.New()
	session := &Session{
		id:     id,
		params: params,
		logger: logging.WithComponent(params.Logger, "capture").With(logging.String(logging.FieldSessionID, id.String())),
		total:  total,
		rate:   rate,
		state:  StateIdle,
	}
	session.newSink = session.openEncoderSink
	return session, nil
}

func (s *Session) openEncoderSink(ctx context.Context) (frameSink, error) {
	width, height := s.params.Renderer.Size()
	return encoder.Start(ctx, encoder.Options{
		Binary:      s.params.Config.FFmpegBinary(),
		Width:       width,
		Height:      height,
		FrameRate:   s.rate,
		BitrateKbps: s.params.Config.Output.VideoBitrateKbps,
		Container:   s.params.Config.Output.Container,
		AudioPath:   s.params.AudioPath,
		OutputPath:  s.params.OutputPath,
	}, s.params.Logger)
}

func (s *Session) ID() uuid.UUID     { return s.id }
func (s *Session) Duration() float64 { return s.total }

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Recording reports whether a preview driver must stay suspended.
func (s *Session) Recording() bool {
	return s.State() == StateRecording
}

// Start acquires the output directory lock, opens the encode sink, and moves
// to Recording. Encoder unavailability aborts before anything is written.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return services.Wrap(services.ErrPrecondition, "capture", "start", "session already started", nil)
	}

	lock := flock.New(filepath.Join(filepath.Dir(s.params.OutputPath), ".subreel.lock"))
	acquired, err := lock.TryLock()
	if err != nil {
		return services.Wrap(services.ErrPrecondition, "capture", "start", "acquire output lock", err)
	}
	if !acquired {
		return services.Wrap(services.ErrPrecondition, "capture", "start", "another recording session owns this output directory", nil)
	}

	sink, err := s.newSink(ctx)
	if err != nil {
		lock.Unlock()
		return err
	}

	s.lock = lock
	s.sink = sink
	s.surface = s.params.Renderer.NewSurface()
	s.clock = timeline.NewFrameClock(float64(s.rate))
	s.state = StateRecording

	s.logger.Info("recording started", logging.Args(
		logging.Float64("total_duration", s.total),
		logging.Int("frame_rate", s.rate),
		logging.String(logging.FieldPath, s.params.OutputPath),
	)...)
	return nil
}

// Run drives frames in strictly increasing clock order until the timeline
// ends or the context is canceled. Cancellation finalizes gracefully: the
// partial file is still playable.
func (s *Session) Run(ctx context.Context) (Result, error) {
	if s.State() != StateRecording {
		return Result{}, services.Wrap(services.ErrPrecondition, "capture", "run", "session is not recording", nil)
	}

	for {
		if err := ctx.Err(); err != nil {
			s.logger.Warn("capture canceled, finalizing partial output", logging.Args(logging.Error(err))...)
			break
		}
		now := s.clock.Now()
		if now >= s.total {
			break
		}
		if err := s.renderTick(ctx, now); err != nil {
			result, stopErr := s.Stop()
			if stopErr != nil {
				s.logger.Error("finalize after frame failure", logging.Args(logging.Error(stopErr))...)
			}
			return result, err
		}
		s.clock.Advance()
	}

	return s.Stop()
}

func (s *Session) renderTick(ctx context.Context, now float64) error {
	segments := s.params.Transcript.Segments
	s.params.Renderer.RenderFrame(ctx, s.surface, render.Frame{
		Clock:      now,
		Total:      s.total,
		Segments:   segments,
		Location:   timeline.Locate(segments, s.params.Policy, now),
		Policy:     s.params.Policy,
		Background: s.params.Background,
	})
	return s.sink.WriteFrame(s.surface.RGBA)
}

// Stop finalizes the session. Idempotent: the first call flushes the sink and
// releases the lock; later calls return the same result. Termination via
// timeline end, cancellation, or a manual stop all pass through here exactly
// once.
func (s *Session) Stop() (Result, error) {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		if s.state != StateRecording {
			s.mu.Unlock()
			return
		}
		s.state = StateFinalizing
		s.mu.Unlock()

		err := s.sink.Finalize()

		s.mu.Lock()
		if s.lock != nil {
			if unlockErr := s.lock.Unlock(); unlockErr != nil && err == nil {
				err = services.Wrap(services.ErrExternalTool, "capture", "stop", "release output lock", unlockErr)
			}
			s.lock = nil
		}
		s.state = StateIdle
		s.mu.Unlock()

		s.stopResult = Result{
			ID:         s.id,
			OutputPath: s.params.OutputPath,
			Frames:     s.sink.Frames(),
			Duration:   float64(s.sink.Frames()) / float64(s.rate),
		}
		s.stopErr = err
		if err == nil {
			s.logger.Info("recording finalized", logging.Args(
				logging.Int(logging.FieldFrame, s.stopResult.Frames),
				logging.Float64("duration", s.stopResult.Duration),
			)...)
		}
	})
	return s.stopResult, s.stopErr
}
