package capture

import (
	"context"
	"errors"
	"image"
	"path/filepath"
	"sync"
	"testing"

	"subreel/internal/config"
	"subreel/internal/render"
	"subreel/internal/services"
	"subreel/internal/timeline"
	"subreel/internal/transcript"
)

type memorySink struct {
	mu        sync.Mutex
	frames    int
	finalized int
	writeErr  error
}

func (m *memorySink) WriteFrame(*image.RGBA) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.frames++
	return nil
}

func (m *memorySink) Frames() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frames
}

func (m *memorySink) Finalize() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finalized++
	return nil
}

func sixSecondTranscript() *transcript.Transcript {
	return &transcript.Transcript{Segments: []transcript.Segment{
		{Start: 0, End: 3, PrimaryText: "前半"},
		{Start: 3, End: 6, PrimaryText: "後半"},
	}}
}

func testSession(t *testing.T, tr *transcript.Transcript) (*Session, *memorySink) {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.FontFile = ""
	renderer, err := render.New(&cfg)
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}

	session, err := NewSession(Params{
		Config:     &cfg,
		Renderer:   renderer,
		Transcript: tr,
		Policy:     timeline.BaselinePolicy(),
		OutputPath: filepath.Join(t.TempDir(), "out.webm"),
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	sink := &memorySink{}
	session.newSink = func(context.Context) (frameSink, error) { return sink, nil }
	return session, sink
}

func TestSessionRequiresTranscript(t *testing.T) {
	cfg := config.Default()
	renderer, err := render.New(&cfg)
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}

	for name, tr := range map[string]*transcript.Transcript{
		"nil":   nil,
		"empty": {},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NewSession(Params{Config: &cfg, Renderer: renderer, Transcript: tr})
			if !errors.Is(err, services.ErrPrecondition) {
				t.Fatalf("expected precondition error, got %v", err)
			}
		})
	}
}

func TestAudiolessSessionTerminatesAtTotalDuration(t *testing.T) {
	session, sink := testSession(t, sixSecondTranscript())

	if err := session.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	result, err := session.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// 6s at 30fps: frames 0..179 are below the cutoff, frame at t=6.0 is not.
	if result.Frames != 180 {
		t.Fatalf("expected 180 frames, got %d", result.Frames)
	}
	if result.Duration != 6 {
		t.Fatalf("expected 6s captured, got %v", result.Duration)
	}
	if sink.finalized != 1 {
		t.Fatalf("expected exactly one finalize, got %d", sink.finalized)
	}
	if session.State() != StateIdle {
		t.Fatalf("expected return to idle, got %v", session.State())
	}
}

func TestAudioDurationExtendsTimeline(t *testing.T) {
	cfg := config.Default()
	renderer, err := render.New(&cfg)
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	session, err := NewSession(Params{
		Config:        &cfg,
		Renderer:      renderer,
		Transcript:    sixSecondTranscript(),
		Policy:        timeline.BaselinePolicy(),
		AudioDuration: 8,
		OutputPath:    filepath.Join(t.TempDir(), "out.webm"),
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if session.Duration() != 8 {
		t.Fatalf("expected audio duration to win, got %v", session.Duration())
	}
}

func TestStopIsIdempotent(t *testing.T) {
	session, sink := testSession(t, sixSecondTranscript())
	if err := session.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := session.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	first, err1 := session.Stop()
	second, err2 := session.Stop()
	if err1 != nil || err2 != nil {
		t.Fatalf("Stop errors: %v %v", err1, err2)
	}
	if first != second {
		t.Fatalf("Stop must return the same result, got %+v then %+v", first, second)
	}
	if sink.finalized != 1 {
		t.Fatalf("finalize ran %d times", sink.finalized)
	}
}

func TestCancellationFinalizesPartialCapture(t *testing.T) {
	session, sink := testSession(t, sixSecondTranscript())
	if err := session.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result, err := session.Run(ctx)
	if err != nil {
		t.Fatalf("canceled run must still finalize cleanly, got %v", err)
	}
	if sink.finalized != 1 {
		t.Fatalf("expected finalize on cancellation, got %d", sink.finalized)
	}
	if result.Frames != 0 {
		t.Fatalf("expected no frames after immediate cancel, got %d", result.Frames)
	}
}

func TestRecordingSuspendsPreview(t *testing.T) {
	session, _ := testSession(t, sixSecondTranscript())
	if session.Recording() {
		t.Fatal("idle session must not report recording")
	}
	if err := session.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !session.Recording() {
		t.Fatal("started session must report recording")
	}
	if _, err := session.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if session.Recording() {
		t.Fatal("finished session must not report recording")
	}
}

func TestSecondStartRefused(t *testing.T) {
	session, _ := testSession(t, sixSecondTranscript())
	if err := session.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := session.Start(context.Background()); !errors.Is(err, services.ErrPrecondition) {
		t.Fatalf("expected precondition error on double start, got %v", err)
	}
	if _, err := session.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestOutputDirLockExcludesConcurrentSessions(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	renderer, err := render.New(&cfg)
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}

	newLocked := func(name string) *Session {
		session, err := NewSession(Params{
			Config:     &cfg,
			Renderer:   renderer,
			Transcript: sixSecondTranscript(),
			Policy:     timeline.BaselinePolicy(),
			OutputPath: filepath.Join(dir, name),
		})
		if err != nil {
			t.Fatalf("NewSession: %v", err)
		}
		session.newSink = func(context.Context) (frameSink, error) { return &memorySink{}, nil }
		return session
	}

	first := newLocked("a.webm")
	if err := first.Start(context.Background()); err != nil {
		t.Fatalf("first Start: %v", err)
	}
	defer first.Stop()

	second := newLocked("b.webm")
	if err := second.Start(context.Background()); !errors.Is(err, services.ErrPrecondition) {
		t.Fatalf("expected lock contention to refuse start, got %v", err)
	}
}
