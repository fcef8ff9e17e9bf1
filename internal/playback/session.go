package playback

import (
	"context"
	"sync"
	"sync/atomic"

	"subreel/internal/render"
	"subreel/internal/services"
	"subreel/internal/timeline"
	"subreel/internal/transcript"
)

// Session is the live-preview driver state: one clock authority, the loaded
// transcript, and the active highlight policy. It owns no scheduler; a host
// loop calls Tick at whatever cadence it likes.
type Session struct {
	renderer *render.Renderer

	// transcript is swapped atomically so a running driver never observes
	// a partially replaced segment list.
	transcript atomic.Pointer[transcript.Transcript]

	mu         sync.Mutex
	clock      timeline.Clock
	policy     timeline.Policy
	background render.Background
	suspended  func() bool
}

func NewSession(renderer *render.Renderer, clock timeline.Clock) *Session {
	return &Session{
		renderer: renderer,
		clock:    clock,
		policy:   timeline.BaselinePolicy(),
	}
}

// Load replaces the transcript wholesale. Rejects empty transcripts and keeps
// the previous one active, mirroring upload error recovery.
func (s *Session) Load(tr *transcript.Transcript) error {
	if tr == nil || len(tr.Segments) == 0 {
		return services.Wrap(services.ErrPrecondition, "playback", "load", "transcript has no segments", nil)
	}
	s.transcript.Store(tr)
	return nil
}

// Transcript returns the currently loaded transcript, or nil.
func (s *Session) Transcript() *transcript.Transcript {
	return s.transcript.Load()
}

// SetClock replaces the time authority. There is never more than one: the
// new clock takes over wholly.
func (s *Session) SetClock(clock timeline.Clock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = clock
}

func (s *Session) SetPolicy(policy timeline.Policy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.policy = policy
}

func (s *Session) Policy() timeline.Policy {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.policy
}

func (s *Session) SetBackground(bg render.Background) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = bg
}

// SuspendWhile registers a predicate that pauses preview rendering while
// true. The capture pipeline passes its Recording check here so two drivers
// never race over one surface.
func (s *Session) SuspendWhile(pred func() bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suspended = pred
}

// Tick renders one preview frame at the clock's current position. Returns
// the resolved location and whether a frame was drawn; suspended sessions
// and sessions with no transcript draw nothing.
func (s *Session) Tick(ctx context.Context, surface *render.Surface) (timeline.Location, bool) {
	s.mu.Lock()
	clock := s.clock
	policy := s.policy
	background := s.background
	suspended := s.suspended
	s.mu.Unlock()

	if suspended != nil && suspended() {
		return timeline.Location{Index: -1}, false
	}
	tr := s.transcript.Load()
	if tr == nil || clock == nil {
		return timeline.Location{Index: -1}, false
	}

	now := clock.Now()
	location := timeline.Locate(tr.Segments, policy, now)
	s.renderer.RenderFrame(ctx, surface, render.Frame{
		Clock:      now,
		Total:      tr.TotalDuration(),
		Segments:   tr.Segments,
		Location:   location,
		Policy:     policy,
		Background: background,
	})
	return location, true
}
