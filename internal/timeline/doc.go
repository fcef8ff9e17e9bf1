// Package timeline maps a playback clock position to the active segment and
// token set.
//
// It owns the clock abstractions (wall clock, fixed-step frame clock, external
// position adapters) and the highlight policy variants that decide token
// activity windows. Locate is pure so preview and capture share one
// definition of "what is lit right now".
package timeline
