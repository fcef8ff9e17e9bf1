// Package playback holds live-preview session state: the single clock
// authority, the atomically swappable transcript, and the active highlight
// policy. The host scheduler drives it through Tick.
package playback
