// Package capture runs the recording state machine: Idle, Recording,
// Finalizing, back to Idle. It drives the locator and compositor at a fixed
// frame cadence, writes every surface snapshot into the encode sink in
// strictly increasing clock order, and finalizes exactly once regardless of
// how the session ends. A directory lock keeps concurrent sessions from
// racing over one output location.
package capture
