// Package services defines the shared error taxonomy consumed by the
// transcript, media, and capture layers.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that tag failures with a
//     recovery policy (reject upload, refuse session start, reset playback).
//   - Media failure classification (format/decode/network/abort) surfaced to
//     the user when a background or audio asset cannot be used.
//
// Use these helpers when wiring new pipeline logic so failure behaviour stays
// uniform: nothing in this module is fatal to the process, and every failure
// degrades to "no output produced" rather than corrupting loaded state.
package services
