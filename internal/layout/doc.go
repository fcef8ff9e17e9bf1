// Package layout wraps subtitle text to a pixel width budget and computes the
// stacked line geometry the compositor sizes panels from.
//
// Measurement goes through the Measurer interface: a font-face measurer when
// a font file is configured, or an East Asian width-class approximation
// otherwise.
package layout
