// Package ffprobe wraps the ffprobe binary for media inspection, exposing the
// stream and duration facts the capture pipeline needs.
package ffprobe
