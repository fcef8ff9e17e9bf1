// Package encoder owns the media-encoding sink: an ffmpeg process consuming
// raw RGBA frames at a fixed rate, optionally mixing an audio input, and
// flushing a playable webm or mp4 container on finalize. Availability is
// probed before a session starts so an unusable encoder never produces a
// partial file.
package encoder
