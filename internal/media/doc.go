// Package media loads background sources: still images decoded in process
// and video files frame-extracted through ffmpeg. All failures carry a
// format/decode/network/abort classification so the caller can surface a
// precise diagnostic and degrade to a solid background fill.
package media
