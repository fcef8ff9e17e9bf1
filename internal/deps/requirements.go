package deps

import "subreel/internal/config"

// Requirements lists the external binaries subreel shells out to.
func Requirements(cfg *config.Config) []Requirement {
	ffmpeg := "ffmpeg"
	ffprobe := "ffprobe"
	if cfg != nil {
		ffmpeg = cfg.FFmpegBinary()
		ffprobe = cfg.FFprobeBinary()
	}
	return []Requirement{
		{
			Name:        "FFmpeg",
			Command:     ffmpeg,
			Description: "Encodes captured frames and mixes audio",
		},
		{
			Name:        "FFprobe",
			Command:     ffprobe,
			Description: "Probes audio and video inputs",
		},
	}
}
