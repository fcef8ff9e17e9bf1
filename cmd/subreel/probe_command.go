package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subreel/internal/media"
	"subreel/internal/media/ffprobe"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "probe <media>",
		Short: "Inspect a media file with ffprobe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			result, err := ffprobe.Inspect(cmd.Context(), cfg.FFprobeBinary(), args[0])
			if err != nil {
				return media.ClassifyToolFailure(cmd.Context(), fmt.Sprintf("probe %s", args[0]), err)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			fmt.Fprintln(out, renderStatusLine("Video", boolStatus(result.HasVideo()), yesNo(result.HasVideo()), colorize))
			fmt.Fprintln(out, renderStatusLine("Audio", boolStatus(result.HasAudio()), yesNo(result.HasAudio()), colorize))
			if result.HasVideo() {
				width, height := result.Dimensions()
				fmt.Fprintln(out, renderStatusLine("Dimensions", statusInfo, fmt.Sprintf("%dx%d", width, height), colorize))
			}
			fmt.Fprintln(out, renderStatusLine("Duration", statusInfo, fmt.Sprintf("%.3fs", result.DurationSeconds()), colorize))
			return nil
		},
	}
}

func boolStatus(ok bool) statusKind {
	if ok {
		return statusOK
	}
	return statusInfo
}
