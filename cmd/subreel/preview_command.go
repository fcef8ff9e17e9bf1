package main

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"subreel/internal/playback"
	"subreel/internal/render"
	"subreel/internal/timeline"
	"subreel/internal/transcript"
)

func newPreviewCommand(ctx *commandContext) *cobra.Command {
	var step float64
	var modeFlag string
	var frameDir string

	cmd := &cobra.Command{
		Use:   "preview [transcript]",
		Short: "Step through a transcript and print highlight timing",
		Long: "Preview drives the playback session headlessly: it renders a frame at\n" +
			"fixed intervals and prints which segment and tokens are active at each\n" +
			"instant. Without a transcript argument the built-in demo is used.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			tr := transcript.Demo()
			if len(args) == 1 {
				tr, err = transcript.Load(args[0])
				if err != nil {
					return fmt.Errorf("load transcript: %w", err)
				}
			}

			policy, err := resolvePolicy(cfg, modeFlag)
			if err != nil {
				return err
			}
			if step <= 0 {
				step = 0.5
			}

			renderer, err := render.New(cfg)
			if err != nil {
				return fmt.Errorf("init renderer: %w", err)
			}

			now := 0.0
			clock := timeline.FuncClock(func() float64 { return now })
			session := playback.NewSession(renderer, clock)
			session.SetPolicy(policy)
			if err := session.Load(tr); err != nil {
				return err
			}

			if frameDir != "" {
				if err := os.MkdirAll(frameDir, 0o755); err != nil {
					return fmt.Errorf("create frame directory: %w", err)
				}
			}

			surface := renderer.NewSurface()
			out := cmd.OutOrStdout()
			total := tr.TotalDuration()
			frameIndex := 0
			for ; now < total; now += step {
				location, drawn := session.Tick(cmd.Context(), surface)
				if !drawn {
					continue
				}
				fmt.Fprintln(out, formatPreviewLine(now, tr, location))
				if frameDir != "" {
					if err := writePreviewFrame(frameDir, frameIndex, surface); err != nil {
						return err
					}
				}
				frameIndex++
			}
			fmt.Fprintf(out, "Previewed %.1fs across %d segments\n", total, len(tr.Segments))
			if frameDir != "" {
				fmt.Fprintf(out, "Wrote %d frames to %s\n", frameIndex, frameDir)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&step, "step", 0.5, "Sampling interval in seconds")
	cmd.Flags().StringVarP(&modeFlag, "mode", "m", "", "Highlight mode override (A or B)")
	cmd.Flags().StringVar(&frameDir, "out", "", "Directory to write sampled frames as PNG files")
	return cmd
}

func writePreviewFrame(dir string, index int, surface *render.Surface) error {
	path := filepath.Join(dir, fmt.Sprintf("frame_%05d.png", index))
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()
	if err := png.Encode(file, surface.RGBA); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

func formatPreviewLine(now float64, tr *transcript.Transcript, location timeline.Location) string {
	if location.Index < 0 {
		return fmt.Sprintf("t=%6.2f  (gap)", now)
	}
	seg := tr.Segments[location.Index]
	active := make([]string, 0, len(location.ActiveTokens))
	for _, idx := range location.ActiveTokens {
		active = append(active, seg.Tokens[idx].Surface)
	}
	return fmt.Sprintf("t=%6.2f  #%d  [%s]  %s", now, location.Index+1, strings.Join(active, " "), seg.PrimaryText)
}
