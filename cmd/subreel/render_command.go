package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"subreel/internal/capture"
	"subreel/internal/config"
	"subreel/internal/history"
	"subreel/internal/logging"
	"subreel/internal/media"
	"subreel/internal/media/ffprobe"
	"subreel/internal/render"
	"subreel/internal/timeline"
	"subreel/internal/transcript"
)

type renderFlags struct {
	background string
	audio      string
	output     string
	mode       string
	preset     string
	offset     float64
	offsetSet  bool
}

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render <transcript>",
		Short: "Render a transcript into an encoded video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.offsetSet = cmd.Flags().Changed("offset")
			return runRender(cmd, ctx, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.background, "background", "b", "", "Background image or video file")
	cmd.Flags().StringVarP(&flags.audio, "audio", "a", "", "Audio track to mux into the output")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (defaults to output_dir/filename)")
	cmd.Flags().StringVarP(&flags.mode, "mode", "m", "", "Highlight mode override (A or B)")
	cmd.Flags().StringVar(&flags.preset, "preset", "", "Canvas preset override (portrait or landscape)")
	cmd.Flags().Float64Var(&flags.offset, "offset", 0, "Subtitle time offset override in seconds")
	return cmd
}

func runRender(cmd *cobra.Command, ctx *commandContext, transcriptPath string, flags renderFlags) error {
	signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	tr, err := transcript.Load(transcriptPath)
	if err != nil {
		return fmt.Errorf("load transcript: %w", err)
	}

	if err := applyPresetOverride(cfg, flags.preset); err != nil {
		return err
	}
	if flags.offsetSet {
		cfg.Highlight.Offset = flags.offset
	}

	policy, err := resolvePolicy(cfg, flags.mode)
	if err != nil {
		return err
	}

	renderer, err := render.New(cfg)
	if err != nil {
		return fmt.Errorf("init renderer: %w", err)
	}

	background, err := openBackground(signalCtx, cfg, logger, flags.background)
	if err != nil {
		return err
	}

	var audioDuration float64
	if flags.audio != "" {
		probe, probeErr := ffprobe.Inspect(signalCtx, cfg.FFprobeBinary(), flags.audio)
		if probeErr != nil {
			return fmt.Errorf("probe audio: %w", probeErr)
		}
		if !probe.HasAudio() {
			return fmt.Errorf("probe audio: %s carries no audio stream", flags.audio)
		}
		audioDuration = probe.DurationSeconds()
	}

	target := strings.TrimSpace(flags.output)
	if target == "" {
		target = filepath.Join(cfg.Paths.OutputDir, cfg.Output.Filename)
	}

	session, err := capture.NewSession(capture.Params{
		Config:        cfg,
		Logger:        logger,
		Renderer:      renderer,
		Transcript:    tr,
		Policy:        policy,
		Background:    background,
		AudioPath:     flags.audio,
		AudioDuration: audioDuration,
		OutputPath:    target,
	})
	if err != nil {
		return err
	}

	startedAt := time.Now().UTC()
	if err := session.Start(signalCtx); err != nil {
		return err
	}
	result, runErr := session.Run(signalCtx)

	recordHistory(cmd, cfg, historyInputs{
		session:        session,
		result:         result,
		runErr:         runErr,
		canceled:       signalCtx.Err() != nil,
		startedAt:      startedAt,
		transcriptPath: transcriptPath,
		backgroundPath: flags.background,
		audioPath:      flags.audio,
	})
	if runErr != nil {
		return runErr
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Wrote %s (%d frames, %.1fs)\n", result.OutputPath, result.Frames, result.Duration)
	return nil
}

func applyPresetOverride(cfg *config.Config, preset string) error {
	switch strings.ToLower(strings.TrimSpace(preset)) {
	case "":
		return nil
	case config.PresetPortrait, config.PresetLandscape:
		cfg.Output.Preset = strings.ToLower(strings.TrimSpace(preset))
		cfg.Output.Width = 0
		cfg.Output.Height = 0
		return nil
	default:
		return fmt.Errorf("unknown preset %q (expected portrait or landscape)", preset)
	}
}

func resolvePolicy(cfg *config.Config, modeFlag string) (timeline.Policy, error) {
	highlight := cfg.Highlight
	switch strings.ToUpper(strings.TrimSpace(modeFlag)) {
	case "":
	case config.HighlightModeA:
		highlight.Mode = config.HighlightModeA
	case config.HighlightModeB:
		highlight.Mode = config.HighlightModeB
	default:
		return timeline.Policy{}, fmt.Errorf("unknown highlight mode %q (expected A or B)", modeFlag)
	}
	return timeline.PolicyFromConfig(highlight), nil
}

// openBackground decides image vs video by attempting an image decode first.
// Anything the image decoders reject is handed to ffmpeg.
func openBackground(ctx context.Context, cfg *config.Config, logger *slog.Logger, path string) (render.Background, error) {
	if strings.TrimSpace(path) == "" {
		return render.Solid{}, nil
	}
	img, imgErr := media.LoadImage(path)
	if imgErr == nil {
		return render.NewKenBurns(img), nil
	}
	source, vidErr := media.OpenVideo(ctx, cfg.FFmpegBinary(), cfg.FFprobeBinary(), path)
	if vidErr != nil {
		return nil, fmt.Errorf("open background %s: not an image (%v) and not a video: %w", path, imgErr, vidErr)
	}
	return render.NewVideoBackground(source, logging.WithComponent(logger, "render")), nil
}

type historyInputs struct {
	session        *capture.Session
	result         capture.Result
	runErr         error
	canceled       bool
	startedAt      time.Time
	transcriptPath string
	backgroundPath string
	audioPath      string
}

// recordHistory is best-effort: a broken history database never fails the
// render that already produced output.
func recordHistory(cmd *cobra.Command, cfg *config.Config, in historyInputs) {
	store, err := history.Open(cfg)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warn: open history: %v\n", err)
		return
	}
	defer store.Close()

	status := history.StatusCompleted
	message := ""
	switch {
	case in.canceled:
		status = history.StatusCanceled
	case in.runErr != nil:
		status = history.StatusFailed
		message = in.runErr.Error()
	}

	_, err = store.Add(context.Background(), history.Record{
		SessionID:      in.session.ID().String(),
		StartedAt:      in.startedAt,
		TranscriptPath: in.transcriptPath,
		BackgroundPath: in.backgroundPath,
		AudioPath:      in.audioPath,
		OutputPath:     in.result.OutputPath,
		Frames:         in.result.Frames,
		Duration:       in.result.Duration,
		Status:         status,
		ErrorMessage:   message,
	})
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warn: record history: %v\n", err)
	}
}
