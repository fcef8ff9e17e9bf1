package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and asset configuration.
type Paths struct {
	OutputDir string `toml:"output_dir"`
	LogDir    string `toml:"log_dir"`
	HistoryDB string `toml:"history_db"`
	FontFile  string `toml:"font_file"`
}

// Output contains the capture surface and encode sink configuration.
type Output struct {
	Preset           string `toml:"preset"`
	Width            int    `toml:"width"`
	Height           int    `toml:"height"`
	FrameRate        int    `toml:"frame_rate"`
	VideoBitrateKbps int    `toml:"video_bitrate_kbps"`
	Container        string `toml:"container"`
	Filename         string `toml:"filename"`
}

// Subtitle contains the subtitle panel layout settings.
type Subtitle struct {
	FontSize            int     `toml:"font_size"`
	TranslationFontSize int     `toml:"translation_font_size"`
	LineHeight          float64 `toml:"line_height"`
	Opacity             float64 `toml:"opacity"`
	BottomMargin        int     `toml:"bottom_margin"`
	VisibleLines        int     `toml:"visible_lines"`
	ShowReading         bool    `toml:"show_reading"`
	ShowTranslation     bool    `toml:"show_translation"`
}

// Vocab contains the vocabulary panel settings.
type Vocab struct {
	Enabled  bool `toml:"enabled"`
	FontSize int  `toml:"font_size"`
	MaxItems int  `toml:"max_items"`
	Columns  int  `toml:"columns"`
}

// Highlight contains the token highlight policy settings.
//
// Offset shifts the subtitle cue clock in both modes; negative values make
// subtitles and highlights appear earlier. Mode "A" otherwise highlights
// exactly the token's own window. Mode "B" adds the remaining tunables.
type Highlight struct {
	Mode        string  `toml:"mode"`
	Offset      float64 `toml:"offset"`
	TokenLead   float64 `toml:"token_lead"`
	PunctSkip   float64 `toml:"punct_skip"`
	Intensity   float64 `toml:"intensity"`
	ColorScheme string  `toml:"color_scheme"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Tools contains external binary names or paths.
type Tools struct {
	FFmpeg  string `toml:"ffmpeg"`
	FFprobe string `toml:"ffprobe"`
}

// Config encapsulates all configuration values for subreel.
//
// Sections by subsystem:
//   - Paths: output/log directories, history database, optional font file
//   - Output: surface dimensions, frame rate, encode sink settings
//   - Subtitle: subtitle panel typography and placement
//   - Vocab: vocabulary card grid
//   - Highlight: token highlight policy (mode A/B and its tunables)
//   - Logging: log format and level
//   - Tools: ffmpeg/ffprobe binaries
type Config struct {
	Paths     Paths     `toml:"paths"`
	Output    Output    `toml:"output"`
	Subtitle  Subtitle  `toml:"subtitle"`
	Vocab     Vocab     `toml:"vocab"`
	Highlight Highlight `toml:"highlight"`
	Logging   Logging   `toml:"logging"`
	Tools     Tools     `toml:"tools"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/subreel/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("subreel.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories renders and logs write into.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if dir := filepath.Dir(c.Paths.HistoryDB); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// FFmpegBinary returns the ffmpeg executable used for the encode sink and
// video-background frame extraction.
func (c *Config) FFmpegBinary() string {
	if strings.TrimSpace(c.Tools.FFmpeg) == "" {
		return "ffmpeg"
	}
	return c.Tools.FFmpeg
}

// FFprobeBinary returns the ffprobe executable used for media inspection.
func (c *Config) FFprobeBinary() string {
	if strings.TrimSpace(c.Tools.FFprobe) == "" {
		return "ffprobe"
	}
	return c.Tools.FFprobe
}

// SurfaceSize resolves the output pixel dimensions from the preset and any
// explicit width/height overrides.
func (c *Config) SurfaceSize() (int, int) {
	width, height := presetSize(c.Output.Preset)
	if c.Output.Width > 0 {
		width = c.Output.Width
	}
	if c.Output.Height > 0 {
		height = c.Output.Height
	}
	return width, height
}

func presetSize(preset string) (int, int) {
	switch strings.ToLower(strings.TrimSpace(preset)) {
	case PresetLandscape:
		return 1280, 720
	default:
		return 480, 853
	}
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file already exists at %s", expanded)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
