package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeOutput()
	c.normalizeHighlight()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.HistoryDB) == "" {
		c.Paths.HistoryDB = defaultHistoryDB
	}
	if c.Paths.HistoryDB, err = expandPath(c.Paths.HistoryDB); err != nil {
		return fmt.Errorf("paths.history_db: %w", err)
	}
	if strings.TrimSpace(c.Paths.FontFile) != "" {
		if c.Paths.FontFile, err = expandPath(c.Paths.FontFile); err != nil {
			return fmt.Errorf("paths.font_file: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeOutput() {
	c.Output.Preset = strings.ToLower(strings.TrimSpace(c.Output.Preset))
	if c.Output.Preset == "" {
		c.Output.Preset = PresetPortrait
	}
	c.Output.Container = strings.ToLower(strings.TrimSpace(c.Output.Container))
	if c.Output.Container == "" {
		c.Output.Container = defaultContainer
	}
	if strings.TrimSpace(c.Output.Filename) == "" {
		c.Output.Filename = defaultOutputFilename
	}
	if c.Output.FrameRate == 0 {
		c.Output.FrameRate = defaultFrameRate
	}
	if c.Output.VideoBitrateKbps == 0 {
		c.Output.VideoBitrateKbps = defaultVideoBitrateKbps
	}
}

func (c *Config) normalizeHighlight() {
	c.Highlight.Mode = strings.ToUpper(strings.TrimSpace(c.Highlight.Mode))
	if c.Highlight.Mode == "" {
		c.Highlight.Mode = HighlightModeA
	}
	c.Highlight.ColorScheme = strings.ToLower(strings.TrimSpace(c.Highlight.ColorScheme))
	if c.Highlight.ColorScheme == "" {
		c.Highlight.ColorScheme = ColorSchemeEnhanced
	}
	if c.Highlight.Intensity == 0 {
		c.Highlight.Intensity = defaultHighlightIntensity
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
