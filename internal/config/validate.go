package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateSubtitle(); err != nil {
		return err
	}
	if err := c.validateVocab(); err != nil {
		return err
	}
	if err := c.validateHighlight(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateOutput() error {
	switch c.Output.Preset {
	case PresetPortrait, PresetLandscape:
	default:
		return fmt.Errorf("output.preset must be %q or %q", PresetPortrait, PresetLandscape)
	}
	if c.Output.Width < 0 || c.Output.Height < 0 {
		return errors.New("output.width and output.height must not be negative")
	}
	if c.Output.FrameRate <= 0 || c.Output.FrameRate > 120 {
		return errors.New("output.frame_rate must be between 1 and 120")
	}
	if c.Output.VideoBitrateKbps <= 0 {
		return errors.New("output.video_bitrate_kbps must be positive")
	}
	switch c.Output.Container {
	case "webm", "mp4":
	default:
		return fmt.Errorf("output.container must be webm or mp4, got %q", c.Output.Container)
	}
	return nil
}

func (c *Config) validateSubtitle() error {
	if err := ensurePositiveMap(map[string]int{
		"subtitle.font_size":             c.Subtitle.FontSize,
		"subtitle.translation_font_size": c.Subtitle.TranslationFontSize,
		"subtitle.visible_lines":         c.Subtitle.VisibleLines,
	}); err != nil {
		return err
	}
	if c.Subtitle.LineHeight < 1.0 || c.Subtitle.LineHeight > 3.0 {
		return errors.New("subtitle.line_height must be between 1.0 and 3.0")
	}
	if c.Subtitle.Opacity < 0 || c.Subtitle.Opacity > 1 {
		return errors.New("subtitle.opacity must be between 0 and 1")
	}
	if c.Subtitle.BottomMargin < 0 {
		return errors.New("subtitle.bottom_margin must not be negative")
	}
	return nil
}

func (c *Config) validateVocab() error {
	if !c.Vocab.Enabled {
		return nil
	}
	return ensurePositiveMap(map[string]int{
		"vocab.font_size": c.Vocab.FontSize,
		"vocab.max_items": c.Vocab.MaxItems,
		"vocab.columns":   c.Vocab.Columns,
	})
}

func (c *Config) validateHighlight() error {
	switch c.Highlight.Mode {
	case HighlightModeA, HighlightModeB:
	default:
		return fmt.Errorf("highlight.mode must be %q or %q", HighlightModeA, HighlightModeB)
	}
	if c.Highlight.PunctSkip < 0 {
		return errors.New("highlight.punct_skip must not be negative")
	}
	if c.Highlight.Intensity < 0.5 || c.Highlight.Intensity > 3 {
		return errors.New("highlight.intensity must be between 0.5 and 3")
	}
	switch c.Highlight.ColorScheme {
	case ColorSchemeOriginal, ColorSchemeEnhanced:
	default:
		return fmt.Errorf("highlight.color_scheme must be original or enhanced, got %q", c.Highlight.ColorScheme)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
