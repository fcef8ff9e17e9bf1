package config

// Output presets for the two supported canvas shapes.
const (
	PresetPortrait  = "portrait"
	PresetLandscape = "landscape"
)

// Token color schemes for the part-of-speech palette.
const (
	ColorSchemeOriginal = "original"
	ColorSchemeEnhanced = "enhanced"
)

// Highlight modes. Mode A is the exact-window baseline; Mode B applies the
// tunable offsets.
const (
	HighlightModeA = "A"
	HighlightModeB = "B"
)

const (
	defaultOutputDir        = "~/.local/share/subreel/out"
	defaultLogDir           = "~/.local/share/subreel/logs"
	defaultHistoryDB        = "~/.local/share/subreel/history.db"
	defaultFrameRate        = 30
	defaultVideoBitrateKbps = 4000
	defaultContainer        = "webm"
	defaultOutputFilename   = "subreel.webm"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"

	defaultSubtitleFontSize    = 18
	defaultTranslationFontSize = 16
	defaultLineHeight          = 1.3
	defaultSubtitleOpacity     = 0.8
	defaultBottomMargin        = 28
	defaultVisibleLines        = 3

	defaultVocabFontSize = 12
	defaultVocabMaxItems = 6
	defaultVocabColumns  = 3

	defaultHighlightOffset    = -0.3
	defaultHighlightTokenLead = -0.15
	defaultHighlightPunctSkip = 0.08
	defaultHighlightIntensity = 1.5
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
			HistoryDB: defaultHistoryDB,
		},
		Output: Output{
			Preset:           PresetPortrait,
			FrameRate:        defaultFrameRate,
			VideoBitrateKbps: defaultVideoBitrateKbps,
			Container:        defaultContainer,
			Filename:         defaultOutputFilename,
		},
		Subtitle: Subtitle{
			FontSize:            defaultSubtitleFontSize,
			TranslationFontSize: defaultTranslationFontSize,
			LineHeight:          defaultLineHeight,
			Opacity:             defaultSubtitleOpacity,
			BottomMargin:        defaultBottomMargin,
			VisibleLines:        defaultVisibleLines,
			ShowReading:         true,
			ShowTranslation:     true,
		},
		Vocab: Vocab{
			Enabled:  true,
			FontSize: defaultVocabFontSize,
			MaxItems: defaultVocabMaxItems,
			Columns:  defaultVocabColumns,
		},
		Highlight: Highlight{
			Mode:        HighlightModeA,
			Offset:      defaultHighlightOffset,
			TokenLead:   defaultHighlightTokenLead,
			PunctSkip:   defaultHighlightPunctSkip,
			Intensity:   defaultHighlightIntensity,
			ColorScheme: ColorSchemeEnhanced,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Tools: Tools{
			FFmpeg:  "ffmpeg",
			FFprobe: "ffprobe",
		},
	}
}
