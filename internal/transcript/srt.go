package transcript

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseSRT converts raw SRT text into a transcript. Blocks are separated by
// blank lines: an index line, a "start --> end" timecode line, then one or
// more text lines. Text lines containing Japanese script become the primary
// text; everything else becomes the translation. Malformed timecodes parse to
// zero instead of failing, per the format's accepted-input policy.
func ParseSRT(data []byte) (*Transcript, error) {
	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	content = strings.TrimPrefix(content, "\uFEFF")

	var segments []Segment
	for _, block := range strings.Split(content, "\n\n") {
		lines := splitBlockLines(block)
		if len(lines) < 2 {
			continue
		}

		timecodeIdx := -1
		for i, line := range lines {
			if strings.Contains(line, "-->") {
				timecodeIdx = i
				break
			}
		}
		if timecodeIdx < 0 || timecodeIdx == len(lines)-1 {
			continue
		}

		start, end := parseTimecodeLine(lines[timecodeIdx])

		var primary, translation []string
		for _, line := range lines[timecodeIdx+1:] {
			if containsJapanese(line) {
				primary = append(primary, line)
			} else {
				translation = append(translation, line)
			}
		}

		segments = append(segments, Segment{
			Start:           start,
			End:             end,
			PrimaryText:     strings.Join(primary, " "),
			TranslationText: strings.Join(translation, " "),
		})
	}

	return &Transcript{Segments: segments}, nil
}

func splitBlockLines(block string) []string {
	var lines []string
	for _, line := range strings.Split(block, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

func parseTimecodeLine(line string) (float64, float64) {
	parts := strings.Split(line, "-->")
	if len(parts) != 2 {
		return 0, 0
	}
	return parseTimecode(parts[0]), parseTimecode(parts[1])
}

// parseTimecode converts HH:MM:SS,mmm (comma or dot millisecond separator) to
// seconds. Any malformed field yields zero.
func parseTimecode(value string) float64 {
	value = strings.TrimSpace(value)
	value = strings.ReplaceAll(value, ".", ",")

	clockPart := value
	var millis int
	if idx := strings.IndexByte(value, ','); idx >= 0 {
		clockPart = value[:idx]
		parsed, err := strconv.Atoi(strings.TrimSpace(value[idx+1:]))
		if err != nil {
			return 0
		}
		millis = parsed
	}

	hms := strings.Split(clockPart, ":")
	if len(hms) != 3 {
		return 0
	}
	hours, errH := strconv.Atoi(strings.TrimSpace(hms[0]))
	minutes, errM := strconv.Atoi(strings.TrimSpace(hms[1]))
	seconds, errS := strconv.Atoi(strings.TrimSpace(hms[2]))
	if errH != nil || errM != nil || errS != nil {
		return 0
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000
}

// containsJapanese reports whether the line carries Hiragana, Katakana, or
// Kanji code points.
func containsJapanese(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r) || unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}
