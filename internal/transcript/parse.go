package transcript

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"subreel/internal/services"
)

// Parse dispatches on the source name's extension, falling back to content
// sniffing when the extension is unrecognized.
func Parse(name string, data []byte) (*Transcript, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".srt":
		return ParseSRT(data)
	case ".json":
		return ParseJSON(data)
	}

	trimmed := bytes.TrimLeft(data, " \t\r\n\uFEFF")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return ParseJSON(data)
	}
	return ParseSRT(data)
}

// Load reads and parses a transcript file from disk.
func Load(path string) (*Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrSchema, "transcript", "load", "read transcript file", err)
	}
	return Parse(path, data)
}
