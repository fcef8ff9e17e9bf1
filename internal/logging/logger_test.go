package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subreel/internal/config"
	"subreel/internal/logging"
)

func TestNewFromConfigCreatesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("session prepared")

	content, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, "subreel.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "session prepared") {
		t.Fatalf("expected message in log file, got %q", content)
	}
}

func TestConsoleHandlerFoldsComponentIntoPrefix(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")

	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "info",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.WithComponent(logger, "capture").Info("frame emitted", logging.Args(
		logging.Int(logging.FieldFrame, 42),
		logging.Float64(logging.FieldClock, 1.4),
	)...)

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(content)
	if !strings.Contains(line, "capture: frame emitted") {
		t.Fatalf("expected component prefix, got %q", line)
	}
	if !strings.Contains(line, "frame=42") || !strings.Contains(line, "clock=1.4") {
		t.Fatalf("expected key=value attributes, got %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component must not appear as an attribute, got %q", line)
	}
}

func TestConsoleHandlerOmitsCallerForInfo(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "info.log")

	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "info",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("message without caller")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if strings.Contains(string(content), ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", content)
	}
}

func TestJSONHandlerRenamesCoreKeys(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "json.log")

	logger, err := logging.New(logging.Options{
		Format:      "json",
		Level:       "info",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("encoded")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(content)
	for _, key := range []string{`"ts":`, `"level":"info"`, `"msg":"encoded"`} {
		if !strings.Contains(line, key) {
			t.Fatalf("expected %s in JSON output, got %q", key, line)
		}
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
