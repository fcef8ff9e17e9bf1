package media

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"subreel/internal/services"
)

func writeTestPNG(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.Set(0, 0, color.RGBA{R: 0x20, G: 0x40, B: 0x60, A: 0xff})

	path := filepath.Join(t.TempDir(), "bg.png")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create png: %v", err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return path
}

func TestLoadImageDecodesPNG(t *testing.T) {
	img, err := LoadImage(writeTestPNG(t))
	if err != nil {
		t.Fatalf("LoadImage returned error: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 4 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
}

func TestLoadImageMissingFileClassifiedNetwork(t *testing.T) {
	_, err := LoadImage(filepath.Join(t.TempDir(), "missing.png"))
	if !errors.Is(err, services.ErrMedia) {
		t.Fatalf("expected media error, got %v", err)
	}
	kind, ok := services.MediaKind(err)
	if !ok || kind != services.MediaFailureNetwork {
		t.Fatalf("expected network classification, got %v", kind)
	}
}

func TestLoadImageGarbageClassifiedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	_, err := LoadImage(path)
	if !errors.Is(err, services.ErrMedia) {
		t.Fatalf("expected media error, got %v", err)
	}
	kind, ok := services.MediaKind(err)
	if !ok || kind != services.MediaFailureFormat {
		t.Fatalf("expected format classification, got %v", kind)
	}
}

func TestLoadImageTruncatedClassifiedDecode(t *testing.T) {
	full, err := os.ReadFile(writeTestPNG(t))
	if err != nil {
		t.Fatalf("read png: %v", err)
	}
	path := filepath.Join(t.TempDir(), "truncated.png")
	if err := os.WriteFile(path, full[:len(full)-8], 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	_, err = LoadImage(path)
	if !errors.Is(err, services.ErrMedia) {
		t.Fatalf("expected media error, got %v", err)
	}
	kind, ok := services.MediaKind(err)
	if !ok || kind != services.MediaFailureDecode {
		t.Fatalf("expected decode classification, got %v", kind)
	}
}
