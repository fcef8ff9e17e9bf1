package media

import (
	"bytes"
	"context"
	"errors"
	"image"
	"io/fs"
	"os"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"subreel/internal/services"
)

// LoadImage decodes a still image for use as a background source. Failures
// are classified so callers can tell an unreachable file from a corrupt one:
// missing or unreadable paths surface as network failures, unrecognized
// containers as format failures, and broken pixel data as decode failures.
func LoadImage(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		kind := services.MediaFailureNetwork
		if errors.Is(err, fs.ErrPermission) {
			kind = services.MediaFailureAbort
		}
		return nil, services.WrapMedia(kind, "media", "load image", "read image file", err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		kind := services.MediaFailureDecode
		if errors.Is(err, image.ErrFormat) || strings.Contains(err.Error(), "unknown format") {
			kind = services.MediaFailureFormat
		}
		return nil, services.WrapMedia(kind, "media", "load image", "decode image", err)
	}
	return img, nil
}

// ClassifyToolFailure classifies an external decode tool failure, folding
// context cancellation into the abort kind.
func ClassifyToolFailure(ctx context.Context, operation string, err error) error {
	if err == nil {
		return nil
	}
	kind := services.MediaFailureDecode
	if ctx.Err() != nil {
		kind = services.MediaFailureAbort
	}
	return services.WrapMedia(kind, "media", operation, "external decoder failed", err)
}
