package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSchema marks transcript uploads whose JSON carries no resolvable
	// segment array. The previous transcript stays active.
	ErrSchema = errors.New("schema error")
	// ErrPrecondition marks a session start requested without the state it
	// needs (no transcript, no segments). No partial session is created.
	ErrPrecondition = errors.New("precondition error")
	// ErrMedia marks image/audio/video decode, format, network, or abort
	// failures. Loaded transcript data survives the failure.
	ErrMedia = errors.New("media error")
	// ErrEncodingUnavailable marks a host with no usable capture encoder.
	// Session start is refused outright; no partial output file exists.
	ErrEncodingUnavailable = errors.New("encoding unavailable")
	// ErrExternalTool marks ffmpeg/ffprobe invocation failures.
	ErrExternalTool = errors.New("external tool error")
)

// MediaFailureKind classifies a media error the way the playback surface
// reports it to the user.
type MediaFailureKind string

const (
	MediaFailureFormat  MediaFailureKind = "format"
	MediaFailureDecode  MediaFailureKind = "decode"
	MediaFailureNetwork MediaFailureKind = "network"
	MediaFailureAbort   MediaFailureKind = "abort"
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// WrapMedia tags a media failure with its classification so callers can
// distinguish format, decode, network, and abort outcomes.
func WrapMedia(kind MediaFailureKind, component, operation, message string, err error) error {
	wrapped := Wrap(ErrMedia, component, operation, message, err)
	return &mediaError{kind: kind, err: wrapped}
}

type mediaError struct {
	kind MediaFailureKind
	err  error
}

func (e *mediaError) Error() string { return e.err.Error() }

func (e *mediaError) Unwrap() error { return e.err }

// MediaKind extracts the media failure classification from an error chain.
// The second return is false when the error is not a classified media error.
func MediaKind(err error) (MediaFailureKind, bool) {
	var me *mediaError
	if errors.As(err, &me) {
		return me.kind, true
	}
	return "", false
}

// Recoverable reports whether the failure leaves loaded state intact: schema
// and media errors are recovered locally, while precondition and
// encoding-availability errors abort the requested operation before it
// acquires any state.
func Recoverable(err error) bool {
	return errors.Is(err, ErrSchema) || errors.Is(err, ErrMedia)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
