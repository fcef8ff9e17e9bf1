package encoder

import (
	"errors"
	"strings"
	"testing"

	"subreel/internal/services"
)

const encoderListing = ` V..... libvpx               libvpx VP8 (codec vp8)
 V..... libvpx-vp9           libvpx VP9 (codec vp9)
 V..... libx264              libx264 H.264 / AVC / MPEG-4 AVC
 A..... libopus              libopus Opus
`

func TestParseEncoders(t *testing.T) {
	support := parseEncoders(encoderListing)
	if !support.VP9 || !support.VP8 || !support.H264 {
		t.Fatalf("unexpected support %+v", support)
	}

	none := parseEncoders(" A..... aac    AAC audio\n")
	if none.VP9 || none.VP8 || none.H264 {
		t.Fatalf("expected no video support, got %+v", none)
	}
}

func TestChooseCodecsPreferenceOrder(t *testing.T) {
	video, audio, err := chooseCodecs("webm", Support{VP9: true, VP8: true})
	if err != nil || video != "libvpx-vp9" || audio != "libopus" {
		t.Fatalf("expected vp9 preferred, got %s/%s err=%v", video, audio, err)
	}

	video, _, err = chooseCodecs("webm", Support{VP8: true})
	if err != nil || video != "libvpx" {
		t.Fatalf("expected vp8 fallback, got %s err=%v", video, err)
	}

	video, audio, err = chooseCodecs("mp4", Support{H264: true})
	if err != nil || video != "libx264" || audio != "aac" {
		t.Fatalf("expected h264 for mp4, got %s/%s err=%v", video, audio, err)
	}
}

func TestChooseCodecsUnavailable(t *testing.T) {
	for _, container := range []string{"webm", "mp4", "mkv"} {
		_, _, err := chooseCodecs(container, Support{})
		if !errors.Is(err, services.ErrEncodingUnavailable) {
			t.Fatalf("container %s: expected encoding-unavailable, got %v", container, err)
		}
	}
}

func TestBuildArgsVideoOnly(t *testing.T) {
	opts := Options{
		Width:       480,
		Height:      853,
		FrameRate:   30,
		BitrateKbps: 4000,
		Container:   "webm",
		OutputPath:  "/tmp/out.webm",
	}
	args := strings.Join(buildArgs(opts, "libvpx-vp9", "libopus"), " ")

	for _, want := range []string{
		"-f rawvideo", "-pix_fmt rgba", "-s 480x853", "-r 30", "-i -",
		"-c:v libvpx-vp9", "-b:v 4000k", "-an", "/tmp/out.webm",
	} {
		if !strings.Contains(args, want) {
			t.Fatalf("args missing %q: %s", want, args)
		}
	}
	if strings.Contains(args, "-shortest") || strings.Contains(args, "-c:a") {
		t.Fatalf("audio flags present without audio: %s", args)
	}
}

func TestBuildArgsWithAudio(t *testing.T) {
	opts := Options{
		Width:       1280,
		Height:      720,
		FrameRate:   30,
		BitrateKbps: 4000,
		Container:   "webm",
		AudioPath:   "/tmp/voice.mp3",
		OutputPath:  "/tmp/out.webm",
	}
	args := strings.Join(buildArgs(opts, "libvpx", "libopus"), " ")

	for _, want := range []string{"-i /tmp/voice.mp3", "-c:a libopus"} {
		if !strings.Contains(args, want) {
			t.Fatalf("args missing %q: %s", want, args)
		}
	}
	if strings.Contains(args, "-an") {
		t.Fatalf("-an must not appear with audio: %s", args)
	}
	if strings.Contains(args, "-shortest") {
		t.Fatalf("output length must follow the frame stream, not the audio: %s", args)
	}
}
