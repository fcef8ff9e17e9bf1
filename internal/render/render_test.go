package render

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"testing"

	"subreel/internal/config"
	"subreel/internal/timeline"
	"subreel/internal/transcript"
)

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	cfg := config.Default()
	r, err := New(&cfg)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return r
}

func demoFrame(clock float64) Frame {
	tr := transcript.Demo()
	policy := timeline.BaselinePolicy()
	return Frame{
		Clock:    clock,
		Total:    tr.TotalDuration(),
		Segments: tr.Segments,
		Location: timeline.Locate(tr.Segments, policy, clock),
		Policy:   policy,
	}
}

func TestRenderFrameIdempotent(t *testing.T) {
	r := testRenderer(t)
	frame := demoFrame(1.2)

	first := r.NewSurface()
	second := r.NewSurface()
	r.RenderFrame(context.Background(), first, frame)
	r.RenderFrame(context.Background(), second, frame)

	if !bytes.Equal(first.RGBA.Pix, second.RGBA.Pix) {
		t.Fatal("identical frame inputs must produce bit-identical pixels")
	}
}

func TestRenderFrameWithoutSegmentDrawsOnlyBackground(t *testing.T) {
	r := testRenderer(t)
	frame := demoFrame(0.1)
	if frame.Location.Index != -1 {
		t.Fatalf("expected gap time, got location %+v", frame.Location)
	}

	surface := r.NewSurface()
	r.RenderFrame(context.Background(), surface, frame)

	reference := r.NewSurface()
	(Solid{}).Draw(context.Background(), reference, 0, 0)
	if !bytes.Equal(surface.RGBA.Pix, reference.RGBA.Pix) {
		t.Fatal("gap frames must render the background only")
	}
}

func TestRenderFrameDrawsSubtitlePanel(t *testing.T) {
	r := testRenderer(t)
	surface := r.NewSurface()
	r.RenderFrame(context.Background(), surface, demoFrame(1.2))

	background := r.NewSurface()
	(Solid{}).Draw(context.Background(), background, 0, 0)
	if bytes.Equal(surface.RGBA.Pix, background.RGBA.Pix) {
		t.Fatal("expected subtitle panel to change pixels over the background")
	}
}

func gradientImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 0x40, A: 0xff})
		}
	}
	return img
}

func TestKenBurnsMovesBetweenFrames(t *testing.T) {
	bg := NewKenBurns(gradientImage(320, 240))

	early := NewSurface(120, 200)
	late := NewSurface(120, 200)
	bg.Draw(context.Background(), early, 0, 10)
	bg.Draw(context.Background(), late, 5, 10)

	if bytes.Equal(early.RGBA.Pix, late.RGBA.Pix) {
		t.Fatal("expected pan/zoom to change pixels across the timeline")
	}

	again := NewSurface(120, 200)
	bg.Draw(context.Background(), again, 5, 10)
	if !bytes.Equal(late.RGBA.Pix, again.RGBA.Pix) {
		t.Fatal("same clock position must produce identical background pixels")
	}
}

func TestKenBurnsFillsCenter(t *testing.T) {
	bg := NewKenBurns(gradientImage(64, 64))
	surface := NewSurface(48, 96)
	bg.Draw(context.Background(), surface, 2, 10)

	if surface.RGBA.RGBAAt(24, 48) == fallbackFill {
		t.Fatal("center must show image pixels, not the fallback fill")
	}
}

func TestActiveSegmentHoldsAnchorPosition(t *testing.T) {
	r := testRenderer(t)
	active := transcript.Segment{
		Start:           5,
		End:             8,
		PrimaryText:     "猫が走る",
		TranslationText: "con mèo chạy",
	}
	short := transcript.Segment{Start: 0, End: 5, PrimaryText: "はい", TranslationText: "vâng"}
	tall := transcript.Segment{
		Start:           0,
		End:             5,
		PrimaryText:     "昨日の夜、私たちは長い道を歩いて、静かな町の小さな駅までたどり着きました",
		TranslationText: "tối qua chúng tôi đã đi bộ một quãng đường dài đến nhà ga nhỏ của thị trấn yên tĩnh",
	}

	frameFor := func(prev transcript.Segment) Frame {
		segs := []transcript.Segment{prev, active}
		policy := timeline.BaselinePolicy()
		return Frame{
			Clock:    6,
			Total:    8,
			Segments: segs,
			Location: timeline.Locate(segs, policy, 6),
			Policy:   policy,
		}
	}

	layoutsShort, topsShort := r.stackGeometry(frameFor(short))
	layoutsTall, topsTall := r.stackGeometry(frameFor(tall))
	if len(layoutsShort) != 2 || len(layoutsTall) != 2 {
		t.Fatalf("expected two visible blocks, got %d and %d", len(layoutsShort), len(layoutsTall))
	}
	if !layoutsShort[1].active || !layoutsTall[1].active {
		t.Fatal("second block must be the active segment")
	}
	if layoutsTall[0].height <= layoutsShort[0].height {
		t.Fatalf("look-back heights must differ for this check, got %v and %v",
			layoutsTall[0].height, layoutsShort[0].height)
	}

	if topsShort[1] != topsTall[1] {
		t.Fatalf("active block drifted with look-back height: %v vs %v", topsShort[1], topsTall[1])
	}
	if topsShort[1] != r.anchorTop() {
		t.Fatalf("active block must sit on the anchor line, got %v want %v", topsShort[1], r.anchorTop())
	}
	if topsShort[0] >= topsShort[1] || topsTall[0] >= topsTall[1] {
		t.Fatal("look-back block must sit above the active block")
	}
}

func TestVocabularyPriorityOrder(t *testing.T) {
	explicit := &transcript.Segment{
		Vocabulary:      []transcript.VocabEntry{{Surface: "明日"}},
		Tokens:          []transcript.Token{{Surface: "猫", POS: transcript.POSNoun}},
		TranslationText: "ngày mai",
	}
	entries, _ := Vocabulary(explicit, 6)
	if len(entries) != 1 || entries[0].Surface != "明日" {
		t.Fatalf("explicit vocabulary must win, got %+v", entries)
	}

	fromTokens := &transcript.Segment{
		Tokens: []transcript.Token{
			{Surface: "猫", POS: transcript.POSNoun, Translation: "mèo"},
			{Surface: "は", POS: transcript.POSParticle},
			{Surface: "走る", POS: transcript.POSVerb},
			{Surface: "。", POS: transcript.POSPunct},
			{Surface: "猫", POS: transcript.POSNoun},
		},
		TranslationText: "con mèo chạy",
	}
	entries, _ = Vocabulary(fromTokens, 6)
	if len(entries) != 2 || entries[0].Surface != "猫" || entries[1].Surface != "走る" {
		t.Fatalf("expected deduplicated content tokens, got %+v", entries)
	}

	fromTranslation := &transcript.Segment{TranslationText: "con mèo nhỏ."}
	entries, _ = Vocabulary(fromTranslation, 6)
	if len(entries) != 3 || entries[2].Surface != "nhỏ" {
		t.Fatalf("expected naive translation split, got %+v", entries)
	}
}

func TestVocabularyOverflow(t *testing.T) {
	seg := &transcript.Segment{}
	for _, s := range []string{"一", "二", "三", "四", "五", "六", "七", "八"} {
		seg.Vocabulary = append(seg.Vocabulary, transcript.VocabEntry{Surface: s})
	}
	entries, overflow := Vocabulary(seg, 6)
	if len(entries) != 6 || overflow != 2 {
		t.Fatalf("expected cap at 6 with 2 overflow, got %d/%d", len(entries), overflow)
	}
}

func TestTokenChipColorSchemes(t *testing.T) {
	active := TokenChipColor("NOUN", config.ColorSchemeOriginal, 1, true)
	if active.A != 255 {
		t.Fatalf("active chip must be opaque, got alpha %d", active.A)
	}
	inactive := TokenChipColor("NOUN", config.ColorSchemeOriginal, 1, false)
	if inactive.A >= active.A {
		t.Fatalf("inactive chip must be muted, got alpha %d", inactive.A)
	}
	if active.R != 59 || active.G != 130 || active.B != 246 {
		t.Fatalf("unexpected noun color %+v", active)
	}

	unknown := TokenChipColor("MYSTERY", config.ColorSchemeOriginal, 1, true)
	other := TokenChipColor("OTHER", config.ColorSchemeOriginal, 1, true)
	if unknown != other {
		t.Fatalf("unknown tags must use the OTHER color, got %+v", unknown)
	}

	folded := TokenChipColor("EXPR", config.ColorSchemeEnhanced, 1, true)
	if folded.R != other.R || folded.G != other.G || folded.B != other.B {
		t.Fatalf("enhanced scheme folds EXPR into OTHER, got %+v", folded)
	}

	dimmed := TokenChipColor("NOUN", config.ColorSchemeEnhanced, 0.5, true)
	if dimmed.A != 128 {
		t.Fatalf("enhanced intensity must scale alpha, got %d", dimmed.A)
	}
}
