package layout

import (
	"math"
	"strings"
	"testing"
)

// fixedMeasurer charges one pixel per rune, making width budgets read as
// character counts.
type fixedMeasurer struct{}

func (fixedMeasurer) Width(text string) float64 {
	return float64(len([]rune(text)))
}

func TestWrapCharactersFivePerLine(t *testing.T) {
	lines := Wrap("ありがとうございます", 5, fixedMeasurer{})
	if len(lines) != 2 {
		t.Fatalf("expected exactly 2 lines, got %d: %v", len(lines), lines)
	}
	if lines[0] != "ありがとう" || lines[1] != "ございます" {
		t.Fatalf("unexpected split: %v", lines)
	}
}

func TestWrapWordsNeverSplits(t *testing.T) {
	lines := Wrap("con mèo nhỏ ngủ trên ghế", 10, fixedMeasurer{})
	for _, line := range lines {
		if got := len([]rune(line)); got > 10 {
			t.Fatalf("line %q exceeds budget (%d)", line, got)
		}
	}
	if strings.Join(lines, " ") != "con mèo nhỏ ngủ trên ghế" {
		t.Fatalf("word wrap must reconstruct the input, got %v", lines)
	}
}

func TestWrapRoundTrip(t *testing.T) {
	wordText := "one two three four five six seven"
	if got := strings.Join(Wrap(wordText, 9, fixedMeasurer{}), " "); got != wordText {
		t.Fatalf("word round-trip failed: %q", got)
	}

	charText := "私は毎日日本語を勉強します"
	if got := strings.Join(Wrap(charText, 4, fixedMeasurer{}), ""); got != charText {
		t.Fatalf("character round-trip failed: %q", got)
	}
}

func TestWrapOverWidthUnitKeepsOwnLine(t *testing.T) {
	lines := Wrap("incomprehensibilities a b", 5, fixedMeasurer{})
	if len(lines) == 0 || lines[0] != "incomprehensibilities" {
		t.Fatalf("over-width word must stay on its own line, got %v", lines)
	}
	for _, line := range lines {
		if line == "" {
			t.Fatalf("empty line produced: %v", lines)
		}
	}
}

func TestWrapEmptyAndBlank(t *testing.T) {
	if lines := Wrap("", 10, fixedMeasurer{}); lines != nil {
		t.Fatalf("expected nil for empty text, got %v", lines)
	}
	if lines := Wrap("   ", 10, fixedMeasurer{}); lines != nil {
		t.Fatalf("expected nil for blank text, got %v", lines)
	}
}

func TestBlockHeight(t *testing.T) {
	block := LayoutBlock("ありがとうございます", 5, 18, 1.3, 8, fixedMeasurer{})
	want := 2*18*1.3 + 16
	if got := block.Height(); math.Abs(got-want) > 1e-9 {
		t.Fatalf("height = %v, want %v", got, want)
	}

	empty := LayoutBlock("", 5, 18, 1.3, 8, fixedMeasurer{})
	if got := empty.Height(); got != 0 {
		t.Fatalf("empty block height = %v, want 0", got)
	}
}

func TestRuneMeasurerWidthClasses(t *testing.T) {
	m := NewRuneMeasurer(20)
	if got := m.Width("猫"); got != 20 {
		t.Fatalf("wide rune width = %v, want 20", got)
	}
	if got := m.Width("a"); got != 11 {
		t.Fatalf("narrow rune width = %v, want 11", got)
	}
	if m.Width("ねこ") <= m.Width("ab") {
		t.Fatal("expected CJK text to measure wider than latin text of equal length")
	}
}
