package timeline

import "subreel/internal/transcript"

// Location is the result of resolving a clock position against a transcript.
// Index is -1 and Segment nil when the time falls in a gap or past the end.
type Location struct {
	Index        int
	Segment      *transcript.Segment
	ActiveTokens []int
}

// Locate resolves the segment and active token set for a clock position. It
// is a pure function of (segments, policy, t) so the live preview loop and
// the frame-by-frame recorder cannot diverge.
//
// The policy's Offset shifts the cue clock before any matching: a negative
// offset makes subtitles and highlights appear that many seconds earlier,
// under both modes. Segment match is the first segment whose [start, end)
// contains the cue; overlapping segments are legal and resolve to the
// earliest. Active tokens are every token whose policy window, shifted by
// the segment start, contains the cue. Overlapping token windows all qualify.
func Locate(segments []transcript.Segment, policy Policy, t float64) Location {
	cue := t - policy.Offset
	for i := range segments {
		if !segments[i].Contains(cue) {
			continue
		}
		seg := &segments[i]
		return Location{
			Index:        i,
			Segment:      seg,
			ActiveTokens: activeTokens(seg, policy, cue-seg.Start),
		}
	}
	return Location{Index: -1}
}

func activeTokens(seg *transcript.Segment, policy Policy, local float64) []int {
	var active []int
	for i, tok := range seg.Tokens {
		if policy.contains(tok, local) {
			active = append(active, i)
		}
	}
	if policy.Mode == ModeB && policy.PunctSkip > 0 {
		active = resolvePunctGaps(seg.Tokens, policy, local, active)
	}
	return active
}

// resolvePunctGaps substitutes punctuation hits under Mode B. Early in a
// punctuation window the previous word stays lit; once PunctSkip has elapsed
// the highlight jumps ahead to the next word. The punctuation glyph itself
// never carries the highlight in this mode.
func resolvePunctGaps(tokens []transcript.Token, policy Policy, local float64, active []int) []int {
	resolved := active[:0]
	seen := make(map[int]bool, len(active))
	for _, idx := range active {
		target := idx
		if tokens[idx].IsPunct() {
			start, _ := policy.Window(tokens[idx])
			if local-start >= policy.PunctSkip {
				target = nextWord(tokens, idx)
			} else {
				target = prevWord(tokens, idx)
			}
		}
		if target < 0 || seen[target] {
			continue
		}
		seen[target] = true
		resolved = append(resolved, target)
	}
	return resolved
}

func nextWord(tokens []transcript.Token, from int) int {
	for i := from + 1; i < len(tokens); i++ {
		if !tokens[i].IsPunct() {
			return i
		}
	}
	return -1
}

func prevWord(tokens []transcript.Token, from int) int {
	for i := from - 1; i >= 0; i-- {
		if !tokens[i].IsPunct() {
			return i
		}
	}
	return -1
}

// Window selects the visible segment range for the scroll stack: the active
// segment's predecessor leads the window so the active line sits second,
// giving one line of look-back. Returns the half-open index range.
func Window(index, count, total int) (int, int) {
	if count <= 0 || total <= 0 || index < 0 {
		return 0, 0
	}
	lo := index - 1
	if lo < 0 {
		lo = 0
	}
	hi := lo + count
	if hi > total {
		hi = total
	}
	return lo, hi
}
