package transcript

import "strings"

// Part-of-speech tags carried by tokens. Unknown tags are preserved verbatim
// and fall back to the default palette color at render time.
const (
	POSNoun     = "NOUN"
	POSProperN  = "PROPN"
	POSPronoun  = "PRON"
	POSParticle = "PARTICLE"
	POSVerb     = "VERB"
	POSAdj      = "ADJ"
	POSAdv      = "ADV"
	POSExpr     = "EXPR"
	POSNum      = "NUM"
	POSAux      = "AUX"
	POSCounter  = "COUNTER"
	POSPunct    = "PUNCT"
	POSSymbol   = "SYMBOL"
	POSOther    = "OTHER"
)

// Token is a timed sub-unit of a segment's primary text. Start and End are
// seconds relative to the owning segment's start.
type Token struct {
	Surface     string
	Reading     string
	Romaji      string
	POS         string
	Start       float64
	End         float64
	Translation string
}

// IsPunct reports whether the token carries a punctuation tag. Punctuation
// still renders and still highlights but is excluded from vocabulary
// extraction and from punctuation-gap highlight adjustments.
func (t Token) IsPunct() bool {
	return strings.EqualFold(strings.TrimSpace(t.POS), POSPunct)
}

// VocabEntry is one card in a segment's vocabulary panel.
type VocabEntry struct {
	Surface     string
	Reading     string
	Romaji      string
	POS         string
	Translation string
}

// Segment is a timed line of transcript. Segments are immutable after parse;
// a new upload replaces the whole slice rather than mutating in place.
type Segment struct {
	Start           float64
	End             float64
	PrimaryText     string
	TranslationText string
	Tokens          []Token
	Vocabulary      []VocabEntry
}

// Contains reports whether t falls inside the segment's half-open interval.
func (s Segment) Contains(t float64) bool {
	return t >= s.Start && t < s.End
}

// Transcript is an ordered sequence of segments plus an optional declared
// duration from the source document.
type Transcript struct {
	Segments []Segment
	Duration float64
}

// TotalDuration returns the declared duration or, when absent or shorter, the
// end of the last segment.
func (tr *Transcript) TotalDuration() float64 {
	total := tr.Duration
	for _, seg := range tr.Segments {
		if seg.End > total {
			total = seg.End
		}
	}
	return total
}

// tokenEndFallback pads tokens missing an explicit end time. Preserved from
// the transcript format's documented policy rather than inferred.
const tokenEndFallback = 0.5

func normalizeToken(tok Token) Token {
	if tok.End <= tok.Start {
		tok.End = tok.Start + tokenEndFallback
	}
	tok.Surface = strings.TrimSpace(tok.Surface)
	tok.POS = strings.ToUpper(strings.TrimSpace(tok.POS))
	return tok
}
