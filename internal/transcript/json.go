package transcript

import (
	"encoding/json"
	"fmt"
	"strings"

	"subreel/internal/services"
)

// Field-resolution order for aliased transcript documents. Each target field
// takes the first alias present on an item; resolution happens once at parse
// time into the fixed internal schema.
var (
	segmentStartAliases = []string{"start", "startTime"}
	segmentEndAliases   = []string{"end", "endTime"}
	primaryTextAliases  = []string{"jp", "text", "subtitle", "sentence"}
	translationAliases  = []string{"vi", "translation", "meaning"}
	tokenListAliases    = []string{"tokens", "words"}
	vocabListAliases    = []string{"vocabulary", "vocab"}

	tokenSurfaceAliases = []string{"surface", "word", "text"}
	tokenStartAliases   = []string{"t", "start", "tStart"}
	tokenEndAliases     = []string{"end", "tEnd"}
	tokenPOSAliases     = []string{"pos", "partOfSpeech"}
	tokenReadingAliases = []string{"reading", "furigana"}
	tokenTransAliases   = []string{"vi", "translation", "meaning"}
)

// ParseJSON converts a JSON transcript document into a transcript. Accepted
// shapes: a bare array of segment items, an object with a "segments" or
// "data" array, or as a last resort the first array-valued property on the
// object. Returns a schema error when no non-empty segment array can be
// located.
func ParseJSON(data []byte) (*Transcript, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, services.Wrap(services.ErrSchema, "transcript", "parse json", "document is not valid JSON", err)
	}

	items, duration, err := locateSegmentArray(doc)
	if err != nil {
		return nil, err
	}

	segments := make([]Segment, 0, len(items))
	for i, raw := range items {
		item, ok := raw.(map[string]any)
		if !ok {
			return nil, services.Wrap(services.ErrSchema, "transcript", "parse json", fmt.Sprintf("segment %d is not an object", i), nil)
		}
		segments = append(segments, decodeSegment(item))
	}

	return &Transcript{Segments: segments, Duration: duration}, nil
}

func locateSegmentArray(doc any) ([]any, float64, error) {
	switch v := doc.(type) {
	case []any:
		if len(v) == 0 {
			return nil, 0, services.Wrap(services.ErrSchema, "transcript", "parse json", "segment array is empty", nil)
		}
		return v, 0, nil
	case map[string]any:
		duration, _ := floatField(v, "duration")
		for _, key := range []string{"segments", "data"} {
			if arr, ok := v[key].([]any); ok {
				if len(arr) == 0 {
					return nil, 0, services.Wrap(services.ErrSchema, "transcript", "parse json", "segment array is empty", nil)
				}
				return arr, duration, nil
			}
		}
		for _, value := range v {
			if arr, ok := value.([]any); ok && len(arr) > 0 {
				return arr, duration, nil
			}
		}
	}
	return nil, 0, services.Wrap(services.ErrSchema, "transcript", "parse json", "no segment array found in document", nil)
}

func decodeSegment(item map[string]any) Segment {
	seg := Segment{
		Start:           resolveFloat(item, segmentStartAliases),
		End:             resolveFloat(item, segmentEndAliases),
		PrimaryText:     resolveString(item, primaryTextAliases),
		TranslationText: resolveString(item, translationAliases),
	}

	for _, key := range tokenListAliases {
		arr, ok := item[key].([]any)
		if !ok {
			continue
		}
		for _, raw := range arr {
			tok, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			seg.Tokens = append(seg.Tokens, normalizeToken(decodeToken(tok)))
		}
		break
	}

	for _, key := range vocabListAliases {
		arr, ok := item[key].([]any)
		if !ok {
			continue
		}
		for _, raw := range arr {
			entry, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			seg.Vocabulary = append(seg.Vocabulary, decodeVocab(entry))
		}
		break
	}

	return seg
}

func decodeToken(item map[string]any) Token {
	return Token{
		Surface:     resolveString(item, tokenSurfaceAliases),
		Reading:     resolveString(item, tokenReadingAliases),
		Romaji:      resolveString(item, []string{"romaji"}),
		POS:         resolveString(item, tokenPOSAliases),
		Start:       resolveFloat(item, tokenStartAliases),
		End:         resolveFloat(item, tokenEndAliases),
		Translation: resolveString(item, tokenTransAliases),
	}
}

func decodeVocab(item map[string]any) VocabEntry {
	return VocabEntry{
		Surface:     resolveString(item, tokenSurfaceAliases),
		Reading:     resolveString(item, tokenReadingAliases),
		Romaji:      resolveString(item, []string{"romaji"}),
		POS:         resolveString(item, tokenPOSAliases),
		Translation: resolveString(item, tokenTransAliases),
	}
}

func resolveString(item map[string]any, aliases []string) string {
	for _, key := range aliases {
		if value, ok := item[key].(string); ok {
			trimmed := strings.TrimSpace(value)
			if trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

func resolveFloat(item map[string]any, aliases []string) float64 {
	for _, key := range aliases {
		if value, ok := floatField(item, key); ok {
			return value
		}
	}
	return 0
}

func floatField(item map[string]any, key string) (float64, bool) {
	value, ok := item[key].(float64)
	return value, ok
}
