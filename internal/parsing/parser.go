// Package parsing implements the local, deterministic side of topic
// extraction: sentence segmentation, normalization, and the fallback
// classifier used when the LLM is unavailable.
package parsing

import (
	"regexp"
	"strings"

	"github.com/knowtify/backend/internal/domain"
)

// leadingPhrase matches a single filler phrase at the start of a sentence
// ("I studied ...", "learned ...") including trailing whitespace. The "!"
// priority marker is deliberately not consumed here: it belongs to the
// first segment.
var leadingPhrase = regexp.MustCompile(`(?i)^(i\s+studied|studied|i\s+learned|learned)\s*`)

// ParsedTopic is one normalized topic phrase extracted from a sentence.
type ParsedTopic struct {
	Name       string
	IsPriority bool
}

// segmentSentence splits a sentence into ordered topic segments without
// deduplication. Names are lowercased and trimmed; empty segments are
// dropped. The filler phrase is stripped once, then each comma-separated
// segment carries its own "!" priority marker.
func segmentSentence(sentence string) []ParsedTopic {
	if strings.TrimSpace(sentence) == "" {
		return nil
	}

	cleaned := strings.TrimSpace(leadingPhrase.ReplaceAllString(sentence, ""))

	var out []ParsedTopic
	for _, segment := range strings.Split(cleaned, ",") {
		s := strings.TrimSpace(segment)
		if s == "" {
			continue
		}

		isPriority := strings.HasPrefix(s, "!")
		if isPriority {
			s = s[1:]
		}

		name := strings.TrimSpace(strings.ToLower(s))
		if name == "" {
			continue
		}

		out = append(out, ParsedTopic{Name: name, IsPriority: isPriority})
	}
	return out
}

// ParseSentence normalizes a raw sentence into an ordered, deduplicated
// list of topic phrases. Duplicate names (case-insensitive) are merged,
// keeping first-seen order; the merged priority flag is the logical OR of
// all occurrences. Malformed input degrades to an empty result, never an
// error.
func ParseSentence(sentence string) []ParsedTopic {
	segments := segmentSentence(sentence)
	if len(segments) == 0 {
		return nil
	}

	index := make(map[string]int, len(segments))
	var out []ParsedTopic
	for _, seg := range segments {
		if i, ok := index[seg.Name]; ok {
			out[i].IsPriority = out[i].IsPriority || seg.IsPriority
			continue
		}
		index[seg.Name] = len(out)
		out = append(out, seg)
	}
	return out
}

// FallbackClassify produces classifier-shaped records from the sentence
// alone, used when the LLM call or its response parsing fails. Unlike
// ParseSentence it does not deduplicate: each comma segment becomes one
// record, because this path feeds per-occurrence topic creation rather
// than summary display. Every record gets the catch-all subject and a low
// confidence. Never fails; worst case returns an empty slice.
func FallbackClassify(sentence string) []domain.ClassifiedTopic {
	segments := segmentSentence(sentence)

	out := make([]domain.ClassifiedTopic, 0, len(segments))
	for _, seg := range segments {
		reason := "regular entry"
		if seg.IsPriority {
			reason = "marked with !"
		}
		out = append(out, domain.ClassifiedTopic{
			Topic:      seg.Name,
			Subject:    domain.FallbackSubject,
			Priority:   seg.IsPriority,
			Reason:     reason,
			Confidence: 0.3,
		})
	}
	return out
}
