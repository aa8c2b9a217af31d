// Package compress scores, deduplicates and quality-filters a document's
// sentences, reporting the retained key sentences and the achieved
// compression ratio. It runs over the raw sentence list, independent of
// paragraph classification.
package compress

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/docsense/docsense/internal/segment"
	"github.com/docsense/docsense/internal/vocab"
)

// Removal reasons recorded in Result.RemovedContentTypes.
const (
	RemovedCommercial = "commercial"
	RemovedTooShort   = "too_short"
	RemovedLowQuality = "low_quality"
)

const minWordCount = 5

var (
	digitRe    = regexp.MustCompile(`\d`)
	spaceRunRe = regexp.MustCompile(`\s+`)
	nonWordRe  = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
)

// ScoredSentence is one sentence with its importance score.
type ScoredSentence struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	Score int    `json:"score"`
}

// Result is the outcome of compressing one document. Lengths are rune
// counts; CompressedLength covers the full filtered set, not just the
// reported key sentences.
type Result struct {
	OriginalLength      int              `json:"original_length"`
	CompressedLength    int              `json:"compressed_length"`
	CompressionRatio    float64          `json:"compression_ratio"`
	KeySentences        []ScoredSentence `json:"key_sentences"`
	RemovedContentTypes []string         `json:"removed_content_types"`
}

// Compressor filters a document down to its highest-signal sentences.
// Stateless apart from its vocabulary tables; safe for concurrent use.
type Compressor struct {
	vocab *vocab.Vocabulary
}

// New creates a Compressor over the given vocabulary tables.
func New(v *vocab.Vocabulary) *Compressor {
	return &Compressor{vocab: v}
}

// Compress scores every sentence, drops near-duplicates and low-quality or
// commercial content, and reports the top ten retained sentences. Empty
// input yields a guarded zero result rather than a division by zero.
func (c *Compressor) Compress(text string) Result {
	if utf8.RuneCountInString(text) == 0 {
		return Result{KeySentences: []ScoredSentence{}, RemovedContentTypes: []string{}}
	}

	sentences := segment.SplitSentencesKeep(text)
	scored := c.score(sentences)
	unique := dedupe(scored)
	filtered := c.filter(unique)

	originalLen := utf8.RuneCountInString(text)
	compressedLen := 0
	for _, s := range filtered {
		compressedLen += utf8.RuneCountInString(s.Text)
	}

	key := filtered
	if len(key) > 10 {
		key = key[:10]
	}
	if key == nil {
		key = []ScoredSentence{}
	}

	return Result{
		OriginalLength:      originalLen,
		CompressedLength:    compressedLen,
		CompressionRatio:    1 - float64(compressedLen)/float64(originalLen),
		KeySentences:        key,
		RemovedContentTypes: c.removedTypes(sentences, filtered),
	}
}

// score rates each sentence: +2 for moderate length (falling back to +1 for
// acceptable length), +2 for any digit, +3 for any core or evidence marker
// (one combined check), +1 for being among the document's first or last two
// sentences.
func (c *Compressor) score(sentences []string) []ScoredSentence {
	out := make([]ScoredSentence, 0, len(sentences))
	for i, s := range sentences {
		score := 0

		switch wc := len(strings.Fields(s)); {
		case wc >= 10 && wc <= 30:
			score += 2
		case wc >= 5 && wc <= 40:
			score++
		}

		if digitRe.MatchString(s) {
			score += 2
		}

		lower := strings.ToLower(s)
		if containsAny(lower, c.vocab.CoreMarkers) || containsAny(lower, c.vocab.EvidenceMarkers) {
			score += 3
		}

		if i < 2 || i >= len(sentences)-2 {
			score++
		}

		out = append(out, ScoredSentence{Index: i, Text: s, Score: score})
	}
	return out
}

// dedupe keeps the first occurrence of each normalized sentence form, in
// original order. First-seen wins even when a later duplicate scored higher.
func dedupe(scored []ScoredSentence) []ScoredSentence {
	seen := make(map[string]bool, len(scored))
	out := make([]ScoredSentence, 0, len(scored))
	for _, s := range scored {
		key := normalize(s.Text)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

func normalize(text string) string {
	t := spaceRunRe.ReplaceAllString(strings.ToLower(text), " ")
	return nonWordRe.ReplaceAllString(t, "")
}

// filter drops sentences that are too short, commercial, or below the score
// threshold, then sorts the rest by descending score. The sort is stable so
// ties retain input order.
func (c *Compressor) filter(sentences []ScoredSentence) []ScoredSentence {
	var out []ScoredSentence
	for _, s := range sentences {
		if len(strings.Fields(s.Text)) < minWordCount {
			continue
		}
		if c.isCommercial(s.Text) {
			continue
		}
		if s.Score < 2 {
			continue
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

func (c *Compressor) isCommercial(text string) bool {
	return containsAny(strings.ToLower(text), c.vocab.Commercial)
}

// removedTypes re-checks every dropped sentence against the removal
// predicates in priority order: commercial, then too_short, then
// low_quality. Returns the distinct reasons in first-seen order.
func (c *Compressor) removedTypes(original []string, filtered []ScoredSentence) []string {
	kept := make(map[string]bool, len(filtered))
	for _, s := range filtered {
		kept[s.Text] = true
	}

	seen := make(map[string]bool, 3)
	out := []string{}
	for _, s := range original {
		if kept[s] {
			continue
		}
		reason := RemovedLowQuality
		switch {
		case c.isCommercial(s):
			reason = RemovedCommercial
		case len(strings.Fields(s)) < minWordCount:
			reason = RemovedTooShort
		}
		if !seen[reason] {
			seen[reason] = true
			out = append(out, reason)
		}
	}
	return out
}

func containsAny(lower string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(lower, strings.ToLower(m)) {
			return true
		}
	}
	return false
}
