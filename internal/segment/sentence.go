package segment

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	terminatorRun = regexp.MustCompile(`[.!?。！？]+`)
	blankLine     = regexp.MustCompile(`\n\s*\n`)
)

// SplitParagraphs splits text on blank lines. Each paragraph is trimmed and
// empty ones are dropped.
func SplitParagraphs(text string) []string {
	parts := blankLine.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SplitSentences splits text on runs of sentence terminators, discarding the
// terminators themselves. Used for paragraph-local splitting during
// key-element extraction.
//
// SplitSentencesKeep is the other, terminator-preserving mode. The two modes
// produce different boundaries on the same text; downstream scoring depends
// on which one the caller picks, so both are kept as distinct operations.
func SplitSentences(text string) []string {
	parts := terminatorRun.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, s := range parts {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// SplitSentencesKeep splits text after a sentence terminator that is followed
// by whitespace, keeping the terminator attached to its sentence. Used for
// document-level splitting during semantic layering and compression.
func SplitSentencesKeep(text string) []string {
	var out []string
	var cur strings.Builder
	var prev rune

	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			out = append(out, s)
		}
		cur.Reset()
		prev = 0
	}

	for _, r := range text {
		if unicode.IsSpace(r) && isTerminator(prev) {
			flush()
			continue
		}
		cur.WriteRune(r)
		prev = r
	}
	flush()
	return out
}

func isTerminator(r rune) bool {
	switch r {
	case '.', '!', '?', '。', '！', '？':
		return true
	}
	return false
}
