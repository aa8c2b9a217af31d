// Package semantic classifies paragraphs by rhetorical role and layers them
// into a ranked argument structure (core arguments, supporting evidence,
// references). All classification is deterministic marker-vocabulary
// counting; there is no trained model anywhere in the path.
package semantic

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/docsense/docsense/internal/segment"
	"github.com/docsense/docsense/internal/vocab"
)

var (
	keySentenceRe  = regexp.MustCompile(`\d+%|\d+\.\d+`)
	numericTokenRe = regexp.MustCompile(`[\p{L}\p{N}_]*\d+[\p{L}\p{N}_]*`)
	percentDataRe  = regexp.MustCompile(`\d+(?:\.\d+)?%`)
	currencyDataRe = regexp.MustCompile(`[$¥€£]\s*\d+(?:,\d{3})*(?:\.\d+)?`)
	numberDataRe   = regexp.MustCompile(`\d+(?:,\d{3})*(?:\.\d+)?`)
	authorCiteRe   = regexp.MustCompile(`\([A-Za-z]+(?:\s+et\s+al\.)?,?\s+\d{4}\)`)
	bracketCiteRe  = regexp.MustCompile(`\[\d+(?:,\s*\d+)*\]`)
)

// Layerer classifies paragraphs and builds the document's semantic
// structure. Stateless apart from its vocabulary tables; safe for concurrent
// use.
type Layerer struct {
	vocab *vocab.Vocabulary
}

// New creates a Layerer over the given vocabulary tables.
func New(v *vocab.Vocabulary) *Layerer {
	return &Layerer{vocab: v}
}

// Extract splits text into paragraphs, classifies each, and assembles the
// layered structure with its summary and structure type.
func (l *Layerer) Extract(text string) *Structure {
	classified := l.Classify(segment.SplitParagraphs(text))

	core := l.coreArguments(classified)
	evidence := l.supportingEvidence(classified)
	references := l.references(classified)

	return &Structure{
		CoreArguments:      core,
		SupportingEvidence: evidence,
		References:         references,
		Summary:            summarize(core, evidence),
		StructureType:      structureType(classified),
	}
}

// Classify assigns exactly one category to every paragraph. Scores count
// marker-vocabulary hits (one per marker present, case-insensitive); the
// authority score also counts citation matches so citation-only reference
// paragraphs do not fall through to core_argument on an all-zero tie.
func (l *Layerer) Classify(paragraphs []string) []ClassifiedParagraph {
	out := make([]ClassifiedParagraph, 0, len(paragraphs))
	for i, p := range paragraphs {
		lower := strings.ToLower(p)
		scores := MarkerScores{
			Core:      countMarkers(lower, l.vocab.CoreMarkers),
			Evidence:  countMarkers(lower, l.vocab.EvidenceMarkers),
			Authority: countMarkers(lower, l.vocab.AuthorityMarkers) + len(citations(p)),
		}

		var category Category
		switch {
		case scores.Core >= scores.Evidence && scores.Core >= scores.Authority:
			category = CategoryCore
		case scores.Evidence > scores.Core && scores.Evidence >= scores.Authority:
			category = CategoryEvidence
		case scores.Authority > 0:
			category = CategoryReference
		default:
			category = CategoryGeneral
		}

		out = append(out, ClassifiedParagraph{
			Index:    i,
			Text:     p,
			Category: category,
			Scores:   scores,
		})
	}
	return out
}

func countMarkers(lower string, markers []string) int {
	n := 0
	for _, m := range markers {
		if strings.Contains(lower, strings.ToLower(m)) {
			n++
		}
	}
	return n
}

// coreArguments pulls up to three key sentences from each core_argument or
// general paragraph and ranks the resulting layers by importance.
func (l *Layerer) coreArguments(classified []ClassifiedParagraph) []Layer {
	var layers []Layer
	for _, p := range classified {
		if p.Category != CategoryCore && p.Category != CategoryGeneral {
			continue
		}
		key := l.keySentences(segment.SplitSentencesKeep(p.Text))
		if len(key) == 0 {
			continue
		}
		layers = append(layers, Layer{
			Type:       LayerCore,
			Content:    strings.Join(key, " "),
			Importance: importance(p),
			Keywords:   Keywords(p.Text),
			Related:    related(p, classified),
		})
	}
	sort.SliceStable(layers, func(i, j int) bool {
		return layers[i].Importance > layers[j].Importance
	})
	return layers
}

// keySentences keeps sentences containing a core marker or a
// percentage/decimal number, capped at three.
func (l *Layerer) keySentences(sentences []string) []string {
	var out []string
	for _, s := range sentences {
		lower := strings.ToLower(s)
		hasMarker := false
		for _, m := range l.vocab.CoreMarkers {
			if strings.Contains(lower, strings.ToLower(m)) {
				hasMarker = true
				break
			}
		}
		if hasMarker || keySentenceRe.MatchString(s) {
			out = append(out, s)
			if len(out) == 3 {
				break
			}
		}
	}
	return out
}

// importance scores a paragraph: weighted marker scores, a bonus for
// moderate length, and a position bonus that decays past the tenth
// paragraph — and keeps decaying below zero, deliberately discounting late
// paragraphs rather than saturating.
func importance(p ClassifiedParagraph) float64 {
	score := 2*float64(p.Scores.Core) + 1.5*float64(p.Scores.Evidence) + float64(p.Scores.Authority)
	if wc := len(strings.Fields(p.Text)); wc >= 50 && wc <= 200 {
		score += 2
	}
	score += float64(10-p.Index) * 0.1
	return score
}

// supportingEvidence keeps evidence paragraphs that contain at least one
// data point or example, in insertion order.
func (l *Layerer) supportingEvidence(classified []ClassifiedParagraph) []Layer {
	var layers []Layer
	for _, p := range classified {
		if p.Category != CategoryEvidence {
			continue
		}
		data := dataPoints(p.Text)
		examples := l.examples(p.Text)
		if len(data) == 0 && len(examples) == 0 {
			continue
		}
		layers = append(layers, Layer{
			Type:       LayerEvidence,
			Content:    p.Text,
			Importance: 2*float64(len(data)) + 1.5*float64(len(examples)),
			Keywords:   Keywords(p.Text),
		})
	}
	return layers
}

// dataPoints collects percentage, currency, and bare-number substrings.
func dataPoints(text string) []string {
	var out []string
	out = append(out, percentDataRe.FindAllString(text, -1)...)
	out = append(out, currencyDataRe.FindAllString(text, -1)...)
	out = append(out, numberDataRe.FindAllString(text, -1)...)
	return out
}

// examples collects substrings following an example marker up to the next
// sentence terminator.
func (l *Layerer) examples(text string) []string {
	var out []string
	for _, marker := range l.vocab.ExampleMarkers {
		re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(marker) + `[^.。]*[.。]`)
		if err != nil {
			continue
		}
		out = append(out, re.FindAllString(text, -1)...)
	}
	return out
}

// references keeps paragraphs classified reference or carrying any authority
// signal, provided at least one citation was found. The layer's keywords are
// the citation strings themselves.
func (l *Layerer) references(classified []ClassifiedParagraph) []Layer {
	var layers []Layer
	for _, p := range classified {
		if p.Category != CategoryReference && p.Scores.Authority == 0 {
			continue
		}
		cites := citations(p.Text)
		if len(cites) == 0 {
			continue
		}
		layers = append(layers, Layer{
			Type:       LayerReference,
			Content:    p.Text,
			Importance: 0.5 * float64(len(cites)),
			Keywords:   cites,
		})
	}
	return layers
}

// citations matches (Author, Year) and [n]/[n,m] bracket forms.
func citations(text string) []string {
	var out []string
	out = append(out, authorCiteRe.FindAllString(text, -1)...)
	out = append(out, bracketCiteRe.FindAllString(text, -1)...)
	return out
}

// Keywords extracts up to ten candidate keywords from text: capitalized
// words past the first position plus numeric-bearing tokens, deduplicated in
// first-seen order.
func Keywords(text string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(w string) {
		if w == "" || seen[w] || len(out) >= 10 {
			return
		}
		seen[w] = true
		out = append(out, w)
	}

	words := strings.Fields(text)
	for i, w := range words {
		if i == 0 {
			continue
		}
		r := []rune(w)
		if len(r) > 0 && unicode.IsUpper(r[0]) {
			add(w)
		}
	}
	for _, w := range numericTokenRe.FindAllString(text, -1) {
		add(w)
	}
	return out
}

// related returns the indices of other paragraphs whose keyword sets overlap
// this paragraph's in at least two elements.
func related(p ClassifiedParagraph, all []ClassifiedParagraph) []int {
	own := make(map[string]bool)
	for _, k := range Keywords(p.Text) {
		own[k] = true
	}

	var out []int
	for _, other := range all {
		if other.Index == p.Index {
			continue
		}
		overlap := 0
		for _, k := range Keywords(other.Text) {
			if own[k] {
				overlap++
			}
		}
		if overlap >= 2 {
			out = append(out, other.Index)
		}
	}
	return out
}

// summarize joins the single highest-scoring core argument with the first
// hundred runes of the first evidence layer. Either half is omitted when its
// source list is empty.
func summarize(core, evidence []Layer) string {
	var parts []string
	if len(core) > 0 {
		parts = append(parts, "核心論點："+core[0].Content)
	}
	if len(evidence) > 0 {
		content := []rune(evidence[0].Content)
		if len(content) > 100 {
			content = content[:100]
		}
		parts = append(parts, "主要證據："+string(content)+"...")
	}
	return strings.Join(parts, " ")
}

// structureType infers the document shape from the category distribution.
func structureType(classified []ClassifiedParagraph) string {
	counts := make(map[Category]int)
	for _, p := range classified {
		counts[p.Category]++
	}
	switch {
	case counts[CategoryCore] > counts[CategoryEvidence]:
		return StructureArgumentative
	case counts[CategoryEvidence] > counts[CategoryCore]:
		return StructureEvidenceBased
	case float64(counts[CategoryReference]) > float64(len(classified))*0.3:
		return StructureAcademic
	default:
		return StructureMixed
	}
}
