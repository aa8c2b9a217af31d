package keyelem

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/docsense/docsense/internal/segment"
	"github.com/docsense/docsense/internal/vocab"
)

var (
	numberUnitRe = regexp.MustCompile(`(\d{1,3}(?:,\d{3})*(?:\.\d+)?)\s*([%$¥€£萬億百千]?)`)
	percentRe    = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
	dataPointRe  = regexp.MustCompile(`([\p{L}\p{N}_\s]+?)\s*[:：]\s*([0-9,]+(?:\.[0-9]+)?)\s*([^0-9\s]+)?`)
	yearRe       = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	quarterRe    = regexp.MustCompile(`(?i)Q[1-4]\s*(?:20)?\d{2}|(?:第)?[一二三四1-4]\s*季(?:度)?`)
)

// unitLabels maps a unit symbol found near a number to its display label.
// Checked in order; absent or unknown symbols fall back to "number".
var unitLabels = []struct {
	symbol string
	label  string
}{
	{"$", "USD"},
	{"¥", "CNY"},
	{"€", "EUR"},
	{"£", "GBP"},
	{"%", "percentage"},
	{"萬", "10K"},
	{"億", "100M"},
}

// unitScale multiplies a number by its Chinese scale suffix.
var unitScale = map[string]float64{
	"萬": 10_000,
	"億": 100_000_000,
	"千": 1_000,
	"百": 100,
}

// Extractor scans text for key elements using fixed vocabularies. It holds
// no mutable state and is safe for concurrent use.
type Extractor struct {
	vocab *vocab.Vocabulary
}

// New creates an Extractor over the given vocabulary tables.
func New(v *vocab.Vocabulary) *Extractor {
	return &Extractor{vocab: v}
}

// Extract scans text and returns every key element found, grouped by type.
// The input is never mutated; duplicate elements from overlapping keyword
// matches are intentional.
func (e *Extractor) Extract(text string) map[ElementType][]KeyElement {
	sentences := segment.SplitSentences(text)
	return map[ElementType][]KeyElement{
		TypeFinancial: e.financialIndicators(sentences),
		TypeKPI:       e.kpiMetrics(sentences),
		TypeTactical:  e.tacticalTerms(sentences),
		TypeDataPoint: e.dataPoints(text),
		TypeTimeRef:   e.timeReferences(text),
	}
}

// financialIndicators emits one element per (keyword, number) pair found in
// sentences containing a financial keyword.
func (e *Extractor) financialIndicators(sentences []string) []KeyElement {
	var out []KeyElement
	for i, sentence := range sentences {
		lower := strings.ToLower(sentence)
		for _, kw := range e.vocab.Financial {
			if !strings.Contains(lower, strings.ToLower(kw)) {
				continue
			}
			for _, m := range numbersWithContext(sentence) {
				out = append(out, KeyElement{
					Type: TypeFinancial,
					Value: Financial{
						Keyword: kw,
						Number:  m.value,
						Unit:    detectUnit(m.context),
					},
					Context:    sentence,
					Confidence: 0.8,
					Offset:     i,
				})
			}
		}
	}
	return out
}

// kpiMetrics emits one element per percentage literal and one per
// non-percentage numeric token in sentences containing a KPI keyword.
func (e *Extractor) kpiMetrics(sentences []string) []KeyElement {
	var out []KeyElement
	for i, sentence := range sentences {
		lower := strings.ToLower(sentence)
		for _, kw := range e.vocab.KPI {
			if !strings.Contains(lower, strings.ToLower(kw)) {
				continue
			}
			metricType := e.metricType(lower)
			for _, m := range percentRe.FindAllStringSubmatch(sentence, -1) {
				pct, err := strconv.ParseFloat(m[1], 64)
				if err != nil {
					continue
				}
				out = append(out, KeyElement{
					Type: TypeKPI,
					Value: KPI{
						Keyword:    kw,
						Number:     pct,
						Percent:    true,
						MetricType: metricType,
					},
					Context:    sentence,
					Confidence: 0.75,
					Offset:     i,
				})
			}
			for _, m := range numbersWithContext(sentence) {
				if strings.Contains(m.context, "%") {
					continue // already captured as a percentage
				}
				out = append(out, KeyElement{
					Type: TypeKPI,
					Value: KPI{
						Keyword:    kw,
						Number:     m.value,
						MetricType: metricType,
					},
					Context:    sentence,
					Confidence: 0.7,
					Offset:     i,
				})
			}
		}
	}
	return out
}

// metricType resolves the first metric-type group with a cue in the
// lowercased sentence; "general" if none match.
func (e *Extractor) metricType(lower string) string {
	for _, group := range e.vocab.MetricTypes {
		for _, cue := range group.Cues {
			if strings.Contains(lower, strings.ToLower(cue)) {
				return group.Name
			}
		}
	}
	return "general"
}

// tacticalTerms emits one element per (sentence, term) match carrying the
// surrounding word window and the term's category.
func (e *Extractor) tacticalTerms(sentences []string) []KeyElement {
	var out []KeyElement
	for i, sentence := range sentences {
		lower := strings.ToLower(sentence)
		for _, term := range e.vocab.Tactical {
			if !strings.Contains(lower, strings.ToLower(term)) {
				continue
			}
			out = append(out, KeyElement{
				Type: TypeTactical,
				Value: Tactical{
					Term:         term,
					ContextWords: contextWords(sentence, term),
					Category:     e.tacticalCategory(term),
				},
				Context:    sentence,
				Confidence: 0.85,
				Offset:     i,
			})
		}
	}
	return out
}

func (e *Extractor) tacticalCategory(term string) string {
	lower := strings.ToLower(term)
	for _, group := range e.vocab.TacticalCategories {
		for _, cue := range group.Cues {
			if lower == strings.ToLower(cue) {
				return group.Name
			}
		}
	}
	return "general"
}

// contextWords collects the words within a ±2-word window around each
// occurrence of the term's words, excluding the term's own words.
// First-seen order, deduplicated.
func contextWords(sentence, term string) []string {
	words := strings.Fields(sentence)
	termWords := strings.Fields(term)
	isTermWord := make(map[string]bool, len(termWords))
	for _, w := range termWords {
		isTermWord[strings.ToLower(w)] = true
	}

	seen := make(map[string]bool)
	var out []string
	for i, w := range words {
		if !isTermWord[strings.ToLower(w)] {
			continue
		}
		lo := max(0, i-2)
		hi := min(len(words), i+3)
		for _, ctx := range words[lo:hi] {
			if isTermWord[strings.ToLower(ctx)] || seen[ctx] {
				continue
			}
			seen[ctx] = true
			out = append(out, ctx)
		}
	}
	return out
}

// dataPoints matches "label : value [unit]" triples document-wide. Values
// that fail numeric parsing are skipped silently; extraction is best-effort.
func (e *Extractor) dataPoints(text string) []KeyElement {
	var out []KeyElement
	for _, idx := range dataPointRe.FindAllStringSubmatchIndex(text, -1) {
		label := strings.TrimSpace(text[idx[2]:idx[3]])
		raw := strings.ReplaceAll(text[idx[4]:idx[5]], ",", "")
		unit := ""
		if idx[6] >= 0 {
			unit = strings.TrimSpace(text[idx[6]:idx[7]])
		}

		integer := !strings.Contains(raw, ".")
		number, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		out = append(out, KeyElement{
			Type: TypeDataPoint,
			Value: DataPoint{
				Label:   label,
				Number:  number,
				Integer: integer,
				Unit:    unit,
			},
			Context:    text[idx[0]:idx[1]],
			Confidence: 0.9,
			Offset:     idx[0],
		})
	}
	return out
}

// timeReferences matches 4-digit years (1900-2099) and quarter expressions
// document-wide.
func (e *Extractor) timeReferences(text string) []KeyElement {
	var out []KeyElement
	for _, idx := range yearRe.FindAllStringIndex(text, -1) {
		literal := text[idx[0]:idx[1]]
		year, err := strconv.Atoi(literal)
		if err != nil {
			continue
		}
		context := window(text, idx[0], idx[1], 50)
		out = append(out, KeyElement{
			Type: TypeTimeRef,
			Value: TimeRef{
				Kind:        "year",
				Year:        year,
				Text:        literal,
				ContextType: e.timeContext(context),
			},
			Context:    context,
			Confidence: 0.95,
			Offset:     idx[0],
		})
	}
	for _, idx := range quarterRe.FindAllStringIndex(text, -1) {
		out = append(out, KeyElement{
			Type: TypeTimeRef,
			Value: TimeRef{
				Kind: "quarter",
				Text: text[idx[0]:idx[1]],
			},
			Context:    window(text, idx[0], idx[1], 50),
			Confidence: 0.9,
			Offset:     idx[0],
		})
	}
	return out
}

func (e *Extractor) timeContext(context string) string {
	lower := strings.ToLower(context)
	for _, group := range e.vocab.TimeContexts {
		for _, cue := range group.Cues {
			if strings.Contains(lower, strings.ToLower(cue)) {
				return group.Name
			}
		}
	}
	return "unspecified"
}

type numberMatch struct {
	value   float64
	context string
}

// numbersWithContext finds grouped-thousands numeric tokens with an optional
// unit symbol, scales Chinese units, and attaches a ±20-character window.
func numbersWithContext(text string) []numberMatch {
	var out []numberMatch
	for _, idx := range numberUnitRe.FindAllStringSubmatchIndex(text, -1) {
		raw := strings.ReplaceAll(text[idx[2]:idx[3]], ",", "")
		number, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		unit := text[idx[4]:idx[5]]
		if scale, ok := unitScale[unit]; ok {
			number *= scale
		}
		out = append(out, numberMatch{
			value:   number,
			context: window(text, idx[0], idx[1], 20),
		})
	}
	return out
}

// detectUnit maps the first unit symbol present in context to its label.
func detectUnit(context string) string {
	for _, u := range unitLabels {
		if strings.Contains(context, u.symbol) {
			return u.label
		}
	}
	return "number"
}

// window returns text around [start,end), widened by margin bytes on each
// side and snapped outward to rune boundaries.
func window(text string, start, end, margin int) string {
	lo := start - margin
	if lo < 0 {
		lo = 0
	}
	for lo > 0 && !utf8.RuneStart(text[lo]) {
		lo--
	}
	hi := end + margin
	if hi > len(text) {
		hi = len(text)
	}
	for hi < len(text) && !utf8.RuneStart(text[hi]) {
		hi++
	}
	return text[lo:hi]
}
