// Package keyelem extracts keyword-anchored signals (financial figures, KPI
// metrics, tactical terminology, labeled data points, time references) from
// text. Extraction is deterministic and rule driven: a pure function of the
// input text plus the vocabulary tables it was constructed with.
package keyelem

// ElementType identifies the kind of signal a KeyElement carries.
type ElementType string

const (
	TypeFinancial ElementType = "financial_indicator"
	TypeKPI       ElementType = "kpi_metric"
	TypeTactical  ElementType = "tactical_term"
	TypeDataPoint ElementType = "data_point"
	TypeTimeRef   ElementType = "time_reference"
)

// Value is the payload of a KeyElement. Exactly one concrete type exists per
// element type; the interface is sealed so the variants form a closed union.
type Value interface {
	elementValue()
}

// Financial is an anchored numeric figure from a sentence containing a
// financial keyword. Number is already scaled by its unit symbol
// (萬 ×10⁴, 億 ×10⁸, 千 ×10³, 百 ×10²).
type Financial struct {
	Keyword string  `json:"keyword"`
	Number  float64 `json:"number"`
	Unit    string  `json:"unit"`
}

// KPI is a metric value from a sentence containing a KPI keyword. Percent
// reports whether Number came from a percentage literal.
type KPI struct {
	Keyword    string  `json:"keyword"`
	Number     float64 `json:"number"`
	Percent    bool    `json:"percent"`
	MetricType string  `json:"metric_type"`
}

// Tactical is a matched tactical term with the words surrounding each of its
// occurrences (a ±2-word window, the term's own words excluded).
type Tactical struct {
	Term         string   `json:"term"`
	ContextWords []string `json:"context_words"`
	Category     string   `json:"category"`
}

// DataPoint is a "label: value [unit]" triple. Integer records whether the
// source literal had no decimal point.
type DataPoint struct {
	Label   string  `json:"label"`
	Number  float64 `json:"number"`
	Integer bool    `json:"integer"`
	Unit    string  `json:"unit"`
}

// TimeRef is a year or quarter expression. Year is set only for Kind "year";
// ContextType is future/past/present/unspecified, inferred from nearby text.
type TimeRef struct {
	Kind        string `json:"kind"`
	Year        int    `json:"year,omitempty"`
	Text        string `json:"text"`
	ContextType string `json:"context_type,omitempty"`
}

func (Financial) elementValue() {}
func (KPI) elementValue()       {}
func (Tactical) elementValue()  {}
func (DataPoint) elementValue() {}
func (TimeRef) elementValue()   {}

// KeyElement is one extracted signal. Read-only once created. Overlapping
// context spans across elements are expected: one sentence matching several
// keywords yields one element per (keyword, value) pair.
type KeyElement struct {
	Type       ElementType `json:"element_type"`
	Value      Value       `json:"value"`
	Context    string      `json:"context"`
	Confidence float64     `json:"confidence"`
	// Offset is the sentence index for sentence-scoped extractions and the
	// byte offset for document-wide ones.
	Offset int `json:"offset"`
}
