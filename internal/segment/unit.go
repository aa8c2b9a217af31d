package segment

// Kind classifies a content unit.
type Kind string

const (
	KindParagraph   Kind = "paragraph"
	KindHeading     Kind = "heading"
	KindTableHeader Kind = "table_header"
	KindTableData   Kind = "table_data"
	KindCodeBlock   Kind = "code_block"
)

// ContentUnit is one typed, positioned fragment of a segmented document.
// Units are immutable once produced; a unit never spans more than one kind.
type ContentUnit struct {
	Kind    Kind           `json:"kind"`
	RawText string         `json:"raw_text"`
	Fields  map[string]any `json:"fields,omitempty"`
	Index   int            `json:"index"`
}

// ColumnStats holds per-column numeric statistics for a table_data unit.
// Only values that parse as floating-point numbers contribute.
type ColumnStats struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}
