package semantic

// Category is the rhetorical role assigned to a paragraph. Classification is
// total: every paragraph gets exactly one category.
type Category string

const (
	CategoryCore      Category = "core_argument"
	CategoryEvidence  Category = "supporting_evidence"
	CategoryReference Category = "reference"
	CategoryGeneral   Category = "general"
)

// MarkerScores are the per-vocabulary hit counts a category derives from.
type MarkerScores struct {
	Core      int `json:"core"`
	Evidence  int `json:"evidence"`
	Authority int `json:"authority"`
}

// ClassifiedParagraph is one paragraph with its category and raw scores.
type ClassifiedParagraph struct {
	Index    int          `json:"index"`
	Text     string       `json:"text"`
	Category Category     `json:"category"`
	Scores   MarkerScores `json:"scores"`
}

// LayerType identifies a semantic layer's role in the argument structure.
type LayerType string

const (
	LayerCore      LayerType = "core_argument"
	LayerEvidence  LayerType = "supporting_evidence"
	LayerReference LayerType = "reference"
)

// Layer is one classified, scored unit of the document's argument structure.
// For reference layers, Keywords holds the citation strings themselves.
type Layer struct {
	Type       LayerType `json:"layer_type"`
	Content    string    `json:"content"`
	Importance float64   `json:"importance_score"`
	Keywords   []string  `json:"keywords"`
	// Related holds indices of paragraphs sharing ≥2 keywords, computed
	// independently per paragraph (so not guaranteed reciprocal).
	Related []int `json:"related_indices,omitempty"`
}

// Structure types inferred from the category distribution.
const (
	StructureArgumentative = "argumentative"
	StructureEvidenceBased = "evidence-based"
	StructureAcademic      = "academic"
	StructureMixed         = "mixed"
)

// Structure is the layered view of a document: core arguments ranked by
// importance, evidence and references in insertion order, a short synthesized
// summary, and the inferred structure type. Built once; immutable.
type Structure struct {
	CoreArguments      []Layer `json:"core_arguments"`
	SupportingEvidence []Layer `json:"supporting_evidence"`
	References         []Layer `json:"references"`
	Summary            string  `json:"summary"`
	StructureType      string  `json:"structure_type"`
}
