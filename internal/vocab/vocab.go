// Package vocab holds the keyword vocabularies that drive extraction and
// classification. The tables are data, not code: defaults are embedded as
// YAML and can be replaced wholesale with a user-supplied file, so extending
// or localizing a vocabulary never requires touching extraction logic.
package vocab

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// CueGroup is a named, ordered list of cue words. Order matters where the
// consumer resolves the first matching group (metric types, time contexts).
type CueGroup struct {
	Name string   `yaml:"name"`
	Cues []string `yaml:"cues"`
}

// Vocabulary is an immutable set of keyword tables. All matching against
// these lists is case-insensitive substring containment.
type Vocabulary struct {
	// Keyword anchors for pattern extraction.
	Financial []string `yaml:"financial"`
	KPI       []string `yaml:"kpi"`
	Tactical  []string `yaml:"tactical"`

	// Rhetorical-role markers for paragraph and sentence classification.
	CoreMarkers      []string `yaml:"core_markers"`
	EvidenceMarkers  []string `yaml:"evidence_markers"`
	AuthorityMarkers []string `yaml:"authority_markers"`

	// Phrases that flag commercial filler during compression.
	Commercial []string `yaml:"commercial"`

	// Phrases that introduce an example ("for example", "例如", ...).
	ExampleMarkers []string `yaml:"example_markers"`

	// Ordered secondary classifications; first group whose cue matches wins.
	MetricTypes        []CueGroup `yaml:"metric_types"`
	TacticalCategories []CueGroup `yaml:"tactical_categories"`
	TimeContexts       []CueGroup `yaml:"time_contexts"`
}

var defaults *Vocabulary

func init() {
	v := &Vocabulary{}
	if err := yaml.Unmarshal(defaultsYAML, v); err != nil {
		panic(fmt.Sprintf("vocab: embedded defaults are invalid: %v", err))
	}
	defaults = v
}

// Default returns the embedded vocabulary tables.
func Default() *Vocabulary {
	return defaults
}

// Load reads a vocabulary file from disk. Fields absent from the file fall
// back to the embedded defaults, so a partial override file is valid.
func Load(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}
	v := *defaults
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse vocabulary %s: %w", path, err)
	}
	return &v, nil
}
