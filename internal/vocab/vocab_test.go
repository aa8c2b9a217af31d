package vocab

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_TablesPopulated(t *testing.T) {
	v := Default()

	lists := map[string][]string{
		"financial":         v.Financial,
		"kpi":               v.KPI,
		"tactical":          v.Tactical,
		"core_markers":      v.CoreMarkers,
		"evidence_markers":  v.EvidenceMarkers,
		"authority_markers": v.AuthorityMarkers,
		"commercial":        v.Commercial,
		"example_markers":   v.ExampleMarkers,
	}
	for name, list := range lists {
		if len(list) == 0 {
			t.Errorf("expected embedded %s list to be non-empty", name)
		}
	}
	if len(v.MetricTypes) == 0 || len(v.TacticalCategories) == 0 || len(v.TimeContexts) == 0 {
		t.Error("expected cue groups to be populated")
	}
}

func TestDefault_MetricTypeOrder(t *testing.T) {
	// Resolution order is part of the contract: first matching group wins.
	want := []string{"conversion", "retention", "growth", "revenue"}
	v := Default()
	if len(v.MetricTypes) != len(want) {
		t.Fatalf("expected %d metric type groups, got %d", len(want), len(v.MetricTypes))
	}
	for i, group := range v.MetricTypes {
		if group.Name != want[i] {
			t.Errorf("metric type %d: expected %q, got %q", i, want[i], group.Name)
		}
	}
}

func TestLoad_PartialOverrideFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.yaml")
	content := "financial:\n  - bespoke-term\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	v, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(v.Financial) != 1 || v.Financial[0] != "bespoke-term" {
		t.Errorf("expected overridden financial list, got %v", v.Financial)
	}
	// Fields absent from the file keep the embedded defaults.
	if len(v.CoreMarkers) == 0 {
		t.Error("expected core markers to fall back to defaults")
	}
	// The embedded defaults themselves must be untouched.
	if len(Default().Financial) == 1 {
		t.Error("expected Default to be unaffected by Load")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("financial: {not a list"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}
