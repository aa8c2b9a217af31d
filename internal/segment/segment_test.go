package segment

import (
	"errors"
	"reflect"
	"testing"
)

func TestModeForExtension(t *testing.T) {
	cases := []struct {
		ext  string
		want Mode
	}{
		{".txt", ModePlain},
		{".log", ModePlain},
		{".text", ModePlain},
		{".TXT", ModePlain},
		{".md", ModeMarkdown},
		{".markdown", ModeMarkdown},
		{".csv", ModeCSV},
	}
	for _, tc := range cases {
		got, err := ModeForExtension(tc.ext)
		if err != nil {
			t.Fatalf("ModeForExtension(%q): unexpected error %v", tc.ext, err)
		}
		if got != tc.want {
			t.Errorf("ModeForExtension(%q) = %v, want %v", tc.ext, got, tc.want)
		}
	}
}

func TestModeForExtension_Unsupported(t *testing.T) {
	for _, ext := range []string{".pdf", ".docx", ""} {
		if _, err := ModeForExtension(ext); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("ModeForExtension(%q): expected ErrUnsupportedFormat, got %v", ext, err)
		}
	}
}

func TestSplitParagraphs(t *testing.T) {
	text := "first paragraph\ncontinues here\n\nsecond paragraph\n\n   \n\nthird"
	got := SplitParagraphs(text)
	want := []string{"first paragraph\ncontinues here", "second paragraph", "third"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitParagraphs = %q, want %q", got, want)
	}
}

func TestSplitSentences_DropsTerminators(t *testing.T) {
	got := SplitSentences("First one. Second one! Third?")
	want := []string{"First one", "Second one", "Third"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitSentences = %q, want %q", got, want)
	}
}

func TestSplitSentences_CJKTerminators(t *testing.T) {
	got := SplitSentences("營收成長了。獲利也提升！")
	want := []string{"營收成長了", "獲利也提升"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitSentences = %q, want %q", got, want)
	}
}

func TestSplitSentencesKeep_PreservesTerminators(t *testing.T) {
	got := SplitSentencesKeep("First one. Second one! Third? ")
	want := []string{"First one.", "Second one!", "Third?"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitSentencesKeep = %q, want %q", got, want)
	}
}

func TestSplitSentencesKeep_NoTrailingWhitespace(t *testing.T) {
	// The final sentence keeps its terminator even without trailing space.
	got := SplitSentencesKeep("Only sentence.")
	want := []string{"Only sentence."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitSentencesKeep = %q, want %q", got, want)
	}
}

func TestSplitSentencesKeep_DecimalNotSplit(t *testing.T) {
	// A dot inside a number is not followed by whitespace, so it never
	// terminates a sentence.
	got := SplitSentencesKeep("Growth hit 3.5 percent. Demand held.")
	want := []string{"Growth hit 3.5 percent.", "Demand held."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitSentencesKeep = %q, want %q", got, want)
	}
}

func TestPlain_ParagraphUnits(t *testing.T) {
	s := New(nil)
	units := s.Plain("one two three\n\n四個字элем here")

	if len(units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(units))
	}
	for i, u := range units {
		if u.Kind != KindParagraph {
			t.Errorf("unit %d: expected kind paragraph, got %q", i, u.Kind)
		}
		if u.Index != i {
			t.Errorf("unit %d: expected index %d, got %d", i, i, u.Index)
		}
	}
	if wc := units[0].Fields["word_count"]; wc != 3 {
		t.Errorf("expected word_count=3, got %v", wc)
	}
	// char_count counts runes, not bytes.
	if cc := units[1].Fields["char_count"]; cc != 12 {
		t.Errorf("expected char_count=12, got %v", cc)
	}
}

func TestPlain_EmptyInput(t *testing.T) {
	s := New(nil)
	if units := s.Plain(""); len(units) != 0 {
		t.Errorf("expected no units for empty input, got %d", len(units))
	}
	if units := s.Plain("  \n\n  "); len(units) != 0 {
		t.Errorf("expected no units for whitespace input, got %d", len(units))
	}
}

func TestPlain_AnnotatorAttached(t *testing.T) {
	s := New(func(text string) any { return len(text) })
	units := s.Plain("hello")
	if len(units) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(units))
	}
	if got := units[0].Fields["key_elements"]; got != 5 {
		t.Errorf("expected annotator result 5, got %v", got)
	}
}

func TestMarkdown_HeadingAndParagraph(t *testing.T) {
	s := New(nil)
	units := s.Markdown("# Title\n\nBody line\n")

	if len(units) != 2 {
		t.Fatalf("expected 2 units, got %d: %+v", len(units), units)
	}
	if units[0].Kind != KindHeading {
		t.Fatalf("expected heading first, got %q", units[0].Kind)
	}
	if units[0].RawText != "Title" {
		t.Errorf("expected heading text %q, got %q", "Title", units[0].RawText)
	}
	if lvl := units[0].Fields["level"]; lvl != 1 {
		t.Errorf("expected level 1, got %v", lvl)
	}
	if units[1].Kind != KindParagraph {
		t.Fatalf("expected paragraph second, got %q", units[1].Kind)
	}
	if units[1].RawText != "Body line" {
		t.Errorf("expected paragraph %q, got %q", "Body line", units[1].RawText)
	}
}

func TestMarkdown_HeadingFlushesSection(t *testing.T) {
	s := New(nil)
	units := s.Markdown("intro text\n\n## Section\n\nmore text\n")

	kinds := make([]Kind, 0, len(units))
	for _, u := range units {
		kinds = append(kinds, u.Kind)
	}
	want := []Kind{KindParagraph, KindHeading, KindParagraph}
	if !reflect.DeepEqual(kinds, want) {
		t.Fatalf("expected kinds %v, got %v", want, kinds)
	}
	if lvl := units[1].Fields["level"]; lvl != 2 {
		t.Errorf("expected level 2, got %v", lvl)
	}
}

func TestMarkdown_FencedCodeBlock(t *testing.T) {
	s := New(nil)
	units := s.Markdown("```go\nfmt.Println(\"hi\")\n```\n")

	if len(units) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(units))
	}
	if units[0].Kind != KindCodeBlock {
		t.Fatalf("expected code_block, got %q", units[0].Kind)
	}
	if lang := units[0].Fields["language"]; lang != "go" {
		t.Errorf("expected language go, got %v", lang)
	}
	if units[0].RawText != `fmt.Println("hi")` {
		t.Errorf("unexpected code text %q", units[0].RawText)
	}
}

func TestMarkdown_MultiLineCodeBlock(t *testing.T) {
	s := New(nil)
	units := s.Markdown("```\nline one\nline two\n```\n")

	if len(units) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(units))
	}
	if units[0].RawText != "line one\nline two" {
		t.Errorf("unexpected code text %q", units[0].RawText)
	}
}

func TestMarkdown_ListAccumulates(t *testing.T) {
	s := New(nil)
	units := s.Markdown("- first item\n- second item\n")

	if len(units) != 1 {
		t.Fatalf("expected 1 unit, got %d: %+v", len(units), units)
	}
	if units[0].Kind != KindParagraph {
		t.Fatalf("expected paragraph, got %q", units[0].Kind)
	}
	if units[0].RawText != "first item\nsecond item" {
		t.Errorf("unexpected list text %q", units[0].RawText)
	}
}

func TestCSV_HeaderAndData(t *testing.T) {
	s := New(nil)
	units, err := s.CSV("month,revenue\nJan,100\nFeb,200\nMar,300\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(units))
	}

	header := units[0]
	if header.Kind != KindTableHeader {
		t.Fatalf("expected table_header, got %q", header.Kind)
	}
	if header.RawText != "month, revenue" {
		t.Errorf("unexpected header text %q", header.RawText)
	}
	if cc := header.Fields["column_count"]; cc != 2 {
		t.Errorf("expected column_count=2, got %v", cc)
	}

	data := units[1]
	if data.Kind != KindTableData {
		t.Fatalf("expected table_data, got %q", data.Kind)
	}
	if rc := data.Fields["row_count"]; rc != 3 {
		t.Errorf("expected row_count=3, got %v", rc)
	}

	stats, ok := data.Fields["statistics"].(map[string]ColumnStats)
	if !ok {
		t.Fatalf("expected column statistics, got %T", data.Fields["statistics"])
	}
	if _, found := stats["month"]; found {
		t.Error("expected non-numeric column to be excluded from statistics")
	}
	rev, found := stats["revenue"]
	if !found {
		t.Fatal("expected statistics for revenue column")
	}
	if rev.Min != 100 || rev.Max != 300 || rev.Mean != 200 || rev.Count != 3 {
		t.Errorf("unexpected revenue stats %+v", rev)
	}
}

func TestCSV_EmptyInput(t *testing.T) {
	s := New(nil)
	units, err := s.CSV("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(units) != 0 {
		t.Errorf("expected no units, got %d", len(units))
	}
}

func TestSegment_ModeDispatch(t *testing.T) {
	s := New(nil)
	units, err := s.Segment("hello world", ModePlain)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(units) != 1 || units[0].Kind != KindParagraph {
		t.Fatalf("unexpected units %+v", units)
	}

	if _, err := s.Segment("x", Mode(99)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat for unknown mode, got %v", err)
	}
}
