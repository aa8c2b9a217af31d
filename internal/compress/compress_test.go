package compress

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/docsense/docsense/internal/vocab"
)

func newTestCompressor() *Compressor {
	return New(vocab.Default())
}

func TestCompress_EmptyInput(t *testing.T) {
	c := newTestCompressor()
	result := c.Compress("")

	if result.OriginalLength != 0 || result.CompressedLength != 0 {
		t.Errorf("expected zero lengths, got %+v", result)
	}
	if result.CompressionRatio != 0 {
		t.Errorf("expected ratio 0, got %v", result.CompressionRatio)
	}
	if result.KeySentences == nil || result.RemovedContentTypes == nil {
		t.Error("expected non-nil slices in zero result")
	}
}

func TestCompress_FiltersAndReportsReasons(t *testing.T) {
	c := newTestCompressor()
	keep := "Therefore the revenue grew by 42% across all regions this year."
	text := keep +
		" Buy now and click here for a limited offer today please." +
		" " + keep +
		" Tiny one."
	result := c.Compress(text)

	if len(result.KeySentences) != 1 {
		t.Fatalf("expected 1 key sentence, got %d: %+v", len(result.KeySentences), result.KeySentences)
	}
	if result.KeySentences[0].Text != keep {
		t.Errorf("expected key sentence %q, got %q", keep, result.KeySentences[0].Text)
	}

	want := []string{RemovedCommercial, RemovedTooShort}
	if !reflect.DeepEqual(result.RemovedContentTypes, want) {
		t.Errorf("expected removal reasons %v, got %v", want, result.RemovedContentTypes)
	}

	if result.OriginalLength != utf8.RuneCountInString(text) {
		t.Errorf("expected original length %d, got %d",
			utf8.RuneCountInString(text), result.OriginalLength)
	}
	if result.CompressedLength != utf8.RuneCountInString(keep) {
		t.Errorf("expected compressed length %d, got %d",
			utf8.RuneCountInString(keep), result.CompressedLength)
	}
	if result.CompressionRatio <= 0 || result.CompressionRatio >= 1 {
		t.Errorf("expected ratio in (0,1), got %v", result.CompressionRatio)
	}
}

func TestCompress_CommercialChineseExcluded(t *testing.T) {
	c := newTestCompressor()
	result := c.Compress("立即購買，限時優惠！ 因此我們的營收在今年顯著成長了至少百分之四十以上。")

	for _, s := range result.KeySentences {
		if strings.Contains(s.Text, "立即購買") {
			t.Errorf("expected commercial sentence to be dropped, kept %q", s.Text)
		}
	}
	found := false
	for _, reason := range result.RemovedContentTypes {
		if reason == RemovedCommercial {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %q among removal reasons, got %v", RemovedCommercial, result.RemovedContentTypes)
	}
}

func TestScore_Components(t *testing.T) {
	c := newTestCompressor()
	sentences := []string{
		"one two three four five six seven eight nine ten.", // moderate length, first two
		"short words only here now.",                        // acceptable length, first two
		"x",
		"therefore numbers like 42 matter a great deal in the middle of documents.",
		"closing line with digit 7 here.",
	}
	scored := c.score(sentences)

	// 10 words (+2), position (+1).
	if scored[0].Score != 3 {
		t.Errorf("sentence 0: expected score 3, got %d", scored[0].Score)
	}
	// 5 words (+1), position (+1).
	if scored[1].Score != 2 {
		t.Errorf("sentence 1: expected score 2, got %d", scored[1].Score)
	}
	// 1 word, no digits, no markers, middle position.
	if scored[2].Score != 0 {
		t.Errorf("sentence 2: expected score 0, got %d", scored[2].Score)
	}
	// 12 words (+2), digit (+2), core marker (+3), last two (+1).
	if scored[3].Score != 8 {
		t.Errorf("sentence 3: expected score 8, got %d", scored[3].Score)
	}
	// 6 words (+1), digit (+2), last two (+1).
	if scored[4].Score != 4 {
		t.Errorf("sentence 4: expected score 4, got %d", scored[4].Score)
	}
}

func TestDedupe_FirstSeenWins(t *testing.T) {
	got := dedupe([]ScoredSentence{
		{Index: 0, Text: "Hello World.", Score: 1},
		{Index: 1, Text: "hello  world", Score: 9},
		{Index: 2, Text: "Different text.", Score: 1},
	})
	if len(got) != 2 {
		t.Fatalf("expected 2 sentences after dedupe, got %d", len(got))
	}
	if got[0].Index != 0 {
		t.Errorf("expected first occurrence kept, got index %d", got[0].Index)
	}
}

func TestFilter_SortedByScoreDescending(t *testing.T) {
	c := newTestCompressor()
	text := "Plain words fill the opening sentence of this document nicely here." +
		" Therefore revenue grew 42% which is a significant improvement over last year overall." +
		" Another plain sentence sits near the end with enough words to pass."
	result := c.Compress(text)

	if len(result.KeySentences) < 2 {
		t.Fatalf("expected multiple key sentences, got %d", len(result.KeySentences))
	}
	for i := 1; i < len(result.KeySentences); i++ {
		if result.KeySentences[i].Score > result.KeySentences[i-1].Score {
			t.Errorf("expected descending scores, got %d before %d",
				result.KeySentences[i-1].Score, result.KeySentences[i].Score)
		}
	}
	if !strings.HasPrefix(result.KeySentences[0].Text, "Therefore") {
		t.Errorf("expected the marker sentence ranked first, got %q", result.KeySentences[0].Text)
	}
}
