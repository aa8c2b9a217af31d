// Package analyzer wires the segmentation, extraction, layering and
// compression stages into a single document analysis pass.
package analyzer

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/docsense/docsense/internal/compress"
	"github.com/docsense/docsense/internal/keyelem"
	"github.com/docsense/docsense/internal/segment"
	"github.com/docsense/docsense/internal/semantic"
	"github.com/docsense/docsense/internal/vocab"
)

// Analyzer runs the full pipeline over one in-memory document. It holds
// only read-only vocabulary-derived components, so a single instance is safe
// for concurrent use across documents.
type Analyzer struct {
	segmenter  *segment.Segmenter
	extractor  *keyelem.Extractor
	layerer    *semantic.Layerer
	compressor *compress.Compressor
}

// New builds an Analyzer over the given vocabulary tables.
func New(v *vocab.Vocabulary) *Analyzer {
	return &Analyzer{
		segmenter:  segment.New(func(text string) any { return keyelem.Scan(text) }),
		extractor:  keyelem.New(v),
		layerer:    semantic.New(v),
		compressor: compress.New(v),
	}
}

// FileInfo describes the analyzed input.
type FileInfo struct {
	Filename string `json:"filename"`
	Format   string `json:"format"`
}

// CoreArgument is one reported core argument, truncated for the boundary.
type CoreArgument struct {
	Content  string   `json:"content"`
	Score    float64  `json:"score"`
	Keywords []string `json:"keywords"`
}

// StructureReport is the boundary view of the semantic structure: at most
// three core arguments, five keywords each.
type StructureReport struct {
	Type          string         `json:"type"`
	CoreArguments []CoreArgument `json:"core_arguments"`
	Summary       string         `json:"summary"`
}

// CompressionReport is the boundary view of the compression outcome: full
// accounting, at most five key sentences.
type CompressionReport struct {
	OriginalLength   int      `json:"original_length"`
	CompressedLength int      `json:"compressed_length"`
	CompressionRatio float64  `json:"compression_ratio"`
	KeySentences     []string `json:"key_sentences"`
}

// Result is the aggregate produced for one document.
type Result struct {
	Timestamp    time.Time             `json:"timestamp"`
	FileInfo     FileInfo              `json:"file_info"`
	ContentUnits int                   `json:"content_units"`
	Units        []segment.ContentUnit `json:"units,omitempty"`
	KeyElements  map[string]int        `json:"key_elements"`
	Structure    StructureReport       `json:"semantic_structure"`
	Compression  CompressionReport     `json:"compression"`
}

// Analyze segments text according to the filename's extension hint, then
// runs key-element extraction, semantic layering and compression. The
// layering and compression branches only read the shared text, so they run
// concurrently.
func (a *Analyzer) Analyze(text, filename string) (*Result, error) {
	mode, err := segment.ModeForExtension(filepath.Ext(filename))
	if err != nil {
		return nil, err
	}

	units, err := a.segmenter.Segment(text, mode)
	if err != nil {
		return nil, err
	}

	joined := joinUnits(units)
	elements := a.extractor.Extract(joined)

	var (
		structure *semantic.Structure
		comp      compress.Result
		wg        sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		structure = a.layerer.Extract(joined)
	}()
	go func() {
		defer wg.Done()
		comp = a.compressor.Compress(joined)
	}()
	wg.Wait()

	counts := make(map[string]int, len(elements))
	for elementType, found := range elements {
		counts[string(elementType)] = len(found)
	}

	return &Result{
		Timestamp:    time.Now().UTC(),
		FileInfo:     FileInfo{Filename: filepath.Base(filename), Format: formatName(mode)},
		ContentUnits: len(units),
		Units:        units,
		KeyElements:  counts,
		Structure:    structureReport(structure),
		Compression:  compressionReport(comp),
	}, nil
}

// joinUnits concatenates the raw text of all units with single spaces, the
// flattened view all document-level stages operate on.
func joinUnits(units []segment.ContentUnit) string {
	parts := make([]string, 0, len(units))
	for _, u := range units {
		if u.RawText != "" {
			parts = append(parts, u.RawText)
		}
	}
	return strings.Join(parts, " ")
}

func structureReport(s *semantic.Structure) StructureReport {
	report := StructureReport{
		Type:          s.StructureType,
		CoreArguments: []CoreArgument{},
		Summary:       s.Summary,
	}
	for _, layer := range s.CoreArguments {
		if len(report.CoreArguments) == 3 {
			break
		}
		content := layer.Content
		if runes := []rune(content); len(runes) > 200 {
			content = string(runes[:200]) + "..."
		}
		keywords := layer.Keywords
		if len(keywords) > 5 {
			keywords = keywords[:5]
		}
		report.CoreArguments = append(report.CoreArguments, CoreArgument{
			Content:  content,
			Score:    layer.Importance,
			Keywords: keywords,
		})
	}
	return report
}

func compressionReport(c compress.Result) CompressionReport {
	report := CompressionReport{
		OriginalLength:   c.OriginalLength,
		CompressedLength: c.CompressedLength,
		CompressionRatio: c.CompressionRatio,
		KeySentences:     []string{},
	}
	for _, s := range c.KeySentences {
		if len(report.KeySentences) == 5 {
			break
		}
		report.KeySentences = append(report.KeySentences, s.Text)
	}
	return report
}

func formatName(mode segment.Mode) string {
	switch mode {
	case segment.ModeMarkdown:
		return "markdown"
	case segment.ModeCSV:
		return "csv"
	default:
		return "text"
	}
}
