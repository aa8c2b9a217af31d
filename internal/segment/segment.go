// Package segment splits raw text into typed content units, paragraphs and
// sentences. It is the first stage of the analysis pipeline; everything
// downstream consumes its output.
package segment

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrUnsupportedFormat is returned when a file-extension hint does not match
// any known segmentation mode.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Mode selects how raw text is segmented into content units.
type Mode int

const (
	ModePlain Mode = iota
	ModeMarkdown
	ModeCSV
)

// ModeForExtension maps a file-extension hint (with leading dot) to a
// segmentation mode.
func ModeForExtension(ext string) (Mode, error) {
	switch strings.ToLower(ext) {
	case ".txt", ".log", ".text":
		return ModePlain, nil
	case ".md", ".markdown":
		return ModeMarkdown, nil
	case ".csv":
		return ModeCSV, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Annotator produces generic element annotations for a paragraph of text.
// The segmenter attaches whatever it returns under the "key_elements" field;
// it is injected so this package stays independent of the extraction rules.
type Annotator func(text string) any

// Segmenter produces ContentUnit sequences from raw text.
type Segmenter struct {
	annotate Annotator
}

// New creates a Segmenter. annotate may be nil, in which case paragraph
// units carry only word and character counts.
func New(annotate Annotator) *Segmenter {
	return &Segmenter{annotate: annotate}
}

// Segment splits text according to mode.
func (s *Segmenter) Segment(text string, mode Mode) ([]ContentUnit, error) {
	switch mode {
	case ModePlain:
		return s.Plain(text), nil
	case ModeMarkdown:
		return s.Markdown(text), nil
	case ModeCSV:
		return s.CSV(text)
	default:
		return nil, fmt.Errorf("%w: mode %d", ErrUnsupportedFormat, mode)
	}
}

// Plain segments blank-line-delimited text: one paragraph unit per
// non-empty paragraph, annotated with counts and generic elements.
func (s *Segmenter) Plain(text string) []ContentUnit {
	paragraphs := SplitParagraphs(text)
	units := make([]ContentUnit, 0, len(paragraphs))
	for _, p := range paragraphs {
		units = append(units, s.paragraphUnit(p, len(units)))
	}
	return units
}

// CSV segments delimited tabular text: the first row becomes a table_header
// unit, the remaining rows one table_data unit with per-column numeric
// statistics.
func (s *Segmenter) CSV(text string) ([]ContentUnit, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	headers := records[0]
	units := []ContentUnit{{
		Kind:    KindTableHeader,
		RawText: strings.Join(headers, ", "),
		Fields: map[string]any{
			"headers":      headers,
			"column_count": len(headers),
		},
		Index: 0,
	}}

	rows := records[1:]
	var raw strings.Builder
	for i, row := range rows {
		if i > 0 {
			raw.WriteString("\n")
		}
		raw.WriteString(strings.Join(row, ", "))
	}
	units = append(units, ContentUnit{
		Kind:    KindTableData,
		RawText: raw.String(),
		Fields: map[string]any{
			"rows":       rows,
			"row_count":  len(rows),
			"statistics": columnStatistics(headers, rows),
		},
		Index: 1,
	})
	return units, nil
}

// columnStatistics computes min/max/mean/count per column over values that
// parse as floating-point numbers. Non-numeric columns are excluded.
func columnStatistics(headers []string, rows [][]string) map[string]ColumnStats {
	stats := make(map[string]ColumnStats)
	for col, header := range headers {
		var values []float64
		for _, row := range rows {
			if col >= len(row) {
				continue
			}
			if v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64); err == nil {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			continue
		}
		cs := ColumnStats{Min: values[0], Max: values[0], Count: len(values)}
		var sum float64
		for _, v := range values {
			if v < cs.Min {
				cs.Min = v
			}
			if v > cs.Max {
				cs.Max = v
			}
			sum += v
		}
		cs.Mean = sum / float64(len(values))
		stats[header] = cs
	}
	return stats
}

func (s *Segmenter) paragraphUnit(text string, index int) ContentUnit {
	fields := map[string]any{
		"word_count": len(strings.Fields(text)),
		"char_count": utf8.RuneCountInString(text),
	}
	if s.annotate != nil {
		fields["key_elements"] = s.annotate(text)
	}
	return ContentUnit{
		Kind:    KindParagraph,
		RawText: text,
		Fields:  fields,
		Index:   index,
	}
}
