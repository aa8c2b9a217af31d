package segment

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Markdown segments markdown text. Headings terminate the accumulating
// section immediately and are emitted as standalone heading units carrying
// their level; fenced and indented code become code_block units; every other
// block accumulates into the current section, flushed as a paragraph unit.
func (s *Segmenter) Markdown(src string) []ContentUnit {
	source := []byte(src)
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	var units []ContentUnit
	var buf bytes.Buffer

	flush := func() {
		t := strings.TrimSpace(buf.String())
		buf.Reset()
		if t != "" {
			units = append(units, s.paragraphUnit(t, len(units)))
		}
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			flush()
			title := string(node.Text(source))
			units = append(units, ContentUnit{
				Kind:    KindHeading,
				RawText: title,
				Fields: map[string]any{
					"level": node.Level,
					"text":  title,
				},
				Index: len(units),
			})

		case *ast.FencedCodeBlock:
			flush()
			units = append(units, ContentUnit{
				Kind:    KindCodeBlock,
				RawText: blockLines(node, source),
				Fields: map[string]any{
					"language": string(node.Language(source)),
				},
				Index: len(units),
			})

		case *ast.CodeBlock:
			flush()
			units = append(units, ContentUnit{
				Kind:    KindCodeBlock,
				RawText: blockLines(node, source),
				Index:   len(units),
			})

		default:
			if t := blockText(n, source); t != "" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
				buf.WriteString(t)
			}
		}
	}
	flush()

	return units
}

// blockLines returns the raw source lines of a block node.
func blockLines(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(source))
	}
	return strings.TrimRight(buf.String(), "\n")
}

// blockText collects the text content of a block node. Leaf blocks yield
// their source lines; container blocks (lists, quotes) recurse into their
// block children.
func blockText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(source))
		}
		return strings.TrimSpace(buf.String())
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Type() != ast.TypeBlock {
			continue
		}
		if t := blockText(c, source); t != "" {
			if buf.Len() > 0 {
				buf.WriteByte('\n')
			}
			buf.WriteString(t)
		}
	}
	return strings.TrimSpace(buf.String())
}
