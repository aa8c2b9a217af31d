// Package ingest turns raw uploaded bytes into clean UTF-8 text for the
// segmenter: an explicit ordered chain of decoding strategies, plus HTML
// tag stripping for web content.
package ingest

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// strategy is one candidate decoding. Strategies are tried in order; the
// first to report ok wins. This replaces an implicit try/except fallback
// chain with an explicit, inspectable sequence.
type strategy struct {
	name   string
	decode func(data []byte) (string, bool)
}

var strategies = []strategy{
	{"utf-8-bom", decodeUTF8BOM},
	{"utf-16", decodeUTF16BOM},
	{"utf-8", decodeUTF8},
	{"big5", decoderFor(traditionalchinese.Big5)},
	// Windows-1252 maps every byte, so the chain is total.
	{"windows-1252", decoderFor(charmap.Windows1252)},
}

// Decode converts raw bytes to text, reporting which encoding matched.
// It cannot fail: the final strategy accepts arbitrary bytes.
func Decode(data []byte) (text string, encodingName string) {
	for _, s := range strategies {
		if out, ok := s.decode(data); ok {
			return out, s.name
		}
	}
	// Unreachable while the chain ends in a total decoder.
	return string(data), "utf-8"
}

func decodeUTF8(data []byte) (string, bool) {
	if !utf8.Valid(data) {
		return "", false
	}
	return string(data), true
}

func decodeUTF8BOM(data []byte) (string, bool) {
	bom := []byte{0xEF, 0xBB, 0xBF}
	if !bytes.HasPrefix(data, bom) {
		return "", false
	}
	return decodeUTF8(data[len(bom):])
}

func decodeUTF16BOM(data []byte) (string, bool) {
	if len(data) < 2 {
		return "", false
	}
	hasBOM := (data[0] == 0xFF && data[1] == 0xFE) || (data[0] == 0xFE && data[1] == 0xFF)
	if !hasBOM {
		return "", false
	}
	dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	out, err := dec.Bytes(data)
	if err != nil {
		return "", false
	}
	return string(out), true
}

// decoderFor adapts an x/text encoding into a strategy func. A decoding
// counts as failed when it produced replacement runes, since legacy decoders
// substitute rather than error on bytes outside their repertoire.
func decoderFor(enc encoding.Encoding) func(data []byte) (string, bool) {
	return func(data []byte) (string, bool) {
		out, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			return "", false
		}
		text := string(out)
		if strings.ContainsRune(text, utf8.RuneError) {
			return "", false
		}
		return text, true
	}
}
