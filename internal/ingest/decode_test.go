package ingest

import (
	"testing"

	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

func TestDecode_UTF8(t *testing.T) {
	text, name := Decode([]byte("plain ascii and 中文"))
	if name != "utf-8" {
		t.Errorf("expected encoding utf-8, got %q", name)
	}
	if text != "plain ascii and 中文" {
		t.Errorf("unexpected text %q", text)
	}
}

func TestDecode_UTF8BOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("hello")...)
	text, name := Decode(data)
	if name != "utf-8-bom" {
		t.Errorf("expected encoding utf-8-bom, got %q", name)
	}
	if text != "hello" {
		t.Errorf("expected BOM stripped, got %q", text)
	}
}

func TestDecode_UTF16(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	data, err := enc.Bytes([]byte("營收成長"))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	text, name := Decode(data)
	if name != "utf-16" {
		t.Errorf("expected encoding utf-16, got %q", name)
	}
	if text != "營收成長" {
		t.Errorf("unexpected text %q", text)
	}
}

func TestDecode_Big5(t *testing.T) {
	enc := traditionalchinese.Big5.NewEncoder()
	data, err := enc.Bytes([]byte("中文測試"))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	text, name := Decode(data)
	if name != "big5" {
		t.Errorf("expected encoding big5, got %q", name)
	}
	if text != "中文測試" {
		t.Errorf("unexpected text %q", text)
	}
}

func TestDecode_Windows1252Fallback(t *testing.T) {
	// 0xE9 is é in Windows-1252, invalid standalone UTF-8, and a truncated
	// Big5 lead byte, so only the final strategy accepts it.
	data := []byte{'c', 'a', 'f', 0xE9}
	text, name := Decode(data)
	if name != "windows-1252" {
		t.Fatalf("expected windows-1252, got %q", name)
	}
	if text != "café" {
		t.Errorf("expected café, got %q", text)
	}
}

func TestDecode_NeverFails(t *testing.T) {
	// Arbitrary bytes must decode through the chain's total fallback.
	data := []byte{0xFF, 0x00, 0xFE, 0x41}
	text, name := Decode(data)
	if name == "" {
		t.Error("expected an encoding name")
	}
	if text == "" {
		t.Error("expected non-empty text for non-empty input")
	}
}
