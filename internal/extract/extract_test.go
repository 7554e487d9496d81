package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"testing"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Ada Lovelace</w:t></w:r></w:p>
<w:p><w:r><w:t>Analytical Engine</w:t><w:tab/><w:t>1843</w:t></w:r></w:p>
</w:body>
</w:document>`

const documentRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip entry: %v", err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("write zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func buildDocx(t *testing.T) []byte {
	return buildZip(t, map[string]string{
		"word/document.xml":            documentXML,
		"word/_rels/document.xml.rels": documentRels,
	})
}

func TestExtractTextFromBytes_Docx(t *testing.T) {
	text, err := ExtractTextFromBytes(context.Background(), buildDocx(t), MimeDOCX, "cv.docx")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if text != "Ada Lovelace\nAnalytical Engine\t1843" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestExtractTextFromBytes_DocxWithoutRels(t *testing.T) {
	data := buildZip(t, map[string]string{"word/document.xml": documentXML})
	text, err := ExtractTextFromBytes(context.Background(), data, "application/zip", "cv.docx")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if text == "" {
		t.Fatal("expected text from fallback reader")
	}
}

func TestExtractTextFromBytes_RealZipRejected(t *testing.T) {
	data := buildZip(t, map[string]string{"notes.txt": "hello"})
	_, err := ExtractTextFromBytes(context.Background(), data, "application/zip", "notes.zip")
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestNormalizeMimeType(t *testing.T) {
	docx := buildDocx(t)
	cases := []struct {
		name     string
		mime     string
		file     string
		data     []byte
		expected string
	}{
		{"declared pdf with params", "application/pdf; charset=binary", "a", nil, MimePDF},
		{"octet stream pdf magic", "application/octet-stream", "blob", []byte("%PDF-1.7"), MimePDF},
		{"octet stream docx zip", "", "blob", docx, MimeDOCX},
		{"octet stream by extension", "binary/octet-stream", "cv.PDF", []byte("??"), MimePDF},
		{"plain text", "text/plain", "cv.txt", []byte("hi"), "text/plain"},
	}
	for _, tc := range cases {
		if got := NormalizeMimeType(tc.mime, tc.file, tc.data); got != tc.expected {
			t.Fatalf("%s: got %q want %q", tc.name, got, tc.expected)
		}
	}
}

func TestStripDocxXMLMalformedReturnsRaw(t *testing.T) {
	if got := stripDocxXML("<w:p>unterminated"); got != "<w:p>unterminated" {
		t.Fatalf("unexpected %q", got)
	}
}
