package document

import (
	"strings"
	"testing"
)

func TestForFile_SelectsReader(t *testing.T) {
	cases := []struct {
		filename string
		want     string
	}{
		{"preventivo.md", "*document.MarkdownReader"},
		{"preventivo.markdown", "*document.MarkdownReader"},
		{"preventivo.txt", "*document.MarkdownReader"},
		{"fasi.csv", "*document.CSVReader"},
		{"preventivo.html", "*document.HTMLReader"},
		{"preventivo.PDF", "*document.PDFReader"},
		{"preventivo.docx", "*document.DOCXReader"},
	}
	for _, c := range cases {
		r, err := ForFile(c.filename)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", c.filename, err)
			continue
		}
		if got := typeName(r); got != c.want {
			t.Errorf("%s: expected %s, got %s", c.filename, c.want, got)
		}
	}
}

func typeName(v interface{}) string {
	switch v.(type) {
	case *MarkdownReader:
		return "*document.MarkdownReader"
	case *CSVReader:
		return "*document.CSVReader"
	case *HTMLReader:
		return "*document.HTMLReader"
	case *PDFReader:
		return "*document.PDFReader"
	case *DOCXReader:
		return "*document.DOCXReader"
	}
	return "unknown"
}

func TestForFile_UnsupportedExtension(t *testing.T) {
	if _, err := ForFile("preventivo.xlsx"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestRewritable(t *testing.T) {
	cases := []struct {
		filename string
		want     bool
	}{
		{"preventivo.md", true},
		{"preventivo.markdown", true},
		{"note.txt", true},
		{"fasi.csv", false},
		{"preventivo.html", false},
		{"preventivo.pdf", false},
		{"preventivo.docx", false},
	}
	for _, c := range cases {
		if got := Rewritable(c.filename); got != c.want {
			t.Errorf("Rewritable(%q): expected %v, got %v", c.filename, c.want, got)
		}
	}
}

func TestMarkdownReader_Passthrough(t *testing.T) {
	input := "# Preventivo\n\n### Analisi\n\n**Stima ore**: 10-15 ore\n"
	p := &MarkdownReader{}
	got, err := p.Read(strings.NewReader(input), "preventivo.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != input {
		t.Errorf("markdown must pass through unchanged, got %q", got)
	}
}
