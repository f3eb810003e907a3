// Package document reads quote files of several formats and normalizes
// them to the markdown conventions the phase extractor understands
// (### headings and **Stima ore**: lines).
package document

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Reader extracts the markdown-convention text of a quote document.
type Reader interface {
	Read(r io.Reader, filename string) (string, error)
}

// SupportedExtensions lists the input formats the tool can read.
var SupportedExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".txt":      true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the reader for a filename.
func ForFile(filename string) (Reader, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown", ".txt":
		return &MarkdownReader{}, nil
	case ".csv":
		return &CSVReader{}, nil
	case ".html", ".htm":
		return &HTMLReader{}, nil
	case ".pdf":
		return &PDFReader{FallbackPdftotext: true}, nil
	case ".docx":
		return &DOCXReader{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", filepath.Ext(filename))
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Rewritable reports whether the summary can be written back into the
// source file. Only plain-text markdown sources qualify; binary or
// derived formats degrade to stdout, output file and clipboard.
func Rewritable(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown", ".txt":
		return true
	}
	return false
}

// estimateLine rebuilds the canonical estimate line from a paragraph
// that lost its bold markers on the way through another format.
func estimateLine(text string) (string, bool) {
	rest, ok := strings.CutPrefix(text, "Stima ore:")
	if !ok {
		return "", false
	}
	return "**Stima ore**:" + rest, true
}
