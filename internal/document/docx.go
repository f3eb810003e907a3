package document

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fumiama/go-docx"
)

// DOCXReader handles .docx quotes. Heading-styled paragraphs come back
// as hash-prefixed lines and "Stima ore:" paragraphs regain their bold
// prefix.
type DOCXReader struct{}

func (p *DOCXReader) Read(r io.Reader, filename string) (string, error) {
	// go-docx needs a ReadSeeker+size, so write to temp file.
	tmp, err := os.CreateTemp("", "stima-docx-*.docx")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return "", fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, size)
	tmp.Close()
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}

	var b strings.Builder
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}

		text := paragraphText(para)
		if text == "" {
			continue
		}

		if level := docxHeadingLevel(para); level > 0 {
			fmt.Fprintf(&b, "%s %s\n\n", strings.Repeat("#", level), text)
			continue
		}
		if line, ok := estimateLine(text); ok {
			text = line
		}
		b.WriteString(text + "\n\n")
	}

	return b.String(), nil
}

func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := para.Properties.Style.Val
	for level, names := range [...][2]string{
		{"Heading1", "heading 1"},
		{"Heading2", "heading 2"},
		{"Heading3", "heading 3"},
		{"Heading4", "heading 4"},
		{"Heading5", "heading 5"},
		{"Heading6", "heading 6"},
	} {
		if strings.EqualFold(style, names[0]) || strings.EqualFold(style, names[1]) {
			return level + 1
		}
	}
	return 0
}

func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
