package document

import (
	"io"
)

// MarkdownReader handles markdown and plain-text quote files. The text
// already carries the conventions the extractor needs, so it passes
// through untouched — which is also what keeps the in-place rewrite
// byte-faithful outside the summary block.
type MarkdownReader struct{}

func (p *MarkdownReader) Read(r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
