// Package rewrite places a rendered summary block into a quote document.
package rewrite

import (
	"strings"

	"github.com/apalumbo/stima/internal/render"
)

// ApplyOrAppend returns the document with the summary in place. If a
// previously generated block is found (either mode's marker), the
// document is truncated at the marker and the fresh summary takes its
// place; otherwise the summary is appended after a blank line. Exactly
// one of the two paths runs, so repeated runs converge on the same text.
func ApplyOrAppend(original, summary string) string {
	for _, marker := range []string{render.RangeMarker, render.FinalMarker} {
		if i := strings.Index(original, marker); i >= 0 {
			return original[:i] + summary
		}
	}
	return strings.TrimRight(original, " \t\n") + "\n\n" + summary
}
