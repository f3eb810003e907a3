// Package clipboard wraps the system clipboard. Failures here are
// warnings for callers, never fatal: a headless machine without a
// clipboard backend must not break the run.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Copy places text on the system clipboard.
func Copy(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard backend available (install xclip or xsel)")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}
