package lastupdated

import (
	"fmt"
	"os"
	"path/filepath"

	"courtlinks/internal/components/chrono"
)

// Line renders the refresh marker shown by the lookup front-end,
// ex. "Síðast uppfært 15. maí 2025."
func Line(clock chrono.API) string {
	return fmt.Sprintf("Síðast uppfært %s.", chrono.FormatIcelandicDate(clock.Now()))
}

// Write replaces the file at path with the refresh marker.
func Write(path string, clock chrono.API) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create last updated dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(Line(clock)), 0o644); err != nil {
		return fmt.Errorf("write last updated: %w", err)
	}
	return nil
}
