// Package changelog maintains the plain-text changelog in the workspace.
package changelog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Update prepends an entry for the version to the changelog file under dir,
// creating the file if it does not exist yet.
func Update(dir, filename, version, title string) error {
	path := filepath.Join(dir, filename)

	existing, err := os.ReadFile(path) //nolint:gosec // Path is from configuration
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read changelog: %w", err)
	}

	entry := Entry(version, title)
	content := entry
	if len(existing) > 0 {
		content += string(existing)
	}

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write changelog: %w", err)
	}

	return nil
}

// Entry renders a single changelog entry for the version.
func Entry(version, title string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "v%s\n", version)
	fmt.Fprintf(&b, "- %s\n\n", title)
	return b.String()
}
