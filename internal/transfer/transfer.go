// Package transfer moves profiles in and out of the app as portable
// JSON files: export writes a dated backup, import runs the document
// through the same normalization path as a remote or on-disk load.
package transfer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hrzp/dayforge/internal/migrate"
	"github.com/hrzp/dayforge/internal/model"
)

// backupPattern names exported files by export date.
const backupPattern = "dayforge-backup-%s.json"

// Export writes the profile to dir as an indented JSON backup named
// after today's date, overwriting a same-day export. Returns the full
// path of the written file.
func Export(p *model.Profile, dir, today string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding profile: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf(backupPattern, today))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("writing backup: %w", err)
	}

	return path, nil
}

// Import reads a backup file and normalizes it into a usable profile.
// Old exports with legacy field shapes are upgraded the same way a
// legacy on-disk document would be. A malformed file fails without
// side effects; the caller decides whether to replace current state.
func Import(path string) (*model.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading backup: %w", err)
	}

	p, err := migrate.Apply(data)
	if err != nil {
		return nil, fmt.Errorf("importing %s: %w", filepath.Base(path), err)
	}

	return p, nil
}
