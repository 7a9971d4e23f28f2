// Package export serializes generated points to the import file and
// optionally publishes the artifact to S3-compatible storage.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hyperengineering/packvec/internal/types"
)

// Write serializes the export document as indented JSON to path, creating
// parent directories as needed and replacing any existing file. Returns
// the size of the written file in bytes.
func Write(path string, exp types.Export) (int64, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("creating output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(exp); err != nil {
		return 0, fmt.Errorf("writing output file: %w", err)
	}

	// Close explicitly so a flush failure surfaces as a write error
	// rather than being swallowed by the deferred close.
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("writing output file: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat output file: %w", err)
	}
	return info.Size(), nil
}
