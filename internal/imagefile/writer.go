// Package imagefile persists generated image bytes.
package imagefile

import (
	"fmt"
	"os"
	"path/filepath"
)

// Write stores data at path, creating parent directories as needed, and
// returns the absolute path of the written file. The file is truncated and
// written in place, so a failed write can leave a partial file behind.
func Write(path string, data []byte) (absPath string, err error) {
	absPath, err = filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve output path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return "", fmt.Errorf("failed to write output file: %w", err)
	}

	return absPath, nil
}
