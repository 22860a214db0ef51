// =============================================================================
// Availability Model Translator - File Utilities
// =============================================================================
//
// Shared filesystem helpers used by the pipeline driver and the CLI:
// destination preparation and error-log writing. Kept under pkg/ so that
// applications embedding the translator can reuse them.
//
// =============================================================================

package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// EnsureDir creates the directory (and any parents) if it does not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// DirExists reports whether path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// WriteErrorLog writes the accumulated error text to a log file placed next
// to the output artifact. The name carries a timestamp and a short run
// identifier so that repeated runs never overwrite each other's logs.
//
// Returns the path of the written log.
func WriteErrorLog(outputPath, runID, content string) (string, error) {
	dir := filepath.Dir(outputPath)
	if err := EnsureDir(dir); err != nil {
		return "", err
	}
	short := runID
	if len(short) > 8 {
		short = short[:8]
	}
	if short == "" {
		short = uuid.New().String()[:8]
	}
	name := fmt.Sprintf("errors_%s_%s.log", time.Now().Format("20060102_150405"), short)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("failed to write error log %s: %w", path, err)
	}
	return path, nil
}
