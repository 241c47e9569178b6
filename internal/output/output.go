package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Unique builds a timestamped filename: <prefix>_<ts>.<ext>.
func Unique(prefix, ext string, ts int64) string {
	return fmt.Sprintf("%s_%d.%s", prefix, ts, ext)
}

// UniqueSeeded builds a timestamped filename carrying the generation seed:
// <prefix>_<seed>_<ts>.<ext>.
func UniqueSeeded(prefix, ext string, seed, ts int64) string {
	return fmt.Sprintf("%s_%d_%d.%s", prefix, seed, ts, ext)
}

// Derived names the output of an operation on an existing file after its
// source: <op>_<stem>_<seed>.<ext>.
func Derived(op, sourcePath string, seed int64, ext string) string {
	stem := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	return fmt.Sprintf("%s_%s_%d.%s", op, stem, seed, ext)
}

// Write persists an artifact under dir and returns its full path. A
// filesystem error is terminal; there is no retry.
func Write(dir, name string, data []byte) (string, error) {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
