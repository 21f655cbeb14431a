// Package filex holds small filesystem helpers shared by components that
// persist files on local disk.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates dir (and parents) if it does not exist and returns the
// absolute path.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}

// WriteFile writes data to a file inside dir, creating dir if needed, and
// returns the full path of the written file.
func WriteFile(dir, name string, data []byte) (string, error) {
	abs, err := EnsureDir(dir)
	if err != nil {
		return "", err
	}

	path := filepath.Join(abs, name)
	if err := os.WriteFile(path, data, 0o660); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
