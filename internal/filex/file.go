package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir makes sure the directory exists, creating it along with any
// missing parents. Relative paths are resolved against the current working
// directory. The resolved absolute path is returned.
func EnsureDir(dirName string) (string, error) {
	dir := dirName
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		dir = filepath.Join(cwd, dirName)
	}

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}
