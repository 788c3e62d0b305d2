package tidy

import (
	"os"
	"path/filepath"
)

// Path returns the location of the lint configuration for dir.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Writer writes single-check lint configurations into a project directory.
type Writer struct{}

// Write overwrites <dir>/.clang-tidy so that it enables only check.
// The directory must exist.
func (Writer) Write(dir, check string) error {
	data, err := ForCheck(check).Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(Path(dir), data, 0o644)
}
