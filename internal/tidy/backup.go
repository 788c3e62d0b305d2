package tidy

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/fixcpp/fixcpp/internal/storage"
)

// Backup holds a project's .clang-tidy as it was before a run.
type Backup struct {
	path    string
	existed bool
	data    []byte
	mode    fs.FileMode
}

// stashFile is the on-disk form of a Backup.
type stashFile struct {
	Path    string      `json:"path"`
	Existed bool        `json:"existed"`
	Data    []byte      `json:"data,omitempty"`
	Mode    fs.FileMode `json:"mode"`
}

// TakeBackup records the current .clang-tidy in dir, if any.
func TakeBackup(dir string) (*Backup, error) {
	b := &Backup{path: Path(dir)}

	info, err := os.Stat(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return b, nil
	}
	if err != nil {
		return nil, fmt.Errorf("back up %s: %w", b.path, err)
	}

	data, err := os.ReadFile(b.path)
	if err != nil {
		return nil, fmt.Errorf("back up %s: %w", b.path, err)
	}

	b.existed = true
	b.data = data
	b.mode = info.Mode().Perm()
	return b, nil
}

// Existed reports whether a .clang-tidy was present when the backup was taken.
func (b *Backup) Existed() bool {
	return b.existed
}

// Target returns the .clang-tidy path the backup restores.
func (b *Backup) Target() string {
	return b.path
}

// Restore puts the original file back, or removes the generated one when
// there was none.
func (b *Backup) Restore() error {
	if !b.existed {
		if err := os.Remove(b.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove generated %s: %w", b.path, err)
		}
		return nil
	}

	if err := os.WriteFile(b.path, b.data, b.mode); err != nil {
		return fmt.Errorf("restore %s: %w", b.path, err)
	}
	return nil
}

// StashPath returns where the backup for projectDir is kept while a run is
// in progress: ~/.fixcpp/backups/<uuid>.json, with the uuid derived from
// the project's absolute path.
func StashPath(projectDir string) (string, error) {
	abs, err := filepath.Abs(projectDir)
	if err != nil {
		return "", err
	}
	dir, err := storage.Dir()
	if err != nil {
		return "", err
	}
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+abs))
	return filepath.Join(dir, "backups", id.String()+".json"), nil
}

// Stash writes the backup to path so it survives a crash.
func (b *Backup) Stash(path string) error {
	return storage.SaveJSON(path, stashFile{
		Path:    b.path,
		Existed: b.existed,
		Data:    b.data,
		Mode:    b.mode,
	})
}

// LoadStash reads a backup written by Stash.
func LoadStash(path string) (*Backup, error) {
	var s stashFile
	if err := storage.LoadJSON(path, &s); err != nil {
		return nil, err
	}
	if s.Path == "" {
		return nil, fmt.Errorf("stash %s has no target path", path)
	}
	return &Backup{path: s.Path, existed: s.Existed, data: s.Data, mode: s.Mode}, nil
}

// RemoveStash deletes a stash file. A missing file is not an error.
func RemoveStash(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
