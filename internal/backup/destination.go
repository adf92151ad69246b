package backup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/wordbook/internal/common"
	"github.com/dmitrijs2005/wordbook/internal/filex"
)

// Destination stores backup files. Put returns the reference that Get
// accepts to read the same file back.
type Destination interface {
	Put(ctx context.Context, name string, data []byte) (string, error)
	Get(ctx context.Context, ref string) ([]byte, error)
}

// DirDestination keeps backups as files in a local directory.
type DirDestination struct {
	dir string
}

func NewDirDestination(dir string) *DirDestination {
	return &DirDestination{dir: dir}
}

// Put writes name into the directory, replacing an older file of the same
// name, and returns the file's path.
func (d *DirDestination) Put(_ context.Context, name string, data []byte) (string, error) {
	if name == "" || filepath.Base(name) != name {
		return "", fmt.Errorf("%w: bad backup file name %q", common.ErrInvalidInput, name)
	}

	path := filepath.Join(d.dir, name)
	if err := filex.WriteFileAtomic(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	return path, nil
}

// Get reads a backup. A bare file name is looked up in the directory;
// anything else is treated as a path.
func (d *DirDestination) Get(_ context.Context, ref string) ([]byte, error) {
	path := ref
	if filepath.Base(ref) == ref {
		path = filepath.Join(d.dir, ref)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, common.NotFound("backup", ref)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup: %w", err)
	}
	return data, nil
}
