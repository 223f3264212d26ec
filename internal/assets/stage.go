package assets

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Stager copies model files into private directories so the viewer owns its
// input for as long as the model is on screen.
type Stager struct {
	Dir string // parent directory, empty for os.TempDir
}

// Staged is a model copy owned by the viewer. It must be released when the
// model is replaced or the viewer exits.
type Staged struct {
	Path     string
	Name     string
	dir      string
	released bool
}

// Stage copies src and the sidecar files listed in info.External into a new
// directory, keeping their relative layout.
func (s Stager) Stage(src string, info Info) (*Staged, error) {
	if s.Dir != "" {
		if err := os.MkdirAll(s.Dir, 0755); err != nil {
			return nil, fmt.Errorf("create staging dir: %w", err)
		}
	}
	dir, err := os.MkdirTemp(s.Dir, "glbspinner-*")
	if err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}

	name := filepath.Base(src)
	staged := &Staged{
		Path: filepath.Join(dir, name),
		Name: name,
		dir:  dir,
	}

	if err := copyFile(src, staged.Path); err != nil {
		staged.Release()
		return nil, fmt.Errorf("stage %s: %w", name, err)
	}

	srcDir := filepath.Dir(src)
	for _, rel := range info.External {
		from := filepath.Join(srcDir, filepath.FromSlash(rel))
		to := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(to), 0755); err != nil {
			staged.Release()
			return nil, fmt.Errorf("stage %s: %w", rel, err)
		}
		if err := copyFile(from, to); err != nil {
			staged.Release()
			return nil, fmt.Errorf("stage %s: %w", rel, err)
		}
	}
	return staged, nil
}

// Release removes the staged copy. Safe to call more than once and on nil.
func (s *Staged) Release() error {
	if s == nil || s.released {
		return nil
	}
	s.released = true
	if err := os.RemoveAll(s.dir); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Staged) Released() bool {
	return s == nil || s.released
}

// copyFile copies a file from src to dst
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return err
	}
	return dstFile.Close()
}
