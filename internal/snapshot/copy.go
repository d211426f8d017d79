package snapshot

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/vvka-141/dirsnap/internal/files/filesystem"
	"github.com/vvka-141/dirsnap/pkg/dirsnap"
)

// CopyResult describes what CopyTo wrote.
type CopyResult struct {
	// Source is the snapshot root that was copied
	Source string
	// Root is the directory the contents were copied into
	Root string
	// Dirs lists destination directories in creation order
	Dirs []string
	// Files lists destination file paths in copy order
	Files []string
	// Copied lists copied files relative to Source
	Copied []string
}

// CopyTo copies the snapshot root into dest in pre-order. With full set, the
// copy is nested under dest/<base name of the root>. dest must exist and must
// not be the root or lie inside it. Existing directories are reused and
// existing files overwritten.
func (s *Snapshot) CopyTo(dest string, full bool) (CopyResult, error) {
	result := CopyResult{Source: s.path, Root: dest}

	info, err := s.fs.Stat(dest)
	if err != nil {
		return result, fmt.Errorf("%w: copy destination %s", dirsnap.ErrNotFound, dest)
	}
	if !info.IsDir() {
		return result, fmt.Errorf("copy destination is not a directory: %s", dest)
	}
	if err := s.checkOutsideRoot(dest); err != nil {
		return result, err
	}

	if full {
		result.Root = filepath.Join(dest, filepath.Base(s.path))
		if err := s.ensureDir(result.Root, 0755); err != nil {
			return result, err
		}
		result.Dirs = append(result.Dirs, result.Root)
	}

	dir, err := s.fs.Open(s.path)
	if err != nil {
		return result, fmt.Errorf("%w: %s: %v", dirsnap.ErrUnreadable, s.path, err)
	}

	err = dir.Walk(func(file filesystem.File, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("%w: %v", dirsnap.ErrUnreadable, walkErr)
		}
		relPath := file.RelativePath()
		if relPath == "." {
			return nil
		}
		source := filepath.Join(s.path, relPath)
		target := filepath.Join(result.Root, relPath)

		entryInfo := file.Info()
		if entryInfo.IsDir() {
			if err := s.ensureDir(target, entryInfo.Mode().Perm()); err != nil {
				return err
			}
			result.Dirs = append(result.Dirs, target)
			return nil
		}
		if entryInfo.Mode()&fs.ModeSymlink != 0 {
			if linked, err := s.fs.Stat(source); err == nil && linked.IsDir() {
				s.logger.Verbose("Skipping linked directory %s", source)
				return nil
			}
		}

		if err := s.fs.CopyFile(source, target); err != nil {
			return fmt.Errorf("failed to copy %s: %w", relPath, err)
		}
		result.Files = append(result.Files, target)
		result.Copied = append(result.Copied, relPath)
		return nil
	})
	if err != nil {
		return result, err
	}

	s.logger.Verbose("Copied %d files and %d directories from %s to %s",
		len(result.Files), len(result.Dirs), s.path, result.Root)
	return result, nil
}

// checkOutsideRoot refuses destinations the walk would reach again.
func (s *Snapshot) checkOutsideRoot(dest string) error {
	realDest, err := s.fs.RealPath(dest)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve copy destination %s: %v", dirsnap.ErrNotFound, dest, err)
	}
	prefix := s.realRoot
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	if realDest == s.realRoot || strings.HasPrefix(realDest, prefix) {
		return fmt.Errorf("%w: copy destination %s is inside %s", dirsnap.ErrInvalidConfig, dest, s.path)
	}
	return nil
}

func (s *Snapshot) ensureDir(path string, perm fs.FileMode) error {
	if info, err := s.fs.Stat(path); err == nil {
		if !info.IsDir() {
			return fmt.Errorf("cannot create directory %s: a file is in the way", path)
		}
		return nil
	}
	if err := s.fs.Mkdir(path, perm|0o700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}
