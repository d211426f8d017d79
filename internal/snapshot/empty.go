package snapshot

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/vvka-141/dirsnap/internal/files/filesystem"
	"github.com/vvka-141/dirsnap/internal/retry"
	"github.com/vvka-141/dirsnap/pkg/dirsnap"
)

// EmptyDir deletes everything under the snapshot root. With remove set the
// root itself is removed afterward. The snapshot is not refreshed.
func (s *Snapshot) EmptyDir(remove bool) error {
	return s.EmptyPath(s.path, remove)
}

// EmptyPath deletes everything under path using the snapshot's filesystem.
func (s *Snapshot) EmptyPath(path string, remove bool) error {
	err := emptyDir(s.remover, s.fs, path, remove)
	if err == nil {
		s.logger.Verbose("Emptied %s (remove=%t)", path, remove)
	}
	return err
}

// EmptyDir recursively deletes the contents of path. Failures on individual
// children are collected and the walk continues. A directory that cannot be
// listed fails with dirsnap.ErrUnreadable.
func EmptyDir(fsProvider filesystem.FileSystemProvider, path string, remove bool) error {
	return emptyDir(removeExecutor, fsProvider, path, remove)
}

func emptyDir(exec *retry.Executor, fsProvider filesystem.FileSystemProvider, path string, remove bool) error {
	infos, err := fsProvider.ReadDir(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", dirsnap.ErrUnreadable, path, err)
	}

	var errs []error
	for _, info := range infos {
		child := filepath.Join(path, info.Name())
		if info.IsDir() {
			if err := emptyDir(exec, fsProvider, child, true); err != nil {
				errs = append(errs, err)
			}
			continue
		}
		if err := removeFile(exec, fsProvider, child); err != nil {
			errs = append(errs, fmt.Errorf("failed to remove %s: %w", child, err))
		}
	}

	if remove && len(errs) == 0 {
		if err := removeDir(exec, fsProvider, path); err != nil {
			errs = append(errs, fmt.Errorf("failed to remove directory %s: %w", path, err))
		}
	}
	return errors.Join(errs...)
}
