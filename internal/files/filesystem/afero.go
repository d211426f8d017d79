package filesystem

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// aferoFile implements File for entries visited on an afero.Fs
type aferoFile struct {
	fs      afero.Fs
	absPath string
	relPath string
	info    fs.FileInfo
}

func (f *aferoFile) Path() string         { return f.absPath }
func (f *aferoFile) RelativePath() string { return f.relPath }
func (f *aferoFile) Info() FileInfo       { return f.info }

func (f *aferoFile) ReadContent() ([]byte, error) {
	return afero.ReadFile(f.fs, f.absPath)
}

// aferoDirectory implements Directory on an afero.Fs
type aferoDirectory struct {
	fs      afero.Fs
	absPath string
}

func (d *aferoDirectory) Path() string { return d.absPath }

func (d *aferoDirectory) Walk(fn func(File, error) error) error {
	return afero.Walk(d.fs, d.absPath, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return fn(nil, fmt.Errorf("%s: %w", path, walkErr))
		}
		relPath, err := filepath.Rel(d.absPath, path)
		if err != nil {
			return fn(nil, fmt.Errorf("failed to get relative path: %w", err))
		}
		return fn(&aferoFile{fs: d.fs, absPath: path, relPath: relPath, info: info}, nil)
	})
}

// AferoFileSystem adapts any afero.Fs (memory maps, base-path jails,
// the OS filesystem) to FileSystemProvider.
type AferoFileSystem struct {
	fs       afero.Fs
	// osBacked marks layered views whose paths name real OS locations.
	osBacked bool
}

// NewAferoFileSystem wraps an afero.Fs.
// Panics if fs is nil.
func NewAferoFileSystem(fs afero.Fs) *AferoFileSystem {
	if fs == nil {
		panic("afero fs cannot be nil")
	}
	return &AferoFileSystem{fs: fs}
}

// NewDryRunFileSystem reads through to the OS filesystem and keeps every
// write in memory. Removing an entry that exists on disk fails.
func NewDryRunFileSystem() *AferoFileSystem {
	return &AferoFileSystem{
		fs:       afero.NewCopyOnWriteFs(afero.NewReadOnlyFs(afero.NewOsFs()), afero.NewMemMapFs()),
		osBacked: true,
	}
}

// Fs returns the wrapped afero.Fs
func (a *AferoFileSystem) Fs() afero.Fs { return a.fs }

func (a *AferoFileSystem) Open(path string) (Directory, error) {
	info, err := a.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", path)
	}
	return &aferoDirectory{fs: a.fs, absPath: filepath.Clean(path)}, nil
}

func (a *AferoFileSystem) ReadFile(path string) ([]byte, error) {
	return afero.ReadFile(a.fs, path)
}

func (a *AferoFileSystem) ReadDir(path string) ([]FileInfo, error) {
	infos, err := afero.ReadDir(a.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	return infos, nil
}

func (a *AferoFileSystem) Stat(path string) (FileInfo, error) {
	return a.fs.Stat(path)
}

func (a *AferoFileSystem) Exists(path string) bool {
	exists, err := afero.Exists(a.fs, path)
	return err == nil && exists
}

// RealPath resolves links on the OS backend and cleans lexically elsewhere.
// On a dry-run view, entries that exist only in memory resolve to their
// absolute path.
func (a *AferoFileSystem) RealPath(path string) (string, error) {
	if _, ok := a.fs.(*afero.OsFs); ok {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", err
		}
		return filepath.EvalSymlinks(absPath)
	}
	if a.osBacked {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", err
		}
		if _, err := a.fs.Stat(absPath); err != nil {
			return "", err
		}
		if resolved, err := filepath.EvalSymlinks(absPath); err == nil {
			return resolved, nil
		}
		return absPath, nil
	}
	if _, err := a.fs.Stat(path); err != nil {
		return "", err
	}
	cleaned := filepath.Clean(path)
	if !filepath.IsAbs(cleaned) {
		cleaned = filepath.Join(string(filepath.Separator), cleaned)
	}
	return cleaned, nil
}

func (a *AferoFileSystem) Writable(path string) bool {
	info, err := a.fs.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().Perm()&0o200 != 0
}

func (a *AferoFileSystem) Mkdir(path string, perm fs.FileMode) error {
	return a.fs.Mkdir(path, perm)
}

func (a *AferoFileSystem) CopyFile(src, dst string) error {
	input, err := a.fs.Open(src)
	if err != nil {
		return err
	}
	defer input.Close()

	info, err := input.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("copy source is a directory: %s", src)
	}

	output, err := a.fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(output, input); err != nil {
		_ = output.Close()
		return err
	}
	return output.Close()
}

func (a *AferoFileSystem) Remove(path string) error {
	return a.fs.Remove(path)
}

func (a *AferoFileSystem) RemoveDir(path string) error {
	isDir, err := afero.IsDir(a.fs, path)
	if err != nil {
		return err
	}
	if !isDir {
		return fmt.Errorf("path is not a directory: %s", path)
	}
	return a.fs.Remove(path)
}

// Verify AferoFileSystem implements the interface at compile time
var _ FileSystemProvider = (*AferoFileSystem)(nil)
