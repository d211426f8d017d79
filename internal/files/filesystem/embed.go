package filesystem

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/vvka-141/dirsnap/pkg/dirsnap"
)

// embedFile implements File interface for embed.FS
type embedFile struct {
	embedFS *embed.FS
	absPath string // path within embed.FS (always uses forward slashes)
	relPath string // relative path from the walked directory
	info    fs.FileInfo
}

func (f *embedFile) Path() string         { return f.absPath }
func (f *embedFile) RelativePath() string { return f.relPath }
func (f *embedFile) Info() FileInfo       { return f.info }

func (f *embedFile) ReadContent() ([]byte, error) {
	return f.embedFS.ReadFile(f.absPath)
}

// embedDirectory implements Directory interface for embed.FS
type embedDirectory struct {
	embedFS *embed.FS
	absPath string
}

func (d *embedDirectory) Path() string { return d.absPath }

func (d *embedDirectory) Walk(fn func(File, error) error) error {
	return fs.WalkDir(d.embedFS, d.absPath, func(filePath string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fn(nil, err)
		}

		info, err := entry.Info()
		if err != nil {
			return fn(nil, fmt.Errorf("failed to get file info for %s: %w", filePath, err))
		}

		relPath := "."
		if filePath != d.absPath {
			relPath = strings.TrimPrefix(filePath, d.absPath+"/")
			if d.absPath == "." {
				relPath = filePath
			}
		}

		return fn(&embedFile{
			embedFS: d.embedFS,
			absPath: filePath,
			relPath: relPath,
			info:    info,
		}, nil)
	})
}

// EmbedFileSystem implements FileSystemProvider for embed.FS.
// Every path is interpreted relative to root; writes fail with dirsnap.ErrReadOnly.
type EmbedFileSystem struct {
	embedFS embed.FS
	root    string // root path within the embed.FS (always uses forward slashes)
}

// NewEmbedFileSystem creates a new filesystem provider wrapping an embed.FS.
// The root parameter specifies the subdirectory within the embed.FS to treat as the root.
func NewEmbedFileSystem(embedFS embed.FS, root string) *EmbedFileSystem {
	return &EmbedFileSystem{
		embedFS: embedFS,
		root:    path.Clean(strings.ReplaceAll(root, "\\", "/")),
	}
}

// resolve maps a caller path onto a path within the embed.FS
func (efs *EmbedFileSystem) resolve(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return efs.root
	}
	return path.Join(efs.root, p)
}

// Open implements FileSystemProvider.Open
func (efs *EmbedFileSystem) Open(openPath string) (Directory, error) {
	absPath := efs.resolve(openPath)

	// ReadDir only works on directories
	if _, err := efs.embedFS.ReadDir(absPath); err != nil {
		return nil, fmt.Errorf("failed to open directory %s: %w", openPath, err)
	}

	return &embedDirectory{
		embedFS: &efs.embedFS,
		absPath: absPath,
	}, nil
}

// ReadFile implements FileSystemProvider.ReadFile
func (efs *EmbedFileSystem) ReadFile(filePath string) ([]byte, error) {
	content, err := efs.embedFS.ReadFile(efs.resolve(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	return content, nil
}

// ReadDir implements FileSystemProvider.ReadDir
func (efs *EmbedFileSystem) ReadDir(dirPath string) ([]FileInfo, error) {
	entries, err := efs.embedFS.ReadDir(efs.resolve(dirPath))
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	result := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to get file info for %s: %w", entry.Name(), err)
		}
		result = append(result, info)
	}
	return result, nil
}

// Stat implements FileSystemProvider.Stat
func (efs *EmbedFileSystem) Stat(statPath string) (FileInfo, error) {
	info, err := fs.Stat(efs.embedFS, efs.resolve(statPath))
	if err != nil {
		return nil, fmt.Errorf("failed to stat path %s: %w", statPath, err)
	}
	return info, nil
}

// Exists implements FileSystemProvider.Exists
func (efs *EmbedFileSystem) Exists(entryPath string) bool {
	_, err := fs.Stat(efs.embedFS, efs.resolve(entryPath))
	return err == nil
}

// RealPath returns the entry's full path within the embed.FS.
func (efs *EmbedFileSystem) RealPath(entryPath string) (string, error) {
	absPath := efs.resolve(entryPath)
	if _, err := fs.Stat(efs.embedFS, absPath); err != nil {
		return "", err
	}
	return absPath, nil
}

// Writable always reports false: embedded content is immutable.
func (efs *EmbedFileSystem) Writable(string) bool { return false }

func (efs *EmbedFileSystem) Mkdir(dirPath string, _ fs.FileMode) error {
	return fmt.Errorf("%w: mkdir %s", dirsnap.ErrReadOnly, dirPath)
}

func (efs *EmbedFileSystem) CopyFile(_, dst string) error {
	return fmt.Errorf("%w: copy to %s", dirsnap.ErrReadOnly, dst)
}

func (efs *EmbedFileSystem) Remove(entryPath string) error {
	return fmt.Errorf("%w: remove %s", dirsnap.ErrReadOnly, entryPath)
}

func (efs *EmbedFileSystem) RemoveDir(dirPath string) error {
	return fmt.Errorf("%w: rmdir %s", dirsnap.ErrReadOnly, dirPath)
}

// Verify EmbedFileSystem implements the interface at compile time
var _ FileSystemProvider = (*EmbedFileSystem)(nil)
