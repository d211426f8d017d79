package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

// memoryFile is a stored entry of the in-memory filesystem
type memoryFile struct {
	absPath string
	content []byte
	info    *memoryFileInfo
}

// memoryWalkFile implements File for one visit of a walk
type memoryWalkFile struct {
	file    *memoryFile
	relPath string
}

func (f *memoryWalkFile) Path() string         { return f.file.absPath }
func (f *memoryWalkFile) RelativePath() string { return f.relPath }
func (f *memoryWalkFile) Info() FileInfo       { return f.file.info }

func (f *memoryWalkFile) ReadContent() ([]byte, error) {
	return f.file.content, nil
}

// memoryDirectory implements Directory interface for in-memory filesystem
type memoryDirectory struct {
	absPath string
	fs      *MemoryFileSystem
}

func (d *memoryDirectory) Path() string { return d.absPath }

func (d *memoryDirectory) Walk(fn func(File, error) error) error {
	root, ok := d.fs.files[d.absPath]
	if !ok {
		return fn(nil, &fs.PathError{Op: "walk", Path: d.absPath, Err: fs.ErrNotExist})
	}
	return d.walk(root, ".", fn)
}

func (d *memoryDirectory) walk(file *memoryFile, relPath string, fn func(File, error) error) error {
	var callbackErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				callbackErr = fmt.Errorf("walk callback panicked at %s: %v", file.absPath, r)
			}
		}()
		callbackErr = fn(&memoryWalkFile{file: file, relPath: relPath}, nil)
	}()
	if callbackErr != nil || !file.info.isDir {
		return callbackErr
	}

	children, err := d.fs.children(file.absPath)
	if err != nil {
		return fn(nil, err)
	}
	for _, child := range children {
		childRel := child.info.name
		if relPath != "." {
			childRel = relPath + "/" + child.info.name
		}
		if err := d.walk(child, childRel, fn); err != nil {
			return err
		}
	}
	return nil
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Paths use forward slashes; relative paths are resolved against the root.
// Listings are returned in lexical name order, like the OS provider.
type MemoryFileSystem struct {
	files map[string]*memoryFile // map of absolute path -> entry
	root  string                 // root directory path
}

// NewMemoryFileSystem creates a new in-memory filesystem.
// The root path is normalized to use forward slashes for virtual filesystem consistency.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))
	if !path.IsAbs(root) {
		root = "/" + root
	}

	mfs := &MemoryFileSystem{
		files: make(map[string]*memoryFile),
		root:  root,
	}
	mfs.putDir(root, time.Now())
	mfs.ensureDirectoriesExist(root)

	return mfs
}

// Root returns the root directory of the virtual filesystem
func (mfs *MemoryFileSystem) Root() string { return mfs.root }

// AddFile adds a file to the in-memory filesystem
func (mfs *MemoryFileSystem) AddFile(path string, content string) {
	mfs.AddFileWithTime(path, content, time.Now())
}

// AddFileWithTime adds a file with a specific modification time.
// Missing parent directories are created.
func (mfs *MemoryFileSystem) AddFileWithTime(filePath string, content string, modTime time.Time) {
	absPath := mfs.resolve(filePath)
	contentBytes := []byte(content)

	mfs.files[absPath] = &memoryFile{
		absPath: absPath,
		content: contentBytes,
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			size:    int64(len(contentBytes)),
			mode:    0644,
			modTime: modTime,
		},
	}

	mfs.ensureDirectoriesExist(absPath)
}

// AddDir adds a directory and any missing parents
func (mfs *MemoryFileSystem) AddDir(dirPath string) {
	absPath := mfs.resolve(dirPath)
	if _, exists := mfs.files[absPath]; !exists {
		mfs.putDir(absPath, time.Now())
	}
	mfs.ensureDirectoriesExist(absPath)
}

// Chmod replaces the permission bits of an entry
func (mfs *MemoryFileSystem) Chmod(entryPath string, perm fs.FileMode) error {
	file, ok := mfs.files[mfs.resolve(entryPath)]
	if !ok {
		return &fs.PathError{Op: "chmod", Path: entryPath, Err: fs.ErrNotExist}
	}
	file.info.mode = file.info.mode&^fs.ModePerm | perm.Perm()
	return nil
}

func (mfs *MemoryFileSystem) putDir(absPath string, modTime time.Time) {
	mfs.files[absPath] = &memoryFile{
		absPath: absPath,
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			mode:    0755 | fs.ModeDir,
			modTime: modTime,
			isDir:   true,
		},
	}
}

// ensureDirectoriesExist creates directory entries for all parent directories
func (mfs *MemoryFileSystem) ensureDirectoriesExist(filePath string) {
	dir := path.Dir(filePath)
	if dir == filePath {
		return
	}
	if _, exists := mfs.files[dir]; exists {
		return
	}
	mfs.putDir(dir, time.Now())
	mfs.ensureDirectoriesExist(dir)
}

// resolve converts a caller path to the absolute key used in the file map
func (mfs *MemoryFileSystem) resolve(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

// children returns the direct children of a directory sorted by name
func (mfs *MemoryFileSystem) children(dirPath string) ([]*memoryFile, error) {
	dir, ok := mfs.files[dirPath]
	if !ok {
		return nil, &fs.PathError{Op: "readdir", Path: dirPath, Err: fs.ErrNotExist}
	}
	if !dir.info.isDir {
		return nil, fmt.Errorf("path is not a directory: %s", dirPath)
	}
	if dir.info.mode.Perm()&0o400 == 0 {
		return nil, &fs.PathError{Op: "readdir", Path: dirPath, Err: fs.ErrPermission}
	}

	var entries []*memoryFile
	for p, file := range mfs.files {
		if p != dirPath && path.Dir(p) == dirPath {
			entries = append(entries, file)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].info.name < entries[j].info.name
	})
	return entries, nil
}

// Open implements FileSystemProvider.Open
func (mfs *MemoryFileSystem) Open(openPath string) (Directory, error) {
	absPath := mfs.resolve(openPath)

	file, exists := mfs.files[absPath]
	if !exists {
		return nil, fmt.Errorf("directory not found: %s", openPath)
	}
	if !file.info.isDir {
		return nil, fmt.Errorf("path is not a directory: %s", openPath)
	}

	return &memoryDirectory{
		absPath: absPath,
		fs:      mfs,
	}, nil
}

// ReadFile implements FileSystemProvider.ReadFile
func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	file, exists := mfs.files[mfs.resolve(filePath)]
	if !exists {
		return nil, fmt.Errorf("file not found: %s", filePath)
	}

	if file.info.isDir {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	return file.content, nil
}

// ReadDir implements FileSystemProvider.ReadDir
func (mfs *MemoryFileSystem) ReadDir(dirPath string) ([]FileInfo, error) {
	entries, err := mfs.children(mfs.resolve(dirPath))
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	result := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		result = append(result, entry.info)
	}
	return result, nil
}

// Stat implements FileSystemProvider.Stat
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	file, exists := mfs.files[mfs.resolve(statPath)]
	if !exists {
		return nil, &fs.PathError{Op: "stat", Path: statPath, Err: fs.ErrNotExist}
	}

	return file.info, nil
}

// Exists implements FileSystemProvider.Exists
func (mfs *MemoryFileSystem) Exists(entryPath string) bool {
	_, exists := mfs.files[mfs.resolve(entryPath)]
	return exists
}

// RealPath implements FileSystemProvider.RealPath.
// The virtual filesystem has no links, so resolution is lexical.
func (mfs *MemoryFileSystem) RealPath(entryPath string) (string, error) {
	absPath := mfs.resolve(entryPath)
	if _, exists := mfs.files[absPath]; !exists {
		return "", &fs.PathError{Op: "realpath", Path: entryPath, Err: fs.ErrNotExist}
	}
	return filepath.FromSlash(absPath), nil
}

// Writable implements FileSystemProvider.Writable
func (mfs *MemoryFileSystem) Writable(entryPath string) bool {
	file, exists := mfs.files[mfs.resolve(entryPath)]
	return exists && file.info.mode.Perm()&0o200 != 0
}

// Mkdir implements FileSystemProvider.Mkdir
func (mfs *MemoryFileSystem) Mkdir(dirPath string, perm fs.FileMode) error {
	absPath := mfs.resolve(dirPath)
	if _, exists := mfs.files[absPath]; exists {
		return &fs.PathError{Op: "mkdir", Path: dirPath, Err: fs.ErrExist}
	}
	parent, exists := mfs.files[path.Dir(absPath)]
	if !exists || !parent.info.isDir {
		return &fs.PathError{Op: "mkdir", Path: dirPath, Err: fs.ErrNotExist}
	}
	mfs.putDir(absPath, time.Now())
	mfs.files[absPath].info.mode = fs.ModeDir | perm.Perm()
	return nil
}

// CopyFile implements FileSystemProvider.CopyFile
func (mfs *MemoryFileSystem) CopyFile(src, dst string) error {
	source, exists := mfs.files[mfs.resolve(src)]
	if !exists {
		return &fs.PathError{Op: "copy", Path: src, Err: fs.ErrNotExist}
	}
	if source.info.isDir {
		return fmt.Errorf("copy source is a directory: %s", src)
	}

	target := mfs.resolve(dst)
	if existing, ok := mfs.files[target]; ok && existing.info.isDir {
		return fmt.Errorf("copy target is a directory: %s", dst)
	}
	parent, exists := mfs.files[path.Dir(target)]
	if !exists || !parent.info.isDir {
		return &fs.PathError{Op: "copy", Path: dst, Err: fs.ErrNotExist}
	}

	content := make([]byte, len(source.content))
	copy(content, source.content)
	mfs.files[target] = &memoryFile{
		absPath: target,
		content: content,
		info: &memoryFileInfo{
			name:    path.Base(target),
			size:    int64(len(content)),
			mode:    source.info.mode,
			modTime: source.info.modTime,
		},
	}
	return nil
}

// Remove implements FileSystemProvider.Remove
func (mfs *MemoryFileSystem) Remove(entryPath string) error {
	absPath := mfs.resolve(entryPath)
	file, exists := mfs.files[absPath]
	if !exists {
		return &fs.PathError{Op: "remove", Path: entryPath, Err: fs.ErrNotExist}
	}
	if file.info.isDir {
		prefix := strings.TrimSuffix(absPath, "/") + "/"
		for p := range mfs.files {
			if p != absPath && strings.HasPrefix(p, prefix) {
				return fmt.Errorf("directory not empty: %s", entryPath)
			}
		}
	}
	delete(mfs.files, absPath)
	return nil
}

// RemoveDir implements FileSystemProvider.RemoveDir
func (mfs *MemoryFileSystem) RemoveDir(dirPath string) error {
	file, exists := mfs.files[mfs.resolve(dirPath)]
	if !exists {
		return &fs.PathError{Op: "rmdir", Path: dirPath, Err: fs.ErrNotExist}
	}
	if !file.info.isDir {
		return fmt.Errorf("path is not a directory: %s", dirPath)
	}
	return mfs.Remove(dirPath)
}

// Verify MemoryFileSystem implements the interface at compile time
var _ FileSystemProvider = (*MemoryFileSystem)(nil)
