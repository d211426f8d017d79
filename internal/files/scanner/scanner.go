package scanner

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/vvka-141/dirsnap/internal/files/filesystem"
	"github.com/vvka-141/dirsnap/pkg/dirsnap"
)

const separator = string(filepath.Separator)

// Entry is one rendered traversal result.
type Entry struct {
	// Value is the rendered path string exposed by the snapshot
	Value string

	// RelPath is the path relative to the root, using the provider's separators
	RelPath string

	// Location is root joined with RelPath, the path used for later disk access
	Location string

	// IsDir reports whether the entry was a directory when traversed
	IsDir bool
}

// Scanner builds trees and entry lists from a directory.
// Scanner holds no mutable state and is safe for concurrent use as long as
// the provided fsProvider and logger are.
type Scanner struct {
	fsProvider filesystem.FileSystemProvider
	logger     dirsnap.Logger
}

// NewScanner creates a scanner over the OS filesystem.
// Panics if logger is nil.
func NewScanner(logger dirsnap.Logger) *Scanner {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Scanner{
		fsProvider: filesystem.NewOSFileSystem(),
		logger:     logger,
	}
}

// NewScannerWithFS creates a scanner with a custom filesystem provider.
// Panics if fsProvider or logger is nil.
func NewScannerWithFS(fsProvider filesystem.FileSystemProvider, logger dirsnap.Logger) *Scanner {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Scanner{
		fsProvider: fsProvider,
		logger:     logger,
	}
}

// Normalize rewrites foreign separators to the native one, checks that the
// path exists and strips a single trailing separator.
func (s *Scanner) Normalize(path string) (string, error) {
	normalized := path
	if filepath.Separator == '/' {
		normalized = strings.ReplaceAll(normalized, "\\", "/")
	} else {
		normalized = strings.ReplaceAll(normalized, "/", "\\")
	}

	if normalized == "" || !s.fsProvider.Exists(normalized) {
		return "", fmt.Errorf("%w: directory does not exist: %s", dirsnap.ErrNotFound, path)
	}

	if len(normalized) > 1 && strings.HasSuffix(normalized, separator) {
		normalized = normalized[:len(normalized)-1]
	}
	return normalized, nil
}

// Tree builds the snapshot tree: a single key, the resolved root, mapped to
// the node mirroring its contents.
func (s *Scanner) Tree(root string) (dirsnap.Tree, string, error) {
	realRoot, err := s.fsProvider.RealPath(root)
	if err != nil {
		return nil, "", fmt.Errorf("%w: cannot resolve %s: %v", dirsnap.ErrNotFound, root, err)
	}

	node, err := s.BuildTree(root)
	if err != nil {
		return nil, "", err
	}
	return dirsnap.Tree{realRoot: node}, realRoot, nil
}

// BuildTree recursively mirrors path in listing order. Directories are keyed
// by separator+name; files are appended as bare names. Links to directories
// are descended into; a link leading back into a directory already being
// built is recorded as an empty node.
func (s *Scanner) BuildTree(path string) (*dirsnap.TreeNode, error) {
	entered := make(map[string]bool)
	if realPath, err := s.fsProvider.RealPath(path); err == nil {
		entered[realPath] = true
	}
	return s.buildTree(path, entered)
}

func (s *Scanner) buildTree(path string, entered map[string]bool) (*dirsnap.TreeNode, error) {
	infos, err := s.fsProvider.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", dirsnap.ErrUnreadable, path, err)
	}

	node := dirsnap.NewTreeNode()
	for _, info := range infos {
		name := info.Name()
		if name == "." || name == ".." {
			continue
		}
		location := filepath.Join(path, name)
		if !s.isDir(location, info) {
			node.AddFile(name)
			continue
		}

		var target string
		if isLink(info) {
			target, err = s.fsProvider.RealPath(location)
			if err != nil || entered[target] {
				s.logger.Verbose("Not descending into %s: link cycle", location)
				node.AddDir(separator+name, name, dirsnap.NewTreeNode())
				continue
			}
			entered[target] = true
		}

		child, err := s.buildTree(location, entered)
		if target != "" {
			delete(entered, target)
		}
		if err != nil {
			return nil, err
		}
		node.AddDir(separator+name, name, child)
	}
	return node, nil
}

func isLink(info fs.FileInfo) bool {
	return info.Mode()&fs.ModeSymlink != 0
}

// isDir classifies an entry the way Stat sees it: a link to a directory is a
// directory. Dangling links keep their own (non-directory) info.
func (s *Scanner) isDir(location string, info fs.FileInfo) bool {
	if !isLink(info) {
		return info.IsDir()
	}
	target, err := s.fsProvider.Stat(location)
	if err != nil {
		return false
	}
	return target.IsDir()
}

// Traverse produces the ordered entries for root under opts.
// realRoot is the resolved root used to strip prefixes in relative mode.
// Entries whose real path cannot be resolved are dropped and logged.
func (s *Scanner) Traverse(root, realRoot string, opts dirsnap.Options) ([]Entry, error) {
	opts = opts.Normalized()
	if opts.Recursive {
		return s.traverseRecursive(root, realRoot, opts)
	}
	return s.traverseFlat(root, realRoot, opts)
}

func (s *Scanner) traverseFlat(root, realRoot string, opts dirsnap.Options) ([]Entry, error) {
	infos, err := s.fsProvider.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", dirsnap.ErrUnreadable, root, err)
	}

	var entries []Entry
	for _, info := range infos {
		name := info.Name()
		if name == "." || name == ".." {
			continue
		}
		location := filepath.Join(root, name)
		isDir := s.isDir(location, info)
		if opts.FilesOnly && isDir {
			continue
		}

		entry := Entry{
			RelPath:  name,
			Location: location,
			IsDir:    isDir,
		}
		value, ok := s.render(entry, name, realRoot, opts)
		if !ok {
			continue
		}
		// Flat name mode marks directories with a trailing separator;
		// recursive name mode does not.
		if !opts.Absolute && !opts.Relative && entry.IsDir {
			value += separator
		}
		entry.Value = value
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *Scanner) traverseRecursive(root, realRoot string, opts dirsnap.Options) ([]Entry, error) {
	dir, err := s.fsProvider.Open(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", dirsnap.ErrUnreadable, root, err)
	}

	var entries []Entry
	err = dir.Walk(func(file filesystem.File, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("%w: %v", dirsnap.ErrUnreadable, walkErr)
		}
		relPath := file.RelativePath()
		if relPath == "." {
			return nil
		}

		// The walk itself does not descend into linked directories.
		info := file.Info()
		location := filepath.Join(root, relPath)
		isDir := s.isDir(location, info)
		if opts.FilesOnly && isDir {
			return nil
		}

		entry := Entry{
			RelPath:  relPath,
			Location: location,
			IsDir:    isDir,
		}
		value, ok := s.render(entry, info.Name(), realRoot, opts)
		if !ok {
			return nil
		}
		entry.Value = value
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// render applies the path mode: absolute, then relative, then bare name.
func (s *Scanner) render(entry Entry, name, realRoot string, opts dirsnap.Options) (string, bool) {
	if !opts.Absolute && !opts.Relative {
		return name, true
	}

	resolved, err := s.fsProvider.RealPath(entry.Location)
	if err != nil {
		s.logger.Verbose("Skipping %s: %v", entry.Location, err)
		return "", false
	}
	if opts.Absolute {
		return resolved, true
	}

	prefix := realRoot
	if !strings.HasSuffix(prefix, separator) {
		prefix += separator
	}
	if !strings.HasPrefix(resolved, prefix) {
		s.logger.Verbose("%s resolves outside %s, using %s", entry.Location, realRoot, entry.RelPath)
		return entry.RelPath, true
	}
	return resolved[len(prefix):], true
}
