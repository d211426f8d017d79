package snapshot

import (
	"fmt"
	"iter"
	"time"

	"github.com/google/uuid"

	"github.com/vvka-141/dirsnap/internal/files/filesystem"
	"github.com/vvka-141/dirsnap/internal/files/scanner"
	"github.com/vvka-141/dirsnap/internal/retry"
	"github.com/vvka-141/dirsnap/pkg/dirsnap"
)

type slot struct {
	entry   scanner.Entry
	deleted bool
}

// Snapshot is a point-in-time record of a directory's entries and hierarchy.
type Snapshot struct {
	id       uuid.UUID
	fs       filesystem.FileSystemProvider
	logger   dirsnap.Logger
	remover  *retry.Executor
	path     string
	realRoot string
	opts     dirsnap.Options
	tree     dirsnap.Tree
	slots    []slot
	live     int
	takenAt  time.Time
}

// New snapshots path on the OS filesystem.
func New(path string, opts dirsnap.Options, logger dirsnap.Logger) (*Snapshot, error) {
	return NewWithFS(filesystem.NewOSFileSystem(), path, opts, logger)
}

// NewWithFS snapshots path on the given filesystem.
// Panics if fsProvider or logger is nil.
func NewWithFS(fsProvider filesystem.FileSystemProvider, path string, opts dirsnap.Options, logger dirsnap.Logger) (*Snapshot, error) {
	sc := scanner.NewScannerWithFS(fsProvider, logger)

	root, err := sc.Normalize(path)
	if err != nil {
		return nil, err
	}

	tree, realRoot, err := sc.Tree(root)
	if err != nil {
		return nil, err
	}

	opts = opts.Normalized()
	entries, err := sc.Traverse(root, realRoot, opts)
	if err != nil {
		return nil, err
	}

	s := &Snapshot{
		id:       uuid.New(),
		fs:       fsProvider,
		logger:   logger,
		remover:  loggedRemover(logger),
		path:     root,
		realRoot: realRoot,
		opts:     opts,
		tree:     tree,
		slots:    make([]slot, len(entries)),
		live:     len(entries),
		takenAt:  time.Now(),
	}
	for i, entry := range entries {
		s.slots[i] = slot{entry: entry}
	}

	logger.Verbose("Snapshot %s of %s: %d entries (mode=%s recursive=%t filesOnly=%t)",
		s.id, root, len(entries), opts.PathMode(), opts.Recursive, opts.FilesOnly)
	return s, nil
}

// ID returns the identifier assigned when the snapshot was taken.
func (s *Snapshot) ID() uuid.UUID { return s.id }

// Path returns the normalized root path.
func (s *Snapshot) Path() string { return s.path }

// RealRoot returns the resolved root, the tree's only key.
func (s *Snapshot) RealRoot() string { return s.realRoot }

// TakenAt returns the construction time.
func (s *Snapshot) TakenAt() time.Time { return s.takenAt }

// Options returns the options the entries were rendered with.
func (s *Snapshot) Options() dirsnap.Options { return s.opts }

// IsAbsolute, IsRelative, IsRecursive and IsFilesOnly report the flags the
// snapshot was taken with. Absolute wins when both path modes were requested.
func (s *Snapshot) IsAbsolute() bool  { return s.opts.Absolute }
func (s *Snapshot) IsRelative() bool  { return s.opts.Relative }
func (s *Snapshot) IsRecursive() bool { return s.opts.Recursive }
func (s *Snapshot) IsFilesOnly() bool { return s.opts.FilesOnly }

// Tree returns a copy of the hierarchy captured at construction. Deletions
// do not update it.
func (s *Snapshot) Tree() dirsnap.Tree {
	out := make(dirsnap.Tree, len(s.tree))
	for k, v := range s.tree {
		out[k] = v.Clone()
	}
	return out
}

// WithOptions takes a new snapshot of the same root under opts.
func (s *Snapshot) WithOptions(opts dirsnap.Options) (*Snapshot, error) {
	return NewWithFS(s.fs, s.path, opts, s.logger)
}

// WithAbsolute takes a new snapshot with Absolute toggled.
func (s *Snapshot) WithAbsolute(absolute bool) (*Snapshot, error) {
	return s.WithOptions(s.opts.WithAbsolute(absolute))
}

// WithRelative takes a new snapshot with Relative toggled.
func (s *Snapshot) WithRelative(relative bool) (*Snapshot, error) {
	return s.WithOptions(s.opts.WithRelative(relative))
}

// WithRecursive takes a new snapshot with Recursive toggled.
func (s *Snapshot) WithRecursive(recursive bool) (*Snapshot, error) {
	return s.WithOptions(s.opts.WithRecursive(recursive))
}

// WithFilesOnly takes a new snapshot with FilesOnly toggled.
func (s *Snapshot) WithFilesOnly(filesOnly bool) (*Snapshot, error) {
	return s.WithOptions(s.opts.WithFilesOnly(filesOnly))
}

// Count returns the number of live entries.
func (s *Snapshot) Count() int { return s.live }

// All yields live entries with their original indexes. Retired indexes are
// skipped, never renumbered.
func (s *Snapshot) All() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for i, sl := range s.slots {
			if sl.deleted {
				continue
			}
			if !yield(i, sl.entry.Value) {
				return
			}
		}
	}
}

// Files returns the live entry values in listing order.
func (s *Snapshot) Files() []string {
	out := make([]string, 0, s.live)
	for _, value := range s.All() {
		out = append(out, value)
	}
	return out
}

// Get returns the value at index, or false once it has been deleted.
func (s *Snapshot) Get(index int) (string, bool) {
	if !s.Has(index) {
		return "", false
	}
	return s.slots[index].entry.Value, true
}

// Index returns the first live index whose value equals name.
func (s *Snapshot) Index(name string) (int, bool) {
	for i, value := range s.All() {
		if value == name {
			return i, true
		}
	}
	return -1, false
}

// Lookup is Index followed by Get.
func (s *Snapshot) Lookup(name string) (string, bool) {
	index, ok := s.Index(name)
	if !ok {
		return "", false
	}
	return s.Get(index)
}

// Has reports whether index holds a live entry.
func (s *Snapshot) Has(index int) bool {
	return index >= 0 && index < len(s.slots) && !s.slots[index].deleted
}

// HasName reports whether any live entry equals name.
func (s *Snapshot) HasName(name string) bool {
	_, ok := s.Index(name)
	return ok
}

// Location returns the on-disk path backing the entry at index.
func (s *Snapshot) Location(index int) (string, bool) {
	if !s.Has(index) {
		return "", false
	}
	return s.slots[index].entry.Location, true
}

// IsDir reports whether the entry at index was a directory when the snapshot
// was taken.
func (s *Snapshot) IsDir(index int) bool {
	return s.Has(index) && s.slots[index].entry.IsDir
}

// DeleteEntry removes the file backing the entry at index from disk and
// retires the index. Directories, missing files and files without the owner
// write bit are refused; a refused or failed deletion changes nothing.
func (s *Snapshot) DeleteEntry(index int) error {
	if !s.Has(index) {
		return fmt.Errorf("%w: no entry at index %d", dirsnap.ErrNotFound, index)
	}
	location := s.slots[index].entry.Location

	info, err := s.fs.Stat(location)
	if err != nil {
		return fmt.Errorf("%w: %s no longer exists", dirsnap.ErrNotFound, location)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s", dirsnap.ErrIsDirectory, location)
	}
	if !s.fs.Writable(location) {
		return fmt.Errorf("%w: %s", dirsnap.ErrReadOnlyFile, location)
	}
	if err := removeFile(s.remover, s.fs, location); err != nil {
		return fmt.Errorf("failed to delete %s: %w", location, err)
	}

	s.slots[index].deleted = true
	s.live--
	s.logger.Verbose("Deleted entry %d (%s)", index, location)
	return nil
}

// DeleteByName resolves name to its first matching index and deletes it.
func (s *Snapshot) DeleteByName(name string) error {
	index, ok := s.Index(name)
	if !ok {
		return fmt.Errorf("%w: no entry named %q", dirsnap.ErrNotFound, name)
	}
	return s.DeleteEntry(index)
}

// Verify Snapshot implements the interface at compile time
var _ dirsnap.Entries = (*Snapshot)(nil)
