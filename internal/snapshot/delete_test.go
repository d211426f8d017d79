package snapshot

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/dirsnap/internal/files/filesystem"
	"github.com/vvka-141/dirsnap/pkg/dirsnap"
)

func TestDelete_ByNameEqualsByIndex(t *testing.T) {
	byNameFS := newMemoryTree()
	byName := take(t, byNameFS, "/data/root", dirsnap.Options{})
	require.NoError(t, byName.DeleteByName("a.txt"))

	byIndexFS := newMemoryTree()
	byIndex := take(t, byIndexFS, "/data/root", dirsnap.Options{})
	index, ok := byIndex.Index("a.txt")
	require.True(t, ok)
	require.NoError(t, byIndex.DeleteEntry(index))

	assert.Equal(t, byName.Files(), byIndex.Files())
	assert.Equal(t, byName.Count(), byIndex.Count())
	assert.False(t, byNameFS.Exists("/data/root/a.txt"))
	assert.False(t, byIndexFS.Exists("/data/root/a.txt"))

	var nameIdx, indexIdx []int
	for i := range byName.All() {
		nameIdx = append(nameIdx, i)
	}
	for i := range byIndex.All() {
		indexIdx = append(indexIdx, i)
	}
	assert.Equal(t, []int{1, 2}, nameIdx)
	assert.Equal(t, nameIdx, indexIdx)
}

func TestDelete_IndicesStable(t *testing.T) {
	snap := take(t, newMemoryTree(), "/data/root", dirsnap.Options{})
	require.NoError(t, snap.DeleteEntry(0))

	assert.False(t, snap.Has(0))
	value, ok := snap.Get(1)
	require.True(t, ok)
	assert.Equal(t, "b.txt", value)
	assert.Equal(t, 2, snap.Count())

	err := snap.DeleteEntry(0)
	assert.True(t, errors.Is(err, dirsnap.ErrNotFound))
}

func TestDelete_Directory(t *testing.T) {
	fs := newMemoryTree()
	snap := take(t, fs, "/data/root", dirsnap.Options{})
	before := snap.Files()

	err := snap.DeleteByName("sub/")
	require.Error(t, err)
	assert.True(t, errors.Is(err, dirsnap.ErrIsDirectory))
	assert.Equal(t, before, snap.Files())
	assert.True(t, fs.Exists("/data/root/sub/c.txt"))
}

func TestDelete_Failures(t *testing.T) {
	tests := []struct {
		name     string
		prepare  func(fs *filesystem.MemoryFileSystem)
		target   string
		expected error
	}{
		{
			name:     "unknown name",
			prepare:  func(fs *filesystem.MemoryFileSystem) {},
			target:   "nope.txt",
			expected: dirsnap.ErrNotFound,
		},
		{
			name:     "removed behind the snapshot's back",
			prepare:  func(fs *filesystem.MemoryFileSystem) { _ = fs.Remove("a.txt") },
			target:   "a.txt",
			expected: dirsnap.ErrNotFound,
		},
		{
			name:     "read-only file",
			prepare:  func(fs *filesystem.MemoryFileSystem) { _ = fs.Chmod("a.txt", 0444) },
			target:   "a.txt",
			expected: dirsnap.ErrReadOnlyFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newMemoryTree()
			snap := take(t, fs, "/data/root", dirsnap.Options{})
			before := snap.Files()
			tt.prepare(fs)

			err := snap.DeleteByName(tt.target)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.expected), "got %v", err)
			assert.Equal(t, before, snap.Files())
		})
	}
}

func TestDelete_InvalidIndex(t *testing.T) {
	snap := take(t, newMemoryTree(), "/data/root", dirsnap.Options{})
	for _, index := range []int{-1, 3, 100} {
		err := snap.DeleteEntry(index)
		assert.True(t, errors.Is(err, dirsnap.ErrNotFound), "index %d", index)
	}
}

func TestDelete_RecursiveNameModeUsesTrackedLocation(t *testing.T) {
	fs := newMemoryTree()
	fs.AddFile("sub/a.txt", "nested")
	snap := take(t, fs, "/data/root", dirsnap.Options{Recursive: true})

	require.NoError(t, snap.DeleteByName("a.txt"))
	assert.False(t, fs.Exists("/data/root/a.txt"))
	assert.True(t, fs.Exists("/data/root/sub/a.txt"))

	require.NoError(t, snap.DeleteByName("a.txt"))
	assert.False(t, fs.Exists("/data/root/sub/a.txt"))
	assert.False(t, snap.HasName("a.txt"))
}

func TestDelete_AbsoluteMode(t *testing.T) {
	fs := newMemoryTree()
	snap := take(t, fs, "/data/root", dirsnap.Options{Recursive: true, Absolute: true})

	require.NoError(t, snap.DeleteByName("/data/root/sub/c.txt"))
	assert.False(t, fs.Exists("/data/root/sub/c.txt"))
}

func TestDelete_TreeUnchanged(t *testing.T) {
	snap := take(t, newMemoryTree(), "/data/root", dirsnap.Options{})
	require.NoError(t, snap.DeleteByName("a.txt"))

	_, node := snap.Tree().Root()
	assert.Equal(t, []string{"a.txt", "b.txt"}, node.Files())
}

func TestDelete_OSReadOnlyFile(t *testing.T) {
	root := newOSTree(t)
	target := filepath.Join(root, "a.txt")
	require.NoError(t, os.Chmod(target, 0444))
	t.Cleanup(func() { _ = os.Chmod(target, 0644) })

	snap := take(t, filesystem.NewOSFileSystem(), root, dirsnap.Options{})
	err := snap.DeleteByName("a.txt")
	assert.True(t, errors.Is(err, dirsnap.ErrReadOnlyFile))
	_, statErr := os.Stat(target)
	assert.NoError(t, statErr)

	require.NoError(t, snap.DeleteByName("b.txt"))
	_, statErr = os.Stat(filepath.Join(root, "b.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestDelete_OSLinkedDirectoryConsistent(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "root")
	require.NoError(t, os.MkdirAll(root, 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(base, "target"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("a"), 0644))
	if err := os.Symlink(filepath.Join("..", "target"), filepath.Join(root, "link")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	snap := take(t, filesystem.NewOSFileSystem(), root, dirsnap.Options{})
	index, ok := snap.Index("link" + string(filepath.Separator))
	require.True(t, ok)
	assert.True(t, snap.IsDir(index))

	err := snap.DeleteEntry(index)
	assert.True(t, errors.Is(err, dirsnap.ErrIsDirectory))
	assert.True(t, snap.Has(index))

	filesOnly := take(t, filesystem.NewOSFileSystem(), root, dirsnap.Options{FilesOnly: true})
	assert.Equal(t, []string{"a.txt"}, filesOnly.Files())
}
