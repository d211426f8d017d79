package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/dirsnap/internal/tui/components"
	"github.com/vvka-141/dirsnap/pkg/dirsnap"
)

// executeCommand runs the root command with fresh flag state and captures
// both output streams.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	resetCommandFlags(rootCmd)
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, cmd := range rootCmd.Commands() {
		resetCommandFlags(cmd)
	}

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// newProjectDir creates a.txt, b.txt and sub/c.txt under a fresh directory.
func newProjectDir(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "project")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("a"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.txt"), []byte("b"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "c.txt"), []byte("c"), 0644))
	return root
}

type stubApprover struct {
	approve bool
	target  string
}

func (a *stubApprover) RequestApproval(_ context.Context, target string) (bool, error) {
	a.target = target
	return a.approve, nil
}

func withApprover(t *testing.T, approver dirsnap.Approver) {
	t.Helper()
	original := newApprover
	newApprover = func(bool, bool) (dirsnap.Approver, error) { return approver, nil }
	t.Cleanup(func() { newApprover = original })
}

func withInteractive(t *testing.T, interactive bool) {
	t.Helper()
	original := isInteractive
	isInteractive = func() bool { return interactive }
	t.Cleanup(func() { isInteractive = original })
}

func TestListCmd_ArgsValidation(t *testing.T) {
	err := listCmd.Args(listCmd, []string{})
	require.Error(t, err)
	assert.Equal(t, dirsnap.ExitUsageError, dirsnap.ExitCodeForError(err))
}

func TestListCmd_FlatNames(t *testing.T) {
	root := newProjectDir(t)

	stdout, _, err := executeCommand(t, "list", root)
	require.NoError(t, err)
	assert.Equal(t, "0\ta.txt\n1\tb.txt\n2\tsub/\n", stdout)
}

func TestListCmd_RecursiveRelativeFilesOnly(t *testing.T) {
	root := newProjectDir(t)

	stdout, _, err := executeCommand(t, "list", root, "-R", "-r", "-f")
	require.NoError(t, err)
	assert.Equal(t, "0\ta.txt\n1\tb.txt\n2\t"+filepath.Join("sub", "c.txt")+"\n", stdout)
}

func TestListCmd_JSON(t *testing.T) {
	root := newProjectDir(t)

	stdout, _, err := executeCommand(t, "list", root, "-R", "--format", "json")
	require.NoError(t, err)

	var doc snapshotDocument
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, root, doc.Path)
	assert.Equal(t, 4, doc.Count)
	assert.Len(t, doc.Entries, 4)
	assert.True(t, doc.Options.Recursive)
	assert.NotEmpty(t, doc.ID)
}

func TestListCmd_ConflictingPathModes(t *testing.T) {
	root := newProjectDir(t)

	_, _, err := executeCommand(t, "list", root, "-a", "-r")
	require.ErrorIs(t, err, dirsnap.ErrInvalidConfig)
	assert.Equal(t, dirsnap.ExitUsageError, dirsnap.ExitCodeForError(err))
}

func TestListCmd_MissingDirectory(t *testing.T) {
	_, _, err := executeCommand(t, "list", filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, dirsnap.ErrNotFound)
	assert.Equal(t, dirsnap.ExitNotFound, dirsnap.ExitCodeForError(err))
}

func TestListCmd_UnsupportedFormat(t *testing.T) {
	root := newProjectDir(t)

	_, _, err := executeCommand(t, "list", root, "--format", "xml")
	require.ErrorIs(t, err, dirsnap.ErrInvalidConfig)
}

func TestTreeCmd_Text(t *testing.T) {
	root := newProjectDir(t)

	stdout, _, err := executeCommand(t, "tree", root)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "project")
	assert.Contains(t, stdout, "sub/")
	assert.Contains(t, lines[4], "└── c.txt")
}

func TestTreeCmd_YAML(t *testing.T) {
	root := newProjectDir(t)

	stdout, _, err := executeCommand(t, "tree", root, "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "0: a.txt")
	assert.Contains(t, stdout, "1: b.txt")
	assert.Contains(t, stdout, string(filepath.Separator)+"sub:")
}

func TestRmCmd_ByName(t *testing.T) {
	root := newProjectDir(t)

	stdout, _, err := executeCommand(t, "rm", root, "a.txt")
	require.NoError(t, err)
	assert.Equal(t, "deleted\t0\ta.txt\n", stdout)
	assert.NoFileExists(t, filepath.Join(root, "a.txt"))
	assert.FileExists(t, filepath.Join(root, "b.txt"))
}

func TestRmCmd_ByIndex(t *testing.T) {
	root := newProjectDir(t)

	_, _, err := executeCommand(t, "rm", root, "--index", "1")
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(root, "b.txt"))
	assert.FileExists(t, filepath.Join(root, "a.txt"))
}

func TestRmCmd_RecursiveRelative(t *testing.T) {
	root := newProjectDir(t)

	_, _, err := executeCommand(t, "rm", root, "-R", "-r", filepath.Join("sub", "c.txt"))
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(root, "sub", "c.txt"))
}

func TestRmCmd_UnknownEntryDeletesNothing(t *testing.T) {
	root := newProjectDir(t)

	_, _, err := executeCommand(t, "rm", root, "a.txt", "nope.txt")
	require.ErrorIs(t, err, dirsnap.ErrNotFound)
	assert.FileExists(t, filepath.Join(root, "a.txt"))
}

func TestRmCmd_InvalidIndex(t *testing.T) {
	root := newProjectDir(t)

	_, _, err := executeCommand(t, "rm", root, "--index", "x")
	require.ErrorIs(t, err, dirsnap.ErrInvalidConfig)

	_, _, err = executeCommand(t, "rm", root, "--index", "99")
	require.ErrorIs(t, err, dirsnap.ErrNotFound)
}

func TestRmCmd_Directory(t *testing.T) {
	root := newProjectDir(t)

	_, _, err := executeCommand(t, "rm", root, "sub/")
	require.ErrorIs(t, err, dirsnap.ErrIsDirectory)
	assert.Equal(t, dirsnap.ExitIsDirectory, dirsnap.ExitCodeForError(err))
	assert.DirExists(t, filepath.Join(root, "sub"))
}

func TestRmCmd_PickRequiresInteractive(t *testing.T) {
	root := newProjectDir(t)
	withInteractive(t, false)

	_, _, err := executeCommand(t, "rm", root, "--pick")
	require.ErrorIs(t, err, dirsnap.ErrInvalidConfig)
}

func TestRmCmd_Pick(t *testing.T) {
	root := newProjectDir(t)
	withInteractive(t, true)

	var offered []components.Option
	original := pickEntries
	pickEntries = func(_ string, options []components.Option) ([]int, bool, error) {
		offered = options
		return []int{1}, true, nil
	}
	t.Cleanup(func() { pickEntries = original })

	_, _, err := executeCommand(t, "rm", root, "--pick")
	require.NoError(t, err)

	require.Len(t, offered, 3)
	assert.False(t, offered[0].Disabled)
	assert.True(t, offered[2].Disabled, "directories cannot be picked")
	assert.NoFileExists(t, filepath.Join(root, "b.txt"))
	assert.FileExists(t, filepath.Join(root, "a.txt"))
}

func TestRmCmd_PickCancelled(t *testing.T) {
	root := newProjectDir(t)
	withInteractive(t, true)

	original := pickEntries
	pickEntries = func(string, []components.Option) ([]int, bool, error) { return nil, false, nil }
	t.Cleanup(func() { pickEntries = original })

	_, _, err := executeCommand(t, "rm", root, "--pick")
	require.ErrorIs(t, err, dirsnap.ErrApprovalDenied)
}

func TestCopyCmd_Full(t *testing.T) {
	root := newProjectDir(t)
	dest := t.TempDir()

	stdout, _, err := executeCommand(t, "copy", root, dest, "--verify")
	require.NoError(t, err)
	assert.Contains(t, stdout, "copied 3 files")
	assert.FileExists(t, filepath.Join(dest, "project", "sub", "c.txt"))
}

func TestCopyCmd_Flat(t *testing.T) {
	root := newProjectDir(t)
	dest := t.TempDir()

	_, _, err := executeCommand(t, "copy", root, dest, "--flat")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dest, "a.txt"))
	assert.NoDirExists(t, filepath.Join(dest, "project"))
}

func TestCopyCmd_MissingDestination(t *testing.T) {
	root := newProjectDir(t)

	_, _, err := executeCommand(t, "copy", root, filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, dirsnap.ErrNotFound)
}

func TestCopyCmd_IntoSourceRefused(t *testing.T) {
	root := newProjectDir(t)

	_, _, err := executeCommand(t, "copy", root, filepath.Join(root, "sub"))
	require.ErrorIs(t, err, dirsnap.ErrInvalidConfig)
	assert.NoDirExists(t, filepath.Join(root, "sub", "project"))
}

func TestCopyCmd_DryRunWritesNothing(t *testing.T) {
	root := newProjectDir(t)
	dest := t.TempDir()

	stdout, _, err := executeCommand(t, "copy", root, dest, "--dry-run", "--verify")
	require.NoError(t, err)
	assert.Equal(t, "would copy 3 files and 2 directories to "+filepath.Join(dest, "project")+"\n", stdout)

	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCopyCmd_DryRunRelativePaths(t *testing.T) {
	root := newProjectDir(t)
	t.Chdir(filepath.Dir(root))
	require.NoError(t, os.Mkdir("backup", 0755))

	stdout, _, err := executeCommand(t, "copy", "project", "backup", "--dry-run", "--flat")
	require.NoError(t, err)
	assert.Contains(t, stdout, "would copy 3 files")
	assert.NoFileExists(t, filepath.Join("backup", "a.txt"))
}

func TestCopyCmd_IgnoreLineEndings(t *testing.T) {
	root := newProjectDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("one\r\ntwo\r\n"), 0644))
	dest := t.TempDir()

	stdout, _, err := executeCommand(t, "copy", root, dest, "--ignore-line-endings")
	require.NoError(t, err)
	assert.Contains(t, stdout, "copied 3 files")
	assert.FileExists(t, filepath.Join(dest, "project", "a.txt"))
}

func TestEmptyCmd_Approved(t *testing.T) {
	root := newProjectDir(t)
	approver := &stubApprover{approve: true}
	withApprover(t, approver)

	stdout, _, err := executeCommand(t, "empty", root)
	require.NoError(t, err)
	assert.Equal(t, root, approver.target)
	assert.Equal(t, "emptied "+root+"\n", stdout)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEmptyCmd_Remove(t *testing.T) {
	root := newProjectDir(t)
	withApprover(t, &stubApprover{approve: true})

	_, _, err := executeCommand(t, "empty", root, "--remove")
	require.NoError(t, err)
	assert.NoDirExists(t, root)
}

func TestEmptyCmd_Denied(t *testing.T) {
	root := newProjectDir(t)
	withApprover(t, &stubApprover{approve: false})

	_, _, err := executeCommand(t, "empty", root)
	require.ErrorIs(t, err, dirsnap.ErrApprovalDenied)
	assert.Equal(t, dirsnap.ExitApprovalDenied, dirsnap.ExitCodeForError(err))
	assert.FileExists(t, filepath.Join(root, "a.txt"))
}

func TestEmptyCmd_NonInteractiveWithoutForce(t *testing.T) {
	root := newProjectDir(t)
	withInteractive(t, false)

	_, _, err := executeCommand(t, "empty", root)
	require.ErrorIs(t, err, dirsnap.ErrInvalidConfig)
	assert.FileExists(t, filepath.Join(root, "a.txt"))
}

func TestCommands_Registered(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range []string{"list", "tree", "rm", "copy", "empty", "config", "version"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestCompleteFormats(t *testing.T) {
	matches, directive := completeFormats(&cobra.Command{}, nil, "y")
	assert.Equal(t, []string{"yaml"}, matches)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
}
