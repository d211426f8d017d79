package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vvka-141/dirsnap/internal/snapshot"
	"github.com/vvka-141/dirsnap/internal/tui"
	"github.com/vvka-141/dirsnap/internal/tui/components"
	"github.com/vvka-141/dirsnap/pkg/dirsnap"
)

var rmFlags struct {
	mode  modeFlags
	index bool
	pick  bool
}

// pickEntries is swapped out in tests; the default runs the terminal picker.
var pickEntries = func(title string, options []components.Option) ([]int, bool, error) {
	return tui.RunPicker(title, options, os.Stdin, os.Stderr)
}

var rmCmd = &cobra.Command{
	Use:   "rm <directory> [entry...]",
	Short: "Delete files named by snapshot entries",
	Long: `Take a snapshot of a directory and delete the files behind the given entries.

Entries are matched against the rendered values of the snapshot, so the mode
flags must match the way the entries were listed. With --index, arguments are
entry indices instead.

Every argument is resolved before anything is deleted: an unknown entry aborts
the command with nothing removed. Deletion stops at the first failure.
Directories and files without the owner write bit are refused.

Examples:
  # Delete two immediate children by name
  dirsnap rm ./project a.txt b.txt

  # Delete by relative path in a recursive snapshot
  dirsnap rm ./project -R -r sub/c.txt

  # Delete by index as printed by "dirsnap list"
  dirsnap rm ./project --index 0 3

  # Choose entries interactively
  dirsnap rm ./project -R --pick`,
	Args: RequireDirectoryAndEntries(func() bool { return rmFlags.pick }),
	RunE: runRm,
}

func init() {
	addModeFlags(rmCmd, &rmFlags.mode)
	rmCmd.Flags().BoolVar(&rmFlags.index, "index", false, "Treat entry arguments as indices")
	rmCmd.Flags().BoolVar(&rmFlags.pick, "pick", false, "Choose entries in an interactive picker")
	rmCmd.ValidArgsFunction = completeEntries
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	opts, err := resolveOptions(cmd, cfg, rmFlags.mode)
	if err != nil {
		return err
	}

	logger := newLogger(cmd)
	snap, err := snapshot.New(args[0], opts, logger)
	if err != nil {
		return err
	}

	var indices []int
	if rmFlags.pick {
		indices, err = pickIndices(snap)
	} else {
		indices, err = resolveIndices(snap, args[1:], rmFlags.index)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, index := range indices {
		value, _ := snap.Get(index)
		if err := snap.DeleteEntry(index); err != nil {
			return err
		}
		fmt.Fprintf(out, "deleted\t%d\t%s\n", index, value)
	}
	logger.Verbose("Deleted %d entries, %d remain", len(indices), snap.Count())
	return nil
}

// resolveIndices maps every argument to a live index, failing on the first
// argument that matches nothing. Repeated arguments resolve once.
func resolveIndices(snap *snapshot.Snapshot, args []string, byIndex bool) ([]int, error) {
	seen := make(map[int]bool, len(args))
	indices := make([]int, 0, len(args))
	for _, arg := range args {
		var (
			index int
			ok    bool
		)
		if byIndex {
			n, err := strconv.Atoi(arg)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid index %q", dirsnap.ErrInvalidConfig, arg)
			}
			index, ok = n, snap.Has(n)
		} else {
			index, ok = snap.Index(arg)
		}
		if !ok {
			return nil, fmt.Errorf("%w: no entry %q in %s", dirsnap.ErrNotFound, arg, snap.Path())
		}
		if seen[index] {
			continue
		}
		seen[index] = true
		indices = append(indices, index)
	}
	return indices, nil
}

// pickIndices lets the user choose entries. Directories are listed but
// cannot be chosen.
func pickIndices(snap *snapshot.Snapshot) ([]int, error) {
	if !isInteractive() {
		return nil, fmt.Errorf("%w: --pick requires an interactive terminal", dirsnap.ErrInvalidConfig)
	}

	options := make([]components.Option, 0, snap.Count())
	for i, value := range snap.All() {
		options = append(options, components.Option{Index: i, Label: value, Disabled: snap.IsDir(i)})
	}

	chosen, ok, err := pickEntries("Select entries to delete from "+snap.Path(), options)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: selection cancelled", dirsnap.ErrApprovalDenied)
	}
	return chosen, nil
}
