package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/dirsnap/internal/snapshot"
	"github.com/vvka-141/dirsnap/internal/ui"
	"github.com/vvka-141/dirsnap/pkg/dirsnap"
)

var emptyFlags struct {
	remove bool
	force  bool
}

// newApprover picks the approval flow for destructive commands. Tests replace it.
var newApprover = func(force, verbose bool) (dirsnap.Approver, error) {
	if force {
		return ui.NewForcedApprover(verbose), nil
	}
	if !isInteractive() {
		return nil, fmt.Errorf("%w: refusing to empty a directory without --force in a non-interactive session", dirsnap.ErrInvalidConfig)
	}
	return ui.NewInteractiveApprover(verbose), nil
}

var emptyCmd = &cobra.Command{
	Use:   "empty <directory>",
	Short: "Delete everything under a directory",
	Long: `Recursively delete the contents of a directory.

The directory itself is kept unless --remove is given. Every child is
attempted; failures are reported together at the end, and the directory is
only removed when all of its contents were.

Interactive sessions ask you to type the directory name. Non-interactive
sessions must pass --force, which shows a short countdown instead.

Examples:
  dirsnap empty ./build
  dirsnap empty ./build --remove --force`,
	Args: RequireDirectory,
	RunE: runEmpty,
}

func init() {
	emptyCmd.Flags().BoolVar(&emptyFlags.remove, "remove", false, "Remove the directory itself afterward (default from config)")
	emptyCmd.Flags().BoolVar(&emptyFlags.force, "force", false, "Skip the confirmation prompt (shows a countdown)")
	emptyCmd.ValidArgsFunction = completeDirectories
	rootCmd.AddCommand(emptyCmd)
}

func runEmpty(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	remove := cfg.Empty.Remove
	if cmd.Flags().Changed("remove") {
		remove = emptyFlags.remove
	}

	verbose := getVerboseFlag(cmd)
	snap, err := snapshot.New(args[0], cfg.Options(), newLogger(cmd))
	if err != nil {
		return err
	}

	approver, err := newApprover(emptyFlags.force, verbose)
	if err != nil {
		return err
	}
	approved, err := approver.RequestApproval(cmd.Context(), snap.Path())
	if err != nil {
		return err
	}
	if !approved {
		return fmt.Errorf("%w: %s was not emptied", dirsnap.ErrApprovalDenied, snap.Path())
	}

	if err := snap.EmptyDir(remove); err != nil {
		return err
	}

	verb := "emptied"
	if remove {
		verb = "removed"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", verb, snap.Path())
	return nil
}
