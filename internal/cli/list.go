package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/dirsnap/internal/config"
	"github.com/vvka-141/dirsnap/internal/snapshot"
)

var listFlags struct {
	mode   modeFlags
	format string
}

var listCmd = &cobra.Command{
	Use:   "list <directory>",
	Short: "List the entries of a directory snapshot",
	Long: `Take a snapshot of a directory and print its entries.

Entries are printed as "index<TAB>value" in traversal order. In the default
(name) mode a flat listing marks directories with a trailing separator; a
recursive listing does not.

Examples:
  # Immediate children, bare names
  dirsnap list ./project

  # Whole subtree, paths relative to the root, files only
  dirsnap list ./project -R -r -f

  # Structured output
  dirsnap list ./project -R --format json`,
	Args: RequireDirectory,
	RunE: runList,
}

func init() {
	addModeFlags(listCmd, &listFlags.mode)
	listCmd.Flags().StringVar(&listFlags.format, "format", config.FormatText, "Output format: text, json or yaml")
	_ = listCmd.RegisterFlagCompletionFunc("format", completeFormats)
	listCmd.ValidArgsFunction = completeDirectories
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	opts, err := resolveOptions(cmd, cfg, listFlags.mode)
	if err != nil {
		return err
	}
	format, err := resolveFormat(cmd, cfg, listFlags.format)
	if err != nil {
		return err
	}

	snap, err := snapshot.New(args[0], opts, newLogger(cmd))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == config.FormatText {
		if err := writeEntries(out, snap, paletteFor(out)); err != nil {
			return fmt.Errorf("failed to write entries: %w", err)
		}
		return nil
	}
	return writeStructured(out, format, newSnapshotDocument(snap))
}
