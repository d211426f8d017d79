package cli

import (
	"github.com/spf13/cobra"

	"github.com/vvka-141/dirsnap/internal/config"
	"github.com/vvka-141/dirsnap/internal/snapshot"
)

var treeFlags struct {
	format string
}

var treeCmd = &cobra.Command{
	Use:   "tree <directory>",
	Short: "Print the directory hierarchy",
	Long: `Print the nested tree of a directory.

The tree has a single top-level key, the resolved root. It is independent of
the path mode flags. In yaml and json output, directories are keyed by
separator + name and files receive sequential integer keys.

Examples:
  dirsnap tree ./project
  dirsnap tree ./project --format yaml`,
	Args: RequireDirectory,
	RunE: runTree,
}

func init() {
	treeCmd.Flags().StringVar(&treeFlags.format, "format", config.FormatText, "Output format: text, json or yaml")
	_ = treeCmd.RegisterFlagCompletionFunc("format", completeFormats)
	treeCmd.ValidArgsFunction = completeDirectories
	rootCmd.AddCommand(treeCmd)
}

func runTree(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	format, err := resolveFormat(cmd, cfg, treeFlags.format)
	if err != nil {
		return err
	}

	snap, err := snapshot.New(args[0], cfg.Options(), newLogger(cmd))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == config.FormatText {
		return writeTree(out, snap.Tree(), paletteFor(out))
	}
	return writeStructured(out, format, snap.Tree())
}
