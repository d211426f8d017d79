package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vvka-141/dirsnap/internal/checksum"
	"github.com/vvka-141/dirsnap/internal/files/filesystem"
	"github.com/vvka-141/dirsnap/internal/snapshot"
)

var copyFlags struct {
	flat              bool
	verify            bool
	ignoreLineEndings bool
	dryRun            bool
}

var copyCmd = &cobra.Command{
	Use:   "copy <source> <destination>",
	Short: "Copy a directory tree into an existing destination",
	Long: `Copy the whole source tree into destination, which must already exist.

By default the copy is nested under destination/<source base name>. With
--flat the contents of source are copied directly into destination.
Existing directories are reused and existing files are overwritten.

With --verify every copied file is compared with its source by SHA-256.
--ignore-line-endings verifies with CRLF and CR normalized to LF.

With --dry-run the copy is performed against an in-memory layer over the
disk, so nothing is written and the summary shows what would be copied.
The destination must not be the source or lie inside it.

Examples:
  dirsnap copy ./project ./backup
  dirsnap copy ./project ./backup --flat --verify
  dirsnap copy ./project ./backup --dry-run`,
	Args: RequireSourceAndDestination,
	RunE: runCopy,
}

func init() {
	copyCmd.Flags().BoolVar(&copyFlags.flat, "flat", false, "Copy the contents of source directly into destination")
	copyCmd.Flags().BoolVar(&copyFlags.verify, "verify", false, "Compare SHA-256 checksums after copying (default from config)")
	copyCmd.Flags().BoolVar(&copyFlags.ignoreLineEndings, "ignore-line-endings", false, "Verify with line endings normalized to LF (implies --verify)")
	copyCmd.Flags().BoolVar(&copyFlags.dryRun, "dry-run", false, "Copy into memory only and report what would be written")
	copyCmd.ValidArgsFunction = completeDirectoryPair
	rootCmd.AddCommand(copyCmd)
}

func runCopy(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	verify := cfg.Copy.Verify
	if cmd.Flags().Changed("verify") {
		verify = copyFlags.verify
	}
	ignoreLineEndings := cfg.Copy.IgnoreLineEndings
	if cmd.Flags().Changed("ignore-line-endings") {
		ignoreLineEndings = copyFlags.ignoreLineEndings
		verify = verify || ignoreLineEndings
	}

	source, dest := args[0], args[1]
	var fsProvider filesystem.FileSystemProvider = filesystem.NewOSFileSystem()
	verb := "copied"
	if copyFlags.dryRun {
		if source, err = filepath.Abs(source); err != nil {
			return err
		}
		if dest, err = filepath.Abs(dest); err != nil {
			return err
		}
		fsProvider = filesystem.NewDryRunFileSystem()
		verb = "would copy"
	}

	snap, err := snapshot.NewWithFS(fsProvider, source, cfg.Options(), newLogger(cmd))
	if err != nil {
		return err
	}

	result, err := snap.CopyTo(dest, !copyFlags.flat)
	if err != nil {
		return err
	}

	if verify {
		calculator := checksum.New()
		if ignoreLineEndings {
			err = snap.VerifyCopyNormalized(result, calculator)
		} else {
			err = snap.VerifyCopy(result, calculator)
		}
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %d files and %d directories to %s\n",
		verb, len(result.Files), len(result.Dirs), result.Root)
	return nil
}
