package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const asciiLogo = `     _ _                            
  __| (_)_ __ ___ _ __   __ _ _ __  
 / _' | | '__/ __| '_ \ / _' | '_ \ 
| (_| | | |  \__ \ | | | (_| | |_) |
 \__,_|_|_|  |___/_| |_|\__,_| .__/ 
                             |_|    `

var rootCmd = &cobra.Command{
	Use:   "dirsnap",
	Short: "Point-in-time directory snapshots",
	Long: asciiLogo + `

dirsnap takes a snapshot of a directory: an ordered, indexed list of its
entries plus a nested tree of the hierarchy. Entries can be rendered as bare
names, paths relative to the root, or resolved absolute paths.

Snapshots are never kept live. Deleting an entry retires its index; the
remaining entries keep their numbers.

Configuration precedence (lowest to highest):
  dirsnap.yaml  →  --env-file (DIRSNAP_* keys)  →  command line flags

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error or invalid configuration
  3  - Panic or unexpected system error
  10 - Directory, entry or file not found
  11 - Directory could not be listed
  12 - Deletion target is a directory
  13 - Deletion target is read-only
  14 - Write against a read-only filesystem
  15 - Copy verification failed
  16 - User denied approval`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(rootCmd.OutOrStdout(), rootCmd.ErrOrStderr())
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for dirsnap")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (default: ./dirsnap.yaml when present)")
	rootCmd.PersistentFlags().String("env-file", "", "Dotenv file with DIRSNAP_* overrides")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
