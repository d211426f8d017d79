package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/dirsnap/internal/config"
	"github.com/vvka-141/dirsnap/internal/logging"
	"github.com/vvka-141/dirsnap/internal/snapshot"
)

// outputFormats contains valid --format values for shell completion.
var outputFormats = []string{config.FormatText, config.FormatJSON, config.FormatYAML}

// completeFormats provides shell completion for --format values.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var matches []string
	for _, format := range outputFormats {
		if strings.HasPrefix(format, toComplete) {
			matches = append(matches, format)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

// completeDirectories provides shell completion for a single directory argument.
func completeDirectories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	// Let the shell handle directory completion
	return nil, cobra.ShellCompDirectiveFilterDirs
}

// completeDirectoryPair provides directory completion for source and destination.
func completeDirectoryPair(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 1 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveFilterDirs
}

// completeEntries completes the directory first, then the entries of its
// snapshot rendered with the mode flags already on the command line.
func completeEntries(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return nil, cobra.ShellCompDirectiveFilterDirs
	}

	cfg, err := loadSettings(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	opts, err := resolveOptions(cmd, cfg, rmFlags.mode)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	snap, err := snapshot.New(args[0], opts, logging.NewNullLogger())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	chosen := make(map[string]bool, len(args)-1)
	for _, arg := range args[1:] {
		chosen[arg] = true
	}

	var matches []string
	for _, value := range snap.All() {
		if !chosen[value] && strings.HasPrefix(value, toComplete) {
			matches = append(matches, value)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}
