package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequireDirectory validates that exactly one directory argument is provided.
// Returns a helpful error message with usage and examples if missing or too many.
func RequireDirectory(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <directory>

Usage: %s

Example:
  %s ./project -R`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
	}
	return nil
}

// RequireDirectoryAndEntries validates a directory followed by zero or more
// entries. Entries may only be omitted when pick is set.
func RequireDirectoryAndEntries(pick func() bool) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 {
			return fmt.Errorf(`missing required argument: <directory>

Usage: %s

Example:
  %s ./project a.txt b.txt`, cmd.UseLine(), cmd.CommandPath())
		}
		if len(args) < 2 && !pick() {
			return fmt.Errorf(`missing required argument: <entry>

Usage: %s

Example:
  %s ./project a.txt
  %s ./project --pick`, cmd.UseLine(), cmd.CommandPath(), cmd.CommandPath())
		}
		return nil
	}
}

// RequireSourceAndDestination validates that exactly two arguments are provided.
func RequireSourceAndDestination(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf(`missing required argument: <source> <destination>

Usage: %s

Example:
  %s ./project ./backup --verify`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 2 {
		return fmt.Errorf("accepts 2 arg(s), received %d", len(args))
	}
	return nil
}
