package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vvka-141/dirsnap/pkg/dirsnap"
)

// InteractiveApprover implements the Approver interface for console-based
// interactive confirmation. It prompts the user to type the directory name
// to confirm destructive operations.
type InteractiveApprover struct {
	verbose bool
	input   io.Reader
	output  io.Writer
}

// NewInteractiveApprover creates a new InteractiveApprover reading stdin.
func NewInteractiveApprover(verbose bool) dirsnap.Approver {
	return &InteractiveApprover{
		verbose: verbose,
		input:   os.Stdin,
		output:  os.Stderr,
	}
}

// RequestApproval prompts the user to type the target name to confirm.
// Either the full path or its base name is accepted.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, target string) (bool, error) {
	name := baseName(target)
	fmt.Fprintf(a.output, "\n⚠️  WARNING: You are about to delete everything under '%s'\n", target)
	fmt.Fprintln(a.output, "This will permanently delete all files and subdirectories!")
	fmt.Fprintf(a.output, "\nTo confirm, type the directory name '%s' and press Enter: ", name)

	// Read user input with context cancellation support
	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(a.input)
		input, err := reader.ReadString('\n')
		if err != nil && !(err == io.EOF && input != "") {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(input)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		return false, fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		if input != "" && (input == name || input == target) {
			fmt.Fprintln(a.output, "✓ Confirmed. Proceeding with deletion...")
			return true, nil
		}
		fmt.Fprintf(a.output, "✗ Input '%s' does not match directory name '%s'. Operation cancelled.\n", input, name)
		return false, nil
	}
}

func baseName(target string) string {
	trimmed := strings.TrimRight(target, `/\`)
	if i := strings.LastIndexAny(trimmed, `/\`); i >= 0 {
		trimmed = trimmed[i+1:]
	}
	if trimmed == "" {
		return target
	}
	return trimmed
}

// Verify InteractiveApprover implements the Approver interface at compile time
var _ dirsnap.Approver = (*InteractiveApprover)(nil)
