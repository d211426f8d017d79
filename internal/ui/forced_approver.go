package ui

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/vvka-141/dirsnap/pkg/dirsnap"
)

//go:embed assets/warning.txt
var dangerBanner string

// ForcedApprover implements the Approver interface for forced (non-interactive)
// approval. It displays a countdown and automatically approves after the countdown,
// used when the --force flag is provided.
type ForcedApprover struct {
	verbose bool
	seconds int
	output  io.Writer
	sleepFn func(time.Duration)
}

// NewForcedApprover creates a new ForcedApprover writing to stderr.
func NewForcedApprover(verbose bool) dirsnap.Approver {
	return &ForcedApprover{
		verbose: verbose,
		seconds: dirsnap.DefaultApprovalCountdown,
		output:  os.Stderr,
		sleepFn: time.Sleep,
	}
}

// RequestApproval displays a countdown and automatically approves after the countdown.
func (a *ForcedApprover) RequestApproval(ctx context.Context, target string) (bool, error) {
	warningText := strings.ReplaceAll(dangerBanner, "${target}", target)
	fmt.Fprintln(a.output)
	fmt.Fprint(a.output, warningText)
	fmt.Fprintln(a.output)

	seconds := a.seconds
	if seconds <= 0 {
		seconds = dirsnap.DefaultApprovalCountdown
	}
	for i := seconds; i > 0; i-- {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		default:
			fmt.Fprintf(a.output, "\rDeleting in: %d seconds... (Press Ctrl+C to cancel)", i)
			a.sleepFn(1 * time.Second)
		}
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	fmt.Fprintf(a.output, "\r✓ Proceeding with deletion of %s...                              \n", target)
	return true, nil
}

// Verify ForcedApprover implements the Approver interface at compile time
var _ dirsnap.Approver = (*ForcedApprover)(nil)
