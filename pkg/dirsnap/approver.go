package dirsnap

import "context"

// Approver handles user interaction for approval workflows,
// particularly for destructive operations like emptying a directory.
//
// Implementations:
//   - ForcedApprover: Shows countdown and automatically approves
//   - InteractiveApprover: Prompts user to type the directory name for confirmation
type Approver interface {
	// RequestApproval prompts for confirmation before deleting the contents of target.
	// Returns true if approved. A cancelled context returns ctx.Err().
	RequestApproval(ctx context.Context, target string) (bool, error)
}
