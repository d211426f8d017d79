package dirsnap

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess          = 0  // Command completed successfully
	ExitGeneralError     = 1  // Unknown or unclassified error
	ExitUsageError       = 2  // CLI usage error or invalid configuration
	ExitPanic            = 3  // Internal panic (unexpected crash)
	ExitNotFound         = 10 // Root, entry, or target file missing
	ExitUnreadable       = 11 // Directory could not be listed
	ExitIsDirectory      = 12 // File operation targeted a directory
	ExitReadOnlyFile     = 13 // Deletion target not writable
	ExitReadOnly         = 14 // Write against a read-only backend
	ExitChecksumMismatch = 15 // Copy verification failed
	ExitApprovalDenied   = 16 // User declined a destructive operation
)

const (
	// ConfigFileName is the project configuration file looked up in the working directory.
	ConfigFileName = "dirsnap.yaml"

	// EnvPrefix prefixes every environment override key.
	EnvPrefix = "DIRSNAP_"

	// DefaultApprovalCountdown is the number of seconds the forced approver waits.
	DefaultApprovalCountdown = 5
)
