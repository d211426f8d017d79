package dirsnap

import (
	"errors"
	"strings"
)

// Sentinel errors for snapshot failures.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	err := snap.DeleteByName("a.txt")
//	if errors.Is(err, dirsnap.ErrReadOnlyFile) {
//	    // Handle a write-protected file
//	}
var (
	// ErrNotFound indicates the snapshot root, an entry, or a target file is absent.
	ErrNotFound = errors.New("not found")

	// ErrUnreadable indicates a directory could not be opened or listed.
	ErrUnreadable = errors.New("directory unreadable")

	// ErrIsDirectory indicates a file operation targeted a directory.
	ErrIsDirectory = errors.New("is a directory")

	// ErrReadOnlyFile indicates the deletion target is not writable.
	ErrReadOnlyFile = errors.New("file is read-only")

	// ErrReadOnly indicates a write against a read-only filesystem or collection.
	ErrReadOnly = errors.New("read-only")

	// ErrChecksumMismatch indicates a copied file differs from its source.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrApprovalDenied indicates the user denied approval for a destructive operation.
	ErrApprovalDenied = errors.New("approval denied")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// usageErrorPatterns are cobra/pflag messages produced by bad command lines.
var usageErrorPatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"requires at least",
	"required flag",
	"invalid argument",
	"missing required argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitUsageError
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	case errors.Is(err, ErrUnreadable):
		return ExitUnreadable
	case errors.Is(err, ErrIsDirectory):
		return ExitIsDirectory
	case errors.Is(err, ErrReadOnlyFile):
		return ExitReadOnlyFile
	case errors.Is(err, ErrReadOnly):
		return ExitReadOnly
	case errors.Is(err, ErrChecksumMismatch):
		return ExitChecksumMismatch
	case errors.Is(err, ErrApprovalDenied):
		return ExitApprovalDenied
	}

	errStr := err.Error()
	for _, pattern := range usageErrorPatterns {
		if strings.Contains(errStr, pattern) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
