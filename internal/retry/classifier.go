package retry

import (
	"errors"
	"io/fs"
	"strings"
	"syscall"

	"github.com/vvka-141/dirsnap/pkg/dirsnap"
)

// transientErrnos are errors a later attempt can plausibly get past.
var transientErrnos = []syscall.Errno{
	syscall.EBUSY,
	syscall.EAGAIN,
	syscall.EINTR,
	syscall.ETXTBSY,
}

// transientPatterns cover platforms whose errors do not unwrap to an errno,
// notably Windows sharing violations.
var transientPatterns = []string{
	"being used by another process",
	"resource busy",
	"resource temporarily unavailable",
	"interrupted system call",
}

// FileSystemErrorClassifier implements dirsnap.ErrorClassifier for removals.
type FileSystemErrorClassifier struct{}

// NewFileSystemErrorClassifier creates a new filesystem error classifier.
func NewFileSystemErrorClassifier() *FileSystemErrorClassifier {
	return &FileSystemErrorClassifier{}
}

// IsTransient reports whether err is worth retrying.
func (c *FileSystemErrorClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission),
		errors.Is(err, dirsnap.ErrReadOnly):
		return false
	}

	for _, errno := range transientErrnos {
		if errors.Is(err, errno) {
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range transientPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

var _ dirsnap.ErrorClassifier = (*FileSystemErrorClassifier)(nil)
