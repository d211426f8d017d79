package snapshot

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/vvka-141/dirsnap/internal/checksum"
	"github.com/vvka-141/dirsnap/pkg/dirsnap"
)

// VerifyCopy compares the raw checksum of every copied file with its source.
// All mismatches are reported, each wrapping dirsnap.ErrChecksumMismatch.
func (s *Snapshot) VerifyCopy(result CopyResult, calculator checksum.Calculator) error {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	return s.verifyCopy(result, calculator.CalculateRaw)
}

// VerifyCopyNormalized is VerifyCopy with line endings normalized to LF on
// both sides, so a copy that only differs in CRLF versus LF passes.
func (s *Snapshot) VerifyCopyNormalized(result CopyResult, calculator checksum.Calculator) error {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	return s.verifyCopy(result, calculator.CalculateNormalized)
}

func (s *Snapshot) verifyCopy(result CopyResult, sum func([]byte) string) error {

	var errs []error
	for i, relPath := range result.Copied {
		source, err := s.fs.ReadFile(filepath.Join(result.Source, relPath))
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", relPath, err)
		}
		copied, err := s.fs.ReadFile(result.Files[i])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", result.Files[i], err)
		}

		want := sum(source)
		got := sum(copied)
		if want != got {
			errs = append(errs, fmt.Errorf("%w: %s (source %s, copy %s)",
				dirsnap.ErrChecksumMismatch, relPath, short(want), short(got)))
		}
	}

	if len(errs) == 0 {
		s.logger.Verbose("Verified %d copied files", len(result.Copied))
	}
	return errors.Join(errs...)
}

func short(sum string) string {
	if len(sum) > 12 {
		return sum[:12]
	}
	return sum
}
