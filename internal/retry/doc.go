// Package retry retries filesystem mutations that fail for transient reasons,
// such as a file held open by another process or a busy device.
//
// # Example Usage
//
//	executor := retry.NewExecutor(retry.NewFileSystemErrorClassifier(), retry.NewExponentialBackoff(3))
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return fsProvider.Remove(path)
//	})
//
// # Error Classification
//
// The classifier treats busy, interrupted and sharing-violation errors as
// transient. Missing files, permission errors and read-only backends are fatal
// and returned after the first attempt.
//
// # Thread Safety
//
// Executor instances are safe for concurrent use. WithOnRetry returns an
// independent copy.
package retry
