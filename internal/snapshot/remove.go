package snapshot

import (
	"context"
	"time"

	"github.com/vvka-141/dirsnap/internal/files/filesystem"
	"github.com/vvka-141/dirsnap/internal/retry"
	"github.com/vvka-141/dirsnap/pkg/dirsnap"
)

// removeRetries bounds how often a busy file or directory is retried.
const removeRetries = 3

var removeExecutor = retry.NewExecutor(
	retry.NewFileSystemErrorClassifier(),
	retry.NewExponentialBackoff(removeRetries),
)

// loggedRemover reports each retry through logger.
func loggedRemover(logger dirsnap.Logger) *retry.Executor {
	return removeExecutor.WithOnRetry(func(attempt int, err error, delay time.Duration) {
		logger.Verbose("Removal busy, retry %d/%d in %s: %v", attempt+1, removeRetries, delay, err)
	})
}

func removeFile(exec *retry.Executor, fsProvider filesystem.FileSystemProvider, path string) error {
	return exec.Execute(context.Background(), func(context.Context) error {
		return fsProvider.Remove(path)
	})
}

func removeDir(exec *retry.Executor, fsProvider filesystem.FileSystemProvider, path string) error {
	return exec.Execute(context.Background(), func(context.Context) error {
		return fsProvider.RemoveDir(path)
	})
}
