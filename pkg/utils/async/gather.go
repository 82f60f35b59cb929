package async

import (
	"context"
	"runtime/debug"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/texpack/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// Gather runs task(ctx, i) for every i in [0, n) concurrently and waits until
// all of them have settled. The returned slice holds the error of each task at
// its own index; a failing task never cancels the others.
//
// Parameters:
//   - limit: maximum number of tasks running at once, <= 0 means unbounded
//
// Behavior:
//   - Each task writes only its own slot, so no locking is required
//   - Panics are recovered, logged with stack trace and reported as the task's error
func Gather(ctx context.Context, n, limit int, task func(ctx context.Context, i int) error) []error {
	results := make([]error, n)
	if n == 0 {
		return results
	}

	var eg errgroup.Group
	if limit > 0 {
		eg.SetLimit(limit)
	}

	for i := 0; i < n; i++ {
		eg.Go(func() error {
			results[i] = runTask(ctx, i, task)
			return nil
		})
	}

	// tasks always return nil to the group; failures live in results
	_ = eg.Wait()

	return results
}

func runTask(ctx context.Context, i int, task func(ctx context.Context, i int) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			logging.From(ctx).Error("panic in gathered task",
				"index", i,
				"recover", r,
				"stack", string(stack))
			err = goerr.New("task panicked", goerr.V("index", i), goerr.V("recover", r))
		}
	}()

	return task(ctx, i)
}
