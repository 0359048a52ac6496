// Package retry re-runs an operation whose failure is expected to clear up
// on its own, waiting longer between each attempt.
//
// Collecting a directory that is being edited can race with the editor:
// a file listed by the scan may be gone by the time it is read, because
// many editors save by writing a temporary file and renaming it over the
// original. VanishedFileClassifier treats exactly those errors as
// transient.
//
// # Example Usage
//
//	executor := retry.NewExecutor(retry.NewVanishedFileClassifier(), retry.NewExponentialBackoff(3))
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    coll, err = c.CollectDirectory(ctx, root)
//	    return err
//	})
//
// # Thread Safety
//
// Executor instances are safe for concurrent use. Use WithOnRetry() to create
// independent configurations per goroutine.
package retry
