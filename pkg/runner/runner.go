package runner

import (
	"context"
	"fmt"
	"sync"

	"github.com/yaklabco/checkmark/internal/logging"
	"github.com/yaklabco/checkmark/pkg/issue"
)

// FileChecker checks one file.
type FileChecker interface {
	CheckFile(ctx context.Context, path string) ([]issue.Issue, error)
}

// Runner checks discovered files with a worker pool.
type Runner struct {
	Checker FileChecker
}

// New creates a Runner.
func New(checker FileChecker) *Runner {
	return &Runner{Checker: checker}
}

// Run discovers files under opts.Paths and checks them concurrently.
// Outcomes are returned in discovery order regardless of completion order.
// A failed file is recorded in its outcome and does not stop the run.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	return r.RunFiles(ctx, files, opts.Jobs)
}

// RunFiles checks an explicit list of files.
func (r *Runner) RunFiles(ctx context.Context, files []string, jobs int) (*Result, error) {
	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs = workers(jobs, len(files))

	logging.FromContext(ctx).Debug("checking files", logging.FieldFiles, len(files), logging.FieldJobs, jobs)

	workCh := make(chan int)
	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range workCh {
				if ctx.Err() != nil {
					return
				}
				outcomes[idx] = r.checkOne(ctx, files[idx])
				done[idx] = true
			}
		}()
	}

	// Feed work.
	go func() {
		defer close(workCh)
		for idx := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- idx:
			}
		}
	}()

	wg.Wait()

	for idx, outcome := range outcomes {
		if done[idx] {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	return result, nil
}

func (r *Runner) checkOne(ctx context.Context, path string) FileOutcome {
	outcome := FileOutcome{Path: path}

	issues, err := r.Checker.CheckFile(ctx, path)
	if err != nil {
		logging.FromContext(ctx).Debug("check failed", logging.FieldPath, path, logging.FieldError, err)
		outcome.Error = err
		return outcome
	}

	outcome.Issues = issues
	return outcome
}
