// Package batch runs bill generation jobs on a worker pool.
package batch

import (
	"context"
	"sync"
	"time"

	"github.com/rs/xid"
	"go.uber.org/zap"

	"github.com/worksbill/billgen-go/pkg/billgen/faults"
	"github.com/worksbill/billgen-go/pkg/billgen/models"
)

// Job is one generation unit of work.
type Job struct {
	// ID is a unique job identifier.
	ID string
	// InputPath is the input workbook.
	InputPath string
	// OutputPath is where the generated workbook is written.
	OutputPath string
}

// NewJob creates a Job with a generated ID.
func NewJob(inputPath, outputPath string) Job {
	return Job{
		ID:         xid.New().String(),
		InputPath:  inputPath,
		OutputPath: outputPath,
	}
}

// Result is the outcome of one job.
type Result struct {
	// Job is the processed job.
	Job Job
	// Summary is the derived bill summary on success.
	Summary *models.Summary
	// Err is the job error, nil on success.
	Err error
	// Category classifies Err; empty on success.
	Category faults.Category
	// Elapsed is the job wall time.
	Elapsed time.Duration
}

// Func processes one job and returns its summary.
type Func func(ctx context.Context, job Job) (*models.Summary, error)

// Pool is a fixed-size worker pool. Transient faults are retried per the
// pool's retry policy before a job is reported failed.
type Pool struct {
	workers int
	logger  *zap.Logger
	policy  faults.RetryPolicy
}

// NewPool creates a pool with the given number of workers (minimum 1).
func NewPool(workers int, logger *zap.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pool{
		workers: workers,
		logger:  logger,
		policy:  faults.DefaultRetryPolicy(),
	}
}

// Process runs all jobs through fn and returns one result per job, in job
// order. Cancelling ctx stops dispatching; jobs never started report the
// context error.
func (p *Pool) Process(ctx context.Context, jobs []Job, fn Func) []Result {
	results := make([]Result, len(jobs))
	done := make([]bool, len(jobs))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = p.runJob(ctx, jobs[i], fn)
				done[i] = true
			}
		}()
	}

dispatch:
	for i := range jobs {
		select {
		case <-ctx.Done():
			break dispatch
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()

	// Jobs that were never dispatched carry the cancellation error.
	for i := range results {
		if !done[i] {
			results[i] = Result{
				Job:      jobs[i],
				Err:      ctx.Err(),
				Category: faults.Classify(ctx.Err()),
			}
		}
	}

	return results
}

func (p *Pool) runJob(ctx context.Context, job Job, fn Func) Result {
	start := time.Now()
	var summary *models.Summary
	err := faults.Retry(ctx, p.policy, func() error {
		var runErr error
		summary, runErr = fn(ctx, job)
		return runErr
	})
	result := Result{
		Job:     job,
		Summary: summary,
		Err:     err,
		Elapsed: time.Since(start),
	}
	if err != nil {
		result.Category = faults.Classify(err)
		p.logger.Warn("batch job failed",
			zap.String("job", job.ID),
			zap.String("input", job.InputPath),
			zap.String("category", string(result.Category)),
			zap.Error(err))
	} else {
		p.logger.Info("batch job done",
			zap.String("job", job.ID),
			zap.String("input", job.InputPath),
			zap.Duration("elapsed", result.Elapsed))
	}
	return result
}
