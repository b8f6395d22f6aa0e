package batch

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Default batch processing configuration.
const (
	// DefaultBatchSize is the default number of buildings per batch.
	DefaultBatchSize = 100

	// MinBatchSize is the minimum allowed batch size.
	MinBatchSize = 1

	// MaxBatchSize is the maximum allowed batch size.
	MaxBatchSize = 1000

	// DefaultConcurrency is the default number of items evaluated in parallel.
	DefaultConcurrency = 8
)

// Common batch processing errors.
var (
	ErrInvalidBatchSize = errors.New("batch size must be between 1 and 1000")
	ErrNilCallback      = errors.New("item callback cannot be nil")
)

// ItemFunc evaluates one item. index is the item's position in the input.
type ItemFunc[T, R any] func(ctx context.Context, index int, item T) (R, error)

// ProgressCallback is an optional callback invoked after each batch completes.
type ProgressCallback func(snapshot ProgressSnapshot)

// Result is the outcome for one input item: either Value or Err is meaningful.
type Result[R any] struct {
	Index int
	Value R
	Err   error
}

// Processor maps items to results in fixed-size batches. Batches run one
// after another; items inside a batch fan out with bounded concurrency.
// A failing item never stops its siblings.
type Processor[T, R any] struct {
	batchSize   int
	concurrency int
	onProgress  ProgressCallback
}

// NewProcessor creates a processor with the given batch size and per-batch
// concurrency. concurrency < 1 is treated as 1.
func NewProcessor[T, R any](batchSize, concurrency int) (*Processor[T, R], error) {
	if batchSize < MinBatchSize || batchSize > MaxBatchSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBatchSize, batchSize)
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &Processor[T, R]{batchSize: batchSize, concurrency: concurrency}, nil
}

// WithProgressCallback sets a progress callback for the processor.
func (p *Processor[T, R]) WithProgressCallback(callback ProgressCallback) *Processor[T, R] {
	p.onProgress = callback
	return p
}

// Map evaluates fn for every item and returns one Result per item, in input
// order. Item errors are recorded in their Result. If ctx is cancelled the
// unevaluated items carry ctx.Err() and Map returns it as well.
func (p *Processor[T, R]) Map(ctx context.Context, items []T, fn ItemFunc[T, R]) ([]Result[R], error) {
	if fn == nil {
		return nil, ErrNilCallback
	}

	results := make([]Result[R], len(items))
	for i := range results {
		results[i].Index = i
	}
	if len(items) == 0 {
		return results, nil
	}

	batches := p.CalculateBatches(len(items))
	progress := NewProgress(len(items), len(batches), p.batchSize)

	for _, bounds := range batches {
		if err := ctx.Err(); err != nil {
			markCancelled(results[bounds[0]:], err)
			return results, err
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(p.concurrency)
		for i := bounds[0]; i < bounds[1]; i++ {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					results[i].Err = err
					return nil
				}
				value, err := fn(gctx, i, items[i])
				results[i].Value = value
				results[i].Err = err
				return nil
			})
		}
		// Item errors live in results; the group never fails.
		_ = g.Wait()

		failed := 0
		for _, r := range results[bounds[0]:bounds[1]] {
			if r.Err != nil {
				failed++
			}
		}
		progress.AddProcessed(bounds[1]-bounds[0], failed)
		if p.onProgress != nil {
			p.onProgress(progress.Snapshot())
		}
	}

	return results, ctx.Err()
}

func markCancelled[R any](results []Result[R], err error) {
	for i := range results {
		results[i].Err = err
	}
}

// GetBatchSize returns the configured batch size.
func (p *Processor[T, R]) GetBatchSize() int {
	return p.batchSize
}

// GetConcurrency returns the per-batch concurrency limit.
func (p *Processor[T, R]) GetConcurrency() int {
	return p.concurrency
}

// CalculateBatches returns the [start, end) boundaries for totalItems.
func (p *Processor[T, R]) CalculateBatches(totalItems int) [][2]int {
	total := totalItems / p.batchSize
	if totalItems%p.batchSize > 0 {
		total++
	}

	batches := make([][2]int, total)
	for i := range total {
		start := i * p.batchSize
		end := min(start+p.batchSize, totalItems)
		batches[i] = [2]int{start, end}
	}
	return batches
}

// Errors joins the non-nil item errors of results. Each is prefixed with
// label(index), or "item <index>" when label is nil.
func Errors[R any](results []Result[R], label func(index int) string) error {
	var errs []error
	for _, r := range results {
		if r.Err == nil {
			continue
		}
		name := fmt.Sprintf("item %d", r.Index)
		if label != nil {
			name = label(r.Index)
		}
		errs = append(errs, fmt.Errorf("%s: %w", name, r.Err))
	}
	return errors.Join(errs...)
}
