package batch

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessor_Map(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	t.Run("PreservesOrder", func(t *testing.T) {
		p, err := NewProcessor[int, int](10, 4)
		require.NoError(t, err)

		results, err := p.Map(context.Background(), items, func(_ context.Context, _ int, v int) (int, error) {
			return v * v, nil
		})
		require.NoError(t, err)
		require.Len(t, results, 25)
		for i, r := range results {
			assert.Equal(t, i, r.Index)
			assert.Equal(t, i*i, r.Value)
			assert.NoError(t, r.Err)
		}
	})

	t.Run("FailuresStayPerItem", func(t *testing.T) {
		p, err := NewProcessor[int, int](7, 3)
		require.NoError(t, err)

		boom := errors.New("bad building")
		var calls int32
		results, err := p.Map(context.Background(), items, func(_ context.Context, _ int, v int) (int, error) {
			atomic.AddInt32(&calls, 1)
			if v%5 == 0 {
				return 0, boom
			}
			return v, nil
		})
		require.NoError(t, err)
		assert.Equal(t, int32(25), calls)

		failed := 0
		for _, r := range results {
			if r.Err != nil {
				failed++
				require.ErrorIs(t, r.Err, boom)
				assert.Zero(t, r.Index%5)
			}
		}
		assert.Equal(t, 5, failed)

		joined := Errors(results, nil)
		require.ErrorIs(t, joined, boom)
		assert.Contains(t, joined.Error(), "item 10")

		labelled := Errors(results, func(i int) string { return fmt.Sprintf("row-%d", i+1) })
		assert.Contains(t, labelled.Error(), "row-11: ")
		assert.NoError(t, Errors(results[1:5], nil))
	})

	t.Run("BoundedConcurrency", func(t *testing.T) {
		p, err := NewProcessor[int, int](25, 2)
		require.NoError(t, err)

		var inFlight, peak int32
		_, err = p.Map(context.Background(), items, func(_ context.Context, _ int, v int) (int, error) {
			n := atomic.AddInt32(&inFlight, 1)
			for {
				old := atomic.LoadInt32(&peak)
				if n <= old || atomic.CompareAndSwapInt32(&peak, old, n) {
					break
				}
			}
			atomic.AddInt32(&inFlight, -1)
			return v, nil
		})
		require.NoError(t, err)
		assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
	})

	t.Run("Cancelled", func(t *testing.T) {
		p, err := NewProcessor[int, int](5, 1)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		results, err := p.Map(ctx, items, func(_ context.Context, i int, v int) (int, error) {
			if i == 4 {
				cancel()
			}
			return v, nil
		})
		require.ErrorIs(t, err, context.Canceled)
		require.Len(t, results, 25)
		for _, r := range results[5:] {
			assert.ErrorIs(t, r.Err, context.Canceled)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		p, err := NewProcessor[int, int](DefaultBatchSize, DefaultConcurrency)
		require.NoError(t, err)
		results, err := p.Map(context.Background(), nil, func(context.Context, int, int) (int, error) {
			return 0, nil
		})
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("NilCallback", func(t *testing.T) {
		p, err := NewProcessor[int, int](DefaultBatchSize, DefaultConcurrency)
		require.NoError(t, err)
		_, err = p.Map(context.Background(), items, nil)
		require.ErrorIs(t, err, ErrNilCallback)
	})
}

func TestProcessor_Progress(t *testing.T) {
	items := make([]string, 12)
	p, err := NewProcessor[string, int](5, 2)
	require.NoError(t, err)

	var snaps []ProgressSnapshot
	p.WithProgressCallback(func(s ProgressSnapshot) { snaps = append(snaps, s) })

	_, err = p.Map(context.Background(), items, func(_ context.Context, i int, _ string) (int, error) {
		if i == 11 {
			return 0, errors.New("fail")
		}
		return i, nil
	})
	require.NoError(t, err)

	require.Len(t, snaps, 3)
	last := snaps[2]
	assert.Equal(t, 12, last.ProcessedItems)
	assert.Equal(t, 1, last.FailedItems)
	assert.Equal(t, 3, last.ProcessedBatches)
	assert.InDelta(t, 100.0, last.PercentComplete, 1e-9)
	assert.Equal(t, 5, snaps[0].ProcessedItems)
	assert.Zero(t, last.EstimatedTimeRemaining())
	assert.True(t, last.IsComplete())
	assert.False(t, snaps[0].IsComplete())
}

func TestNewProcessor_Validation(t *testing.T) {
	_, err := NewProcessor[int, int](0, 1)
	require.ErrorIs(t, err, ErrInvalidBatchSize)

	_, err = NewProcessor[int, int](MaxBatchSize+1, 1)
	require.ErrorIs(t, err, ErrInvalidBatchSize)

	p, err := NewProcessor[int, int](10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, p.GetConcurrency())
	assert.Equal(t, 10, p.GetBatchSize())
}

func TestCalculateBatches(t *testing.T) {
	p, err := NewProcessor[int, int](10, 1)
	require.NoError(t, err)

	assert.Equal(t, [][2]int{{0, 10}, {10, 20}, {20, 25}}, p.CalculateBatches(25))
	assert.Empty(t, p.CalculateBatches(0))
}

func TestProgress(t *testing.T) {
	prog := NewProgress(10, 2, 5)
	prog.AddProcessed(5, 1)
	assert.False(t, prog.Snapshot().IsComplete())
	prog.AddProcessed(5, 0)

	snap := prog.Snapshot()
	assert.True(t, snap.IsComplete())
	assert.Equal(t, 1, snap.FailedItems)
	assert.Equal(t, 2, snap.ProcessedBatches)
}

func TestProgressSnapshot_EstimatedTimeRemaining(t *testing.T) {
	snap := ProgressSnapshot{TotalItems: 40, ProcessedItems: 10, ElapsedTime: 2 * time.Second}
	assert.Equal(t, 6*time.Second, snap.EstimatedTimeRemaining())
	assert.False(t, snap.IsComplete())

	assert.Zero(t, ProgressSnapshot{TotalItems: 40}.EstimatedTimeRemaining())
}
