// Package batch evaluates large portfolios in fixed-size batches.
//
// Key features:
//   - Configurable batch size (default 100 buildings per batch)
//   - Bounded fan-out inside each batch via errgroup
//   - Per-item results: one failing building never aborts its siblings
//   - Progress snapshots after every batch for logging and UI updates
//   - Context-aware cancellation
//
// Memory overhead is O(batch size) beyond the result slice itself.
package batch
