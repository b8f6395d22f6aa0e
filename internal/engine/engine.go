// Package engine runs green-building assessments end to end: emissions
// prediction, certification scoring, what-if analysis, scenario comparison
// and portfolio fan-out.
package engine

import (
	"errors"

	"github.com/qaim-b/the-green-pulse/internal/certification"
	"github.com/qaim-b/the-green-pulse/internal/engine/batch"
	"github.com/qaim-b/the-green-pulse/internal/predict"
)

// ErrNoPredictor is returned by New when no predictor is supplied.
var ErrNoPredictor = errors.New("engine requires a predictor")

// Engine combines a predictor with an Assessor. It holds no mutable state
// and is safe for concurrent use.
type Engine struct {
	predictor   predict.Predictor
	assessor    *certification.Assessor
	batchSize   int
	concurrency int
}

// Option configures an Engine.
type Option func(*Engine)

// WithBatchSize sets how many portfolio buildings are evaluated per batch.
func WithBatchSize(n int) Option {
	return func(e *Engine) {
		e.batchSize = n
	}
}

// WithConcurrency bounds how many buildings are evaluated at once.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		e.concurrency = n
	}
}

// New builds an Engine. A nil assessor uses the default LEED ladder.
func New(predictor predict.Predictor, assessor *certification.Assessor, opts ...Option) (*Engine, error) {
	if predictor == nil {
		return nil, ErrNoPredictor
	}
	if assessor == nil {
		var err error
		if assessor, err = certification.NewAssessor(); err != nil {
			return nil, err
		}
	}

	e := &Engine{
		predictor:   predictor,
		assessor:    assessor,
		batchSize:   batch.DefaultBatchSize,
		concurrency: batch.DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// ModelID names the model behind the predictor, or "" when it does not
// identify itself.
func (e *Engine) ModelID() string {
	if id, ok := e.predictor.(predict.Identifier); ok {
		return id.Identity()
	}
	return ""
}

// Assessor returns the scoring pipeline in use.
func (e *Engine) Assessor() *certification.Assessor {
	return e.assessor
}
