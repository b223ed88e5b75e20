package fincalc

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// UnitFunc recomputes one independent unit of work, identified by the
// caller (e.g. "2025-03-01/QDVE").
type UnitFunc func(ctx context.Context, unit string) error

// UnitFailure records why one unit of a batch failed.
type UnitFailure struct {
	Unit    string
	Message string
}

// BatchResult is the outcome of a batch run: how many units completed and
// what went wrong with the rest.
type BatchResult struct {
	Processed int
	Failures  []UnitFailure
	Duration  time.Duration
}

// BatchProcessor fans recomputation out over a bounded pool of goroutines.
// A failing unit is recorded and never aborts the rest of the batch; the
// computation units themselves stay synchronous and dispatcher-agnostic.
type BatchProcessor struct {
	limit int
	log   *zap.Logger
}

// NewBatchProcessor returns a processor running at most limit units
// concurrently. A limit below 1 means one at a time.
func NewBatchProcessor(limit int, logger *zap.Logger) *BatchProcessor {
	if limit < 1 {
		limit = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchProcessor{limit: limit, log: logger.Named("batch")}
}

// Run executes fn for every unit. Units already started always run to
// completion; cancelling ctx only stops not-yet-started units, which are
// recorded as failures.
func (p *BatchProcessor) Run(ctx context.Context, units []string, fn UnitFunc) BatchResult {
	start := time.Now()

	var mu sync.Mutex
	result := BatchResult{}
	fail := func(unit, message string) {
		mu.Lock()
		defer mu.Unlock()
		result.Failures = append(result.Failures, UnitFailure{Unit: unit, Message: message})
	}

	g := new(errgroup.Group)
	g.SetLimit(p.limit)
	for _, unit := range units {
		if err := ctx.Err(); err != nil {
			fail(unit, fmt.Sprintf("not started: %v", err))
			continue
		}
		g.Go(func() error {
			if err := p.runUnit(ctx, unit, fn); err != nil {
				p.log.Warn("unit failed", zap.String("unit", unit), zap.Error(err))
				fail(unit, err.Error())
				return nil
			}
			mu.Lock()
			result.Processed++
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	result.Duration = time.Since(start)
	p.log.Info("batch done",
		zap.Int("processed", result.Processed),
		zap.Int("failed", len(result.Failures)),
		zap.Duration("duration", result.Duration))
	return result
}

// runUnit shields the batch from a panicking unit.
func (p *BatchProcessor) runUnit(ctx context.Context, unit string, fn UnitFunc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(ctx, unit)
}
