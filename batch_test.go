package fincalc

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchRun_PartialFailures(t *testing.T) {
	p := NewBatchProcessor(4, nil)

	result := p.Run(context.Background(), []string{"a", "b", "c", "d"}, func(ctx context.Context, unit string) error {
		switch unit {
		case "b":
			return errors.New("no price for b")
		case "c":
			panic("boom")
		}
		return nil
	})

	assert.Equal(t, 2, result.Processed)
	require.Len(t, result.Failures, 2)

	messages := map[string]string{}
	for _, f := range result.Failures {
		messages[f.Unit] = f.Message
	}
	assert.Equal(t, "no price for b", messages["b"])
	assert.Contains(t, messages["c"], "panic")
}

func TestBatchRun_EmptyAndAllGood(t *testing.T) {
	p := NewBatchProcessor(2, nil)

	result := p.Run(context.Background(), nil, func(ctx context.Context, unit string) error {
		return nil
	})
	assert.Zero(t, result.Processed)
	assert.Empty(t, result.Failures)

	result = p.Run(context.Background(), []string{"x", "y"}, func(ctx context.Context, unit string) error {
		return nil
	})
	assert.Equal(t, 2, result.Processed)
	assert.Empty(t, result.Failures)
}

func TestBatchRun_CancelledContext(t *testing.T) {
	p := NewBatchProcessor(2, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := p.Run(ctx, []string{"a", "b"}, func(ctx context.Context, unit string) error {
		t.Error("unit ran despite cancelled context")
		return nil
	})

	assert.Zero(t, result.Processed)
	assert.Len(t, result.Failures, 2)
}

func TestBatchRun_RespectsLimit(t *testing.T) {
	p := NewBatchProcessor(2, nil)

	var current, peak atomic.Int32
	units := make([]string, 16)
	for i := range units {
		units[i] = fmt.Sprintf("unit-%d", i)
	}

	result := p.Run(context.Background(), units, func(ctx context.Context, unit string) error {
		n := current.Add(1)
		for {
			old := peak.Load()
			if n <= old || peak.CompareAndSwap(old, n) {
				break
			}
		}
		current.Add(-1)
		return nil
	})

	assert.Equal(t, len(units), result.Processed)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}
