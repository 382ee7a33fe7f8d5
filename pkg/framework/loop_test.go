package framework

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoopOrder(t *testing.T) {
	var order []string
	ctl := func(name string) Controller {
		return ControlFunc(func(cc ControlContext) error {
			order = append(order, name)
			return nil
		})
	}
	l := NewLoop()
	l.AddController(PrLvLow, ctl("low"))
	l.AddController(PrLvPoll, ctl("poll"))
	l.AddController(PrLvNormal, ctl("normal1"), ctl("normal2"))
	l.RunIterations(context.Background(), 2)
	require.Equal(t, []string{
		"poll", "normal1", "normal2", "low",
		"poll", "normal1", "normal2", "low",
	}, order)
	require.Equal(t, uint64(2), l.Iterations())
}

func TestLoopContext(t *testing.T) {
	now := time.Unix(1000, 0)
	l := NewLoop()
	l.Clock = ClockFunc(func() time.Time { return now })
	var seen []uint64
	l.AddController(PrLvNormal, ControlFunc(func(cc ControlContext) error {
		require.Equal(t, now, cc.Time())
		require.Equal(t, PrLvNormal, cc.PriorityLevel())
		seen = append(seen, cc.Iteration())
		return errors.New("logged and ignored")
	}))
	l.RunIterations(context.Background(), 3)
	require.Equal(t, []uint64{1, 2, 3}, seen)
}

func TestLoopRunCanceled(t *testing.T) {
	l := NewLoop()
	l.Interval = time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())
	l.AddController(PrLvNormal, ControlFunc(func(cc ControlContext) error {
		if cc.Iteration() >= 3 {
			cancel()
		}
		return nil
	}))
	require.Equal(t, context.Canceled, l.Run(ctx))
	require.True(t, l.Iterations() >= 3)
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestRunner(t *testing.T) {
	var closed []int
	r := NewRunner()
	r.CloseOnExit(
		closerFunc(func() error { closed = append(closed, 1); return nil }),
		closerFunc(func() error { closed = append(closed, 2); return errors.New("close 2") }),
	)
	r.Go(RunFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}), RunFunc(func(ctx context.Context) error {
		return errors.New("fail")
	}))
	r.Stop()
	err := r.Wait()
	require.Error(t, err)
	agg, ok := err.(*AggregatedError)
	require.True(t, ok)
	require.Len(t, agg.Errors, 2)
	require.Equal(t, []int{2, 1}, closed)
}

func TestAggregatedError(t *testing.T) {
	var errs AggregatedError
	require.NoError(t, errs.Add(nil).Aggregate())
	errs.Add(errors.New("a"))
	require.Equal(t, "a", errs.Aggregate().Error())
	errs.Add(errors.New("b"))
	require.Equal(t, "Multiple errors:\na\nb", errs.Error())

	errClosed := errors.New("closed")
	errs.Add(fmt.Errorf("capture: %w", errClosed))
	require.True(t, errors.Is(errs.Aggregate(), errClosed))
}
