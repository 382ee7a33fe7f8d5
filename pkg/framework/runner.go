package framework

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang/glog"
)

// Runner runs Runnables in the background until the context is done,
// then releases registered resources.
type Runner struct {
	Context context.Context

	cancel  func()
	count   int
	errCh   chan error
	closers []io.Closer
}

// NewRunner creates a runner with a cancelable background context.
func NewRunner() *Runner {
	ctx, cancel := context.WithCancel(context.Background())
	return &Runner{Context: ctx, cancel: cancel, errCh: make(chan error, 1)}
}

// HandleSignals cancels the context on CtrlC and SIGTERM.
func (r *Runner) HandleSignals() *Runner {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		glog.Info("stop requested")
		r.cancel()
	}()
	return r
}

// Go spawns Runnables.
func (r *Runner) Go(runners ...Runnable) *Runner {
	for _, runner := range runners {
		name := "runner"
		if named, ok := runner.(Named); ok {
			name = named.Name()
		}
		r.count++
		go func(runner Runnable, name string) {
			glog.V(4).Infof("Runner[%s] started", name)
			err := runner.Run(r.Context)
			glog.V(4).Infof("Runner[%s] stopped: %v", name, err)
			r.errCh <- err
		}(runner, name)
	}
	return r
}

// CloseOnExit registers closers released by Wait.
func (r *Runner) CloseOnExit(closers ...io.Closer) *Runner {
	r.closers = append(r.closers, closers...)
	return r
}

// Stop cancels the context.
func (r *Runner) Stop() {
	r.cancel()
}

// Wait waits until all Runnables stop, closes registered closers in reverse
// order and aggregates errors.
func (r *Runner) Wait() error {
	var errs AggregatedError
	for ; r.count > 0; r.count-- {
		if err := <-r.errCh; err != context.Canceled {
			errs.Add(err)
		}
	}
	for i := len(r.closers) - 1; i >= 0; i-- {
		errs.Add(r.closers[i].Close())
	}
	r.closers = nil
	return errs.Aggregate()
}
