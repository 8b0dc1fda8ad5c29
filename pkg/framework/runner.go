package framework

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"github.com/golang/glog"
)

type namedRunnable struct {
	Runnable
	name string
}

func (r *namedRunnable) Name() string {
	return r.name
}

// NamedRun names a Runnable for logs and errors.
func NamedRun(name string, runnable Runnable) Runnable {
	return &namedRunnable{name: name, Runnable: runnable}
}

// Runner runs a group of Runnables sharing one lifetime: the group stops
// as soon as any of them returns, e.g. when the link stream ends.
type Runner struct {
	ctx    context.Context
	cancel context.CancelFunc
	count  int
	doneCh chan runResult
	exitCh chan struct{}
}

type runResult struct {
	name string
	err  error
}

// NewRunner creates a Runner.
func NewRunner() *Runner {
	return NewRunnerWith(context.Background())
}

// NewRunnerWith creates a Runner stopped when ctx is done.
func NewRunnerWith(ctx context.Context) *Runner {
	ctx, cancel := context.WithCancel(ctx)
	return &Runner{
		ctx:    ctx,
		cancel: cancel,
		doneCh: make(chan runResult, 1),
		exitCh: make(chan struct{}),
	}
}

// HandleSignals stops the group on SIGINT or SIGTERM. A second signal makes
// Wait return without waiting for the Runnables.
func (r *Runner) HandleSignals() *Runner {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		glog.Infof("%v: stopping", sig)
		r.cancel()
		<-sigCh
		glog.Error("signaled again, exit now")
		close(r.exitCh)
	}()
	return r
}

// Go starts Runnables in the group.
func (r *Runner) Go(runnables ...Runnable) *Runner {
	for _, runnable := range runnables {
		name := strconv.Itoa(r.count)
		if named, ok := runnable.(Named); ok {
			name = named.Name()
		}
		r.count++
		glog.V(4).Infof("%s: start", name)
		go func(runnable Runnable, name string) {
			err := runnable.Run(r.ctx)
			if r.ctx.Err() == nil {
				glog.Warningf("%s exited (%v), stopping", name, err)
			} else {
				glog.V(4).Infof("%s: stopped", name)
			}
			r.cancel()
			r.doneCh <- runResult{name: name, err: err}
		}(runnable, name)
	}
	return r
}

// Stop stops the group without waiting.
func (r *Runner) Stop() {
	r.cancel()
}

// Wait waits for every Runnable to return. Errors other than cancellation
// are reported with the name of the Runnable.
func (r *Runner) Wait() error {
	defer r.cancel()
	var errs AggregatedError
	for n := 0; n < r.count; n++ {
		select {
		case <-r.exitCh:
			return errors.New("forced exit")
		case res := <-r.doneCh:
			if res.err != nil && !errors.Is(res.err, context.Canceled) {
				errs.Add(fmt.Errorf("%s: %w", res.name, res.err))
			}
		}
	}
	return errs.Aggregate()
}

// RunWithContextCancel runs fn, which takes no context, until it returns or
// ctx is done. On ctx done, onCancel must make fn return, and the context
// error is returned.
func RunWithContextCancel(ctx context.Context, onCancel func(), fn func() error) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- fn()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	if onCancel != nil {
		onCancel()
	}
	<-errCh
	return ctx.Err()
}

// RunWithContextCloser is RunWithContextCancel unblocking fn by closing
// closer. closer is closed exactly once, also when fn returns first.
func RunWithContextCloser(ctx context.Context, closer io.Closer, fn func() error) error {
	var once sync.Once
	closeOnce := func() {
		once.Do(func() { closer.Close() })
	}
	defer closeOnce()
	return RunWithContextCancel(ctx, closeOnce, fn)
}
