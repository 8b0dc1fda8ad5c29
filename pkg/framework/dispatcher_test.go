package framework

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	vecUSB Vector = iota + 1
	vecRx
	vecTx
	vecUnbound
)

func TestDispatchPriorityOrder(t *testing.T) {
	var order []Vector
	record := HandlerFunc(func(ic InterruptContext) { order = append(order, ic.Vector()) })

	d := NewDispatcher().
		Bind(PrLvLink, vecTx, record).
		Bind(PrLvHigh, vecUSB, record).
		Bind(PrLvLink, vecRx, record)
	d.Pend(vecRx)
	d.Pend(vecTx)
	d.Pend(vecUSB)
	d.Pend(vecUSB)
	require.Equal(t, 3, d.Dispatch(context.Background()))
	require.Equal(t, []Vector{vecUSB, vecTx, vecRx}, order)
	require.Zero(t, d.Dispatch(context.Background()))
}

func TestDispatchPendFromHandler(t *testing.T) {
	var order []Vector
	d := NewDispatcher()
	d.Bind(PrLvHigh, vecUSB, HandlerFunc(func(ic InterruptContext) {
		require.Equal(t, PrLvHigh, ic.PriorityLevel())
		order = append(order, ic.Vector())
	}))
	d.Bind(PrLvLow, vecRx, HandlerFunc(func(ic InterruptContext) {
		order = append(order, ic.Vector())
		if len(order) == 1 {
			ic.Pend(vecUSB)
			ic.Pend(vecRx)
		}
	}))
	d.Pend(vecRx)
	require.Equal(t, 3, d.Dispatch(context.Background()))
	require.Equal(t, []Vector{vecRx, vecUSB, vecRx}, order)
}

func TestDispatchMultipleHandlers(t *testing.T) {
	var calls int
	count := HandlerFunc(func(InterruptContext) { calls++ })
	d := NewDispatcher().Bind(PrLvLink, vecTx, count).Bind(PrLvLink, vecTx, count)
	d.Pend(vecTx)
	d.Pend(vecUnbound)
	require.Equal(t, 2, d.Dispatch(context.Background()))
	require.Equal(t, 2, calls)
}

func TestBindInvalid(t *testing.T) {
	d := NewDispatcher().Bind(PrLvLink, vecTx)
	require.Panics(t, func() { d.Bind(PrLvHigh, vecTx) })
	require.Panics(t, func() { d.Bind(PriorityLevels, vecRx) })
	require.Panics(t, func() { d.Bind(-1, vecRx) })
}

type binderFunc func(*Dispatcher)

func (f binderFunc) BindTo(d *Dispatcher) { f(d) }

type runFunc func(context.Context) error

func (f runFunc) Run(ctx context.Context) error { return f(ctx) }

func TestDispatcherRun(t *testing.T) {
	served := make(chan Vector, 4)
	stopped := make(chan struct{})
	d := NewDispatcher()
	d.Add(binderFunc(func(d *Dispatcher) {
		d.Bind(PrLvLink, vecRx, HandlerFunc(func(ic InterruptContext) {
			served <- ic.Vector()
		}))
	})).AddRunnable(runFunc(func(ctx context.Context) error {
		d.Pend(vecRx)
		<-ctx.Done()
		close(stopped)
		return ctx.Err()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- d.Run(ctx) }()

	select {
	case v := <-served:
		require.Equal(t, vecRx, v)
	case <-time.After(time.Second):
		t.Fatal("vector not serviced")
	}
	cancel()
	require.True(t, errors.Is(<-errCh, context.Canceled))
	select {
	case <-stopped:
	default:
		t.Fatal("runnable still running after Run returned")
	}
}

func TestResourceClaim(t *testing.T) {
	res := NewResource(PrLvLink)
	require.Equal(t, PrLvLink, res.Ceiling)

	var counter int
	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func() {
			for n := 0; n < 100; n++ {
				res.Claim(func() { counter++ })
			}
			done <- struct{}{}
		}()
	}
	for i := 0; i < 4; i++ {
		<-done
	}
	require.Equal(t, 400, counter)
}

func TestAggregatedError(t *testing.T) {
	var errs AggregatedError
	require.NoError(t, errs.Add(nil).Aggregate())

	errA, errB := errors.New("a"), errors.New("b")
	errs.Add(errA)
	require.Equal(t, "a", errs.Aggregate().Error())
	errs.Add(nil, errB)
	err := errs.Aggregate()
	require.Equal(t, "multiple errors:\n  a\n  b", err.Error())
	require.True(t, errors.Is(err, errB))
}

type stubCloser struct{ closed int }

func (c *stubCloser) Close() error {
	c.closed++
	return nil
}

func TestRunWithContextCloser(t *testing.T) {
	c := &stubCloser{}
	errFn := errors.New("fn")
	require.Equal(t, errFn, RunWithContextCloser(context.Background(), c, func() error { return errFn }))
	require.Equal(t, 1, c.closed)

	ctx, cancel := context.WithCancel(context.Background())
	stop := make(chan struct{})
	c = &stubCloser{}
	go cancel()
	err := RunWithContextCloser(ctx, closerFunc(func() error {
		c.Close()
		close(stop)
		return nil
	}), func() error {
		<-stop
		return nil
	})
	require.Equal(t, context.Canceled, err)
	require.Equal(t, 1, c.closed)
}

func TestRunnerStopsGroup(t *testing.T) {
	errLink := errors.New("link closed")
	var stopped bool
	r := NewRunner().Go(
		NamedRun("link", runFunc(func(context.Context) error { return errLink })),
		runFunc(func(ctx context.Context) error {
			<-ctx.Done()
			stopped = true
			return ctx.Err()
		}),
	)
	err := r.Wait()
	require.True(t, stopped)
	require.True(t, errors.Is(err, errLink))
	require.Equal(t, "link: link closed", err.Error())

	r = NewRunner().Go(runFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}))
	r.Stop()
	require.NoError(t, r.Wait())
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
