package framework

import (
	"context"
	"fmt"
	"sync"

	"github.com/golang/glog"
)

// Dispatcher emulates a nested vectored interrupt controller. Handlers are
// bound to vectors at a priority level; pended vectors are serviced on the
// dispatcher goroutine, highest priority (lowest level) first. Handlers run
// to completion, a higher priority vector pended meanwhile is serviced right
// after the current handler returns.
type Dispatcher struct {
	vectors map[Vector]*vectorEntry
	levels  [PriorityLevels][]*vectorEntry
	runners []Runnable
	lock    sync.Mutex

	wakeUpCh chan struct{}
}

type vectorEntry struct {
	vector   Vector
	level    int
	handlers []Handler
	pending  bool
}

type interruptCtx struct {
	*Dispatcher
	ctx   context.Context
	entry *vectorEntry
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		vectors:  make(map[Vector]*vectorEntry),
		wakeUpCh: make(chan struct{}, 1),
	}
}

// Add adds Binders.
func (d *Dispatcher) Add(binders ...Binder) *Dispatcher {
	for _, binder := range binders {
		binder.BindTo(d)
	}
	return d
}

// Bind registers handlers for a vector at the priority level. A vector
// stays at the level it was first bound at.
func (d *Dispatcher) Bind(priorityLevel int, v Vector, handlers ...Handler) *Dispatcher {
	if priorityLevel < 0 || priorityLevel >= PriorityLevels {
		panic(fmt.Sprintf("framework: invalid priority level %d", priorityLevel))
	}
	d.lock.Lock()
	defer d.lock.Unlock()
	entry := d.vectors[v]
	if entry == nil {
		entry = &vectorEntry{vector: v, level: priorityLevel}
		d.vectors[v] = entry
		d.levels[priorityLevel] = append(d.levels[priorityLevel], entry)
	} else if entry.level != priorityLevel {
		panic(fmt.Sprintf("framework: vector %d already bound at level %d", v, entry.level))
	}
	entry.handlers = append(entry.handlers, handlers...)
	return d
}

// AddRunnable adds Runnable implementions started along with Run.
func (d *Dispatcher) AddRunnable(runnables ...Runnable) *Dispatcher {
	d.runners = append(d.runners, runnables...)
	return d
}

// Pend implements Pender. It is safe to call from any goroutine.
func (d *Dispatcher) Pend(v Vector) {
	d.lock.Lock()
	entry := d.vectors[v]
	if entry != nil {
		entry.pending = true
	}
	d.lock.Unlock()
	if entry == nil {
		glog.Warningf("pend unbound vector %d", v)
		return
	}
	select {
	case d.wakeUpCh <- struct{}{}:
	default:
	}
}

// Run implements Runnable.
func (d *Dispatcher) Run(ctx context.Context) error {
	runner := NewRunnerWith(ctx)
	runner.Go(d.runners...)
	defer runner.Wait()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-d.wakeUpCh:
			d.Dispatch(ctx)
		}
	}
}

// Dispatch services pending vectors until none is left and returns the
// number of handler invocations.
func (d *Dispatcher) Dispatch(ctx context.Context) int {
	var count int
	for {
		entry := d.takePending()
		if entry == nil {
			return count
		}
		ic := &interruptCtx{Dispatcher: d, ctx: ctx, entry: entry}
		for _, h := range entry.handlers {
			h.ServeInterrupt(ic)
			count++
		}
	}
}

func (d *Dispatcher) takePending() *vectorEntry {
	d.lock.Lock()
	defer d.lock.Unlock()
	for _, entries := range d.levels {
		for _, entry := range entries {
			if entry.pending {
				entry.pending = false
				return entry
			}
		}
	}
	return nil
}

func (c *interruptCtx) Context() context.Context {
	return c.ctx
}

func (c *interruptCtx) Vector() Vector {
	return c.entry.vector
}

func (c *interruptCtx) PriorityLevel() int {
	return c.entry.level
}
