package framework

import "context"

// Named is an abstraction for things with a name.
type Named interface {
	Name() string
}

// Runnable defines a generic interface for background runners.
type Runnable interface {
	Run(context.Context) error
}

// Vector identifies an interrupt source.
type Vector int

// Handler services an interrupt.
type Handler interface {
	ServeInterrupt(InterruptContext)
}

// HandlerFunc is the func form of Handler.
type HandlerFunc func(InterruptContext)

// ServeInterrupt implements Handler.
func (f HandlerFunc) ServeInterrupt(ic InterruptContext) {
	f(ic)
}

// Pender marks vectors pending.
type Pender interface {
	// Pend marks the vector pending. Pending an already pending vector is
	// a no-op, the handler runs once.
	Pend(Vector)
}

// InterruptContext provides the context of the interrupt being serviced.
type InterruptContext interface {
	// Context retrieves context.Context.
	Context() context.Context
	// Vector is the vector being serviced.
	Vector() Vector
	// PriorityLevel gets the priority level of the vector.
	PriorityLevel() int

	Pender
}

// Binder provides specific logic to bind handlers to a Dispatcher.
type Binder interface {
	BindTo(*Dispatcher)
}

// PriorityLevels is the total levels of priorities.
const PriorityLevels int = 16

// Predefine priority levels. Lower levels are serviced first.
const (
	PrLvTop    int = 0
	PrLvHigh   int = 4
	PrLvNormal int = 8
	PrLvLow    int = 12
	PrLvIdle   int = PriorityLevels - 1

	// PrLvLink is the priority level of the serial link DMA vectors.
	PrLvLink = PrLvNormal
)
