package framework

import "sync"

// Resource is state shared between interrupt handlers and application code.
// Ceiling is the highest priority level of any handler touching it. Claim
// grants exclusive access, which on the target masks every vector up to the
// ceiling and here serializes with the dispatcher goroutine.
type Resource struct {
	Ceiling int

	lock sync.Mutex
}

// NewResource creates a Resource with a priority ceiling.
func NewResource(ceiling int) *Resource {
	return &Resource{Ceiling: ceiling}
}

// Claim runs fn with exclusive access to the resource. Claims do not nest.
func (r *Resource) Claim(fn func()) {
	r.lock.Lock()
	defer r.lock.Unlock()
	fn()
}
