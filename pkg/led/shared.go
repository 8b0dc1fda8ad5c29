package led

import "github.com/robotalks/kbd.go/pkg/framework"

// Link DMA vectors, DMA1 channel 2 transmits and channel 3 receives.
const (
	DefaultTxVector framework.Vector = 12
	DefaultRxVector framework.Vector = 13
)

// Shared is a Led guarded by a priority-ceiling resource. The link
// interrupt handlers and application code all go through it.
type Shared struct {
	RxVector framework.Vector
	TxVector framework.Vector

	res *framework.Resource
	led *Led
}

// NewShared wraps l. ceiling is the priority level the link vectors are
// bound at.
func NewShared(l *Led, ceiling int) *Shared {
	return &Shared{
		RxVector: DefaultRxVector,
		TxVector: DefaultTxVector,
		res:      framework.NewResource(ceiling),
		led:      l,
	}
}

// Claim runs fn with exclusive access to the Led.
func (s *Shared) Claim(fn func(*Led)) {
	s.res.Claim(func() { fn(s.led) })
}

// Resource returns the guarding resource.
func (s *Shared) Resource() *framework.Resource {
	return s.res
}

// RxInterrupt is the receive-complete handler.
func (s *Shared) RxInterrupt(framework.InterruptContext) {
	s.Claim((*Led).Poll)
}

// TxInterrupt is the transmit-complete handler.
func (s *Shared) TxInterrupt(framework.InterruptContext) {
	s.Claim((*Led).TxInterrupt)
}

// BindTo implements framework.Binder.
func (s *Shared) BindTo(d *framework.Dispatcher) {
	d.Bind(s.res.Ceiling, s.RxVector, framework.HandlerFunc(s.RxInterrupt))
	d.Bind(s.res.Ceiling, s.TxVector, framework.HandlerFunc(s.TxInterrupt))
}
