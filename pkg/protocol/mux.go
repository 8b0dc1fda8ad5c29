package protocol

import (
	"sync"

	"github.com/golang/glog"
)

// Handler processes a decoded message. It is called from interrupt context
// and must not retain msg.Data.
type Handler interface {
	HandleMessage(*Message)
}

// HandlerFunc is func form of Handler.
type HandlerFunc func(*Message)

// HandleMessage implements Handler.
func (f HandlerFunc) HandleMessage(msg *Message) {
	f(msg)
}

// Mux routes messages by MsgType. Messages of an unrouted type are logged
// and dropped. Taps see every message before it is routed.
type Mux struct {
	lock     sync.RWMutex
	handlers map[MsgType]Handler
	taps     []Handler
}

// Tap registers h to observe every message.
func (m *Mux) Tap(h Handler) *Mux {
	m.lock.Lock()
	m.taps = append(m.taps, h)
	m.lock.Unlock()
	return m
}

// Handle registers h for messages of type t, replacing any previous one.
func (m *Mux) Handle(t MsgType, h Handler) *Mux {
	m.lock.Lock()
	if m.handlers == nil {
		m.handlers = make(map[MsgType]Handler)
	}
	m.handlers[t] = h
	m.lock.Unlock()
	return m
}

// HandleMessage implements Handler.
func (m *Mux) HandleMessage(msg *Message) {
	m.lock.RLock()
	h, taps := m.handlers[msg.Type], m.taps
	m.lock.RUnlock()
	for _, tap := range taps {
		tap.HandleMessage(msg)
	}
	if h == nil {
		glog.V(2).Infof("lmsg: %s", msg)
		return
	}
	h.HandleMessage(msg)
}
