package led

import (
	"github.com/golang/glog"

	"github.com/robotalks/kbd.go/pkg/protocol"
)

// Theme is the last theme state reported by the controller.
type Theme struct {
	ID         byte
	Brightness byte
	Speed      byte
	// Known is set once any report has been received.
	Known bool
}

// Theme returns the last reported theme state.
func (l *Led) Theme() Theme {
	return l.theme
}

// HandleMessage implements protocol.Handler.
func (l *Led) HandleMessage(msg *protocol.Message) {
	l.mux.HandleMessage(msg)
}

func (l *Led) handleLed(msg *protocol.Message) {
	switch msg.LedOp() {
	case protocol.LedOpAckThemeMode, protocol.LedOpAckGetThemeID:
		// [theme id]
		if len(msg.Data) >= 1 {
			l.theme.ID, l.theme.Known = msg.Data[0], true
		}
	case protocol.LedOpAckConfigCmd:
		// [theme id, brightness, animation speed]
		if len(msg.Data) >= 3 {
			l.theme = Theme{ID: msg.Data[0], Brightness: msg.Data[1], Speed: msg.Data[2], Known: true}
		}
	case protocol.LedOpAckSetIndividualKeys:
	default:
		glog.V(2).Infof("lmsg: %s", msg)
		return
	}
	glog.V(2).Infof("led %s %v", msg.LedOp(), msg.Data)
}
