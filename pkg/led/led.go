// Package led drives the LED controller MCU over the LED link.
//
// A Led is only ever touched from the link interrupt handlers or from
// application code holding its Shared resource. Commands are fire and
// forget: they return link.ErrWouldBlock while the previous frame is still
// being transmitted, and nothing correlates the replies.
package led

import (
	"github.com/golang/glog"
	"periph.io/x/conn/v3/gpio"

	"github.com/robotalks/kbd.go/pkg/keymatrix"
	"github.com/robotalks/kbd.go/pkg/link"
	"github.com/robotalks/kbd.go/pkg/protocol"
)

// Config payloads, one-hot over {theme, speed, brightness}.
var (
	nextThemePayload      = [3]byte{1, 0, 0}
	nextBrightnessPayload = [3]byte{0, 0, 1}
	nextSpeedPayload      = [3]byte{0, 1, 0}
)

// Led is the LED controller.
type Led struct {
	serial    *link.Serial
	rx        *link.Transfer
	indicator gpio.PinOut
	state     bool
	theme     Theme
	mux       protocol.Mux
}

// New creates a Led. The first receive is armed before New returns and the
// indicator line is driven low.
func New(serial *link.Serial, rxBuf []byte, indicator gpio.PinOut) (*Led, error) {
	if err := indicator.Out(gpio.Low); err != nil {
		return nil, err
	}
	l := &Led{
		serial:    serial,
		indicator: indicator,
	}
	l.mux.Handle(protocol.MsgTypeLed, protocol.HandlerFunc(l.handleLed))
	l.rx = serial.Receive(rxBuf)
	return l, nil
}

// Serial returns the link the controller sends on.
func (l *Led) Serial() *link.Serial {
	return l.serial
}

// Mux returns the router incoming frames are dispatched through. Handlers
// for other message types and taps can be registered on it.
func (l *Led) Mux() *protocol.Mux {
	return &l.mux
}

// On drives the indicator line high.
func (l *Led) On() error {
	return l.indicator.Out(gpio.High)
}

// Off drives the indicator line low.
func (l *Led) Off() error {
	return l.indicator.Out(gpio.Low)
}

// State reports whether the theme is on.
func (l *Led) State() bool {
	return l.state
}

// Toggle switches the theme on or off. The state flips whatever the send
// returns.
func (l *Led) Toggle() error {
	var err error
	if !l.state {
		err = l.ThemeMode()
	} else {
		err = l.SetTheme(0)
	}
	l.state = !l.state
	return err
}

// NextTheme advances to the next theme.
func (l *Led) NextTheme() error {
	return l.send(protocol.LedOpConfigCmd, nextThemePayload[:])
}

// NextBrightness advances to the next brightness step.
func (l *Led) NextBrightness() error {
	return l.send(protocol.LedOpConfigCmd, nextBrightnessPayload[:])
}

// NextAnimationSpeed advances to the next animation speed.
func (l *Led) NextAnimationSpeed() error {
	return l.send(protocol.LedOpConfigCmd, nextSpeedPayload[:])
}

// SetTheme selects a theme, 0 turns the lights off.
func (l *Led) SetTheme(id byte) error {
	return l.send(protocol.LedOpThemeMode, []byte{id})
}

// ThemeMode asks the controller to re-assert the current theme.
func (l *Led) ThemeMode() error {
	return l.send(protocol.LedOpThemeMode, nil)
}

// SendKeys sends the pressed state of every key for reactive themes.
func (l *Led) SendKeys(state *keymatrix.KeyState) error {
	packed := keymatrix.Pack(state)
	return l.send(protocol.LedOpKey, packed.Bytes[:])
}

// SendMusic sends an opaque music frame.
func (l *Led) SendMusic(data []byte) error {
	return l.send(protocol.LedOpMusic, data)
}

// GetThemeID asks for the current theme id. The reply arrives as
// AckGetThemeID and updates Theme.
func (l *Led) GetThemeID() error {
	return l.send(protocol.LedOpGetThemeID, nil)
}

// SetKeys overrides the color of individual keys.
func (l *Led) SetKeys(payload []byte) error {
	return l.send(protocol.LedOpSetIndividualKeys, payload)
}

func (l *Led) send(op protocol.LedOp, payload []byte) error {
	err := l.serial.Send(protocol.MsgTypeLed, byte(op), payload)
	if err != nil && err != link.ErrWouldBlock {
		glog.Warningf("led %s: %v", op, err)
	}
	return err
}
