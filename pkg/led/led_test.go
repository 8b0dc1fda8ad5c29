package led

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"github.com/robotalks/kbd.go/pkg/bluetooth"
	"github.com/robotalks/kbd.go/pkg/framework"
	"github.com/robotalks/kbd.go/pkg/keycodes"
	"github.com/robotalks/kbd.go/pkg/keymatrix"
	"github.com/robotalks/kbd.go/pkg/link"
	"github.com/robotalks/kbd.go/pkg/protocol"
)

type fakeChannel struct {
	frames [][]byte
	rxBuf  []byte
	rxPos  int
	armed  int
}

func (c *fakeChannel) StartTransmit(p []byte) int {
	c.frames = append(c.frames, append([]byte(nil), p...))
	return len(p)
}

func (c *fakeChannel) AckTransmit() {}

func (c *fakeChannel) StartReceive(p []byte) {
	c.rxBuf, c.rxPos = p, 0
	c.armed++
}

func (c *fakeChannel) ReceiveRemaining() int { return len(c.rxBuf) - c.rxPos }

func (c *fakeChannel) AckReceive() {}

func (c *fakeChannel) deliver(data ...byte) {
	c.rxPos += copy(c.rxBuf[c.rxPos:], data)
}

func (c *fakeChannel) last() protocol.Message {
	msg, err := protocol.Parse(c.frames[len(c.frames)-1])
	if err != nil {
		panic(err)
	}
	return msg
}

type fixture struct {
	ch  *fakeChannel
	pin *gpiotest.Pin
	led *Led
}

func newFixture(t *testing.T, rxSize int) *fixture {
	ch := &fakeChannel{}
	pin := &gpiotest.Pin{N: "PC15", L: gpio.High}
	l, err := New(link.NewSerial(ch, make([]byte, protocol.MaxFrameSize)), make([]byte, rxSize), pin)
	require.NoError(t, err)
	return &fixture{ch: ch, pin: pin, led: l}
}

// send runs a command and completes its transmission.
func (f *fixture) send(t *testing.T, cmd func() error) protocol.Message {
	require.NoError(t, cmd())
	f.led.TxInterrupt()
	msg := f.ch.last()
	require.Equal(t, protocol.MsgTypeLed, msg.Type)
	return msg
}

func TestNew(t *testing.T) {
	f := newFixture(t, 4)
	require.True(t, f.led.Armed())
	require.Equal(t, 1, f.ch.armed)
	require.Equal(t, gpio.Low, f.pin.Read())
	require.False(t, f.led.State())
}

func TestIndicator(t *testing.T) {
	f := newFixture(t, 4)
	require.NoError(t, f.led.On())
	require.Equal(t, gpio.High, f.pin.Read())
	require.NoError(t, f.led.Off())
	require.Equal(t, gpio.Low, f.pin.Read())
}

func TestConfigPayloads(t *testing.T) {
	f := newFixture(t, 4)
	cmds := []struct {
		name    string
		cmd     func() error
		payload []byte
	}{
		{"theme", f.led.NextTheme, []byte{1, 0, 0}},
		{"brightness", f.led.NextBrightness, []byte{0, 0, 1}},
		{"speed", f.led.NextAnimationSpeed, []byte{0, 1, 0}},
	}
	seen := make(map[string]bool)
	for _, c := range cmds {
		t.Run(c.name, func(t *testing.T) {
			msg := f.send(t, c.cmd)
			require.Equal(t, protocol.LedOpConfigCmd, msg.LedOp())
			require.Equal(t, c.payload, msg.Data)
			var nonZero int
			for _, b := range msg.Data {
				if b != 0 {
					nonZero++
				}
			}
			require.Equal(t, 1, nonZero)
			require.False(t, seen[string(msg.Data)])
			seen[string(msg.Data)] = true
		})
	}
}

func TestToggle(t *testing.T) {
	f := newFixture(t, 4)
	for i := 0; i < 3; i++ {
		msg := f.send(t, f.led.Toggle)
		require.Equal(t, protocol.LedOpThemeMode, msg.LedOp())
		require.Empty(t, msg.Data)
		require.True(t, f.led.State())

		msg = f.send(t, f.led.Toggle)
		require.Equal(t, protocol.LedOpThemeMode, msg.LedOp())
		require.Equal(t, []byte{0}, msg.Data)
		require.False(t, f.led.State())
	}
}

func TestToggleWhileBusy(t *testing.T) {
	f := newFixture(t, 4)
	require.NoError(t, f.led.NextTheme())
	require.Equal(t, link.ErrWouldBlock, f.led.Toggle())
	require.True(t, f.led.State())
	require.Len(t, f.ch.frames, 1)
}

func TestCommands(t *testing.T) {
	f := newFixture(t, 4)

	msg := f.send(t, func() error { return f.led.SetTheme(7) })
	require.Equal(t, protocol.LedOpThemeMode, msg.LedOp())
	require.Equal(t, []byte{7}, msg.Data)

	msg = f.send(t, f.led.ThemeMode)
	require.Equal(t, protocol.LedOpThemeMode, msg.LedOp())
	require.Empty(t, msg.Data)

	msg = f.send(t, f.led.GetThemeID)
	require.Equal(t, protocol.LedOpGetThemeID, msg.LedOp())
	require.Empty(t, msg.Data)

	msg = f.send(t, func() error { return f.led.SendMusic([]byte{1, 2, 3, 4}) })
	require.Equal(t, protocol.LedOpMusic, msg.LedOp())
	require.Equal(t, []byte{1, 2, 3, 4}, msg.Data)

	msg = f.send(t, func() error { return f.led.SetKeys([]byte{0xca, 0}) })
	require.Equal(t, protocol.LedOpSetIndividualKeys, msg.LedOp())
	require.Equal(t, []byte{0xca, 0}, msg.Data)

	var state keymatrix.KeyState
	state.Set(keycodes.Escape, true)
	state.Set(keycodes.RCtrl, true)
	msg = f.send(t, func() error { return f.led.SendKeys(&state) })
	require.Equal(t, protocol.LedOpKey, msg.LedOp())
	require.Len(t, msg.Data, keymatrix.PackedSize)
	require.Equal(t, byte(0x01), msg.Data[0])
	require.Equal(t, byte(0x20), msg.Data[8])
}

func TestBluetoothMode(t *testing.T) {
	cases := []struct {
		mode  bluetooth.Mode
		color []byte
	}{
		{bluetooth.ModeUnknown, []byte{0x00, 0x00, 0xff}},
		{bluetooth.ModeBle, []byte{0x00, 0xff, 0x00}},
		{bluetooth.ModeLegacy, []byte{0xff, 0xff, 0x00}},
	}
	for _, c := range cases {
		t.Run(c.mode.String(), func(t *testing.T) {
			f := newFixture(t, 4)
			msg := f.send(t, func() error { return f.led.BluetoothMode(c.mode) })
			require.Equal(t, protocol.LedOpSetIndividualKeys, msg.LedOp())
			require.Len(t, msg.Data, KeyColorsPayloadSize(10))
			require.Equal(t, []byte{0xca, 0x0a}, msg.Data[:2])
			record := msg.Data[2+8*5 : 2+9*5]
			require.Equal(t, byte(keycodes.N0), record[0])
			require.Equal(t, c.color, record[1:4])
			require.Equal(t, byte(ModeOn), record[4])
		})
	}
}

func TestBluetoothPayloadLayout(t *testing.T) {
	keys := BluetoothKeys(bluetooth.ModeLegacy)
	payload := AppendKeyColors(nil, keys[:]...)
	require.Equal(t, []byte{
		0xca, 0x0a,
		0, 0xff, 0xff, 0x00, 1,
		1, 0xff, 0x00, 0x00, 2,
		2, 0xff, 0x00, 0x00, 1,
		3, 0xff, 0x00, 0x00, 1,
		4, 0xff, 0x00, 0x00, 1,
		12, 0x00, 0xff, 0x00, 1,
		48, 0x00, 0xff, 0x00, 2,
		11, 0x00, 0xff, 0x00, 1,
		10, 0xff, 0xff, 0x00, 1,
		29, 0x00, 0xff, 0x00, 1,
	}, payload)
}

func TestPollRearms(t *testing.T) {
	f := newFixture(t, 4)
	var got []protocol.Message
	f.led.Mux().Tap(protocol.HandlerFunc(func(msg *protocol.Message) {
		got = append(got, protocol.Message{
			Type:      msg.Type,
			Operation: msg.Operation,
			Data:      append([]byte(nil), msg.Data...),
		})
	}))

	f.led.Poll()
	require.True(t, f.led.Armed())
	require.Equal(t, 1, f.ch.armed)

	f.ch.deliver(9, 2, byte(protocol.LedOpAckThemeMode))
	f.led.Poll()
	require.True(t, f.led.Armed())
	require.Empty(t, got)

	f.ch.deliver(5)
	f.led.Poll()
	require.True(t, f.led.Armed())
	require.Equal(t, 2, f.ch.armed)
	require.Len(t, got, 1)
	require.Equal(t, []byte{5}, got[0].Data)
	require.Equal(t, Theme{ID: 5, Known: true}, f.led.Theme())

	// a corrupted length byte is dropped and the buffer re-armed
	f.ch.deliver(9, 0xff, 0, 0)
	f.led.Poll()
	require.True(t, f.led.Armed())
	require.Equal(t, 3, f.ch.armed)
	require.Len(t, got, 1)
}

func TestThemeReports(t *testing.T) {
	f := newFixture(t, 6)
	f.ch.deliver(9, 4, byte(protocol.LedOpAckConfigCmd), 3, 2, 1)
	f.led.Poll()
	require.Equal(t, Theme{ID: 3, Brightness: 2, Speed: 1, Known: true}, f.led.Theme())

	// other types and ops leave the snapshot alone
	f.ch.deliver(byte(protocol.MsgTypeSystem), 4, byte(protocol.LedOpAckConfigCmd), 9, 9, 9)
	f.led.Poll()
	f.ch.deliver(9, 4, byte(protocol.LedOpAckSetIndividualKeys), 0xca, 0, 0)
	f.led.Poll()
	f.ch.deliver(9, 4, 0x42, 0, 0, 0)
	f.led.Poll()
	require.Equal(t, Theme{ID: 3, Brightness: 2, Speed: 1, Known: true}, f.led.Theme())
	require.True(t, f.led.Armed())
}

func TestSharedVectors(t *testing.T) {
	const (
		vecRx framework.Vector = iota + 1
		vecTx
	)
	f := newFixture(t, 3)
	shared := NewShared(f.led, framework.PrLvLink)
	shared.RxVector, shared.TxVector = vecRx, vecTx
	d := framework.NewDispatcher().Add(shared)

	shared.Claim(func(l *Led) { require.NoError(t, l.NextTheme()) })
	require.True(t, f.led.Serial().TxBusy())
	d.Pend(vecTx)
	require.Equal(t, 1, d.Dispatch(context.Background()))
	require.False(t, f.led.Serial().TxBusy())

	f.ch.deliver(9, 1, byte(protocol.LedOpAckGetThemeID))
	d.Pend(vecRx)
	d.Dispatch(context.Background())
	require.True(t, f.led.Armed())
	require.Equal(t, 2, f.ch.armed)
	shared.Claim(func(l *Led) { require.False(t, l.Theme().Known) })
	require.Equal(t, framework.PrLvLink, shared.Resource().Ceiling)
}
