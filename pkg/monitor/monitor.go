package monitor

import (
	"context"
	"fmt"
	"strconv"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"

	"github.com/robotalks/kbd.go/pkg/link"
	"github.com/robotalks/kbd.go/pkg/protocol"
)

// Publisher publishes MQTT messages.
type Publisher interface {
	Pub(topic string, payload []byte) paho.Token
}

// Topic returns the topic a message is mirrored to: <type>/<op>, known
// names are used where defined, otherwise the hex value.
func Topic(msg *protocol.Message) string {
	typ, op := topicParts(msg)
	return typ + "/" + op
}

func topicParts(msg *protocol.Message) (typ, op string) {
	typ = strconv.Itoa(int(msg.Type))
	if msg.Type.IsKnown() {
		typ = msg.Type.String()
	}
	op = fmt.Sprintf("%02x", msg.Operation)
	if msg.Type == protocol.MsgTypeLed && msg.LedOp().IsKnown() {
		op = msg.LedOp().String()
	}
	return
}

// Tap mirrors every frame it sees. It is a protocol.Handler to be tapped
// on the receive path.
type Tap struct {
	Publisher Publisher
}

// HandleMessage implements protocol.Handler. The payload is copied, the
// receive buffer is re-armed once this returns.
func (t *Tap) HandleMessage(msg *protocol.Message) {
	typ, op := topicParts(msg)
	framesReceived.WithLabelValues(typ, op).Inc()
	payloadBytes.WithLabelValues(typ).Add(float64(len(msg.Data)))
	if t.Publisher == nil {
		return
	}
	payload := append([]byte(nil), msg.Data...)
	// QoS 0, a rejected publish has its error set before Pub returns.
	if err := t.Publisher.Pub(typ+"/"+op, payload).Error(); err != nil {
		publishFailures.Inc()
		glog.V(2).Infof("publish %s/%s: %v", typ, op, err)
	}
}

// StatsSource provides link statistics.
type StatsSource interface {
	Stats() link.Stats
}

// DropSource counts bytes lost on the receive path.
type DropSource interface {
	Dropped() uint64
}

// LinkStats samples link statistics into gauges.
type LinkStats struct {
	Serial   StatsSource
	Drops    DropSource
	Interval time.Duration
}

// Sample updates the gauges once.
func (s *LinkStats) Sample() {
	if s.Serial != nil {
		stats := s.Serial.Stats()
		linkSent.Set(float64(stats.Sent))
		linkRejected.Set(float64(stats.Rejected))
	}
	if s.Drops != nil {
		linkDropped.Set(float64(s.Drops.Dropped()))
	}
}

// Run implements framework.Runnable.
func (s *LinkStats) Run(ctx context.Context) error {
	interval := s.Interval
	if interval == 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		s.Sample()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
