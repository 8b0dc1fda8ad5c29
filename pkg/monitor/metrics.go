package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	framesReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kbd",
		Subsystem: "ledlink",
		Name:      "frames_received_total",
		Help:      "Frames received on the LED link",
	}, []string{"type", "op"})

	payloadBytes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kbd",
		Subsystem: "ledlink",
		Name:      "payload_bytes_total",
		Help:      "Payload bytes received on the LED link",
	}, []string{"type"})

	commandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kbd",
		Subsystem: "ledlink",
		Name:      "remote_commands_total",
		Help:      "Remote commands by result",
	}, []string{"command", "result"})

	publishFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "kbd",
		Subsystem: "ledlink",
		Name:      "publish_failures_total",
		Help:      "Frames which could not be handed to the MQTT client",
	})

	linkSent = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "kbd",
		Subsystem: "ledlink",
		Name:      "frames_sent",
		Help:      "Frames sent on the LED link",
	})

	linkRejected = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "kbd",
		Subsystem: "ledlink",
		Name:      "sends_rejected",
		Help:      "Sends rejected because a frame was in flight",
	})

	linkDropped = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "kbd",
		Subsystem: "ledlink",
		Name:      "bytes_dropped",
		Help:      "Bytes which arrived with no receive armed",
	})
)
