package monitor

import (
	"errors"
	"strings"

	"github.com/golang/glog"

	"github.com/robotalks/kbd.go/pkg/led"
)

// CommandTopicPrefix is where remote commands are received:
// cmd/<name> with the arguments as payload.
const CommandTopicPrefix = "cmd/"

// Claimer grants access to the Led.
type Claimer interface {
	Claim(func(*led.Led))
}

// Remote runs led commands received over MQTT.
type Remote struct {
	Led Claimer
}

// Subscribe registers the command topics on q.
func (r *Remote) Subscribe(q *Queue) {
	q.Sub(CommandTopicPrefix+"+", r.HandleCommand)
}

// HandleCommand runs the command named by the topic, the payload holds
// its arguments.
func (r *Remote) HandleCommand(topic string, payload []byte) {
	name := strings.TrimPrefix(topic, CommandTopicPrefix)
	err := led.ErrUnknownCommand
	if fields := strings.Fields(name); len(fields) == 1 && fields[0] == name {
		r.Led.Claim(func(l *led.Led) {
			err = led.RunLine(l, name+" "+string(payload))
		})
	}
	label, result := name, "ok"
	switch {
	case errors.Is(err, led.ErrUnknownCommand):
		label, result = "unknown", "error"
	case err != nil:
		result = "error"
	}
	if err != nil {
		glog.Warningf("remote %q: %v", name, err)
	}
	commandsTotal.WithLabelValues(label, result).Inc()
}
