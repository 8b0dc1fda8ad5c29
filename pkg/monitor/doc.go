// Package monitor mirrors LED link traffic to MQTT and Prometheus and
// accepts remote commands.
package monitor
