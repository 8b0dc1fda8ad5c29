// Package env provides the common configuration of the host tools: where
// the LED link is, the indicator pin and the MQTT broker.
package env

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.bug.st/serial"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/host/v3"

	"github.com/robotalks/kbd.go/pkg/link/stream"
)

// Config provides common options of the LED link tools.
type Config struct {
	// Port is a serial device path or a ws:// URL of a UART bridge.
	Port string `toml:"port"`
	// Origin is the websocket origin used for ws:// ports.
	Origin string `toml:"origin"`
	// Baud is the UART speed of a serial device, 8N1.
	Baud int `toml:"baud"`
	// Indicator names the GPIO pin of the indicator line, empty for a
	// virtual pin.
	Indicator string `toml:"indicator"`
	// MaxTransfer limits the bytes per transmit chunk.
	MaxTransfer int `toml:"max_transfer"`
	// RxFrameSize is the size of the receive buffer, every receive waits
	// for exactly this many bytes.
	RxFrameSize int `toml:"rx_frame_size"`
	// MQTTURL is the broker, e.g. mqtt://host:port/topic-prefix.
	MQTTURL string `toml:"mqtt_url"`
	// MetricsAddr is the listen address of the /metrics endpoint.
	MetricsAddr string `toml:"metrics_addr"`
}

// DefaultBaud is the UART speed of the LED link.
const DefaultBaud = 115200

var defaultConfig = Config{
	Port:        "/dev/ttyUSB0",
	Origin:      "http://localhost/",
	Baud:        DefaultBaud,
	MaxTransfer: stream.DefaultMaxTransfer,
	RxFrameSize: 4,
	MQTTURL:     "mqtt://localhost:1883/kbd/",
	MetricsAddr: ":9110",
}

func init() {
	if val := os.Getenv("KBD_PORT"); val != "" {
		defaultConfig.Port = val
	}
	if val := os.Getenv("KBD_BAUD"); val != "" {
		if baud, err := strconv.Atoi(val); err == nil {
			defaultConfig.Baud = baud
		}
	}
	if val := os.Getenv("KBD_INDICATOR"); val != "" {
		defaultConfig.Indicator = val
	}
	if val := os.Getenv("KBD_MQTT_URL"); val != "" {
		defaultConfig.MQTTURL = val
	}
	if val := os.Getenv("KBD_METRICS_ADDR"); val != "" {
		defaultConfig.MetricsAddr = val
	}
}

type fileValue struct {
	conf *Config
	path string
}

func (v *fileValue) String() string {
	return v.path
}

func (v *fileValue) Set(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := v.conf.Decode(f); err != nil {
		return fmt.Errorf("%s: %v", path, err)
	}
	v.path = path
	return nil
}

// SetupFlags sets up command line flags. Flags following -config override
// values from the file.
func SetupFlags() {
	flag.Var(&fileValue{conf: &defaultConfig}, "config", "TOML config file.")
	flag.StringVar(&defaultConfig.Port, "port", defaultConfig.Port, "Serial device or ws:// URL of the LED link.")
	flag.IntVar(&defaultConfig.Baud, "baud", defaultConfig.Baud, "UART speed of a serial device.")
	flag.StringVar(&defaultConfig.Indicator, "indicator", defaultConfig.Indicator, "GPIO pin of the indicator line, empty for virtual.")
	flag.IntVar(&defaultConfig.MaxTransfer, "max-transfer", defaultConfig.MaxTransfer, "Max bytes per transmit chunk.")
	flag.IntVar(&defaultConfig.RxFrameSize, "rx-frame-size", defaultConfig.RxFrameSize, "Receive buffer size.")
	flag.StringVar(&defaultConfig.MQTTURL, "mqtt", defaultConfig.MQTTURL, "MQTT broker URL.")
	flag.StringVar(&defaultConfig.MetricsAddr, "metrics", defaultConfig.MetricsAddr, "Listen address of /metrics.")
}

// Default gets the default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Decode overlays TOML from r onto c.
func (c *Config) Decode(r io.Reader) error {
	return toml.NewDecoder(r).Decode(c)
}

// Validate checks the values are usable.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port must be specified")
	}
	if c.RxFrameSize < 3 || c.RxFrameSize > 0xff+2 {
		return fmt.Errorf("invalid rx frame size %d", c.RxFrameSize)
	}
	if !c.IsWebsocket() && c.Baud <= 0 {
		return fmt.Errorf("invalid baud rate %d", c.Baud)
	}
	if c.MaxTransfer <= 0 {
		return fmt.Errorf("invalid max transfer %d", c.MaxTransfer)
	}
	return nil
}

// IsWebsocket indicates the port is a websocket bridge.
func (c *Config) IsWebsocket() bool {
	return strings.HasPrefix(c.Port, "ws://") || strings.HasPrefix(c.Port, "wss://")
}

// SerialMode returns the UART settings of a serial device.
func (c *Config) SerialMode() *serial.Mode {
	return &serial.Mode{
		BaudRate: c.Baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
}

// OpenLink opens the LED link byte stream.
func (c *Config) OpenLink() (io.ReadWriteCloser, error) {
	if c.IsWebsocket() {
		conn, err := stream.DialWebsocket(c.Port, c.Origin)
		if err != nil {
			return nil, err
		}
		return conn, nil
	}
	port, err := serial.Open(c.Port, c.SerialMode())
	if err != nil {
		return nil, err
	}
	return port, nil
}

// OpenIndicator returns the indicator pin.
func (c *Config) OpenIndicator() (gpio.PinOut, error) {
	if c.Indicator == "" {
		return &gpiotest.Pin{N: "indicator"}, nil
	}
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("gpio init: %v", err)
	}
	p := gpioreg.ByName(c.Indicator)
	if p == nil {
		return nil, fmt.Errorf("unknown gpio pin %q", c.Indicator)
	}
	return p, nil
}
