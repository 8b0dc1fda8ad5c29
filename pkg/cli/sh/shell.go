// Package sh provides the interactive bench shell driving the LED
// controller.
package sh

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/kbd.go/pkg/led"
	"github.com/robotalks/kbd.go/pkg/link"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	OutputJSON  bool

	Shell *ishell.Shell
	Led   *led.Shared
}

const (
	shellKey = "$shell"
	prompt   = "led > "
)

var (
	// flags

	evalOnly   bool
	outputJSON bool

	// ErrCommandExpected is returned by Run in non-interactive mode
	// without a command.
	ErrCommandExpected = errors.New("command expected")
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
}

// New creates a new shell.
func New(l *led.Shared) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,

		Shell: ishell.New(),
		Led:   l,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(prompt)
	for n := range led.Commands {
		s.Shell.AddCmd(ledCmd(&led.Commands[n]))
	}
	s.Shell.AddCmd(&ThemeShowCmd)
	s.Shell.AddCmd(&StatsCmd)
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// Exec runs a led command. A frame still being transmitted is reported as
// busy instead of an error.
func (s *Shell) Exec(cmd *led.Command, args []string) (string, error) {
	var err error
	s.Led.Claim(func(l *led.Led) {
		err = cmd.Run(l, args)
	})
	switch {
	case err == nil:
		return "OK", nil
	case errors.Is(err, link.ErrWouldBlock):
		return "BUSY", nil
	case errors.Is(err, led.ErrUsage):
		return "", fmt.Errorf("usage: %s: %v", cmd.Usage(), err)
	default:
		return "", err
	}
}

// Theme returns the last reported theme.
func (s *Shell) Theme() (string, error) {
	var theme led.Theme
	s.Led.Claim(func(l *led.Led) { theme = l.Theme() })
	if s.OutputJSON {
		return marshal(theme)
	}
	if !theme.Known {
		return "unknown", nil
	}
	return fmt.Sprintf("theme=%d brightness=%d speed=%d", theme.ID, theme.Brightness, theme.Speed), nil
}

// Stats returns the link counters.
func (s *Shell) Stats() (string, error) {
	var stats link.Stats
	s.Led.Claim(func(l *led.Led) { stats = l.Serial().Stats() })
	if s.OutputJSON {
		return marshal(stats)
	}
	return fmt.Sprintf("sent=%d received=%d rejected=%d", stats.Sent, stats.Received, stats.Rejected), nil
}

// WaitSent waits until the link has no frame in flight and reports
// whether it got idle before the timeout.
func (s *Shell) WaitSent(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		var busy bool
		s.Led.Claim(func(l *led.Led) { busy = l.Serial().TxBusy() })
		if !busy {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(time.Millisecond)
	}
}

func marshal(v interface{}) (string, error) {
	out, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Run runs the shell.
func (s *Shell) Run(args ...string) error {
	if len(args) > 0 {
		return s.Shell.Process(args...)
	}
	if s.Interactive {
		s.Shell.Run()
		return nil
	}
	return ErrCommandExpected
}

func ledCmd(cmd *led.Command) *ishell.Cmd {
	return &ishell.Cmd{
		Name:     cmd.Name,
		Help:     cmd.Help,
		LongHelp: cmd.Usage(),
		Func: printResult(func(s *Shell, c *ishell.Context) (string, error) {
			return s.Exec(cmd, c.Args)
		}),
	}
}

func printResult(fn func(*Shell, *ishell.Context) (string, error)) func(*ishell.Context) {
	return func(c *ishell.Context) {
		out, err := fn(ShellFrom(c), c)
		if err != nil {
			c.Err(err)
			return
		}
		c.Println(out)
	}
}

var (
	// ThemeShowCmd prints the last reported theme.
	ThemeShowCmd = ishell.Cmd{
		Name:    "theme.show",
		Aliases: []string{"ts"},
		Help:    "show last reported theme",
		Func: printResult(func(s *Shell, _ *ishell.Context) (string, error) {
			return s.Theme()
		}),
	}

	// StatsCmd prints the link counters.
	StatsCmd = ishell.Cmd{
		Name: "stats",
		Help: "show link counters",
		Func: printResult(func(s *Shell, _ *ishell.Context) (string, error) {
			return s.Stats()
		}),
	}
)
