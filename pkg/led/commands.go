package led

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/robotalks/kbd.go/pkg/bluetooth"
	"github.com/robotalks/kbd.go/pkg/keycodes"
	"github.com/robotalks/kbd.go/pkg/keymatrix"
)

// Command is a named Led operation taking textual arguments. Commands are
// shared by the bench shell and remote control.
type Command struct {
	Name string
	Args string
	Help string
	Run  func(l *Led, args []string) error
}

var (
	// ErrUsage indicates wrong command arguments.
	ErrUsage = errors.New("invalid arguments")
	// ErrUnknownCommand indicates no command has the name.
	ErrUnknownCommand = errors.New("unknown command")
)

// Commands lists the available commands.
var Commands = []Command{
	{Name: "on", Help: "indicator line high", Run: noArgs((*Led).On)},
	{Name: "off", Help: "indicator line low", Run: noArgs((*Led).Off)},
	{Name: "toggle", Help: "toggle the theme on/off", Run: noArgs((*Led).Toggle)},
	{Name: "theme.next", Help: "next theme", Run: noArgs((*Led).NextTheme)},
	{Name: "brightness.next", Help: "next brightness", Run: noArgs((*Led).NextBrightness)},
	{Name: "speed.next", Help: "next animation speed", Run: noArgs((*Led).NextAnimationSpeed)},
	{Name: "theme.mode", Help: "re-assert current theme", Run: noArgs((*Led).ThemeMode)},
	{Name: "theme.get", Help: "query current theme id", Run: noArgs((*Led).GetThemeID)},
	{Name: "theme", Args: "ID", Help: "select theme, 0 is off", Run: runSetTheme},
	{Name: "bt", Args: "unknown|ble|legacy", Help: "show bluetooth mode", Run: runBluetooth},
	{Name: "keys", Args: "KEY...", Help: "send pressed keys by index", Run: runKeys},
	{Name: "music", Args: "HEX", Help: "send music frame", Run: hexArg((*Led).SendMusic)},
	{Name: "setkeys", Args: "HEX", Help: "send raw individual key colors", Run: hexArg((*Led).SetKeys)},
}

// LookupCommand finds a command by name.
func LookupCommand(name string) (*Command, bool) {
	for n := range Commands {
		if Commands[n].Name == name {
			return &Commands[n], true
		}
	}
	return nil, false
}

// RunLine runs a command line such as "theme 3".
func RunLine(l *Led, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ErrUsage
	}
	cmd, ok := LookupCommand(fields[0])
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, fields[0])
	}
	return cmd.Run(l, fields[1:])
}

// Usage returns the one line usage of the command.
func (c *Command) Usage() string {
	if c.Args == "" {
		return c.Name
	}
	return c.Name + " " + c.Args
}

func noArgs(fn func(*Led) error) func(*Led, []string) error {
	return func(l *Led, args []string) error {
		if len(args) != 0 {
			return ErrUsage
		}
		return fn(l)
	}
}

func hexArg(fn func(*Led, []byte) error) func(*Led, []string) error {
	return func(l *Led, args []string) error {
		data, err := hex.DecodeString(strings.Join(args, ""))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		return fn(l, data)
	}
}

func runSetTheme(l *Led, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id, err := strconv.ParseUint(args[0], 0, 8)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return l.SetTheme(byte(id))
}

func runBluetooth(l *Led, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	mode, err := bluetooth.ParseMode(args[0])
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return l.BluetoothMode(mode)
}

func runKeys(l *Led, args []string) error {
	var state keymatrix.KeyState
	for _, arg := range args {
		n, err := strconv.ParseUint(arg, 0, 8)
		if err != nil || !keycodes.KeyIndex(n).IsValid() {
			return fmt.Errorf("%w: bad key %q", ErrUsage, arg)
		}
		state.Set(keycodes.KeyIndex(n), true)
	}
	return l.SendKeys(&state)
}
