package speech

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Command is a named operation on a Device taking string arguments.
type Command struct {
	Name  string
	Usage string
	Help  string
	Run   func(d *Device, args []string) error
}

// UsageError indicates invalid command arguments.
type UsageError struct {
	Command *Command
	Reason  string
}

// Error implements error.
func (e *UsageError) Error() string {
	return fmt.Sprintf("%s: %s, usage: %s %s", e.Command.Name, e.Reason, e.Command.Name, e.Command.Usage)
}

// UnknownCommandError indicates the command name isn't found.
type UnknownCommandError struct {
	Name string
}

// Error implements error.
func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q", e.Name)
}

var commands = map[string]*Command{}

func init() {
	register(&Command{
		Name:  "speak",
		Usage: "TEXT...",
		Help:  "speak text",
		Run: func(d *Device, args []string) error {
			return d.Speak(strings.Join(args, " "))
		},
	})
	register(levelCommand("volume", (*Device).SetVolume))
	register(levelCommand("speed", (*Device).SetSpeed))
	register(levelCommand("tone", (*Device).SetTone))
	register(choiceCommand("sound", "select voice", soundTypes, (*Device).SetSoundType))
	register(choiceCommand("english", "how English is read", englishProns, (*Device).SetEnglishPron))
	register(choiceCommand("digits", "how long numbers are read", digitalProns, (*Device).SetDigitalPron))
	register(choiceCommand("style", "pacing of Chinese", speechStyles, (*Device).SetSpeechStyle))
	register(choiceCommand("language", "language of numbers and symbols", languages, (*Device).SetLanguage))
	register(choiceCommand("zero", "how 0 is read in phone numbers", zeroProns, (*Device).SetZeroPron))
	register(choiceCommand("one", "how 1 is read in phone numbers", oneProns, (*Device).SetOnePron))
	register(choiceCommand("name", "surname pronunciation", nameProns, (*Device).SetNamePron))
	register(switchCommand("rhythm", (*Device).EnableRhythm))
	register(switchCommand("pinyin", (*Device).EnablePinyin))
	register(&Command{
		Name:  "set",
		Usage: "[kN]",
		Help:  "apply an escape setting",
		Run: func(d *Device, args []string) error {
			if len(args) != 1 {
				return &UsageError{Command: commands["set"], Reason: "one setting required"}
			}
			s, err := ParseSetting(args[0])
			if err != nil {
				return err
			}
			return d.Apply(s)
		},
	})
	register(noArgCommand("reset", "restore default settings", (*Device).Reset))
	register(noArgCommand("test", "speak the diagnostic text", (*Device).Test))
	register(noArgCommand("stop", "stop synthesis", (*Device).Stop))
	register(noArgCommand("pause", "pause synthesis", (*Device).Pause))
	register(noArgCommand("resume", "resume synthesis", (*Device).Resume))
	register(noArgCommand("sleep", "enter power saving mode", (*Device).Sleep))
	register(noArgCommand("wakeup", "leave power saving mode", (*Device).WakeUp))
}

func register(cmd *Command) {
	commands[cmd.Name] = cmd
}

// Commands lists all commands sorted by name.
func Commands() []*Command {
	cmds := make([]*Command, 0, len(commands))
	for _, cmd := range commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

// FindCommand looks up a command by name.
func FindCommand(name string) (*Command, bool) {
	cmd, ok := commands[name]
	return cmd, ok
}

// Exec runs the named command on d.
func Exec(d *Device, name string, args []string) error {
	cmd, ok := commands[name]
	if !ok {
		return &UnknownCommandError{Name: name}
	}
	return cmd.Run(d, args)
}

func levelCommand(name string, set func(*Device, int) error) *Command {
	cmd := &Command{Name: name, Usage: "0-9", Help: "set " + name}
	cmd.Run = func(d *Device, args []string) error {
		if len(args) != 1 {
			return &UsageError{Command: cmd, Reason: "one value required"}
		}
		val, err := strconv.Atoi(args[0])
		if err != nil {
			return &UsageError{Command: cmd, Reason: fmt.Sprintf("invalid value %q", args[0])}
		}
		return set(d, val)
	}
	return cmd
}

func choiceCommand[T ~int](name, help string, opts options[T], set func(*Device, T) error) *Command {
	cmd := &Command{Name: name, Usage: strings.Join(opts.names(), "|"), Help: help}
	cmd.Run = func(d *Device, args []string) error {
		if len(args) != 1 {
			return &UsageError{Command: cmd, Reason: "one choice required"}
		}
		val, ok := opts.parse(strings.ToLower(args[0]))
		if !ok {
			return &UsageError{Command: cmd, Reason: fmt.Sprintf("invalid choice %q", args[0])}
		}
		return set(d, val)
	}
	return cmd
}

func switchCommand(name string, set func(*Device, bool) error) *Command {
	cmd := &Command{Name: name, Usage: "on|off", Help: "turn " + name + " on or off"}
	cmd.Run = func(d *Device, args []string) error {
		if len(args) != 1 {
			return &UsageError{Command: cmd, Reason: "on or off required"}
		}
		var enable bool
		switch strings.ToLower(args[0]) {
		case "on":
			enable = true
		case "off":
		default:
			b, err := strconv.ParseBool(args[0])
			if err != nil {
				return &UsageError{Command: cmd, Reason: fmt.Sprintf("invalid switch %q", args[0])}
			}
			enable = b
		}
		return set(d, enable)
	}
	return cmd
}

func noArgCommand(name, help string, fn func(*Device) error) *Command {
	return &Command{
		Name: name,
		Help: help,
		Run: func(d *Device, _ []string) error {
			return fn(d)
		},
	}
}
