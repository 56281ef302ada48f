package sh

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/abiosoft/ishell"
	"github.com/golang/glog"

	"github.com/robotalks/tts.go/pkg/config"
	"github.com/robotalks/tts.go/pkg/framework"
	"github.com/robotalks/tts.go/pkg/speech"
	"github.com/robotalks/tts.go/pkg/speech/protocol"
)

// Shell provides ishell backed interactive shell. Commands run on a
// Worker so the device is only accessed from one goroutine.
type Shell struct {
	Interactive bool

	Shell  *ishell.Shell
	Worker *speech.Worker

	lastErr error
}

const (
	shellKey = "$shell"
	prompt   = "tts > "
)

var (
	// flags

	evalOnly bool

	// commands other than the device commands
	commands = []*ishell.Cmd{
		&ExplainCmd,
		&EncodingCmd,
	}
)

// ErrCommandExpected is returned in non-interactive mode without commands.
var ErrCommandExpected = errors.New("command expected")

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
}

// New creates a new shell.
func New(worker *speech.Worker) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		Shell:       ishell.New(),
		Worker:      worker,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(prompt)
	for _, cmd := range speech.Commands() {
		s.Shell.AddCmd(DeviceCmd(cmd))
	}
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// DeviceCmd wraps a device command as a shell command.
func DeviceCmd(cmd *speech.Command) *ishell.Cmd {
	help := cmd.Help
	if cmd.Usage != "" {
		help = cmd.Usage + ": " + help
	}
	return &ishell.Cmd{
		Name: cmd.Name,
		Help: help,
		Func: func(c *ishell.Context) {
			name, args := cmd.Name, c.Args
			DoJob(c, ShellFrom(c).Worker.Do(name, func(d *speech.Device) error {
				return cmd.Run(d, args)
			}))
		},
	}
}

// DoJob waits for the job and prints the result.
func DoJob(c *ishell.Context, job *speech.Job) error {
	s := ShellFrom(c)
	err := job.Wait(context.Background())
	s.lastErr = err
	if err != nil {
		c.Err(err)
		return err
	}
	if s.Interactive {
		c.Println("OK")
	}
	return nil
}

// Explain describes the settings embedded in text.
func Explain(text string) []string {
	settings, rest := speech.SplitSettings(text)
	lines := make([]string, 0, len(settings)+1)
	for _, s := range settings {
		if m, ok := s.Meaning(); ok {
			lines = append(lines, fmt.Sprintf("%v %s", s, m))
		} else {
			lines = append(lines, fmt.Sprintf("%v unknown", s))
		}
	}
	if rest = strings.TrimSpace(rest); rest != "" {
		lines = append(lines, fmt.Sprintf("text %q", rest))
	}
	return lines
}

// Run runs the commands in args, or the interactive shell without args.
func (s *Shell) Run(args ...string) error {
	if len(args) > 0 {
		s.lastErr = nil
		if err := s.Shell.Process(args...); err != nil {
			return err
		}
		return s.lastErr
	}
	if s.Interactive {
		s.Shell.Run()
		return nil
	}
	return ErrCommandExpected
}

var (
	// ExplainCmd prints the meaning of settings without touching the device.
	ExplainCmd = ishell.Cmd{
		Name:    "explain",
		Aliases: []string{"x"},
		Help:    "TEXT...: describe settings like [v5] in text",
		Func: func(c *ishell.Context) {
			for _, line := range Explain(strings.Join(c.Args, " ")) {
				c.Println(line)
			}
		},
	}

	// EncodingCmd shows or changes the text encoding.
	EncodingCmd = ishell.Cmd{
		Name:    "encoding",
		Aliases: []string{"enc"},
		Help:    "[gb2312|gbk|big5|unicode|utf8]: show or change text encoding",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			if len(c.Args) == 0 {
				var enc protocol.Encoding
				DoJob(c, s.Worker.Do("encoding", func(d *speech.Device) error {
					enc = d.Encoding
					return nil
				}))
				c.Println(enc.String())
				return
			}
			enc, err := protocol.ParseEncoding(c.Args[0])
			if err != nil {
				s.lastErr = err
				c.Err(err)
				return
			}
			DoJob(c, s.Worker.Do("encoding", func(d *speech.Device) error {
				d.Encoding = enc
				return nil
			}))
		},
	}
)

// Main is a helper to provide a single call in main. flags must be set up
// in init.
func Main(flags *config.Flags) {
	flag.Parse()
	conf, err := flags.Load()
	if err != nil {
		glog.Exitf("config: %v", err)
	}
	dev, closer, err := conf.Open()
	if err != nil {
		glog.Exitf("open device: %v", err)
	}
	worker := speech.NewWorker(dev)
	ctx, cancel := context.WithCancel(context.Background())
	runner := framework.NewRunnerWith(ctx).Go(framework.NamedRun("worker", worker))
	err = New(worker).Run(flag.Args()...)
	cancel()
	runner.Wait()
	closer.Close()
	if err != nil {
		glog.Exit(err)
	}
}
