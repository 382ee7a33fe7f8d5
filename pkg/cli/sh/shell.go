// Package sh provides an interactive shell over an in-process node.
package sh

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/can914/pkg/bus/sim"
	"github.com/robotalks/can914/pkg/can914"
	"github.com/robotalks/can914/pkg/gpio"
	"github.com/robotalks/can914/pkg/link"
	"github.com/robotalks/can914/pkg/node"
	"github.com/robotalks/can914/pkg/trace"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	OutputJSON  bool

	Shell *ishell.Shell
	Node  *node.Node
	Ctl   *sim.Controller
	Pins  *gpio.Memory

	linkOpts []link.Option
}

const shellKey = "$shell"

var (
	// flags

	evalOnly    bool
	outputJSON  bool
	role        = can914.RoleFrunk.String()
	simFailures int
	verbose     bool

	// commands
	commands = []*ishell.Cmd{
		&UseCmd,
		&ResolveCmd,
		&TableCmd,
		&EncodeCmd,
		&DecodeCmd,
		&SendCmd,
		&DriveCmd,
		&PendingCmd,
		&StateCmd,
		&FramesCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
	flag.StringVar(&role, "role", role, "Module role of the simulated node.")
	flag.IntVar(&simFailures, "sim-failures", simFailures, "Begin failures of the simulated controller.")
	flag.BoolVar(&verbose, "trace", verbose, "Print node diagnostics.")
}

// New creates a new shell. Options are applied to the link of every
// node the shell brings up.
func New(opts ...link.Option) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,

		Shell:    ishell.New(),
		linkOpts: opts,
	}
	s.Shell.Set(shellKey, s)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// Use brings up a simulated node of a role, replacing the current one.
// The controller fails Begin the given number of times.
func (s *Shell) Use(r can914.ModuleRole, failures int) error {
	if failures < 0 {
		return fmt.Errorf("simulated node would never be ready")
	}
	pins := gpio.NewMemory()
	ctl := sim.New(failures)
	n := node.New(r, pins, ctl, s.linkOpts...)
	if verbose {
		n.Tracer = trace.Glog{}
	}
	if err := n.Bringup(); err != nil {
		return err
	}
	s.Node, s.Ctl, s.Pins = n, ctl, pins
	if s.Shell != nil {
		s.Shell.SetPrompt(fmt.Sprintf("%s > ", r))
	}
	return nil
}

// Output prints a command result.
func (s *Shell) Output(c *ishell.Context, result interface{}) {
	if s.OutputJSON {
		out, err := json.Marshal(result)
		if err != nil {
			c.Err(err)
			return
		}
		c.Println(string(out))
		return
	}
	c.Println(fmt.Sprint(result))
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	r, err := can914.ParseModuleRole(role)
	if err != nil {
		log.Fatalln(err)
	}
	s := New()
	if err := s.Use(r, simFailures); err != nil {
		log.Fatalln(err)
	}
	s.Run(flag.Args()...)
}
