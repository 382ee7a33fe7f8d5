package sh

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/can914/pkg/bus"
	"github.com/robotalks/can914/pkg/can914"
	"github.com/robotalks/can914/pkg/gpio"
)

// PinResult is a resolved relay pin.
type PinResult struct {
	Role     string          `json:"role"`
	Function string          `json:"function"`
	Pin      can914.RelayPin `json:"pin"`
}

func (r PinResult) String() string {
	if r.Pin == can914.RelayPinNone {
		return fmt.Sprintf("%s %s: none", r.Role, r.Function)
	}
	return fmt.Sprintf("%s %s: pin %d", r.Role, r.Function, r.Pin)
}

// TableResult is the relay table of a role.
type TableResult []PinResult

func (t TableResult) String() string {
	lines := make([]string, len(t))
	for n, r := range t {
		lines[n] = r.String()
	}
	return strings.Join(lines, "\n")
}

// FrameResult is an encoded or decoded command frame.
type FrameResult struct {
	Hex      string `json:"hex"`
	Command  string `json:"command"`
	Function string `json:"function"`
	Value    byte   `json:"value"`
}

func (r FrameResult) String() string {
	return fmt.Sprintf("%s (%s %s %d)", r.Hex, r.Command, r.Function, r.Value)
}

// SendResult is a transmitted frame with its status.
type SendResult struct {
	Frame  string `json:"frame"`
	Status string `json:"status"`
}

func (r SendResult) String() string {
	return fmt.Sprintf("%s %s", r.Frame, r.Status)
}

// DriveResult is the outcome of driving a relay.
type DriveResult struct {
	Function string `json:"function"`
	Driven   bool   `json:"driven"`
	Pin      byte   `json:"pin,omitempty"`
	Level    string `json:"level,omitempty"`
}

func (r DriveResult) String() string {
	if !r.Driven {
		return fmt.Sprintf("%s: no relay", r.Function)
	}
	return fmt.Sprintf("%s: pin %d %s", r.Function, r.Pin, r.Level)
}

// StateResult is the link state of the node.
type StateResult struct {
	Role     string `json:"role"`
	State    string `json:"state"`
	Attempts int    `json:"attempts"`
	Pending  bool   `json:"pending"`
}

func (r StateResult) String() string {
	return fmt.Sprintf("%s %s attempts=%d pending=%v", r.Role, r.State, r.Attempts, r.Pending)
}

// FramesResult lists transmitted frames in candump notation.
type FramesResult []string

func (r FramesResult) String() string {
	if len(r) == 0 {
		return "no frames"
	}
	return strings.Join(r, "\n")
}

func parseFunction(s string) (can914.Function, error) {
	if n, err := strconv.ParseUint(s, 0, 8); err == nil {
		return can914.Function(n), nil
	}
	return can914.ParseFunction(s)
}

func parseCommand(s string) (can914.Command, error) {
	if n, err := strconv.ParseUint(s, 0, 8); err == nil {
		return can914.Command(n), nil
	}
	return can914.ParseCommand(s)
}

func parseValue(s string) (byte, error) {
	switch strings.ToLower(s) {
	case "on":
		return 1, nil
	case "off":
		return 0, nil
	}
	n, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q", s)
	}
	return byte(n), nil
}

func parseOn(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "1", "true":
		return true, nil
	case "off", "0", "false":
		return false, nil
	}
	return false, fmt.Errorf("expect on or off, got %q", s)
}

func expectArgs(args []string, n int, usage string) error {
	if len(args) != n {
		return fmt.Errorf("usage: %s", usage)
	}
	return nil
}

func frameResult(f can914.CommandFrame) FrameResult {
	cmd, fn, value := can914.Decode(f)
	return FrameResult{
		Hex:      hex.EncodeToString(f[:]),
		Command:  cmd.String(),
		Function: fn.String(),
		Value:    value,
	}
}

// Resolve resolves the relay pin of a function on a role.
func (s *Shell) Resolve(args []string) (PinResult, error) {
	if err := expectArgs(args, 2, "resolve ROLE FUNC"); err != nil {
		return PinResult{}, err
	}
	r, err := can914.ParseModuleRole(args[0])
	if err != nil {
		return PinResult{}, err
	}
	fn, err := parseFunction(args[1])
	if err != nil {
		return PinResult{}, err
	}
	return PinResult{
		Role:     r.String(),
		Function: fn.String(),
		Pin:      s.resolver().Resolve(r, fn),
	}, nil
}

// Table lists the relay pin of every function on a role, the current
// node role by default.
func (s *Shell) Table(args []string) (TableResult, error) {
	var r can914.ModuleRole
	switch {
	case len(args) == 1:
		var err error
		if r, err = can914.ParseModuleRole(args[0]); err != nil {
			return nil, err
		}
	case len(args) == 0 && s.Node != nil:
		r = s.Node.Role()
	default:
		return nil, fmt.Errorf("usage: table ROLE")
	}
	res := make(TableResult, 0, int(can914.FunctionUnused))
	for _, fn := range can914.Functions() {
		res = append(res, PinResult{Role: r.String(), Function: fn.String(), Pin: s.resolver().Resolve(r, fn)})
	}
	return res, nil
}

// Encode encodes a command frame.
func (s *Shell) Encode(args []string) (FrameResult, error) {
	if err := expectArgs(args, 3, "encode CMD FUNC VALUE"); err != nil {
		return FrameResult{}, err
	}
	cmd, fn, value, err := parseCommandArgs(args)
	if err != nil {
		return FrameResult{}, err
	}
	return frameResult(can914.Encode(cmd, fn, value)), nil
}

// Decode decodes a hex encoded frame payload.
func (s *Shell) Decode(args []string) (FrameResult, error) {
	if err := expectArgs(args, 1, "decode HEX"); err != nil {
		return FrameResult{}, err
	}
	data, err := hex.DecodeString(strings.TrimPrefix(args[0], "0x"))
	if err != nil {
		return FrameResult{}, err
	}
	f, err := can914.FrameFromBytes(data)
	if err != nil {
		return FrameResult{}, err
	}
	return frameResult(f), nil
}

// Send broadcasts a command from the node.
func (s *Shell) Send(args []string) (SendResult, error) {
	if err := expectArgs(args, 3, "send CMD FUNC VALUE"); err != nil {
		return SendResult{}, err
	}
	cmd, fn, value, err := parseCommandArgs(args)
	if err != nil {
		return SendResult{}, err
	}
	status := s.Node.Send(cmd, fn, value)
	f := can914.Encode(cmd, fn, value)
	frame := bus.NewFrame(uint32(s.Node.Link.Addresses().Broadcast), false, can914.FrameLength, f[:])
	return SendResult{Frame: frame.String(), Status: status.String()}, nil
}

// Drive drives the relay of a function.
func (s *Shell) Drive(args []string) (DriveResult, error) {
	if err := expectArgs(args, 2, "drive FUNC on|off"); err != nil {
		return DriveResult{}, err
	}
	fn, err := parseFunction(args[0])
	if err != nil {
		return DriveResult{}, err
	}
	on, err := parseOn(args[1])
	if err != nil {
		return DriveResult{}, err
	}
	driven, err := s.Node.Drive(fn, on)
	if err != nil {
		return DriveResult{}, err
	}
	res := DriveResult{Function: fn.String(), Driven: driven}
	if driven {
		pin := s.Node.Resolver.Resolve(s.Node.Role(), fn)
		res.Pin = byte(pin)
		res.Level = s.Node.Pins.Read(gpio.Pin(pin)).String()
	}
	return res, nil
}

// State reports the link state of the node.
func (s *Shell) State() StateResult {
	return StateResult{
		Role:     s.Node.Role().String(),
		State:    s.Node.Link.State().String(),
		Attempts: s.Node.Link.Attempts(),
		Pending:  s.Node.Link.HasPendingFrame(),
	}
}

// Frames lists the frames transmitted by the node.
func (s *Shell) Frames() FramesResult {
	frames := s.Ctl.Frames()
	res := make(FramesResult, len(frames))
	for n, f := range frames {
		res[n] = f.String()
	}
	return res
}

func (s *Shell) resolver() *can914.Resolver {
	if s.Node != nil {
		return s.Node.Resolver
	}
	return can914.NewResolver()
}

func parseCommandArgs(args []string) (can914.Command, can914.Function, byte, error) {
	cmd, err := parseCommand(args[0])
	if err != nil {
		return 0, 0, 0, err
	}
	fn, err := parseFunction(args[1])
	if err != nil {
		return 0, 0, 0, err
	}
	value, err := parseValue(args[2])
	if err != nil {
		return 0, 0, 0, err
	}
	return cmd, fn, value, nil
}

// MustHaveNode wraps command func requires a node.
func MustHaveNode(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if ShellFrom(c).Node == nil {
			c.Err(fmt.Errorf("no node, use ROLE first"))
			return
		}
		fn(c)
	}
}

func output(c *ishell.Context, result interface{}, err error) {
	if err != nil {
		c.Err(err)
		return
	}
	ShellFrom(c).Output(c, result)
}

var (
	// UseCmd brings up a simulated node.
	UseCmd = ishell.Cmd{
		Name: "use",
		Help: "ROLE [FAILURES]",
		Func: func(c *ishell.Context) {
			if len(c.Args) < 1 || len(c.Args) > 2 {
				c.Err(fmt.Errorf("usage: use ROLE [FAILURES]"))
				return
			}
			r, err := can914.ParseModuleRole(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			var failures int
			if len(c.Args) > 1 {
				if failures, err = strconv.Atoi(c.Args[1]); err != nil {
					c.Err(err)
					return
				}
			}
			if err := ShellFrom(c).Use(r, failures); err != nil {
				c.Err(err)
			}
		},
	}

	// ResolveCmd resolves a relay pin.
	ResolveCmd = ishell.Cmd{
		Name:    "resolve",
		Aliases: []string{"r"},
		Help:    "ROLE FUNC",
		Func: func(c *ishell.Context) {
			res, err := ShellFrom(c).Resolve(c.Args)
			output(c, res, err)
		},
	}

	// TableCmd prints the relay table of a role.
	TableCmd = ishell.Cmd{
		Name: "table",
		Help: "[ROLE]",
		Func: func(c *ishell.Context) {
			res, err := ShellFrom(c).Table(c.Args)
			output(c, res, err)
		},
	}

	// EncodeCmd encodes a command frame.
	EncodeCmd = ishell.Cmd{
		Name: "encode",
		Help: "CMD FUNC VALUE",
		Func: func(c *ishell.Context) {
			res, err := ShellFrom(c).Encode(c.Args)
			output(c, res, err)
		},
	}

	// DecodeCmd decodes a command frame.
	DecodeCmd = ishell.Cmd{
		Name: "decode",
		Help: "HEX",
		Func: func(c *ishell.Context) {
			res, err := ShellFrom(c).Decode(c.Args)
			output(c, res, err)
		},
	}

	// SendCmd broadcasts a command.
	SendCmd = ishell.Cmd{
		Name:    "send",
		Aliases: []string{"s"},
		Help:    "CMD FUNC VALUE",
		Func: MustHaveNode(func(c *ishell.Context) {
			res, err := ShellFrom(c).Send(c.Args)
			output(c, res, err)
		}),
	}

	// DriveCmd drives a relay.
	DriveCmd = ishell.Cmd{
		Name: "drive",
		Help: "FUNC on|off",
		Func: MustHaveNode(func(c *ishell.Context) {
			res, err := ShellFrom(c).Drive(c.Args)
			output(c, res, err)
		}),
	}

	// PendingCmd checks for a pending received frame.
	PendingCmd = ishell.Cmd{
		Name: "pending",
		Help: "",
		Func: MustHaveNode(func(c *ishell.Context) {
			output(c, ShellFrom(c).Node.Link.HasPendingFrame(), nil)
		}),
	}

	// StateCmd prints the link state.
	StateCmd = ishell.Cmd{
		Name: "state",
		Help: "",
		Func: MustHaveNode(func(c *ishell.Context) {
			output(c, ShellFrom(c).State(), nil)
		}),
	}

	// FramesCmd lists transmitted frames.
	FramesCmd = ishell.Cmd{
		Name:    "frames",
		Aliases: []string{"f"},
		Help:    "",
		Func: MustHaveNode(func(c *ishell.Context) {
			output(c, ShellFrom(c).Frames(), nil)
		}),
	}
)
