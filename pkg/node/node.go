// Package node composes the per-role bring-up and runtime of a node.
package node

import (
	"fmt"

	"github.com/robotalks/can914/pkg/bus"
	"github.com/robotalks/can914/pkg/can914"
	"github.com/robotalks/can914/pkg/gpio"
	"github.com/robotalks/can914/pkg/link"
	"github.com/robotalks/can914/pkg/trace"
)

// DiagOpener opens the diagnostic channel at a baud rate.
type DiagOpener func(baud int) (trace.Sink, error)

// Node is a bus node of a fixed role.
type Node struct {
	Profile  Profile
	Resolver *can914.Resolver
	Pins     gpio.Driver
	Link     *link.Manager
	// OpenDiag is optional, without it diagnostics stay on Tracer.
	OpenDiag DiagOpener
	Tracer   trace.Sink
}

// New creates a Node. The link manager shares the node pins for the
// interrupt line and traces to the node Tracer unless opts override it.
func New(role can914.ModuleRole, pins gpio.Driver, ctl bus.Controller, opts ...link.Option) *Node {
	n := &Node{
		Profile:  ProfileFor(role),
		Resolver: can914.NewResolver(),
		Pins:     pins,
		Tracer:   trace.Nop,
	}
	opts = append([]link.Option{
		link.WithInterrupt(pins, InterruptPin),
		link.WithTracer(trace.SinkFunc(n.tracef)),
	}, opts...)
	n.Link = link.New(ctl, opts...)
	return n
}

func (n *Node) tracef(format string, args ...interface{}) {
	trace.OrNop(n.Tracer).Tracef(format, args...)
}

// Role returns the node role.
func (n *Node) Role() can914.ModuleRole {
	return n.Profile.Role
}

// Bringup initializes the diagnostic channel and relay outputs, then
// blocks until the bus link is ready.
func (n *Node) Bringup() error {
	n.Tracer = trace.OrNop(n.Tracer)
	if n.OpenDiag != nil {
		sink, err := n.OpenDiag(n.Profile.DiagBaud)
		if err != nil {
			n.Tracer.Tracef("[node] diagnostic channel: %v", err)
		} else {
			n.Tracer = trace.Multi{n.Tracer, sink}
		}
	}
	n.Tracer.Tracef("[node] %s: setting up %d relays", n.Role(), len(n.Profile.OutputPins))
	for _, pin := range n.Profile.OutputPins {
		if err := n.Pins.ConfigureOutput(gpio.Pin(pin)); err != nil {
			return fmt.Errorf("relay pin %d: %w", pin, err)
		}
		if err := n.Pins.Write(gpio.Pin(pin), n.Profile.IdleLevel); err != nil {
			return fmt.Errorf("relay pin %d: %w", pin, err)
		}
	}
	n.Link.Begin(n.Profile.Bitrate, n.Profile.Clock)
	n.Tracer.Tracef("[node] %s: finished", n.Role())
	return nil
}

// Drive energizes or releases the relay of fn. It returns false without
// touching any output if the role has no relay for fn.
func (n *Node) Drive(fn can914.Function, on bool) (bool, error) {
	pin := n.Resolver.Resolve(n.Role(), fn)
	if pin == can914.RelayPinNone {
		return false, nil
	}
	level := n.Profile.IdleLevel
	if on {
		level = n.Profile.ActiveLevel()
	}
	if err := n.Pins.Write(gpio.Pin(pin), level); err != nil {
		return false, fmt.Errorf("drive %s: %w", fn, err)
	}
	return true, nil
}

// Send broadcasts a command on the bus.
func (n *Node) Send(cmd can914.Command, fn can914.Function, value byte) bus.Status {
	return n.Link.Send(cmd, fn, value)
}
