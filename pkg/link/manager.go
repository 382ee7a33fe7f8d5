package link

import (
	"github.com/robotalks/can914/pkg/bus"
	"github.com/robotalks/can914/pkg/can914"
	"github.com/robotalks/can914/pkg/gpio"
	"github.com/robotalks/can914/pkg/trace"
)

// Manager owns the bus controller of a node.
// It is used from a single control loop and is not safe for concurrent use.
type Manager struct {
	ctl       bus.Controller
	sleeper   Sleeper
	tracer    trace.Sink
	observers Observers
	addrs     can914.Addresses

	intr    gpio.Driver
	intrPin gpio.Pin

	state    State
	attempts int
}

// Option configures a Manager.
type Option func(*Manager)

// WithSleeper replaces the wall clock.
func WithSleeper(s Sleeper) Option {
	return func(m *Manager) { m.sleeper = s }
}

// WithTracer sets the diagnostic sink.
func WithTracer(s trace.Sink) Option {
	return func(m *Manager) { m.tracer = trace.OrNop(s) }
}

// WithObserver adds an observer.
func WithObserver(o Observer) Option {
	return func(m *Manager) {
		if o != nil {
			m.observers = append(m.observers, o)
		}
	}
}

// WithInterrupt wires the controller interrupt line, asserted low when a
// received frame is waiting.
func WithInterrupt(d gpio.Driver, pin gpio.Pin) Option {
	return func(m *Manager) { m.intr, m.intrPin = d, pin }
}

// WithAddresses overrides the bus identifiers.
func WithAddresses(a can914.Addresses) Option {
	return func(m *Manager) { m.addrs = a }
}

// New creates a Manager for the controller.
func New(ctl bus.Controller, opts ...Option) *Manager {
	m := &Manager{
		ctl:     ctl,
		sleeper: RealTime,
		tracer:  trace.Nop,
		addrs:   can914.DefaultAddresses(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current link state.
func (m *Manager) State() State {
	return m.state
}

// Addresses returns the bus addresses used by the link.
func (m *Manager) Addresses() can914.Addresses {
	return m.addrs
}

// Attempts returns the number of initialization attempts made so far.
func (m *Manager) Attempts() int {
	return m.attempts
}

func (m *Manager) setState(s State) {
	if m.state != s {
		m.state = s
		m.observers.StateChanged(s)
	}
}

// Begin brings up the controller and returns only once it succeeded.
// Calling Begin on a Ready link does nothing.
func (m *Manager) Begin(bitrate bus.Bitrate, clock bus.Clock) {
	if m.state == StateReady {
		return
	}
	m.tracer.Tracef("[link] setting up %d bit/s, %s clock", bitrate, clock)
	if m.intr != nil {
		if err := m.intr.ConfigureInput(m.intrPin); err != nil {
			m.tracer.Tracef("[link] interrupt pin: %v", err)
		}
	}
	m.setState(StateInitializing)
	for {
		m.sleeper.Sleep(BeginDelay)
		m.attempts++
		status := m.ctl.Begin(bus.IDModeAny, bitrate, clock)
		m.tracer.Tracef("[link] begin() status: %s", status)
		if status == bus.StatusOK {
			break
		}
		m.sleeper.Sleep(RetryDelay)
	}
	m.setState(StateReady)
	status := m.ctl.SetMode(bus.ModeNormal)
	m.tracer.Tracef("[link] setMode(normal) status: %s", status)
}

// HasPendingFrame indicates a received frame is waiting in the
// controller. It must be polled by the caller, frames are not buffered.
func (m *Manager) HasPendingFrame() bool {
	if m.intr == nil {
		return false
	}
	return m.intr.Read(m.intrPin) == gpio.Low
}

// Send broadcasts a command and returns the raw transmit status.
// A controller error seen after the transmission is read back and
// reported, the frame is never retried.
func (m *Manager) Send(cmd can914.Command, fn can914.Function, value byte) bus.Status {
	f := can914.Encode(cmd, fn, value)
	id := uint32(m.addrs.Broadcast)
	status := m.ctl.SendMsgBuf(id, false, can914.FrameLength, f[:])
	m.tracer.Tracef("[link] send command: %d - function: %d - value: %d - status: %s",
		byte(cmd), byte(fn), value, status)
	m.observers.FrameSent(bus.NewFrame(id, false, can914.FrameLength, f[:]), status)

	if m.ctl.CheckError() == bus.StatusCtrlError {
		d := Diagnostics{
			Status:     status,
			ErrorFlags: m.ctl.ErrorFlags() & bus.ErrorMask,
			TXErrors:   m.ctl.ErrorCountTX(),
			RXErrors:   m.ctl.ErrorCountRX(),
		}
		m.tracer.Tracef("[link] error register: %08b", d.ErrorFlags)
		m.tracer.Tracef("[link] transmit error counter: %d", d.TXErrors)
		m.tracer.Tracef("[link] receive error counter: %d", d.RXErrors)
		m.observers.ControllerError(d)
	}
	return status
}
