package link

import (
	"fmt"
	"time"

	"github.com/robotalks/can914/pkg/bus"
)

// State is the link state.
type State int

// Link states.
const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Bring-up delays.
const (
	// BeginDelay precedes every initialization attempt.
	BeginDelay = 200 * time.Millisecond
	// RetryDelay follows every failed attempt.
	RetryDelay = 1000 * time.Millisecond
)

// Sleeper blocks the caller for a duration.
type Sleeper interface {
	Sleep(time.Duration)
}

// SleepFunc is func form of Sleeper.
type SleepFunc func(time.Duration)

// Sleep implements Sleeper.
func (f SleepFunc) Sleep(d time.Duration) {
	f(d)
}

// RealTime sleeps on the wall clock.
var RealTime Sleeper = SleepFunc(time.Sleep)

// Diagnostics is the controller error state read back after a
// transmission.
type Diagnostics struct {
	// Status is the transmit status of the frame before the error was seen.
	Status bus.Status
	// ErrorFlags is the error flag register masked by bus.ErrorMask.
	ErrorFlags byte
	TXErrors   byte
	RXErrors   byte
}

// Observer is notified about link activity.
type Observer interface {
	StateChanged(State)
	FrameSent(bus.Frame, bus.Status)
	ControllerError(Diagnostics)
}

// Observers fans out to multiple observers.
type Observers []Observer

// StateChanged implements Observer.
func (o Observers) StateChanged(s State) {
	for _, ob := range o {
		ob.StateChanged(s)
	}
}

// FrameSent implements Observer.
func (o Observers) FrameSent(f bus.Frame, status bus.Status) {
	for _, ob := range o {
		ob.FrameSent(f, status)
	}
}

// ControllerError implements Observer.
func (o Observers) ControllerError(d Diagnostics) {
	for _, ob := range o {
		ob.ControllerError(d)
	}
}
