// Package sim provides a simulated bus controller.
package sim

import (
	"sync"

	"github.com/robotalks/can914/pkg/bus"
)

// FailForever makes Begin never succeed.
const FailForever = -1

// Controller is a simulated bus controller.
type Controller struct {
	// BeginFailures is the number of Begin calls failing before success.
	// FailForever keeps failing.
	BeginFailures int
	// TxStatus is returned by SendMsgBuf.
	TxStatus bus.Status

	lock       sync.Mutex
	begins     int
	ready      bool
	mode       bus.Mode
	bitrate    bus.Bitrate
	clock      bus.Clock
	frames     []bus.Frame
	ctrlError  bool
	errorFlags byte
	tec, rec   byte
	onSend     func(bus.Frame)
}

// New creates a Controller failing Begin n times.
func New(beginFailures int) *Controller {
	return &Controller{BeginFailures: beginFailures, mode: bus.ModeConfig}
}

// OnSend installs a callback invoked for every transmitted frame.
func (c *Controller) OnSend(fn func(bus.Frame)) *Controller {
	c.lock.Lock()
	c.onSend = fn
	c.lock.Unlock()
	return c
}

// Begin implements bus.Controller.
func (c *Controller) Begin(idMode bus.IDMode, bitrate bus.Bitrate, clock bus.Clock) bus.Status {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.begins++
	if c.BeginFailures == FailForever || c.begins <= c.BeginFailures {
		return bus.StatusFailInit
	}
	c.ready, c.bitrate, c.clock = true, bitrate, clock
	return bus.StatusOK
}

// SetMode implements bus.Controller.
func (c *Controller) SetMode(mode bus.Mode) bus.Status {
	c.lock.Lock()
	defer c.lock.Unlock()
	if !c.ready {
		return bus.StatusFail
	}
	c.mode = mode
	return bus.StatusOK
}

// SendMsgBuf implements bus.Controller.
func (c *Controller) SendMsgBuf(id uint32, ext bool, dlc byte, data []byte) bus.Status {
	c.lock.Lock()
	if !c.ready {
		c.lock.Unlock()
		return bus.StatusFailTX
	}
	frame := bus.NewFrame(id, ext, dlc, data)
	status := c.TxStatus
	if status == bus.StatusOK {
		c.frames = append(c.frames, frame)
	}
	onSend := c.onSend
	c.lock.Unlock()
	if onSend != nil && status == bus.StatusOK {
		onSend(frame)
	}
	return status
}

// CheckError implements bus.Controller.
func (c *Controller) CheckError() bus.Status {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.ctrlError {
		return bus.StatusCtrlError
	}
	return bus.StatusOK
}

// ErrorFlags implements bus.Controller.
func (c *Controller) ErrorFlags() byte {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.errorFlags
}

// ErrorCountTX implements bus.Controller.
func (c *Controller) ErrorCountTX() byte {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.tec
}

// ErrorCountRX implements bus.Controller.
func (c *Controller) ErrorCountRX() byte {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.rec
}

// InjectError puts the controller into error state with the raw error
// flag register value and error counters.
func (c *Controller) InjectError(flags, tec, rec byte) {
	c.lock.Lock()
	c.ctrlError, c.errorFlags, c.tec, c.rec = true, flags, tec, rec
	c.lock.Unlock()
}

// ClearError leaves the error state.
func (c *Controller) ClearError() {
	c.lock.Lock()
	c.ctrlError, c.errorFlags, c.tec, c.rec = false, 0, 0, 0
	c.lock.Unlock()
}

// Begins returns the number of Begin calls.
func (c *Controller) Begins() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.begins
}

// Mode returns the current operating mode.
func (c *Controller) Mode() bus.Mode {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.mode
}

// Config returns the bit rate and clock of the successful Begin.
func (c *Controller) Config() (bus.Bitrate, bus.Clock) {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.bitrate, c.clock
}

// Frames returns transmitted frames.
func (c *Controller) Frames() []bus.Frame {
	c.lock.Lock()
	defer c.lock.Unlock()
	return append([]bus.Frame(nil), c.frames...)
}
