package capture

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/robotalks/can914/pkg/bus"
	"github.com/robotalks/can914/pkg/link"
)

// Candump writes transmitted frames as candump log lines, e.g.
//
//	(1700000000.123456) can0 007#00010201
//
// Frames with a failed transmit status are skipped.
type Candump struct {
	Interface string
	Now       func() time.Time

	lock sync.Mutex
	w    io.Writer
}

// NewCandump creates a Candump writer.
func NewCandump(w io.Writer, iface string) *Candump {
	if iface == "" {
		iface = "can0"
	}
	return &Candump{Interface: iface, Now: time.Now, w: w}
}

// StateChanged implements link.Observer.
func (c *Candump) StateChanged(link.State) {}

// ControllerError implements link.Observer.
func (c *Candump) ControllerError(link.Diagnostics) {}

// FrameSent implements link.Observer.
func (c *Candump) FrameSent(f bus.Frame, status bus.Status) {
	if status != bus.StatusOK {
		return
	}
	ts := c.Now()
	c.lock.Lock()
	fmt.Fprintf(c.w, "(%d.%06d) %s %s\n", ts.Unix(), ts.Nanosecond()/1000, c.Interface, f)
	c.lock.Unlock()
}
