package gpio

import "sync"

// MaxPin is the first pin number not present on the board.
const MaxPin Pin = 20

// Memory is an in-memory Driver.
type Memory struct {
	lock   sync.Mutex
	dirs   [MaxPin]Direction
	levels [MaxPin]Level
	writes []PinWrite
}

// PinWrite is a recorded pin write.
type PinWrite struct {
	Pin   Pin
	Level Level
}

// NewMemory creates a Memory driver with all pins unconfigured. Lines
// read HIGH until written, like pulled-up inputs.
func NewMemory() *Memory {
	m := &Memory{}
	for n := range m.levels {
		m.levels[n] = High
	}
	return m
}

// ConfigureOutput implements Driver.
func (m *Memory) ConfigureOutput(pin Pin) error {
	return m.configure(pin, Output, "configure-output")
}

// ConfigureInput implements Driver.
func (m *Memory) ConfigureInput(pin Pin) error {
	return m.configure(pin, Input, "configure-input")
}

func (m *Memory) configure(pin Pin, dir Direction, op string) error {
	if pin >= MaxPin {
		return &PinError{Pin: pin, Op: op, Msg: "no such pin"}
	}
	m.lock.Lock()
	m.dirs[pin] = dir
	m.lock.Unlock()
	return nil
}

// Write implements Driver.
func (m *Memory) Write(pin Pin, level Level) error {
	if pin >= MaxPin {
		return &PinError{Pin: pin, Op: "write", Msg: "no such pin"}
	}
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.dirs[pin] != Output {
		return &PinError{Pin: pin, Op: "write", Msg: "not an output"}
	}
	m.levels[pin] = level
	m.writes = append(m.writes, PinWrite{Pin: pin, Level: level})
	return nil
}

// Read implements Driver. Unknown pins read HIGH.
func (m *Memory) Read(pin Pin) Level {
	if pin >= MaxPin {
		return High
	}
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.levels[pin]
}

// Set drives the level of an input pin from outside, simulating
// external hardware.
func (m *Memory) Set(pin Pin, level Level) {
	if pin >= MaxPin {
		return
	}
	m.lock.Lock()
	m.levels[pin] = level
	m.lock.Unlock()
}

// Direction returns the configured direction of pin.
func (m *Memory) Direction(pin Pin) Direction {
	if pin >= MaxPin {
		return Unconfigured
	}
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.dirs[pin]
}

// Writes returns all recorded writes in order.
func (m *Memory) Writes() []PinWrite {
	m.lock.Lock()
	defer m.lock.Unlock()
	return append([]PinWrite(nil), m.writes...)
}
