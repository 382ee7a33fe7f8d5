// Package gpio abstracts digital pins of a node.
package gpio

import "fmt"

// Pin identifies a digital pin.
type Pin byte

// Level is the logical level of a pin.
type Level bool

// Levels.
const (
	Low  Level = false
	High Level = true
)

func (l Level) String() string {
	if l {
		return "HIGH"
	}
	return "LOW"
}

// Direction is the configured pin direction.
type Direction int

// Directions.
const (
	Unconfigured Direction = iota
	Input
	Output
)

// Driver is the platform specific pin driver.
type Driver interface {
	// ConfigureOutput configures pin as a digital output.
	ConfigureOutput(pin Pin) error
	// ConfigureInput configures pin as a digital input.
	ConfigureInput(pin Pin) error
	// Write sets the level of an output pin.
	Write(pin Pin, level Level) error
	// Read reads the current level of pin.
	Read(pin Pin) Level
}

// PinError reports an operation on an unusable pin.
type PinError struct {
	Pin Pin
	Op  string
	Msg string
}

// Error implements error.
func (e *PinError) Error() string {
	return fmt.Sprintf("gpio %s pin %d: %s", e.Op, e.Pin, e.Msg)
}
