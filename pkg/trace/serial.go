package trace

import (
	"fmt"
	"io"

	"go.bug.st/serial"
)

// DefaultBaud is the baud rate of the diagnostic serial channel.
const DefaultBaud = 115200

// Serial is a Writer on an opened serial port.
type Serial struct {
	*Writer
	port serial.Port
}

// OpenSerial opens the diagnostic serial channel.
func OpenSerial(portName string, baud int) (*Serial, error) {
	if baud <= 0 {
		baud = DefaultBaud
	}
	port, err := serial.Open(portName, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", portName, err)
	}
	return &Serial{Writer: NewWriter(port), port: port}, nil
}

// Close implements io.Closer.
func (s *Serial) Close() error {
	return s.port.Close()
}

var _ io.Closer = (*Serial)(nil)
