// Package bus defines the bus controller capability used by nodes.
package bus

import "fmt"

// Status is the raw status code returned by controller operations.
type Status byte

// Controller status codes.
const (
	StatusOK             Status = 0
	StatusFailInit       Status = 1
	StatusFailTX         Status = 2
	StatusMsgAvail       Status = 3
	StatusNoMsg          Status = 4
	StatusCtrlError      Status = 5
	StatusGetTxBfTimeout Status = 6
	StatusSendMsgTimeout Status = 7
	StatusFail           Status = 0xff
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusFailInit:
		return "fail-init"
	case StatusFailTX:
		return "fail-tx"
	case StatusMsgAvail:
		return "msg-avail"
	case StatusNoMsg:
		return "no-msg"
	case StatusCtrlError:
		return "ctrl-error"
	case StatusGetTxBfTimeout:
		return "get-txbf-timeout"
	case StatusSendMsgTimeout:
		return "send-msg-timeout"
	case StatusFail:
		return "fail"
	}
	return fmt.Sprintf("status(%d)", byte(s))
}

// ErrorMask selects the error bits of the error flag register,
// warning bits are discarded.
const ErrorMask byte = 0xF8

// Bitrate is the bus bit rate in bits per second.
type Bitrate uint32

// Bitrate500K is the bit rate used by all nodes.
const Bitrate500K Bitrate = 500000

// Clock is the controller oscillator frequency in Hz. It must match the
// crystal fitted on the node.
type Clock uint32

// Oscillator frequencies.
const (
	Clock8MHz  Clock = 8000000
	Clock16MHz Clock = 16000000
)

func (c Clock) String() string {
	return fmt.Sprintf("%dMHz", uint32(c)/1000000)
}

// Mode is the controller operating mode.
type Mode byte

// Operating modes.
const (
	ModeNormal     Mode = 0x00
	ModeSleep      Mode = 0x20
	ModeLoopback   Mode = 0x40
	ModeListenOnly Mode = 0x60
	ModeConfig     Mode = 0x80
)

// IDMode selects which identifiers the receive filters accept.
type IDMode byte

// Identifier modes.
const (
	IDModeAny IDMode = 0x00
	IDModeStd IDMode = 0x01
	IDModeExt IDMode = 0x02
)

// Controller is the bus controller driver. Implementations are owned by a
// single node task and need not be safe for concurrent use.
type Controller interface {
	// Begin initializes the controller.
	Begin(idMode IDMode, bitrate Bitrate, clock Clock) Status
	// SetMode switches the operating mode.
	SetMode(Mode) Status
	// SendMsgBuf transmits dlc bytes of data with the identifier.
	SendMsgBuf(id uint32, ext bool, dlc byte, data []byte) Status
	// CheckError returns StatusCtrlError if the controller reports errors.
	CheckError() Status
	// ErrorFlags reads the error flag register.
	ErrorFlags() byte
	// ErrorCountTX reads the transmit error counter.
	ErrorCountTX() byte
	// ErrorCountRX reads the receive error counter.
	ErrorCountRX() byte
}
