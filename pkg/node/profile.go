package node

import (
	"github.com/robotalks/can914/pkg/bus"
	"github.com/robotalks/can914/pkg/can914"
	"github.com/robotalks/can914/pkg/gpio"
	"github.com/robotalks/can914/pkg/trace"
)

// InterruptPin is the controller interrupt input (A0 on the boards).
const InterruptPin gpio.Pin = 14

// Profile is the role-specific hardware configuration of a node.
type Profile struct {
	Role    can914.ModuleRole
	Bitrate bus.Bitrate
	Clock   bus.Clock
	// DiagBaud is the baud rate of the diagnostic serial channel.
	DiagBaud int
	// OutputPins are driven to IdleLevel at bring-up.
	OutputPins []can914.RelayPin
	// IdleLevel is the de-energized relay level. Relays on the front and
	// rear boards are wired active low, the main board active high.
	IdleLevel gpio.Level
}

// ProfileFor returns the profile of a role.
func ProfileFor(role can914.ModuleRole) Profile {
	p := Profile{
		Role:     role,
		Bitrate:  bus.Bitrate500K,
		Clock:    bus.Clock8MHz,
		DiagBaud: trace.DefaultBaud,
	}
	switch role {
	case can914.RoleFrunk:
		p.OutputPins = pinRange(can914.FrunkPinMarkerLights, can914.FrunkPinUnused)
		p.IdleLevel = gpio.High
	case can914.RoleTrunk:
		p.OutputPins = pinRange(can914.TrunkPinLeftTurnSignal, can914.TrunkPinUnused)
		p.IdleLevel = gpio.High
	case can914.RoleMain:
		p.OutputPins = pinRange(can914.MainPinStarter, can914.MainPinUnused)
		p.IdleLevel = gpio.Low
	case can914.RoleOBD2Bridge:
		p.Clock = bus.Clock16MHz
	}
	return p
}

// ActiveLevel is the level energizing a relay.
func (p Profile) ActiveLevel() gpio.Level {
	return !p.IdleLevel
}

func pinRange(first, last can914.RelayPin) []can914.RelayPin {
	pins := make([]can914.RelayPin, 0, last-first+1)
	for pin := first; pin <= last; pin++ {
		pins = append(pins, pin)
	}
	return pins
}
