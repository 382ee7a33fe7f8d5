package can914

// RelayPin identifies a physical relay output.
type RelayPin byte

// RelayPinNone is returned for functions without a relay on a role.
// It is never a valid output on any role, callers must not drive it.
const RelayPinNone RelayPin = 99

// RelayTable maps a function ordinal to a relay pin.
type RelayTable [FunctionUnused]RelayPin

// Lookup returns the pin for fn, RelayPinNone if fn is unmapped or invalid.
func (t *RelayTable) Lookup(fn Function) RelayPin {
	if !fn.Valid() {
		return RelayPinNone
	}
	return t[fn]
}

func newRelayTable(pins map[Function]RelayPin) RelayTable {
	var t RelayTable
	for n := range t {
		t[n] = RelayPinNone
	}
	for fn, pin := range pins {
		t[fn] = pin
	}
	return t
}

// Front compartment relay board.
const (
	FrunkPinMarkerLights    RelayPin = 2
	FrunkPinRightTurnSignal RelayPin = 3
	FrunkPinFans            RelayPin = 4
	FrunkPinSpare           RelayPin = 5
	FrunkPinLowBeams        RelayPin = 6
	FrunkPinHighBeams       RelayPin = 7
	FrunkPinFuelPumps       RelayPin = 8
	FrunkPinLeftTurnSignal  RelayPin = 9
	FrunkPinUnused          RelayPin = 10
)

// Rear compartment relay board.
const (
	TrunkPinLeftTurnSignal  RelayPin = 2
	TrunkPinReverseLights   RelayPin = 3
	TrunkPinMarkerLights    RelayPin = 4
	TrunkPinRightTurnSignal RelayPin = 5
	TrunkPinUnused          RelayPin = 6
)

// Main power relay board.
const (
	MainPinStarter RelayPin = 5
	MainPinUnused  RelayPin = 6
)

// Resolver resolves logical functions to relay pins per role.
// Tables are built once and never mutated.
type Resolver struct {
	tables [roleCount]RelayTable
}

// NewResolver builds the relay tables of all roles.
func NewResolver() *Resolver {
	r := &Resolver{}
	r.tables[RoleFrunk] = newRelayTable(map[Function]RelayPin{
		FunctionFans:            FrunkPinFans,
		FunctionFuelPumps:       FrunkPinFuelPumps,
		FunctionTurnSignalLeft:  FrunkPinLeftTurnSignal,
		FunctionTurnSignalRight: FrunkPinRightTurnSignal,
		FunctionRunningLights:   FrunkPinMarkerLights,
		FunctionHeadlightsLow:   FrunkPinLowBeams,
		FunctionHeadlightsHigh:  FrunkPinHighBeams,
	})
	r.tables[RoleTrunk] = newRelayTable(map[Function]RelayPin{
		FunctionTurnSignalLeft:  TrunkPinLeftTurnSignal,
		FunctionTurnSignalRight: TrunkPinRightTurnSignal,
		FunctionRunningLights:   TrunkPinMarkerLights,
		FunctionReverseLights:   TrunkPinReverseLights,
	})
	r.tables[RoleMain] = newRelayTable(map[Function]RelayPin{
		FunctionStarter: MainPinStarter,
	})
	r.tables[RoleControls] = newRelayTable(nil)
	r.tables[RoleOBD2Bridge] = newRelayTable(nil)
	return r
}

// Resolve returns the relay pin of fn on role, or RelayPinNone.
func (r *Resolver) Resolve(role ModuleRole, fn Function) RelayPin {
	if !role.Valid() {
		return RelayPinNone
	}
	return r.tables[role].Lookup(fn)
}

// Mapped returns the functions with a real relay on role.
func (r *Resolver) Mapped(role ModuleRole) map[Function]RelayPin {
	mapped := make(map[Function]RelayPin)
	for _, fn := range Functions() {
		if pin := r.Resolve(role, fn); pin != RelayPinNone {
			mapped[fn] = pin
		}
	}
	return mapped
}
