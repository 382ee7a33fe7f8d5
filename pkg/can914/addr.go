package can914

// ID is a standard (11-bit) bus identifier.
type ID uint32

// Addresses groups the fixed bus identifiers.
type Addresses struct {
	Broadcast ID
	Frunk     ID
	Trunk     ID
	Main      ID
	Controls  ID
	// ECU is the external engine controller peer.
	ECU ID
}

// DefaultAddresses returns the identifiers used in the vehicle.
func DefaultAddresses() Addresses {
	return Addresses{
		Broadcast: 0x7,
		Frunk:     0x8,
		Trunk:     0x9,
		Main:      0xA,
		Controls:  0xB,
		ECU:       601,
	}
}

// Of returns the address owned by a role. The diagnostics bridge has
// no address of its own.
func (a Addresses) Of(role ModuleRole) (ID, bool) {
	switch role {
	case RoleFrunk:
		return a.Frunk, true
	case RoleTrunk:
		return a.Trunk, true
	case RoleMain:
		return a.Main, true
	case RoleControls:
		return a.Controls, true
	}
	return 0, false
}
