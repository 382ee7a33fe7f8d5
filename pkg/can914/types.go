package can914

import (
	"fmt"
	"strings"
)

// ModuleRole is the vehicle subsystem a node is responsible for.
// It is fixed per physical node.
type ModuleRole byte

// Module roles.
const (
	RoleFrunk ModuleRole = iota
	RoleTrunk
	RoleMain
	RoleControls
	RoleOBD2Bridge

	roleCount int = iota
)

var roleNames = [roleCount]string{
	RoleFrunk:      "frunk",
	RoleTrunk:      "trunk",
	RoleMain:       "main",
	RoleControls:   "controls",
	RoleOBD2Bridge: "obd2bridge",
}

// Roles lists all module roles.
func Roles() []ModuleRole {
	return []ModuleRole{RoleFrunk, RoleTrunk, RoleMain, RoleControls, RoleOBD2Bridge}
}

// Valid indicates r is a known role.
func (r ModuleRole) Valid() bool {
	return int(r) < roleCount
}

func (r ModuleRole) String() string {
	if r.Valid() {
		return roleNames[r]
	}
	return fmt.Sprintf("role(%d)", byte(r))
}

// ParseModuleRole parses a role name, case insensitive.
func ParseModuleRole(s string) (ModuleRole, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for n, roleName := range roleNames {
		if roleName == name {
			return ModuleRole(n), nil
		}
	}
	return 0, fmt.Errorf("unknown module role %q", s)
}

// Function is a logical vehicle behavior, independent of the relay
// driving it.
type Function byte

// Logical functions. Values start at 1, 0 and FunctionUnused are reserved.
const (
	FunctionStarter Function = iota + 1
	FunctionFans
	FunctionFuelPumps
	FunctionHeadlightsLow
	FunctionHeadlightsHigh
	FunctionHazards
	FunctionRunningLights
	FunctionReverseLights
	FunctionTurnSignalLeft
	FunctionTurnSignalRight
	FunctionUnused
)

var functionNames = [FunctionUnused]string{
	FunctionStarter:         "starter",
	FunctionFans:            "fans",
	FunctionFuelPumps:       "fuel-pumps",
	FunctionHeadlightsLow:   "headlights-low",
	FunctionHeadlightsHigh:  "headlights-high",
	FunctionHazards:         "hazards",
	FunctionRunningLights:   "running-lights",
	FunctionReverseLights:   "reverse-lights",
	FunctionTurnSignalLeft:  "turn-signal-left",
	FunctionTurnSignalRight: "turn-signal-right",
}

// Functions lists all valid logical functions in ordinal order.
func Functions() []Function {
	fns := make([]Function, 0, FunctionUnused-FunctionStarter)
	for fn := FunctionStarter; fn < FunctionUnused; fn++ {
		fns = append(fns, fn)
	}
	return fns
}

// Valid indicates fn is within the known range.
func (fn Function) Valid() bool {
	return fn >= FunctionStarter && fn < FunctionUnused
}

func (fn Function) String() string {
	if fn.Valid() {
		return functionNames[fn]
	}
	return fmt.Sprintf("function(%d)", byte(fn))
}

// ParseFunction parses a function name.
func ParseFunction(s string) (Function, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for fn := FunctionStarter; fn < FunctionUnused; fn++ {
		if functionNames[fn] == name {
			return fn, nil
		}
	}
	return 0, fmt.Errorf("unknown function %q", s)
}

// Command is the kind of a command frame.
type Command byte

// Commands.
const (
	CommandSet Command = iota + 1
	CommandGet
	CommandResponse
)

// Valid indicates c is a known command.
func (c Command) Valid() bool {
	return c >= CommandSet && c <= CommandResponse
}

func (c Command) String() string {
	switch c {
	case CommandSet:
		return "set"
	case CommandGet:
		return "get"
	case CommandResponse:
		return "response"
	}
	return fmt.Sprintf("command(%d)", byte(c))
}

// ParseCommand parses a command name.
func ParseCommand(s string) (Command, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "set":
		return CommandSet, nil
	case "get":
		return CommandGet, nil
	case "response", "resp":
		return CommandResponse, nil
	}
	return 0, fmt.Errorf("unknown command %q", s)
}
