// Package can914 provides the command protocol shared by all nodes on the
// vehicle bus and the per-role mapping from logical functions to relays.
package can914

// Every node on the bus (front compartment, rear compartment, main power,
// controls and the diagnostics bridge) speaks the same 4-byte command
// payload carried in an 8-byte frame:
//
//	[0] reserved, always zero
//	[1] Command
//	[2] Function
//	[3] value
//
// Relay boxes broadcast all commands, the receiving node decides whether
// the function maps to one of its relays.
//
// Producer: any node
// Consumer: any node
