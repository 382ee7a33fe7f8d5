// Package link manages the bus link of a node.
package link

// A Manager owns the bus controller of a node. Bring-up blocks until the
// controller initializes, retrying forever:
//
//	Uninitialized --Begin--> Initializing --controller OK--> Ready
//
// A node without a working controller never becomes Ready and never
// participates on the bus. There is no timeout and no cancellation, the
// only way out of Initializing is a restart.
//
// Once Ready, commands are encoded and broadcast. Transmission is never
// retried, controller errors detected after a transmission are read back
// for diagnostics only.
