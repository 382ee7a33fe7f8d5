package node

import (
	fx "github.com/robotalks/can914/pkg/framework"
)

// Poller polls the link for received frames on every loop iteration.
// Frames are not dispatched, only the pending edge is traced and counted.
type Poller struct {
	Node *Node

	pending bool
	edges   uint64
}

// NewPoller creates a Poller.
func NewPoller(n *Node) *Poller {
	return &Poller{Node: n}
}

// AddToLoop implements LoopAdder.
func (p *Poller) AddToLoop(loop *fx.Loop) {
	loop.AddController(fx.PrLvPoll, p)
}

// Control implements Controller.
func (p *Poller) Control(cc fx.ControlContext) error {
	pending := p.Node.Link.HasPendingFrame()
	if pending && !p.pending {
		p.edges++
		p.Node.tracef("[node] frame pending (iteration %d)", cc.Iteration())
	}
	p.pending = pending
	return nil
}

// Pending returns the last polled state.
func (p *Poller) Pending() bool {
	return p.pending
}

// Edges returns how many times a pending frame was detected.
func (p *Poller) Edges() uint64 {
	return p.edges
}
