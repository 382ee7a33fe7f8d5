// Package mirror republishes link activity of a node to MQTT.
package mirror

import (
	"fmt"

	"github.com/denisbrodbeck/machineid"
	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"

	"github.com/robotalks/can914/pkg/bus"
	"github.com/robotalks/can914/pkg/can914"
	"github.com/robotalks/can914/pkg/link"
	"github.com/robotalks/can914/pkg/mirror/msgs"
)

// Topic suffixes.
const (
	TopicTx    = "tx"
	TopicState = "state"
	TopicError = "error"
)

// Publisher publishes payloads to topics.
type Publisher interface {
	Pub(topic string, payload []byte) paho.Token
}

// Mirror implements link.Observer by publishing every event.
// Publishing never waits for the broker.
type Mirror struct {
	Publisher Publisher
	Role      can914.ModuleRole
	NodeID    string
}

// NodeID returns an application specific ID of the machine.
func NodeID() string {
	id, err := machineid.ProtectedID("can914")
	if err != nil {
		glog.Warningf("machine id unavailable: %v", err)
		return "unknown"
	}
	if len(id) > 12 {
		id = id[:12]
	}
	return id
}

// New creates a Mirror for a role.
func New(pub Publisher, role can914.ModuleRole, nodeID string) *Mirror {
	return &Mirror{Publisher: pub, Role: role, NodeID: nodeID}
}

// Topic returns the topic for a suffix, without queue prefix.
func (m *Mirror) Topic(suffix string) string {
	return fmt.Sprintf("%s/%s/%s", m.Role, m.NodeID, suffix)
}

// StateChanged implements link.Observer.
func (m *Mirror) StateChanged(state link.State) {
	m.publish(TopicState, &msgs.LinkState{Role: m.Role.String(), State: state.String()})
}

// FrameSent implements link.Observer.
func (m *Mirror) FrameSent(f bus.Frame, status bus.Status) {
	msg := &msgs.FrameSent{
		Role:   m.Role.String(),
		Id:     f.ID,
		Data:   f.Payload(),
		Status: uint32(status),
	}
	if f.DLC >= can914.FrameLength {
		msg.Command = uint32(f.Data[can914.FieldCommand])
		msg.Function = uint32(f.Data[can914.FieldFunction])
		msg.Value = uint32(f.Data[can914.FieldValue])
	}
	m.publish(TopicTx, msg)
}

// ControllerError implements link.Observer.
func (m *Mirror) ControllerError(d link.Diagnostics) {
	m.publish(TopicError, &msgs.ControllerError{
		Role:       m.Role.String(),
		Status:     uint32(d.Status),
		ErrorFlags: uint32(d.ErrorFlags),
		TxErrors:   uint32(d.TXErrors),
		RxErrors:   uint32(d.RXErrors),
	})
}

func (m *Mirror) publish(suffix string, msg msgs.SerializableMessage) {
	data, err := msgs.Encode(msg)
	if err != nil {
		glog.Errorf("mirror encode %s: %v", suffix, err)
		return
	}
	m.Publisher.Pub(m.Topic(suffix), data)
}
