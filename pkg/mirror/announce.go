package mirror

import (
	"encoding/json"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/robotalks/can914/pkg/can914"
	"github.com/robotalks/can914/pkg/node"
)

// TopicMeta is the retained topic describing a node.
const TopicMeta = "meta"

// Meta describes a node on its meta topic.
type Meta struct {
	Role      string         `json:"role"`
	NodeID    string         `json:"node_id"`
	Bitrate   uint32         `json:"bitrate"`
	Clock     string         `json:"clock"`
	IdleLevel string         `json:"idle_level"`
	Relays    map[string]int `json:"relays,omitempty"`
}

// MetaOf describes the node of a role.
func MetaOf(role can914.ModuleRole, nodeID string) Meta {
	p := node.ProfileFor(role)
	m := Meta{
		Role:      role.String(),
		NodeID:    nodeID,
		Bitrate:   uint32(p.Bitrate),
		Clock:     p.Clock.String(),
		IdleLevel: p.IdleLevel.String(),
	}
	for fn, pin := range can914.NewResolver().Mapped(role) {
		if m.Relays == nil {
			m.Relays = make(map[string]int)
		}
		m.Relays[fn.String()] = int(pin)
	}
	return m
}

// Topic returns the meta topic, without queue prefix.
func (m Meta) Topic() string {
	return m.Role + "/" + m.NodeID + "/" + TopicMeta
}

// NewNodeQueue creates a Queue which publishes the retained meta of a
// node on every connect. The broker clears it when the node goes away.
func NewNodeQueue(brokerURL string, meta Meta) (*Queue, error) {
	payload, err := json.Marshal(&meta)
	if err != nil {
		return nil, err
	}
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	opts.SetBinaryWill(topicPrefix+meta.Topic(), nil, 1, true)
	if opts.ClientID == "" {
		opts.SetClientID("can914:" + meta.Role + "/" + meta.NodeID)
	}
	q := NewQueue(opts, topicPrefix)
	q.OnConnect = func(q *Queue) { q.PubWith(meta.Topic(), payload, 1, true) }
	return q, nil
}

// Unannounce clears the retained meta of the node.
func Unannounce(q *Queue, meta Meta) paho.Token {
	return q.PubWith(meta.Topic(), nil, 1, true)
}
