// Package msgs defines the messages mirrored from a node to MQTT.
package msgs

// Every payload is a Typed envelope carrying one of the messages below,
// all encoded with protobuf.
//
// Producer: node (mirror)
// Consumer: monitors
