package msgs

import (
	"github.com/golang/protobuf/proto"
)

// Message type IDs.
const (
	FrameSentTypeID       uint32 = 0x00010001
	LinkStateTypeID       uint32 = 0x00010002
	ControllerErrorTypeID uint32 = 0x00010003
)

// FrameSent reports a transmitted command frame.
type FrameSent struct {
	Role     string `protobuf:"bytes,1,opt,name=role,proto3" json:"role,omitempty"`
	Id       uint32 `protobuf:"varint,2,opt,name=id,proto3" json:"id,omitempty"`
	Data     []byte `protobuf:"bytes,3,opt,name=data,proto3" json:"data,omitempty"`
	Status   uint32 `protobuf:"varint,4,opt,name=status,proto3" json:"status,omitempty"`
	Command  uint32 `protobuf:"varint,5,opt,name=command,proto3" json:"command,omitempty"`
	Function uint32 `protobuf:"varint,6,opt,name=function,proto3" json:"function,omitempty"`
	Value    uint32 `protobuf:"varint,7,opt,name=value,proto3" json:"value,omitempty"`
}

// Reset implements proto.Message.
func (m *FrameSent) Reset() { *m = FrameSent{} }

// String implements proto.Message.
func (m *FrameSent) String() string { return proto.CompactTextString(m) }

// ProtoMessage implements proto.Message.
func (*FrameSent) ProtoMessage() {}

// TypeID implements SerializableMessage.
func (m *FrameSent) TypeID() uint32 { return FrameSentTypeID }

// LinkState reports a link state transition.
type LinkState struct {
	Role  string `protobuf:"bytes,1,opt,name=role,proto3" json:"role,omitempty"`
	State string `protobuf:"bytes,2,opt,name=state,proto3" json:"state,omitempty"`
}

// Reset implements proto.Message.
func (m *LinkState) Reset() { *m = LinkState{} }

// String implements proto.Message.
func (m *LinkState) String() string { return proto.CompactTextString(m) }

// ProtoMessage implements proto.Message.
func (*LinkState) ProtoMessage() {}

// TypeID implements SerializableMessage.
func (m *LinkState) TypeID() uint32 { return LinkStateTypeID }

// ControllerError reports the controller error state read back after a
// transmission.
type ControllerError struct {
	Role       string `protobuf:"bytes,1,opt,name=role,proto3" json:"role,omitempty"`
	Status     uint32 `protobuf:"varint,2,opt,name=status,proto3" json:"status,omitempty"`
	ErrorFlags uint32 `protobuf:"varint,3,opt,name=error_flags,json=errorFlags,proto3" json:"error_flags,omitempty"`
	TxErrors   uint32 `protobuf:"varint,4,opt,name=tx_errors,json=txErrors,proto3" json:"tx_errors,omitempty"`
	RxErrors   uint32 `protobuf:"varint,5,opt,name=rx_errors,json=rxErrors,proto3" json:"rx_errors,omitempty"`
}

// Reset implements proto.Message.
func (m *ControllerError) Reset() { *m = ControllerError{} }

// String implements proto.Message.
func (m *ControllerError) String() string { return proto.CompactTextString(m) }

// ProtoMessage implements proto.Message.
func (*ControllerError) ProtoMessage() {}

// TypeID implements SerializableMessage.
func (m *ControllerError) TypeID() uint32 { return ControllerErrorTypeID }
