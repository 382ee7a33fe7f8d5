// Package capture records frames transmitted by a node.
package capture

import (
	"io"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/robotalks/can914/pkg/bus"
	"github.com/robotalks/can914/pkg/link"
)

// Record kinds.
const (
	KindFrame = "frame"
	KindState = "state"
	KindError = "error"
)

// Record is one captured event.
type Record struct {
	Seq    uint64 `cbor:"1,keyasint"`
	Time   int64  `cbor:"2,keyasint"`
	Kind   string `cbor:"3,keyasint"`
	ID     uint32 `cbor:"4,keyasint,omitempty"`
	DLC    byte   `cbor:"5,keyasint,omitempty"`
	Data   []byte `cbor:"6,keyasint,omitempty"`
	Status byte   `cbor:"7,keyasint,omitempty"`
	State  string `cbor:"8,keyasint,omitempty"`
	Flags  byte   `cbor:"9,keyasint,omitempty"`
	TEC    byte   `cbor:"10,keyasint,omitempty"`
	REC    byte   `cbor:"11,keyasint,omitempty"`
	Ext    bool   `cbor:"12,keyasint,omitempty"`
}

// Frame returns the frame of a KindFrame record.
func (r *Record) Frame() bus.Frame {
	return bus.NewFrame(r.ID, r.Ext, r.DLC, r.Data)
}

// Recorder writes a CBOR sequence of Records. It implements link.Observer.
type Recorder struct {
	Now func() time.Time

	lock sync.Mutex
	enc  *cbor.Encoder
	seq  uint64
	err  error
}

// NewRecorder creates a Recorder writing to w.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{Now: time.Now, enc: cbor.NewEncoder(w)}
}

// Err returns the first write error. Recording stops after an error.
func (r *Recorder) Err() error {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.err
}

func (r *Recorder) write(rec Record) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.err != nil {
		return
	}
	r.seq++
	rec.Seq, rec.Time = r.seq, r.Now().UnixNano()
	r.err = r.enc.Encode(&rec)
}

// StateChanged implements link.Observer.
func (r *Recorder) StateChanged(s link.State) {
	r.write(Record{Kind: KindState, State: s.String()})
}

// FrameSent implements link.Observer.
func (r *Recorder) FrameSent(f bus.Frame, status bus.Status) {
	r.write(Record{
		Kind:   KindFrame,
		ID:     f.ID,
		Ext:    f.Extended,
		DLC:    f.DLC,
		Data:   append([]byte(nil), f.Payload()...),
		Status: byte(status),
	})
}

// ControllerError implements link.Observer.
func (r *Recorder) ControllerError(d link.Diagnostics) {
	r.write(Record{
		Kind:   KindError,
		Status: byte(d.Status),
		Flags:  d.ErrorFlags,
		TEC:    d.TXErrors,
		REC:    d.RXErrors,
	})
}

// Reader decodes a CBOR sequence written by Recorder.
type Reader struct {
	dec *cbor.Decoder
}

// NewReader creates a Reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: cbor.NewDecoder(r)}
}

// Next decodes the next record, io.EOF at the end.
func (r *Reader) Next() (*Record, error) {
	var rec Record
	if err := r.dec.Decode(&rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
