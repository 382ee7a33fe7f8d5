// Package trace provides diagnostic text sinks.
// All diagnostic output of a node goes through a Sink, Nop disables it.
package trace

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/golang/glog"
)

// Sink receives human-readable trace lines.
type Sink interface {
	Tracef(format string, args ...interface{})
}

// SinkFunc is func form of Sink.
type SinkFunc func(format string, args ...interface{})

// Tracef implements Sink.
func (f SinkFunc) Tracef(format string, args ...interface{}) {
	f(format, args...)
}

type nop struct{}

func (nop) Tracef(string, ...interface{}) {}

// Nop discards everything.
var Nop Sink = nop{}

// OrNop returns s, or Nop if s is nil.
func OrNop(s Sink) Sink {
	if s == nil {
		return Nop
	}
	return s
}

// Glog forwards trace lines to glog at a verbosity level.
type Glog struct {
	Level glog.Level
}

// Tracef implements Sink.
func (g Glog) Tracef(format string, args ...interface{}) {
	if glog.V(g.Level) {
		glog.InfoDepth(1, fmt.Sprintf(format, args...))
	}
}

// Writer writes one trace line per call to an io.Writer.
// Write errors are dropped, tracing never affects the caller.
type Writer struct {
	W io.Writer

	lock sync.Mutex
}

// NewWriter creates a Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{W: w}
}

// Tracef implements Sink.
func (w *Writer) Tracef(format string, args ...interface{}) {
	line := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}
	w.lock.Lock()
	io.WriteString(w.W, line)
	w.lock.Unlock()
}

// Multi fans out to several sinks.
type Multi []Sink

// Tracef implements Sink.
func (m Multi) Tracef(format string, args ...interface{}) {
	for _, s := range m {
		if s != nil {
			s.Tracef(format, args...)
		}
	}
}

// Prefixed prepends prefix to every line.
func Prefixed(prefix string, s Sink) Sink {
	s = OrNop(s)
	return SinkFunc(func(format string, args ...interface{}) {
		s.Tracef(prefix+format, args...)
	})
}
