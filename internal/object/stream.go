package object

import "os"

// Stream is a handle to a byte-oriented file descriptor opened
// elsewhere (by internal/builtin's open/close primitives).
type Stream struct {
	File   *os.File
	Closed bool
}

func (*Stream) Type() string { return "STREAM" }
func (*Stream) isValue()     {}

// NewStream wraps an already-open file.
func NewStream(f *os.File) *Stream {
	return &Stream{File: f}
}
