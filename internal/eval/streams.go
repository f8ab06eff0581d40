package eval

import (
	"os"

	"github.com/philisp-go/philisp/internal/object"
	"github.com/philisp-go/philisp/internal/reader"
)

// Streams holds the three current ports spec.md §6 names:
// current-input-port, current-output-port, current-error-port. They
// default to the process's stdio streams and can be redirected with
// set-ports. Grounded on the original's global current_in/current_out
// /current_err C variables (original_source/subr.c), threaded here as
// evaluator-owned state rather than package globals.
type Streams struct {
	In  *object.Stream
	Out *object.Stream
	Err *object.Stream

	// readers caches one *reader.Reader per input stream so successive
	// read calls share the same buffered lookahead instead of each
	// wrapping the file fresh and discarding whatever the previous
	// bufio.Reader had already buffered past the last value read.
	readers map[*object.Stream]*reader.Reader
}

// NewStdioStreams builds a Streams defaulting to the process's stdio.
func NewStdioStreams() *Streams {
	return &Streams{
		In:      object.NewStream(os.Stdin),
		Out:     object.NewStream(os.Stdout),
		Err:     object.NewStream(os.Stderr),
		readers: make(map[*object.Stream]*reader.Reader),
	}
}

// ReaderFor returns the cached *reader.Reader for s, creating one on
// first use.
func (s *Streams) ReaderFor(stream *object.Stream, symtab *object.SymbolTable) *reader.Reader {
	if s.readers == nil {
		s.readers = make(map[*object.Stream]*reader.Reader)
	}
	if rd, ok := s.readers[stream]; ok {
		return rd
	}
	rd := reader.New(stream.File, symtab)
	s.readers[stream] = rd
	return rd
}
