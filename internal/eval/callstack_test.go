package eval

import (
	"testing"

	"github.com/philisp-go/philisp/internal/environ"
	"github.com/stretchr/testify/assert"
)

func TestCallStackPushPopAreImmutable(t *testing.T) {
	var cs CallStack
	assert.True(t, cs.Empty())

	f1 := &Frame{}
	cs1 := cs.Push(f1)
	assert.False(t, cs1.Empty())
	assert.True(t, cs.Empty(), "pushing onto cs must not mutate cs itself")
	assert.Equal(t, 1, cs1.Depth())

	f2 := &Frame{}
	cs2 := cs1.Push(f2)
	assert.Equal(t, 2, cs2.Depth())
	assert.Equal(t, 1, cs1.Depth(), "cs1 is unaffected by pushing onto its extension")
	assert.Same(t, f2, cs2.Top())

	cs3 := cs2.Pop()
	assert.Equal(t, 1, cs3.Depth())
	assert.Same(t, f1, cs3.Top())
}

func TestCallStackSnapshotSurvivesFurtherGrowth(t *testing.T) {
	var cs CallStack
	cs = cs.Push(&Frame{})
	snapshot := cs
	cs = cs.Push(&Frame{})
	cs = cs.Push(&Frame{})

	assert.Equal(t, 1, snapshot.Depth(), "a captured CallStack value (as a continuation holds) is unaffected by later pushes")
	assert.Equal(t, 3, cs.Depth())
}

func TestTracerNilReceiverIsSafe(t *testing.T) {
	env := environ.New(environ.NewGlobal())
	var tr *Tracer
	assert.NotPanics(t, func() {
		tr.trace("eval", 0, nil, env)
		tr.Dump("frame", &Frame{})
	})
}

func TestTracerNoOutWriterIsSafe(t *testing.T) {
	env := environ.New(environ.NewGlobal())
	tr := &Tracer{}
	assert.NotPanics(t, func() {
		tr.trace("eval", 0, nil, env)
	})
}
