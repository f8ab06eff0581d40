package rterr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeErrorWording(t *testing.T) {
	err := TypeError(2, "car", "pair")
	assert.Equal(t, KindType, err.Kind)
	assert.Equal(t, "TYPE ERROR: 2-th arg for car is not a pair", err.Error())
}

func TestKindConstructorsTagCorrectly(t *testing.T) {
	assert.Equal(t, KindParse, ParseError(ErrMsgUnexpectedEOF).Kind)
	assert.Equal(t, KindEval, EvalError(ErrMsgDivisionByZero).Kind)
	assert.Equal(t, KindIO, IOError(ErrMsgStreamClosed).Kind)
	assert.Equal(t, KindInternal, InternalError("boom").Kind)
}

func TestErrorFormatsArgs(t *testing.T) {
	err := New(KindEval, ErrMsgIndexOutOfBounds, 5, 3)
	assert.Equal(t, "EVALUATION ERROR: index 5 out of bounds (length 3)", err.Error())
}
