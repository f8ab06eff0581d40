package gcguard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegionProtectAndClose(t *testing.T) {
	r := Open()
	r.Protect("a", "b")
	assert.Len(t, r.protected, 2)
	r.Close()
	assert.Nil(t, r.protected)
}

func TestRegionProtectVariadic(t *testing.T) {
	r := Open()
	r.Protect(1)
	r.Protect(2, 3)
	assert.Len(t, r.protected, 3)
}
