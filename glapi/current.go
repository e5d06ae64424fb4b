package glapi

import (
	"github.com/bloeys/glw/assert"
)

// OpenGL contexts are bound to one OS thread, and so is the driver set here.
// Callers are expected to have called runtime.LockOSThread before making a context current.
var current GL

// SetCurrent sets the driver used by wrappers created after this call.
// Passing nil clears it.
func SetCurrent(g GL) {
	current = g
}

// Current returns the driver set by SetCurrent and asserts one was set
func Current() GL {
	assert.T(current != nil, "no OpenGL driver is current. Call glapi.SetCurrent after creating a context")
	return current
}

func HasCurrent() bool {
	return current != nil
}
