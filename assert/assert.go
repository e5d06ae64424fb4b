//go:build !glw_noassert

package assert

import (
	"fmt"

	"github.com/bloeys/glw/logging"
)

const Enabled = true

// T panics with the formatted message when check is false.
// Build with the 'glw_noassert' tag to compile asserts out.
func T(check bool, msg string, args ...any) {

	if check {
		return
	}

	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	logging.ErrLog.Output(2, "Assert failed: "+msg)
	panic("Assert failed: " + msg)
}
