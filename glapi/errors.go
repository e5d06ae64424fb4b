package glapi

import (
	"fmt"

	"github.com/bloeys/glw/logging"
)

// Error is an error code reported by glGetError
type Error struct {
	Code  uint32
	Where string
}

func (e Error) Error() string {
	if e.Where == "" {
		return fmt.Sprintf("OpenGL error %s (0x%X)", ErrorString(e.Code), e.Code)
	}

	return fmt.Sprintf("OpenGL error %s (0x%X) at %s", ErrorString(e.Code), e.Code, e.Where)
}

func ErrorString(code uint32) string {

	switch code {
	case NO_ERROR:
		return "GL_NO_ERROR"
	case INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case STACK_OVERFLOW:
		return "GL_STACK_OVERFLOW"
	case STACK_UNDERFLOW:
		return "GL_STACK_UNDERFLOW"
	case OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	case INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	default:
		return "GL_UNKNOWN_ERROR"
	}
}

// maxDrainedErrors bounds CheckErrors in case a broken context keeps reporting errors forever
const maxDrainedErrors = 32

// CheckErrors drains the driver error queue, writing every code to the debug log.
// The first code found is returned as an Error, or nil if there were none.
func CheckErrors(g GL, where string) error {

	var first error
	for i := 0; i < maxDrainedErrors; i++ {

		code := g.GetError()
		if code == NO_ERROR {
			break
		}

		e := Error{Code: code, Where: where}
		logging.DebugLog.Println(e.Error())

		if first == nil {
			first = e
		}
	}

	return first
}
