package framebuffers

import (
	"errors"
	"fmt"

	"github.com/bloeys/glw/glapi"
)

var ErrIncomplete = errors.New("framebuffer is incomplete")

// StatusString names a CheckFramebufferStatus result
func StatusString(status uint32) string {

	switch status {
	case glapi.FRAMEBUFFER_COMPLETE:
		return "complete"
	case glapi.FRAMEBUFFER_UNDEFINED:
		return "undefined (default framebuffer doesn't exist)"
	case glapi.FRAMEBUFFER_INCOMPLETE_ATTACHMENT:
		return "incomplete attachment"
	case glapi.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT:
		return "missing attachment"
	case glapi.FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER:
		return "incomplete draw buffer"
	case glapi.FRAMEBUFFER_INCOMPLETE_READ_BUFFER:
		return "incomplete read buffer"
	case glapi.FRAMEBUFFER_UNSUPPORTED:
		return "unsupported format combination"
	case glapi.FRAMEBUFFER_INCOMPLETE_MULTISAMPLE:
		return "mismatched multisample settings"
	case glapi.FRAMEBUFFER_INCOMPLETE_LAYER_TARGETS:
		return "mismatched layer targets"
	case 0:
		return "error while checking status"
	default:
		return fmt.Sprintf("unknown status 0x%X", status)
	}
}
