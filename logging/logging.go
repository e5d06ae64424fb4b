package logging

import (
	"io"
	"log"
	"os"
)

var (
	InfoLog = log.New(os.Stdout, "INFO: ", log.LstdFlags|log.Lshortfile)
	WarnLog = log.New(os.Stdout, "WARN: ", log.LstdFlags|log.Lshortfile)
	ErrLog  = log.New(os.Stderr, "ERROR: ", log.LstdFlags|log.Lshortfile)

	// DebugLog receives driver error codes and other chatty output.
	// It discards everything until SetDebugOutput is called.
	DebugLog = log.New(io.Discard, "DEBUG: ", log.LstdFlags|log.Lshortfile)
)

// SetDebugOutput enables the debug stream. Passing nil disables it again.
func SetDebugOutput(w io.Writer) {

	if w == nil {
		w = io.Discard
	}

	DebugLog.SetOutput(w)
}

func DebugEnabled() bool {
	return DebugLog.Writer() != io.Discard
}
