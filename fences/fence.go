package fences

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/bloeys/glw/assert"
	"github.com/bloeys/glw/glapi"
	"github.com/bloeys/glw/logging"
)

var ErrWaitFailed = errors.New("waiting on fence failed")

type WaitStatus int32

const (
	WaitStatus_Unknown WaitStatus = iota
	WaitStatus_AlreadySignaled
	WaitStatus_ConditionSatisfied
	WaitStatus_TimeoutExpired
	WaitStatus_WaitFailed
)

func waitStatusFromGL(status uint32) WaitStatus {

	switch status {
	case glapi.ALREADY_SIGNALED:
		return WaitStatus_AlreadySignaled
	case glapi.CONDITION_SATISFIED:
		return WaitStatus_ConditionSatisfied
	case glapi.TIMEOUT_EXPIRED:
		return WaitStatus_TimeoutExpired
	case glapi.WAIT_FAILED:
		return WaitStatus_WaitFailed
	default:
		return WaitStatus_Unknown
	}
}

// Signaled is true if the fence was passed before or during the wait
func (s WaitStatus) Signaled() bool {
	return s == WaitStatus_AlreadySignaled || s == WaitStatus_ConditionSatisfied
}

func (s WaitStatus) String() string {

	switch s {
	case WaitStatus_AlreadySignaled:
		return "already signaled"
	case WaitStatus_ConditionSatisfied:
		return "condition satisfied"
	case WaitStatus_TimeoutExpired:
		return "timeout expired"
	case WaitStatus_WaitFailed:
		return "wait failed"
	default:
		return "unknown"
	}
}

// Fence marks a point in the command stream. It becomes signaled once the GPU finished every command issued before it.
type Fence struct {
	Sync uintptr
	gl   glapi.GL
}

// Insert replaces the fence with a new one at the current point of the command stream
func (f *Fence) Insert() {

	if f.Sync != 0 {
		f.gl.DeleteSync(f.Sync)
	}

	f.Sync = f.gl.FenceSync(glapi.SYNC_GPU_COMMANDS_COMPLETE, 0)
	if f.Sync == 0 {
		logging.ErrLog.Panicf("Failed to create OpenGL fence. GlError=%d\n", f.gl.GetError())
	}
}

// ClientWait blocks the calling thread for up to timeout. With flush set pending commands are flushed first,
// which is needed for the fence to ever signal if nothing else flushes.
func (f *Fence) ClientWait(flush bool, timeout time.Duration) WaitStatus {

	assert.T(f.Sync != 0, "ClientWait called on a deleted fence")
	assert.T(timeout >= 0, "ClientWait called with negative timeout=%s", timeout)

	flags := uint32(0)
	if flush {
		flags = glapi.SYNC_FLUSH_COMMANDS_BIT
	}

	status := waitStatusFromGL(f.gl.ClientWaitSync(f.Sync, flags, uint64(timeout.Nanoseconds())))
	if status == WaitStatus_WaitFailed {
		logging.ErrLog.Printf("Waiting on fence %d failed. Err: %v\n", f.Sync, glapi.CheckErrors(f.gl, "ClientWaitSync"))
	}

	return status
}

// ServerWait makes the GPU wait for the fence before running commands issued after this call. It doesn't block the caller.
func (f *Fence) ServerWait() {
	assert.T(f.Sync != 0, "ServerWait called on a deleted fence")
	f.gl.Flush()
	f.gl.WaitSync(f.Sync, 0, glapi.TIMEOUT_IGNORED)
}

// IsSignaled checks the fence without waiting
func (f *Fence) IsSignaled() bool {
	assert.T(f.Sync != 0, "IsSignaled called on a deleted fence")
	return f.gl.GetSynci(f.Sync, glapi.SYNC_STATUS) == glapi.SIGNALED
}

// Await polls the fence every pollInterval until it's signaled or ctx is done.
// Like every GL call it must run on the thread owning the context.
func (f *Fence) Await(ctx context.Context, pollInterval time.Duration) error {

	assert.T(pollInterval > 0, "Await called with non-positive poll interval=%s", pollInterval)

	// Flush once so the fence is guaranteed to reach the GPU
	status := f.ClientWait(true, 0)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {

		if status.Signaled() {
			return nil
		}

		if status == WaitStatus_WaitFailed {
			return fmt.Errorf("%w: fence=%d", ErrWaitFailed, f.Sync)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			status = f.ClientWait(false, 0)
		}
	}
}

func (f *Fence) Delete() {

	if f.Sync == 0 {
		return
	}

	f.gl.DeleteSync(f.Sync)
	f.Sync = 0
	runtime.SetFinalizer(f, nil)
}

// NewFence inserts a fence into the command stream
func NewFence() *Fence {

	f := &Fence{gl: glapi.Current()}
	f.Insert()

	runtime.SetFinalizer(f, func(f *Fence) {
		glapi.QueueSyncRelease(f.gl, f.Sync)
	})

	return f
}
