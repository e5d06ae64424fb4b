package framebuffers

import (
	"runtime"

	"github.com/bloeys/glw/assert"
	"github.com/bloeys/glw/glapi"
	"github.com/bloeys/glw/logging"
)

type Renderbuffer struct {
	Id uint32

	internalFormat uint32
	width          int32
	height         int32
	samples        int32

	gl glapi.GL
}

func (rb *Renderbuffer) InternalFormat() uint32 {
	return rb.internalFormat
}

func (rb *Renderbuffer) Width() int32 {
	return rb.width
}

func (rb *Renderbuffer) Height() int32 {
	return rb.height
}

func (rb *Renderbuffer) Samples() int32 {
	return rb.samples
}

func (rb *Renderbuffer) Bind() {
	assert.T(rb.Id != 0, "using deleted renderbuffer")
	rb.gl.BindRenderbuffer(glapi.RENDERBUFFER, rb.Id)
}

func (rb *Renderbuffer) UnBind() {
	rb.gl.BindRenderbuffer(glapi.RENDERBUFFER, 0)
}

func (rb *Renderbuffer) Storage(internalFormat uint32, width, height int32) {
	rb.StorageMultisample(0, internalFormat, width, height)
}

// StorageMultisample allocates storage. Zero samples is the same as Storage.
func (rb *Renderbuffer) StorageMultisample(samples int32, internalFormat uint32, width, height int32) {

	assert.T(width > 0 && height > 0, "renderbuffer storage must have a positive size, got %dx%d", width, height)
	assert.T(samples >= 0, "renderbuffer samples can't be negative, got %d", samples)

	rb.Bind()
	if samples == 0 {
		rb.gl.RenderbufferStorage(glapi.RENDERBUFFER, internalFormat, width, height)
	} else {
		rb.gl.RenderbufferStorageMultisample(glapi.RENDERBUFFER, samples, internalFormat, width, height)
	}
	rb.UnBind()

	rb.internalFormat = internalFormat
	rb.width = width
	rb.height = height
	rb.samples = samples
}

func (rb *Renderbuffer) Delete() {

	if rb.Id == 0 {
		return
	}

	rb.gl.DeleteRenderbuffer(rb.Id)
	rb.Id = 0
	runtime.SetFinalizer(rb, nil)
}

func NewRenderbuffer() *Renderbuffer {

	rb := &Renderbuffer{gl: glapi.Current()}

	rb.Id = rb.gl.GenRenderbuffer()
	if rb.Id == 0 {
		logging.ErrLog.Panicf("Failed to generate render buffer. GlError=%d\n", rb.gl.GetError())
	}

	runtime.SetFinalizer(rb, func(rb *Renderbuffer) {
		glapi.QueueRelease(rb.gl, glapi.ObjectKind_Renderbuffer, rb.Id)
	})

	return rb
}
