// Package sdlctx creates an SDL window with a current OpenGL core context and
// installs a gogl driver as the current glapi.GL.
package sdlctx

import (
	"fmt"
	"runtime"

	"github.com/bloeys/glw/assert"
	"github.com/bloeys/glw/glapi"
	"github.com/bloeys/glw/glapi/gogl"
	"github.com/bloeys/glw/internal/input"
	"github.com/bloeys/glw/logging"
	"github.com/veandco/go-sdl2/sdl"
)

var isInited = false

type Config struct {
	Title  string `toml:"title"`
	Width  int32  `toml:"width"`
	Height int32  `toml:"height"`

	GLMajor int `toml:"gl_major"`
	GLMinor int `toml:"gl_minor"`

	VSync  bool `toml:"vsync"`
	Hidden bool `toml:"hidden"`
	// MSAASamples=0 disables multisampling of the default framebuffer
	MSAASamples int `toml:"msaa_samples"`
	Srgb        bool `toml:"srgb"`
}

func DefaultConfig() Config {
	return Config{
		Title:       "glw",
		Width:       1280,
		Height:      720,
		GLMajor:     4,
		GLMinor:     1,
		VSync:       true,
		MSAASamples: 4,
		Srgb:        true,
	}
}

type Window struct {
	SDLWin *sdl.Window
	GlCtx  sdl.GLContext
	Driver *gogl.Driver
	Input  *input.State

	EventCallbacks []func(sdl.Event)
}

// Init must be called before CreateWindow, from the goroutine that will do all GL calls.
// It locks that goroutine to its OS thread.
func Init(cfg Config) error {

	runtime.LockOSThread()

	err := sdl.Init(sdl.INIT_TIMER | sdl.INIT_VIDEO)
	if err != nil {
		return err
	}

	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, cfg.GLMajor)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, cfg.GLMinor)

	sdl.GLSetAttribute(sdl.GL_RED_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_GREEN_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_BLUE_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_ALPHA_SIZE, 8)

	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)
	sdl.GLSetAttribute(sdl.GL_STENCIL_SIZE, 8)

	if cfg.Srgb {
		sdl.GLSetAttribute(sdl.GL_FRAMEBUFFER_SRGB_CAPABLE, 1)
	}

	if cfg.MSAASamples > 0 {
		sdl.GLSetAttribute(sdl.GL_MULTISAMPLEBUFFERS, 1)
		sdl.GLSetAttribute(sdl.GL_MULTISAMPLESAMPLES, cfg.MSAASamples)
	}

	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)

	isInited = true
	return nil
}

func CreateWindow(cfg Config) (*Window, error) {

	assert.T(isInited, "sdlctx.Init() was not called!")

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Hidden {
		flags |= sdl.WINDOW_HIDDEN
	}

	sdlWin, err := sdl.CreateWindow(cfg.Title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, cfg.Width, cfg.Height, flags)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	win := &Window{
		SDLWin: sdlWin,
		Input:  input.NewState(),
	}

	win.GlCtx, err = sdlWin.GLCreateContext()
	if err != nil {
		sdlWin.Destroy()
		return nil, fmt.Errorf("failed to create OpenGL context: %w", err)
	}

	win.Driver, err = gogl.Init()
	if err != nil {
		win.Destroy()
		return nil, fmt.Errorf("failed to load OpenGL functions: %w", err)
	}

	glapi.SetCurrent(win.Driver)
	win.initOpenGL(cfg)
	win.SetVSync(cfg.VSync)

	logging.InfoLog.Printf("OpenGL %s (%s, %s)\n", win.Driver.GetString(glapi.VERSION), win.Driver.GetString(glapi.VENDOR), win.Driver.GetString(glapi.RENDERER))

	// Get rid of the white startup screen
	win.Driver.Clear(glapi.COLOR_BUFFER_BIT | glapi.DEPTH_BUFFER_BIT | glapi.STENCIL_BUFFER_BIT)
	sdlWin.GLSwap()

	return win, nil
}

func (w *Window) initOpenGL(cfg Config) {

	w.Driver.Enable(glapi.DEPTH_TEST)
	w.Driver.Enable(glapi.STENCIL_TEST)
	w.Driver.Enable(glapi.CULL_FACE)
	w.Driver.Enable(glapi.BLEND)

	w.SetMSAA(cfg.MSAASamples > 0)
	w.SetSrgbFramebuffer(cfg.Srgb)

	w.Driver.ClearColor(0, 0, 0, 1)

	fbWidth, fbHeight := w.SDLWin.GLGetDrawableSize()
	w.Driver.Viewport(0, 0, fbWidth, fbHeight)
}

// PollEvents starts a new input frame and drains the SDL event queue
func (w *Window) PollEvents() {

	w.Input.FrameStart()

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {

		for i := 0; i < len(w.EventCallbacks); i++ {
			w.EventCallbacks[i](event)
		}

		w.Input.HandleEvent(event)
	}

	if w.Input.IsResized() {
		w.handleWindowResize()
	}
}

func (w *Window) handleWindowResize() {

	fbWidth, fbHeight := w.SDLWin.GLGetDrawableSize()
	if fbWidth <= 0 || fbHeight <= 0 {
		return
	}

	w.Driver.Viewport(0, 0, fbWidth, fbHeight)
}

func (w *Window) DrawableSize() (width, height int32) {
	return w.SDLWin.GLGetDrawableSize()
}

func (w *Window) Swap() {
	w.SDLWin.GLSwap()
}

func (w *Window) SetVSync(enabled bool) {

	interval := 0
	if enabled {
		interval = 1
	}

	if err := sdl.GLSetSwapInterval(interval); err != nil {
		logging.WarnLog.Printf("Failed to set swap interval to %d. Err: %v\n", interval, err)
	}
}

func (w *Window) SetSrgbFramebuffer(isEnabled bool) {

	if isEnabled {
		w.Driver.Enable(glapi.FRAMEBUFFER_SRGB)
	} else {
		w.Driver.Disable(glapi.FRAMEBUFFER_SRGB)
	}
}

func (w *Window) SetMSAA(isEnabled bool) {

	if isEnabled {
		w.Driver.Enable(glapi.MULTISAMPLE)
	} else {
		w.Driver.Disable(glapi.MULTISAMPLE)
	}
}

// Destroy releases queued garbage, the context and the window, then shuts SDL down
func (w *Window) Destroy() {

	if w.Driver != nil {
		glapi.ReleaseGarbage()
		if glapi.HasCurrent() && glapi.Current() == glapi.GL(w.Driver) {
			glapi.SetCurrent(nil)
		}
	}

	if w.GlCtx != nil {
		sdl.GLDeleteContext(w.GlCtx)
		w.GlCtx = nil
	}

	if w.SDLWin != nil {
		w.SDLWin.Destroy()
		w.SDLWin = nil
	}

	sdl.Quit()
	isInited = false
}
