// Package input tracks keyboard and mouse state from SDL events, including
// pressed/released this frame and double clicks.
//
// Call FrameStart once per frame before feeding that frame's events to HandleEvent.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

type keyState struct {
	Key                 sdl.Keycode
	State               int
	IsPressedThisFrame  bool
	IsReleasedThisFrame bool
}

type mouseBtnState struct {
	Btn   int
	State int

	IsPressedThisFrame  bool
	IsReleasedThisFrame bool
	IsDoubleClicked     bool
}

type mouseMotionState struct {
	XDelta int32
	YDelta int32
	XPos   int32
	YPos   int32
}

type mouseWheelState struct {
	XDelta int32
	YDelta int32
}

type State struct {
	mouseWheel  mouseWheelState
	mouseMotion mouseMotionState
	mouseBtnMap map[int]mouseBtnState
	keyMap      map[sdl.Keycode]keyState

	isQuitRequested bool
	isResized       bool
}

func NewState() *State {
	return &State{
		mouseBtnMap: map[int]mouseBtnState{},
		keyMap:      map[sdl.Keycode]keyState{},
	}
}

// FrameStart clears everything that only lasts one frame
func (s *State) FrameStart() {

	for k, v := range s.keyMap {
		v.IsPressedThisFrame = false
		v.IsReleasedThisFrame = false
		s.keyMap[k] = v
	}

	for k, v := range s.mouseBtnMap {
		v.IsPressedThisFrame = false
		v.IsReleasedThisFrame = false
		v.IsDoubleClicked = false
		s.mouseBtnMap[k] = v
	}

	s.mouseMotion.XDelta = 0
	s.mouseMotion.YDelta = 0

	s.mouseWheel = mouseWheelState{}

	s.isResized = false
}

func (s *State) Clear() {
	clear(s.keyMap)
	clear(s.mouseBtnMap)
	s.mouseMotion = mouseMotionState{}
	s.mouseWheel = mouseWheelState{}
}

// HandleEvent updates the state from one event. Events that aren't input are ignored.
func (s *State) HandleEvent(event sdl.Event) {

	switch e := event.(type) {
	case *sdl.KeyboardEvent:
		s.handleKeyboardEvent(e)
	case *sdl.MouseButtonEvent:
		s.handleMouseBtnEvent(e)
	case *sdl.MouseMotionEvent:
		s.mouseMotion.XPos = e.X
		s.mouseMotion.YPos = e.Y
		s.mouseMotion.XDelta += e.XRel
		s.mouseMotion.YDelta += e.YRel
	case *sdl.MouseWheelEvent:
		s.mouseWheel.XDelta += e.X
		s.mouseWheel.YDelta += e.Y
	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			s.isResized = true
		}
	case *sdl.QuitEvent:
		s.isQuitRequested = true
	}
}

func (s *State) handleKeyboardEvent(e *sdl.KeyboardEvent) {

	ks, ok := s.keyMap[e.Keysym.Sym]
	if !ok {
		ks = keyState{Key: e.Keysym.Sym}
	}

	ks.State = int(e.State)
	ks.IsPressedThisFrame = e.State == sdl.PRESSED && e.Repeat == 0
	ks.IsReleasedThisFrame = e.State == sdl.RELEASED && e.Repeat == 0

	s.keyMap[ks.Key] = ks
}

func (s *State) handleMouseBtnEvent(e *sdl.MouseButtonEvent) {

	mb, ok := s.mouseBtnMap[int(e.Button)]
	if !ok {
		mb = mouseBtnState{Btn: int(e.Button)}
	}

	mb.State = int(e.State)
	mb.IsDoubleClicked = e.Clicks == 2 && e.State == sdl.PRESSED
	mb.IsPressedThisFrame = e.State == sdl.PRESSED
	mb.IsReleasedThisFrame = e.State == sdl.RELEASED

	s.mouseBtnMap[int(e.Button)] = mb
}

func (s *State) IsQuitRequested() bool {
	return s.isQuitRequested
}

// IsResized is true if the window size changed this frame
func (s *State) IsResized() bool {
	return s.isResized
}

func (s *State) MousePos() (x, y int32) {
	return s.mouseMotion.XPos, s.mouseMotion.YPos
}

// MouseMotion returns how many pixels were moved this frame
func (s *State) MouseMotion() (xDelta, yDelta int32) {
	return s.mouseMotion.XDelta, s.mouseMotion.YDelta
}

func (s *State) MouseWheelMotion() (xDelta, yDelta int32) {
	return s.mouseWheel.XDelta, s.mouseWheel.YDelta
}

func (s *State) KeyClicked(kc sdl.Keycode) bool {
	return s.keyMap[kc].IsPressedThisFrame
}

func (s *State) KeyReleased(kc sdl.Keycode) bool {
	return s.keyMap[kc].IsReleasedThisFrame
}

func (s *State) KeyDown(kc sdl.Keycode) bool {
	return s.keyMap[kc].State == sdl.PRESSED
}

func (s *State) MouseClicked(mb int) bool {
	return s.mouseBtnMap[mb].IsPressedThisFrame
}

func (s *State) MouseDoubleClicked(mb int) bool {
	return s.mouseBtnMap[mb].IsDoubleClicked
}

func (s *State) MouseDown(mb int) bool {
	return s.mouseBtnMap[mb].State == sdl.PRESSED
}
