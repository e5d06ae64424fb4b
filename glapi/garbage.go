package glapi

import (
	"sync"

	"github.com/bloeys/glw/logging"
)

type ObjectKind uint8

const (
	ObjectKind_Unknown ObjectKind = iota
	ObjectKind_Buffer
	ObjectKind_VertexArray
	ObjectKind_Texture
	ObjectKind_Shader
	ObjectKind_Program
	ObjectKind_Framebuffer
	ObjectKind_Renderbuffer
	ObjectKind_Query
	ObjectKind_Sync
)

func (k ObjectKind) String() string {

	switch k {
	case ObjectKind_Buffer:
		return "buffer"
	case ObjectKind_VertexArray:
		return "vertex array"
	case ObjectKind_Texture:
		return "texture"
	case ObjectKind_Shader:
		return "shader"
	case ObjectKind_Program:
		return "program"
	case ObjectKind_Framebuffer:
		return "framebuffer"
	case ObjectKind_Renderbuffer:
		return "renderbuffer"
	case ObjectKind_Query:
		return "query"
	case ObjectKind_Sync:
		return "sync"
	default:
		return "unknown"
	}
}

type garbageItem struct {
	gl   GL
	kind ObjectKind
	id   uint32
	sync uintptr
}

// Finalizers run on their own goroutine where no context is current,
// so they only queue names here and ReleaseGarbage deletes them later on the GL thread.
type garbage struct {
	sync.Mutex
	items []garbageItem
}

var trashbin garbage

func (g *garbage) add(item garbageItem) {
	g.Lock()
	g.items = append(g.items, item)
	g.Unlock()
}

// QueueRelease schedules deletion of an object name whose wrapper was garbage collected
// without Delete being called. Zero names are ignored.
func QueueRelease(g GL, kind ObjectKind, id uint32) {

	if id == 0 || g == nil {
		return
	}

	trashbin.add(garbageItem{gl: g, kind: kind, id: id})
}

func QueueSyncRelease(g GL, sync uintptr) {

	if sync == 0 || g == nil {
		return
	}

	trashbin.add(garbageItem{gl: g, kind: ObjectKind_Sync, sync: sync})
}

func PendingGarbage() int {
	trashbin.Lock()
	defer trashbin.Unlock()
	return len(trashbin.items)
}

// ReleaseGarbage deletes everything queued by finalizers and returns how many objects were released.
// It must be called on the thread that owns the context, for example once per frame.
func ReleaseGarbage() int {

	trashbin.Lock()
	items := trashbin.items
	trashbin.items = nil
	trashbin.Unlock()

	for i := 0; i < len(items); i++ {

		item := &items[i]
		switch item.kind {
		case ObjectKind_Buffer:
			item.gl.DeleteBuffer(item.id)
		case ObjectKind_VertexArray:
			item.gl.DeleteVertexArray(item.id)
		case ObjectKind_Texture:
			item.gl.DeleteTexture(item.id)
		case ObjectKind_Shader:
			item.gl.DeleteShader(item.id)
		case ObjectKind_Program:
			item.gl.DeleteProgram(item.id)
		case ObjectKind_Framebuffer:
			item.gl.DeleteFramebuffer(item.id)
		case ObjectKind_Renderbuffer:
			item.gl.DeleteRenderbuffer(item.id)
		case ObjectKind_Query:
			item.gl.DeleteQuery(item.id)
		case ObjectKind_Sync:
			item.gl.DeleteSync(item.sync)
		default:
			logging.ErrLog.Printf("Unknown object kind '%d' queued for release\n", item.kind)
			continue
		}

		logging.WarnLog.Printf("Released leaked %s (id=%d) that was garbage collected without Delete being called\n", item.kind, item.id)
	}

	return len(items)
}
