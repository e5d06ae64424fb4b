// Command glinfo prints information about the OpenGL driver and then draws a
// colored quad through the glw wrappers until closed or a frame limit is hit.
//
// Usage:
//
//	glinfo [-config glinfo.toml]
//
// WASD moves the camera, holding the right mouse button looks around and Escape quits.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/glw/buffers"
	"github.com/bloeys/glw/camera"
	"github.com/bloeys/glw/fences"
	"github.com/bloeys/glw/framebuffers"
	"github.com/bloeys/glw/glapi"
	"github.com/bloeys/glw/internal/input"
	"github.com/bloeys/glw/internal/sdlctx"
	"github.com/bloeys/glw/logging"
	"github.com/bloeys/glw/queries"
	"github.com/bloeys/glw/shaders"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	camMoveSpeed float32 = 3
	camRotSpeed  float32 = 0.2
	fenceTimeout         = 100 * time.Millisecond
	statsEvery           = 120
)

const quadShaderSrc = `
//shader:vertex
#version 410

layout(std140) uniform Camera {
	mat4 projView;
};

layout(location = 0) in vec3 vertPosIn;
layout(location = 1) in vec4 vertColorIn;

out vec4 vertColor;

void main()
{
	vertColor = vertColorIn;
	gl_Position = projView * vec4(vertPosIn, 1.0);
}

//shader:fragment
#version 410

in vec4 vertColor;
out vec4 fragColor;

uniform float tint;

void main()
{
	fragColor = vec4(vertColor.rgb * tint, vertColor.a);
}
`

const cameraBindPoint = 0

var (
	pitch float32 = 0
	yaw   float32 = -90 * gglm.Deg2Rad
)

type app struct {
	cfg config
	win *sdlctx.Window

	cam     *camera.Camera
	prog    *shaders.Program
	vao     *buffers.VertexArray
	camUbo  *buffers.UniformBuffer
	offFbo  *framebuffers.Framebuffer
	gpuTime *queries.Query
	fence   *fences.Fence
}

func main() {

	configPath := flag.String("config", "", "optional TOML config file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logging.ErrLog.Fatalln(err)
	}

	if cfg.Debug {
		logging.SetDebugOutput(os.Stdout)
	}

	err = sdlctx.Init(cfg.Window)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to init SDL. Err:", err)
	}

	win, err := sdlctx.CreateWindow(cfg.Window)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to create window. Err:", err)
	}
	defer win.Destroy()

	printGLInfo(win.Driver)

	a := &app{cfg: cfg, win: win}
	a.init()
	a.run()
	a.deInit()
}

func printGLInfo(g glapi.GL) {
	logging.InfoLog.Printf("Vendor:   %s\n", g.GetString(glapi.VENDOR))
	logging.InfoLog.Printf("Renderer: %s\n", g.GetString(glapi.RENDERER))
	logging.InfoLog.Printf("Version:  %s\n", g.GetString(glapi.VERSION))
	logging.InfoLog.Printf("GLSL:     %s\n", g.GetString(glapi.SHADING_LANGUAGE_VERSION))
	logging.InfoLog.Printf("Max color attachments: %d\n", g.GetIntegerv(glapi.MAX_COLOR_ATTACHMENTS))
}

func (a *app) init() {

	var err error
	a.prog, err = shaders.LoadAndCompileCombinedShaderSrc([]byte(quadShaderSrc))
	if err != nil {
		logging.ErrLog.Fatalln("Failed to create quad program. Err:", err)
	}

	logging.InfoLog.Printf("Quad program attributes=%v uniforms=%v blocks=%v\n", a.prog.AttribNames(), a.prog.UniformNames(), a.prog.UniformBlockNames())

	if err = a.prog.SetUniformBlockBinding("Camera", cameraBindPoint); err != nil {
		logging.ErrLog.Fatalln(err)
	}

	w, h := a.win.DrawableSize()
	a.cam = camera.NewPerspective(
		&gglm.Vec3{Data: [3]float32{0, 0, 3}},
		&gglm.Vec3{Data: [3]float32{0, 0, -1}},
		&gglm.Vec3{Data: [3]float32{0, 1, 0}},
		0.1, 100,
		45*gglm.Deg2Rad,
		float32(w)/float32(h),
	)
	a.cam.UpdateRotation(pitch, yaw)

	a.camUbo = buffers.NewUniformBuffer([]buffers.UniformBufferFieldInput{
		{Id: 0, Type: buffers.DataTypeMat4},
	})

	vbo := buffers.NewVertexBuffer(
		buffers.Element{ElementType: buffers.DataTypeVec3},
		buffers.Element{ElementType: buffers.DataTypeVec4},
	)
	vbo.SetData([]float32{
		-0.5, -0.5, 0, 1, 0, 0, 1,
		0.5, -0.5, 0, 0, 1, 0, 1,
		0.5, 0.5, 0, 0, 0, 1, 1,
		-0.5, 0.5, 0, 1, 1, 0, 1,
	}, buffers.BufUsage_Static_Draw)

	ibo := buffers.NewIndexBuffer()
	ibo.SetData([]uint32{0, 1, 2, 2, 3, 0})

	a.vao = buffers.NewVertexArray()
	firstAttrib := a.vao.AddVertexBuffer(vbo)
	a.vao.SetIndexBuffer(ibo)

	if a.prog.AttribLoc("vertPosIn") != int32(firstAttrib) || a.prog.AttribLoc("vertColorIn") != int32(firstAttrib+1) {
		logging.ErrLog.Fatalf("Quad program attribute locations don't match the vertex layout starting at %d\n", firstAttrib)
	}

	if a.cfg.Offscreen {
		a.initFbo(w, h)
	}

	a.gpuTime = queries.NewQuery(queries.QueryTarget_TimeElapsed)
	a.fence = fences.NewFence()
}

func (a *app) initFbo(w, h int32) {

	if a.offFbo != nil {
		a.offFbo.Delete()
	}

	a.offFbo = framebuffers.NewFramebuffer(uint32(w), uint32(h))
	a.offFbo.NewColorAttachment(framebuffers.AttachmentType_Texture, framebuffers.AttachmentFormat_RGBA8)
	a.offFbo.NewDepthStencilAttachment(framebuffers.AttachmentType_Renderbuffer, framebuffers.AttachmentFormat_Depth24Stencil8)

	if err := a.offFbo.CheckComplete(); err != nil {
		logging.ErrLog.Fatalln(err)
	}
}

func (a *app) run() {

	lastFrame := time.Now()
	for frame := 0; a.cfg.Frames == 0 || frame < a.cfg.Frames; frame++ {

		now := time.Now()
		dt := float32(now.Sub(lastFrame).Seconds())
		lastFrame = now

		a.win.PollEvents()
		in := a.win.Input
		if in.IsQuitRequested() || in.KeyClicked(sdl.K_ESCAPE) {
			break
		}

		if in.IsResized() {
			a.handleResize()
		}

		a.updateCamera(in, dt)
		a.render(frame)

		a.win.Swap()

		// Finalized wrappers only queue their names, so they are deleted here on the GL thread
		glapi.ReleaseGarbage()

		if err := glapi.CheckErrors(a.win.Driver, "frame"); err != nil {
			logging.WarnLog.Println(err)
		}
	}
}

func (a *app) handleResize() {

	w, h := a.win.DrawableSize()
	if w <= 0 || h <= 0 {
		return
	}

	a.cam.SetAspectRatio(float32(w) / float32(h))

	if a.cfg.Offscreen {
		a.initFbo(w, h)
	}
}

func (a *app) updateCamera(in *input.State, dt float32) {

	mouseX, mouseY := in.MouseMotion()
	if (mouseX != 0 || mouseY != 0) && in.MouseDown(sdl.BUTTON_RIGHT) {

		yaw += float32(mouseX) * camRotSpeed * dt
		pitch += float32(-mouseY) * camRotSpeed * dt
		if pitch > 1.5 {
			pitch = 1.5
		}

		if pitch < -1.5 {
			pitch = -1.5
		}

		a.cam.UpdateRotation(pitch, yaw)
	}

	var moveX, moveZ float32
	if in.KeyDown(sdl.K_w) {
		moveZ = camMoveSpeed * dt
	} else if in.KeyDown(sdl.K_s) {
		moveZ = -camMoveSpeed * dt
	}

	if in.KeyDown(sdl.K_d) {
		moveX = camMoveSpeed * dt
	} else if in.KeyDown(sdl.K_a) {
		moveX = -camMoveSpeed * dt
	}

	if moveX != 0 || moveZ != 0 {
		move := gglm.NewVec3(moveX, 0, moveZ)
		a.cam.MoveRelative(&move)
	}
}

func (a *app) render(frame int) {

	// Don't overwrite the camera block while the previous frame may still be reading it
	if status := a.fence.ClientWait(true, fenceTimeout); status == fences.WaitStatus_TimeoutExpired {
		logging.WarnLog.Printf("Frame %d: previous frame still running after %s\n", frame, fenceTimeout)
	}

	if a.cam.IsViewDirty() || a.cam.IsProjDirty() {
		projView := a.cam.ProjViewMat()
		a.camUbo.SetMat4(0, &projView)
	}
	a.camUbo.SetBindPoint(cameraBindPoint)

	g := a.win.Driver
	if a.offFbo != nil {
		a.offFbo.BindWithViewport()
	}

	g.ClearColor(0.1, 0.1, 0.12, 1)
	g.Clear(glapi.COLOR_BUFFER_BIT | glapi.DEPTH_BUFFER_BIT)

	a.gpuTime.Run(func() {
		a.prog.Bind()
		a.prog.SetUnifFloat32("tint", 1)
		a.vao.Bind()
		g.DrawElements(glapi.TRIANGLES, a.vao.IndexBuffer.IndexBufCount, a.vao.IndexBuffer.IndexType(), 0)
		a.vao.UnBind()
	})

	if a.offFbo != nil {
		a.offFbo.UnBindWithViewport(a.offFbo.Width, a.offFbo.Height)
		a.offFbo.BlitTo(nil, glapi.COLOR_BUFFER_BIT, glapi.NEAREST)
	}

	a.fence.Insert()

	if ns, ok := a.gpuTime.PollResult(); ok && frame%statsEvery == 0 {
		logging.InfoLog.Printf("Frame %d: quad took %s on the GPU\n", frame, time.Duration(ns))
	}
}

func (a *app) deInit() {

	if a.offFbo != nil {
		a.offFbo.Delete()
	}

	for _, vbo := range a.vao.Vbos {
		vbo.Delete()
	}
	a.vao.IndexBuffer.Delete()
	a.vao.Delete()

	a.camUbo.Delete()
	a.prog.Delete()
	a.gpuTime.Delete()
	a.fence.Delete()
}
