// Copyright (c) 2026, The VoxelGame Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command voxelgame opens a window and drives the deferred renderer:
// it owns the GPU device and surface, the input-driven camera, and
// the per-frame loop that uploads the camera uniform and invokes the
// geometry and composition passes.
package main

import (
	"fmt"
	"image"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"cogentcore.org/core/cli"
	"cogentcore.org/core/math32"
	"github.com/Glitch752/VoxelGame/camera"
	"github.com/Glitch752/VoxelGame/model"
	"github.com/Glitch752/VoxelGame/render"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// glfw and the gpu surface require the main thread.
	runtime.LockOSThread()
}

// Config holds the frame driver settings.
type Config struct {
	// Model is an OBJ file to load into the scene; when empty, a
	// small field of voxel cubes is generated instead.
	Model string

	// Width is the initial window width in pixels.
	Width int `default:"1024"`

	// Height is the initial window height in pixels.
	Height int `default:"768"`

	// FOV is the vertical field of view in degrees.
	FOV float32 `default:"45"`

	// Speed is the camera movement speed in units per second.
	Speed float32 `default:"5"`

	// VSync synchronizes presentation with the display refresh.
	VSync bool `default:"true"`
}

func main() {
	opts := cli.DefaultOptions("voxelgame", "Deferred-rendered voxel scene viewer.")
	cli.Run(opts, &Config{}, Run)
}

// app owns the window, the GPU objects, and the scene.
type app struct {
	cfg    *Config
	window *glfw.Window

	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	format   wgpu.TextureFormat
	size     image.Point

	renderer *render.Renderer
	meshes   []*model.Mesh

	cam  *camera.Camera
	ctrl *camera.Controller

	// windowed pose restored when leaving fullscreen.
	prevPos  image.Point
	prevSize image.Point

	lastCursor   math32.Vector2
	cursorInited bool
}

// Run opens the window and runs the render loop until closed.
func Run(c *Config) error {
	if err := glfw.Init(); err != nil {
		return err
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	window, err := glfw.CreateWindow(c.Width, c.Height, "VoxelGame", nil, nil)
	if err != nil {
		return err
	}
	defer window.Destroy()
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	a := &app{cfg: c, window: window}
	defer a.release()
	if err := a.configGPU(); err != nil {
		return err
	}
	if err := a.configScene(); err != nil {
		return err
	}
	a.configInput()

	slog.Info("voxelgame: starting", "format", a.format.String(), "size", a.size)

	last := time.Now()
	for !window.ShouldClose() {
		glfw.PollEvents()
		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now
		a.frame(dt)
	}
	return nil
}

// configGPU sets up instance, surface, adapter, device, and the
// deferred renderer at the current window size.
func (a *app) configGPU() error {
	a.instance = wgpu.CreateInstance(nil)
	a.surface = a.instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(a.window))

	adapter, err := a.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: a.surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return err
	}
	a.adapter = adapter

	device, err := adapter.RequestDevice(nil)
	if err != nil {
		return err
	}
	a.device = device
	a.queue = device.GetQueue()

	w, h := a.window.GetFramebufferSize()
	a.size = image.Point{w, h}
	a.format = a.surfaceFormat()
	a.configSurface()

	a.renderer, err = render.NewRenderer(a.device, a.queue, a.format, a.size)
	return err
}

// surfaceFormat prefers an sRGB surface format; shading assumes it,
// and a linear surface comes out darker.
func (a *app) surfaceFormat() wgpu.TextureFormat {
	caps := a.surface.GetCapabilities(a.adapter)
	for _, f := range caps.Formats {
		if strings.HasSuffix(f.String(), "Srgb") {
			return f
		}
	}
	return caps.Formats[0]
}

func (a *app) configSurface() {
	caps := a.surface.GetCapabilities(a.adapter)
	mode := wgpu.PresentModeFifo
	if !a.cfg.VSync {
		mode = wgpu.PresentModeImmediate
	}
	a.surface.Configure(a.adapter, a.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      a.format,
		Width:       uint32(a.size.X),
		Height:      uint32(a.size.Y),
		PresentMode: mode,
		AlphaMode:   caps.AlphaModes[0],
	})
}

// configScene loads the configured OBJ model, or generates a small
// voxel field when none is given, and creates the camera.
func (a *app) configScene() error {
	if a.cfg.Model != "" {
		ms, err := model.Load(a.device, a.cfg.Model)
		if err != nil {
			return err
		}
		a.meshes = append(a.meshes, ms)
	} else {
		colors := []math32.Vector3{
			math32.Vec3(0.8, 0.3, 0.2),
			math32.Vec3(0.2, 0.7, 0.3),
			math32.Vec3(0.2, 0.4, 0.8),
		}
		for i := -2; i <= 2; i++ {
			for k := -2; k <= 2; k++ {
				ctr := math32.Vec3(float32(2*i), 0, float32(2*k))
				clr := colors[(i+k+8)%len(colors)]
				verts, idx := model.Cube(ctr, 0.5, clr)
				ms, err := model.NewMesh(a.device, fmt.Sprintf("voxel %d,%d", i, k), verts, idx)
				if err != nil {
					return err
				}
				a.meshes = append(a.meshes, ms)
			}
		}
	}

	aspect := float32(a.size.X) / float32(a.size.Y)
	a.cam = camera.New(aspect, a.cfg.FOV, 0.1, 100)
	a.ctrl = camera.NewController(a.cfg.Speed)
	return nil
}

// moveKeys maps held keys onto camera movement directions.
var moveKeys = map[glfw.Key]camera.Move{
	glfw.KeyW:         camera.MoveForward,
	glfw.KeyUp:        camera.MoveForward,
	glfw.KeyS:         camera.MoveBackward,
	glfw.KeyDown:      camera.MoveBackward,
	glfw.KeyA:         camera.MoveLeft,
	glfw.KeyLeft:      camera.MoveLeft,
	glfw.KeyD:         camera.MoveRight,
	glfw.KeyRight:     camera.MoveRight,
	glfw.KeySpace:     camera.MoveUp,
	glfw.KeyLeftShift: camera.MoveDown,
}

func (a *app) configInput() {
	a.window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		switch {
		case key == glfw.KeyEscape && action == glfw.Press:
			w.SetShouldClose(true)
		case key == glfw.KeyF11 && action == glfw.Press:
			a.toggleFullscreen()
		default:
			if mv, ok := moveKeys[key]; ok {
				switch action {
				case glfw.Press:
					a.ctrl.SetPressed(mv, true)
				case glfw.Release:
					a.ctrl.SetPressed(mv, false)
				}
			}
		}
	})
	a.window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		pos := math32.Vec2(float32(xpos), float32(ypos))
		if a.cursorInited {
			d := pos.Sub(a.lastCursor)
			a.ctrl.Rotate(d.X, d.Y)
		}
		a.lastCursor = pos
		a.cursorInited = true
	})
	a.window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		a.resize(image.Point{width, height})
	})
}

func (a *app) toggleFullscreen() {
	if a.window.GetMonitor() != nil {
		a.window.SetMonitor(nil, a.prevPos.X, a.prevPos.Y, a.prevSize.X, a.prevSize.Y, glfw.DontCare)
		return
	}
	a.prevPos.X, a.prevPos.Y = a.window.GetPos()
	a.prevSize.X, a.prevSize.Y = a.window.GetSize()
	mon := glfw.GetPrimaryMonitor()
	vm := mon.GetVideoMode()
	a.window.SetMonitor(mon, 0, 0, vm.Width, vm.Height, vm.RefreshRate)
}

// resize reconfigures the surface and recreates the g-buffer; the
// follow-up redraw happens on the next frame of the main loop.
func (a *app) resize(size image.Point) {
	if size.X <= 0 || size.Y <= 0 {
		return
	}
	a.size = size
	a.configSurface()
	if err := a.renderer.SetSize(size); err != nil {
		slog.Error("voxelgame: resize", "err", err)
		return
	}
	a.cam.SetAspect(float32(size.X) / float32(size.Y))
}

// frame advances the camera, uploads the view-projection transform,
// and renders: geometry pass into the g-buffer, composition pass to
// the surface.
func (a *app) frame(dt float32) {
	a.ctrl.Update(a.cam, dt)
	vp := a.cam.ViewProjection()
	a.renderer.SetCamera(&vp)

	tex, err := a.surface.GetCurrentTexture()
	if err != nil {
		// Lost or outdated surface: reconfigure and skip the frame.
		slog.Warn("voxelgame: surface texture", "err", err)
		a.configSurface()
		return
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		slog.Error("voxelgame: surface view", "err", err)
		return
	}
	defer view.Release()

	err = a.renderer.RenderFrame(view, func(rp *wgpu.RenderPassEncoder) {
		for _, ms := range a.meshes {
			ms.Draw(rp)
		}
	})
	if err != nil {
		slog.Error("voxelgame: render", "err", err)
		return
	}
	a.surface.Present()
}

func (a *app) release() {
	for _, ms := range a.meshes {
		ms.Release()
	}
	a.meshes = nil
	if a.renderer != nil {
		a.renderer.Release()
	}
	if a.device != nil {
		a.device.Release()
	}
	if a.adapter != nil {
		a.adapter.Release()
	}
	if a.surface != nil {
		a.surface.Release()
	}
	if a.instance != nil {
		a.instance.Release()
	}
}
