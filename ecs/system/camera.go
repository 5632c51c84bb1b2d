package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/unstable/common"
	"github.com/milk9111/unstable/ecs"
	"github.com/milk9111/unstable/ecs/component"
)

type CameraSystem struct {
	clock     Clock
	listener  Listener
	camEntity ecs.Entity
	world     *ecs.World
}

func NewCameraSystem(clock Clock, listener Listener) *CameraSystem {
	return &CameraSystem{clock: clock, listener: listener}
}

// Update centres the camera on the player plus the decaying shot recoil.
func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	cs.world = w
	if !w.IsAlive(cs.camEntity) {
		camEntity, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
	}
	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}

	t := common.Clamp(cs.clock.DeltaTime()*cam.Recovery, 0, 1)
	cam.RecoilX = common.Lerp(cam.RecoilX, 0, t)
	cam.RecoilY = common.Lerp(cam.RecoilY, 0, t)

	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	target, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	if cs.listener != nil {
		cs.listener.SetListener(target.X, target.Y)
	}

	camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	zoom := cam.Zoom
	if zoom == 0 {
		zoom = 1
	}
	camTransform.X = target.X - cam.Width/2/zoom + cam.RecoilX
	camTransform.Y = target.Y - cam.Height/2/zoom + cam.RecoilY
}

// AddRecoil kicks the camera by x, y world units.
func AddRecoil(w *ecs.World, x, y float64) {
	e, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		return
	}
	if cam, ok := ecs.Get(w, e, component.CameraComponent.Kind()); ok {
		cam.RecoilX += x
		cam.RecoilY += y
	}
}

// IsOffScreen reports whether pos lies outside the view widened by the
// camera margin. Without a camera every point counts as on screen.
func (cs *CameraSystem) IsOffScreen(pos mgl64.Vec2) bool {
	if cs == nil || cs.world == nil {
		return false
	}
	return OffScreen(cs.world, pos)
}

// OffScreen is IsOffScreen for the first camera of w.
func OffScreen(w *ecs.World, pos mgl64.Vec2) bool {
	e, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		return false
	}
	cam, ok := ecs.Get(w, e, component.CameraComponent.Kind())
	if !ok {
		return false
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return false
	}
	zoom := cam.Zoom
	if zoom == 0 {
		zoom = 1
	}
	left, top := t.X-cam.Margin, t.Y-cam.Margin
	right := t.X + cam.Width/zoom + cam.Margin
	bottom := t.Y + cam.Height/zoom + cam.Margin
	x, y := pos.X(), pos.Y()
	return x < left || x > right || y < top || y > bottom
}
