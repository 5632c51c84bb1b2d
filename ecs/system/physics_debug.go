package system

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/unstable/common"
	"github.com/milk9111/unstable/ecs"
	"github.com/milk9111/unstable/ecs/component"
)

const (
	debugStroke  = 1
	debugDotSize = 4
)

func DrawPhysicsDebug(space *cp.Space, w *ecs.World, screen *ebiten.Image) {
	if space == nil || w == nil || screen == nil {
		return
	}

	camX, camY, zoom := debugCameraTransform(w)
	drawer := &physicsDebugDrawer{
		screen: screen,
		camX:   camX,
		camY:   camY,
		zoom:   zoom,
	}
	cp.DrawSpace(space, drawer)
}

// DrawTimeScaleDebug prints the director phase, the player's time scale and
// every live effector on the player's stack.
func DrawTimeScaleDebug(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	gs, ok := gameState(w)
	if !ok {
		return
	}
	text := fmt.Sprintf("Phase: %s\nPlayer Scale: %.3f\nOffset: %.3f\nSpawn In: %.2f\nSpawner Health: %d",
		gs.Phase, gs.PlayerScale, gs.TimeOffset, math.Max(gs.SpawnInterval-gs.SpawnTimer, 0), gs.SpawnerHealth)
	if player, ok := w.First(component.PlayerTagComponent.Kind()); ok {
		if ts, ok := ecs.Get(w, player, component.TimeScaleComponent.Kind()); ok {
			for _, owner := range ts.Stack.Owners() {
				weight, _ := ts.Stack.Weight(owner)
				text += fmt.Sprintf("\n  %s: %.2f", ecs.Entity(owner), weight)
			}
		}
	}
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}

// physicsDebugDrawer renders cp.DrawSpace output in camera space. Every
// body in the arena is a circle, so polygons and segments only show up
// for debugging stray shapes.
type physicsDebugDrawer struct {
	screen *ebiten.Image
	camX   float64
	camY   float64
	zoom   float64
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	x, y := d.toScreen(pos)
	r := float32(radius * d.zoom)
	vector.StrokeCircle(d.screen, x, y, r, debugStroke, toNRGBA(outline), true)
	d.line(pos, cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.line(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.line(a, b, outline)
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	for i := 0; i < count; i++ {
		d.line(verts[i], verts[(i+1)%count], outline)
	}
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	x, y := d.toScreen(pos)
	vector.FillCircle(d.screen, x, y, float32(size/2), toNRGBA(fill), false)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES | cp.DRAW_COLLISION_POINTS
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.9, G: 0.9, B: 0.9, A: 0.8}
}

// ShapeColor keys off the collision type the physics system assigned.
func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape == nil {
		return cp.FColor{A: 0.5}
	}
	switch shape.CollisionType() {
	case collisionTypePlayer:
		return cp.FColor{R: 0.2, G: 1, B: 0.3, A: 0.6}
	case collisionTypeEnemy:
		return cp.FColor{R: 1, G: 0.3, B: 0.2, A: 0.6}
	case collisionTypeSpawner:
		return cp.FColor{R: 1, G: 0.7, B: 0.1, A: 0.6}
	case collisionTypeBullet:
		return cp.FColor{R: 1, G: 1, B: 0.4, A: 0.6}
	case collisionTypeField:
		return cp.FColor{R: 0.2, G: 0.4, B: 1, A: 0.4}
	}
	return cp.FColor{R: 0.6, G: 0.6, B: 0.6, A: 0.5}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) line(a, b cp.Vector, c cp.FColor) {
	x1, y1 := d.toScreen(a)
	x2, y2 := d.toScreen(b)
	vector.StrokeLine(d.screen, x1, y1, x2, y2, debugStroke, toNRGBA(c), true)
}

func (d *physicsDebugDrawer) toScreen(v cp.Vector) (float32, float32) {
	return float32((v.X - d.camX) * d.zoom), float32((v.Y - d.camY) * d.zoom)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	scale := func(v float32) uint8 {
		return uint8(common.Clamp(float64(v), 0, 1) * 255)
	}
	return color.NRGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: scale(c.A)}
}

func debugCameraTransform(w *ecs.World) (float64, float64, float64) {
	camX, camY := 0.0, 0.0
	zoom := 1.0
	camEntity, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		return camX, camY, zoom
	}
	if camTransform, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind()); ok {
		camX = camTransform.X
		camY = camTransform.Y
	}
	if camComp, ok := ecs.Get(w, camEntity, component.CameraComponent.Kind()); ok {
		if camComp.Zoom > 0 {
			zoom = camComp.Zoom
		}
	}
	return camX, camY, zoom
}
