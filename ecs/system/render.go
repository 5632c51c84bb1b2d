package system

import (
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/unstable/common"
	"github.com/milk9111/unstable/ecs"
	"github.com/milk9111/unstable/ecs/component"
)

const (
	spokeCount   = 3
	outlineWidth = 2
)

// RenderSystem draws every visible shape as a flat circle, back to front by
// layer.
type RenderSystem struct{}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

// Update is a no-op; RenderSystem only draws.
func (r *RenderSystem) Update(w *ecs.World) {}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	camX, camY, zoom := debugCameraTransform(w)

	entities := w.Query(component.TransformComponent.Kind(), component.ShapeComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool {
		si, _ := ecs.Get(w, entities[i], component.ShapeComponent.Kind())
		sj, _ := ecs.Get(w, entities[j], component.ShapeComponent.Kind())
		if si.Layer != sj.Layer {
			return si.Layer < sj.Layer
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		s, _ := ecs.Get(w, e, component.ShapeComponent.Kind())
		if !s.Visible || parked(w, e) {
			continue
		}

		x, y := float32((t.X-camX)*zoom), float32((t.Y-camY)*zoom)
		radius := s.Radius * zoom
		alpha := s.Alpha

		if sp, ok := ecs.Get(w, e, component.SpawnerComponent.Kind()); ok {
			alpha *= DissolveAlpha(sp)
			if sp.RiseDepth > 0 {
				// sunk spawners read smaller
				radius *= 1 - 0.6*common.Clamp(sp.Rise/sp.RiseDepth, 0, 1)
			}
		}

		fill := s.Color
		if flashing(w, e) {
			fill = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: s.Color.A}
		}
		c := withAlpha(fill, alpha)
		if s.Outline {
			vector.StrokeCircle(screen, x, y, float32(radius), outlineWidth, c, true)
			for i := 0; i < spokeCount; i++ {
				a := t.Rotation + float64(i)*2*math.Pi/spokeCount
				ex := x + float32(math.Cos(a)*radius)
				ey := y + float32(math.Sin(a)*radius)
				vector.StrokeLine(screen, x, y, ex, ey, outlineWidth, c, true)
			}
			continue
		}
		vector.FillCircle(screen, x, y, float32(radius), c, true)

		if ecs.Has(w, e, component.PlayerComponent.Kind()) {
			ex := x + float32(math.Cos(t.Rotation)*radius*1.6)
			ey := y + float32(math.Sin(t.Rotation)*radius*1.6)
			vector.StrokeLine(screen, x, y, ex, ey, outlineWidth, c, true)
		}
	}

	r.drawParticles(w, screen, camX, camY, zoom)
}

func (r *RenderSystem) drawParticles(w *ecs.World, screen *ebiten.Image, camX, camY, zoom float64) {
	ecs.ForEach(w, component.VFXComponent.Kind(), func(e ecs.Entity, fx *component.VFX) {
		if parked(w, e) || fx.Finished {
			return
		}
		c := withAlpha(fx.Color, 1-fx.Progress)
		for _, p := range fx.Particles {
			x, y := float32((p.X-camX)*zoom), float32((p.Y-camY)*zoom)
			vector.FillCircle(screen, x, y, float32(p.Size*zoom), c, false)
		}
	})
}

func withAlpha(c color.RGBA, alpha float64) color.NRGBA {
	a := common.Clamp(alpha, 0, 1) * float64(c.A)
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(a)}
}
