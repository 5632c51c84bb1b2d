package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/unstable/common"
	"github.com/milk9111/unstable/ecs"
	"github.com/milk9111/unstable/ecs/component"
)

type fakeListener struct {
	x, y float64
}

func (l *fakeListener) SetListener(x, y float64) { l.x, l.y = x, y }

func TestCameraCentresOnPlayer(t *testing.T) {
	s := newSession(t)
	pt, _ := ecs.Get(s.w, s.player, component.TransformComponent.Kind())
	pt.X, pt.Y = 40, -20

	listener := &fakeListener{}
	cs := NewCameraSystem(s.clock, listener)
	cs.Update(s.w)

	cam, camEntity := w0Camera(t, s)
	ct, _ := ecs.Get(s.w, camEntity, component.TransformComponent.Kind())
	if !approx(ct.X, 40-cam.Width/2) || !approx(ct.Y, -20-cam.Height/2) {
		t.Fatalf("camera at %v,%v", ct.X, ct.Y)
	}
	if listener.x != 40 || listener.y != -20 {
		t.Fatalf("listener should follow the player, got %v,%v", listener.x, listener.y)
	}
}

func TestRecoilRecovers(t *testing.T) {
	s := newSession(t)
	cs := NewCameraSystem(s.clock, nil)
	AddRecoil(s.w, 3, 0)
	cam, _ := w0Camera(t, s)

	cs.Update(s.w)
	if cam.RecoilX <= 0 || cam.RecoilX >= 3 {
		t.Fatalf("recoil should decay, got %v", cam.RecoilX)
	}
	for i := 0; i < 120; i++ {
		cs.Update(s.w)
	}
	if cam.RecoilX > 1e-3 {
		t.Fatalf("recoil should settle, got %v", cam.RecoilX)
	}
}

func TestOffScreen(t *testing.T) {
	s := newSession(t)
	cs := NewCameraSystem(s.clock, nil)
	if cs.IsOffScreen(mgl64.Vec2{1e6, 0}) {
		t.Fatalf("camera without a world reports everything on screen")
	}
	cs.Update(s.w)

	halfW, halfH := float64(common.ScreenWidth)/2, float64(common.ScreenHeight)/2
	margin := s.spec.Camera.Margin
	cases := []struct {
		name string
		pos  mgl64.Vec2
		off  bool
	}{
		{"centre", mgl64.Vec2{0, 0}, false},
		{"inside_margin", mgl64.Vec2{halfW + margin - 1, 0}, false},
		{"past_margin", mgl64.Vec2{halfW + margin + 1, 0}, true},
		{"above", mgl64.Vec2{0, -halfH - margin - 1}, true},
		{"outer_ring", mgl64.Vec2{0, 240}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := cs.IsOffScreen(c.pos); got != c.off {
				t.Fatalf("IsOffScreen(%v) = %v, want %v", c.pos, got, c.off)
			}
		})
	}
}
