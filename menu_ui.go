package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/unstable/common"
	"github.com/milk9111/unstable/ecs"
	"github.com/milk9111/unstable/ecs/component"
	"github.com/milk9111/unstable/ecs/system"
	"golang.org/x/image/font/basicfont"
)

var (
	white  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	dimmed = color.NRGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 0xff}
)

func basicFace() ebtext.Face {
	return ebtext.NewGoXFace(basicfont.Face7x13)
}

// NewMenuUI builds the centered main menu with Start and Exit buttons and
// the best survival time.
func NewMenuUI(g *Game) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x4a, G: 0x4a, B: 0x4a, A: 255})

	face := basicFace()
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	title := widget.NewText(
		widget.TextOpts.Text("UNSTABLE", &face, white),
		widget.TextOpts.WidgetOpts(center),
	)
	best := widget.NewText(
		widget.TextOpts.Text("", &face, dimmed),
		widget.TextOpts.WidgetOpts(center),
	)

	startBtn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: btnHover, Pressed: btnImg}),
		widget.ButtonOpts.Text("Start", &face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(center),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			system.RequestStart(g.world)
		}),
	)
	exitBtn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: btnHover, Pressed: btnImg}),
		widget.ButtonOpts.Text("Exit", &face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(center),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			g.quit = true
		}),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.ScreenWidth/3, common.ScreenHeight/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(best)
	panel.AddChild(startBtn)
	panel.AddChild(exitBtn)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	// the label tracks the stored best time
	g.onMenu = func(gs *component.GameState) {
		best.Label = fmt.Sprintf("Best: %.3f", gs.BestTime)
	}

	return &ebitenui.UI{Container: root}
}

// hud draws the run timer, kill count and best time over the arena.
type hud struct {
	face ebtext.Face
}

func newHUD() *hud {
	return &hud{face: basicFace()}
}

func (h *hud) Draw(screen *ebiten.Image, w *ecs.World, gs *component.GameState) {
	h.text(screen, fmt.Sprintf("%.3f", gs.Elapsed), 16, 16, white)
	h.text(screen, fmt.Sprintf("Best %.3f", gs.BestTime), 16, 34, dimmed)

	// the kill icon takes the colour of the current weapon stage
	icon := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	if player, ok := w.First(component.PlayerTagComponent.Kind()); ok {
		if weapon, ok := ecs.Get(w, player, component.WeaponComponent.Kind()); ok {
			c := weapon.Current().Color
			icon = color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
		}
	}
	x := float32(common.ScreenWidth - 90)
	vector.FillCircle(screen, x, 22, 6, icon, true)
	h.text(screen, fmt.Sprintf("x %d", gs.Kills), float64(x)+14, 16, white)

	if gs.Phase == component.PhaseGameOver {
		msg := "press R to restart"
		width, _ := ebtext.Measure(msg, h.face, 0)
		h.text(screen, msg, (common.ScreenWidth-width)/2, common.ScreenHeight/2+40, white)
	}
}

func (h *hud) text(screen *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	ebtext.Draw(screen, s, h.face, op)
}
