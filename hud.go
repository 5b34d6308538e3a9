package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// HUD is the debug readout in the top-left corner.
type HUD struct {
	ui    *ebitenui.UI
	label *widget.Text
}

func NewHUD() *HUD {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x10, B: 0x14, A: 170})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

	label := widget.NewText(
		widget.TextOpts.Text(hudText(0, 0, 0, false), &face, color.NRGBA{R: 0x00, G: 0xff, B: 0xf0, A: 0xff}),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 6, Bottom: 6, Left: 8, Right: 8}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)
	panel.AddChild(label)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &HUD{ui: &ebitenui.UI{Container: root}, label: label}
}

func (h *HUD) Set(fps float64, live, capacity int, running bool) {
	h.label.Label = hudText(fps, live, capacity, running)
}

func (h *HUD) Update() {
	h.ui.Update()
}

func (h *HUD) Draw(screen *ebiten.Image) {
	h.ui.Draw(screen)
}

func hudText(fps float64, live, capacity int, running bool) string {
	state := "stopped"
	if running {
		state = "running"
	}
	return fmt.Sprintf("FPS: %.1f  particles: %d/%d  %s", fps, live, capacity, state)
}
