package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/walkzone/common"
	"golang.org/x/image/font/basicfont"
)

// PanelUI is the control strip on the right edge of the window.
type PanelUI struct {
	v *Viewer

	graphBtn  *widget.Button
	obstacles map[string]*widget.Button
	status    *widget.Text
}

// NewPanelUI builds the side panel: graph toggle, reload, copy path, one
// toggle per dynamic obstacle and a status line.
func NewPanelUI(v *Viewer) (*ebitenui.UI, *PanelUI) {
	p := &PanelUI{v: v, obstacles: map[string]*widget.Button{}}

	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x10, G: 0x10, B: 0x14, A: 230})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnPressed := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnPressed}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(common.PanelWidth-40, 28),
				widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true}),
			),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 20, Right: 20}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.PanelWidth, common.ScreenHeight),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionEnd,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
				StretchVertical:    true,
			}),
		),
	)

	panel.AddChild(widget.NewText(
		widget.TextOpts.Text(v.scene.Spec.Name, &face, white),
	))

	p.graphBtn = button(graphLabel(v.showGraph), func() {
		v.ToggleGraph()
	})
	panel.AddChild(p.graphBtn)
	panel.AddChild(button("Reload (R)", func() {
		v.reload()
	}))
	panel.AddChild(button("Copy path (C)", func() {
		v.CopyPath()
	}))

	names := v.scene.DynamicNames()
	if len(names) > 0 {
		panel.AddChild(widget.NewText(
			widget.TextOpts.Text("Obstacles", &face, white),
		))
	}
	for i, name := range names {
		name := name
		btn := button(obstacleLabel(i, name, v.scene.Blocked(name)), func() {
			v.ToggleObstacle(name)
		})
		p.obstacles[name] = btn
		panel.AddChild(btn)
	}

	p.status = widget.NewText(
		widget.TextOpts.Text(v.status, &face, color.NRGBA{R: 0xbb, G: 0xbb, B: 0xbb, A: 0xff}),
	)
	panel.AddChild(p.status)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}, p
}

// Refresh syncs button labels and the status line with the viewer.
func (p *PanelUI) Refresh() {
	if p == nil {
		return
	}
	if text := p.graphBtn.Text(); text != nil {
		text.Label = graphLabel(p.v.showGraph)
	}
	for i, name := range p.v.scene.DynamicNames() {
		btn, ok := p.obstacles[name]
		if !ok {
			continue
		}
		if text := btn.Text(); text != nil {
			text.Label = obstacleLabel(i, name, p.v.scene.Blocked(name))
		}
	}
	p.status.Label = p.v.status
}

func graphLabel(on bool) string {
	if on {
		return "Graph: On (G)"
	}
	return "Graph: Off (G)"
}

func obstacleLabel(i int, name string, blocked bool) string {
	state := "open"
	if blocked {
		state = "closed"
	}
	if i < 9 {
		return fmt.Sprintf("%d %s: %s", i+1, name, state)
	}
	return fmt.Sprintf("%s: %s", name, state)
}
