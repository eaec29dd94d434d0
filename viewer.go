package main

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/walkzone/common"
	"github.com/milk9111/walkzone/ecs"
	"github.com/milk9111/walkzone/ecs/component"
	"github.com/milk9111/walkzone/ecs/entity"
	"github.com/milk9111/walkzone/ecs/system"
	"github.com/milk9111/walkzone/geom"
	"github.com/milk9111/walkzone/polynav"
	"github.com/milk9111/walkzone/scenes"
	"github.com/milk9111/walkzone/script"
	"golang.design/x/clipboard"
	"golang.org/x/image/colornames"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

type Viewer struct {
	frames int

	sceneName string
	debug     bool
	unitCost  bool

	scene      *scenes.Scene
	world      *ecs.World
	sched      *ecs.Scheduler
	footprints *system.FootprintSystem
	scripts    *system.ScriptSystem
	hero       ecs.Entity

	ui    *ebitenui.UI
	panel *PanelUI

	watcher   *scenes.Watcher
	clipboard bool

	showGraph bool
	preview   []cp.Vector
	previewed *rate.Limiter
	status    string
}

func NewViewer(sceneName string, debug, unitCost bool) (*Viewer, error) {
	v := &Viewer{
		sceneName: sceneName,
		debug:     debug,
		unitCost:  unitCost,
		showGraph: debug,
		previewed: rate.NewLimiter(rate.Every(50*time.Millisecond), 1),
	}

	if err := v.load(); err != nil {
		return nil, err
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
	} else {
		v.clipboard = true
	}

	if info, err := os.Stat(scenes.Dir); err == nil && info.IsDir() {
		dirs := []string{scenes.Dir}
		if info, err := os.Stat(filepath.Join(scenes.Dir, "scripts")); err == nil && info.IsDir() {
			dirs = append(dirs, filepath.Join(scenes.Dir, "scripts"))
		}
		w, err := scenes.NewWatcher(dirs...)
		if err != nil {
			log.Printf("scene hot reload disabled: %v", err)
		} else {
			v.watcher = w
		}
	}

	return v, nil
}

// load builds the scene, its actors and the systems from scratch.
func (v *Viewer) load() error {
	opts := []polynav.Option{polynav.WithDebug(v.debug)}
	if v.unitCost {
		opts = append(opts, polynav.WithUnitCost())
	}

	scene, err := scenes.LoadScene(v.sceneName, opts...)
	if err != nil {
		return err
	}

	world := ecs.NewWorld()
	if _, err := entity.SpawnActors(world, scene); err != nil {
		return err
	}

	footprints := system.NewFootprintSystem(scene.Graph)
	sched := ecs.NewScheduler(
		footprints,
		system.NewNavigationSystem(scene.Graph),
		system.NewMovementSystem(),
	)

	var scripts *system.ScriptSystem
	src, err := scene.Script()
	if err != nil {
		return err
	}
	if src != nil {
		rt, err := script.Compile(scene.Spec.Script, src, &system.SceneHost{Scene: scene, World: world})
		if err != nil {
			return err
		}
		scripts = system.NewScriptSystem(rt)
		sched.Add(scripts)
	}

	hero, ok := system.FindActor(world, "hero")
	if !ok {
		hero, _ = ecs.First(world, component.ActorComponent.Kind())
	}

	v.scene = scene
	v.world = world
	v.sched = sched
	v.footprints = footprints
	v.scripts = scripts
	v.hero = hero
	v.preview = nil
	v.ui, v.panel = NewPanelUI(v)
	v.status = fmt.Sprintf("loaded %s", scene.Spec.Name)
	return nil
}

func (v *Viewer) reload() {
	if err := v.load(); err != nil {
		log.Printf("reload %s: %v", v.sceneName, err)
		v.status = "reload failed"
	}
}

func (v *Viewer) Close() error {
	if v.watcher == nil {
		return nil
	}
	return v.watcher.Close()
}

func (v *Viewer) Update() error {
	v.frames++

	v.pollWatcher()
	v.ui.Update()
	v.handleInput()
	v.sched.Update(v.world)
	v.panel.Refresh()

	return nil
}

func (v *Viewer) pollWatcher() {
	if v.watcher == nil {
		return
	}
	for {
		select {
		case c, ok := <-v.watcher.Changes:
			if !ok {
				v.watcher = nil
				return
			}
			log.Printf("scene file changed: %s", c.Path)
			v.reload()
		case err, ok := <-v.watcher.Errors:
			if ok {
				log.Printf("scene watcher: %v", err)
			}
			return
		default:
			return
		}
	}
}

func (v *Viewer) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		v.ToggleGraph()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.reload()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		v.CopyPath()
	}
	for i, name := range v.scene.DynamicNames() {
		if i < 9 && inpututil.IsKeyJustPressed(ebiten.KeyDigit1+ebiten.Key(i)) {
			v.ToggleObstacle(name)
		}
	}

	cx, cy := ebiten.CursorPosition()
	if cx >= common.ScreenWidth-common.PanelWidth {
		return
	}
	cursor := cp.Vector{X: float64(cx), Y: float64(cy)}

	switch {
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		v.preview = nil
		v.WalkHero(cursor)
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		if v.previewed.Allow() {
			v.preview = v.previewPath(cursor)
		}
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight):
		for _, name := range v.scene.DynamicNames() {
			shape, _ := v.scene.DynamicShape(name)
			if geom.IsPointInside(shape, cursor.X, cursor.Y, true) {
				v.ToggleObstacle(name)
				break
			}
		}
	}
}

func (v *Viewer) heroPosition() (cp.Vector, bool) {
	tr, ok := ecs.Get(v.world, v.hero, component.TransformComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	return tr.Position(), true
}

func (v *Viewer) previewPath(target cp.Vector) []cp.Vector {
	from, ok := v.heroPosition()
	if !ok {
		return nil
	}
	v.footprints.Withdraw(v.world, v.hero)
	return v.scene.FindPath(from, target)
}

func (v *Viewer) WalkHero(target cp.Vector) {
	if !ecs.IsAlive(v.world, v.hero) {
		return
	}
	if err := ecs.Add(v.world, v.hero, component.NavRequestComponent.Kind(), &component.NavRequest{X: target.X, Y: target.Y}); err != nil {
		log.Printf("walk: %v", err)
		return
	}
	v.status = fmt.Sprintf("walk to %.0f,%.0f", target.X, target.Y)
}

func (v *Viewer) ToggleObstacle(name string) {
	on, err := v.scene.Toggle(name)
	if err != nil {
		log.Printf("toggle: %v", err)
		return
	}
	state := "open"
	if on {
		state = "closed"
	}
	v.status = fmt.Sprintf("%s %s", name, state)
	if v.scripts != nil {
		v.scripts.Trigger("toggled:" + name)
	}
}

func (v *Viewer) ToggleGraph() {
	v.showGraph = !v.showGraph
}

// CopyPath puts the hero's remaining path on the clipboard as YAML.
func (v *Viewer) CopyPath() {
	if !v.clipboard {
		v.status = "clipboard unavailable"
		return
	}
	data, err := v.pathYAML()
	if err != nil {
		v.status = err.Error()
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	v.status = "path copied"
}

var errNoPath = errors.New("no path to copy")

func (v *Viewer) pathYAML() ([]byte, error) {
	path := v.preview
	if walker, ok := ecs.Get(v.world, v.hero, component.WalkerComponent.Kind()); ok && walker.Walking() {
		path = walker.Path[walker.Next:]
	}
	if len(path) == 0 {
		return nil, errNoPath
	}
	points := make([][2]float64, 0, len(path))
	for _, p := range path {
		points = append(points, [2]float64{p.X, p.Y})
	}
	return yaml.Marshal(points)
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	palette := v.scene.Spec.Palette
	screen.Fill(palette.Background.Or(colornames.Black))

	drawPolygon(screen, v.scene.Graph.WalkZone(), palette.Zone.Or(colornames.Darkolivegreen), 2)
	for _, o := range v.scene.Graph.Obstacles() {
		drawPolygon(screen, o, palette.Obstacle.Or(colornames.Sienna), 2)
	}
	for _, name := range v.scene.DynamicNames() {
		shape, _ := v.scene.DynamicShape(name)
		clr := palette.Dynamic.Or(colornames.Indianred)
		width := float32(2)
		if !v.scene.Blocked(name) {
			clr = colornames.Dimgray
			width = 1
		}
		drawPolygon(screen, shape, clr, width)
	}

	if v.showGraph {
		edgeColor := palette.Graph.Or(colornames.Steelblue)
		for _, e := range v.scene.Graph.Edges() {
			vector.StrokeLine(screen, float32(e[0].X), float32(e[0].Y), float32(e[1].X), float32(e[1].Y), 1, edgeColor, true)
		}
		for _, n := range v.scene.Graph.Nodes() {
			vector.FillCircle(screen, float32(n.X), float32(n.Y), 3, edgeColor, true)
		}
	}

	pathColor := palette.Path.Or(colornames.White)
	drawPath(screen, v.preview, colornames.Lightgrey)
	ecs.ForEach3(v.world, component.ActorComponent.Kind(), component.TransformComponent.Kind(), component.WalkerComponent.Kind(), func(_ ecs.Entity, a *component.Actor, tr *component.Transform, w *component.Walker) {
		if w.Walking() {
			drawPath(screen, append([]cp.Vector{tr.Position()}, w.Path[w.Next:]...), pathColor)
		}
		vector.FillCircle(screen, float32(tr.X), float32(tr.Y), 8, a.Color, true)
		ebitenutil.DebugPrintAt(screen, a.Name, int(tr.X)+10, int(tr.Y)-8)
	})

	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.2f  %s", ebiten.ActualFPS(), v.status))
	v.ui.Draw(screen)
}

func drawPolygon(screen *ebiten.Image, p geom.Polygon, clr color.Color, width float32) {
	for i := 0; i < p.Len(); i++ {
		a, b := p.Edge(i)
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, clr, true)
	}
}

func drawPath(screen *ebiten.Image, path []cp.Vector, clr color.Color) {
	for i := 1; i < len(path); i++ {
		a, b := path[i-1], path[i]
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 2, clr, true)
	}
	for _, p := range path {
		vector.StrokeCircle(screen, float32(p.X), float32(p.Y), 4, 1, clr, true)
	}
}

func (v *Viewer) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.ScreenWidth, common.ScreenHeight
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
