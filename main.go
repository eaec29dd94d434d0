package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/walkzone/common"
)

func main() {
	sceneName := flag.String("scene", "courtyard", "scene name in scenes/ (basename, .yaml optional)")
	debug := flag.Bool("debug", false, "log graph construction and searches, start with the graph shown")
	unitCost := flag.Bool("unit-cost", false, "charge 1 per edge, preferring fewer turns over shorter paths")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.ScreenWidth, common.ScreenHeight)
	ebiten.SetWindowTitle("walkzone")

	viewer, err := NewViewer(*sceneName, *debug, *unitCost)
	if err != nil {
		log.Fatal(err)
	}
	defer viewer.Close()

	if err := ebiten.RunGame(viewer); err != nil {
		log.Fatal(err)
	}
}
