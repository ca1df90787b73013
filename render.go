package main

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"forksim/internal/resonator"
	"forksim/internal/tone"
)

// Draw renders the collection bar, the active fork's 3D view, its scope
// trace, and its control panel.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	g.drawCollectionBar(screen)

	if g.ensemble.Len() == 0 {
		ebitenutil.DebugPrintAt(screen, "No forks. Press Add Tuning Fork.", viewRect.x, viewRect.y)
		return
	}
	r := g.ensemble.At(g.active)
	p := g.activePanel()

	fillRect(screen, viewRect, panelColor)
	g.drawFork(screen, r)
	fillRect(screen, scopeRect, panelColor)
	drawScope(screen, scopeRect, r.Frequency())
	g.drawControls(screen, r, p)
	if g.materialOpen {
		drawMaterialMenu(screen, p)
	}

	if msg := g.currentStatus(); msg != "" {
		ebitenutil.DebugPrintAt(screen, msg, 490, screenH-24)
	}
	if *debugFlag {
		debugMsg := fmt.Sprintf("FPS: %.1f  TPS: %.1f\nForks: %d  Mixer: %s  Pending: %d",
			ebiten.ActualFPS(), ebiten.ActualTPS(), g.ensemble.Len(), g.mixerName, len(g.pending))
		ebitenutil.DebugPrintAt(screen, debugMsg, viewRect.x+4, viewRect.y+4)
	}
}

func (g *Game) drawCollectionBar(screen *ebiten.Image) {
	drawButton(screen, addForkButton, false)
	drawButton(screen, playAllButton, false)
	if len(g.reference) > 0 {
		drawButton(screen, referenceButton, false)
	}
	first, end := visibleTabs(g.active, g.ensemble.Len())
	for i := first; i < end; i++ {
		b := button{bounds: tabRect(i - first), label: tabLabel(i), event: paramEvent{kind: evSelect, fork: i}}
		drawButton(screen, b, i == g.active)
	}
	if hidden := g.ensemble.Len() - (end - first); hidden > 0 {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("+%d more (Tab)", hidden), addForkButton.bounds.x, addForkButton.bounds.y+addForkButton.bounds.h+2)
	}
}

// drawFork projects the wireframe of r into the view rectangle.
func (g *Game) drawFork(screen *ebiten.Image, r *resonator.Resonator) {
	cam := cameraFor(viewRect, g.yaw, g.pitch, r)
	handleEdges := len(cylinderEdges(vec3{}, handleLength, handleRadius))
	for i, s := range forkWireframe(r) {
		clr := forkColor
		if i < handleEdges {
			clr = handleColor
		}
		x0, y0 := cam.project(s.a)
		x1, y1 := cam.project(s.b)
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1.5, clr, true)
	}
	title := "Tuning Fork - " + capitalize(r.Shape().String())
	ebitenutil.DebugPrintAt(screen, title, viewRect.x+8, viewRect.y+viewRect.h-20)
}

// scopeSamples returns a few periods of the tone at f, or nil when f cannot
// be drawn.
func scopeSamples(f float64) []float64 {
	if f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	n := int(scopePeriods * tone.SampleRate / f)
	n = clampCoord(n, scopeMinPoints, tone.SampleRate/10)
	return tone.Window(f, n, tone.SampleRate)
}

// drawScope plots the start of the fork's tone across r.
func drawScope(screen *ebiten.Image, r rect, f float64) {
	mid := float32(r.y) + float32(r.h)/2
	vector.StrokeLine(screen, float32(r.x), mid, float32(r.x+r.w), mid, 1, scopeAxisColor, false)
	samples := scopeSamples(f)
	if len(samples) < 2 {
		return
	}
	gain := float32(r.h) * 0.9
	prevX, prevY := float32(r.x), mid-float32(samples[0])*gain
	for px := 1; px < r.w; px++ {
		idx := px * (len(samples) - 1) / (r.w - 1)
		x := float32(r.x + px)
		y := mid - float32(samples[idx])*gain
		vector.StrokeLine(screen, prevX, prevY, x, y, 1, scopeColor, true)
		prevX, prevY = x, y
	}
	label := fmt.Sprintf("%d periods @ %.2f Hz", scopePeriods, f)
	ebitenutil.DebugPrintAt(screen, label, r.x+6, r.y+4)
}

func (g *Game) drawControls(screen *ebiten.Image, r *resonator.Resonator, p *forkPanel) {
	x := rectButton.bounds.x
	ebitenutil.DebugPrintAt(screen, tabLabel(g.active)+" - "+capitalize(r.Shape().String()), x, 54)
	drawButton(screen, rectButton, r.Shape() == resonator.ShapeRectangle)
	drawButton(screen, cylButton, r.Shape() == resonator.ShapeCylinder)
	drawButton(screen, playButton, false)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("N (Constant): %g", resonator.ModalConstant), x, 122)
	ebitenutil.DebugPrintAt(screen, "Select Material for Young's Modulus (E): ", x, 148)
	fillRect(screen, materialBox, buttonColor)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s (%.0f GPa)  v", r.Material(), r.Modulus()/1e9), materialBox.x+8, materialBox.y+5)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Length (L) of Prongs: %.1f m", p.lengthValue), x, 212)
	drawSlider(screen, lengthSlider, p.lengthValue)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Width (W) of Prongs: %g", resonator.Width), x, 258)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Height (H) of Prongs: %.2f m", p.heightValue), x, 282)
	drawSlider(screen, heightSlider, p.heightValue)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Density: %.0f kg/m^3", r.Density()), x, 332)

	for i, line := range r.Readouts() {
		ebitenutil.DebugPrintAt(screen, line, x, 366+i*20)
	}
	help := "Space play  P play all  N add  Tab/1-9 select\nClick material to pick, right click or M to cycle\nR/C shape  arrows L/H  Q/E rotate  0 reset view"
	ebitenutil.DebugPrintAt(screen, help, x, 460)
}

// drawMaterialMenu draws the open material list below its box, with the
// panel's material highlighted.
func drawMaterialMenu(screen *ebiten.Image, p *forkPanel) {
	mats := resonator.Materials()
	for i, m := range mats {
		row := materialRow(i)
		clr := buttonColor
		if p != nil && i == p.material {
			clr = buttonHotColor
		}
		fillRect(screen, row, clr)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s (%.0f GPa)", m.Name, m.Modulus/1e9), row.x+8, row.y+2)
	}
}

func drawButton(screen *ebiten.Image, b button, hot bool) {
	clr := buttonColor
	if hot {
		clr = buttonHotColor
		if b.event.kind == evSelect {
			clr = activeTabColor
		}
	}
	fillRect(screen, b.bounds, clr)
	ebitenutil.DebugPrintAt(screen, b.label, b.bounds.x+6, b.bounds.y+(b.bounds.h-16)/2)
}

func drawSlider(screen *ebiten.Image, s slider, v float64) {
	track := s.bounds
	mid := float32(track.y) + float32(track.h)/2
	vector.StrokeLine(screen, float32(track.x), mid, float32(track.x+track.w), mid, 3, sliderTrack, false)
	kx := float32(s.knobX(v))
	vector.DrawFilledRect(screen, kx-4, float32(track.y), 8, float32(track.h), sliderKnob, false)
}

func fillRect(screen *ebiten.Image, r rect, clr color.Color) {
	vector.DrawFilledRect(screen, float32(r.x), float32(r.y), float32(r.w), float32(r.h), clr, false)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
