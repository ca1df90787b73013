package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"forksim/internal/resonator"
)

// pollInput converts this tick's mouse and keyboard input into events.
func (g *Game) pollInput() []paramEvent {
	var events []paramEvent
	events = append(events, g.mouseEvents()...)
	events = append(events, g.keyboardEvents()...)
	g.handleViewControls()
	return events
}

// mouseEvents handles clicks and slider drags.
func (g *Game) mouseEvents() []paramEvent {
	px, py := ebiten.CursorPosition()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		ev, drag, ok := hitTest(px, py, g.uiState())
		g.dragging = drag
		if ok {
			return []paramEvent{ev}
		}
		return nil
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) && !g.materialOpen && materialBox.contains(px, py) {
		if p := g.activePanel(); p != nil {
			return []paramEvent{{kind: evMaterial, fork: g.active, name: p.nextMaterial(-1)}}
		}
	}
	if g.dragging == noSlider {
		return nil
	}
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.dragging = noSlider
		return nil
	}
	ev, ok := dragEvent(g.dragging, px, g.active)
	if !ok || !g.sliderChanged(ev) {
		return nil
	}
	return []paramEvent{ev}
}

func (g *Game) uiState() uiState {
	return uiState{
		active:       g.active,
		forkCount:    g.ensemble.Len(),
		panel:        g.activePanel(),
		hasReference: len(g.reference) > 0,
		materialOpen: g.materialOpen,
	}
}

// sliderChanged reports whether a drag moved the slider to a new step.
func (g *Game) sliderChanged(ev paramEvent) bool {
	p := g.activePanel()
	if p == nil {
		return false
	}
	switch ev.kind {
	case evLength:
		return ev.value != p.lengthValue
	case evHeight:
		return ev.value != p.heightValue
	}
	return true
}

// keyboardEvents maps shortcuts onto the same events as the buttons.
func (g *Game) keyboardEvents() []paramEvent {
	var events []paramEvent
	p := g.activePanel()
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		events = append(events, paramEvent{kind: evAddFork})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		events = append(events, paramEvent{kind: evPlayAll})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		events = append(events, paramEvent{kind: evPlay, fork: g.active})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) && g.ensemble.Len() > 0 {
		events = append(events, paramEvent{kind: evSelect, fork: (g.active + 1) % g.ensemble.Len()})
	}
	for i, key := range []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5, ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9} {
		if inpututil.IsKeyJustPressed(key) && i < g.ensemble.Len() {
			events = append(events, paramEvent{kind: evSelect, fork: i})
		}
	}
	if p == nil {
		return events
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		events = append(events, paramEvent{kind: evMaterial, fork: g.active, name: p.nextMaterial(1)})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		events = append(events, paramEvent{kind: evShape, fork: g.active, shape: resonator.ShapeRectangle})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		events = append(events, paramEvent{kind: evShape, fork: g.active, shape: resonator.ShapeCylinder})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		events = append(events, paramEvent{kind: evLength, fork: g.active, value: lengthSlider.snap(p.lengthValue + lengthStep)})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		events = append(events, paramEvent{kind: evLength, fork: g.active, value: lengthSlider.snap(p.lengthValue - lengthStep)})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		events = append(events, paramEvent{kind: evHeight, fork: g.active, value: heightSlider.snap(p.heightValue + heightStep)})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		events = append(events, paramEvent{kind: evHeight, fork: g.active, value: heightSlider.snap(p.heightValue - heightStep)})
	}
	return events
}

// handleViewControls rotates the 3D view with Q/E and resets it with 0.
func (g *Game) handleViewControls() {
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		g.yaw -= yawStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		g.yaw += yawStep
	}
	if inpututil.IsKeyJustPressed(ebiten.Key0) {
		g.yaw, g.pitch = defaultYaw, defaultPitch
	}
}
