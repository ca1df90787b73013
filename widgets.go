package main

import (
	"fmt"
	"math"

	"forksim/internal/resonator"
)

// rect is a screen-space rectangle in logical pixels.
type rect struct {
	x, y, w, h int
}

func (r rect) contains(px, py int) bool {
	return px >= r.x && px < r.x+r.w && py >= r.y && py < r.y+r.h
}

// clampCoord constrains v to lie within the inclusive [min, max] range.
func clampCoord(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// slider maps a horizontal track onto a stepped value range.
type slider struct {
	bounds         rect
	min, max, step float64
}

// snap rounds v to the nearest step inside [min, max].
func (s slider) snap(v float64) float64 {
	if math.IsNaN(v) {
		return s.min
	}
	v = math.Max(s.min, math.Min(s.max, v))
	steps := math.Round((v - s.min) / s.step)
	v = s.min + steps*s.step
	// Trim binary noise so 0.1+7*0.1 reads back as 0.8.
	v = math.Round(v*1e9) / 1e9
	return math.Max(s.min, math.Min(s.max, v))
}

// valueAt converts a cursor x position to a snapped value.
func (s slider) valueAt(px int) float64 {
	if s.bounds.w <= 0 {
		return s.min
	}
	frac := float64(clampCoord(px-s.bounds.x, 0, s.bounds.w)) / float64(s.bounds.w)
	return s.snap(s.min + frac*(s.max-s.min))
}

// knobX returns the track position for v.
func (s slider) knobX(v float64) int {
	if s.max <= s.min {
		return s.bounds.x
	}
	frac := (s.snap(v) - s.min) / (s.max - s.min)
	return s.bounds.x + int(math.Round(frac*float64(s.bounds.w)))
}

// button is a clickable rectangle that emits an event.
type button struct {
	bounds rect
	label  string
	event  paramEvent
}

// forkPanel holds the per-fork control state. Slider values are kept here so
// the UI shows the exact stepped value the user picked.
type forkPanel struct {
	lengthValue float64
	heightValue float64
	material    int
}

// newForkPanel mirrors the fork's current parameters.
func newForkPanel(r *resonator.Resonator) *forkPanel {
	p := &forkPanel{
		lengthValue: lengthSlider.snap(r.Length()),
		heightValue: heightSlider.snap(r.Height()),
		material:    resonator.MaterialIndex(r.Material()),
	}
	if p.material < 0 {
		p.material = 0
	}
	return p
}

// observe records an applied parameter event in the panel state.
func (p *forkPanel) observe(ev paramEvent) {
	switch ev.kind {
	case evLength:
		p.lengthValue = ev.value
	case evHeight:
		p.heightValue = ev.value
	case evMaterial:
		if idx := resonator.MaterialIndex(ev.name); idx >= 0 {
			p.material = idx
		}
	}
}

// nextMaterial returns the material name delta steps away from the current one.
func (p *forkPanel) nextMaterial(delta int) string {
	names := resonator.MaterialNames()
	idx := ((p.material+delta)%len(names) + len(names)) % len(names)
	return names[idx]
}

// Fixed control layout. The left half holds the 3D view and scope, the right
// half the active fork's controls.
var (
	viewRect  = rect{x: 10, y: 50, w: 460, h: 430}
	scopeRect = rect{x: 10, y: 495, w: 460, h: 135}

	addForkButton   = button{bounds: rect{x: 10, y: 8, w: 140, h: 28}, label: "Add Tuning Fork", event: paramEvent{kind: evAddFork}}
	playAllButton   = button{bounds: rect{x: 160, y: 8, w: 140, h: 28}, label: "Play All Forks", event: paramEvent{kind: evPlayAll}}
	referenceButton = button{bounds: rect{x: 310, y: 8, w: 140, h: 28}, label: "Play Reference", event: paramEvent{kind: evPlayReference}}

	rectButton  = button{bounds: rect{x: 490, y: 80, w: 150, h: 26}, label: "Rectangular Prongs", event: paramEvent{kind: evShape, shape: resonator.ShapeRectangle}}
	cylButton   = button{bounds: rect{x: 650, y: 80, w: 150, h: 26}, label: "Cylindrical Prongs", event: paramEvent{kind: evShape, shape: resonator.ShapeCylinder}}
	playButton  = button{bounds: rect{x: 810, y: 80, w: 130, h: 26}, label: "Play Sound", event: paramEvent{kind: evPlay}}
	materialBox = rect{x: 490, y: 170, w: 220, h: 26}

	lengthSlider = slider{bounds: rect{x: 490, y: 236, w: 220, h: 14}, min: lengthMin, max: lengthMax, step: lengthStep}
	heightSlider = slider{bounds: rect{x: 490, y: 306, w: 220, h: 14}, min: heightMin, max: heightMax, step: heightStep}

	tabsOrigin = rect{x: 470, y: 4, w: 54, h: 20}
	tabGap     = 4
)

// Fork tabs fill tabRows rows of tabsPerRow. With more forks the rows scroll
// so the active fork stays visible.
const (
	tabsPerRow     = 8
	tabRows        = 2
	maxVisibleTabs = tabsPerRow * tabRows
	menuRowHeight  = 20
)

// tabRect returns the bounds of the tab shown in slot, counted from the
// first visible tab.
func tabRect(slot int) rect {
	row, col := slot/tabsPerRow, slot%tabsPerRow
	return rect{
		x: tabsOrigin.x + col*(tabsOrigin.w+tabGap),
		y: tabsOrigin.y + row*(tabsOrigin.h+tabGap),
		w: tabsOrigin.w,
		h: tabsOrigin.h,
	}
}

// visibleTabs returns the range [first, end) of forks that have a tab on
// screen while active is selected.
func visibleTabs(active, count int) (int, int) {
	first := 0
	if count > maxVisibleTabs {
		first = clampCoord((active/tabsPerRow-(tabRows-1))*tabsPerRow, 0, count-1)
	}
	end := first + maxVisibleTabs
	if end > count {
		end = count
	}
	return first, end
}

func tabLabel(i int) string {
	return fmt.Sprintf("Fork %d", i+1)
}

// materialRow returns the bounds of entry i of the open material list.
func materialRow(i int) rect {
	return rect{x: materialBox.x, y: materialBox.y + materialBox.h + i*menuRowHeight, w: materialBox.w, h: menuRowHeight}
}

// sliderID names which slider a drag is bound to.
type sliderID int

const (
	noSlider sliderID = iota
	lengthSliderID
	heightSliderID
)

// uiState is what hit testing needs to know about the current screen.
type uiState struct {
	active       int
	forkCount    int
	panel        *forkPanel
	hasReference bool
	materialOpen bool
}

// hitTest translates a click at (px, py) into an event and, when the click
// lands on a slider, the slider to keep dragging. While the material list is
// open every click goes to it: an entry selects that material and anything
// else closes the list.
func hitTest(px, py int, ui uiState) (paramEvent, sliderID, bool) {
	if ui.materialOpen && ui.panel != nil {
		for i, name := range resonator.MaterialNames() {
			if materialRow(i).contains(px, py) {
				return paramEvent{kind: evMaterial, fork: ui.active, name: name}, noSlider, true
			}
		}
		return paramEvent{kind: evMaterialMenu}, noSlider, true
	}
	for _, b := range []button{addForkButton, playAllButton} {
		if b.bounds.contains(px, py) {
			return b.event, noSlider, true
		}
	}
	if ui.hasReference && referenceButton.bounds.contains(px, py) {
		return referenceButton.event, noSlider, true
	}
	first, end := visibleTabs(ui.active, ui.forkCount)
	for i := first; i < end; i++ {
		if tabRect(i-first).contains(px, py) {
			return paramEvent{kind: evSelect, fork: i}, noSlider, true
		}
	}
	if ui.panel == nil {
		return paramEvent{}, noSlider, false
	}
	for _, b := range []button{rectButton, cylButton, playButton} {
		if b.bounds.contains(px, py) {
			ev := b.event
			ev.fork = ui.active
			return ev, noSlider, true
		}
	}
	if materialBox.contains(px, py) {
		return paramEvent{kind: evMaterialMenu}, noSlider, true
	}
	if grab(lengthSlider.bounds).contains(px, py) {
		return paramEvent{kind: evLength, fork: ui.active, value: lengthSlider.valueAt(px)}, lengthSliderID, true
	}
	if grab(heightSlider.bounds).contains(px, py) {
		return paramEvent{kind: evHeight, fork: ui.active, value: heightSlider.valueAt(px)}, heightSliderID, true
	}
	return paramEvent{}, noSlider, false
}

// grab widens a slider track so the knob is easy to catch.
func grab(r rect) rect {
	return rect{x: r.x - 6, y: r.y - 8, w: r.w + 12, h: r.h + 16}
}

// dragEvent produces the event for continuing a drag on id at cursor x.
func dragEvent(id sliderID, px, active int) (paramEvent, bool) {
	switch id {
	case lengthSliderID:
		return paramEvent{kind: evLength, fork: active, value: lengthSlider.valueAt(px)}, true
	case heightSliderID:
		return paramEvent{kind: evHeight, fork: active, value: heightSlider.valueAt(px)}, true
	}
	return paramEvent{}, false
}
