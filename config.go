package main

import (
	"image/color"
	"time"

	"forksim/internal/resonator"
)

// Window, timing, and control-panel configuration for the fork simulator.
// Slider ranges and startup values mirror the classroom version of the tool.
const (
	screenW, screenH   = 960, 640
	defaultWindowScale = 1.0
	ticksPerSecond     = 24

	lengthMin, lengthMax, lengthStep = 0.1, 1.5, 0.1
	heightMin, heightMax, heightStep = 0.01, 0.10, 0.01
	initialLengthSlider              = 0.8
	initialHeightSlider              = 0.01

	// The first fork is built from these before the panel applies its sliders.
	initialForkLength  = 0.8
	initialForkHeight  = 0.02
	initialForkDensity = 5800
	initialForkShape   = resonator.ShapeRectangle

	yawStep        = 0.08
	defaultYaw     = 0.6
	defaultPitch   = 0.35
	ringSegments   = 16
	scopePeriods   = 3
	scopeMinPoints = 64
	playbackPoll   = 20 * time.Millisecond
	statusLifetime = 4 * time.Second
)

var (
	backgroundColor = color.RGBA{24, 26, 32, 255}
	panelColor      = color.RGBA{36, 40, 50, 255}
	buttonColor     = color.RGBA{62, 70, 92, 255}
	buttonHotColor  = color.RGBA{92, 110, 150, 255}
	activeTabColor  = color.RGBA{120, 96, 60, 255}
	sliderTrack     = color.RGBA{80, 86, 100, 255}
	sliderKnob      = color.RGBA{230, 200, 120, 255}
	forkColor       = color.RGBA{153, 153, 153, 255}
	handleColor     = color.RGBA{120, 120, 120, 255}
	scopeColor      = color.RGBA{0, 220, 180, 255}
	scopeAxisColor  = color.RGBA{60, 70, 80, 255}
)
