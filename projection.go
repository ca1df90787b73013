package main

import (
	"math"

	"forksim/internal/resonator"
)

type vec3 struct{ x, y, z float64 }

func (v vec3) add(o vec3) vec3 { return vec3{v.x + o.x, v.y + o.y, v.z + o.z} }

// segment is one wireframe edge in model space (meters, y up).
type segment struct{ a, b vec3 }

const (
	handleLength = 1.0
	handleRadius = 0.05
	prongDepth   = 0.05
	prongGap     = 0.06
	// prongScale maps fork length to drawn prong length (0.8 m draws as 0.7).
	prongScale = 0.875
)

// ringOffsets caches a unit circle in the xz plane used for cylinder rims.
var ringOffsets = precomputeRing(ringSegments)

func precomputeRing(n int) [][2]float64 {
	ring := make([][2]float64, n)
	for i := range ring {
		a := 2 * math.Pi * float64(i) / float64(n)
		ring[i] = [2]float64{math.Cos(a), math.Sin(a)}
	}
	return ring
}

// prongThickness maps the beam height onto a drawable prong thickness.
func prongThickness(height float64) float64 {
	if math.IsNaN(height) || height < heightMin {
		return heightMin
	}
	return height
}

// forkWireframe builds the handle and both prongs for r. Prongs are boxes or
// cylinders depending on the shape, and grow with the fork's length and height.
func forkWireframe(r *resonator.Resonator) []segment {
	segs := cylinderEdges(vec3{}, handleLength, handleRadius)
	prongLen := r.Length() * prongScale
	thick := prongThickness(r.Height())
	offset := prongGap/2 + thick/2
	for _, side := range []float64{-1, 1} {
		x := side * offset
		switch r.Shape() {
		case resonator.ShapeCylinder:
			segs = append(segs, cylinderEdges(vec3{x, handleLength, 0}, prongLen, thick/2)...)
		default:
			center := vec3{x, handleLength + prongLen/2, 0}
			segs = append(segs, boxEdges(center, vec3{thick, prongLen, prongDepth})...)
		}
	}
	return segs
}

// modelHeight is the top of the prongs for r.
func modelHeight(r *resonator.Resonator) float64 {
	return handleLength + r.Length()*prongScale
}

// boxEdges returns the 12 edges of an axis-aligned box.
func boxEdges(center, size vec3) []segment {
	hx, hy, hz := size.x/2, size.y/2, size.z/2
	var c [8]vec3
	for i := range c {
		sx, sy, sz := -hx, -hy, -hz
		if i&1 != 0 {
			sx = hx
		}
		if i&2 != 0 {
			sy = hy
		}
		if i&4 != 0 {
			sz = hz
		}
		c[i] = center.add(vec3{sx, sy, sz})
	}
	edges := make([]segment, 0, 12)
	for i := 0; i < 8; i++ {
		for _, bit := range []int{1, 2, 4} {
			if i&bit == 0 {
				edges = append(edges, segment{c[i], c[i|bit]})
			}
		}
	}
	return edges
}

// cylinderEdges returns two rims and every other side line of a cylinder
// standing on base along +y.
func cylinderEdges(base vec3, length, radius float64) []segment {
	n := len(ringOffsets)
	edges := make([]segment, 0, 2*n+n/2)
	top := base.add(vec3{0, length, 0})
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		p0 := vec3{ringOffsets[i][0] * radius, 0, ringOffsets[i][1] * radius}
		p1 := vec3{ringOffsets[j][0] * radius, 0, ringOffsets[j][1] * radius}
		edges = append(edges, segment{base.add(p0), base.add(p1)})
		edges = append(edges, segment{top.add(p0), top.add(p1)})
		if i%2 == 0 {
			edges = append(edges, segment{base.add(p0), top.add(p0)})
		}
	}
	return edges
}

// camera is an orthographic view rotated by yaw about y and tilted by pitch.
type camera struct {
	yaw, pitch float64
	scale      float64
	cx, cy     float64
	lift       float64
}

// cameraFor fits a fork of up to the maximum length into view.
func cameraFor(view rect, yaw, pitch float64, r *resonator.Resonator) camera {
	maxHeight := handleLength + lengthMax*prongScale
	return camera{
		yaw:   yaw,
		pitch: pitch,
		scale: 0.85 * float64(view.h) / maxHeight,
		cx:    float64(view.x) + float64(view.w)/2,
		cy:    float64(view.y) + float64(view.h)/2,
		lift:  modelHeight(r) / 2,
	}
}

// project maps a model point to screen coordinates.
func (c camera) project(p vec3) (float64, float64) {
	sy, cyaw := math.Sincos(c.yaw)
	x := p.x*cyaw - p.z*sy
	z := p.x*sy + p.z*cyaw
	sp, cp := math.Sincos(c.pitch)
	y := (p.y-c.lift)*cp - z*sp
	return c.cx + x*c.scale, c.cy - y*c.scale
}
