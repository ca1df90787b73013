// Package resonator models a tuning fork prong as a cantilever beam and
// derives its fundamental frequency from geometry and material constants.
package resonator

import (
	"fmt"
	"math"
)

const (
	// ModalConstant is the first-mode eigenvalue coefficient used by the model.
	ModalConstant = 3.516015
	// Width is the prong width in meters shared by every resonator.
	Width = 1.5
)

// Shape selects how the prongs are drawn. It does not affect the frequency.
type Shape int

const (
	ShapeRectangle Shape = iota
	ShapeCylinder
)

func (s Shape) String() string {
	switch s {
	case ShapeRectangle:
		return "rectangle"
	case ShapeCylinder:
		return "cylinder"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// ParseShape maps "rectangle" or "cylinder" to a Shape.
func ParseShape(name string) (Shape, error) {
	switch name {
	case "rectangle":
		return ShapeRectangle, nil
	case "cylinder":
		return ShapeCylinder, nil
	}
	return 0, fmt.Errorf("unknown shape %q", name)
}

// CrossSectionArea returns width*height.
func CrossSectionArea(width, height float64) float64 {
	return width * height
}

// SecondMomentOfArea returns width*height^3/12.
func SecondMomentOfArea(width, height float64) float64 {
	return (1.0 / 12.0) * width * height * height * height
}

// ComputeFrequency returns the fundamental frequency in Hz of a beam with the
// given dimensions (m), density (kg/m^3) and Young's modulus (Pa). Inputs are
// not validated; zero or negative values yield NaN or Inf.
func ComputeFrequency(length, height, width, density, modulus float64) float64 {
	area := CrossSectionArea(width, height)
	moment := SecondMomentOfArea(width, height)
	return (ModalConstant / (2 * math.Pi * length * length)) *
		math.Sqrt((modulus*moment)/(density*area))
}

// Params are the explicit construction parameters of a Resonator.
type Params struct {
	Length  float64
	Height  float64
	Density float64
	Shape   Shape
}

// Resonator holds one fork's parameters together with the values derived
// from them. Every setter recomputes the derived values before returning.
type Resonator struct {
	length   float64
	height   float64
	density  float64
	material Material
	shape    Shape

	area      float64
	moment    float64
	frequency float64
}

// New creates a resonator using the default material.
func New(p Params) *Resonator {
	r := &Resonator{
		length:   p.Length,
		height:   p.Height,
		density:  p.Density,
		material: DefaultMaterial(),
		shape:    p.Shape,
	}
	r.recompute()
	return r
}

func (r *Resonator) recompute() {
	r.area = CrossSectionArea(Width, r.height)
	r.moment = SecondMomentOfArea(Width, r.height)
	r.frequency = ComputeFrequency(r.length, r.height, Width, r.density, r.material.Modulus)
}

// SetLength updates the prong length in meters.
func (r *Resonator) SetLength(length float64) {
	r.length = length
	r.recompute()
}

// SetHeight updates the prong height in meters.
func (r *Resonator) SetHeight(height float64) {
	r.height = height
	r.recompute()
}

// SetDensity updates the material density in kg/m^3.
func (r *Resonator) SetDensity(density float64) {
	r.density = density
	r.recompute()
}

// SetMaterial selects a material from the table. An unknown name leaves the
// resonator unchanged and returns ErrUnknownMaterial.
func (r *Resonator) SetMaterial(name string) error {
	modulus, ok := LookupModulus(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMaterial, name)
	}
	r.material = Material{Name: name, Modulus: modulus}
	r.recompute()
	return nil
}

// SetShape changes the visual shape.
func (r *Resonator) SetShape(s Shape) {
	r.shape = s
}

func (r *Resonator) Length() float64       { return r.length }
func (r *Resonator) Height() float64       { return r.height }
func (r *Resonator) Width() float64        { return Width }
func (r *Resonator) Density() float64      { return r.density }
func (r *Resonator) Material() string      { return r.material.Name }
func (r *Resonator) Modulus() float64      { return r.material.Modulus }
func (r *Resonator) Shape() Shape          { return r.shape }
func (r *Resonator) Area() float64         { return r.area }
func (r *Resonator) SecondMoment() float64 { return r.moment }
func (r *Resonator) Frequency() float64    { return r.frequency }

// Readouts returns the area, second moment and frequency display lines.
func (r *Resonator) Readouts() [3]string {
	return [3]string{
		fmt.Sprintf("Area (A): %.4f m^2", r.area),
		fmt.Sprintf("Second Moment of Area (I): %.6f m^4", r.moment),
		fmt.Sprintf("Playing at frequency (f): %.2f Hz", r.frequency),
	}
}
