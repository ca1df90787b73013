package resonator

import (
	"errors"
	"math"
	"testing"
)

func nearlyEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps*math.Max(1, math.Abs(b))
}

func TestComputeFrequencyReference(t *testing.T) {
	got := ComputeFrequency(0.8, 0.02, Width, 5800, 210e9)
	const want = 30.375672383166755
	if !nearlyEqual(got, want, 1e-12) {
		t.Fatalf("ComputeFrequency = %.15f, want %.15f", got, want)
	}
}

func TestComputeFrequencyTable(t *testing.T) {
	tests := []struct {
		name                    string
		length, height, density float64
		modulus                 float64
		want                    float64
	}{
		{"thin steel", 0.8, 0.01, 5800, 210e9, 15.187836191583377},
		{"default fork", 0.5, 0.02, 3000, 210e9, 108.1232857099455},
		{"hardwood", 0.8, 0.02, 5800, 13e9, 7.557670069753873},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeFrequency(tt.length, tt.height, Width, tt.density, tt.modulus)
			if !nearlyEqual(got, tt.want, 1e-12) {
				t.Fatalf("ComputeFrequency = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFrequencyDecreasesWithLength(t *testing.T) {
	prev := math.Inf(1)
	for l := 0.1; l <= 1.5+1e-9; l += 0.1 {
		f := ComputeFrequency(l, 0.02, Width, 5800, 210e9)
		if !(f < prev) {
			t.Fatalf("length %.1f: frequency %v not below %v", l, f, prev)
		}
		prev = f
	}
}

func TestFrequencyIncreasesWithHeight(t *testing.T) {
	prev := 0.0
	for h := 0.01; h <= 0.10+1e-9; h += 0.01 {
		f := ComputeFrequency(0.8, h, Width, 5800, 210e9)
		if !(f > prev) {
			t.Fatalf("height %.2f: frequency %v not above %v", h, f, prev)
		}
		prev = f
	}
}

func TestComputeFrequencyDegenerateInputs(t *testing.T) {
	if f := ComputeFrequency(0, 0.02, Width, 5800, 210e9); !math.IsInf(f, 1) {
		t.Fatalf("zero length: got %v, want +Inf", f)
	}
	if f := ComputeFrequency(0.8, 0, Width, 5800, 210e9); !math.IsNaN(f) {
		t.Fatalf("zero height: got %v, want NaN", f)
	}
}

func TestGeometry(t *testing.T) {
	if a := CrossSectionArea(Width, 0.02); !nearlyEqual(a, 0.03, 1e-12) {
		t.Fatalf("area = %v, want 0.03", a)
	}
	if i := SecondMomentOfArea(Width, 0.02); !nearlyEqual(i, 1e-6, 1e-12) {
		t.Fatalf("moment = %v, want 1e-6", i)
	}
}

func TestNewUsesDefaultMaterial(t *testing.T) {
	r := New(Params{Length: 0.8, Height: 0.02, Density: 5800, Shape: ShapeRectangle})
	if r.Material() != "Steel" {
		t.Fatalf("Material = %q, want Steel", r.Material())
	}
	if r.Modulus() != 210e9 {
		t.Fatalf("Modulus = %v, want 210e9", r.Modulus())
	}
	if !nearlyEqual(r.Frequency(), 30.375672383166755, 1e-12) {
		t.Fatalf("Frequency = %v", r.Frequency())
	}
	if r.Width() != Width {
		t.Fatalf("Width = %v, want %v", r.Width(), Width)
	}
}

func TestSettersRecompute(t *testing.T) {
	r := New(Params{Length: 0.8, Height: 0.02, Density: 5800})

	r.SetLength(0.5)
	r.SetDensity(3000)
	want := ComputeFrequency(0.5, 0.02, Width, 3000, 210e9)
	if !nearlyEqual(r.Frequency(), want, 1e-12) {
		t.Fatalf("after SetLength/SetDensity: Frequency = %v, want %v", r.Frequency(), want)
	}

	r.SetHeight(0.05)
	want = ComputeFrequency(0.5, 0.05, Width, 3000, 210e9)
	if !nearlyEqual(r.Frequency(), want, 1e-12) {
		t.Fatalf("after SetHeight: Frequency = %v, want %v", r.Frequency(), want)
	}
	if !nearlyEqual(r.Area(), CrossSectionArea(Width, 0.05), 1e-12) {
		t.Fatalf("Area = %v", r.Area())
	}
	if !nearlyEqual(r.SecondMoment(), SecondMomentOfArea(Width, 0.05), 1e-12) {
		t.Fatalf("SecondMoment = %v", r.SecondMoment())
	}

	if err := r.SetMaterial("Bone_dense"); err != nil {
		t.Fatalf("SetMaterial() error = %v", err)
	}
	want = ComputeFrequency(0.5, 0.05, Width, 3000, 114e9)
	if !nearlyEqual(r.Frequency(), want, 1e-12) {
		t.Fatalf("after SetMaterial: Frequency = %v, want %v", r.Frequency(), want)
	}
}

func TestSetMaterialUnknownLeavesStateUnchanged(t *testing.T) {
	r := New(Params{Length: 0.8, Height: 0.02, Density: 5800})
	if err := r.SetMaterial("Hardwood"); err != nil {
		t.Fatalf("SetMaterial() error = %v", err)
	}
	modulus, freq := r.Modulus(), r.Frequency()

	for _, name := range []string{"Titanium", "steel", ""} {
		err := r.SetMaterial(name)
		if !errors.Is(err, ErrUnknownMaterial) {
			t.Fatalf("SetMaterial(%q) error = %v, want ErrUnknownMaterial", name, err)
		}
		if r.Modulus() != modulus || r.Frequency() != freq || r.Material() != "Hardwood" {
			t.Fatalf("SetMaterial(%q) mutated state: E=%v f=%v material=%q", name, r.Modulus(), r.Frequency(), r.Material())
		}
	}
}

func TestSetShapeKeepsFrequency(t *testing.T) {
	r := New(Params{Length: 0.8, Height: 0.02, Density: 5800, Shape: ShapeRectangle})
	f := r.Frequency()
	r.SetShape(ShapeCylinder)
	if r.Shape() != ShapeCylinder {
		t.Fatalf("Shape = %v, want cylinder", r.Shape())
	}
	if r.Frequency() != f {
		t.Fatalf("Frequency changed with shape: %v != %v", r.Frequency(), f)
	}
}

func TestParseShape(t *testing.T) {
	for _, s := range []Shape{ShapeRectangle, ShapeCylinder} {
		got, err := ParseShape(s.String())
		if err != nil {
			t.Fatalf("ParseShape(%q) error = %v", s, err)
		}
		if got != s {
			t.Fatalf("ParseShape(%q) = %v", s, got)
		}
	}
	if _, err := ParseShape("sphere"); err == nil {
		t.Fatal("expected error for unknown shape")
	}
}

func TestReadouts(t *testing.T) {
	r := New(Params{Length: 0.8, Height: 0.02, Density: 5800})
	got := r.Readouts()
	want := [3]string{
		"Area (A): 0.0300 m^2",
		"Second Moment of Area (I): 0.000001 m^4",
		"Playing at frequency (f): 30.38 Hz",
	}
	if got != want {
		t.Fatalf("Readouts = %q, want %q", got, want)
	}
}

func TestMaterialTable(t *testing.T) {
	want := map[string]float64{
		"Steel":          210e9,
		"Chitin_thin":    20e9,
		"Chitin_dense":   45e9,
		"Bone_thin":      70e9,
		"Bone_dense":     114e9,
		"Hydroxyapatite": 15e9,
		"Hardwood":       13e9,
	}
	names := MaterialNames()
	if len(names) != len(want) {
		t.Fatalf("len(MaterialNames) = %d, want %d", len(names), len(want))
	}
	if names[0] != "Steel" || DefaultMaterial().Name != "Steel" {
		t.Fatalf("first material = %q, want Steel", names[0])
	}
	for name, modulus := range want {
		got, ok := LookupModulus(name)
		if !ok || got != modulus {
			t.Fatalf("LookupModulus(%q) = %v, %v; want %v", name, got, ok, modulus)
		}
	}
	if MaterialIndex("Hardwood") != 6 || MaterialIndex("Oak") != -1 {
		t.Fatalf("MaterialIndex mismatch")
	}

	table := Materials()
	table[0].Modulus = 1
	if m, _ := LookupModulus("Steel"); m != 210e9 {
		t.Fatal("Materials() exposed the shared table")
	}
}
