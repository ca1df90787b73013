package resonator

import "errors"

// ErrUnknownMaterial is returned when a material name is not in the table.
// The resonator is left untouched when it is returned.
var ErrUnknownMaterial = errors.New("unknown material")

// Material pairs a material name with its Young's modulus in pascals.
type Material struct {
	Name    string
	Modulus float64
}

// materials is ordered; the first entry is the default selection.
var materials = []Material{
	{Name: "Steel", Modulus: 210e9},
	{Name: "Chitin_thin", Modulus: 20e9},
	{Name: "Chitin_dense", Modulus: 45e9},
	{Name: "Bone_thin", Modulus: 70e9},
	{Name: "Bone_dense", Modulus: 114e9},
	{Name: "Hydroxyapatite", Modulus: 15e9},
	{Name: "Hardwood", Modulus: 13e9},
}

// Materials returns a copy of the material table in display order.
func Materials() []Material {
	out := make([]Material, len(materials))
	copy(out, materials)
	return out
}

// MaterialNames returns the material names in display order.
func MaterialNames() []string {
	names := make([]string, len(materials))
	for i, m := range materials {
		names[i] = m.Name
	}
	return names
}

// DefaultMaterial is the first table entry.
func DefaultMaterial() Material {
	return materials[0]
}

// LookupModulus returns the Young's modulus for name. Names are case-sensitive.
func LookupModulus(name string) (float64, bool) {
	for _, m := range materials {
		if m.Name == name {
			return m.Modulus, true
		}
	}
	return 0, false
}

// MaterialIndex returns the table position of name, or -1.
func MaterialIndex(name string) int {
	for i, m := range materials {
		if m.Name == name {
			return i
		}
	}
	return -1
}
