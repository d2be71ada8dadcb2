package geometry

import (
	"errors"
	"fmt"
)

// ErrEmptyMolecule is returned when a molecule is constructed without atoms.
var ErrEmptyMolecule = errors.New("molecule must contain at least one atom")

// ErrChargeCoordinateMismatch indicates charges and coordinates of
// different lengths.
type ErrChargeCoordinateMismatch struct {
	Charges     int
	Coordinates int
}

func (e *ErrChargeCoordinateMismatch) Error() string {
	return fmt.Sprintf("charge/coordinate length mismatch: %d charges, %d coordinates", e.Charges, e.Coordinates)
}

// Point is a position in 3-space.
type Point [3]float64

// Molecule is an immutable per-molecule table of nuclear charges and
// Cartesian coordinates. It is constructed once from parsed input and
// read-only thereafter; accessors return copies so callers cannot alias
// internal state.
type Molecule struct {
	charges []float64
	coords  []Point
}

// NewMolecule creates a Molecule from parallel charge and coordinate
// sequences. Both slices are copied.
func NewMolecule(charges []float64, coords []Point) (*Molecule, error) {
	if len(charges) == 0 {
		return nil, ErrEmptyMolecule
	}
	if len(charges) != len(coords) {
		return nil, &ErrChargeCoordinateMismatch{Charges: len(charges), Coordinates: len(coords)}
	}

	m := &Molecule{
		charges: make([]float64, len(charges)),
		coords:  make([]Point, len(coords)),
	}
	copy(m.charges, charges)
	copy(m.coords, coords)

	return m, nil
}

// MustMolecule is a helper for tests and fixtures. It panics on invalid input.
func MustMolecule(charges []float64, coords []Point) *Molecule {
	m, err := NewMolecule(charges, coords)
	if err != nil {
		panic(fmt.Errorf("geometry: invalid molecule: %w", err))
	}
	return m
}

// NumAtoms returns the number of atoms n.
func (m *Molecule) NumAtoms() int {
	return len(m.charges)
}

// Charge returns the nuclear charge of atom i.
func (m *Molecule) Charge(i int) float64 {
	return m.charges[i]
}

// Coordinate returns the position of atom i.
func (m *Molecule) Coordinate(i int) Point {
	return m.coords[i]
}

// Charges returns a copy of the nuclear charge sequence.
func (m *Molecule) Charges() []float64 {
	out := make([]float64, len(m.charges))
	copy(out, m.charges)
	return out
}

// Coordinates returns a copy of the coordinate sequence.
func (m *Molecule) Coordinates() []Point {
	out := make([]Point, len(m.coords))
	copy(out, m.coords)
	return out
}

// Permute returns a new Molecule with atoms reordered by perm, where the
// atom at input position perm[i] becomes atom i. perm must be a valid
// permutation of [0, n).
func (m *Molecule) Permute(perm []int) (*Molecule, error) {
	if len(perm) != len(m.charges) {
		return nil, fmt.Errorf("permutation length %d does not match atom count %d", len(perm), len(m.charges))
	}

	seen := make([]bool, len(perm))
	charges := make([]float64, len(perm))
	coords := make([]Point, len(perm))
	for i, p := range perm {
		if p < 0 || p >= len(perm) || seen[p] {
			return nil, fmt.Errorf("invalid permutation index %d at position %d", p, i)
		}
		seen[p] = true
		charges[i] = m.charges[p]
		coords[i] = m.coords[p]
	}

	return &Molecule{charges: charges, coords: coords}, nil
}
