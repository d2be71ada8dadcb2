package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/molfeat/geometry"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), //nolint:gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Perm returns a pseudo-random permutation of [0,n).
func (r *RNG) Perm(n int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Perm(n)
}

// RandomMolecule generates a molecule with numAtoms atoms, charges drawn
// from the given set and coordinates uniform in a cube of the given edge
// length. Atom positions are spread on a jittered grid so no two atoms
// coincide.
func (r *RNG) RandomMolecule(numAtoms int, charges []float64, edge float64) *geometry.Molecule {
	r.mu.Lock()
	defer r.mu.Unlock()

	cs := make([]float64, numAtoms)
	coords := make([]geometry.Point, numAtoms)
	for i := 0; i < numAtoms; i++ {
		cs[i] = charges[r.rand.Intn(len(charges))]
		coords[i] = geometry.Point{
			float64(i) + 0.25*r.rand.Float64(),
			edge * r.rand.Float64(),
			edge * r.rand.Float64(),
		}
	}

	return geometry.MustMolecule(cs, coords)
}

// Water returns the O,H,H reference molecule used throughout the tests.
func Water() *geometry.Molecule {
	return geometry.MustMolecule(
		[]float64{8, 1, 1},
		[]geometry.Point{
			{1.464, 0.707, 1.056},
			{0.878, 1.218, 0.498},
			{2.319, 1.126, 0.952},
		},
	)
}

// WaterXYZ is the Water molecule in standard XYZ text format.
const WaterXYZ = `3
water
O	1.464	0.707	1.056
H	0.878	1.218	0.498
H	2.319	1.126	0.952
`
