package coulomb

import (
	"fmt"
	"math"

	"github.com/hupe1980/molfeat/geometry"
)

// SelfEnergyExponent is the exponent of the diagonal self-energy term
// 0.5 * Z^2.4, an empirical fit to atomic total energies.
const SelfEnergyExponent = 2.4

// ErrDegenerateGeometry indicates two distinct atoms at zero distance,
// which makes the off-diagonal interaction undefined.
type ErrDegenerateGeometry struct {
	I, J int
}

func (e *ErrDegenerateGeometry) Error() string {
	return fmt.Sprintf("degenerate geometry: atoms %d and %d are at zero distance", e.I, e.J)
}

// ErrAtomCountExceeded indicates a molecule larger than the configured
// maximum atom count.
type ErrAtomCountExceeded struct {
	NumAtoms int
	MaxAtoms int
}

func (e *ErrAtomCountExceeded) Error() string {
	return fmt.Sprintf("molecule has %d atoms, exceeds maximum of %d", e.NumAtoms, e.MaxAtoms)
}

// SelfEnergy returns the diagonal self-energy term 0.5 * Z^2.4.
func SelfEnergy(z float64) float64 {
	return 0.5 * math.Pow(z, SelfEnergyExponent)
}

// Matrix builds the n x n Coulomb interaction matrix of m.
// It fails with ErrDegenerateGeometry if two distinct atoms coincide.
func Matrix(m *geometry.Molecule) ([][]float64, error) {
	n := m.NumAtoms()
	d := geometry.DistanceMatrix(m)

	cm := make([][]float64, n)
	for i := range cm {
		cm[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		cm[i][i] = SelfEnergy(m.Charge(i))
		for j := i + 1; j < n; j++ {
			if d[i][j] == 0 {
				return nil, &ErrDegenerateGeometry{I: i, J: j}
			}
			v := m.Charge(i) * m.Charge(j) / d[i][j]
			cm[i][j] = v
			cm[j][i] = v
		}
	}

	return cm, nil
}

// Pad embeds the n x n matrix cm into the top-left corner of a zero-filled
// maxAtoms x maxAtoms matrix. It fails with ErrAtomCountExceeded if
// n > maxAtoms.
func Pad(cm [][]float64, maxAtoms int) ([][]float64, error) {
	n := len(cm)
	if n > maxAtoms {
		return nil, &ErrAtomCountExceeded{NumAtoms: n, MaxAtoms: maxAtoms}
	}

	padded := make([][]float64, maxAtoms)
	for i := range padded {
		padded[i] = make([]float64, maxAtoms)
		if i < n {
			copy(padded[i], cm[i])
		}
	}

	return padded, nil
}
