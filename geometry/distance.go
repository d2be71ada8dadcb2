package geometry

import "math"

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	dz := a[2] - b[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// DistanceMatrix computes the full symmetric n x n inter-atomic Euclidean
// distance matrix of m. The diagonal is exactly zero.
//
// Time Complexity: O(n²)
// Memory: O(n²)
func DistanceMatrix(m *Molecule) [][]float64 {
	n := m.NumAtoms()

	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dist := Distance(m.coords[i], m.coords[j])
			d[i][j] = dist
			d[j][i] = dist
		}
	}

	return d
}
