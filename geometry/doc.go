// Package geometry defines the core molecular geometry types used
// throughout molfeat.
//
// # Types
//
//   - Molecule: immutable per-molecule record of nuclear charges and
//     Cartesian coordinates
//   - PeriodicTable: injectable element symbol <-> nuclear charge mapping
//
// # Functions
//
//   - DistanceMatrix: full symmetric inter-atomic Euclidean distance matrix
//
// All functions are pure: they never mutate their inputs and hold no
// hidden state.
package geometry
