// Package testutil provides testing utilities for molfeat.
//
// This package is intended for use in tests only. It provides a seeded,
// thread-safe random number generator, deterministic random molecule
// generation and well-known molecule fixtures.
//
// # Random Molecule Generation
//
//	rng := testutil.NewRNG(seed)
//	mol := rng.RandomMolecule(12, []float64{1, 6, 7, 8}, 4.0)
//
// # Fixtures
//
//	mol := testutil.Water() // the O,H,H reference molecule
package testutil
