// Package bob implements the bag-of-bonds descriptor.
//
// Bag-of-bonds buckets Coulomb interaction magnitudes by element type:
// diagonal self-energies under the atom's element symbol, off-diagonal
// interactions under the unordered pair of element symbols. Every bucket
// is sorted descending and zero-padded to a batch-wide per-key capacity,
// then the buckets are concatenated in a canonical key order, so columns
// are semantically aligned across all molecules of a batch.
//
// Because capacities depend on the whole batch, building is a strict
// two-phase aggregation:
//
//	plan, _ := bob.Scan(mols)               // capacity plan, immutable
//	vec, _ := bob.Represent(mols[0], plan)  // per-molecule transform
//
// The canonical key order is ascending by (min nuclear charge, max nuclear
// charge) of the key, with the pair bucket preceding the diagonal bucket
// when both charges are equal. For water this yields HH, H, OH, O.
package bob
