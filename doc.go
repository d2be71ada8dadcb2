// Package molfeat converts 3-D molecular geometry into fixed-width
// feature vectors: Coulomb matrices under five invariance variants and
// bag-of-bonds.
//
// A Featurizer processes batches in two phases. The scan phase fixes the
// padded atom count and, for bag-of-bonds, the per-bucket capacities
// across the whole batch; the transform phase then emits one row per
// molecule, so every row of a batch has identical width and column
// semantics.
//
//	f, err := molfeat.New(
//	    molfeat.WithVariant(coulomb.VariantEigenspectrum),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	tbl, err := f.Represent(ctx, water, methane)
//
// Pipeline adds dataset plumbing around the featurizer: XYZ files are
// discovered in a blob store (local filesystem, memory, S3, or MinIO),
// parsed concurrently, featurized, and the resulting table is written
// back as optionally compressed CSV with a catalog entry recording the
// latest version per dataset.
package molfeat
