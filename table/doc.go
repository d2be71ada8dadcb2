// Package table holds tabular feature data and persists it as CSV.
//
// A FeatureTable is a dense float64 matrix with named columns, one row per
// molecule. Tables round-trip through CSV with optional ZSTD or LZ4
// compression, either to a plain io.Writer or to a blobstore.BlobStore.
//
//	tbl := table.New([]string{"HH:0", "H:0", "H:1"})
//	if err := tbl.AppendRow([]float64{0.66, 0.5, 0.5}); err != nil { ... }
//	err := table.Save(ctx, store, "qm9/bob", tbl, table.CompressionZSTD)
package table
