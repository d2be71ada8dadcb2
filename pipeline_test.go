package molfeat

import (
	"context"
	"testing"

	"github.com/hupe1980/molfeat/blobstore"
	"github.com/hupe1980/molfeat/catalog"
	"github.com/hupe1980/molfeat/coulomb"
	"github.com/hupe1980/molfeat/resource"
	"github.com/hupe1980/molfeat/table"
	"github.com/hupe1980/molfeat/testutil"
	"github.com/hupe1980/molfeat/xyz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeline_Run(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	require.NoError(t, store.Put(ctx, "qm9/water.xyz", []byte(testutil.WaterXYZ)))
	require.NoError(t, store.Put(ctx, "qm9/h2.xyz", []byte("2\nhydrogen\nH 0 0 0\nH 0 0 0.74\n")))

	f, err := New(WithVariant(coulomb.VariantEigenspectrum))
	require.NoError(t, err)

	ctrl := resource.NewController(resource.Config{MaxReaders: 2})
	reader := xyz.NewReader(store, ctrl)
	cat := catalog.NewBlob(store, "catalog")

	p := NewPipeline(reader, f, store, WithCatalog(cat), WithCompression(table.CompressionLZ4))

	entry, err := p.Run(ctx, "qm9/*.xyz", "qm9")
	require.NoError(t, err)

	assert.Equal(t, "qm9/e.csv.lz4", entry.Object)
	assert.Equal(t, "E", entry.Variant)
	assert.Equal(t, 2, entry.Rows)
	assert.Equal(t, 3, entry.Columns)
	assert.Equal(t, uint64(1), entry.Version)

	// The written table round-trips, rows in sorted file-name order.
	tbl, err := table.Load(ctx, store, entry.Object)
	require.NoError(t, err)
	require.Equal(t, 2, tbl.NumRows())
	assert.InDelta(t, 1.85135, tbl.At(0, 0), 1e-4)
	assert.InDelta(t, 75.39770052, tbl.At(1, 0), 1e-7)

	// The catalog resolves the latest entry.
	latest, err := cat.Latest(ctx, "qm9")
	require.NoError(t, err)
	assert.Equal(t, entry.Object, latest.Object)
}

func TestPipeline_NoMatches(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	f, err := New()
	require.NoError(t, err)

	p := NewPipeline(xyz.NewReader(store, nil), f, store)

	_, err = p.Run(ctx, "*.xyz", "empty")
	assert.ErrorIs(t, err, ErrNoMolecules)
}
