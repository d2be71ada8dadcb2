package molfeat

import (
	"context"
	"testing"

	"github.com/hupe1980/molfeat/coulomb"
	"github.com/hupe1980/molfeat/geometry"
	"github.com/hupe1980/molfeat/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		f, err := New()
		require.NoError(t, err)
		assert.Equal(t, MethodCoulombMatrix, f.Method())
		assert.Equal(t, coulomb.VariantSorted, f.Variant())
	})

	t.Run("InvalidOptions", func(t *testing.T) {
		tests := []struct {
			name string
			opts []Option
		}{
			{name: "negative max atoms", opts: []Option{WithMaxAtoms(-1)}},
			{name: "zero permutations", opts: []Option{WithPermutations(0)}},
			{name: "negative noise", opts: []Option{WithNoise(-0.5)}},
			{name: "unknown variant", opts: []Option{WithVariant(coulomb.Variant(99))}},
			{name: "unknown method", opts: []Option{WithMethod(Method(99))}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := New(tt.opts...)
				assert.ErrorIs(t, err, ErrInvalidConfiguration)
			})
		}
	})
}

func TestRepresent_CoulombMatrix(t *testing.T) {
	ctx := context.Background()
	water := testutil.Water()

	t.Run("WaterUnsorted", func(t *testing.T) {
		f, err := New(WithVariant(coulomb.VariantUnsorted))
		require.NoError(t, err)

		tbl, err := f.Represent(ctx, water)
		require.NoError(t, err)

		require.Equal(t, 1, tbl.NumRows())
		require.Equal(t, 9, tbl.NumColumns())
		assert.InDelta(t, 73.51669472, tbl.At(0, 0), 1e-7)
		assert.InDelta(t, 8.3593106, tbl.At(0, 1), 1e-7)
		assert.Equal(t, "UM:0", tbl.Columns()[0])
	})

	t.Run("WaterEigenspectrum", func(t *testing.T) {
		f, err := New(WithVariant(coulomb.VariantEigenspectrum))
		require.NoError(t, err)

		tbl, err := f.Represent(ctx, water)
		require.NoError(t, err)

		require.Equal(t, 3, tbl.NumColumns())
		assert.InDelta(t, 75.39770052, tbl.At(0, 0), 1e-7)
		assert.InDelta(t, -0.16066482, tbl.At(0, 1), 1e-7)
		assert.InDelta(t, -0.72034098, tbl.At(0, 2), 1e-7)
	})

	t.Run("BatchRowAlignment", func(t *testing.T) {
		h2 := geometry.MustMolecule(
			[]float64{1, 1},
			[]geometry.Point{{0, 0, 0}, {0, 0, 0.74}},
		)

		f, err := New(WithVariant(coulomb.VariantTriangular))
		require.NoError(t, err)

		tbl, err := f.Represent(ctx, water, h2)
		require.NoError(t, err)

		// Width derives from the batch maximum of 3 atoms.
		require.Equal(t, 2, tbl.NumRows())
		assert.Equal(t, 6, tbl.NumColumns())
		assert.InDelta(t, 73.51669472, tbl.At(0, 0), 1e-7)
		assert.InDelta(t, 0.5, tbl.At(1, 0), 1e-7)
	})

	t.Run("ExplicitMaxAtoms", func(t *testing.T) {
		f, err := New(WithVariant(coulomb.VariantEigenspectrum), WithMaxAtoms(5))
		require.NoError(t, err)

		tbl, err := f.Represent(ctx, water)
		require.NoError(t, err)
		assert.Equal(t, 5, tbl.NumColumns())
	})

	t.Run("MaxAtomsExceeded", func(t *testing.T) {
		f, err := New(WithMaxAtoms(2))
		require.NoError(t, err)

		_, err = f.Represent(ctx, water)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})

	t.Run("RandomizedReproducible", func(t *testing.T) {
		f, err := New(
			WithVariant(coulomb.VariantRandomized),
			WithPermutations(4),
			WithSeed(7),
		)
		require.NoError(t, err)

		first, err := f.Represent(ctx, water)
		require.NoError(t, err)
		second, err := f.Represent(ctx, water)
		require.NoError(t, err)

		assert.Equal(t, 4*6, first.NumColumns())
		assert.Equal(t, first.Row(0), second.Row(0))
	})
}

func TestRepresent_BagOfBonds(t *testing.T) {
	ctx := context.Background()
	water := testutil.Water()

	t.Run("Water", func(t *testing.T) {
		f, err := New(WithMethod(MethodBagOfBonds))
		require.NoError(t, err)

		tbl, err := f.Represent(ctx, water)
		require.NoError(t, err)

		require.Equal(t, 6, tbl.NumColumns())
		want := []float64{0.66066557, 0.5, 0.5, 8.3593106, 8.35237809, 73.51669472}
		for j, v := range want {
			assert.InDelta(t, v, tbl.At(0, j), 1e-7)
		}
		assert.Equal(t, []string{"HH:0", "H:0", "H:1", "HO:0", "HO:1", "O:0"}, tbl.Columns())
	})

	t.Run("ConstScalesDiagonal", func(t *testing.T) {
		f, err := New(WithMethod(MethodBagOfBonds), WithConst(2))
		require.NoError(t, err)

		tbl, err := f.Represent(ctx, water)
		require.NoError(t, err)

		assert.InDelta(t, 1.0, tbl.At(0, 1), 1e-7)
		assert.InDelta(t, 2*73.51669472, tbl.At(0, 5), 1e-7)
	})
}

func TestRepresent_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("EmptyBatch", func(t *testing.T) {
		f, err := New()
		require.NoError(t, err)

		_, err = f.Represent(ctx)
		assert.ErrorIs(t, err, ErrNoMolecules)
	})

	t.Run("NilMolecule", func(t *testing.T) {
		f, err := New()
		require.NoError(t, err)

		_, err = f.Represent(ctx, testutil.Water(), nil)
		assert.ErrorIs(t, err, ErrNotRepresentable)
		assert.Contains(t, err.Error(), "molecule 1")
	})

	t.Run("DegenerateGeometry", func(t *testing.T) {
		coincident := geometry.MustMolecule(
			[]float64{1, 1},
			[]geometry.Point{{0, 0, 0}, {0, 0, 0}},
		)

		f, err := New()
		require.NoError(t, err)

		_, err = f.Represent(ctx, coincident)
		assert.ErrorIs(t, err, ErrDegenerateGeometry)
	})

	t.Run("UnknownElementInBagOfBonds", func(t *testing.T) {
		exotic := geometry.MustMolecule(
			[]float64{200},
			[]geometry.Point{{0, 0, 0}},
		)

		f, err := New(WithMethod(MethodBagOfBonds))
		require.NoError(t, err)

		_, err = f.Represent(ctx, exotic)
		assert.ErrorIs(t, err, ErrUnknownElement)
	})

	t.Run("Canceled", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		f, err := New()
		require.NoError(t, err)

		_, err = f.Represent(canceled, testutil.Water())
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestMetricsCollection(t *testing.T) {
	ctx := context.Background()
	metrics := &BasicMetricsCollector{}

	f, err := New(WithMetricsCollector(metrics))
	require.NoError(t, err)

	_, err = f.Represent(ctx, testutil.Water(), testutil.Water())
	require.NoError(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.ScanCount)
	assert.Equal(t, int64(2), stats.RepresentCount)
	assert.Equal(t, int64(1), stats.BatchCount)
	assert.Equal(t, int64(2), stats.BatchItems)
	assert.Equal(t, int64(0), stats.BatchFailed)
}
