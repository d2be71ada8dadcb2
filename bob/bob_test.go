package bob

import (
	"testing"

	"github.com/hupe1980/molfeat/geometry"
	"github.com/hupe1980/molfeat/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanWater(t *testing.T) {
	water := testutil.Water()

	plan, err := Scan([]*geometry.Molecule{water})
	require.NoError(t, err)

	// Canonical order: HH pair, H diag, HO pair, O diag.
	assert.Equal(t, []Key{
		{First: "H", Second: "H"},
		{First: "H"},
		{First: "H", Second: "O"},
		{First: "O"},
	}, plan.Keys())

	assert.Equal(t, 1, plan.Capacity(Key{First: "H", Second: "H"}))
	assert.Equal(t, 2, plan.Capacity(Key{First: "H"}))
	assert.Equal(t, 2, plan.Capacity(Key{First: "H", Second: "O"}))
	assert.Equal(t, 1, plan.Capacity(Key{First: "O"}))
	assert.Equal(t, 6, plan.Width())
}

func TestRepresentWater(t *testing.T) {
	water := testutil.Water()

	plan, err := Scan([]*geometry.Molecule{water})
	require.NoError(t, err)

	got, err := Represent(water, plan)
	require.NoError(t, err)

	expected := []float64{0.66066557, 0.5, 0.5, 8.3593106, 8.35237809, 73.51669472}
	require.Len(t, got, len(expected))
	for i := range expected {
		assert.InDelta(t, expected[i], got[i], 1e-6)
	}
}

func TestRepresentConst(t *testing.T) {
	water := testutil.Water()

	plan, err := Scan([]*geometry.Molecule{water}, WithConst(2.0))
	require.NoError(t, err)

	got, err := Represent(water, plan)
	require.NoError(t, err)

	// Diagonal terms double, pair terms are untouched.
	assert.InDelta(t, 1.0, got[1], 1e-12)
	assert.InDelta(t, 1.0, got[2], 1e-12)
	assert.InDelta(t, 2*73.51669472, got[5], 1e-6)
	assert.InDelta(t, 8.3593106, got[3], 1e-6)
}

func TestBatchAlignment(t *testing.T) {
	water := testutil.Water()
	// Hydroxide-like fragment: O,H only.
	oh := geometry.MustMolecule(
		[]float64{8, 1},
		[]geometry.Point{{0, 0, 0}, {0.97, 0, 0}},
	)
	// H2: exercises the HH pair bucket without oxygen.
	h2 := geometry.MustMolecule(
		[]float64{1, 1},
		[]geometry.Point{{0, 0, 0}, {0.74, 0, 0}},
	)

	mols := []*geometry.Molecule{water, oh, h2}
	plan, err := Scan(mols)
	require.NoError(t, err)

	width := plan.Width()
	require.Equal(t, 6, width)

	for i, mol := range mols {
		vec, err := Represent(mol, plan)
		require.NoError(t, err, "molecule %d", i)
		assert.Len(t, vec, width, "molecule %d", i)
	}

	// Molecules lacking a bucket get zeros in its columns. h2 has no O
	// diagonal and no HO pairs.
	vec, err := Represent(h2, plan)
	require.NoError(t, err)
	assert.InDelta(t, 1/0.74, vec[0], 1e-9) // HH pair
	assert.Equal(t, []float64{0, 0, 0}, vec[3:])
}

func TestPermutationInvariance(t *testing.T) {
	rng := testutil.NewRNG(5)
	mol := rng.RandomMolecule(8, []float64{1, 6, 7, 8}, 3.0)

	plan, err := Scan([]*geometry.Molecule{mol})
	require.NoError(t, err)

	base, err := Represent(mol, plan)
	require.NoError(t, err)

	for trial := 0; trial < 5; trial++ {
		perm, err := mol.Permute(rng.Perm(mol.NumAtoms()))
		require.NoError(t, err)

		got, err := Represent(perm, plan)
		require.NoError(t, err)

		require.Len(t, got, len(base))
		for i := range base {
			assert.InDelta(t, base[i], got[i], 1e-9)
		}
	}
}

func TestOccurrenceIndex(t *testing.T) {
	water := testutil.Water()
	h2 := geometry.MustMolecule(
		[]float64{1, 1},
		[]geometry.Point{{0, 0, 0}, {0.74, 0, 0}},
	)

	plan, err := Scan([]*geometry.Molecule{water, h2})
	require.NoError(t, err)

	withO := plan.MoleculesWith(Key{First: "O"})
	assert.Equal(t, []uint32{0}, withO.ToArray())

	withHH := plan.MoleculesWith(Key{First: "H", Second: "H"})
	assert.Equal(t, []uint32{0, 1}, withHH.ToArray())

	none := plan.MoleculesWith(Key{First: "C"})
	assert.True(t, none.IsEmpty())

	// The returned bitmap is a copy; mutating it must not affect the plan.
	withO.AddInt(7)
	assert.Equal(t, []uint32{0}, plan.MoleculesWith(Key{First: "O"}).ToArray())
}

func TestErrors(t *testing.T) {
	t.Run("UnknownCharge", func(t *testing.T) {
		bad := geometry.MustMolecule(
			[]float64{8, 200},
			[]geometry.Point{{0, 0, 0}, {1, 0, 0}},
		)
		_, err := Scan([]*geometry.Molecule{bad})
		var unknown *geometry.ErrUnknownCharge
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, float64(200), unknown.Charge)
	})

	t.Run("UnplannedKey", func(t *testing.T) {
		h2 := geometry.MustMolecule(
			[]float64{1, 1},
			[]geometry.Point{{0, 0, 0}, {0.74, 0, 0}},
		)
		plan, err := Scan([]*geometry.Molecule{h2})
		require.NoError(t, err)

		_, err = Represent(testutil.Water(), plan)
		var unplanned *ErrUnplannedKey
		require.ErrorAs(t, err, &unplanned)
	})

	t.Run("CapacityOverflow", func(t *testing.T) {
		h2 := geometry.MustMolecule(
			[]float64{1, 1},
			[]geometry.Point{{0, 0, 0}, {0.74, 0, 0}},
		)
		h3 := geometry.MustMolecule(
			[]float64{1, 1, 1},
			[]geometry.Point{{0, 0, 0}, {0.9, 0, 0}, {0, 0.9, 0}},
		)
		plan, err := Scan([]*geometry.Molecule{h2})
		require.NoError(t, err)

		_, err = Represent(h3, plan)
		var unplanned *ErrUnplannedKey
		require.ErrorAs(t, err, &unplanned)
	})

	t.Run("DegenerateGeometry", func(t *testing.T) {
		bad := geometry.MustMolecule(
			[]float64{1, 1},
			[]geometry.Point{{0, 0, 0}, {0, 0, 0}},
		)
		plan, err := Scan([]*geometry.Molecule{bad})
		require.NoError(t, err)

		_, err = Represent(bad, plan)
		assert.Error(t, err)
	})
}

func TestColumns(t *testing.T) {
	plan, err := Scan([]*geometry.Molecule{testutil.Water()})
	require.NoError(t, err)

	assert.Equal(t, []string{"HH:0", "H:0", "H:1", "HO:0", "HO:1", "O:0"}, plan.Columns())
}

func TestIdempotence(t *testing.T) {
	water := testutil.Water()
	plan, err := Scan([]*geometry.Molecule{water})
	require.NoError(t, err)

	a, err := Represent(water, plan)
	require.NoError(t, err)
	b, err := Represent(water, plan)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}
