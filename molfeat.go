package molfeat

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/hupe1980/molfeat/bob"
	"github.com/hupe1980/molfeat/coulomb"
	"github.com/hupe1980/molfeat/geometry"
	"github.com/hupe1980/molfeat/table"
)

// Featurizer converts batches of molecules into row-aligned feature
// tables. It is safe for concurrent use unless a shared random source was
// injected with WithRandomSource.
type Featurizer struct {
	opts *options
}

// New creates a Featurizer from the given options.
func New(optFns ...Option) (*Featurizer, error) {
	opts, err := applyOptions(optFns)
	if err != nil {
		return nil, err
	}

	// Reject unknown variants at construction time rather than per batch.
	if _, err := coulomb.Width(opts.variant, 1, opts.permutations); err != nil {
		return nil, translateError(err)
	}

	return &Featurizer{opts: opts}, nil
}

// Method returns the configured representation family.
func (f *Featurizer) Method() Method {
	return f.opts.method
}

// Variant returns the configured Coulomb matrix variant.
func (f *Featurizer) Variant() coulomb.Variant {
	return f.opts.variant
}

// Represent converts the molecules into one feature table, one row per
// molecule in input order. All rows share the same width and column
// semantics.
//
// The batch is processed in two phases. The scan phase fixes the padded
// atom count (the WithMaxAtoms option, or the maximum observed) and, for
// MethodBagOfBonds, the per-bucket capacities. The transform phase then
// never revises those bounds, so row widths cannot be invalidated by a
// later molecule. The first error aborts the batch with no partial result.
func (f *Featurizer) Represent(ctx context.Context, mols ...*geometry.Molecule) (*table.FeatureTable, error) {
	start := time.Now()

	tbl, err := f.represent(ctx, mols)

	failed := 0
	if err != nil {
		failed = 1
	}
	f.opts.metricsCollector.RecordBatch(len(mols), failed, time.Since(start))

	width := 0
	if tbl != nil {
		width = tbl.NumColumns()
	}
	f.opts.logger.LogRepresent(ctx, f.variantName(), len(mols), width, time.Since(start), err)

	return tbl, err
}

func (f *Featurizer) represent(ctx context.Context, mols []*geometry.Molecule) (*table.FeatureTable, error) {
	if len(mols) == 0 {
		return nil, ErrNoMolecules
	}

	maxAtoms, plan, err := f.scan(ctx, mols)
	if err != nil {
		return nil, err
	}

	switch f.opts.method {
	case MethodBagOfBonds:
		return f.transformBagOfBonds(ctx, mols, plan)
	default:
		return f.transformCoulomb(ctx, mols, maxAtoms)
	}
}

// scan is the first pass: it validates every molecule and freezes the
// batch-wide bounds before any transform runs.
func (f *Featurizer) scan(ctx context.Context, mols []*geometry.Molecule) (int, *bob.Plan, error) {
	start := time.Now()

	maxAtoms, plan, err := f.scanBounds(mols)

	f.opts.metricsCollector.RecordScan(len(mols), time.Since(start), err)
	f.opts.logger.LogScan(ctx, len(mols), maxAtoms, err)

	return maxAtoms, plan, err
}

func (f *Featurizer) scanBounds(mols []*geometry.Molecule) (int, *bob.Plan, error) {
	maxAtoms := f.opts.maxAtoms

	for i, mol := range mols {
		if mol == nil || mol.NumAtoms() == 0 {
			return 0, nil, fmt.Errorf("molecule %d: %w", i, ErrNotRepresentable)
		}

		n := mol.NumAtoms()
		if f.opts.maxAtoms > 0 {
			if n > f.opts.maxAtoms {
				return 0, nil, translateError(&coulomb.ErrAtomCountExceeded{NumAtoms: n, MaxAtoms: f.opts.maxAtoms})
			}
		} else if n > maxAtoms {
			maxAtoms = n
		}
	}

	if f.opts.method != MethodBagOfBonds {
		return maxAtoms, nil, nil
	}

	plan, err := bob.Scan(mols, bob.WithConst(f.opts.bobConst), bob.WithTable(f.opts.table))
	if err != nil {
		return 0, nil, translateError(err)
	}

	return maxAtoms, plan, nil
}

func (f *Featurizer) transformCoulomb(ctx context.Context, mols []*geometry.Molecule, maxAtoms int) (*table.FeatureTable, error) {
	width, err := coulomb.Width(f.opts.variant, maxAtoms, f.opts.permutations)
	if err != nil {
		return nil, translateError(err)
	}

	columns := make([]string, width)
	for j := range columns {
		columns[j] = fmt.Sprintf("%s:%d", f.opts.variant, j)
	}

	tbl, err := table.New(columns)
	if err != nil {
		return nil, err
	}

	// One source per batch call keeps RC output reproducible for a fixed
	// seed, regardless of how many batches ran before.
	rng := f.opts.rand
	if rng == nil {
		rng = rand.New(rand.NewSource(f.opts.seed)) //nolint:gosec
	}

	for i, mol := range mols {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rowStart := time.Now()
		row, err := coulomb.Represent(mol, f.opts.variant, maxAtoms,
			coulomb.WithPermutations(f.opts.permutations),
			coulomb.WithNoise(f.opts.noise),
			coulomb.WithRand(rng),
		)
		f.opts.metricsCollector.RecordRepresent(time.Since(rowStart), err)
		if err != nil {
			return nil, fmt.Errorf("molecule %d: %w", i, translateError(err))
		}

		if err := tbl.AppendRow(row); err != nil {
			return nil, err
		}
	}

	return tbl, nil
}

func (f *Featurizer) transformBagOfBonds(ctx context.Context, mols []*geometry.Molecule, plan *bob.Plan) (*table.FeatureTable, error) {
	tbl, err := table.New(plan.Columns())
	if err != nil {
		return nil, err
	}

	for i, mol := range mols {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rowStart := time.Now()
		row, err := bob.Represent(mol, plan)
		f.opts.metricsCollector.RecordRepresent(time.Since(rowStart), err)
		if err != nil {
			return nil, fmt.Errorf("molecule %d: %w", i, translateError(err))
		}

		if err := tbl.AppendRow(row); err != nil {
			return nil, err
		}
	}

	return tbl, nil
}

func (f *Featurizer) variantName() string {
	if f.opts.method == MethodBagOfBonds {
		return f.opts.method.String()
	}
	return f.opts.variant.String()
}
