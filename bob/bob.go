package bob

import (
	"fmt"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/molfeat/coulomb"
	"github.com/hupe1980/molfeat/geometry"
)

// Key identifies a bucket: an unordered element pair for off-diagonal
// interactions, or a single element for diagonal self-energy terms.
type Key struct {
	// First is the element symbol with the smaller nuclear charge.
	First string
	// Second is the element symbol with the larger nuclear charge,
	// or empty for diagonal (self-energy) buckets.
	Second string
}

// Diagonal reports whether the key holds self-energy terms.
func (k Key) Diagonal() bool {
	return k.Second == ""
}

func (k Key) String() string {
	return k.First + k.Second
}

// ErrUnplannedKey indicates a molecule containing a bucket key the capacity
// plan has never seen, meaning the molecule was not part of the scanned
// batch.
type ErrUnplannedKey struct {
	Key Key
}

func (e *ErrUnplannedKey) Error() string {
	return fmt.Sprintf("bucket key %q not covered by the capacity plan", e.Key)
}

// Options configures bag-of-bonds building.
type Options struct {
	// Const scales the diagonal self-energy terms Const * 0.5 * Z^2.4.
	Const float64

	// Table resolves nuclear charges to element symbols.
	Table *geometry.PeriodicTable
}

// WithConst sets the diagonal self-energy scale.
func WithConst(c float64) func(*Options) {
	return func(o *Options) {
		o.Const = c
	}
}

// WithTable sets the periodic table used for symbol resolution.
func WithTable(t *geometry.PeriodicTable) func(*Options) {
	return func(o *Options) {
		o.Table = t
	}
}

func applyOptions(optFns []func(*Options)) *Options {
	o := &Options{
		Const: 1.0,
		Table: geometry.DefaultPeriodicTable(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(o)
		}
	}
	return o
}

// Plan is the immutable result of the scan phase: per-key batch-wide
// bucket capacities, the canonical key order, and an occurrence index of
// which molecules contain each key. It must be fully built before any
// per-molecule transform runs and is never mutated afterwards.
type Plan struct {
	keys       []Key
	capacity   map[Key]int
	charges    map[Key][2]float64
	occurrence map[Key]*roaring.Bitmap
	opts       *Options
}

// Keys returns the bucket keys in canonical order.
func (p *Plan) Keys() []Key {
	out := make([]Key, len(p.keys))
	copy(out, p.keys)
	return out
}

// Capacity returns the batch-wide bucket capacity for key.
func (p *Plan) Capacity(key Key) int {
	return p.capacity[key]
}

// Width returns the total feature vector width: the sum of all bucket
// capacities.
func (p *Plan) Width() int {
	var w int
	for _, key := range p.keys {
		w += p.capacity[key]
	}
	return w
}

// Columns returns one label per output column, "<key>:<slot>" in canonical
// order.
func (p *Plan) Columns() []string {
	cols := make([]string, 0, p.Width())
	for _, key := range p.keys {
		for slot := 0; slot < p.capacity[key]; slot++ {
			cols = append(cols, fmt.Sprintf("%s:%d", key, slot))
		}
	}
	return cols
}

// MoleculesWith returns the batch indexes of molecules containing key.
// The returned bitmap is a copy and may be modified freely.
func (p *Plan) MoleculesWith(key Key) *roaring.Bitmap {
	bm, ok := p.occurrence[key]
	if !ok {
		return roaring.New()
	}
	return bm.Clone()
}

// Scan walks every molecule of a batch and produces the capacity plan.
// It fails with geometry.ErrUnknownCharge if a nuclear charge has no
// symbol in the configured periodic table.
func Scan(mols []*geometry.Molecule, optFns ...func(*Options)) (*Plan, error) {
	o := applyOptions(optFns)

	p := &Plan{
		capacity:   make(map[Key]int),
		charges:    make(map[Key][2]float64),
		occurrence: make(map[Key]*roaring.Bitmap),
		opts:       o,
	}

	for idx, mol := range mols {
		counts, _, err := bucketCounts(mol, o.Table)
		if err != nil {
			return nil, fmt.Errorf("molecule %d: %w", idx, err)
		}

		for key, count := range counts {
			if count > p.capacity[key] {
				p.capacity[key] = count
			}
			bm, ok := p.occurrence[key]
			if !ok {
				bm = roaring.New()
				p.occurrence[key] = bm
			}
			bm.AddInt(idx)
		}
	}

	for key := range p.capacity {
		lo, err := o.Table.Charge(key.First)
		if err != nil {
			return nil, err
		}
		hi := lo
		if !key.Diagonal() {
			if hi, err = o.Table.Charge(key.Second); err != nil {
				return nil, err
			}
		}
		p.charges[key] = [2]float64{lo, hi}
		p.keys = append(p.keys, key)
	}

	sortKeys(p.keys, p.charges)

	return p, nil
}

// sortKeys orders keys ascending by (min charge, max charge); on equal
// charges the pair bucket precedes the diagonal bucket.
func sortKeys(keys []Key, charges map[Key][2]float64) {
	sort.Slice(keys, func(a, b int) bool {
		ca, cb := charges[keys[a]], charges[keys[b]]
		if ca[0] != cb[0] {
			return ca[0] < cb[0]
		}
		if ca[1] != cb[1] {
			return ca[1] < cb[1]
		}
		return !keys[a].Diagonal() && keys[b].Diagonal()
	})
}

// bucketCounts returns the per-key bucket sizes of one molecule and the
// resolved element symbol of every atom.
func bucketCounts(mol *geometry.Molecule, table *geometry.PeriodicTable) (map[Key]int, []string, error) {
	n := mol.NumAtoms()

	syms := make([]string, n)
	for i := 0; i < n; i++ {
		sym, err := table.Symbol(mol.Charge(i))
		if err != nil {
			return nil, nil, err
		}
		syms[i] = sym
	}

	counts := make(map[Key]int)
	for i := 0; i < n; i++ {
		counts[Key{First: syms[i]}]++
		for j := i + 1; j < n; j++ {
			counts[pairKey(syms[i], mol.Charge(i), syms[j], mol.Charge(j))]++
		}
	}

	return counts, syms, nil
}

// pairKey builds the unordered pair key, smaller nuclear charge first.
func pairKey(symA string, zA float64, symB string, zB float64) Key {
	if zB < zA || (zA == zB && symB < symA) {
		symA, symB = symB, symA
	}
	return Key{First: symA, Second: symB}
}

// Represent buckets the Coulomb interactions of mol according to plan and
// returns the concatenated, zero-padded feature vector. The molecule must
// have been part of the scanned batch (or structurally covered by it).
func Represent(mol *geometry.Molecule, plan *Plan) ([]float64, error) {
	cm, err := coulomb.Matrix(mol)
	if err != nil {
		return nil, err
	}

	counts, syms, err := bucketCounts(mol, plan.opts.Table)
	if err != nil {
		return nil, err
	}

	buckets := make(map[Key][]float64, len(counts))
	for key, count := range counts {
		if _, ok := plan.capacity[key]; !ok {
			return nil, &ErrUnplannedKey{Key: key}
		}
		if count > plan.capacity[key] {
			return nil, &ErrUnplannedKey{Key: key}
		}
		buckets[key] = make([]float64, 0, count)
	}

	n := mol.NumAtoms()
	for i := 0; i < n; i++ {
		diag := Key{First: syms[i]}
		buckets[diag] = append(buckets[diag], plan.opts.Const*cm[i][i])
		for j := i + 1; j < n; j++ {
			key := pairKey(syms[i], mol.Charge(i), syms[j], mol.Charge(j))
			buckets[key] = append(buckets[key], cm[i][j])
		}
	}

	out := make([]float64, 0, plan.Width())
	for _, key := range plan.keys {
		vals := buckets[key]
		sort.Sort(sort.Reverse(sort.Float64Slice(vals)))
		out = append(out, vals...)
		for pad := len(vals); pad < plan.capacity[key]; pad++ {
			out = append(out, 0)
		}
	}

	return out, nil
}
