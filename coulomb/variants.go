package coulomb

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/hupe1980/molfeat/geometry"
	"gonum.org/v1/gonum/mat"
)

// Variant selects the flattening transform applied to the padded
// Coulomb matrix.
type Variant int

const (
	// VariantUnsorted (UM) flattens the padded matrix row-major.
	VariantUnsorted Variant = iota
	// VariantTriangular (UT) flattens the triangle including the diagonal.
	VariantTriangular
	// VariantEigenspectrum (E) emits eigenvalues sorted descending.
	VariantEigenspectrum
	// VariantSorted (SC) reorders rows/columns by descending row norm,
	// then flattens the triangle.
	VariantSorted
	// VariantRandomized (RC) samples noisy row-norm orderings and
	// concatenates the flattened triangles.
	VariantRandomized
)

func (v Variant) String() string {
	switch v {
	case VariantUnsorted:
		return "UM"
	case VariantTriangular:
		return "UT"
	case VariantEigenspectrum:
		return "E"
	case VariantSorted:
		return "SC"
	case VariantRandomized:
		return "RC"
	default:
		return fmt.Sprintf("Unknown(%d)", int(v))
	}
}

// ErrUnknownVariant indicates an unrecognized variant value or name.
type ErrUnknownVariant struct {
	Name string
}

func (e *ErrUnknownVariant) Error() string {
	return fmt.Sprintf("unknown coulomb matrix variant %q", e.Name)
}

// ParseVariant parses the short variant names UM, UT, E, SC and RC.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "UM":
		return VariantUnsorted, nil
	case "UT":
		return VariantTriangular, nil
	case "E":
		return VariantEigenspectrum, nil
	case "SC":
		return VariantSorted, nil
	case "RC":
		return VariantRandomized, nil
	default:
		return 0, &ErrUnknownVariant{Name: s}
	}
}

// Width returns the output width of a variant for the given maximum atom
// count and permutation count. permutations is only consulted for
// VariantRandomized.
func Width(v Variant, maxAtoms, permutations int) (int, error) {
	switch v {
	case VariantUnsorted:
		return maxAtoms * maxAtoms, nil
	case VariantTriangular, VariantSorted:
		return maxAtoms * (maxAtoms + 1) / 2, nil
	case VariantEigenspectrum:
		return maxAtoms, nil
	case VariantRandomized:
		return permutations * maxAtoms * (maxAtoms + 1) / 2, nil
	default:
		return 0, &ErrUnknownVariant{Name: v.String()}
	}
}

// Options configures the randomized variant.
type Options struct {
	// Permutations is the number of noisy orderings sampled per molecule.
	Permutations int

	// Noise scales the zero-mean Gaussian perturbation added to each row
	// norm before sorting.
	Noise float64

	// Rand is the random source used for noise sampling. The default is
	// seeded with DefaultSeed, so repeated runs are reproducible; inject
	// a differently seeded source for varied sampling.
	Rand *rand.Rand
}

const (
	// DefaultPermutations is the default sample count for VariantRandomized.
	DefaultPermutations = 3

	// DefaultNoise is the default Gaussian noise scale for VariantRandomized.
	DefaultNoise = 1.0

	// DefaultSeed seeds the default random source.
	DefaultSeed int64 = 42
)

// WithPermutations sets the number of noisy orderings sampled per molecule.
func WithPermutations(n int) func(*Options) {
	return func(o *Options) {
		o.Permutations = n
	}
}

// WithNoise sets the Gaussian noise scale.
func WithNoise(scale float64) func(*Options) {
	return func(o *Options) {
		o.Noise = scale
	}
}

// WithRand sets the random source used for noise sampling.
func WithRand(r *rand.Rand) func(*Options) {
	return func(o *Options) {
		o.Rand = r
	}
}

// WithSeed sets a fresh random source seeded with seed.
// Convenience wrapper for WithRand(rand.New(rand.NewSource(seed))).
func WithSeed(seed int64) func(*Options) {
	return func(o *Options) {
		o.Rand = rand.New(rand.NewSource(seed)) //nolint:gosec
	}
}

// ErrInvalidOptions indicates an out-of-range option value.
type ErrInvalidOptions struct {
	Reason string
}

func (e *ErrInvalidOptions) Error() string {
	return fmt.Sprintf("invalid options: %s", e.Reason)
}

func applyOptions(optFns []func(*Options)) (*Options, error) {
	o := &Options{
		Permutations: DefaultPermutations,
		Noise:        DefaultNoise,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(o)
		}
	}
	if o.Permutations < 1 {
		return nil, &ErrInvalidOptions{Reason: fmt.Sprintf("permutations must be >= 1, got %d", o.Permutations)}
	}
	if o.Noise < 0 {
		return nil, &ErrInvalidOptions{Reason: fmt.Sprintf("noise must be >= 0, got %g", o.Noise)}
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(DefaultSeed)) //nolint:gosec
	}
	return o, nil
}

// Represent builds the Coulomb matrix of m, pads it to maxAtoms and applies
// the variant transform, returning one flat feature vector.
func Represent(m *geometry.Molecule, v Variant, maxAtoms int, optFns ...func(*Options)) ([]float64, error) {
	o, err := applyOptions(optFns)
	if err != nil {
		return nil, err
	}

	transform, err := provider(v)
	if err != nil {
		return nil, err
	}

	cm, err := Matrix(m)
	if err != nil {
		return nil, err
	}

	padded, err := Pad(cm, maxAtoms)
	if err != nil {
		return nil, err
	}

	return transform(padded, o)
}

// transformFunc turns a padded Coulomb matrix into a flat feature vector.
type transformFunc func(padded [][]float64, o *Options) ([]float64, error)

func provider(v Variant) (transformFunc, error) {
	switch v {
	case VariantUnsorted:
		return unsorted, nil
	case VariantTriangular:
		return triangular, nil
	case VariantEigenspectrum:
		return eigenspectrum, nil
	case VariantSorted:
		return sorted, nil
	case VariantRandomized:
		return randomized, nil
	default:
		return nil, &ErrUnknownVariant{Name: v.String()}
	}
}

func unsorted(padded [][]float64, _ *Options) ([]float64, error) {
	n := len(padded)
	out := make([]float64, 0, n*n)
	for i := range padded {
		out = append(out, padded[i]...)
	}
	return out, nil
}

// flattenTriangle emits the lower triangle including the diagonal in
// row-major order (equivalently the upper triangle column-major; the matrix
// is symmetric). This matches the column layout of the reference datasets.
func flattenTriangle(m [][]float64) []float64 {
	n := len(m)
	out := make([]float64, 0, n*(n+1)/2)
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			out = append(out, m[i][j])
		}
	}
	return out
}

func triangular(padded [][]float64, _ *Options) ([]float64, error) {
	return flattenTriangle(padded), nil
}

func eigenspectrum(padded [][]float64, _ *Options) ([]float64, error) {
	n := len(padded)

	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, padded[i][j])
		}
	}

	var es mat.EigenSym
	if !es.Factorize(sym, false) {
		return nil, fmt.Errorf("eigendecomposition failed for %dx%d matrix", n, n)
	}

	// gonum returns eigenvalues ascending; the spectrum is emitted descending.
	vals := es.Values(nil)
	for l, r := 0, len(vals)-1; l < r; l, r = l+1, r-1 {
		vals[l], vals[r] = vals[r], vals[l]
	}

	return vals, nil
}

// rowNorms returns the L2 norm of every row.
func rowNorms(m [][]float64) []float64 {
	norms := make([]float64, len(m))
	for i, row := range m {
		var sum float64
		for _, v := range row {
			sum += v * v
		}
		norms[i] = math.Sqrt(sum)
	}
	return norms
}

// orderByDescending returns the permutation that sorts keys descending.
// The sort is stable: equal keys preserve their original relative order.
func orderByDescending(keys []float64) []int {
	order := make([]int, len(keys))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return keys[order[a]] > keys[order[b]]
	})
	return order
}

// permuteSym applies order to both axes of the symmetric matrix m.
func permuteSym(m [][]float64, order []int) [][]float64 {
	n := len(m)
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
		for j := range out[i] {
			out[i][j] = m[order[i]][order[j]]
		}
	}
	return out
}

func sorted(padded [][]float64, _ *Options) ([]float64, error) {
	order := orderByDescending(rowNorms(padded))
	return flattenTriangle(permuteSym(padded, order)), nil
}

func randomized(padded [][]float64, o *Options) ([]float64, error) {
	norms := rowNorms(padded)

	width := len(padded) * (len(padded) + 1) / 2
	out := make([]float64, 0, o.Permutations*width)

	perturbed := make([]float64, len(norms))
	for p := 0; p < o.Permutations; p++ {
		for i, norm := range norms {
			perturbed[i] = norm + o.Noise*o.Rand.NormFloat64()
		}
		order := orderByDescending(perturbed)
		out = append(out, flattenTriangle(permuteSym(padded, order))...)
	}

	return out, nil
}
