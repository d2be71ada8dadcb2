package molfeat

import (
	"fmt"
	"math/rand"

	"github.com/hupe1980/molfeat/coulomb"
	"github.com/hupe1980/molfeat/geometry"
)

// Method selects the representation family.
type Method uint8

const (
	// MethodCoulombMatrix produces one flattened Coulomb matrix vector
	// per molecule, under the configured Variant.
	MethodCoulombMatrix Method = iota
	// MethodBagOfBonds buckets Coulomb terms by element pair.
	MethodBagOfBonds
)

// String returns the method name.
func (m Method) String() string {
	switch m {
	case MethodCoulombMatrix:
		return "CM"
	case MethodBagOfBonds:
		return "BoB"
	default:
		return fmt.Sprintf("method(%d)", uint8(m))
	}
}

type options struct {
	method           Method
	variant          coulomb.Variant
	maxAtoms         int
	permutations     int
	noise            float64
	rand             *rand.Rand
	seed             int64
	bobConst         float64
	table            *geometry.PeriodicTable
	logger           *Logger
	metricsCollector MetricsCollector
}

// Option configures Featurizer behavior.
type Option func(*options)

// WithMethod selects the representation family.
// The default is MethodCoulombMatrix.
func WithMethod(m Method) Option {
	return func(o *options) {
		o.method = m
	}
}

// WithVariant selects the Coulomb matrix invariance variant.
// The default is coulomb.VariantSorted.
func WithVariant(v coulomb.Variant) Option {
	return func(o *options) {
		o.variant = v
	}
}

// WithMaxAtoms fixes the padded atom count for all rows. Molecules with
// more atoms fail the batch. If unset (0), the maximum observed atom
// count of each batch is used.
func WithMaxAtoms(n int) Option {
	return func(o *options) {
		o.maxAtoms = n
	}
}

// WithPermutations sets the sample count for coulomb.VariantRandomized.
func WithPermutations(n int) Option {
	return func(o *options) {
		o.permutations = n
	}
}

// WithNoise sets the Gaussian noise scale for coulomb.VariantRandomized.
func WithNoise(scale float64) Option {
	return func(o *options) {
		o.noise = scale
	}
}

// WithSeed seeds the random source for coulomb.VariantRandomized. Each
// batch call starts from this seed, so repeated calls on the same input
// reproduce the same output.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithRandomSource injects a random source for coulomb.VariantRandomized,
// shared across batch calls. Takes precedence over WithSeed; reproducibility
// is then up to the caller.
func WithRandomSource(r *rand.Rand) Option {
	return func(o *options) {
		o.rand = r
	}
}

// WithConst scales the diagonal self-energy terms of MethodBagOfBonds.
// The default is 1.0.
func WithConst(c float64) Option {
	return func(o *options) {
		o.bobConst = c
	}
}

// WithPeriodicTable sets the element lookup used by MethodBagOfBonds to
// resolve bucket keys. The default covers all 118 elements.
func WithPeriodicTable(t *geometry.PeriodicTable) Option {
	return func(o *options) {
		o.table = t
	}
}

// WithLogger configures structured logging.
// Pass nil to disable logging (the default).
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection (the default).
func WithMetricsCollector(collector MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = collector
	}
}

func applyOptions(optFns []Option) (*options, error) {
	o := &options{
		method:           MethodCoulombMatrix,
		variant:          coulomb.VariantSorted,
		permutations:     coulomb.DefaultPermutations,
		noise:            coulomb.DefaultNoise,
		seed:             coulomb.DefaultSeed,
		bobConst:         1.0,
		table:            geometry.DefaultPeriodicTable(),
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(o)
	}

	if o.method != MethodCoulombMatrix && o.method != MethodBagOfBonds {
		return nil, fmt.Errorf("%w: unknown method %d", ErrInvalidConfiguration, o.method)
	}
	if o.maxAtoms < 0 {
		return nil, fmt.Errorf("%w: max atoms must not be negative, got %d", ErrInvalidConfiguration, o.maxAtoms)
	}
	if o.permutations < 1 {
		return nil, fmt.Errorf("%w: permutations must be at least 1, got %d", ErrInvalidConfiguration, o.permutations)
	}
	if o.noise < 0 {
		return nil, fmt.Errorf("%w: noise must not be negative, got %g", ErrInvalidConfiguration, o.noise)
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}

	return o, nil
}
