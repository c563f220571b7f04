// Package f4 wires package pairs, symbolic, matrix, linalg and trace into
// the six entry points spec.md §6 describes: build a matrix from the
// current pair set, convert its hashes to columns, reduce it, fold the
// results back into the basis, and interreduce the finished basis.
package f4

// Config holds every tunable the engine recognizes (spec §6):
// nthrds, fc (the field characteristic), info_level, mnsel, max_uht_size
// and ff_bits. Package linalg picks the actual accumulator regime from
// FieldChar alone, not from FieldBits; Reduce only uses a nonzero
// FieldBits to reject a hint smaller than FieldChar's bit length.
type Config struct {
	NumThreads int
	FieldChar  uint32
	InfoLevel  int
	MaxSelect  int
	MaxUHTSize int
	FieldBits  int
	Seed       uint64
}

// Option configures a Config, following the same functional-options
// constructor shape as lvlath's matrix.MatrixOptions/WithDirected.
type Option func(*Config)

// WithNumThreads sets the worker pool size (nthrds).
func WithNumThreads(n int) Option { return func(c *Config) { c.NumThreads = n } }

// WithFieldChar sets the prime the engine reduces modulo (fc).
func WithFieldChar(p uint32) Option { return func(c *Config) { c.FieldChar = p } }

// WithInfoLevel sets the stats verbosity (0..3).
func WithInfoLevel(level int) Option { return func(c *Config) { c.InfoLevel = level } }

// WithMaxSelect caps the number of pairs taken per matrix build (mnsel).
func WithMaxSelect(n int) Option { return func(c *Config) { c.MaxSelect = n } }

// WithMaxUHTSize sizes the probabilistic reduction's multiplier mask.
func WithMaxUHTSize(n int) Option { return func(c *Config) { c.MaxUHTSize = n } }

// WithFieldBits records the configured ff_bits hint (0, 8, 16 or 32).
func WithFieldBits(bits int) Option { return func(c *Config) { c.FieldBits = bits } }

// WithSeed sets the deterministic seed for probabilistic mode's random
// linear combinations. Hash weights are not derived from it; they come
// from the monomial.Weights the caller builds its tables with.
func WithSeed(seed uint64) Option { return func(c *Config) { c.Seed = seed } }

// NewConfig builds a Config from sane defaults plus any options.
func NewConfig(opts ...Option) Config {
	cfg := Config{
		NumThreads: 1,
		FieldChar:  2147483647, // 2^31 - 1
		InfoLevel:  0,
		MaxSelect:  0,
		MaxUHTSize: 1 << 20,
		FieldBits:  32,
		Seed:       1,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
