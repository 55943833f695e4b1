package mapper

import "go.trai.ch/zerr"

var _ Mapper = (*Custom)(nil)

// MapFunc builds a Mapping from an ordered source list. Implementations
// must be deterministic: the same sources produce the same mapping.
type MapFunc func(sources []string) (Mapping, error)

// Custom delegates target derivation to an injected MapFunc, for mapping
// shapes the built-in variants cannot express.
type Custom struct {
	base
	fn MapFunc
}

// NewCustom creates a Custom mapper around the given map function.
func NewCustom(src Source, fn MapFunc, cb Callback, opts ...Option) (*Custom, error) {
	cfg := newConfig(opts)
	if err := cfg.ruleOptErr("custom"); err != nil {
		return nil, err
	}
	if err := src.validate(); err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, zerr.With(ErrInvalidConfig, "reason", "map function is required")
	}
	return &Custom{base: newBase(src, cb, cfg), fn: fn}, nil
}

// Map resolves the source specification and hands it to the map function.
func (m *Custom) Map() (Mapping, error) {
	sources, err := m.resolveSources()
	if err != nil {
		return nil, err
	}
	return m.CreateMap(sources)
}

// CreateMap hands the sources to the map function.
func (m *Custom) CreateMap(sources []string) (Mapping, error) {
	return m.fn(sources)
}

// Task assembles the custom mapping into a TaskDescriptor.
func (m *Custom) Task(opts ...TaskOption) (*TaskDescriptor, error) {
	return m.taskFor(m, opts)
}
