package mapper

import "go.trai.ch/zerr"

var _ Mapper = (*Regex)(nil)

// Regex derives each target by applying a caller-supplied regular
// expression substitution to the source path. Sources the expression
// does not match are dropped from the mapping by default;
// WithKeepNonmatching passes them through with target equal to source.
type Regex struct {
	base
	rule            rule
	keepNonmatching bool
}

// NewRegex creates a Regex mapper. The search expression is compiled
// eagerly with the flags from WithFlags; the replacement uses Go template
// syntax ($1, ${name}).
func NewRegex(src Source, search, replace string, cb Callback, opts ...Option) (*Regex, error) {
	cfg := newConfig(opts)
	if cfg.search != "" {
		return nil, optErr("regex", "WithSearch")
	}
	if err := src.validate(); err != nil {
		return nil, err
	}
	if search == "" {
		return nil, zerr.With(ErrInvalidConfig, "reason", "search expression is required")
	}
	r, err := compileRule(search, replace, cfg.flags)
	if err != nil {
		return nil, err
	}
	return &Regex{
		base:            newBase(src, cb, cfg),
		rule:            r,
		keepNonmatching: cfg.keepNonmatching,
	}, nil
}

// Map resolves the source specification and applies the substitution.
func (m *Regex) Map() (Mapping, error) {
	sources, err := m.resolveSources()
	if err != nil {
		return nil, err
	}
	return m.CreateMap(sources)
}

// CreateMap applies the substitution to each source in order.
func (m *Regex) CreateMap(sources []string) (Mapping, error) {
	return m.rule.apply(sources, m.keepNonmatching), nil
}

// Task assembles the regex mapping into a TaskDescriptor.
func (m *Regex) Task(opts ...TaskOption) (*TaskDescriptor, error) {
	return m.taskFor(m, opts)
}
