package mapper

import "go.trai.ch/zerr"

var _ Mapper = (*Glob)(nil)

// Glob derives each target by rewriting the source path with a
// single-wildcard glob pair: the source pattern is translated into a
// capture rule and the captured substring is substituted into the
// wildcard position of the replacement. Distinct sources may collide on
// one target; pairs are not deduplicated, the callback decides whether
// that means merge or overwrite.
type Glob struct {
	base
	rule rule
}

// NewGlob creates a Glob mapper. The search pattern defaults to the
// source pattern; WithSearch supplies an explicit regular expression
// instead, which is required when src is an explicit path sequence. The
// replacement references the wildcard capture with `*` (or $1 under an
// explicit search expression).
func NewGlob(src Source, replace string, cb Callback, opts ...Option) (*Glob, error) {
	cfg := newConfig(opts)
	if cfg.flags != 0 {
		return nil, optErr("glob", "WithFlags")
	}
	if cfg.keepNonmatching {
		return nil, optErr("glob", "WithKeepNonmatching")
	}
	if err := src.validate(); err != nil {
		return nil, err
	}
	if replace == "" {
		return nil, zerr.With(ErrInvalidConfig, "reason", "replacement pattern is required")
	}

	var (
		r   rule
		err error
	)
	switch {
	case cfg.search != "":
		r, err = compileRule(cfg.search, replace, 0)
	case src.IsPattern():
		r, err = translateGlob(src.pattern, replace)
	default:
		err = zerr.With(ErrInvalidConfig, "reason", "explicit paths require a search expression")
	}
	if err != nil {
		return nil, err
	}

	return &Glob{base: newBase(src, cb, cfg), rule: r}, nil
}

// Map resolves the source specification and applies the rewrite rule.
func (m *Glob) Map() (Mapping, error) {
	sources, err := m.resolveSources()
	if err != nil {
		return nil, err
	}
	return m.CreateMap(sources)
}

// CreateMap applies the rewrite rule to each source in order. Sources the
// rule does not match are dropped.
func (m *Glob) CreateMap(sources []string) (Mapping, error) {
	return m.rule.apply(sources, false), nil
}

// Task assembles the glob mapping into a TaskDescriptor.
func (m *Glob) Task(opts ...TaskOption) (*TaskDescriptor, error) {
	return m.taskFor(m, opts)
}
