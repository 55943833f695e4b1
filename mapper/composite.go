package mapper

import "go.trai.ch/zerr"

var _ Mapper = (*Composite)(nil)

// Composite unions the mappings of several sub-mappers. Each sub-mapper
// resolves and maps via its own configuration; the composite itself has
// no source specification. The combined mapping may contain duplicate
// pairs; they are preserved, not deduplicated.
type Composite struct {
	callback   Callback
	subs       []Mapper
	fileDep    bool
	allowEmpty bool
}

// NewComposite creates a Composite over the given sub-mappers. When the
// composite has its own callback it applies to every pair; otherwise each
// pair keeps the callback of the sub-mapper that produced it.
func NewComposite(subs []Mapper, cb Callback, opts ...Option) (*Composite, error) {
	cfg := newConfig(opts)
	if err := cfg.ruleOptErr("composite"); err != nil {
		return nil, err
	}
	if err := cfg.resolveOptErr("composite"); err != nil {
		return nil, err
	}
	if err := validateSubs(subs); err != nil {
		return nil, err
	}
	return &Composite{
		callback:   cb,
		subs:       subs,
		fileDep:    cfg.fileDep,
		allowEmpty: cfg.allowEmptyMap,
	}, nil
}

func validateSubs(subs []Mapper) error {
	if len(subs) == 0 {
		return zerr.With(ErrInvalidConfig, "reason", "at least one sub-mapper is required")
	}
	for i, sub := range subs {
		if sub == nil {
			return zerr.With(zerr.With(ErrInvalidConfig, "reason", "sub-mapper is nil"), "index", i)
		}
	}
	return nil
}

// Map concatenates the sub-mapper mappings in declaration order.
func (m *Composite) Map() (Mapping, error) {
	var mapping Mapping
	for i, sub := range m.subs {
		sm, err := sub.Map()
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to build sub-mapping"), "index", i)
		}
		mapping = append(mapping, sm...)
	}
	return mapping, nil
}

// CreateMap fans the externally resolved sources out to every sub-mapper
// and concatenates the results.
func (m *Composite) CreateMap(sources []string) (Mapping, error) {
	var mapping Mapping
	for i, sub := range m.subs {
		sm, err := sub.CreateMap(sources)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to build sub-mapping"), "index", i)
		}
		mapping = append(mapping, sm...)
	}
	return mapping, nil
}

// Callback returns the composite's own callback, which overrides the
// sub-mapper callbacks when set.
func (m *Composite) Callback() Callback {
	return m.callback
}

// Dependencies unions the sub-mapper dependency lists in declaration
// order. The mapping argument is not consulted; each sub-mapper reports
// against its own mapping.
func (m *Composite) Dependencies(Mapping) ([]string, error) {
	if !m.fileDep {
		return nil, nil
	}
	var deps []string
	for i, sub := range m.subs {
		sm, err := sub.Map()
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to build sub-mapping"), "index", i)
		}
		sd, err := sub.Dependencies(sm)
		if err != nil {
			return nil, err
		}
		deps = append(deps, sd...)
	}
	return deps, nil
}

// Task assembles the combined mapping into a TaskDescriptor.
func (m *Composite) Task(opts ...TaskOption) (*TaskDescriptor, error) {
	var (
		mapping Mapping
		execs   []execPair
		deps    []string
	)
	for i, sub := range m.subs {
		sm, err := sub.Map()
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to build sub-mapping"), "index", i)
		}
		cb := m.callback
		if cb == nil {
			cb = sub.Callback()
		}
		execs = append(execs, pairExecs(sm, cb)...)
		mapping = append(mapping, sm...)

		if m.fileDep {
			sd, err := sub.Dependencies(sm)
			if err != nil {
				return nil, err
			}
			deps = append(deps, sd...)
		}
	}
	return assemble(mapping, execs, deps, m.allowEmpty, opts)
}
