package mapper

var _ Mapper = (*Identity)(nil)

// Identity maps every source to itself. It is useful for in-place
// processing, where declaring the sources as file dependencies would
// make the task depend on its own outputs, so file dependencies default
// to disabled; WithFileDep(true) overrides that explicitly.
type Identity struct {
	base
}

// NewIdentity creates an Identity mapper for the given source
// specification.
func NewIdentity(src Source, cb Callback, opts ...Option) (*Identity, error) {
	cfg := newConfig(opts)
	if err := cfg.ruleOptErr("identity"); err != nil {
		return nil, err
	}
	if err := src.validate(); err != nil {
		return nil, err
	}
	if !cfg.fileDepSet {
		cfg.fileDep = false
	}
	return &Identity{base: newBase(src, cb, cfg)}, nil
}

// Map resolves the source specification and maps each path to itself.
func (m *Identity) Map() (Mapping, error) {
	sources, err := m.resolveSources()
	if err != nil {
		return nil, err
	}
	return m.CreateMap(sources)
}

// CreateMap maps each source to itself, in order.
func (m *Identity) CreateMap(sources []string) (Mapping, error) {
	mapping := make(Mapping, len(sources))
	for i, src := range sources {
		mapping[i] = Pair{Source: src, Target: src}
	}
	return mapping, nil
}

// Task assembles the identity mapping into a TaskDescriptor.
func (m *Identity) Task(opts ...TaskOption) (*TaskDescriptor, error) {
	return m.taskFor(m, opts)
}
