package mapper

import "go.trai.ch/zerr"

var _ Mapper = (*Merge)(nil)

// Merge maps every source to one fixed target. Write-mode sequencing for
// the shared target (truncate once, then append) is not the mapper's
// concern; wrap the callback with the callback package's merge tracking.
type Merge struct {
	base
	target string
}

// NewMerge creates a Merge mapper writing every source to target.
func NewMerge(src Source, target string, cb Callback, opts ...Option) (*Merge, error) {
	cfg := newConfig(opts)
	if err := cfg.ruleOptErr("merge"); err != nil {
		return nil, err
	}
	if err := src.validate(); err != nil {
		return nil, err
	}
	if target == "" {
		return nil, zerr.With(ErrInvalidConfig, "reason", "merge target is required")
	}
	return &Merge{base: newBase(src, cb, cfg), target: target}, nil
}

// Map resolves the source specification and maps each path to the merge
// target.
func (m *Merge) Map() (Mapping, error) {
	sources, err := m.resolveSources()
	if err != nil {
		return nil, err
	}
	return m.CreateMap(sources)
}

// CreateMap maps each source to the merge target, in order.
func (m *Merge) CreateMap(sources []string) (Mapping, error) {
	mapping := make(Mapping, len(sources))
	for i, src := range sources {
		mapping[i] = Pair{Source: src, Target: m.target}
	}
	return mapping, nil
}

// Task assembles the merge mapping into a TaskDescriptor.
func (m *Merge) Task(opts ...TaskOption) (*TaskDescriptor, error) {
	return m.taskFor(m, opts)
}
