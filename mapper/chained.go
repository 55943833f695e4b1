package mapper

import (
	"slices"

	"go.trai.ch/zerr"
)

var _ Mapper = (*Chained)(nil)

// Chained feeds sub-mappers into one another: the first stage consumes
// the chain's resolved sources, every following stage consumes the
// targets of the stage before it. Later stages are never re-resolved from
// the filesystem, since their inputs do not exist until the action runs.
// The chain's mapping is the concatenation of all stage mappings, so
// intermediate targets are declared as task outputs too.
type Chained struct {
	base
	subs []Mapper
}

// NewChained creates a Chained mapper over the given sub-mappers. When
// the chain has its own callback, sub-mapper callbacks are never invoked;
// only their map-generation logic runs. Otherwise every stage's callback
// fires for its own pairs, in chain order.
func NewChained(src Source, subs []Mapper, cb Callback, opts ...Option) (*Chained, error) {
	cfg := newConfig(opts)
	if err := cfg.ruleOptErr("chained"); err != nil {
		return nil, err
	}
	if err := src.validate(); err != nil {
		return nil, err
	}
	if err := validateSubs(subs); err != nil {
		return nil, err
	}
	return &Chained{base: newBase(src, cb, cfg), subs: subs}, nil
}

// stages runs the map-generation logic of every stage, threading each
// stage's targets into the next.
func (m *Chained) stages(sources []string) (Mapping, []execPair, error) {
	var (
		mapping Mapping
		execs   []execPair
	)
	cur := sources
	for i, sub := range m.subs {
		sm, err := sub.CreateMap(cur)
		if err != nil {
			return nil, nil, zerr.With(zerr.Wrap(err, "failed to build chain stage"), "stage", i)
		}
		cb := m.callback
		if cb == nil {
			cb = sub.Callback()
		}
		execs = append(execs, pairExecs(sm, cb)...)
		mapping = append(mapping, sm...)
		cur = sm.Targets()
	}
	return mapping, execs, nil
}

// Map resolves the chain's source specification and threads it through
// every stage.
func (m *Chained) Map() (Mapping, error) {
	sources, err := m.resolveSources()
	if err != nil {
		return nil, err
	}
	mapping, _, err := m.stages(sources)
	return mapping, err
}

// CreateMap threads the externally resolved sources through every stage.
func (m *Chained) CreateMap(sources []string) (Mapping, error) {
	mapping, _, err := m.stages(sources)
	return mapping, err
}

// Dependencies returns the chain's resolved source list: the inputs of
// the first stage. The mapping argument is not consulted; every later
// stage consumes intermediate targets that exist only after the action
// has run.
func (m *Chained) Dependencies(Mapping) ([]string, error) {
	if !m.fileDep {
		return nil, nil
	}
	return m.resolveSources()
}

// Task assembles the chain into a TaskDescriptor.
func (m *Chained) Task(opts ...TaskOption) (*TaskDescriptor, error) {
	sources, err := m.resolveSources()
	if err != nil {
		return nil, err
	}
	mapping, execs, err := m.stages(sources)
	if err != nil {
		return nil, err
	}
	var deps []string
	if m.fileDep {
		deps = slices.Clone(sources)
	}
	return assemble(mapping, execs, deps, m.allowEmpty, opts)
}
