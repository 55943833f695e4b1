// Package mapper generates explicit source→target file mappings for
// task-based build tools. A mapper turns a source specification (glob
// pattern or explicit paths) plus a pattern rule into an ordered Mapping
// of path pairs, and assembles the mapping into the three values a host
// build tool consumes: one action, a target list and a file dependency
// list. The package never schedules or executes tasks itself.
package mapper

import "context"

// Callback processes one source/target pair. An error aborts the
// remaining pairs of the running action and propagates to the host tool
// unchanged; pairs already processed are not rolled back.
type Callback func(source, target string) error

// Action is the runnable handed to the host tool inside a
// TaskDescriptor. Cancellation is checked between pairs only.
type Action func(ctx context.Context) error

// Mapper produces an ordered source→target Mapping and assembles it into
// a TaskDescriptor. Implementations are stateless: every call resolves
// and maps afresh.
type Mapper interface {
	// Map resolves the mapper's own source specification and builds the
	// mapping from the result.
	Map() (Mapping, error)

	// CreateMap builds the mapping for an externally resolved source
	// list, bypassing the mapper's own source specification.
	CreateMap(sources []string) (Mapping, error)

	// Callback returns the per-pair processing callback, or nil for a
	// map-only mapper.
	Callback() Callback

	// Dependencies reports the file dependencies the mapper declares for
	// the given mapping.
	Dependencies(mapping Mapping) ([]string, error)

	// Task assembles the mapping into a TaskDescriptor for the host tool.
	Task(opts ...TaskOption) (*TaskDescriptor, error)
}

// base carries the configuration shared by every variant and implements
// the uniform parts of the Mapper interface.
type base struct {
	src        Source
	callback   Callback
	baseDir    string
	globber    Globber
	fileDep    bool
	allowEmpty bool
}

func newBase(src Source, cb Callback, cfg *config) base {
	return base{
		src:        src,
		callback:   cb,
		baseDir:    cfg.baseDir,
		globber:    cfg.newGlobber(),
		fileDep:    cfg.fileDep,
		allowEmpty: cfg.allowEmptyMap,
	}
}

// Callback returns the configured per-pair callback.
func (b *base) Callback() Callback {
	return b.callback
}

// Dependencies implements the uniform dependency rule: the mapping's own
// sources, in mapping order, or nothing when file dependencies are
// disabled.
func (b *base) Dependencies(mapping Mapping) ([]string, error) {
	if !b.fileDep {
		return nil, nil
	}
	return mapping.Sources(), nil
}

// resolveSources expands the mapper's source specification.
func (b *base) resolveSources() ([]string, error) {
	return b.src.resolve(b.globber, b.baseDir)
}

// taskFor assembles the descriptor for a variant whose exec pairs all
// share the mapper's own callback.
func (b *base) taskFor(m Mapper, opts []TaskOption) (*TaskDescriptor, error) {
	mapping, err := m.Map()
	if err != nil {
		return nil, err
	}
	deps, err := m.Dependencies(mapping)
	if err != nil {
		return nil, err
	}
	return assemble(mapping, pairExecs(mapping, b.callback), deps, b.allowEmpty, opts)
}
