package mapper

import "context"

// TaskDescriptor carries the three engine-managed handoff values the
// host build tool consumes, plus verbatim pass-through fields. It is
// built once per Task call and not retained by the engine.
type TaskDescriptor struct {
	Actions []Action
	Targets []string
	FileDep []string
	Extra   map[string]any
}

// execPair binds one mapping pair to the callback that processes it.
type execPair struct {
	source string
	target string
	cb     Callback
}

func pairExecs(mapping Mapping, cb Callback) []execPair {
	execs := make([]execPair, len(mapping))
	for i, p := range mapping {
		execs[i] = execPair{source: p.Source, target: p.Target, cb: cb}
	}
	return execs
}

// TaskOption adjusts an assembled TaskDescriptor.
type TaskOption func(*taskOverrides)

type taskOverrides struct {
	actions    []Action
	actionsSet bool
	targets    []string
	targetsSet bool
	fileDep    []string
	fileDepSet bool
	extra      map[string]any
}

// WithActions replaces the engine-built action list wholesale.
func WithActions(actions ...Action) TaskOption {
	return func(o *taskOverrides) {
		o.actions = actions
		o.actionsSet = true
	}
}

// WithTargets replaces the engine-computed target list wholesale.
func WithTargets(targets ...string) TaskOption {
	return func(o *taskOverrides) {
		o.targets = targets
		o.targetsSet = true
	}
}

// WithFileDeps replaces the engine-computed file dependency list
// wholesale.
func WithFileDeps(deps ...string) TaskOption {
	return func(o *taskOverrides) {
		o.fileDep = deps
		o.fileDepSet = true
	}
}

// WithMeta adds a field carried verbatim on the descriptor, untouched by
// the engine.
func WithMeta(key string, value any) TaskOption {
	return func(o *taskOverrides) {
		if o.extra == nil {
			o.extra = make(map[string]any)
		}
		o.extra[key] = value
	}
}

// assemble turns a mapping and its exec pairs into a TaskDescriptor:
// unique-preserving-order targets and dependencies, and one action that
// walks the pairs in order. The empty-map policy is applied here, before
// the host tool ever schedules the task.
func assemble(mapping Mapping, execs []execPair, deps []string, allowEmpty bool, opts []TaskOption) (*TaskDescriptor, error) {
	var ov taskOverrides
	for _, opt := range opts {
		opt(&ov)
	}

	if len(mapping) == 0 {
		if !allowEmpty {
			return nil, ErrEmptyMapping
		}
		desc := &TaskDescriptor{Actions: []Action{noop}, Extra: ov.extra}
		ov.apply(desc)
		return desc, nil
	}

	if !ov.actionsSet && !hasCallback(execs) {
		return nil, ErrNoCallback
	}

	desc := &TaskDescriptor{
		Actions: []Action{runPairs(execs)},
		Targets: uniqueInOrder(mapping.Targets()),
		FileDep: uniqueInOrder(deps),
		Extra:   ov.extra,
	}
	ov.apply(desc)
	return desc, nil
}

func (o *taskOverrides) apply(desc *TaskDescriptor) {
	if o.actionsSet {
		desc.Actions = o.actions
	}
	if o.targetsSet {
		desc.Targets = o.targets
	}
	if o.fileDepSet {
		desc.FileDep = o.fileDep
	}
}

func hasCallback(execs []execPair) bool {
	for _, e := range execs {
		if e.cb != nil {
			return true
		}
	}
	return false
}

// noop reports success without performing work: the empty-map opt-in.
func noop(context.Context) error {
	return nil
}

// runPairs builds the single action that processes every pair in mapping
// order. The engine's mapping is authoritative; target lists the host
// tool tracks never feed back in. A callback error aborts the remaining
// pairs and propagates unchanged; completed pairs are not rolled back.
// Cancellation is checked between pairs.
func runPairs(execs []execPair) Action {
	return func(ctx context.Context) error {
		for _, e := range execs {
			if err := ctx.Err(); err != nil {
				return err
			}
			if e.cb == nil {
				continue
			}
			if err := e.cb(e.source, e.target); err != nil {
				return err
			}
		}
		return nil
	}
}

// uniqueInOrder deduplicates while keeping first-occurrence order.
func uniqueInOrder(paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
