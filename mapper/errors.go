package mapper

import "go.trai.ch/zerr"

var (
	// ErrInvalidConfig is returned at construction when a mapper receives
	// parameters or options its variant cannot honor.
	ErrInvalidConfig = zerr.New("invalid mapper configuration")

	// ErrAmbiguousPattern is returned at construction when a glob search
	// pattern does not contain exactly one wildcard and no explicit search
	// expression was supplied.
	ErrAmbiguousPattern = zerr.New("pattern must contain exactly one wildcard")

	// ErrEmptyMapping is returned by Task when the resolved mapping has no
	// pairs and empty mappings were not allowed via WithAllowEmptyMap.
	ErrEmptyMapping = zerr.New("mapping is empty")

	// ErrNoCallback is returned by Task when no pair carries a callback and
	// no actions override was supplied, so the assembled task could never
	// perform work.
	ErrNoCallback = zerr.New("no callback configured")
)
