package mapper

import (
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/zerr"
)

// Source selects the files a mapper operates on: either a glob pattern
// resolved against the mapper's base directory, or an explicit path
// sequence passed through untouched. A Source is immutable once handed
// to a mapper.
type Source struct {
	pattern  string
	paths    []string
	explicit bool
}

// Pattern returns a Source that glob-resolves the given pattern. The
// pattern may use `*`, `?`, character classes and `**` for recursive
// descent, and must be relative to the mapper's base directory.
func Pattern(pattern string) Source {
	return Source{pattern: pattern}
}

// Paths returns a Source that yields exactly the given paths in order,
// without touching the filesystem. No existence check is performed; the
// consumer is responsible for validity at use time.
func Paths(paths ...string) Source {
	return Source{paths: slices.Clone(paths), explicit: true}
}

// IsPattern reports whether the source resolves through the glob
// primitive rather than an explicit path list.
func (s Source) IsPattern() bool {
	return !s.explicit
}

func (s Source) isZero() bool {
	return !s.explicit && s.pattern == ""
}

// validate performs the eager construction-time checks shared by every
// variant that owns a source specification.
func (s Source) validate() error {
	if s.isZero() {
		return zerr.With(ErrInvalidConfig, "reason", "source specification is required")
	}
	if s.explicit {
		return nil
	}
	if filepath.IsAbs(s.pattern) {
		return zerr.With(zerr.With(ErrInvalidConfig, "reason", "pattern must be relative to the base directory"), "pattern", s.pattern)
	}
	if !doublestar.ValidatePattern(s.pattern) {
		return zerr.With(zerr.With(ErrInvalidConfig, "reason", "malformed glob pattern"), "pattern", s.pattern)
	}
	return nil
}

// resolve expands the source against baseDir. Explicit paths are handed
// out as a copy, unchanged; patterns go through the globber in its
// traversal order, without re-sorting.
func (s Source) resolve(g Globber, baseDir string) ([]string, error) {
	if s.explicit {
		return slices.Clone(s.paths), nil
	}
	return g.Glob(baseDir, s.pattern)
}
