package mapper

import (
	"regexp"
	"strings"

	"go.trai.ch/zerr"
)

// Flags adjust how a regex search expression is compiled. Flags are
// always passed explicitly; there is no ambient flag state.
type Flags uint8

const (
	// FlagIgnoreCase makes the search case-insensitive.
	FlagIgnoreCase Flags = 1 << iota
	// FlagMultiline lets ^ and $ match at line boundaries.
	FlagMultiline
	// FlagDotAll lets . match newlines.
	FlagDotAll
)

func (f Flags) validate() error {
	if f&^(FlagIgnoreCase|FlagMultiline|FlagDotAll) != 0 {
		return zerr.With(ErrInvalidConfig, "reason", "unknown regex flag")
	}
	return nil
}

// expr renders the flags as an inline regexp group prefix.
func (f Flags) expr() string {
	if f == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("(?")
	if f&FlagIgnoreCase != 0 {
		b.WriteByte('i')
	}
	if f&FlagMultiline != 0 {
		b.WriteByte('m')
	}
	if f&FlagDotAll != 0 {
		b.WriteByte('s')
	}
	b.WriteByte(')')
	return b.String()
}

// rule rewrites a source path into a target path. It is produced either
// by glob translation or from a caller-supplied regular expression; both
// run through the same application path.
type rule struct {
	search  *regexp.Regexp
	replace string
}

// compileRule builds a rule from a regular expression search string. The
// replacement uses Go template syntax ($1, ${name}).
func compileRule(search, replace string, flags Flags) (rule, error) {
	if err := flags.validate(); err != nil {
		return rule{}, err
	}
	re, err := regexp.Compile(flags.expr() + search)
	if err != nil {
		return rule{}, zerr.With(zerr.With(ErrInvalidConfig, "search", search), "error", err.Error())
	}
	return rule{search: re, replace: replace}, nil
}

// apply builds the mapping for the given sources. Sources that do not
// match the search expression are dropped, unless keepNonmatching is set,
// in which case they pass through with target equal to source.
func (r rule) apply(sources []string, keepNonmatching bool) Mapping {
	mapping := make(Mapping, 0, len(sources))
	for _, src := range sources {
		if !r.search.MatchString(src) {
			if keepNonmatching {
				mapping = append(mapping, Pair{Source: src, Target: src})
			}
			continue
		}
		mapping = append(mapping, Pair{Source: src, Target: r.search.ReplaceAllString(src, r.replace)})
	}
	return mapping
}
