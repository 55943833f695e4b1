package mapper

import (
	"regexp"
	"strings"

	"go.trai.ch/zerr"
)

// translateGlob converts a single-wildcard glob pair into a rule:
// everything the wildcard matches is captured and substituted into the
// wildcard position of the replacement. The produced rule is
// indistinguishable from a caller-supplied regular expression rule
// downstream.
func translateGlob(search, replace string) (rule, error) {
	if strings.Count(search, "*") != 1 {
		return rule{}, zerr.With(ErrAmbiguousPattern, "pattern", search)
	}

	prefix, suffix, _ := strings.Cut(search, "*")
	re := regexp.MustCompile("^" + regexp.QuoteMeta(prefix) + "(.*)" + regexp.QuoteMeta(suffix) + "$")

	// Literal dollar signs in the replacement must survive template
	// expansion; only the wildcard references the capture.
	tpl := strings.ReplaceAll(replace, "$", "$$")
	tpl = strings.ReplaceAll(tpl, "*", "${1}")

	return rule{search: re, replace: tpl}, nil
}
