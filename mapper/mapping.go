package mapper

import (
	"github.com/cespare/xxhash/v2"
)

// Pair maps one source path to one target path.
type Pair struct {
	Source string
	Target string
}

// Mapping is an ordered sequence of source/target pairs. The order is
// deterministic for a given source specification and rule. A mapping may
// contain duplicate sources and duplicate targets; consumers must
// tolerate both.
type Mapping []Pair

// Sources returns the source paths in mapping order, duplicates included.
func (m Mapping) Sources() []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, len(m))
	for i, p := range m {
		out[i] = p.Source
	}
	return out
}

// Targets returns the target paths in mapping order, duplicates included.
func (m Mapping) Targets() []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, len(m))
	for i, p := range m {
		out[i] = p.Target
	}
	return out
}

// Fingerprint returns an order-sensitive xxHash64 digest of the mapping.
// Two mappings with the same pairs in the same order share a fingerprint,
// so it can be used to detect plan changes between runs.
func (m Mapping) Fingerprint() uint64 {
	d := xxhash.New()
	for _, p := range m {
		_, _ = d.WriteString(p.Source)
		_, _ = d.Write([]byte{0})
		_, _ = d.WriteString(p.Target)
		_, _ = d.Write([]byte{0})
	}
	return d.Sum64()
}
