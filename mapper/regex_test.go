package mapper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/fmap/mapper"
)

func TestRegex_CreateMap_SwapsCaptureGroups(t *testing.T) {
	m, err := mapper.NewRegex(mapper.Paths("Foo_Bar.txt"), `^(\w+)_(\w+)\.txt$`, `${2}-${1}.txt`, nil)
	require.NoError(t, err)

	got, err := m.Map()
	require.NoError(t, err)
	assert.Equal(t, mapper.Mapping{{Source: "Foo_Bar.txt", Target: "Bar-Foo.txt"}}, got)
}

func TestRegex_CreateMap_DropsNonmatchingByDefault(t *testing.T) {
	m, err := mapper.NewRegex(mapper.Paths("a.txt", "b.md", "c.txt"), `\.txt$`, ".rst", nil)
	require.NoError(t, err)

	got, err := m.Map()
	require.NoError(t, err)
	assert.Equal(t, mapper.Mapping{
		{Source: "a.txt", Target: "a.rst"},
		{Source: "c.txt", Target: "c.rst"},
	}, got)
}

func TestRegex_CreateMap_KeepNonmatchingPassesThrough(t *testing.T) {
	m, err := mapper.NewRegex(mapper.Paths("a.txt", "b.md"), `\.txt$`, ".rst", nil,
		mapper.WithKeepNonmatching())
	require.NoError(t, err)

	got, err := m.Map()
	require.NoError(t, err)
	assert.Equal(t, mapper.Mapping{
		{Source: "a.txt", Target: "a.rst"},
		{Source: "b.md", Target: "b.md"},
	}, got)
}

func TestRegex_CreateMap_Flags(t *testing.T) {
	m, err := mapper.NewRegex(mapper.Paths("REPORT.TXT"), `\.txt$`, ".rst", nil,
		mapper.WithFlags(mapper.FlagIgnoreCase))
	require.NoError(t, err)

	got, err := m.Map()
	require.NoError(t, err)
	assert.Equal(t, mapper.Mapping{{Source: "REPORT.TXT", Target: "REPORT.rst"}}, got)
}

func TestRegex_New_InvalidExpression(t *testing.T) {
	_, err := mapper.NewRegex(mapper.Paths("a.txt"), `(`, "x", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, mapper.ErrInvalidConfig)
}

func TestRegex_New_RejectsGlobOnlyOptions(t *testing.T) {
	_, err := mapper.NewRegex(mapper.Paths("a.txt"), `\.txt$`, ".rst", nil,
		mapper.WithSearch("other"))
	require.Error(t, err)
	assert.ErrorIs(t, err, mapper.ErrInvalidConfig)
}
