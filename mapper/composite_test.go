package mapper_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/fmap/mapper"
)

func TestComposite_Map_ConcatenatesAndKeepsDuplicates(t *testing.T) {
	fsys := memFS(t, "a.txt", "b.txt")

	first, err := mapper.NewGlob(mapper.Pattern("*.txt"), "*.out", nil, mapper.WithFs(fsys))
	require.NoError(t, err)
	second, err := mapper.NewGlob(mapper.Pattern("a.*"), "a.out", nil, mapper.WithFs(fsys))
	require.NoError(t, err)

	m, err := mapper.NewComposite([]mapper.Mapper{first, second}, nil)
	require.NoError(t, err)

	got, err := m.Map()
	require.NoError(t, err)

	// a.txt maps to a.out through both sub-mappers; the duplicate pair is
	// preserved and the combined length is the sum of the parts.
	assert.Equal(t, mapper.Mapping{
		{Source: "a.txt", Target: "a.out"},
		{Source: "b.txt", Target: "b.out"},
		{Source: "a.txt", Target: "a.out"},
	}, got)

	firstMap, err := first.Map()
	require.NoError(t, err)
	secondMap, err := second.Map()
	require.NoError(t, err)
	assert.Len(t, got, len(firstMap)+len(secondMap))
}

func TestComposite_Task_DeduplicatesHandoffLists(t *testing.T) {
	fsys := memFS(t, "a.txt", "b.txt")

	var calls []mapper.Pair
	cb := recordingCallback(&calls, nil)

	first, err := mapper.NewGlob(mapper.Pattern("*.txt"), "*.out", cb, mapper.WithFs(fsys))
	require.NoError(t, err)
	second, err := mapper.NewGlob(mapper.Pattern("a.*"), "a.out", cb, mapper.WithFs(fsys))
	require.NoError(t, err)

	m, err := mapper.NewComposite([]mapper.Mapper{first, second}, nil)
	require.NoError(t, err)

	task, err := m.Task()
	require.NoError(t, err)

	// The mapping keeps duplicates, the handoff lists do not.
	assert.Equal(t, []string{"a.out", "b.out"}, task.Targets)
	assert.Equal(t, []string{"a.txt", "b.txt"}, task.FileDep)

	require.Len(t, task.Actions, 1)
	require.NoError(t, task.Actions[0](context.Background()))
	assert.Len(t, calls, 3)
}

func TestComposite_Task_SubCallbacksFireForOwnPairs(t *testing.T) {
	fsys := memFS(t, "a.txt")

	var firstCalls, secondCalls []mapper.Pair
	first, err := mapper.NewGlob(mapper.Pattern("*.txt"), "*.one", recordingCallback(&firstCalls, nil),
		mapper.WithFs(fsys))
	require.NoError(t, err)
	second, err := mapper.NewGlob(mapper.Pattern("*.txt"), "*.two", recordingCallback(&secondCalls, nil),
		mapper.WithFs(fsys))
	require.NoError(t, err)

	m, err := mapper.NewComposite([]mapper.Mapper{first, second}, nil)
	require.NoError(t, err)

	task, err := m.Task()
	require.NoError(t, err)
	require.NoError(t, task.Actions[0](context.Background()))

	assert.Equal(t, []mapper.Pair{{Source: "a.txt", Target: "a.one"}}, firstCalls)
	assert.Equal(t, []mapper.Pair{{Source: "a.txt", Target: "a.two"}}, secondCalls)
}

func TestComposite_Task_OwnCallbackOverridesSubs(t *testing.T) {
	fsys := memFS(t, "a.txt")

	var subCalls, ownCalls []mapper.Pair
	sub, err := mapper.NewGlob(mapper.Pattern("*.txt"), "*.out", recordingCallback(&subCalls, nil),
		mapper.WithFs(fsys))
	require.NoError(t, err)

	m, err := mapper.NewComposite([]mapper.Mapper{sub}, recordingCallback(&ownCalls, nil))
	require.NoError(t, err)

	task, err := m.Task()
	require.NoError(t, err)
	require.NoError(t, task.Actions[0](context.Background()))

	assert.Empty(t, subCalls)
	assert.Equal(t, []mapper.Pair{{Source: "a.txt", Target: "a.out"}}, ownCalls)
}

func TestComposite_New_RequiresSubMappers(t *testing.T) {
	_, err := mapper.NewComposite(nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, mapper.ErrInvalidConfig)
}

func TestComposite_New_RejectsResolverOptions(t *testing.T) {
	fsys := memFS(t, "a.txt")
	sub, err := mapper.NewIdentity(mapper.Pattern("*.txt"), nil, mapper.WithFs(fsys))
	require.NoError(t, err)

	_, err = mapper.NewComposite([]mapper.Mapper{sub}, nil, mapper.WithBaseDir("elsewhere"))
	require.Error(t, err)
	assert.ErrorIs(t, err, mapper.ErrInvalidConfig)
}
