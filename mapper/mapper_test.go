package mapper_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"go.trai.ch/fmap/mapper"
)

// memFS builds an in-memory filesystem seeded with the given files. Each
// file's content is its own path, so callbacks can verify what they read.
func memFS(t *testing.T, paths ...string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for _, p := range paths {
		require.NoError(t, afero.WriteFile(fsys, p, []byte(p+"\n"), 0o644))
	}
	return fsys
}

// recordingCallback appends every invocation to calls and returns err.
func recordingCallback(calls *[]mapper.Pair, err error) mapper.Callback {
	return func(source, target string) error {
		*calls = append(*calls, mapper.Pair{Source: source, Target: target})
		return err
	}
}
