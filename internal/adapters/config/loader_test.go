package config_test

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"

	"go.trai.ch/fmap/internal/adapters/config"
	"go.trai.ch/fmap/internal/core/domain"
	"go.trai.ch/fmap/internal/core/ports/mocks"
	"go.trai.ch/fmap/mapper"
)

func newLoader(t *testing.T, files map[string]string) (*config.Loader, *mocks.MockLogger) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fsys, name, []byte(content), 0o644))
	}
	log := mocks.NewMockLogger(gomock.NewController(t))
	return &config.Loader{Logger: log, Fs: fsys}, log
}

func TestLoad_Success(t *testing.T) {
	mapfile := `
version: "1"
tasks:
  - name: convert
    mapper: glob
    src: "data/*.csv"
    replace: "out/*.json"
    op: copy
  - name: bundle
    mapper: merge
    src: "logs/*.log"
    target: bundle.log
    op: concat
`
	l, _ := newLoader(t, map[string]string{
		"/fmap.yaml":  mapfile,
		"/data/a.csv": "a",
		"/data/b.csv": "b",
		"/logs/x.log": "x",
	})

	set, err := l.Load("/")
	require.NoError(t, err)

	// Declaration order survives the YAML round trip.
	assert.Equal(t, []string{"convert", "bundle"}, set.Names())

	task, err := set.Get("convert")
	require.NoError(t, err)
	mapping, err := task.Mapper.Map()
	require.NoError(t, err)
	assert.Equal(t, mapper.Mapping{
		{Source: "data/a.csv", Target: "out/a.json"},
		{Source: "data/b.csv", Target: "out/b.json"},
	}, mapping)

	bundle, err := set.Get("bundle")
	require.NoError(t, err)
	desc, err := bundle.Mapper.Task()
	require.NoError(t, err)
	assert.Equal(t, []string{"bundle.log"}, desc.Targets)
	assert.Equal(t, []string{"logs/x.log"}, desc.FileDep)
}

func TestLoad_WalksUpToMapfile(t *testing.T) {
	mapfile := `
tasks:
  - name: stamp
    mapper: identity
    paths: [VERSION]
    op: touch
`
	l, _ := newLoader(t, map[string]string{"/project/fmap.yaml": mapfile})

	set, err := l.Load("/project/nested/dir")
	require.NoError(t, err)
	assert.Equal(t, 1, set.Len())
}

func TestLoad_ConfigNotFound(t *testing.T) {
	l, _ := newLoader(t, nil)

	_, err := l.Load("/nowhere")
	assert.ErrorIs(t, err, domain.ErrConfigNotFound)
}

func TestLoad_ParseError(t *testing.T) {
	l, _ := newLoader(t, map[string]string{"/fmap.yaml": "tasks: ["})

	_, err := l.Load("/")
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestLoad_NoTasks(t *testing.T) {
	l, _ := newLoader(t, map[string]string{"/fmap.yaml": `version: "1"`})

	_, err := l.Load("/")
	assert.ErrorIs(t, err, domain.ErrNoTasksDefined)
}

func TestLoad_InvalidDefinitions(t *testing.T) {
	tests := []struct {
		name    string
		mapfile string
		wantErr error
	}{
		{
			name: "duplicate task name",
			mapfile: `
tasks:
  - name: twice
    mapper: identity
    paths: [a.txt]
    op: touch
  - name: twice
    mapper: identity
    paths: [b.txt]
    op: touch
`,
			wantErr: domain.ErrTaskAlreadyExists,
		},
		{
			name: "missing task name",
			mapfile: `
tasks:
  - mapper: identity
    paths: [a.txt]
    op: touch
`,
			wantErr: domain.ErrInvalidTaskName,
		},
		{
			name: "unknown mapper kind",
			mapfile: `
tasks:
  - name: weird
    mapper: teleport
    src: "*.txt"
    op: copy
`,
			wantErr: domain.ErrUnknownMapper,
		},
		{
			name: "unknown operation",
			mapfile: `
tasks:
  - name: weird
    mapper: identity
    paths: [a.txt]
    op: shred
`,
			wantErr: domain.ErrUnknownOperation,
		},
		{
			name: "unknown regex flag",
			mapfile: `
tasks:
  - name: weird
    mapper: regex
    src: "*.txt"
    search: '(.*)\.txt$'
    replace: '${1}.bak'
    flags: [sticky]
    op: copy
`,
			wantErr: domain.ErrUnknownFlag,
		},
		{
			name: "engine rejects glob without replacement",
			mapfile: `
tasks:
  - name: broken
    mapper: glob
    src: "*.csv"
    op: copy
`,
			wantErr: mapper.ErrInvalidConfig,
		},
		{
			name: "engine rejects flags outside regex",
			mapfile: `
tasks:
  - name: broken
    mapper: glob
    src: "*.csv"
    replace: "*.json"
    flags: [ignorecase]
    op: copy
`,
			wantErr: mapper.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _ := newLoader(t, map[string]string{"/fmap.yaml": tt.mapfile})

			_, err := l.Load("/")
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestLoad_RegexFlags(t *testing.T) {
	mapfile := `
tasks:
  - name: rename
    mapper: regex
    src: "docs/*"
    search: '(.+)\.TXT$'
    replace: '${1}.rst'
    flags: [ignorecase]
    op: copy
`
	l, _ := newLoader(t, map[string]string{
		"/fmap.yaml":       mapfile,
		"/docs/report.txt": "r",
	})

	set, err := l.Load("/")
	require.NoError(t, err)

	task, err := set.Get("rename")
	require.NoError(t, err)
	mapping, err := task.Mapper.Map()
	require.NoError(t, err)
	assert.Equal(t, mapper.Mapping{{Source: "docs/report.txt", Target: "docs/report.rst"}}, mapping)
}

func TestLoad_ChainedStepsInheritSource(t *testing.T) {
	mapfile := `
tasks:
  - name: publish
    mapper: chained
    src: "src/*.txt"
    steps:
      - mapper: glob
        replace: "build/*.txt"
        op: copy
      - mapper: regex
        search: '(.*)\.txt$'
        replace: '${1}.bak'
        op: copy
`
	l, _ := newLoader(t, map[string]string{
		"/fmap.yaml": mapfile,
		"/src/a.txt": "a",
	})

	set, err := l.Load("/")
	require.NoError(t, err)

	task, err := set.Get("publish")
	require.NoError(t, err)
	mapping, err := task.Mapper.Map()
	require.NoError(t, err)
	assert.Equal(t, mapper.Mapping{
		{Source: "src/a.txt", Target: "build/a.txt"},
		{Source: "build/a.txt", Target: "build/a.bak"},
	}, mapping)
}

func TestLoad_ChainedStepResolveOptionsWarn(t *testing.T) {
	mapfile := `
tasks:
  - name: publish
    mapper: chained
    src: "src/*.txt"
    steps:
      - mapper: glob
        replace: "build/*.txt"
        baseDir: elsewhere
        op: copy
`
	l, log := newLoader(t, map[string]string{"/fmap.yaml": mapfile})
	log.EXPECT().Warn(gomock.Any()).Times(1)

	_, err := l.Load("/")
	require.NoError(t, err)
}

func TestLoad_CompositeParts(t *testing.T) {
	mapfile := `
tasks:
  - name: gather
    mapper: composite
    parts:
      - mapper: glob
        src: "a/*.go"
        replace: "bin/*.o"
        op: copy
      - mapper: identity
        src: "doc/*.md"
        op: touch
`
	l, _ := newLoader(t, map[string]string{
		"/fmap.yaml": mapfile,
		"/a/x.go":    "x",
		"/doc/r.md":  "r",
	})

	set, err := l.Load("/")
	require.NoError(t, err)

	task, err := set.Get("gather")
	require.NoError(t, err)
	mapping, err := task.Mapper.Map()
	require.NoError(t, err)
	assert.Equal(t, mapper.Mapping{
		{Source: "a/x.go", Target: "bin/x.o"},
		{Source: "doc/r.md", Target: "doc/r.md"},
	}, mapping)
}

func TestLoad_TaskErrorsCarryTaskName(t *testing.T) {
	mapfile := `
tasks:
  - name: broken
    mapper: glob
    src: "*.csv"
    op: copy
`
	l, _ := newLoader(t, map[string]string{"/fmap.yaml": mapfile})

	_, err := l.Load("/")
	require.Error(t, err)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "broken", zErr.Metadata()["task"])
}
