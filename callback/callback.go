// Package callback wraps pair-processing callbacks with the stateful
// contracts mappers rely on: open-file injection, merge-mode tracking
// and invocation counting. Wrappers compose by nesting and return plain
// mapper callbacks, so they slot into any mapper constructor.
package callback

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.trai.ch/zerr"

	"go.trai.ch/fmap/mapper"
)

// FileFunc processes one pair through already-opened handles instead of
// paths. Both handles are closed on every exit path, including when the
// function returns an error.
type FileFunc func(src, dst afero.File) error

// Option adjusts how the file-handle wrappers open their handles.
type Option func(*config)

type config struct {
	fs         afero.Fs
	sourceFlag int
	targetFlag int
	mode       os.FileMode
	mkdirs     bool
}

func newConfig(opts []Option) config {
	cfg := config{
		fs:         afero.NewOsFs(),
		sourceFlag: os.O_RDONLY,
		targetFlag: os.O_WRONLY | os.O_CREATE | os.O_TRUNC,
		mode:       0o644,
		mkdirs:     true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithFs sets the filesystem handles are opened on. Defaults to the OS
// filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(c *config) { c.fs = fsys }
}

// WithSourceFlag overrides the open flags for the source handle. The
// default is read-only.
func WithSourceFlag(flag int) Option {
	return func(c *config) { c.sourceFlag = flag }
}

// WithTargetFlag overrides the open flags for the target handle. The
// default creates or truncates for writing. Merging ignores this option;
// its whole point is managing the target mode itself.
func WithTargetFlag(flag int) Option {
	return func(c *config) { c.targetFlag = flag }
}

// WithMode sets the permission bits used when the target is created.
func WithMode(mode os.FileMode) Option {
	return func(c *config) { c.mode = mode }
}

// WithMkdirs controls whether missing parent directories of the target
// are created before opening it. Defaults to true.
func WithMkdirs(enabled bool) Option {
	return func(c *config) { c.mkdirs = enabled }
}

// Files wraps fn so it receives open handles instead of paths: the
// source is opened for reading, the target for truncate-writing (modes
// overridable). Errors from fn propagate unchanged.
func Files(fn FileFunc, opts ...Option) mapper.Callback {
	cfg := newConfig(opts)
	return func(source, target string) error {
		return runPair(cfg, cfg.targetFlag, fn, source, target)
	}
}

// Merging wraps fn like Files, but tracks which targets this returned
// callback has already opened: the first pair hitting a target truncates
// it, every later pair appends. The tracking state belongs to the
// returned callback alone, so a merge target is truncated exactly once
// per mapper run no matter how many sources feed it or how runs
// interleave across distinct targets.
func Merging(fn FileFunc, opts ...Option) mapper.Callback {
	cfg := newConfig(opts)
	opened := make(map[string]bool)
	return func(source, target string) error {
		flag := os.O_WRONLY | os.O_CREATE | os.O_APPEND
		if !opened[target] {
			flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
			opened[target] = true
		}
		return runPair(cfg, flag, fn, source, target)
	}
}

func runPair(cfg config, targetFlag int, fn FileFunc, source, target string) error {
	src, err := cfg.fs.OpenFile(source, cfg.sourceFlag, 0)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open source"), "source", source)
	}
	defer src.Close()

	if cfg.mkdirs {
		if dir := filepath.Dir(target); dir != "." && dir != string(filepath.Separator) {
			if err := cfg.fs.MkdirAll(dir, 0o755); err != nil {
				return zerr.With(zerr.Wrap(err, "failed to create target directory"), "target", target)
			}
		}
	}

	dst, err := cfg.fs.OpenFile(target, targetFlag, cfg.mode)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open target"), "target", target)
	}

	if err := fn(src, dst); err != nil {
		_ = dst.Close()
		return err
	}
	return dst.Close()
}
