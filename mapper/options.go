package mapper

import (
	"github.com/spf13/afero"
	"go.trai.ch/zerr"
)

// config collects option values at construction time. Each constructor
// rejects the fields its variant cannot honor, so misconfiguration fails
// fast instead of surfacing during map building.
type config struct {
	baseDir         string
	baseDirSet      bool
	fs              afero.Fs
	globber         Globber
	fileDep         bool
	fileDepSet      bool
	allowEmptyMap   bool
	followSymlinks  bool
	followSet       bool
	search          string
	flags           Flags
	keepNonmatching bool
}

func newConfig(opts []Option) *config {
	cfg := &config{
		baseDir:        ".",
		fileDep:        true,
		followSymlinks: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// newGlobber returns the configured Globber, falling back to the default
// walker over the configured (or OS) filesystem.
func (c *config) newGlobber() Globber {
	if c.globber != nil {
		return c.globber
	}
	fsys := c.fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return NewGlobber(fsys, c.followSymlinks)
}

// ruleOptErr reports the first rule-shaping option the variant cannot
// honor.
func (c *config) ruleOptErr(variant string) error {
	switch {
	case c.search != "":
		return optErr(variant, "WithSearch")
	case c.flags != 0:
		return optErr(variant, "WithFlags")
	case c.keepNonmatching:
		return optErr(variant, "WithKeepNonmatching")
	}
	return nil
}

// resolveOptErr reports the first resolver option supplied to a variant
// that has no source specification of its own.
func (c *config) resolveOptErr(variant string) error {
	switch {
	case c.baseDirSet:
		return optErr(variant, "WithBaseDir")
	case c.fs != nil:
		return optErr(variant, "WithFs")
	case c.globber != nil:
		return optErr(variant, "WithGlobber")
	case c.followSet:
		return optErr(variant, "WithFollowSymlinks")
	}
	return nil
}

func optErr(variant, option string) error {
	return zerr.With(zerr.With(ErrInvalidConfig, "mapper", variant), "option", option)
}

// Option configures a mapper at construction time. Options a variant
// cannot honor are rejected eagerly by its constructor.
type Option func(*config)

// WithBaseDir sets the directory patterns resolve against. Resolved paths
// carry this prefix, so an absolute base directory yields absolute paths.
// Defaults to the current directory.
func WithBaseDir(dir string) Option {
	return func(c *config) {
		c.baseDir = dir
		c.baseDirSet = true
	}
}

// WithFs sets the filesystem the default globber walks. Primarily useful
// for testing with in-memory filesystems.
func WithFs(fsys afero.Fs) Option {
	return func(c *config) { c.fs = fsys }
}

// WithGlobber replaces the glob resolution primitive entirely.
func WithGlobber(g Globber) Option {
	return func(c *config) { c.globber = g }
}

// WithFileDep controls whether the assembled task declares the mapping's
// sources as file dependencies. Defaults to true for every variant except
// Identity, where source and target are the same file and a dependency
// would self-reference.
func WithFileDep(enabled bool) Option {
	return func(c *config) {
		c.fileDep = enabled
		c.fileDepSet = true
	}
}

// WithAllowEmptyMap permits task assembly when the mapping has no pairs.
// The assembled task then performs no work and reports success, unless
// explicit overrides are supplied.
func WithAllowEmptyMap() Option {
	return func(c *config) { c.allowEmptyMap = true }
}

// WithFollowSymlinks controls whether symlinks to regular files count as
// sources during glob resolution. Defaults to true.
func WithFollowSymlinks(follow bool) Option {
	return func(c *config) {
		c.followSymlinks = follow
		c.followSet = true
	}
}

// WithSearch supplies an explicit regular expression to use instead of
// glob translation of the source pattern. Glob mappers only; required
// when a glob mapper's source is an explicit path sequence.
func WithSearch(expr string) Option {
	return func(c *config) { c.search = expr }
}

// WithFlags adjusts how the search expression is compiled. Regex mappers
// only.
func WithFlags(flags Flags) Option {
	return func(c *config) { c.flags = flags }
}

// WithKeepNonmatching keeps sources that do not match the search
// expression in the mapping, with target equal to source, instead of
// dropping them. Regex mappers only.
func WithKeepNonmatching() Option {
	return func(c *config) { c.keepNonmatching = true }
}
