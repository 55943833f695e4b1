package mapper

import (
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"go.trai.ch/zerr"
)

// Globber resolves a glob pattern to the matching files below a base
// directory. Implementations choose the traversal order; mappers pass the
// result through without re-sorting, so a deterministic Globber yields
// deterministic mappings.
type Globber interface {
	Glob(baseDir, pattern string) ([]string, error)
}

// NewGlobber returns the default Globber. It walks the given filesystem
// from the base directory and matches every visited file against the
// pattern, so `**` recursion works on any afero filesystem. When
// followSymlinks is false, symlinked files are skipped; otherwise a
// symlink counts as a match only if it points at a regular file.
func NewGlobber(fsys afero.Fs, followSymlinks bool) Globber {
	return &fsGlobber{fs: fsys, followSymlinks: followSymlinks}
}

type fsGlobber struct {
	fs             afero.Fs
	followSymlinks bool
}

// Glob returns the files under baseDir whose base-relative path matches
// the pattern, in walk order. A missing base directory matches nothing.
func (g *fsGlobber) Glob(baseDir, pattern string) ([]string, error) {
	if _, err := g.fs.Stat(baseDir); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to stat base directory"), "dir", baseDir)
	}

	var matches []string
	err := afero.Walk(g.fs, baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if info.Mode()&os.ModeSymlink != 0 {
			if !g.followSymlinks {
				return nil
			}
			resolved, err := g.fs.Stat(path)
			if err != nil || !resolved.Mode().IsRegular() {
				// Broken link, or a link to something that is not a file.
				return nil
			}
		}
		rel, err := filepath.Rel(baseDir, path)
		if err != nil {
			return err
		}
		ok, err := doublestar.Match(pattern, filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		if ok {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to glob path"), "pattern", pattern)
	}
	return matches, nil
}
