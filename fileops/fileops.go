// Package fileops provides ready-made callbacks for common file
// operations. The mapfile loader binds these to task operations, and they
// are useful directly when building mappers in code.
package fileops

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"go.trai.ch/zerr"

	"go.trai.ch/fmap/callback"
	"go.trai.ch/fmap/mapper"
)

// Copy returns a callback that copies each source file to its target.
// Parent directories are created and existing targets are truncated.
func Copy(fsys afero.Fs) mapper.Callback {
	return callback.Files(copyContents, callback.WithFs(fsys))
}

// Move returns a callback that copies each source file to its target and
// removes the source afterwards. The copy and the remove are separate
// steps, so a failed remove leaves the target in place.
func Move(fsys afero.Fs) mapper.Callback {
	cp := Copy(fsys)
	return func(source, target string) error {
		if err := cp(source, target); err != nil {
			return err
		}
		if err := fsys.Remove(source); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to remove moved source"), "source", source)
		}
		return nil
	}
}

// Concat returns a callback that appends each source file to its target.
// The first write to a target truncates it, so re-running a task rebuilds
// the merged file instead of growing it.
func Concat(fsys afero.Fs) mapper.Callback {
	return callback.Merging(copyContents, callback.WithFs(fsys))
}

// Touch returns a callback that creates the target if it is missing and
// refreshes its timestamps. The source is ignored, which keeps the
// operation usable with identity mappings over files that may not exist
// yet.
func Touch(fsys afero.Fs) mapper.Callback {
	return func(_, target string) error {
		if dir := filepath.Dir(target); dir != "." && dir != string(filepath.Separator) {
			if err := fsys.MkdirAll(dir, 0o755); err != nil {
				return zerr.With(zerr.Wrap(err, "failed to create target directory"), "target", target)
			}
		}
		file, err := fsys.OpenFile(target, os.O_WRONLY|os.O_CREATE, 0o644)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to touch target"), "target", target)
		}
		if err := file.Close(); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to touch target"), "target", target)
		}
		now := time.Now()
		if err := fsys.Chtimes(target, now, now); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to touch target"), "target", target)
		}
		return nil
	}
}

func copyContents(src, dst afero.File) error {
	_, err := io.Copy(dst, src)
	return err
}
