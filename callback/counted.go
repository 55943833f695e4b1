package callback

import (
	"github.com/spf13/afero"

	"go.trai.ch/fmap/mapper"
)

// CountedFunc is a pair callback that additionally receives the number
// of invocations completed before this one.
type CountedFunc func(source, target string, count int) error

// CountedFileFunc is a FileFunc that additionally receives the number of
// invocations completed before this one.
type CountedFileFunc func(src, dst afero.File, count int) error

// Counted wraps fn with a running invocation count. The count starts at
// zero and increments strictly after a successful return, so a failing
// invocation does not advance it and a retry observes the same count.
func Counted(fn CountedFunc) mapper.Callback {
	count := 0
	return func(source, target string) error {
		if err := fn(source, target, count); err != nil {
			return err
		}
		count++
		return nil
	}
}

// FileCounted is Counted for handle-based callbacks; nest it inside
// Files or Merging.
func FileCounted(fn CountedFileFunc) FileFunc {
	count := 0
	return func(src, dst afero.File) error {
		if err := fn(src, dst, count); err != nil {
			return err
		}
		count++
		return nil
	}
}
