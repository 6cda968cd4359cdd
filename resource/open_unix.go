//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd
// +build darwin dragonfly freebsd linux netbsd openbsd

package resource

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

var lockFile = func(file *os.File) error {
	return unix.Flock(int(file.Fd()), unix.LOCK_EX)
}

// openExclusive opens path for writing and truncates it only after an exclusive
// flock is held, so two extractors writing the same path do not interleave.
// A file created by this call is removed again if locking or truncating fails.
func openExclusive(path string, mode os.FileMode) (*os.File, error) {
	created := true
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if errors.Is(err, os.ErrExist) {
		created = false
		file, err = os.OpenFile(path, os.O_WRONLY, mode)
	}
	if err != nil {
		return nil, err
	}

	fail := func(err error) (*os.File, error) {
		_ = file.Close()
		if created {
			_ = os.Remove(path)
		}
		return nil, err
	}

	err = lockFile(file)
	if err != nil {
		return fail(fmt.Errorf("lock %s: %w", path, err))
	}
	err = file.Truncate(0)
	if err != nil {
		return fail(fmt.Errorf("truncate %s: %w", path, err))
	}

	return file, nil
}
