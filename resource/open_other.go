//go:build !windows && !darwin && !dragonfly && !freebsd && !linux && !netbsd && !openbsd
// +build !windows,!darwin,!dragonfly,!freebsd,!linux,!netbsd,!openbsd

package resource

import (
	"os"
)

func openExclusive(path string, mode os.FileMode) (*os.File, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
}
