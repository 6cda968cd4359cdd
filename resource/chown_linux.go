//go:build linux
// +build linux

package resource

import (
	"fmt"
	"os"
	"strconv"
)

const (
	sudoUIDEnvKey = "SUDO_UID"
	sudoGIDEnvKey = "SUDO_GID"
)

// chownToInvokingUser gives files extracted under sudo back to the user who ran it.
func chownToInvokingUser(path string) error {
	uid, gid, ok, err := sudoOwner(os.Geteuid(), os.Getenv(sudoUIDEnvKey), os.Getenv(sudoGIDEnvKey))
	if err != nil || !ok {
		return err
	}

	return os.Chown(path, uid, gid)
}

// sudoOwner returns the owner for extracted files. ok is false when no chown is needed.
func sudoOwner(euid int, uidStr, gidStr string) (uid, gid int, ok bool, err error) {
	if euid != 0 || uidStr == "" {
		return 0, 0, false, nil
	}
	uid, err = strconv.Atoi(uidStr)
	if err != nil {
		return 0, 0, false, fmt.Errorf("parse %s: %w", sudoUIDEnvKey, err)
	}
	gid = uid
	if gidStr != "" {
		gid, err = strconv.Atoi(gidStr)
		if err != nil {
			return 0, 0, false, fmt.Errorf("parse %s: %w", sudoGIDEnvKey, err)
		}
	}

	return uid, gid, true, nil
}
