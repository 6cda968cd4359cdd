package config

import (
	"runtime"
)

const DevVersion = "dev"

var Version = DevVersion

func IsDevVersion() bool {
	return Version == DevVersion
}

// BuildInfo looks like resextract/linux-amd64/v0.1.0
func BuildInfo() string {
	return AppDataDirectory + "/" + runtime.GOOS + "-" + runtime.GOARCH + "/" + Version
}
