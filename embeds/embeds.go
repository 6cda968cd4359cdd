// Package embeds holds the resources compiled into the resextract binary.
package embeds

import (
	"embed"

	"github.com/anywherelan/resextract/resource"
)

const assetsRoot = "assets"

//go:embed assets
var assets embed.FS

var (
	DeadbeefRef = resource.NewRef("rcdata", "deadbeef.bin")
	ReadmeRef   = resource.NewRef("rcdata", "readme.txt")
)

// Module returns the resources embedded into the running executable.
func Module() *resource.FSModule {
	return resource.NewFSModule(assets, assetsRoot)
}
