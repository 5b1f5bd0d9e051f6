package assets

import (
	"embed"
	"io/fs"
)

//go:embed ships/*.yaml
var Ships embed.FS

//go:embed scripts/*.tengo
var scripts embed.FS

// Scripts returns the chapter scripts rooted at the scripts directory.
func Scripts() fs.FS {
	sub, err := fs.Sub(scripts, "scripts")
	if err != nil {
		panic(err)
	}
	return sub
}
