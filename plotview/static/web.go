// Package static includes the static plot page.
package static

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed dist/*
var staticAssets embed.FS

// GetAssets returns the static assets of the plot page.
func GetAssets() http.FileSystem {
	assets, err := fs.Sub(staticAssets, "dist")
	if err != nil {
		panic(err)
	}

	return http.FS(assets)
}
