package server

import (
	"embed"
	"io/fs"
)

//go:embed web/templates web/static
var webFS embed.FS

func staticFS() fs.FS {
	sub, err := fs.Sub(webFS, "web/static")
	if err != nil {
		panic(err)
	}
	return sub
}
