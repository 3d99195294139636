// Package demo provides the embedded web assets for the statekit demo
// binary.
//
// This package uses Go's embed directive to include the demo counter page
// at compile time, enabling single-binary deployment without external
// asset files. The page is served by the sse package at the root path
// ("/"). Users of the statekit library should not need to interact with
// this package directly.
package demo

import (
	"embed"
	"io/fs"
)

// assets is the embedded filesystem containing the demo page.
//
//go:embed assets/*
var assets embed.FS

// Site returns the demo assets rooted at the directory served at "/".
func Site() fs.FS {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		// embed guarantees the directory exists; this is unreachable
		panic(err)
	}
	return sub
}
