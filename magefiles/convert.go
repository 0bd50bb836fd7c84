//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Convert converts every testdata/*.html file into testdata/out/ with the
// built binary. Existing outputs are skipped.
func Convert() error {
	mg.Deps(Build)
	files, err := filepath.Glob(filepath.Join("testdata", "*.html"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("[convert] no testdata/*.html files")
		return nil
	}
	args := append([]string{"convert", "--out-dir", filepath.Join("testdata", "out")}, files...)
	return sh.RunV(filepath.Join(binDir, binName), args...)
}

// Serve builds and runs the HTTP conversion endpoint.
func Serve() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "serve")
}
