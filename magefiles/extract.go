//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Extract builds the CLI and extracts the default schema set from
// gotosocial/docs/api/swagger.yaml into tests/schemas.
func Extract() error {
	mg.Deps(Build, Init)
	return sh.RunV(filepath.Join(binDir, binName), "extract", "--output-dir", schemaDir)
}

// List prints the definitions available in the swagger document.
func List() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "list")
}
