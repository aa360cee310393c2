// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Default locations used when neither a flag nor the config file sets them.
const (
	DefaultSwaggerPath = "gotosocial/docs/api/swagger.yaml"
	DefaultOutputDir   = "tests/schemas"
)

// ExtractionConfig holds settings for one extraction run.
type ExtractionConfig struct {
	// SwaggerPath is the location of the source definitions document.
	SwaggerPath string `json:"swagger" yaml:"swagger"`

	// OutputDir receives one <snake_name>.json file per extracted schema.
	// It is created, with parents, when missing.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Schemas lists the definition names to extract, in order. Empty means
	// the built-in default list.
	Schemas []string `json:"schemas,omitempty" yaml:"schemas,omitempty"`

	// All extracts every definition in document order and overrides Schemas.
	All bool `json:"all,omitempty" yaml:"all,omitempty"`
}

// ManifestConfig holds settings for the run history database.
type ManifestConfig struct {
	// Path is the SQLite database file. Empty disables the manifest.
	Path string `json:"manifest,omitempty" yaml:"manifest,omitempty"`

	// MaxRuns is the default number of runs listed by history (default 20).
	MaxRuns int `json:"max_runs" yaml:"max_runs"`
}

// Enabled reports whether a manifest database is configured.
func (c ManifestConfig) Enabled() bool {
	return c.Path != ""
}
