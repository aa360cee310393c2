// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ExtractedSchema describes one schema file written by an extraction run.
type ExtractedSchema struct {
	// Name is the definition name as it appears in the source document
	// (e.g. "accountRelationship").
	Name string `json:"name" yaml:"name"`

	// OutputPath is the file the converted schema was written to.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// PropertyCount is the number of top-level properties in the schema.
	PropertyCount int `json:"property_count" yaml:"property_count"`

	// SHA256 is the hex digest of the written file.
	SHA256 string `json:"sha256" yaml:"sha256"`
}

// ExtractionRun summarizes one invocation of the extractor.
type ExtractionRun struct {
	// ID is assigned by the manifest store; zero before recording.
	ID int64 `json:"id" yaml:"id"`

	// Source is the definitions document that was read.
	Source string `json:"source" yaml:"source"`

	// OutputDir is the directory schema files were written to.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// StartedAt is when the run began (UTC).
	StartedAt time.Time `json:"started_at" yaml:"started_at"`

	// Schemas lists the files written, in extraction order.
	Schemas []ExtractedSchema `json:"schemas" yaml:"schemas"`

	// Missing lists requested names absent from the definitions table.
	Missing []string `json:"missing,omitempty" yaml:"missing,omitempty"`
}
