// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls named schema definitions out of a Swagger/OpenAPI
// document and writes each one as a JSON Schema file.
package extract

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/schema-extractor/internal/convert"
	"github.com/pdiddy/schema-extractor/internal/document"
	"github.com/pdiddy/schema-extractor/pkg/types"
)

// DefaultSchemaNames lists the Mastodon API object definitions extracted
// when no names are given.
var DefaultSchemaNames = []string{
	"account",
	"status",
	"instance",
	"accountRelationship",
	"poll",
	"notification",
	"list",
	"filter",
	"filterV2",
	"conversation",
	"scheduledStatus",
	"mediaAttachment",
	"emoji",
	"tag",
	"card",
	"application",
}

// ErrSourceNotFound is returned by CheckSource when the definitions
// document does not exist.
var ErrSourceNotFound = errors.New("source document not found")

// Summary holds the outcome of an extraction run.
type Summary struct {
	Extracted []types.ExtractedSchema
	Missing   []string
}

// Count returns the number of schema files written.
func (s Summary) Count() int {
	return len(s.Extracted)
}

// HasMissing reports whether any requested name was absent.
func (s Summary) HasMissing() bool {
	return len(s.Missing) > 0
}

// CheckSource verifies that the definitions document exists.
func CheckSource(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w at %s", ErrSourceNotFound, path)
		}
		return fmt.Errorf("checking source document %s: %w", path, err)
	}
	return nil
}

// Run extracts the schemas selected by cfg. With cfg.All every definition
// is extracted in document order; otherwise cfg.Schemas, or
// DefaultSchemaNames when that is empty.
func Run(cfg types.ExtractionConfig, w io.Writer, log logrus.FieldLogger) (Summary, error) {
	doc, err := document.Load(cfg.SwaggerPath)
	if err != nil {
		return Summary{}, err
	}

	names := cfg.Schemas
	if cfg.All {
		names = AllSchemaNames(doc)
	}
	return extract(doc, cfg.SwaggerPath, cfg.OutputDir, names, w, log)
}

// ExtractSchemas loads the document at sourcePath once and writes
// <outputDir>/<snake_name>.json for every name found in its definitions
// table, in the given order. Names that are not defined are logged as
// warnings and skipped. An empty names list means DefaultSchemaNames.
//
// Read, parse, and write failures abort the run; files already written
// are left in place.
func ExtractSchemas(sourcePath, outputDir string, names []string, w io.Writer, log logrus.FieldLogger) (Summary, error) {
	doc, err := document.Load(sourcePath)
	if err != nil {
		return Summary{}, err
	}
	return extract(doc, sourcePath, outputDir, names, w, log)
}

// AllSchemaNames returns every definition name in doc, in document order.
func AllSchemaNames(doc *document.Map) []string {
	return document.Definitions(doc).Keys()
}

func extract(doc *document.Map, sourcePath, outputDir string, names []string, w io.Writer, log logrus.FieldLogger) (Summary, error) {
	if len(names) == 0 {
		names = DefaultSchemaNames
	}

	defs := document.Definitions(doc)
	log.WithFields(logrus.Fields{
		"source":      sourcePath,
		"definitions": defs.Len(),
		"requested":   len(names),
	}).Debug("loaded definitions")

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("creating output directory: %w", err)
	}

	var summary Summary
	for _, name := range names {
		v, ok := defs.Get(name)
		if !ok {
			log.WithField("schema", name).Warnf("✗ Schema '%s' not found in %s", name, filepath.Base(sourcePath))
			summary.Missing = append(summary.Missing, name)
			continue
		}
		def, ok := v.(*document.Map)
		if !ok || def == nil {
			return summary, fmt.Errorf("definition %q is not a mapping", name)
		}

		entry, err := writeSchema(outputDir, name, def)
		if err != nil {
			return summary, err
		}

		fmt.Fprintf(w, "✓ Extracted %s -> %s\n", name, entry.OutputPath)
		summary.Extracted = append(summary.Extracted, entry)
	}

	fmt.Fprintf(w, "\nExtracted %d schemas to %s\n", summary.Count(), outputDir)
	return summary, nil
}

func writeSchema(outputDir, name string, def *document.Map) (types.ExtractedSchema, error) {
	schema := convert.Schema(def)
	data, err := document.EncodeJSON(schema)
	if err != nil {
		return types.ExtractedSchema{}, fmt.Errorf("encoding %s: %w", name, err)
	}

	path := filepath.Join(outputDir, OutputName(name)+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return types.ExtractedSchema{}, fmt.Errorf("writing %s: %w", path, err)
	}

	props, _ := schema.Map("properties")
	sum := sha256.Sum256(data)
	return types.ExtractedSchema{
		Name:          name,
		OutputPath:    path,
		PropertyCount: props.Len(),
		SHA256:        hex.EncodeToString(sum[:]),
	}, nil
}
