// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns OpenAPI schema objects into simplified JSON Schema
// (draft-07) documents. Conversion is a pure copy of a fixed set of keys;
// references are noted, never resolved.
package convert

import (
	"fmt"

	"github.com/pdiddy/schema-extractor/internal/document"
)

// DraftSchemaURI is the $schema value written on every converted schema.
const DraftSchemaURI = "http://json-schema.org/draft-07/schema#"

// Keys copied verbatim from a property, in output order. A converted
// items entry sits between the two groups.
var (
	leadingPropertyKeys  = []string{"type", "description", "example"}
	trailingPropertyKeys = []string{"format", "enum"}
)

// Schema converts an OpenAPI schema object. The result always carries
// $schema and type (default "object"); title, description, properties,
// and required appear only when the input has them. The input is not
// modified.
func Schema(openapi *document.Map) *document.Map {
	out := document.NewMap()
	out.Set("$schema", DraftSchemaURI)
	if t, ok := openapi.Get("type"); ok {
		out.Set("type", t)
	} else {
		out.Set("type", "object")
	}

	copyKeys(out, openapi, "title", "description")

	if v, ok := openapi.Get("properties"); ok {
		props := document.NewMap()
		if in, ok := v.(*document.Map); ok {
			for _, name := range in.Keys() {
				p, _ := in.Get(name)
				props.Set(name, Property(asMap(p)))
			}
		}
		out.Set("properties", props)
	}

	copyKeys(out, openapi, "required")
	return out
}

// Property converts a single property definition.
//
// A property carrying $ref becomes {type: object, description: "Reference: <ref>"}
// and every other key is dropped. Otherwise type, description, example,
// format, and enum are copied when present, and an array's items are
// converted recursively.
func Property(prop *document.Map) *document.Map {
	if ref, ok := prop.Get("$ref"); ok {
		out := document.NewMap()
		out.Set("type", "object")
		out.Set("description", fmt.Sprintf("Reference: %v", ref))
		return out
	}

	out := document.NewMap()
	copyKeys(out, prop, leadingPropertyKeys...)

	if t, _ := prop.String("type"); t == "array" {
		if items, ok := prop.Get("items"); ok {
			out.Set("items", Property(asMap(items)))
		}
	}

	copyKeys(out, prop, trailingPropertyKeys...)
	return out
}

func copyKeys(dst, src *document.Map, keys ...string) {
	for _, k := range keys {
		if v, ok := src.Get(k); ok {
			dst.Set(k, v)
		}
	}
}

// asMap treats non-mapping property values as empty property objects.
func asMap(v any) *document.Map {
	if m, ok := v.(*document.Map); ok && m != nil {
		return m
	}
	return document.NewMap()
}
