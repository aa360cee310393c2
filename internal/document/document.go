// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package document loads Swagger/OpenAPI definition files into ordered,
// generic key/value trees and writes such trees back out as indented JSON.
// YAML and JSON sources are both accepted; JSON is read as YAML.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// DefinitionsKey is the top-level key holding the definitions table.
const DefinitionsKey = "definitions"

// ErrNotMapping is returned when a document's root is not a mapping.
var ErrNotMapping = errors.New("document root is not a mapping")

// Load reads and parses the document at path.
func Load(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes YAML (or JSON) bytes into an ordered Map.
func Parse(data []byte) (*Map, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, ErrNotMapping
	}
	d := &decoder{anchors: make(map[*yaml.Node]any)}
	v, err := d.decode(root.Content[0])
	if err != nil {
		return nil, err
	}
	m, ok := v.(*Map)
	if !ok || m == nil {
		return nil, ErrNotMapping
	}
	return m, nil
}

// Definitions returns the definitions table of doc. A missing or
// non-mapping definitions key yields an empty table.
func Definitions(doc *Map) *Map {
	if defs, ok := doc.Map(DefinitionsKey); ok {
		return defs
	}
	return NewMap()
}

// EncodeJSON renders v as JSON with 2-space indentation and a trailing
// newline. HTML characters are left unescaped.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v, "  ", 0); err != nil {
		return nil, fmt.Errorf("encoding JSON: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// decoder turns yaml.Node trees into Map values. Anchored nodes are
// decoded once and every alias to them shares the result, so nested
// aliases cost linear rather than exponential work.
type decoder struct {
	anchors map[*yaml.Node]any
}

func (d *decoder) decode(n *yaml.Node) (any, error) {
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n.Anchor != "" {
		if v, ok := d.anchors[n]; ok {
			return v, nil
		}
	}

	var (
		v   any
		err error
	)
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) > 0 {
			v, err = d.decode(n.Content[0])
		}
	case yaml.MappingNode:
		v, err = d.decodeMapping(n)
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			item, err := d.decode(c)
			if err != nil {
				return nil, err
			}
			out = append(out, item)
		}
		v = out
	case yaml.ScalarNode:
		v, err = decodeScalar(n)
	default:
		err = fmt.Errorf("line %d: unsupported node kind %v", n.Line, n.Kind)
	}
	if err != nil {
		return nil, err
	}
	if n.Anchor != "" {
		d.anchors[n] = v
	}
	return v, nil
}

// decodeMapping applies merge keys ("<<") first so that explicit keys in
// the same mapping take precedence over merged ones.
func (d *decoder) decodeMapping(n *yaml.Node) (*Map, error) {
	m := NewMap()
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].ShortTag() != "!!merge" {
			continue
		}
		if err := d.merge(m, n.Content[i+1]); err != nil {
			return nil, err
		}
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.ShortTag() == "!!merge" {
			continue
		}
		val, err := d.decode(v)
		if err != nil {
			return nil, err
		}
		m.Set(k.Value, val)
	}
	return m, nil
}

func (d *decoder) merge(dst *Map, n *yaml.Node) error {
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	switch n.Kind {
	case yaml.MappingNode:
		v, err := d.decode(n)
		if err != nil {
			return err
		}
		src := v.(*Map)
		for _, k := range src.keys {
			if !dst.Has(k) {
				dst.Set(k, src.values[k])
			}
		}
		return nil
	case yaml.SequenceNode:
		for _, c := range n.Content {
			if err := d.merge(dst, c); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("line %d: merge value must be a mapping", n.Line)
}

func decodeScalar(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return b, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return i, nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return n.Value, nil
		}
		return f, nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return f, nil
	}
	// Strings, timestamps, and binary stay as their literal text.
	return n.Value, nil
}
