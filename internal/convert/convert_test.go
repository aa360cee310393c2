// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/schema-extractor/internal/document"
)

// parse is a test helper that builds a Map from YAML source.
func parse(t *testing.T, src string) *document.Map {
	t.Helper()
	m, err := document.Parse([]byte(src))
	require.NoError(t, err)
	return m
}

func encode(t *testing.T, m *document.Map) string {
	t.Helper()
	data, err := document.EncodeJSON(m)
	require.NoError(t, err)
	return string(data)
}

func TestProperty_Ref(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "bare ref", src: "$ref: '#/definitions/account'\n"},
		{name: "ref with siblings", src: "$ref: '#/definitions/account'\ntype: string\ndescription: ignored\nexample: x\nformat: uri\nenum: [a]\n"},
		{name: "ref on array", src: "type: array\nitems: {type: string}\n$ref: '#/definitions/account'\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Property(parse(t, tt.src))
			assert.JSONEq(t,
				`{"type": "object", "description": "Reference: #/definitions/account"}`,
				encode(t, got))
			assert.Equal(t, []string{"type", "description"}, got.Keys())
		})
	}
}

func TestProperty_CopiesKnownKeys(t *testing.T) {
	src := `type: string
description: The account's visibility.
example: public
format: string
enum:
  - public
  - unlisted
  - private
x-go-name: Visibility
readOnly: true
`
	got := Property(parse(t, src))
	assert.Equal(t, []string{"type", "description", "example", "format", "enum"}, got.Keys())
	assert.JSONEq(t, `{
		"type": "string",
		"description": "The account's visibility.",
		"example": "public",
		"format": "string",
		"enum": ["public", "unlisted", "private"]
	}`, encode(t, got))
}

func TestProperty_AbsentKeysStayAbsent(t *testing.T) {
	got := Property(parse(t, "description: only a description\n"))
	assert.Equal(t, []string{"description"}, got.Keys())

	empty := Property(document.NewMap())
	assert.Equal(t, 0, empty.Len())
}

func TestProperty_ItemsOnlyForArrays(t *testing.T) {
	got := Property(parse(t, "type: object\nitems:\n  type: string\n"))
	assert.False(t, got.Has("items"))

	got = Property(parse(t, "type: array\n"))
	assert.Equal(t, []string{"type"}, got.Keys())
}

func TestProperty_NestedArrays(t *testing.T) {
	src := `type: array
description: grid
items:
  type: array
  items:
    type: array
    items:
      type: string
      format: uri
      x-ignored: true
format: matrix
`
	got := Property(parse(t, src))
	assert.Equal(t, []string{"type", "description", "items", "format"}, got.Keys())
	assert.JSONEq(t, `{
		"type": "array",
		"description": "grid",
		"items": {
			"type": "array",
			"items": {
				"type": "array",
				"items": {"type": "string", "format": "uri"}
			}
		},
		"format": "matrix"
	}`, encode(t, got))
}

func TestProperty_ArrayOfRefs(t *testing.T) {
	got := Property(parse(t, "type: array\nitems:\n  $ref: '#/definitions/emoji'\n"))
	assert.JSONEq(t, `{
		"type": "array",
		"items": {"type": "object", "description": "Reference: #/definitions/emoji"}
	}`, encode(t, got))
}

func TestProperty_DoesNotMutateInput(t *testing.T) {
	in := parse(t, "type: array\nitems:\n  type: string\nx-extra: 1\n")
	before := encode(t, in)

	out := Property(in)
	out.Set("type", "changed")

	assert.Equal(t, before, encode(t, in))
}

// TestProperty_RandomInputs checks that, for generated property objects
// without $ref, each recognised key is copied unchanged and nothing else
// is added.
func TestProperty_RandomInputs(t *testing.T) {
	faker := gofakeit.New(20261016)
	recognised := []string{"type", "description", "example", "format", "enum"}
	types := []string{"string", "integer", "number", "boolean", "object"}
	candidates := append([]string{"x-go-name", "title", "default"}, recognised...)

	for i := 0; i < 200; i++ {
		in := document.NewMap()
		for _, k := range candidates {
			if !faker.Bool() {
				continue
			}
			switch k {
			case "type":
				in.Set(k, faker.RandomString(types))
			case "enum":
				in.Set(k, []any{faker.Word(), faker.Word()})
			case "example":
				in.Set(k, int64(faker.Number(0, 1000)))
			default:
				in.Set(k, faker.Sentence(4))
			}
		}

		out := Property(in)
		for _, k := range recognised {
			want, ok := in.Get(k)
			got, gotOK := out.Get(k)
			assert.Equal(t, ok, gotOK, "iteration %d key %s", i, k)
			if ok {
				assert.Equal(t, want, got, "iteration %d key %s", i, k)
			}
		}
		for _, k := range out.Keys() {
			assert.Contains(t, recognised, k, "iteration %d", i)
		}
	}
}

func TestProperty_RandomRefs(t *testing.T) {
	faker := gofakeit.New(7)
	for i := 0; i < 50; i++ {
		ref := "#/definitions/" + faker.Word()
		in := document.NewMap()
		in.Set("type", faker.Word())
		in.Set("$ref", ref)
		in.Set("description", faker.Sentence(3))

		out := Property(in)
		assert.Equal(t, []string{"type", "description"}, out.Keys())
		desc, _ := out.String("description")
		assert.Equal(t, fmt.Sprintf("Reference: %s", ref), desc)
		typ, _ := out.String("type")
		assert.Equal(t, "object", typ)
	}
}

func TestSchema(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		want     string
		wantKeys []string
	}{
		{
			name:     "minimal object",
			src:      "type: object\nproperties:\n  id:\n    type: string\n",
			want:     `{"$schema": "http://json-schema.org/draft-07/schema#", "type": "object", "properties": {"id": {"type": "string"}}}`,
			wantKeys: []string{"$schema", "type", "properties"},
		},
		{
			name:     "type defaults to object",
			src:      "description: no type here\n",
			want:     `{"$schema": "http://json-schema.org/draft-07/schema#", "type": "object", "description": "no type here"}`,
			wantKeys: []string{"$schema", "type", "description"},
		},
		{
			name:     "non-object type kept",
			src:      "type: string\n",
			want:     `{"$schema": "http://json-schema.org/draft-07/schema#", "type": "string"}`,
			wantKeys: []string{"$schema", "type"},
		},
		{
			name: "all recognised keys",
			src: `required:
  - id
  - ghost
properties:
  id:
    type: string
title: Account
x-go-package: example.org/model
type: object
description: An account.
`,
			want: `{
				"$schema": "http://json-schema.org/draft-07/schema#",
				"type": "object",
				"title": "Account",
				"description": "An account.",
				"properties": {"id": {"type": "string"}},
				"required": ["id", "ghost"]
			}`,
			wantKeys: []string{"$schema", "type", "title", "description", "properties", "required"},
		},
		{
			name:     "empty properties",
			src:      "properties: {}\n",
			want:     `{"$schema": "http://json-schema.org/draft-07/schema#", "type": "object", "properties": {}}`,
			wantKeys: []string{"$schema", "type", "properties"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Schema(parse(t, tt.src))
			assert.JSONEq(t, tt.want, encode(t, got))
			assert.Equal(t, tt.wantKeys, got.Keys())
		})
	}
}

func TestSchema_PropertyOrder(t *testing.T) {
	src := `type: object
properties:
  username: {type: string}
  acct: {type: string}
  display_name: {type: string}
  locked: {type: boolean}
  avatar: {type: string}
  emojis:
    type: array
    items:
      $ref: '#/definitions/emoji'
`
	in := parse(t, src)
	got := Schema(in)

	inProps, _ := in.Map("properties")
	outProps, ok := got.Map("properties")
	require.True(t, ok)
	assert.Equal(t, inProps.Keys(), outProps.Keys())
}

func TestSchema_RandomPropertyNames(t *testing.T) {
	faker := gofakeit.New(42)
	for i := 0; i < 50; i++ {
		in := document.NewMap()
		props := document.NewMap()
		n := faker.Number(0, 12)
		for j := 0; j < n; j++ {
			p := document.NewMap()
			p.Set("type", "string")
			props.Set(fmt.Sprintf("%s_%d", faker.LetterN(6), j), p)
		}
		in.Set("properties", props)

		out := Schema(in)
		outProps, ok := out.Map("properties")
		require.True(t, ok)
		assert.Equal(t, props.Keys(), outProps.Keys())

		uri, _ := out.String("$schema")
		assert.Equal(t, DraftSchemaURI, uri)
	}
}
