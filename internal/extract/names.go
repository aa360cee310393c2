// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"
	"unicode"
)

// OutputName converts a camel-case schema name to the snake_case file stem:
// every upper-case letter becomes "_" plus its lower-case form, and leading
// underscores are trimmed ("accountRelationship" -> "account_relationship").
func OutputName(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	for _, r := range name {
		if unicode.IsUpper(r) {
			b.WriteByte('_')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimLeft(b.String(), "_")
}
