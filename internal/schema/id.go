// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package schema

import "regexp"

// idPattern is the kebab-case rule shared by every identifier in the
// pipeline: lowercase alphanumeric segments joined by single hyphens,
// starting with a letter (e.g. "order-service", "obs-3fa9c2d1").
var idPattern = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

// ValidID reports whether id satisfies the kebab-case identifier rule.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}
