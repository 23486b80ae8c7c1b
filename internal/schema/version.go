// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package schema

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Version is the schema release this build enforces. Documents declare the
// release they were written against in metadata.schema_version.
const Version = "1.0.0"

// IsCompatible reports whether a document written against declared can be
// validated by this build. Compatibility follows a caret constraint on
// Version: same major release, equal or lower minor/patch boundaries per
// semver rules. An unparseable declared version is an error, not a mismatch.
func IsCompatible(declared string) (bool, error) {
	constraint, err := semver.NewConstraint("^" + Version)
	if err != nil {
		return false, fmt.Errorf("invalid schema version %q: %w", Version, err)
	}
	v, err := semver.NewVersion(declared)
	if err != nil {
		return false, fmt.Errorf("invalid declared version %q: %w", declared, err)
	}
	return constraint.Check(v), nil
}
