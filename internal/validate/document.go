// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/archdoc/internal/schema"
	"github.com/pdiddy/archdoc/pkg/types"
)

// ParseTimestamp parses a document timestamp. The pipeline writes RFC3339.
func ParseTimestamp(ts string) (time.Time, error) {
	return time.Parse(time.RFC3339, ts)
}

// checkEnvelope validates the metadata envelope shared by every document
// kind. dir is the directory the document came from, used to probe
// referenced files on disk; an empty dir (stdin input) skips those probes.
func checkEnvelope(rep *Report, meta types.Metadata, kind schema.Kind, dir string) {
	spec, _ := schema.Spec(kind)

	childTime, tsOK := checkTimestampField(rep, "metadata.timestamp", meta.Timestamp)

	switch {
	case meta.SchemaVersion == "":
		rep.Warnf("metadata.schema_version", "missing; assuming schema %s", schema.Version)
	default:
		ok, err := schema.IsCompatible(meta.SchemaVersion)
		if err != nil {
			rep.Errorf("metadata.schema_version", "%q is not a semantic version", meta.SchemaVersion)
		} else if !ok {
			rep.Errorf("metadata.schema_version", "%q is not compatible with schema %s", meta.SchemaVersion, schema.Version)
		}
	}

	if meta.Parent == nil {
		if spec.ParentRequired {
			rep.Errorf("metadata.parent", "required for %s documents; expected a reference to %s", kind, spec.Parent)
		}
		return
	}

	parent := meta.Parent
	if parent.File == "" {
		rep.Errorf("metadata.parent.file", "required field is missing")
	} else if dir != "" {
		if _, err := os.Stat(filepath.Join(dir, parent.File)); err != nil {
			rep.Warnf("metadata.parent.file", "%q does not exist on disk", parent.File)
		}
	}

	parentTime, parentOK := checkTimestampField(rep, "metadata.parent.timestamp", parent.Timestamp)
	if tsOK && parentOK && !childTime.After(parentTime) {
		rep.Errorf("metadata.timestamp",
			"%s is not after parent timestamp %s; each stage must be regenerated after its parent",
			meta.Timestamp, parent.Timestamp)
	}
}

// checkTimestampField validates one required RFC3339 field and returns the
// parsed value when usable.
func checkTimestampField(rep *Report, path, ts string) (time.Time, bool) {
	if ts == "" {
		rep.Errorf(path, "required field is missing")
		return time.Time{}, false
	}
	parsed, err := ParseTimestamp(ts)
	if err != nil {
		rep.Errorf(path, "%q is not an RFC3339 timestamp", ts)
		return time.Time{}, false
	}
	return parsed, true
}

// CheckOrder validates that child was generated strictly after parent, by
// their declared envelope timestamps. It is the standalone timestamp check
// between two already-loaded envelopes.
func CheckOrder(rep *Report, childName string, child types.Metadata, parentName string, parent types.Metadata) {
	childTime, childOK := checkNamedTimestamp(rep, childName, child.Timestamp)
	parentTime, parentOK := checkNamedTimestamp(rep, parentName, parent.Timestamp)
	if !childOK || !parentOK {
		return
	}
	if !childTime.After(parentTime) {
		rep.Errorf(childName,
			"timestamp %s is not after %s timestamp %s", child.Timestamp, parentName, parent.Timestamp)
	}
}

func checkNamedTimestamp(rep *Report, name, ts string) (time.Time, bool) {
	if ts == "" {
		rep.Errorf(name, "metadata.timestamp is missing")
		return time.Time{}, false
	}
	parsed, err := ParseTimestamp(ts)
	if err != nil {
		rep.Errorf(name, "metadata.timestamp %q is not an RFC3339 timestamp", ts)
		return time.Time{}, false
	}
	return parsed, true
}
