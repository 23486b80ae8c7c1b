// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import (
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/archdoc/internal/schema"
	"github.com/pdiddy/archdoc/pkg/types"
)

// ValidateLibDocs checks a library-documentation knowledge file. dir is the
// directory the file came from; an empty dir skips source-file disk probes.
func ValidateLibDocs(doc *types.LibDocsDocument, source, dir string) *Report {
	rep := NewReport(source)
	checkEnvelope(rep, doc.Metadata, schema.KindLibDocs, dir)

	if len(doc.Entities) == 0 {
		rep.Warnf("entities", "document lists no entities")
	}

	seen := map[string]bool{}
	for i, e := range doc.Entities {
		base := fmt.Sprintf("entities[%d]", i)
		checkID(rep, base+".id", e.ID, seen)
		checkRequired(rep, base+".library", e.Library)
		if e.Name == "" {
			rep.Warnf(base+".name", "name is empty; display falls back to the entity id")
		}

		if e.SourceFile != "" && dir != "" {
			if _, err := os.Stat(e.SourceFile); err != nil {
				rep.Warnf(base+".source_file", "%q does not exist on disk", e.SourceFile)
			}
		}

		checkObservations(rep, base+".observations", e.Observations, schema.KindLibDocs)
		checkLibRelations(rep, base+".relations", e.Relations)
	}
	return rep
}

// checkLibRelations validates knowledge-file relations. Unlike model
// relations these do not resolve against sibling entities; the target rules
// depend entirely on the relation type.
func checkLibRelations(rep *Report, path string, relations []types.Relation) {
	spec, _ := schema.Spec(schema.KindLibDocs)
	seen := map[string]bool{}
	for i, r := range relations {
		base := fmt.Sprintf("%s[%d]", path, i)
		checkID(rep, base+".id", r.ID, seen)
		checkRequired(rep, base+".description", r.Description)
		checkRelationType(rep, base+".type", schema.KindLibDocs, r.Type)
		checkLibTarget(rep, base+".target", r.Type, r.Target)
		checkDirection(rep, base, spec, r.Direction)
		checkCoupling(rep, base, spec, r.Coupling)
	}
}

func checkLibTarget(rep *Report, path, relType, target string) {
	if target == "" {
		rep.Errorf(path, "required field is missing")
		return
	}
	switch relType {
	case "source_code", "official_docs", "external_reference":
		if !isHTTPURL(target) {
			rep.Errorf(path, "%q relations need an absolute http(s) URL, got %q", relType, target)
		}
	case "references_section":
		if strings.HasPrefix(target, "#") {
			rep.Errorf(path, "section anchor %q must not carry the leading #", target)
		} else if strings.ContainsAny(target, " \t") || strings.Contains(target, "://") {
			rep.Errorf(path, "%q is not a section anchor slug", target)
		}
	case "related_docs":
		if strings.Contains(target, "://") {
			rep.Errorf(path, "%q relations expect a document path, not a URL", relType)
		}
	}
}
