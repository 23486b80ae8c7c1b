// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import (
	"fmt"
	"strings"

	"github.com/pdiddy/archdoc/internal/schema"
	"github.com/pdiddy/archdoc/pkg/types"
)

// checkID validates one identifier field and records it in seen for
// duplicate detection within its array.
func checkID(rep *Report, path, id string, seen map[string]bool) {
	if id == "" {
		rep.Errorf(path, "required field is missing")
		return
	}
	if !schema.ValidID(id) {
		rep.Errorf(path, "%q is not kebab-case (lowercase alphanumeric segments joined by hyphens)", id)
		return
	}
	if seen[id] {
		rep.Errorf(path, "duplicate id %q", id)
		return
	}
	seen[id] = true
}

// checkRequired validates a required scalar field.
func checkRequired(rep *Report, path, value string) {
	if value == "" {
		rep.Errorf(path, "required field is missing")
	}
}

// checkEntityType validates an entity's type against its level vocabulary.
func checkEntityType(rep *Report, path string, kind schema.Kind, value string) {
	if value == "" {
		rep.Errorf(path, "required field is missing")
		return
	}
	if !schema.ValidEntityType(kind, value) {
		rep.Errorf(path, "unknown type %q; valid types: %s", value, strings.Join(schema.EntityTypes(kind), ", "))
	}
}

// checkResponsibilities flags an entity documented without responsibilities.
// That is legal but thin, so it warns rather than blocks.
func checkResponsibilities(rep *Report, path string, responsibilities []string) {
	if len(responsibilities) == 0 {
		rep.Warnf(path, "entity lists no responsibilities")
		return
	}
	for i, resp := range responsibilities {
		if strings.TrimSpace(resp) == "" {
			rep.Errorf(fmt.Sprintf("%s[%d]", path, i), "blank responsibility entry")
		}
	}
}

// checkObservations validates one entity's observations array.
func checkObservations(rep *Report, base string, obs []types.Observation, kind schema.Kind) {
	seen := map[string]bool{}
	for i, o := range obs {
		path := fmt.Sprintf("%s[%d]", base, i)
		checkID(rep, path+".id", o.ID, seen)
		checkRequired(rep, path+".title", o.Title)
		checkRequired(rep, path+".description", o.Description)

		switch {
		case o.Category == "":
			rep.Errorf(path+".category", "required field is missing")
		case !schema.ValidObservationCategory(kind, o.Category):
			rep.Errorf(path+".category", "unknown category %q; valid categories: %s",
				o.Category, strings.Join(schema.ObservationCategories(kind), ", "))
		}

		switch {
		case o.Severity == "":
			rep.Errorf(path+".severity", "required field is missing")
		case !schema.ValidSeverity(o.Severity):
			rep.Errorf(path+".severity", "unknown severity %q; valid severities: info, warning, critical", o.Severity)
		}

		for j, ev := range o.Evidence {
			checkEvidence(rep, fmt.Sprintf("%s.evidence[%d]", path, j), ev)
		}
	}
}

// checkEvidence validates one typed source pointer.
func checkEvidence(rep *Report, path string, ev types.Evidence) {
	switch {
	case ev.Type == "":
		rep.Errorf(path+".type", "required field is missing")
		return
	case !schema.ValidEvidenceType(ev.Type):
		rep.Errorf(path+".type", "unknown evidence type %q; valid types: file, directory, url", ev.Type)
		return
	}

	switch ev.Type {
	case types.EvidenceURL:
		if ev.URL == "" {
			rep.Errorf(path+".url", "required for url evidence")
		} else if !isHTTPURL(ev.URL) {
			rep.Errorf(path+".url", "%q is not an absolute http(s) URL", ev.URL)
		}
		if ev.Path != "" {
			rep.Errorf(path+".path", "not valid on url evidence")
		}
	default:
		if ev.Path == "" {
			rep.Errorf(path+".path", "required for %s evidence", ev.Type)
		}
		if ev.URL != "" {
			rep.Errorf(path+".url", "not valid on %s evidence", ev.Type)
		}
	}

	if ev.StartLine < 0 || ev.EndLine < 0 {
		rep.Errorf(path, "line numbers must be positive")
		return
	}
	if ev.EndLine > 0 && ev.StartLine == 0 {
		rep.Errorf(path+".start_line", "required when end_line is set")
		return
	}
	if ev.StartLine > 0 && ev.EndLine > 0 && ev.EndLine < ev.StartLine {
		rep.Errorf(path, "end_line %d precedes start_line %d", ev.EndLine, ev.StartLine)
	}
}

// checkRelations validates one entity's relations array for the model
// levels (c1-c3). Targets must resolve to an entity in the same document,
// recorded in graph under namespace.
func checkRelations(rep *Report, base string, rels []types.Relation, kind schema.Kind, ownID string, graph *RefGraph, namespace string) {
	spec, _ := schema.Spec(kind)
	seen := map[string]bool{}

	for i, rel := range rels {
		path := fmt.Sprintf("%s[%d]", base, i)
		checkID(rep, path+".id", rel.ID, seen)
		checkRequired(rep, path+".description", rel.Description)
		checkRelationType(rep, path+".type", kind, rel.Type)

		switch {
		case rel.Target == "":
			rep.Errorf(path+".target", "required field is missing")
		case rel.Target == ownID && ownID != "":
			rep.Warnf(path+".target", "relation targets its own entity")
		default:
			graph.Check(rep, path+".target", namespace, rel.Target)
		}

		checkDirection(rep, path, spec, rel.Direction)
		checkCoupling(rep, path, spec, rel.Coupling)
	}
}

// checkRelationType validates a relation type against the level vocabulary,
// pointing legacy spellings at their canonical replacement.
func checkRelationType(rep *Report, path string, kind schema.Kind, value string) {
	if value == "" {
		rep.Errorf(path, "required field is missing")
		return
	}
	if schema.ValidRelationType(kind, value) {
		return
	}
	if canonical, ok := schema.CanonicalRelationType(value); ok {
		rep.Errorf(path, "%q is a retired spelling; use %q", value, canonical)
		return
	}
	rep.Errorf(path, "unknown relation type %q; valid types: %s",
		value, strings.Join(schema.RelationTypes(kind), ", "))
}

func checkDirection(rep *Report, path string, spec schema.DocSpec, d types.Direction) {
	switch {
	case spec.NeedsDirection && d == "":
		rep.Errorf(path+".direction", "required on %s relations", spec.Kind)
	case !spec.NeedsDirection && d != "":
		rep.Errorf(path+".direction", "only valid on %s relations", schema.KindSystems)
	case d != "" && !schema.ValidDirection(d):
		rep.Errorf(path+".direction", "unknown direction %q; valid directions: inbound, outbound, bidirectional", d)
	}
}

func checkCoupling(rep *Report, path string, spec schema.DocSpec, c types.Coupling) {
	switch {
	case spec.NeedsCoupling && c == "":
		rep.Errorf(path+".coupling", "required on %s relations", spec.Kind)
	case !spec.NeedsCoupling && c != "":
		rep.Errorf(path+".coupling", "only valid on %s relations", schema.KindComponents)
	case c != "" && !schema.ValidCoupling(c):
		rep.Errorf(path+".coupling", "unknown coupling %q; valid couplings: loose, moderate, tight", c)
	}
}

func isHTTPURL(u string) bool {
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}
