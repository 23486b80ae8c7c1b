// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package schema is the single source of truth for the pipeline's document
// shapes: which kinds exist, what their primary arrays are called, how they
// chain to a parent stage, and every closed value set the validators enforce.
// Validators, extractors, and generators consult this package rather than
// carrying their own copies of the vocabulary.
package schema

import (
	"sort"

	"github.com/pdiddy/archdoc/pkg/types"
)

// Kind identifies a pipeline document kind.
type Kind string

const (
	KindInit       Kind = "init"
	KindSystems    Kind = "c1"
	KindContainers Kind = "c2"
	KindComponents Kind = "c3"
	KindLibDocs    Kind = "lib-docs"
)

// DocSpec describes one document kind: its conventional filename, primary
// array, position in the stage chain, and which level-specific relation
// fields its entities carry.
type DocSpec struct {
	// Kind identifies the document kind.
	Kind Kind

	// Label is the human-readable stage name used in reports.
	Label string

	// Filename is the conventional name within a model directory. Lib-docs
	// files follow the LibDocsPattern glob instead.
	Filename string

	// Array is the primary array's JSON field name.
	Array string

	// Parent is the stage this kind derives from; empty for init.
	Parent Kind

	// ParentRequired reports whether metadata.parent must be present.
	ParentRequired bool

	// RefField is the entity field referencing the parent document's
	// entities ("system_id", "container_id"); empty when entities do not
	// reference another document.
	RefField string

	// NeedsDirection reports whether relations at this level require a
	// direction field.
	NeedsDirection bool

	// NeedsCoupling reports whether relations at this level require a
	// coupling field.
	NeedsCoupling bool
}

// LibDocsPattern matches per-library metadata filenames in a model directory.
const LibDocsPattern = "lib-docs-*.json"

var specs = map[Kind]DocSpec{
	KindInit: {
		Kind:     KindInit,
		Label:    "repository inventory",
		Filename: "init.json",
		Array:    "repositories",
	},
	KindSystems: {
		Kind:           KindSystems,
		Label:          "system context",
		Filename:       "c1-systems.json",
		Array:          "systems",
		Parent:         KindInit,
		ParentRequired: true,
		NeedsDirection: true,
	},
	KindContainers: {
		Kind:           KindContainers,
		Label:          "containers",
		Filename:       "c2-containers.json",
		Array:          "containers",
		Parent:         KindSystems,
		ParentRequired: true,
		RefField:       "system_id",
	},
	KindComponents: {
		Kind:           KindComponents,
		Label:          "components",
		Filename:       "c3-components.json",
		Array:          "components",
		Parent:         KindContainers,
		ParentRequired: true,
		RefField:       "container_id",
		NeedsCoupling:  true,
	},
	KindLibDocs: {
		Kind:  KindLibDocs,
		Label: "library documentation",
		Array: "entities",
	},
}

// Spec returns the document spec for kind. The second result is false for
// unknown kinds.
func Spec(kind Kind) (DocSpec, bool) {
	s, ok := specs[kind]
	return s, ok
}

// Chain lists the pipeline stages in derivation order.
func Chain() []Kind {
	return []Kind{KindInit, KindSystems, KindContainers, KindComponents}
}

var entityTypes = map[Kind]map[string]bool{
	KindSystems: {
		"software-system": true,
		"external-system": true,
		"person":          true,
	},
	KindContainers: {
		"service":        true,
		"web-app":        true,
		"cli":            true,
		"database":       true,
		"message-broker": true,
		"cache":          true,
		"file-store":     true,
		"library":        true,
	},
	KindComponents: {
		"controller": true,
		"service":    true,
		"repository": true,
		"adapter":    true,
		"client":     true,
		"model":      true,
		"middleware": true,
		"utility":    true,
	},
}

var observationCategories = map[Kind]map[string]bool{
	KindSystems: {
		"architecture":  true,
		"technology":    true,
		"integration":   true,
		"security":      true,
		"operations":    true,
		"documentation": true,
		"risk":          true,
	},
	KindContainers: {
		"technology":    true,
		"deployment":    true,
		"scaling":       true,
		"communication": true,
		"persistence":   true,
		"security":      true,
		"performance":   true,
	},
	KindComponents: {
		"implementation": true,
		"pattern":        true,
		"dependency":     true,
		"complexity":     true,
		"testing":        true,
		"performance":    true,
		"technical_debt": true,
	},
	KindLibDocs: {
		"version":       true,
		"dependency":    true,
		"best_practice": true,
		"technique":     true,
		"example":       true,
		"warning":       true,
		"note":          true,
	},
}

var relationTypes = map[Kind]map[string]bool{
	KindSystems: {
		"uses":            true,
		"depends-on":      true,
		"integrates-with": true,
		"notifies":        true,
	},
	KindContainers: {
		"sync-call":       true,
		"async-call":      true,
		"message-publish": true,
		"message-consume": true,
		"reads-from":      true,
		"writes-to":       true,
		"replicates-to":   true,
	},
	KindComponents: {
		"calls":      true,
		"implements": true,
		"extends":    true,
		"uses":       true,
		"emits":      true,
		"listens-to": true,
	},
	KindLibDocs: {
		"references":         true,
		"references_section": true,
		"source_code":        true,
		"official_docs":      true,
		"related_docs":       true,
		"external_reference": true,
		"related":            true,
		"mentions":           true,
	},
}

// legacyRelationTypes maps retired spellings to their canonical replacement.
// Earlier pipeline revisions disagreed on the consume-side name; the schema
// accepts only the canonical form and validators point at it.
var legacyRelationTypes = map[string]string{
	"message-consumer":  "message-consume",
	"message-subscribe": "message-consume",
}

var severities = map[types.Severity]bool{
	types.SeverityInfo:     true,
	types.SeverityWarning:  true,
	types.SeverityCritical: true,
}

var directions = map[types.Direction]bool{
	types.DirectionInbound:       true,
	types.DirectionOutbound:      true,
	types.DirectionBidirectional: true,
}

var couplings = map[types.Coupling]bool{
	types.CouplingLoose:    true,
	types.CouplingModerate: true,
	types.CouplingTight:    true,
}

var evidenceTypes = map[types.EvidenceType]bool{
	types.EvidenceFile:      true,
	types.EvidenceDirectory: true,
	types.EvidenceURL:       true,
}

// ValidEntityType reports whether t is in kind's entity-type set.
func ValidEntityType(kind Kind, t string) bool {
	return entityTypes[kind][t]
}

// ValidObservationCategory reports whether c is in kind's category set.
func ValidObservationCategory(kind Kind, c string) bool {
	return observationCategories[kind][c]
}

// ValidRelationType reports whether t is in kind's relation-type set.
func ValidRelationType(kind Kind, t string) bool {
	return relationTypes[kind][t]
}

// CanonicalRelationType resolves a retired relation-type spelling to its
// canonical replacement. The second result is false when t is not a known
// legacy spelling.
func CanonicalRelationType(t string) (string, bool) {
	c, ok := legacyRelationTypes[t]
	return c, ok
}

// ValidSeverity reports whether s is a known observation severity.
func ValidSeverity(s types.Severity) bool { return severities[s] }

// ValidDirection reports whether d is a known relation direction.
func ValidDirection(d types.Direction) bool { return directions[d] }

// ValidCoupling reports whether c is a known relation coupling.
func ValidCoupling(c types.Coupling) bool { return couplings[c] }

// ValidEvidenceType reports whether t is a known evidence type.
func ValidEvidenceType(t types.EvidenceType) bool { return evidenceTypes[t] }

// EntityTypes lists kind's entity-type set in sorted order, for messages.
func EntityTypes(kind Kind) []string { return sortedKeys(entityTypes[kind]) }

// ObservationCategories lists kind's category set in sorted order.
func ObservationCategories(kind Kind) []string {
	return sortedKeys(observationCategories[kind])
}

// RelationTypes lists kind's relation-type set in sorted order.
func RelationTypes(kind Kind) []string { return sortedKeys(relationTypes[kind]) }

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
