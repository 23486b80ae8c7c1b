// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/archdoc/internal/schema"
	"github.com/pdiddy/archdoc/pkg/types"
)

// ValidateInit checks a repository-inventory document. dir is the model
// directory the document came from; repository paths are probed relative to
// its parent, the workspace root. Empty dir (stdin input) skips disk probes.
func ValidateInit(doc *types.InitDocument, source, dir string) *Report {
	rep := NewReport(source)
	checkEnvelope(rep, doc.Metadata, schema.KindInit, dir)

	if len(doc.Repositories) == 0 {
		rep.Warnf("repositories", "document lists no repositories")
	}

	seen := map[string]bool{}
	for i, repo := range doc.Repositories {
		base := fmt.Sprintf("repositories[%d]", i)
		checkID(rep, base+".id", repo.ID, seen)
		checkRequired(rep, base+".name", repo.Name)
		checkRequired(rep, base+".path", repo.Path)

		if repo.Path != "" && dir != "" {
			workspace := filepath.Dir(dir)
			if _, err := os.Stat(filepath.Join(workspace, repo.Path)); err != nil {
				rep.Warnf(base+".path", "%q does not exist on disk", repo.Path)
			}
		}
	}
	return rep
}

// ValidateSystems checks a system-context document, including relation
// targets against the document's own systems.
func ValidateSystems(doc *types.SystemsDocument, source, dir string) *Report {
	rep := NewReport(source)
	checkEnvelope(rep, doc.Metadata, schema.KindSystems, dir)

	graph := NewRefGraph()
	for _, s := range doc.Systems {
		graph.AddNodes("systems", s.ID)
	}

	seen := map[string]bool{}
	for i, s := range doc.Systems {
		base := fmt.Sprintf("systems[%d]", i)
		checkID(rep, base+".id", s.ID, seen)
		checkRequired(rep, base+".name", s.Name)
		checkEntityType(rep, base+".type", schema.KindSystems, s.Type)
		checkRequired(rep, base+".description", s.Description)
		checkResponsibilities(rep, base+".responsibilities", s.Responsibilities)
		checkObservations(rep, base+".observations", s.Observations, schema.KindSystems)
		checkRelations(rep, base+".relations", s.Relations, schema.KindSystems, s.ID, graph, "systems")
	}
	return rep
}

// ValidateContainers checks a container-level document. parent, when
// available, supplies the system ids that system_id references must
// resolve against; a nil parent skips that cross-document check.
func ValidateContainers(doc *types.ContainersDocument, source, dir string, parent *types.SystemsDocument) *Report {
	rep := NewReport(source)
	checkEnvelope(rep, doc.Metadata, schema.KindContainers, dir)

	graph := NewRefGraph()
	for _, c := range doc.Containers {
		graph.AddNodes("containers", c.ID)
	}
	if parent != nil {
		for _, s := range parent.Systems {
			graph.AddNodes("systems", s.ID)
		}
		checkParentDrift(rep, doc.Metadata, parent.Metadata)
	}

	seen := map[string]bool{}
	for i, c := range doc.Containers {
		base := fmt.Sprintf("containers[%d]", i)
		checkID(rep, base+".id", c.ID, seen)
		checkRequired(rep, base+".name", c.Name)
		checkEntityType(rep, base+".type", schema.KindContainers, c.Type)
		checkRequired(rep, base+".description", c.Description)

		if c.SystemID == "" {
			rep.Errorf(base+".system_id", "required field is missing")
		} else {
			graph.Check(rep, base+".system_id", "systems", c.SystemID)
		}

		checkResponsibilities(rep, base+".responsibilities", c.Responsibilities)
		checkObservations(rep, base+".observations", c.Observations, schema.KindContainers)
		checkRelations(rep, base+".relations", c.Relations, schema.KindContainers, c.ID, graph, "containers")
	}
	return rep
}

// ValidateComponents checks a component-level document. parent, when
// available, supplies the container ids that container_id references must
// resolve against.
func ValidateComponents(doc *types.ComponentsDocument, source, dir string, parent *types.ContainersDocument) *Report {
	rep := NewReport(source)
	checkEnvelope(rep, doc.Metadata, schema.KindComponents, dir)

	graph := NewRefGraph()
	for _, c := range doc.Components {
		graph.AddNodes("components", c.ID)
	}
	if parent != nil {
		for _, c := range parent.Containers {
			graph.AddNodes("containers", c.ID)
		}
		checkParentDrift(rep, doc.Metadata, parent.Metadata)
	}

	seen := map[string]bool{}
	for i, c := range doc.Components {
		base := fmt.Sprintf("components[%d]", i)
		checkID(rep, base+".id", c.ID, seen)
		checkRequired(rep, base+".name", c.Name)
		checkEntityType(rep, base+".type", schema.KindComponents, c.Type)
		checkRequired(rep, base+".description", c.Description)

		if c.ContainerID == "" {
			rep.Errorf(base+".container_id", "required field is missing")
		} else {
			graph.Check(rep, base+".container_id", "containers", c.ContainerID)
		}

		checkResponsibilities(rep, base+".responsibilities", c.Responsibilities)
		checkObservations(rep, base+".observations", c.Observations, schema.KindComponents)
		checkRelations(rep, base+".relations", c.Relations, schema.KindComponents, c.ID, graph, "components")
	}
	return rep
}

// checkParentDrift warns when a document's declared parent timestamp no
// longer matches the parent document on disk: the child was derived from an
// older revision and should be regenerated.
func checkParentDrift(rep *Report, child types.Metadata, parent types.Metadata) {
	if child.Parent == nil || child.Parent.Timestamp == "" || parent.Timestamp == "" {
		return
	}
	if child.Parent.Timestamp != parent.Timestamp {
		rep.Warnf("metadata.parent.timestamp",
			"declared %s but the parent document now carries %s; derived from a stale revision",
			child.Parent.Timestamp, parent.Timestamp)
	}
}
