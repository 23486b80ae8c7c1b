// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docgen renders human-readable architecture documentation from a
// loaded model: an index page plus one page per system, with containers and
// components grouped under the system they belong to. Rendering is
// deterministic; entities appear in id order and the only timestamp on a
// page is the model revision it was generated from.
package docgen

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/archdoc/internal/model"
	"github.com/pdiddy/archdoc/pkg/types"
)

// Options controls documentation generation.
type Options struct {
	// OutputDir receives the rendered pages. Defaults to docs/architecture.
	OutputDir string

	// Diagrams adds Mermaid diagrams: a context diagram on the index page
	// and a container diagram on each system page.
	Diagrams bool
}

// DefaultOutputDir is where pages land unless Options says otherwise.
const DefaultOutputDir = "docs/architecture"

// Generate renders the documentation pages for m into opts.OutputDir,
// reporting each written file on progress.
func Generate(m *model.Model, opts Options, progress io.Writer) error {
	if m.Systems == nil {
		return fmt.Errorf("model %s has no c1-systems.json; nothing to document", m.Dir)
	}
	if opts.OutputDir == "" {
		opts.OutputDir = DefaultOutputDir
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	pages := map[string]string{"index.md": renderIndex(m, opts.Diagrams)}
	for _, sys := range sortedSystems(m) {
		pages[sys.ID+".md"] = renderSystem(m, sys, opts.Diagrams)
	}

	names := make([]string, 0, len(pages))
	for name := range pages {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(opts.OutputDir, name)
		if err := os.WriteFile(path, []byte(pages[name]), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
		fmt.Fprintf(progress, "wrote %s\n", path)
	}
	return nil
}

func renderIndex(m *model.Model, diagrams bool) string {
	var b strings.Builder
	b.WriteString("# Architecture Documentation\n\n")
	if ts := m.Systems.Metadata.Timestamp; ts != "" {
		fmt.Fprintf(&b, "Generated from model revision %s.\n\n", ts)
	}

	systems := sortedSystems(m)
	b.WriteString("## Systems\n\n")
	b.WriteString("| System | Type | Description |\n")
	b.WriteString("|---|---|---|\n")
	for _, sys := range systems {
		fmt.Fprintf(&b, "| [%s](%s.md) | %s | %s |\n",
			cell(sys.Name), sys.ID, cell(sys.Type), cell(sys.Description))
	}

	if diagrams {
		b.WriteString("\n")
		writeContextDiagram(&b, systems)
	}

	if m.Init != nil && len(m.Init.Repositories) > 0 {
		b.WriteString("\n## Repositories\n\n")
		b.WriteString("| Repository | Path |\n")
		b.WriteString("|---|---|\n")
		repos := append([]types.Repository(nil), m.Init.Repositories...)
		sort.Slice(repos, func(i, j int) bool { return repos[i].ID < repos[j].ID })
		for _, r := range repos {
			fmt.Fprintf(&b, "| %s | `%s` |\n", cell(r.Name), r.Path)
		}
	}

	if len(m.LibDocs) > 0 {
		b.WriteString("\n## Library Notes\n\n")
		for _, lf := range m.LibDocs {
			fmt.Fprintf(&b, "- `%s`: %d entities\n", filepath.Base(lf.Path), len(lf.Doc.Entities))
		}
	}
	return b.String()
}

func renderSystem(m *model.Model, sys types.System, diagrams bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", sys.Name)
	fmt.Fprintf(&b, "*%s*\n\n%s\n", sys.Type, sys.Description)

	if len(sys.Responsibilities) > 0 {
		b.WriteString("\n## Responsibilities\n\n")
		for _, r := range sys.Responsibilities {
			fmt.Fprintf(&b, "- %s\n", r)
		}
	}

	writeObservations(&b, "##", sys.Observations)
	writeRelations(&b, "##", sys.Relations)

	containers := containersOf(m, sys.ID)
	if len(containers) == 0 {
		return b.String()
	}

	b.WriteString("\n## Containers\n")
	if diagrams {
		b.WriteString("\n")
		writeContainerDiagram(&b, containers)
	}
	for _, c := range containers {
		fmt.Fprintf(&b, "\n### %s\n\n", c.Name)
		line := fmt.Sprintf("*%s*", c.Type)
		if c.Technology != "" {
			line += fmt.Sprintf(" (%s)", c.Technology)
		}
		fmt.Fprintf(&b, "%s\n\n%s\n", line, c.Description)

		writeObservations(&b, "####", c.Observations)
		writeRelations(&b, "####", c.Relations)

		components := componentsOf(m, c.ID)
		if len(components) == 0 {
			continue
		}
		b.WriteString("\n#### Components\n\n")
		for _, comp := range components {
			fmt.Fprintf(&b, "- **%s** (`%s`, %s): %s\n",
				comp.Name, comp.ID, comp.Type, comp.Description)
		}
	}
	return b.String()
}

func writeObservations(b *strings.Builder, heading string, obs []types.Observation) {
	if len(obs) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s Observations\n\n", heading)
	b.WriteString("| Title | Category | Severity | Description |\n")
	b.WriteString("|---|---|---|---|\n")
	sorted := append([]types.Observation(nil), obs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	for _, o := range sorted {
		fmt.Fprintf(b, "| %s | %s | %s | %s |\n",
			cell(o.Title), cell(o.Category), cell(string(o.Severity)), cell(o.Description))
	}
}

func writeRelations(b *strings.Builder, heading string, rels []types.Relation) {
	if len(rels) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s Relations\n\n", heading)
	sorted := append([]types.Relation(nil), rels...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	for _, r := range sorted {
		fmt.Fprintf(b, "- **%s** `%s`", r.Type, r.Target)
		var qualifiers []string
		if r.Direction != "" {
			qualifiers = append(qualifiers, string(r.Direction))
		}
		if r.Coupling != "" {
			qualifiers = append(qualifiers, string(r.Coupling)+" coupling")
		}
		if len(qualifiers) > 0 {
			fmt.Fprintf(b, " (%s)", strings.Join(qualifiers, ", "))
		}
		fmt.Fprintf(b, ": %s\n", r.Description)
	}
}

// writeContextDiagram emits a Mermaid flowchart of the systems and the
// relations between them, honoring each relation's direction. People get
// stadium nodes; systems are plain boxes.
func writeContextDiagram(b *strings.Builder, systems []types.System) {
	known := map[string]bool{}
	for _, s := range systems {
		known[s.ID] = true
	}

	b.WriteString("```mermaid\nflowchart LR\n")
	for _, s := range systems {
		if s.Type == "person" {
			fmt.Fprintf(b, "    %s([\"%s\"])\n", s.ID, s.Name)
		} else {
			fmt.Fprintf(b, "    %s[\"%s\"]\n", s.ID, s.Name)
		}
	}
	for _, s := range systems {
		rels := append([]types.Relation(nil), s.Relations...)
		sort.Slice(rels, func(i, j int) bool { return rels[i].ID < rels[j].ID })
		for _, r := range rels {
			if !known[r.Target] || r.Target == s.ID {
				continue
			}
			switch r.Direction {
			case types.DirectionInbound:
				fmt.Fprintf(b, "    %s -->|%s| %s\n", r.Target, r.Type, s.ID)
			case types.DirectionBidirectional:
				fmt.Fprintf(b, "    %s <-->|%s| %s\n", s.ID, r.Type, r.Target)
			default:
				fmt.Fprintf(b, "    %s -->|%s| %s\n", s.ID, r.Type, r.Target)
			}
		}
	}
	b.WriteString("```\n")
}

// writeContainerDiagram emits a Mermaid flowchart of the containers and the
// relations between them. Databases get cylinder nodes; everything else is a
// plain box.
func writeContainerDiagram(b *strings.Builder, containers []types.Container) {
	known := map[string]bool{}
	for _, c := range containers {
		known[c.ID] = true
	}

	b.WriteString("```mermaid\nflowchart LR\n")
	for _, c := range containers {
		if c.Type == "database" {
			fmt.Fprintf(b, "    %s[(\"%s\")]\n", c.ID, c.Name)
		} else {
			fmt.Fprintf(b, "    %s[\"%s\"]\n", c.ID, c.Name)
		}
	}
	for _, c := range containers {
		rels := append([]types.Relation(nil), c.Relations...)
		sort.Slice(rels, func(i, j int) bool { return rels[i].ID < rels[j].ID })
		for _, r := range rels {
			if !known[r.Target] {
				continue
			}
			fmt.Fprintf(b, "    %s -->|%s| %s\n", c.ID, r.Type, r.Target)
		}
	}
	b.WriteString("```\n")
}

func sortedSystems(m *model.Model) []types.System {
	systems := append([]types.System(nil), m.Systems.Systems...)
	sort.Slice(systems, func(i, j int) bool { return systems[i].ID < systems[j].ID })
	return systems
}

func containersOf(m *model.Model, systemID string) []types.Container {
	if m.Containers == nil {
		return nil
	}
	var out []types.Container
	for _, c := range m.Containers.Containers {
		if c.SystemID == systemID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func componentsOf(m *model.Model, containerID string) []types.Component {
	if m.Components == nil {
		return nil
	}
	var out []types.Component
	for _, c := range m.Components.Components {
		if c.ContainerID == containerID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// cell escapes a value for a Markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
