// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import (
	"path/filepath"

	"github.com/pdiddy/archdoc/internal/model"
	"github.com/pdiddy/archdoc/internal/schema"
	"github.com/pdiddy/archdoc/pkg/types"
)

// ValidateChain validates a whole model directory: each stage document on
// its own, cross-document references against the stage each derives from,
// and the generation order of the pipeline. Stage diagnostics are prefixed
// with the file they belong to.
func ValidateChain(m *model.Model) *Report {
	rep := NewReport(m.Dir)

	present := map[schema.Kind]bool{
		schema.KindInit:       m.Init != nil,
		schema.KindSystems:    m.Systems != nil,
		schema.KindContainers: m.Containers != nil,
		schema.KindComponents: m.Components != nil,
	}

	chain := schema.Chain()
	last := -1
	for i, kind := range chain {
		if present[kind] {
			last = i
		}
	}

	if last < 0 && len(m.LibDocs) == 0 {
		rep.Errorf(".", "no pipeline documents found")
		return rep
	}

	// A gap before the last present stage means the chain was broken by
	// hand; stages beyond it simply have not been generated yet.
	for i, kind := range chain {
		spec, _ := schema.Spec(kind)
		switch {
		case present[kind]:
		case i <= last:
			rep.Errorf(spec.Filename, "missing but a later stage exists")
		default:
			rep.Warnf(spec.Filename, "stage not generated yet")
		}
	}

	type stage struct {
		name string
		meta types.Metadata
	}
	var generated []stage

	if m.Init != nil {
		name := filename(schema.KindInit)
		rep.Merge(ValidateInit(m.Init, name, m.Dir))
		generated = append(generated, stage{name, m.Init.Metadata})
	}
	if m.Systems != nil {
		name := filename(schema.KindSystems)
		rep.Merge(ValidateSystems(m.Systems, name, m.Dir))
		checkParentFile(rep, name, m.Systems.Metadata, schema.KindInit)
		generated = append(generated, stage{name, m.Systems.Metadata})
	}
	if m.Containers != nil {
		name := filename(schema.KindContainers)
		rep.Merge(ValidateContainers(m.Containers, name, m.Dir, m.Systems))
		checkParentFile(rep, name, m.Containers.Metadata, schema.KindSystems)
		generated = append(generated, stage{name, m.Containers.Metadata})
	}
	if m.Components != nil {
		name := filename(schema.KindComponents)
		rep.Merge(ValidateComponents(m.Components, name, m.Dir, m.Containers))
		checkParentFile(rep, name, m.Components.Metadata, schema.KindContainers)
		generated = append(generated, stage{name, m.Components.Metadata})
	}
	for _, lf := range m.LibDocs {
		rep.Merge(ValidateLibDocs(lf.Doc, filepath.Base(lf.Path), m.Dir))
	}

	// Actual envelope timestamps must grow through the chain regardless of
	// what each document declares about its parent. Unparseable fields were
	// already reported by the per-stage checks.
	for i := 1; i < len(generated); i++ {
		child, parent := generated[i], generated[i-1]
		childTime, err := ParseTimestamp(child.meta.Timestamp)
		if err != nil {
			continue
		}
		parentTime, err := ParseTimestamp(parent.meta.Timestamp)
		if err != nil {
			continue
		}
		if !childTime.After(parentTime) {
			rep.Errorf(child.name, "timestamp %s is not after %s timestamp %s",
				child.meta.Timestamp, parent.name, parent.meta.Timestamp)
		}
	}

	return rep
}

// checkParentFile warns when a document points at a parent file other than
// the stage convention. The reference still resolves; the layout is just
// not what the rest of the tooling expects.
func checkParentFile(rep *Report, name string, meta types.Metadata, parentKind schema.Kind) {
	if meta.Parent == nil || meta.Parent.File == "" {
		return
	}
	want := filename(parentKind)
	if meta.Parent.File != want {
		rep.Warnf(name, "metadata.parent.file is %q; pipeline convention is %q", meta.Parent.File, want)
	}
}

func filename(kind schema.Kind) string {
	spec, _ := schema.Spec(kind)
	return spec.Filename
}
