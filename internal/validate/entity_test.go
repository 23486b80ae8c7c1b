package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/archdoc/internal/schema"
	"github.com/pdiddy/archdoc/pkg/types"
)

func TestCheckID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		errors   int
		contains string
	}{
		{"kebab", "order-service", 0, ""},
		{"single segment", "orders", 0, ""},
		{"missing", "", 1, "required field is missing"},
		{"uppercase", "OrderService", 1, "not kebab-case"},
		{"underscore", "order_service", 1, "not kebab-case"},
		{"trailing hyphen", "orders-", 1, "not kebab-case"},
		{"leading digit", "1orders", 1, "not kebab-case"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := NewReport("doc")
			checkID(rep, "systems[0].id", tt.id, map[string]bool{})
			assert.Equal(t, tt.errors, rep.Errors(), "diagnostics: %v", rep.Diagnostics)
			if tt.contains != "" {
				assertDiagnostic(t, rep, tt.contains)
			}
		})
	}
}

func TestCheckIDDuplicate(t *testing.T) {
	rep := NewReport("doc")
	seen := map[string]bool{}
	checkID(rep, "systems[0].id", "orders", seen)
	checkID(rep, "systems[1].id", "orders", seen)

	assert.Equal(t, 1, rep.Errors())
	assertDiagnostic(t, rep, `duplicate id "orders"`)
}

func TestCheckEntityType(t *testing.T) {
	rep := NewReport("doc")
	checkEntityType(rep, "systems[0].type", schema.KindSystems, "microservice")

	assert.Equal(t, 1, rep.Errors())
	assertDiagnostic(t, rep, "valid types: external-system, person, software-system")
}

func TestCheckResponsibilities(t *testing.T) {
	t.Run("empty list warns", func(t *testing.T) {
		rep := NewReport("doc")
		checkResponsibilities(rep, "systems[0].responsibilities", nil)
		assert.Zero(t, rep.Errors())
		assert.Equal(t, 1, rep.Warnings())
	})

	t.Run("blank entry is an error", func(t *testing.T) {
		rep := NewReport("doc")
		checkResponsibilities(rep, "systems[0].responsibilities", []string{"Routes orders", "  "})
		assert.Equal(t, 1, rep.Errors())
		assertDiagnostic(t, rep, "blank responsibility entry")
	})
}

func TestCheckEvidence(t *testing.T) {
	tests := []struct {
		name     string
		ev       types.Evidence
		errors   int
		contains string
	}{
		{
			name:   "file with range",
			ev:     types.Evidence{Type: types.EvidenceFile, Path: "src/app.py", StartLine: 10, EndLine: 20},
			errors: 0,
		},
		{
			name:   "url",
			ev:     types.Evidence{Type: types.EvidenceURL, URL: "https://example.com/docs"},
			errors: 0,
		},
		{
			name:     "missing type",
			ev:       types.Evidence{Path: "src/app.py"},
			errors:   1,
			contains: "required field is missing",
		},
		{
			name:     "unknown type",
			ev:       types.Evidence{Type: "screenshot", Path: "x.png"},
			errors:   1,
			contains: "unknown evidence type",
		},
		{
			name:     "url evidence without url",
			ev:       types.Evidence{Type: types.EvidenceURL},
			errors:   1,
			contains: "required for url evidence",
		},
		{
			name:     "url evidence with relative url",
			ev:       types.Evidence{Type: types.EvidenceURL, URL: "docs/page.html"},
			errors:   1,
			contains: "not an absolute http(s) URL",
		},
		{
			name:     "url evidence carrying a path",
			ev:       types.Evidence{Type: types.EvidenceURL, URL: "https://example.com", Path: "src/app.py"},
			errors:   1,
			contains: "not valid on url evidence",
		},
		{
			name:     "file evidence without path",
			ev:       types.Evidence{Type: types.EvidenceFile},
			errors:   1,
			contains: "required for file evidence",
		},
		{
			name:     "directory evidence carrying a url",
			ev:       types.Evidence{Type: types.EvidenceDirectory, Path: "src/", URL: "https://example.com"},
			errors:   1,
			contains: "not valid on directory evidence",
		},
		{
			name:     "negative line",
			ev:       types.Evidence{Type: types.EvidenceFile, Path: "a.py", StartLine: -3},
			errors:   1,
			contains: "line numbers must be positive",
		},
		{
			name:     "end without start",
			ev:       types.Evidence{Type: types.EvidenceFile, Path: "a.py", EndLine: 12},
			errors:   1,
			contains: "required when end_line is set",
		},
		{
			name:     "inverted range",
			ev:       types.Evidence{Type: types.EvidenceFile, Path: "a.py", StartLine: 20, EndLine: 10},
			errors:   1,
			contains: "end_line 10 precedes start_line 20",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := NewReport("doc")
			checkEvidence(rep, "observations[0].evidence[0]", tt.ev)
			assert.Equal(t, tt.errors, rep.Errors(), "diagnostics: %v", rep.Diagnostics)
			if tt.contains != "" {
				assertDiagnostic(t, rep, tt.contains)
			}
		})
	}
}

func TestCheckObservations(t *testing.T) {
	obs := []types.Observation{
		{
			ID:          "obs-aaaa0000",
			Category:    "architecture",
			Severity:    types.SeverityInfo,
			Title:       "Event driven core",
			Description: "All writes flow through the event bus.",
		},
		{
			ID:          "obs-bbbb1111",
			Category:    "velocity",
			Severity:    "severe",
			Title:       "",
			Description: "Missing title above and bad enums here.",
		},
	}

	rep := NewReport("doc")
	checkObservations(rep, "systems[0].observations", obs, schema.KindSystems)

	// velocity is not a c1 category, severe is not a severity, and the
	// second title is blank.
	assert.Equal(t, 3, rep.Errors(), "diagnostics: %v", rep.Diagnostics)
	assertDiagnostic(t, rep, `unknown category "velocity"`)
	assertDiagnostic(t, rep, `unknown severity "severe"`)
}

func TestCheckRelationType(t *testing.T) {
	t.Run("retired spelling points at canonical", func(t *testing.T) {
		rep := NewReport("doc")
		checkRelationType(rep, "containers[0].relations[0].type", schema.KindContainers, "message-consumer")
		assert.Equal(t, 1, rep.Errors())
		assertDiagnostic(t, rep, `"message-consumer" is a retired spelling; use "message-consume"`)
	})

	t.Run("retired subscribe spelling", func(t *testing.T) {
		rep := NewReport("doc")
		checkRelationType(rep, "containers[0].relations[0].type", schema.KindContainers, "message-subscribe")
		assertDiagnostic(t, rep, `use "message-consume"`)
	})

	t.Run("unknown type lists vocabulary", func(t *testing.T) {
		rep := NewReport("doc")
		checkRelationType(rep, "systems[0].relations[0].type", schema.KindSystems, "links-to")
		assert.Equal(t, 1, rep.Errors())
		assertDiagnostic(t, rep, "valid types: depends-on, integrates-with, notifies, uses")
	})

	t.Run("canonical forms pass", func(t *testing.T) {
		rep := NewReport("doc")
		checkRelationType(rep, "t", schema.KindContainers, "message-publish")
		checkRelationType(rep, "t", schema.KindContainers, "message-consume")
		assert.Empty(t, rep.Diagnostics)
	})
}

func TestCheckDirectionByLevel(t *testing.T) {
	c1, _ := schema.Spec(schema.KindSystems)
	c2, _ := schema.Spec(schema.KindContainers)

	t.Run("required at c1", func(t *testing.T) {
		rep := NewReport("doc")
		checkDirection(rep, "r", c1, "")
		assert.Equal(t, 1, rep.Errors())
		assertDiagnostic(t, rep, "required on c1 relations")
	})

	t.Run("forbidden at c2", func(t *testing.T) {
		rep := NewReport("doc")
		checkDirection(rep, "r", c2, types.DirectionOutbound)
		assert.Equal(t, 1, rep.Errors())
		assertDiagnostic(t, rep, "only valid on c1 relations")
	})

	t.Run("unknown value", func(t *testing.T) {
		rep := NewReport("doc")
		checkDirection(rep, "r", c1, "sideways")
		assert.Equal(t, 1, rep.Errors())
		assertDiagnostic(t, rep, `unknown direction "sideways"`)
	})
}

func TestCheckCouplingByLevel(t *testing.T) {
	c2, _ := schema.Spec(schema.KindContainers)
	c3, _ := schema.Spec(schema.KindComponents)

	t.Run("required at c3", func(t *testing.T) {
		rep := NewReport("doc")
		checkCoupling(rep, "r", c3, "")
		assert.Equal(t, 1, rep.Errors())
		assertDiagnostic(t, rep, "required on c3 relations")
	})

	t.Run("forbidden at c2", func(t *testing.T) {
		rep := NewReport("doc")
		checkCoupling(rep, "r", c2, types.CouplingTight)
		assert.Equal(t, 1, rep.Errors())
		assertDiagnostic(t, rep, "only valid on c3 relations")
	})

	t.Run("unknown value", func(t *testing.T) {
		rep := NewReport("doc")
		checkCoupling(rep, "r", c3, "rigid")
		assert.Equal(t, 1, rep.Errors())
		assertDiagnostic(t, rep, `unknown coupling "rigid"`)
	})
}

func TestRefGraph(t *testing.T) {
	g := NewRefGraph()
	g.AddNodes("systems", "orders", "billing", "")

	assert.True(t, g.Known("systems"))
	assert.False(t, g.Known("containers"))

	t.Run("resolving edge", func(t *testing.T) {
		rep := NewReport("doc")
		g.Check(rep, "p", "systems", "billing")
		assert.Empty(t, rep.Diagnostics)
	})

	t.Run("dangling edge", func(t *testing.T) {
		rep := NewReport("doc")
		g.Check(rep, "p", "systems", "shipping")
		assert.Equal(t, 1, rep.Errors())
		assertDiagnostic(t, rep, `references unknown system id "shipping"`)
	})

	t.Run("unregistered namespace is skipped", func(t *testing.T) {
		rep := NewReport("doc")
		g.Check(rep, "p", "containers", "anything")
		assert.Empty(t, rep.Diagnostics)
	})

	t.Run("blank ids are not nodes", func(t *testing.T) {
		rep := NewReport("doc")
		g.Check(rep, "p", "systems", "")
		assert.Equal(t, 1, rep.Errors())
	})
}
