// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/archdoc/internal/model"
	"github.com/pdiddy/archdoc/pkg/types"
)

// writeStage marshals doc into dir under name.
func writeStage(t *testing.T, dir, name string, doc any) {
	t.Helper()
	data, err := json.MarshalIndent(doc, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
}

// fullModelDir lays out a workspace with a complete, internally consistent
// four-stage model plus one lib-docs file, and returns the model directory.
func fullModelDir(t *testing.T) string {
	t.Helper()
	workspace := t.TempDir()
	dir := filepath.Join(workspace, "model")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(workspace, "services", "orders"), 0o755))

	initDoc := &types.InitDocument{
		Metadata: initMeta(),
		Repositories: []types.Repository{
			{ID: "order-service", Name: "Order Service", Path: "services/orders"},
		},
	}
	writeStage(t, dir, "init.json", initDoc)
	writeStage(t, dir, "c1-systems.json", validSystemsDoc())
	writeStage(t, dir, "c2-containers.json", validContainersDoc())
	writeStage(t, dir, "c3-components.json", validComponentsDoc())
	writeStage(t, dir, "lib-docs-pika.json", validLibDocsDoc())
	return dir
}

func TestValidateChainClean(t *testing.T) {
	dir := fullModelDir(t)
	m, err := model.ReadDir(dir)
	require.NoError(t, err)

	rep := ValidateChain(m)
	assert.Zero(t, rep.Code(), "diagnostics: %v", rep.Diagnostics)
}

func TestValidateChainEmptyDir(t *testing.T) {
	m, err := model.ReadDir(t.TempDir())
	require.NoError(t, err)

	rep := ValidateChain(m)
	assert.Equal(t, 2, rep.Code())
	assertDiagnostic(t, rep, "no pipeline documents found")
}

func TestValidateChainBrokenChain(t *testing.T) {
	dir := t.TempDir()
	writeStage(t, dir, "c2-containers.json", validContainersDoc())

	m, err := model.ReadDir(dir)
	require.NoError(t, err)

	rep := ValidateChain(m)
	assert.Equal(t, 2, rep.Code())
	assertDiagnostic(t, rep, "missing but a later stage exists")

	// init and c1 both gate c2; c3 is merely not generated yet.
	missing := 0
	for _, d := range rep.Diagnostics {
		if strings.Contains(d.Message, "missing but a later stage exists") {
			missing++
		}
	}
	assert.Equal(t, 2, missing)
	assertDiagnostic(t, rep, "stage not generated yet")
}

func TestValidateChainTrailingStages(t *testing.T) {
	workspace := t.TempDir()
	dir := filepath.Join(workspace, "model")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(workspace, "services", "orders"), 0o755))

	initDoc := &types.InitDocument{
		Metadata: initMeta(),
		Repositories: []types.Repository{
			{ID: "order-service", Name: "Order Service", Path: "services/orders"},
		},
	}
	writeStage(t, dir, "init.json", initDoc)
	writeStage(t, dir, "c1-systems.json", validSystemsDoc())

	m, err := model.ReadDir(dir)
	require.NoError(t, err)

	rep := ValidateChain(m)
	assert.Equal(t, 1, rep.Code(), "diagnostics: %v", rep.Diagnostics)
	assert.Equal(t, 2, rep.Warnings())
	assertDiagnostic(t, rep, "stage not generated yet")
}

func TestValidateChainTimestampInversion(t *testing.T) {
	dir := fullModelDir(t)

	// Regenerate init after c1 without touching the rest: actual order now
	// runs backwards even though every declared parent link still parses.
	initDoc := &types.InitDocument{
		Metadata: types.Metadata{
			SchemaVersion: "1.0.0",
			Timestamp:     "2026-03-10T09:00:00Z",
			Generator:     "archdoc-test",
		},
		Repositories: []types.Repository{
			{ID: "order-service", Name: "Order Service", Path: "services/orders"},
		},
	}
	writeStage(t, dir, "init.json", initDoc)

	m, err := model.ReadDir(dir)
	require.NoError(t, err)

	rep := ValidateChain(m)
	assert.Equal(t, 2, rep.Code())
	assertDiagnostic(t, rep, "is not after init.json timestamp")
}

func TestValidateChainPrefixesStagePaths(t *testing.T) {
	dir := fullModelDir(t)

	broken := validContainersDoc()
	broken.Containers[0].SystemID = "inventory-platform"
	writeStage(t, dir, "c2-containers.json", broken)

	m, err := model.ReadDir(dir)
	require.NoError(t, err)

	rep := ValidateChain(m)
	assert.Equal(t, 2, rep.Code())

	found := false
	for _, d := range rep.Diagnostics {
		if strings.HasPrefix(d.Path, "c2-containers.json: containers[0].system_id") {
			found = true
		}
	}
	assert.True(t, found, "diagnostics: %v", rep.Diagnostics)
}

func TestValidateChainUnconventionalParentFile(t *testing.T) {
	dir := fullModelDir(t)

	odd := validSystemsDoc()
	odd.Metadata.Parent.File = "inventory.json"
	writeStage(t, dir, "c1-systems.json", odd)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "inventory.json"), []byte("{}"), 0o644))

	m, err := model.ReadDir(dir)
	require.NoError(t, err)

	rep := ValidateChain(m)
	assert.Zero(t, rep.Errors(), "diagnostics: %v", rep.Diagnostics)
	assertDiagnostic(t, rep, `pipeline convention is "init.json"`)
}
