package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/archdoc/internal/schema"
)

const systemsJSON = `{
  "metadata": {
    "schema_version": "1.0.0",
    "timestamp": "2026-03-02T09:00:00Z",
    "generator": "archdoc-test",
    "parent": {"file": "init.json", "timestamp": "2026-03-01T09:00:00Z"}
  },
  "systems": [
    {
      "id": "order-platform",
      "name": "Order Platform",
      "type": "software-system",
      "description": "Takes and fulfils customer orders."
    }
  ]
}`

func TestDecodeSystems(t *testing.T) {
	doc, err := DecodeSystems([]byte(systemsJSON))
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", doc.Metadata.SchemaVersion)
	require.NotNil(t, doc.Metadata.Parent)
	assert.Equal(t, "init.json", doc.Metadata.Parent.File)
	require.Len(t, doc.Systems, 1)
	assert.Equal(t, "order-platform", doc.Systems[0].ID)
}

func TestDecodeSystemsMalformed(t *testing.T) {
	_, err := DecodeSystems([]byte(`{"systems": [`))
	assert.ErrorContains(t, err, "parsing systems document")
}

func TestReadSystemsMissingFile(t *testing.T) {
	_, err := ReadSystems(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadEnvelope(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "c1-systems.json")
	require.NoError(t, os.WriteFile(path, []byte(systemsJSON), 0o644))

	meta, err := ReadEnvelope(path)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02T09:00:00Z", meta.Timestamp)
	require.NotNil(t, meta.Parent)
	assert.Equal(t, "2026-03-01T09:00:00Z", meta.Parent.Timestamp)
}

func TestReadEnvelopeMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))

	_, err := ReadEnvelope(path)
	assert.ErrorContains(t, err, "parsing document envelope")
}

func TestReadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "init.json"),
		[]byte(`{"metadata": {"timestamp": "2026-03-01T09:00:00Z"}, "repositories": []}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c1-systems.json"), []byte(systemsJSON), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib-docs-pika.json"),
		[]byte(`{"metadata": {"timestamp": "2026-03-05T09:00:00Z"}, "entities": []}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib-docs-celery.json"),
		[]byte(`{"metadata": {"timestamp": "2026-03-05T10:00:00Z"}, "entities": []}`), 0o644))
	// Not a stage file; must be ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.json"), []byte(`{}`), 0o644))

	m, err := ReadDir(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, m.Dir)
	assert.NotNil(t, m.Init)
	assert.NotNil(t, m.Systems)
	assert.Nil(t, m.Containers)
	assert.Nil(t, m.Components)

	// Glob order is sorted, so celery precedes pika.
	require.Len(t, m.LibDocs, 2)
	assert.Equal(t, filepath.Join(dir, "lib-docs-celery.json"), m.LibDocs[0].Path)
	assert.Equal(t, filepath.Join(dir, "lib-docs-pika.json"), m.LibDocs[1].Path)
}

func TestReadDirEmpty(t *testing.T) {
	m, err := ReadDir(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, m.Init)
	assert.Empty(t, m.LibDocs)
}

func TestReadDirCorruptStage(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c2-containers.json"), []byte("not json"), 0o644))

	_, err := ReadDir(dir)
	assert.ErrorContains(t, err, "parsing containers document")
}

func TestStagePath(t *testing.T) {
	assert.Equal(t, filepath.Join("model", "c3-components.json"),
		StagePath("model", schema.KindComponents))
}
