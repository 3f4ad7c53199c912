// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportImport(t *testing.T) {
	for _, tt := range []struct{ format, file string }{
		{FormatYAML, "catalog.yaml"},
		{FormatJSON, "catalog.json"},
	} {
		t.Run(tt.format, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			want := sampleCatalog()
			require.NoError(t, Export(want, path, tt.format))

			got, err := Import(path)
			require.NoError(t, err)
			assert.Equal(t, want.Names(), got.Names())
			assert.Equal(t, want.Sets[1].Entries, got.Sets[1].Entries)
			assert.Equal(t, want.Sets[1].RawLines, got.Sets[1].RawLines)
		})
	}
}

func TestExportUnknownFormat(t *testing.T) {
	err := Export(sampleCatalog(), filepath.Join(t.TempDir(), "x"), "xml")
	assert.ErrorContains(t, err, "unsupported format")
}

func TestImportRejectsNamelessSets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("configs:\n  - entries: []\n"), 0o644))
	_, err := Import(path)
	assert.ErrorContains(t, err, "has no name")
}

func TestImportMissingFile(t *testing.T) {
	_, err := Import(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
