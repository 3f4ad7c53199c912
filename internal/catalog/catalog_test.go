// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cleancore/pkg/types"
)

func sampleCatalog() *types.Catalog {
	return &types.Catalog{Sets: []types.RuleSet{
		{Name: "default"},
		{Name: "invoices", Entries: []types.Rule{{Line: 1, Partial: "INV"}}},
		{Name: "logs"},
	}}
}

func TestNormalize(t *testing.T) {
	c := &types.Catalog{}
	Normalize(c)
	assert.Equal(t, []string{"default"}, c.Names())

	c = &types.Catalog{Sets: []types.RuleSet{{Name: "a"}}}
	Normalize(c)
	assert.Equal(t, []string{"default", "a"}, c.Names())

	c = sampleCatalog()
	Normalize(c)
	assert.Equal(t, []string{"default", "invoices", "logs"}, c.Names())
}

func TestAdd(t *testing.T) {
	c := sampleCatalog()

	rs, err := Add(c, "  reports  ", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "reports", rs.Name)
	assert.NotEmpty(t, rs.RawLines)
	assert.Equal(t, []string{"default", "invoices", "logs", "reports"}, c.Names())

	_, err = Add(c, "   ", time.Now())
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = Add(c, "logs", time.Now())
	assert.ErrorIs(t, err, ErrExists)
}

func TestRename(t *testing.T) {
	tests := []struct {
		name      string
		old, new  string
		wantErr   error
		wantNames []string
	}{
		{"keeps position", "invoices", "bills", nil, []string{"default", "bills", "logs"}},
		{"same name is a no-op", "logs", " logs ", nil, []string{"default", "invoices", "logs"}},
		{"default is protected", "default", "other", ErrProtected, nil},
		{"empty name", "logs", "", ErrEmptyName, nil},
		{"collision", "logs", "invoices", ErrExists, nil},
		{"missing", "nope", "x", ErrNotFound, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := sampleCatalog()
			got, err := Rename(c, tt.old, tt.new)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, tt.wantNames, got)
			assert.Equal(t, tt.wantNames, c.Names())
		})
	}
}

func TestRenameKeepsEntries(t *testing.T) {
	c := sampleCatalog()
	name, err := Rename(c, "invoices", " bills ")
	require.NoError(t, err)
	assert.Equal(t, "bills", name)
	require.NotNil(t, c.Get("bills"))
	assert.Equal(t, "INV", c.Get("bills").Entries[0].Partial)
	assert.Nil(t, c.Get("invoices"))
}

func TestDelete(t *testing.T) {
	c := sampleCatalog()
	require.NoError(t, Delete(c, "invoices"))
	assert.Equal(t, []string{"default", "logs"}, c.Names())

	assert.ErrorIs(t, Delete(c, "default"), ErrProtected)
	assert.ErrorIs(t, Delete(c, "invoices"), ErrNotFound)

	require.NoError(t, Delete(c, "logs"))
	assert.ErrorIs(t, Delete(c, "default"), ErrLastConfig)
	assert.Equal(t, []string{"default"}, c.Names())
}

func TestDeleteLastNonDefaultLeavesDefault(t *testing.T) {
	c := &types.Catalog{Sets: []types.RuleSet{{Name: "only"}}}
	require.NoError(t, Delete(c, "only"))
	assert.Equal(t, []string{"default"}, c.Names())
}

func TestPut(t *testing.T) {
	c := sampleCatalog()
	Put(c, types.RuleSet{Name: "logs", RawLines: []string{`1; "x"`}})
	assert.Equal(t, []string{`1; "x"`}, c.Get("logs").RawLines)
	assert.Len(t, c.Sets, 3)

	Put(c, types.RuleSet{Name: "new"})
	assert.Equal(t, "new", c.Sets[3].Name)
}
