// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/cleancore/pkg/types"
)

// Export formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Export writes the catalog to path as YAML or JSON. Unlike config.json the
// export is a list, so it reads the same in either format.
func Export(c *types.Catalog, path, format string) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatYAML, "":
		data, err = yaml.Marshal(c)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
	case FormatJSON:
		data, err = json.MarshalIndent(c, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	return os.WriteFile(path, data, 0o644)
}

// Import reads a catalog written by Export. The format follows the file
// extension; anything other than .json is read as YAML.
func Import(path string) (*types.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading export: %w", err)
	}

	var c types.Catalog
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &c)
	} else {
		err = yaml.Unmarshal(data, &c)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing export %s: %w", path, err)
	}

	for i, rs := range c.Sets {
		if strings.TrimSpace(rs.Name) == "" {
			return nil, fmt.Errorf("parsing export %s: rule set %d has no name", path, i+1)
		}
	}
	return &c, nil
}
