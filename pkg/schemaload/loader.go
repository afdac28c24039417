// Package schemaload reads questionnaire schemas from their YAML authoring
// format. Schemas are authored out-of-band; this is the ingestion path that
// turns an authored file into a validated Schema value.
package schemaload

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/modeldoc/modeldoc-engine/pkg/models"
)

// Load decodes one schema document and validates it.
func Load(r io.Reader) (*models.Schema, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var schema models.Schema
	if err := dec.Decode(&schema); err != nil {
		return nil, fmt.Errorf("failed to decode schema: %w", err)
	}
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	return &schema, nil
}

// LoadFile loads and validates a single schema file.
func LoadFile(path string) (*models.Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open schema file: %w", err)
	}
	defer f.Close()

	schema, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return schema, nil
}

// LoadDir loads every .yaml/.yml file in dir, ordered by schema order then
// owner key. Duplicate owner keys across files are rejected.
func LoadDir(dir string) ([]*models.Schema, error) {
	var schemas []*models.Schema
	seen := make(map[models.OwnerKey]string)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}
		schema, err := LoadFile(path)
		if err != nil {
			return err
		}
		if prev, dup := seen[schema.OwnerKey]; dup {
			return fmt.Errorf("%s: owner key %s already defined in %s", path, schema.OwnerKey, prev)
		}
		seen[schema.OwnerKey] = path
		schemas = append(schemas, schema)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(schemas, func(i, j int) bool {
		if schemas[i].Order != schemas[j].Order {
			return schemas[i].Order < schemas[j].Order
		}
		return schemas[i].OwnerKey < schemas[j].OwnerKey
	})
	return schemas, nil
}
