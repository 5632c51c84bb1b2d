package prefabs

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

var (
	schemaMu    sync.Mutex
	schemaCache = map[string]*jsonschema.Schema{}
)

// schemaFor compiles the schema that sits next to a yaml file, e.g.
// game.yaml is checked against game.schema.json.
func schemaFor(name string) (*jsonschema.Schema, error) {
	schemaName := strings.TrimSuffix(tuningPath(name), ".yaml") + ".schema.json"

	schemaMu.Lock()
	defer schemaMu.Unlock()
	if s, ok := schemaCache[schemaName]; ok {
		return s, nil
	}
	raw, err := SchemaFS.ReadFile(schemaName)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load schema %s: %w", schemaName, err)
	}
	s, err := jsonschema.CompileString(schemaName, string(raw))
	if err != nil {
		return nil, fmt.Errorf("prefabs: compile schema %s: %w", schemaName, err)
	}
	schemaCache[schemaName] = s
	return s, nil
}

// Validate checks raw yaml against its schema. The document goes through a
// json round trip so the validator only sees json types.
func Validate(name string, data []byte) error {
	s, err := schemaFor(name)
	if err != nil {
		return err
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("prefabs: unmarshal %s: %w", name, err)
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("prefabs: validate %s: %w", name, err)
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("prefabs: validate %s: %w", name, err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("prefabs: validate %s: %w", name, err)
	}
	return nil
}
