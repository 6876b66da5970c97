// Package typemap derives blotter form type maps (dotted field path to value
// type) from OpenAPI component schemas.
package typemap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// ErrSchemaNotFound is returned when a component schema is missing.
var ErrSchemaNotFound = errors.New("typemap: schema not found")

// Document is a loaded OpenAPI document whose component schemas describe
// trade securities.
type Document struct {
	spec *openapi3.T
}

// Load parses an OpenAPI document (JSON or YAML).
func Load(ctx context.Context, data []byte) (*Document, error) {
	if len(data) == 0 {
		return nil, errors.New("typemap: document payload is empty")
	}
	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("typemap: load document: %w", err)
	}
	return &Document{spec: spec}, nil
}

// LoadFile reads and parses an OpenAPI document from disk.
func LoadFile(ctx context.Context, path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("typemap: read %s: %w", path, err)
	}
	return Load(ctx, data)
}

// Schemas lists the component schema names, sorted.
func (d *Document) Schemas() []string {
	if d == nil || d.spec == nil || d.spec.Components == nil {
		return nil
	}
	names := make([]string, 0, len(d.spec.Components.Schemas))
	for name := range d.spec.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TypeMap flattens the named component schema.
func (d *Document) TypeMap(schema string) (map[string]string, error) {
	if d == nil || d.spec == nil || d.spec.Components == nil {
		return nil, fmt.Errorf("%w: %q", ErrSchemaNotFound, schema)
	}
	ref, ok := d.spec.Components.Schemas[schema]
	if !ok || ref == nil {
		return nil, fmt.Errorf("%w: %q", ErrSchemaNotFound, schema)
	}
	return Flatten(ref), nil
}

// Flatten walks an object schema and records the type of every leaf under
// its dotted path. Array paths end in "[]"; formats are appended after a
// colon ("string:date"). Recursive references stop at the first repeat.
func Flatten(ref *openapi3.SchemaRef) map[string]string {
	out := map[string]string{}
	walk(ref, "", out, map[*openapi3.Schema]bool{})
	return out
}

func walk(ref *openapi3.SchemaRef, prefix string, out map[string]string, visiting map[*openapi3.Schema]bool) {
	if ref == nil || ref.Value == nil {
		return
	}
	schema := ref.Value
	if visiting[schema] {
		if prefix != "" {
			out[prefix] = "object"
		}
		return
	}
	visiting[schema] = true
	defer delete(visiting, schema)

	properties := collectProperties(schema)
	typ := schemaType(schema)

	switch {
	case len(properties) > 0:
		for name, property := range properties {
			walk(property, join(prefix, name), out, visiting)
		}
	case typ == "array":
		if schema.Items != nil && schema.Items.Value != nil && len(collectProperties(schema.Items.Value)) > 0 {
			walk(schema.Items, prefix+"[]", out, visiting)
			return
		}
		if prefix != "" {
			out[prefix+"[]"] = leafType(schema.Items)
		}
	case prefix != "":
		out[prefix] = leafType(ref)
	}
}

func collectProperties(schema *openapi3.Schema) openapi3.Schemas {
	if len(schema.AllOf) == 0 {
		return schema.Properties
	}
	merged := openapi3.Schemas{}
	for _, part := range schema.AllOf {
		if part == nil || part.Value == nil {
			continue
		}
		for name, property := range collectProperties(part.Value) {
			merged[name] = property
		}
	}
	for name, property := range schema.Properties {
		merged[name] = property
	}
	return merged
}

func leafType(ref *openapi3.SchemaRef) string {
	if ref == nil || ref.Value == nil {
		return "any"
	}
	typ := schemaType(ref.Value)
	if typ == "" {
		typ = "any"
	}
	if format := strings.TrimSpace(ref.Value.Format); format != "" {
		return typ + ":" + format
	}
	return typ
}

func schemaType(schema *openapi3.Schema) string {
	if schema.Type == nil {
		return ""
	}
	values := schema.Type.Slice()
	if len(values) == 0 {
		return ""
	}
	return strings.Join(values, ",")
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
