package canvas

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// PropertyValidator validates raw component property payloads against
// the schema for their component type.
type PropertyValidator interface {
	Validate(t ComponentType, properties map[string]any) error
}

// JSONSchemaValidator compiles per-type schemas and validates property maps.
type JSONSchemaValidator struct {
	mu       sync.RWMutex
	compiled map[ComponentType]*jsonschema.Schema
}

// NewJSONSchemaValidator builds a validator backed by jsonschema v5.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{
		compiled: make(map[ComponentType]*jsonschema.Schema),
	}
}

// Validate ensures the provided properties satisfy the component schema.
func (v *JSONSchemaValidator) Validate(t ComponentType, properties map[string]any) error {
	raw, ok := componentSchemas[t]
	if !ok {
		return fmt.Errorf("canvas: no schema registered for component type %q", t)
	}
	schema, err := v.schemaFor(t, raw)
	if err != nil {
		return err
	}
	var payload map[string]any
	if properties == nil {
		payload = map[string]any{}
	} else {
		data, err := json.Marshal(properties)
		if err != nil {
			return fmt.Errorf("canvas: marshal properties for %s: %w", t, err)
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return fmt.Errorf("canvas: normalize properties for %s: %w", t, err)
		}
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("canvas: properties for %s failed validation: %w", t, err)
	}
	return nil
}

func (v *JSONSchemaValidator) schemaFor(t ComponentType, raw map[string]any) (*jsonschema.Schema, error) {
	v.mu.RLock()
	schema, ok := v.compiled[t]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("canvas: marshal schema %s: %w", t, err)
	}
	compiler := jsonschema.NewCompiler()
	name := string(t) + ".json"
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("canvas: load schema %s: %w", t, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("canvas: compile schema %s: %w", t, err)
	}
	v.mu.Lock()
	v.compiled[t] = compiled
	v.mu.Unlock()
	return compiled, nil
}

type noopPropertyValidator struct{}

func (noopPropertyValidator) Validate(ComponentType, map[string]any) error { return nil }

func dataPointSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"name", "value"},
		"properties": map[string]any{
			"name":  map[string]any{"type": "string"},
			"value": map[string]any{"type": "number"},
		},
	}
}

func chartDataSchema(extra map[string]any) map[string]any {
	props := map[string]any{
		"title": map[string]any{"type": "string"},
		"data": map[string]any{
			"type":  "array",
			"items": dataPointSchema(),
		},
		"rows": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "object"},
		},
		"series": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []string{"key"},
				"properties": map[string]any{
					"key":   map[string]any{"type": "string"},
					"label": map[string]any{"type": "string"},
					"color": map[string]any{"type": "string"},
				},
			},
		},
		"color": map[string]any{"type": "string"},
	}
	for k, v := range extra {
		props[k] = v
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
}

var componentSchemas = map[ComponentType]map[string]any{
	TypeKpiCard: {
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{"type": "string"},
			"value": map[string]any{"type": "number"},
			"unit":  map[string]any{"type": "string"},
			"color": map[string]any{"type": "string"},
		},
		"additionalProperties": false,
	},
	TypeBarChart: chartDataSchema(map[string]any{
		"stacked": map[string]any{"type": "boolean", "default": false},
	}),
	TypeLineChart: chartDataSchema(map[string]any{
		"smooth": map[string]any{"type": "boolean", "default": false},
	}),
	TypeAreaChart: chartDataSchema(nil),
	TypePieChart: chartDataSchema(map[string]any{
		"donut": map[string]any{"type": "boolean", "default": false},
	}),
	TypeScatterChart: chartDataSchema(nil),
	TypeTable: {
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{"type": "string"},
			"columns": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"rows": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
		},
		"additionalProperties": false,
	},
	TypeText: {
		"type":     "object",
		"required": []string{"text"},
		"properties": map[string]any{
			"text":     map[string]any{"type": "string"},
			"fontSize": map[string]any{"type": "number", "minimum": 1},
			"color":    map[string]any{"type": "string"},
		},
		"additionalProperties": false,
	},
	TypeShape: {
		"type": "object",
		"properties": map[string]any{
			"shape": map[string]any{
				"type": "string",
				"enum": []string{"rectangle", "circle", "line"},
			},
			"fill": map[string]any{"type": "string"},
		},
		"additionalProperties": false,
	},
}
