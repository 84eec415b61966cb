package pack

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// configSchemaDef is the structural schema a pack's config.yaml must satisfy
// once decoded. It checks shapes and types only; cross-field invariants
// (domain count, theme references, title ladder) are enforced in validate.go.
// Unrecognized top-level keys are allowed for forward compatibility.
var configSchemaDef = map[string]any{
	"type":     "object",
	"required": []any{"certification", "domains", "presentation", "scoring"},
	"properties": map[string]any{
		"certification": map[string]any{
			"type":     "object",
			"required": []any{"id", "name"},
			"properties": map[string]any{
				"id":           map[string]any{"type": "string", "pattern": "^[a-z0-9_-]+$"},
				"name":         map[string]any{"type": "string"},
				"full_name":    map[string]any{"type": "string"},
				"organization": map[string]any{"type": "string"},
			},
		},
		"domains": map[string]any{
			"type":     "object",
			"required": []any{"count", "list"},
			"properties": map[string]any{
				"count": map[string]any{"type": "integer", "minimum": 1},
				"list": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":     "object",
						"required": []any{"id", "name"},
						"properties": map[string]any{
							"id":         map[string]any{"type": "integer", "minimum": 1},
							"name":       map[string]any{"type": "string"},
							"short_name": map[string]any{"type": "string"},
							"themes":     map[string]any{"type": "object"},
						},
					},
				},
			},
		},
		"presentation": map[string]any{
			"type":     "object",
			"required": []any{"themes"},
			"properties": map[string]any{
				"themes": map[string]any{
					"type":          "object",
					"minProperties": 1,
					"additionalProperties": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"display_name":    map[string]any{"type": "string"},
							"short_name":      map[string]any{"type": "string"},
							"description":     map[string]any{"type": "string"},
							"game_title":      map[string]any{"type": "string"},
							"player_term":     map[string]any{"type": "string"},
							"narrator":        map[string]any{"type": "string"},
							"victory_message": map[string]any{"type": "string"},
						},
					},
				},
			},
		},
		"scoring": map[string]any{
			"type":     "object",
			"required": []any{"titles"},
			"properties": map[string]any{
				"starting_hp":          map[string]any{"type": "integer", "minimum": 1},
				"max_hp":               map[string]any{"type": "integer", "minimum": 1},
				"regen_per_correct":    map[string]any{"type": "integer", "minimum": 0},
				"scenarios_per_domain": map[string]any{"type": "integer", "minimum": 1},
				"titles": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items": map[string]any{
						"type":     "object",
						"required": []any{"threshold"},
						"properties": map[string]any{
							"threshold": map[string]any{"type": "integer", "minimum": 0},
						},
						"additionalProperties": map[string]any{"type": "string"},
					},
				},
				"performance": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"passing": map[string]any{"type": "number", "minimum": 0, "maximum": 100},
					},
				},
			},
		},
	},
}

var (
	configSchemaOnce sync.Once
	configSchema     *jsonschema.Schema
	configSchemaErr  error
)

// compiledConfigSchema compiles the config schema exactly once.
func compiledConfigSchema() (*jsonschema.Schema, error) {
	configSchemaOnce.Do(func() {
		// The compiler expects a parsed JSON value, not Go literals with
		// typed numbers. Round-trip through encoding/json to normalize.
		raw, err := json.Marshal(configSchemaDef)
		if err != nil {
			configSchemaErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var parsed any
		if err := json.Unmarshal(raw, &parsed); err != nil {
			configSchemaErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const url = "schema://certquest-config.json"
		if err := c.AddResource(url, parsed); err != nil {
			configSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		configSchema, configSchemaErr = c.Compile(url)
	})
	return configSchema, configSchemaErr
}

// validateConfigDocument checks a decoded config document against the
// structural schema. doc must be a YAML document decoded into plain Go
// values; it is normalized through JSON before validation.
func validateConfigDocument(doc any) error {
	schema, err := compiledConfigSchema()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("normalize document: %w", err)
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("normalize document: %w", err)
	}
	return schema.Validate(parsed)
}
