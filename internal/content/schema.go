package content

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const scenariosSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["scenarios"],
  "properties": {
    "meta": {
      "type": "object",
      "properties": {
        "version": {"type": "string"},
        "title": {"type": "string"},
        "updated": {"type": "string"}
      }
    },
    "scenarios": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "title", "level", "trigger", "expected"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "title": {"type": "string", "minLength": 1},
          "level": {"type": "integer", "minimum": 1},
          "trigger": {"type": "string"},
          "tags": {"type": "array", "items": {"type": "string"}},
          "expected": {
            "type": "object",
            "required": ["empowerment"],
            "properties": {"empowerment": {"type": "string", "minLength": 1}}
          },
          "escalate_if": {"type": "array", "items": {"type": "string"}},
          "gold_script": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`

const rubricSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$defs": {
    "points": {"type": "number", "minimum": 0},
    "range": {"type": "array", "items": {"type": "number"}, "minItems": 2, "maxItems": 2}
  },
  "type": "object",
  "required": ["weights", "penalties", "pass_threshold", "bands"],
  "properties": {
    "weights": {
      "type": "object",
      "required": ["recognition_tone", "least", "empowerment", "escalation", "script_quality", "ops_followthrough"],
      "additionalProperties": {"$ref": "#/$defs/points"}
    },
    "penalties": {
      "type": "object",
      "required": ["refund_discount_promise", "aggregator_misroute"],
      "additionalProperties": {"$ref": "#/$defs/points"}
    },
    "pass_threshold": {"type": "number"},
    "bands": {
      "type": "object",
      "required": ["coach_me"],
      "additionalProperties": {"$ref": "#/$defs/range"}
    }
  }
}`

const misstepsSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["library"],
  "properties": {
    "library": {
      "type": "object",
      "required": ["refund_offer", "aggregator_misroute"],
      "additionalProperties": {
        "type": "object",
        "required": ["explain", "fix"],
        "properties": {
          "explain": {"type": "string"},
          "fix": {"type": "string"}
        }
      }
    }
  }
}`

const hintsSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "hints": {
      "type": "object",
      "additionalProperties": {"type": "array", "items": {"type": "string"}}
    }
  }
}`

// schemaSet holds the compiled schema for each content file
type schemaSet map[string]*jsonschema.Schema

func compileSchemas() (schemaSet, error) {
	sources := map[string]string{
		FileScenarios: scenariosSchema,
		FileRubric:    rubricSchema,
		FileMissteps:  misstepsSchema,
		FileHints:     hintsSchema,
	}

	set := make(schemaSet, len(sources))
	for name, src := range sources {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		url := fmt.Sprintf("https://baristacx.schemas.local/%s.schema.json", name)
		if err := c.AddResource(url, strings.NewReader(src)); err != nil {
			return nil, fmt.Errorf("load %s schema: %w", name, err)
		}
		compiled, err := c.Compile(url)
		if err != nil {
			return nil, fmt.Errorf("compile %s schema: %w", name, err)
		}
		set[name] = compiled
	}
	return set, nil
}
