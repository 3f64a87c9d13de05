package intelligence

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// Contract schemas are intentionally loose: they pin the object shape and the
// types of known fields, never requiring optional content. Normalization runs
// before validation, so a failure here means a normalization bug, not a bad
// oracle response.
const intelligenceSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["document_meta", "design_system"],
  "properties": {
    "document_meta": {
      "type": "object",
      "required": ["title", "domain", "document_type"],
      "properties": {
        "title": {"type": "string", "minLength": 1},
        "subtitle": {"type": "string"},
        "domain": {"enum": ["medical", "business", "technology", "finance", "legal", "research", "marketing", "other"]},
        "document_type": {"type": "string", "minLength": 1},
        "complexity_level": {"type": "string"},
        "target_audience": {"type": "string"},
        "estimated_reading_time": {"type": "string"}
      }
    },
    "content_intelligence": {
      "type": "object",
      "properties": {
        "main_themes": {"type": "array", "items": {"type": "string"}},
        "key_insights": {"type": "array", "items": {"type": "string"}},
        "critical_data_points": {"type": "array", "items": {"type": "object"}},
        "executive_summary": {"type": "string"}
      }
    },
    "structure_optimization": {
      "type": "object",
      "properties": {
        "optimal_section_order": {"type": "array", "items": {"type": "integer"}},
        "page_break_recommendations": {"type": "array", "items": {"type": "integer"}}
      }
    },
    "design_system": {
      "type": "object",
      "required": ["color_palette", "typography_hierarchy"],
      "properties": {
        "color_palette": {
          "type": "object",
          "required": ["primary", "secondary", "accent", "neutral"],
          "additionalProperties": {"type": "string", "pattern": "^#[0-9A-Fa-f]{6}$"}
        },
        "typography_hierarchy": {
          "type": "object",
          "required": ["h1_size", "h2_size", "body_size"],
          "additionalProperties": {"type": "number", "exclusiveMinimum": 0}
        }
      }
    }
  }
}`

const optimizationSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["enhanced_header", "content_structure"],
  "properties": {
    "enhanced_header": {"type": "string", "minLength": 1, "maxLength": 80},
    "content_structure": {
      "type": "object",
      "required": ["key_points", "data_extracted", "subsections"],
      "properties": {
        "executive_summary": {"type": "string"},
        "key_points": {"type": "array", "items": {"type": "string"}},
        "data_extracted": {"type": "array", "items": {"type": "object"}},
        "subsections": {"type": "array", "minItems": 1, "items": {"type": "object"}}
      }
    },
    "visualization_data": {
      "type": "object",
      "properties": {
        "has_visualizable_data": {"type": "boolean"},
        "chart_type": {"enum": ["table", "bar", "pie", "line", "none"]},
        "data_points": {"type": "array", "items": {"type": "object"}}
      }
    }
  }
}`

const layoutSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["document_flow", "layout_specifications", "page_optimization"],
  "properties": {
    "document_flow": {"type": "object"},
    "layout_specifications": {
      "type": "object",
      "required": ["margins", "column_layout"],
      "properties": {
        "margins": {
          "type": "object",
          "additionalProperties": {"type": "number", "exclusiveMinimum": 0}
        },
        "column_layout": {"type": "string", "minLength": 1}
      }
    },
    "page_optimization": {
      "type": "object",
      "required": ["optimal_page_breaks"],
      "properties": {
        "optimal_page_breaks": {"type": "array", "items": {"type": "integer"}}
      }
    }
  }
}`

var (
	schemaCacheMu sync.Mutex
	schemaCache   = make(map[string]*jsonschema.Schema)
)

func compileSchema(raw string) (*jsonschema.Schema, error) {
	schemaCacheMu.Lock()
	defer schemaCacheMu.Unlock()
	if s, ok := schemaCache[raw]; ok {
		return s, nil
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("contract.json", strings.NewReader(raw)); err != nil {
		return nil, err
	}
	s, err := compiler.Compile("contract.json")
	if err != nil {
		return nil, err
	}
	schemaCache[raw] = s
	return s, nil
}

// validateContract round-trips a normalized contract through JSON and checks
// it against its schema.
func validateContract(schemaRaw string, contract any) error {
	schema, err := compileSchema(schemaRaw)
	if err != nil {
		return fmt.Errorf("failed to compile contract schema: %w", err)
	}
	encoded, err := json.Marshal(contract)
	if err != nil {
		return err
	}
	var doc any
	dec := json.NewDecoder(bytes.NewReader(encoded))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("contract validation failed: %w", err)
	}
	return nil
}
