package card

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://card.json"

// cardSchema describes the /card payload. Content fields are optional so a
// sparse card still loads; identity fields are not.
const cardSchema = `{
  "type": "object",
  "required": ["filename", "topic"],
  "properties": {
    "filename":   {"type": "string", "minLength": 1},
    "topic":      {"type": "string"},
    "vignette":   {"type": ["string", "null"]},
    "foundation": {"type": ["string", "null"]},
    "algorithm":  {"type": ["string", "null"]},
    "keys":       {"type": ["string", "null"]},
    "pearls":     {"type": ["string", "null"]},
    "mcq": {
      "oneOf": [
        {"type": "null"},
        {
          "type": "object",
          "required": ["question", "options", "answer"],
          "properties": {
            "question": {"type": "string"},
            "options":  {"type": "array", "items": {"type": "string"}},
            "answer":   {"type": "string"}
          }
        }
      ]
    }
  }
}`

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func cardValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var doc any
		if err := json.Unmarshal([]byte(cardSchema), &doc); err != nil {
			compileErr = fmt.Errorf("parse card schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// Decode validates raw against the card schema and unmarshals it.
func Decode(raw []byte) (*Card, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := cardValidator()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("card schema validation failed: %w", err)
	}

	var c Card
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode card: %w", err)
	}
	return &c, nil
}
