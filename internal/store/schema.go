package store

import (
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// snapshotSchema describes the persisted document. Validation runs once on
// load so a hand-edited or truncated data file fails fast instead of
// surfacing as odd behavior deep in a mutation.
const snapshotSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["users"],
  "properties": {
    "users": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "password", "boards"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "password": {"type": "string"},
          "boards": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["id", "name", "lists"],
              "properties": {
                "id": {"type": "integer", "minimum": 1},
                "name": {"type": "string"},
                "next_list_id": {"type": "integer"},
                "lists": {
                  "type": "array",
                  "items": {
                    "type": "object",
                    "required": ["id", "title", "items"],
                    "properties": {
                      "id": {"type": "integer"},
                      "title": {"type": "string"},
                      "color": {"type": "string"},
                      "next_item_id": {"type": "integer"},
                      "items": {
                        "type": "array",
                        "items": {
                          "type": "object",
                          "required": ["id", "item_text", "priority", "completed"],
                          "properties": {
                            "id": {"type": "integer"},
                            "item_text": {"type": "string"},
                            "priority": {"enum": ["Baixa", "Média", "Alta"]},
                            "description": {"type": "string"},
                            "tags": {"type": "array", "items": {"type": "string"}},
                            "completed": {"type": "boolean"}
                          }
                        }
                      }
                    }
                  }
                }
              }
            }
          }
        }
      }
    }
  }
}`

var snapshotValidator = jsonschema.MustCompileString("snapshot.schema.json", snapshotSchema)

// validateSnapshot checks a decoded document against the schema.
func validateSnapshot(doc any) error {
	if err := snapshotValidator.Validate(doc); err != nil {
		return fmt.Errorf("data file does not match the expected layout: %w", err)
	}
	return nil
}
