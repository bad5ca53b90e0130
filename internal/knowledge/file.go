package knowledge

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrSchemaInvalid is returned when the knowledge base document does not
// have the expected shape.
var ErrSchemaInvalid = errors.New("knowledge base schema invalid")

const documentSchema = `{
	"type": "object",
	"required": ["symptoms"],
	"properties": {
		"symptoms": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["condition", "keywords"],
				"properties": {
					"condition": {"type": "string"},
					"keywords": {"type": "array", "items": {"type": "string"}}
				}
			}
		}
	}
}`

var schemaLoader = gojsonschema.NewStringLoader(documentSchema)

type document struct {
	Symptoms []Condition `json:"symptoms"`
}

// LoadFile reads a {"symptoms": [...]} document. It never returns a nil Base:
// on any failure the Base is empty and the error says why.
func LoadFile(path string) (*Base, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Empty(), fmt.Errorf("read knowledge base %s: %w", path, err)
	}
	return Parse(data)
}

// Parse validates and decodes a knowledge base document.
func Parse(data []byte) (*Base, error) {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return Empty(), fmt.Errorf("parse knowledge base: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return Empty(), fmt.Errorf("%w: %s", ErrSchemaInvalid, strings.Join(errs, "; "))
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Empty(), fmt.Errorf("decode knowledge base: %w", err)
	}
	return &Base{conditions: doc.Symptoms}, nil
}
