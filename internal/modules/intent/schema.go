package intent

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// decisionSchema rejects documents that claim a route request without both
// endpoints and a reply.
const decisionSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["isRouteRequest"],
  "properties": {
    "isRouteRequest": {"type": "boolean"},
    "origin": {"type": ["string", "null"]},
    "destination": {"type": ["string", "null"]},
    "aiReply": {"type": ["string", "null"]}
  },
  "if": {"properties": {"isRouteRequest": {"const": true}}},
  "then": {
    "required": ["origin", "destination", "aiReply"],
    "properties": {
      "origin": {"type": "string", "pattern": "\\S"},
      "destination": {"type": "string", "pattern": "\\S"},
      "aiReply": {"type": "string", "pattern": "\\S"}
    }
  }
}`

func compileDecisionSchema() (*gojsonschema.Schema, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(decisionSchema))
	if err != nil {
		return nil, fmt.Errorf("compile decision schema: %w", err)
	}
	return schema, nil
}

// validateDecision returns a readable error for malformed or incomplete documents.
func validateDecision(schema *gojsonschema.Schema, doc string) error {
	result, err := schema.Validate(gojsonschema.NewStringLoader(doc))
	if err != nil {
		return fmt.Errorf("decode decision: %w", err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("decision does not match schema: %s", strings.Join(msgs, "; "))
}
