// Package openapi describes the HTTP surface as an OpenAPI 3.0 document.
// The document is served at /openapi.json and exported by the openapi
// command.
package openapi

import (
	"encoding/json"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

const (
	Title   = "Ticket Booking API"
	Version = "1.0.0"
)

// JSON renders the document indented.
func JSON(d *openapi3.T) ([]byte, error) { return json.MarshalIndent(d, "", "  ") }

// YAML renders the document as YAML.  The JSON form is decoded into plain
// maps first so the output carries exactly the JSON field names.
func YAML(d *openapi3.T) ([]byte, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	var tree interface{}
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return nil, err
	}
	return yaml.Marshal(tree)
}
