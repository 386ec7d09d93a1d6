// Package manifest loads and validates the plugin manifest document. The
// manifest identifies the plugin to the host: its invocation id, display
// name, version and artwork. It is validated against a JSON Schema at load
// time so a broken manifest is caught before any route runs.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ManifestError represents a manifest load or validation failure.
type ManifestError struct {
	Path    string
	Details []string
	Message string
}

func (e *ManifestError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Details, "; "))
	}
	return e.Message
}

// Manifest describes the plugin to the host application.
type Manifest struct {
	// ID is the plugin identifier used in plugin:// invocation URLs.
	ID string `json:"id"`

	// Name is the display name shown by the host.
	Name string `json:"name"`

	// Version is the plugin version string.
	Version string `json:"version"`

	// Description is an optional one-line description.
	Description string `json:"description,omitempty"`

	// Icon is the artwork used for notifications and the plugin tile.
	Icon string `json:"icon,omitempty"`

	// Fanart is the optional background artwork.
	Fanart string `json:"fanart,omitempty"`

	// Author is the optional plugin author/maintainer.
	Author *string `json:"author,omitempty"`
}

// schemaJSON is the Draft-7 schema every manifest must satisfy.
const schemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["id", "name", "version"],
  "properties": {
    "id": {
      "type": "string",
      "pattern": "^[a-z0-9][a-z0-9._-]*$"
    },
    "name": {
      "type": "string",
      "minLength": 1
    },
    "version": {
      "type": "string",
      "minLength": 1
    },
    "description": {"type": "string"},
    "icon": {"type": "string"},
    "fanart": {"type": "string"},
    "author": {"type": "string"}
  },
  "additionalProperties": false
}`

// New creates a manifest with the three required fields set.
func New(id, name, version string) *Manifest {
	return &Manifest{
		ID:      id,
		Name:    name,
		Version: version,
	}
}

// WithIcon sets the notification/tile artwork.
func (m *Manifest) WithIcon(icon string) *Manifest {
	m.Icon = icon
	return m
}

// WithAuthor sets the plugin author.
func (m *Manifest) WithAuthor(author string) *Manifest {
	m.Author = &author
	return m
}

// Load reads and validates a manifest document from disk.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ManifestError{
			Path:    path,
			Message: fmt.Sprintf("failed to read manifest: %v", err),
		}
	}

	m, err := Parse(data)
	if err != nil {
		if manifestErr, ok := err.(*ManifestError); ok {
			manifestErr.Path = path
		}
		return nil, err
	}
	return m, nil
}

// Parse validates and decodes a manifest document.
func Parse(data []byte) (*Manifest, error) {
	schemaLoader := gojsonschema.NewStringLoader(schemaJSON)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, &ManifestError{
			Message: fmt.Sprintf("manifest is not valid JSON: %v", err),
		}
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return nil, &ManifestError{
			Message: "manifest failed schema validation",
			Details: details,
		}
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &ManifestError{
			Message: fmt.Sprintf("failed to decode manifest: %v", err),
		}
	}
	return &m, nil
}
