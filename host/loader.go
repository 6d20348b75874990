// Package host implements the host side of the mapping SDK: manifest
// loading and the wazero-backed runtime that instantiates mapping modules
// and serves their store and log host functions.
package host

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/lumenindex/mapping-sdk/domain/entities"
	"github.com/lumenindex/mapping-sdk/domain/ports"
)

// manifestSchema is the JSON schema every mapping manifest must satisfy
// before its entity definitions are registered.
const manifestSchema = `{
  "type": "object",
  "required": ["name", "version"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "version": {"type": "string", "minLength": 1},
    "description": {"type": "string"},
    "sdk_version": {"type": "string"},
    "entities": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "properties": {
          "description": {"type": "string"},
          "attributes": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["key", "kind"],
              "properties": {
                "key": {"type": "string", "minLength": 1},
                "kind": {"enum": ["string", "int32", "bigint", "bytes", "bool", "bigdecimal", "array", "null"]},
                "required": {"type": "boolean"}
              }
            }
          }
        }
      }
    },
    "handlers": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["export"],
        "properties": {
          "export": {"type": "string", "minLength": 1},
          "description": {"type": "string"}
        }
      }
    }
  }
}`

// SDKVersion is stamped onto loaded manifests that do not declare the SDK
// version they were authored against.
const SDKVersion = "0.1.0"

// Loader parses and validates mapping manifests and feeds their entity
// definitions into a registry.
type Loader struct {
	registry ports.DefinitionRegistry
	schema   *jsonschema.Schema
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithRegistry sets the registry receiving loaded entity definitions.
func WithRegistry(registry ports.DefinitionRegistry) LoaderOption {
	return func(l *Loader) {
		l.registry = registry
	}
}

// NewLoader creates a Loader. The built-in manifest schema is compiled
// once here; it is a constant, so compilation cannot fail at run time.
func NewLoader(opts ...LoaderOption) *Loader {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("manifest.json", strings.NewReader(manifestSchema)); err != nil {
		panic("host: failed to add manifest schema resource: " + err.Error())
	}
	schema, err := compiler.Compile("manifest.json")
	if err != nil {
		panic("host: failed to compile manifest schema: " + err.Error())
	}

	l := &Loader{schema: schema}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadManifest parses a YAML manifest, validates it against the manifest
// schema, and registers its entity definitions with the configured
// registry. The parsed manifest is returned on success.
func (l *Loader) LoadManifest(raw []byte) (*entities.Manifest, error) {
	var manifest entities.Manifest
	if err := yaml.Unmarshal(raw, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
	}

	if err := l.validate(&manifest); err != nil {
		return nil, err
	}
	if manifest.SDKVersion == "" {
		manifest.SDKVersion = SDKVersion
	}

	if l.registry != nil {
		for name, def := range manifest.Entities {
			if err := l.registry.Register(name, def); err != nil {
				return nil, fmt.Errorf("failed to register entity type %s: %w", name, err)
			}
		}
	}

	return &manifest, nil
}

// validate checks the manifest against the built-in schema. The manifest
// is round-tripped through JSON because the schema library validates plain
// interface{} trees.
func (l *Loader) validate(manifest *entities.Manifest) error {
	b, err := json.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("failed to prepare manifest for validation: %w", err)
	}
	var obj interface{}
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("failed to prepare manifest for validation: %w", err)
	}

	if err := l.schema.Validate(obj); err != nil {
		return fmt.Errorf("manifest validation failed: %w", err)
	}
	return nil
}
