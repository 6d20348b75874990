// Package validation checks entities against the definitions declared in a
// mapping manifest.
package validation

import (
	"encoding/json"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/invopop/jsonschema"

	"github.com/lumenindex/mapping-sdk/domain/entities"
	"github.com/lumenindex/mapping-sdk/domain/ports"
)

// EntityValidator validates entities against a definition registry.
type EntityValidator struct {
	registry ports.DefinitionRegistry
}

// NewEntityValidator creates a validator backed by the given registry.
func NewEntityValidator(registry ports.DefinitionRegistry) ports.EntityValidator {
	return &EntityValidator{registry: registry}
}

// Validate checks one entity of the given type. Unregistered types are
// rejected in strict mode and passed through otherwise. Null-tagged
// attributes only need to match a declared key; their kind is not checked,
// since null is how mappings unset attributes of any kind.
func (v *EntityValidator) Validate(entityType string, e *entities.Entity) (*entities.ValidationResult, error) {
	result := &entities.ValidationResult{Valid: true}

	def, ok := v.registry.Lookup(entityType)
	if !ok {
		if v.registry.Strict() {
			result.Valid = false
			result.Errors = append(result.Errors, entities.ValidationError{
				Field:   entityType,
				Message: "no definition registered for entity type",
			})
		}
		return result, nil
	}

	for _, entry := range e.Entries() {
		attr, found, err := matchAttribute(def, entry.Key)
		if err != nil {
			return nil, err
		}
		if !found {
			result.Valid = false
			result.Errors = append(result.Errors, entities.ValidationError{
				Field:   entry.Key,
				Message: "attribute not declared for entity type " + entityType,
			})
			continue
		}
		if entry.Value.IsNull() {
			continue
		}
		if got := entry.Value.Kind().String(); got != attr.Kind {
			result.Valid = false
			result.Errors = append(result.Errors, entities.ValidationError{
				Field:   entry.Key,
				Message: fmt.Sprintf("declared kind %s, stored %s", attr.Kind, got),
			})
		}
	}

	for _, attr := range def.Attributes {
		if !attr.Required {
			continue
		}
		if err := checkRequired(attr, e, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// matchAttribute finds the first declared attribute whose key or glob
// pattern covers the given key.
func matchAttribute(def entities.EntityDef, key string) (entities.AttributeDef, bool, error) {
	for _, attr := range def.Attributes {
		if attr.Key == key {
			return attr, true, nil
		}
		ok, err := doublestar.Match(attr.Key, key)
		if err != nil {
			return entities.AttributeDef{}, false, fmt.Errorf("invalid attribute pattern %q: %w", attr.Key, err)
		}
		if ok {
			return attr, true, nil
		}
	}
	return entities.AttributeDef{}, false, nil
}

// checkRequired verifies that at least one non-null attribute of the
// entity is covered by the required declaration.
func checkRequired(attr entities.AttributeDef, e *entities.Entity, result *entities.ValidationResult) error {
	for _, entry := range e.Entries() {
		if entry.Value.IsNull() {
			continue
		}
		if entry.Key == attr.Key {
			return nil
		}
		ok, err := doublestar.Match(attr.Key, entry.Key)
		if err != nil {
			return fmt.Errorf("invalid attribute pattern %q: %w", attr.Key, err)
		}
		if ok {
			return nil
		}
	}
	result.Valid = false
	result.Errors = append(result.Errors, entities.ValidationError{
		Field:   attr.Key,
		Message: "required attribute missing or null",
	})
	return nil
}

// ManifestSchema generates a JSON schema for the manifest document type,
// for editors and external tooling that lint manifests before loading.
func ManifestSchema() ([]byte, error) {
	reflector := new(jsonschema.Reflector)
	schema := reflector.Reflect(&entities.Manifest{})
	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to generate manifest schema: %w", err)
	}
	return out, nil
}
