// Package ports declares the interfaces between the SDK's layers. Concrete
// implementations live under host/ and application/.
package ports

import "github.com/lumenindex/mapping-sdk/domain/entities"

// DefinitionRegistry holds the entity definitions known to a host.
type DefinitionRegistry interface {
	// Register adds a definition for the given entity type name.
	Register(name string, def entities.EntityDef) error

	// Lookup returns the definition for an entity type name.
	Lookup(name string) (entities.EntityDef, bool)

	// Strict reports whether undefined entity types should be rejected.
	Strict() bool
}

// EntityValidator checks entities against their registered definitions.
type EntityValidator interface {
	// Validate checks one entity of the given type.
	Validate(entityType string, e *entities.Entity) (*entities.ValidationResult, error)
}
