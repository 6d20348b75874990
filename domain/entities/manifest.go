package entities

// Manifest describes a mapping module: its identity, the entity types it
// writes, and the exports the host may invoke. Manifests are authored in
// YAML and validated by the host loader before the module is instantiated.
type Manifest struct {
	Name        string               `yaml:"name" json:"name"`
	Version     string               `yaml:"version" json:"version"`
	Description string               `yaml:"description,omitempty" json:"description,omitempty"`
	SDKVersion  string               `yaml:"sdk_version,omitempty" json:"sdk_version,omitempty"`
	Entities    map[string]EntityDef `yaml:"entities,omitempty" json:"entities,omitempty"`
	Handlers    []HandlerDef         `yaml:"handlers,omitempty" json:"handlers,omitempty"`
}

// EntityDef declares the attribute surface of one entity type.
type EntityDef struct {
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Attributes  []AttributeDef `yaml:"attributes,omitempty" json:"attributes,omitempty"`
}

// AttributeDef declares a single attribute. Key is either an exact
// attribute name or a doublestar glob pattern covering a family of names
// (e.g. "meta/**"). Kind is a ValueKind wire name.
type AttributeDef struct {
	Key      string `yaml:"key" json:"key"`
	Kind     string `yaml:"kind" json:"kind"`
	Required bool   `yaml:"required,omitempty" json:"required,omitempty"`
}

// HandlerDef names a guest export the host drives with events.
type HandlerDef struct {
	Export      string `yaml:"export" json:"export"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// ValidationResult aggregates the outcome of validating a manifest or an
// entity against its definition.
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// ValidationError describes a single validation failure.
type ValidationError struct {
	Field   string
	Message string
}
