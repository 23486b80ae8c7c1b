// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// System is a context-level entity: a software system under analysis, an
// external system it talks to, or a person interacting with it. Type values
// are drawn from the system-level entity set in the schema package.
type System struct {
	// ID is a kebab-case slug, unique within the systems array.
	ID string `json:"id" yaml:"id"`

	// Name is the human-readable system name.
	Name string `json:"name" yaml:"name"`

	// Type categorizes the entity (e.g. "software-system", "external-system", "person").
	Type string `json:"type" yaml:"type"`

	// Description summarizes the system's purpose in one or two sentences.
	Description string `json:"description" yaml:"description"`

	// Responsibilities lists what the system is accountable for.
	Responsibilities []string `json:"responsibilities" yaml:"responsibilities"`

	// Observations are findings recorded against this system.
	Observations []Observation `json:"observations,omitempty" yaml:"observations,omitempty"`

	// Relations are edges from this system to other systems in the same document.
	Relations []Relation `json:"relations,omitempty" yaml:"relations,omitempty"`
}

// Container is a container-level entity: a separately deployable or runnable
// unit (service, database, queue) within a parent system.
type Container struct {
	// ID is a kebab-case slug, unique within the containers array.
	ID string `json:"id" yaml:"id"`

	// SystemID references the parent system's id in the context-level document.
	SystemID string `json:"system_id" yaml:"system_id"`

	// Name is the human-readable container name.
	Name string `json:"name" yaml:"name"`

	// Type categorizes the container (e.g. "service", "database", "message-broker").
	Type string `json:"type" yaml:"type"`

	// Description summarizes the container's role.
	Description string `json:"description" yaml:"description"`

	// Technology names the primary runtime or platform (e.g. "go", "postgresql").
	Technology string `json:"technology,omitempty" yaml:"technology,omitempty"`

	// Responsibilities lists what the container is accountable for.
	Responsibilities []string `json:"responsibilities" yaml:"responsibilities"`

	// Observations are findings recorded against this container.
	Observations []Observation `json:"observations,omitempty" yaml:"observations,omitempty"`

	// Relations are edges from this container to other containers in the same document.
	Relations []Relation `json:"relations,omitempty" yaml:"relations,omitempty"`
}

// Component is a component-level entity: a major structural part within a
// parent container, typically a package or module grouping.
type Component struct {
	// ID is a kebab-case slug, unique within the components array.
	ID string `json:"id" yaml:"id"`

	// ContainerID references the parent container's id in the container-level document.
	ContainerID string `json:"container_id" yaml:"container_id"`

	// Name is the human-readable component name.
	Name string `json:"name" yaml:"name"`

	// Type categorizes the component (e.g. "service", "repository", "adapter").
	Type string `json:"type" yaml:"type"`

	// Description summarizes the component's role.
	Description string `json:"description" yaml:"description"`

	// Responsibilities lists what the component is accountable for.
	Responsibilities []string `json:"responsibilities" yaml:"responsibilities"`

	// Observations are findings recorded against this component.
	Observations []Observation `json:"observations,omitempty" yaml:"observations,omitempty"`

	// Relations are edges from this component to other components in the same document.
	Relations []Relation `json:"relations,omitempty" yaml:"relations,omitempty"`
}
