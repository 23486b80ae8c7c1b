// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Direction records which way a context-level relation flows relative to the
// owning system. Only system-level relations carry a direction.
type Direction string

const (
	DirectionInbound       Direction = "inbound"
	DirectionOutbound      Direction = "outbound"
	DirectionBidirectional Direction = "bidirectional"
)

// Coupling grades how tightly a component-level relation binds the two ends.
// Only component-level relations carry a coupling.
type Coupling string

const (
	CouplingLoose    Coupling = "loose"
	CouplingModerate Coupling = "moderate"
	CouplingTight    Coupling = "tight"
)

// Relation is a directed edge from its owning entity to another entity, or
// for library documentation, to an external locator. Type values are
// level-specific and drawn from the schema package's relation sets.
type Relation struct {
	// ID is a kebab-case slug, unique within the entity's relations array.
	ID string `json:"id" yaml:"id"`

	// Target is the id of the entity this relation points at. In library
	// documentation it may instead be a URL or section slug, depending on Type.
	Target string `json:"target" yaml:"target"`

	// Type classifies the edge (e.g. "depends-on", "message-publish", "calls").
	Type string `json:"type" yaml:"type"`

	// Description states what the relation does, in active voice
	// ("sends order events to"). The phrasing convention is not enforced.
	Description string `json:"description" yaml:"description"`

	// Direction is required on system-level relations and absent elsewhere.
	Direction Direction `json:"direction,omitempty" yaml:"direction,omitempty"`

	// Coupling is required on component-level relations and absent elsewhere.
	Coupling Coupling `json:"coupling,omitempty" yaml:"coupling,omitempty"`
}
