package model

import "strings"

// Relationship is a typed, directed connection between two entities. By
// convention the source is the dependent (child) entity and the target the
// depended-upon (parent) entity.
type Relationship struct {
	// ID is the canonical id derived from (SourceID, TargetID, Kind).
	ID       string           `json:"id" yaml:"id"`
	SourceID string           `json:"source" yaml:"source"`
	TargetID string           `json:"target" yaml:"target"`
	Kind     RelationshipKind `json:"connectionType" yaml:"connectionType"`
	// SourceAnchor and TargetAnchor are presentation tokens.
	SourceAnchor Anchor `json:"sourceHandle,omitempty" yaml:"sourceHandle,omitempty"`
	TargetAnchor Anchor `json:"targetHandle,omitempty" yaml:"targetHandle,omitempty"`
	// TargetTop selects the marker variant used when the line enters the
	// target from its top edge. It carries no semantics.
	TargetTop bool `json:"isTargetTop,omitempty" yaml:"isTargetTop,omitempty"`
}

// Key returns the identity key of the relationship.
func (r Relationship) Key() Key {
	return Key{Source: r.SourceID, Target: r.TargetID, Kind: r.Kind}
}

// Touches reports whether the entity id is one of the relationship endpoints.
func (r Relationship) Touches(id string) bool {
	return r.SourceID == id || r.TargetID == id
}

// NewRelationship returns a relationship with its canonical id.
func NewRelationship(source, target string, kind RelationshipKind) Relationship {
	k := Key{Source: source, Target: target, Kind: kind}
	return Relationship{
		ID:       k.ID(),
		SourceID: source,
		TargetID: target,
		Kind:     kind,
	}
}

// Key identifies a relationship by its endpoints and kind.
type Key struct {
	Source string
	Target string
	Kind   RelationshipKind
}

// idEscaper escapes the separator inside id components so that distinct
// keys never share an id.
var idEscaper = strings.NewReplacer(`\`, `\\`, "-", `\-`)

// ID returns the canonical string id: "<source>-<target>-<kind>" with the
// kind lower-cased. A backslash or dash inside an endpoint id is escaped
// with a backslash.
func (k Key) ID() string {
	return idEscaper.Replace(k.Source) + "-" + idEscaper.Replace(k.Target) + "-" + strings.ToLower(string(k.Kind))
}

// Reverse returns the key with source and target swapped.
func (k Key) Reverse() Key {
	return Key{Source: k.Target, Target: k.Source, Kind: k.Kind}
}

// WithKind returns the key on the same ordered pair with another kind.
func (k Key) WithKind(kind RelationshipKind) Key {
	k.Kind = kind
	return k
}
