package model

import (
	"fmt"
	"strings"
)

// Kind is the kind of a diagram entity.
type Kind string

// Entity kinds. The values are the persisted wire names.
const (
	KindClass     Kind = "CLASS"
	KindInterface Kind = "INTERFACE"
	KindEnum      Kind = "ENUM"
)

// Kinds lists every entity kind in declaration order.
var Kinds = []Kind{KindClass, KindInterface, KindEnum}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindClass, KindInterface, KindEnum:
		return true
	}
	return false
}

// Keyword returns the source keyword used to declare an entity of this kind.
func (k Kind) Keyword() string {
	return strings.ToLower(string(k))
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindClass:
		return "Class"
	case KindInterface:
		return "Interface"
	case KindEnum:
		return "Enum"
	}
	return fmt.Sprintf("Kind(%q)", string(k))
}

// ParseKind returns the kind for a declaration keyword or wire name,
// case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToUpper(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("model: unknown entity kind %q", s)
	}
	return k, nil
}

// Visibility is the access modifier of a member.
type Visibility string

// Member visibilities.
const (
	Public    Visibility = "public"
	Private   Visibility = "private"
	Protected Visibility = "protected"
)

// Valid reports whether v is one of the declared visibilities.
func (v Visibility) Valid() bool {
	switch v {
	case Public, Private, Protected:
		return true
	}
	return false
}

// Symbol returns the UML symbol for the visibility (+, -, #).
func (v Visibility) Symbol() string {
	switch v {
	case Private:
		return "-"
	case Protected:
		return "#"
	default:
		return "+"
	}
}

// ParseVisibility maps a modifier keyword to a Visibility. Unknown or empty
// input yields Public, the implicit default of declarations.
func ParseVisibility(s string) Visibility {
	switch v := Visibility(strings.ToLower(s)); v {
	case Private, Protected:
		return v
	default:
		return Public
	}
}

// RelationshipKind is the closed set of relationship types between entities.
type RelationshipKind string

// Relationship kinds. The values are the persisted wire names.
const (
	Inheritance    RelationshipKind = "Inheritance"
	Implementation RelationshipKind = "Implementation"
	Composition    RelationshipKind = "Composition"
	Aggregation    RelationshipKind = "Aggregation"
	Dependency     RelationshipKind = "Dependency"
)

// RelationshipKinds lists every relationship kind in menu order.
var RelationshipKinds = []RelationshipKind{
	Inheritance,
	Implementation,
	Composition,
	Aggregation,
	Dependency,
}

// Valid reports whether k is one of the declared relationship kinds.
func (k RelationshipKind) Valid() bool {
	switch k {
	case Inheritance, Implementation, Composition, Aggregation, Dependency:
		return true
	}
	return false
}

// String implements fmt.Stringer.
func (k RelationshipKind) String() string { return string(k) }

// Structural reports whether relationships of this kind synthesize members
// on their source entity.
func (k RelationshipKind) Structural() bool {
	return k == Composition || k == Aggregation
}

// ParseRelationshipKind returns the relationship kind for s, case-insensitively.
func ParseRelationshipKind(s string) (RelationshipKind, error) {
	for _, k := range RelationshipKinds {
		if strings.EqualFold(string(k), strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("model: unknown relationship kind %q", s)
}

// Anchor is an opaque presentation token naming the side of a node a
// relationship line attaches to (e.g. "top-1", "bottom").
type Anchor string

// IsTop reports whether the anchor denotes the top edge of a node.
func (a Anchor) IsTop() bool { return strings.HasPrefix(string(a), "top") }

// IsBottom reports whether the anchor denotes the bottom edge of a node.
func (a Anchor) IsBottom() bool { return strings.HasPrefix(string(a), "bottom") }
